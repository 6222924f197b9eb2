package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mf "github.com/riverfjs/mixfence-go"
	"github.com/riverfjs/mixfence-go/internal/classifier"
	"github.com/riverfjs/mixfence-go/internal/config"
	"github.com/riverfjs/mixfence-go/internal/segmenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "mixfence [file]",
	Short: "Fence the code inside mixed chat text",
	Long: `Reads chat text that mixes prose with unfenced source code and prints it
back with every code run wrapped in a markdown fence.

Input is read from the file argument, or from stdin when none is given.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRender,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Print the verdict of every line",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClassify,
}

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Write the fenced code blocks of the rendered text to files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExtract,
}

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Render and split the result into chat-sized messages",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSplit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(classifyCmd, extractCmd, splitCmd, historyCmd)

	rootCmd.PersistentFlags().String("language", mf.DefaultLanguage, "Language tag written on code fences")
	rootCmd.PersistentFlags().Bool("line-bounded-quotes", false, "Keep single and double quoted strings on one line when escaping")
	rootCmd.PersistentFlags().Bool("preserve-fences", false, "Pass already fenced regions through untouched")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("line_bounded_quotes", rootCmd.PersistentFlags().Lookup("line-bounded-quotes"))
	viper.BindPFlag("preserve_fences", rootCmd.PersistentFlags().Lookup("preserve-fences"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	extractCmd.Flags().StringP("output", "o", ".", "Directory the files are written to")
	extractCmd.Flags().Bool("all", false, "Extract every block, not only long ones")

	splitCmd.Flags().IntP("length", "n", 0, "Maximum runes per message (default from config)")
	viper.BindPFlag("max_message_length", splitCmd.Flags().Lookup("length"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.GetLogLevel()}))
	mf.SetLogger(logger.With(slog.String("component", "mixfence")))
}

func renderOptions() []mf.Option {
	return []mf.Option{
		mf.WithLanguage(config.GetLanguage()),
		mf.WithLineBoundedQuotes(config.GetLineBoundedQuotes()),
		mf.WithPreserveFences(config.GetPreserveFences()),
	}
}

// readInput reads the named file, or stdin for no argument or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), mf.Render(input, renderOptions()...))
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	lines := segmenter.SplitLines(input)
	raw := make([]mf.Verdict, len(lines))
	rules := make([]string, len(lines))
	for i, line := range lines {
		raw[i], rules[i] = classifier.Explain(line)
	}
	resolved := segmenter.Resolve(raw)

	out := cmd.OutOrStdout()
	for i, line := range lines {
		fmt.Fprintf(out, "%4d  %-5s %-5s %-20s %s\n", i+1, raw[i], resolved[i], rules[i], line)
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("output")
	all, _ := cmd.Flags().GetBool("all")

	var files []*mf.File
	if all {
		files = mf.ExtractCodeBlocks(input, renderOptions()...)
	} else {
		contents, err := mf.Process(cmd.Context(), input, config.GetMaxMessageLength(), renderOptions()...)
		if err != nil {
			return err
		}
		for _, c := range contents {
			if f, ok := c.(*mf.File); ok {
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no code blocks to extract")
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.FileName)
		if err := os.WriteFile(path, f.FileData, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("code block written",
			slog.String("path", path),
			slog.String("language", f.Language),
			slog.Int("bytes", len(f.FileData)),
		)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	chunks := mf.SplitMessage(mf.Render(input, renderOptions()...), config.GetMaxMessageLength())
	out := cmd.OutOrStdout()
	for i, chunk := range chunks {
		fmt.Fprintf(out, "--- message %d/%d (%d runes) ---\n", i+1, len(chunks), mf.CountText(chunk))
		fmt.Fprintln(out, strings.TrimRight(chunk, "\n"))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
