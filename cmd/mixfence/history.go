package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	mf "github.com/riverfjs/mixfence-go"
	"github.com/riverfjs/mixfence-go/internal/config"
	"github.com/riverfjs/mixfence-go/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage stored conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions grouped by time",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session with assistant replies rendered",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Write a session as a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store an exported JSON conversation as a new session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryImport,
}

var historyTruncateCmd = &cobra.Command{
	Use:   "truncate <session-id>",
	Short: "Show which messages fit the input token budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryTruncate,
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd, historyImportCmd, historyTruncateCmd)

	historyCmd.PersistentFlags().String("db", "", "History database directory (default from config)")
	historyCmd.PersistentFlags().String("user", "", "Owner email; empty means anonymous")
	historyCmd.PersistentFlags().String("name", "", "Owner display name")
	viper.BindPFlag("db_path", historyCmd.PersistentFlags().Lookup("db"))

	historyListCmd.Flags().Int("limit", history.DefaultRecentLimit, "Maximum sessions to list")
	historyExportCmd.Flags().StringP("output", "o", ".", "Directory the file is written to")
	historyTruncateCmd.Flags().String("system", "", "System prompt counted against the budget")
	historyTruncateCmd.Flags().Int("max-tokens", 0, "Input token budget (default from config)")
	viper.BindPFlag("max_input_tokens", historyTruncateCmd.Flags().Lookup("max-tokens"))
}

// withStore opens the configured database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(store *history.BadgerStore, user history.User) error) error {
	path := config.GetDBPath()
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	db, err := history.OpenBadger(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing history database", slog.Any("error", err))
		}
	}()

	store, err := history.NewBadgerStore(db, logger.With(slog.String("component", "history")))
	if err != nil {
		return err
	}
	email, _ := cmd.Flags().GetString("user")
	name, _ := cmd.Flags().GetString("name")
	return fn(store, history.User{Email: email, Name: name})
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	return withStore(cmd, func(store *history.BadgerStore, user history.User) error {
		sessions, err := store.Recent(cmd.Context(), user, limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "no sessions")
			return nil
		}
		for _, g := range history.GroupByTime(sessions, time.Now()) {
			fmt.Fprintf(out, "%s\n", g.Label)
			for _, s := range g.Sessions {
				fmt.Fprintf(out, "  %s  %-40s %d questions\n", s.ID, history.Preview(s), history.UserMessageCount(s.Messages))
			}
		}
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *history.BadgerStore, user history.User) error {
		sess, err := store.Get(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", history.Preview(sess))
		for _, m := range sess.Messages {
			body := m.Content
			if m.Role == history.RoleAssistant {
				body = mf.Render(body, renderOptions()...)
			}
			fmt.Fprintf(out, "\n[%s]\n%s\n", m.Role, body)
		}
		return nil
	})
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("output")
	return withStore(cmd, func(store *history.BadgerStore, user history.User) error {
		sess, err := store.Get(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}
		data, name, err := history.ExportJSON(sess.Messages, time.Now())
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	})
}

func runHistoryImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading conversation: %w", err)
	}
	messages, err := history.ImportJSON(data)
	if err != nil {
		return err
	}
	return withStore(cmd, func(store *history.BadgerStore, user history.User) error {
		sess, err := store.Append(cmd.Context(), user, history.NewSessionID(), messages...)
		if err != nil {
			return err
		}
		logger.Info("conversation imported",
			slog.String("session_id", sess.ID),
			slog.Int("messages", len(sess.Messages)),
		)
		fmt.Fprintln(cmd.OutOrStdout(), sess.ID)
		return nil
	})
}

func runHistoryTruncate(cmd *cobra.Command, args []string) error {
	system, _ := cmd.Flags().GetString("system")
	return withStore(cmd, func(store *history.BadgerStore, user history.User) error {
		sess, err := store.Get(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}
		kept, tokens, err := history.Truncate(cmd.Context(), history.EstimateCounter{}, system, sess.Messages, config.GetMaxInputTokens())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "keeping %d of %d messages, ~%d input tokens\n", len(kept), len(sess.Messages), tokens)
		return nil
	})
}
