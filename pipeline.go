package mixfence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/riverfjs/mixfence-go/internal/parser"
	"github.com/riverfjs/mixfence-go/internal/util"
)

// ExtractLineThreshold 超过这个行数的代码块会被提取为文件
const ExtractLineThreshold = 50

// Process 完整管道：聊天文本 → 可显示的内容列表
//
// 步骤：
//  1. 通过 Render 分段并给代码块加围栏
//  2. 用 goldmark 解析渲染结果，定位所有围栏代码块
//  3. 按顺序遍历：
//     - 超过 ExtractLineThreshold 行的代码块 → File
//     - 其余区域 → 按 maxMessageLength 拆分为 Text
//
// 参数：
//   - ctx: 上下文，每产出一个片段前检查一次取消
//   - content: 原始消息文本
//   - maxMessageLength: 每条文本消息的最大 rune 数，<= 0 时为 4096
//   - opts: 渲染选项
//
// 返回：
//   - []Content: Text 或 File 的有序列表
//   - error: 仅在 ctx 被取消时返回
func Process(ctx context.Context, content string, maxMessageLength int, opts ...Option) ([]Content, error) {
	if maxMessageLength <= 0 {
		maxMessageLength = DefaultMaxMessageLength
	}

	rendered := Render(content, opts...)
	fences := parser.ParseFences(rendered)

	result := make([]Content, 0)
	seen := make(map[string]int)
	cursor := 0

	for _, f := range fences {
		if f.LineCount <= ExtractLineThreshold || f.Start < cursor {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if f.Start > cursor {
			appendTextChunks(&result, rendered[cursor:f.Start], maxMessageLength)
		}
		appendCodeFile(&result, f, seen)
		cursor = f.End
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cursor < len(rendered) {
		appendTextChunks(&result, rendered[cursor:], maxMessageLength)
	}

	return result, nil
}

// appendTextChunks 去掉首尾换行后按 maxMessageLength 拆分为 Text
func appendTextChunks(result *[]Content, text string, maxMessageLength int) {
	text = strings.Trim(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, chunk := range SplitMessage(text, maxMessageLength) {
		chunk = strings.Trim(chunk, "\n")
		if chunk == "" {
			continue
		}
		*result = append(*result, &Text{
			Text: chunk,
			ContentTrace: ContentTrace{
				SourceType: "text",
			},
		})
	}
}

// appendCodeFile 将长代码块提取为 File
func appendCodeFile(result *[]Content, f parser.Fence, seen map[string]int) {
	*result = append(*result, newCodeFile(f, seen))
}

func newCodeFile(f parser.Fence, seen map[string]int) *File {
	lang := f.Language
	if lang == "" {
		lang = "txt"
	}
	name := util.UniqueFilename(util.Filename(f.Code, lang), seen)

	Logger.Debug("extracting code block as file",
		slog.String("file", name),
		slog.String("language", lang),
		slog.Int("lines", f.LineCount),
	)

	return &File{
		FileName: name,
		FileData: []byte(f.Code),
		Language: lang,
		ContentTrace: ContentTrace{
			SourceType: "file",
			Extra: map[string]interface{}{
				"language": lang,
				"lines":    f.LineCount,
			},
		},
	}
}

// ExtractCodeBlocks 渲染 content 并返回所有代码块，不论长短
func ExtractCodeBlocks(content string, opts ...Option) []*File {
	fences := parser.ParseFences(Render(content, opts...))
	files := make([]*File, 0, len(fences))
	seen := make(map[string]int)
	for _, f := range fences {
		files = append(files, newCodeFile(f, seen))
	}
	return files
}
