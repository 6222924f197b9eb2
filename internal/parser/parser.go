package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, tasklists, autolinks
	),
}

// Fence 渲染输出中的一个围栏代码块
type Fence struct {
	Language  string // info string 的第一个词
	Code      string // 代码内容，不含围栏，去掉末尾换行
	LineCount int    // 代码行数
	Start     int    // 含开围栏行的起始字节；没有代码行时为 -1
	End       int    // 含闭围栏行的结束字节；没有代码行时为 -1
}

// ParseAST 仅解析为 AST，不遍历
func ParseAST(markdown string) (ast.Node, []byte) {
	md := goldmark.New(StandardOptions...)
	source := []byte(markdown)
	return md.Parser().Parse(text.NewReader(source)), source
}

// ParseFences 解析 Markdown 并按文档顺序返回所有围栏代码块
func ParseFences(markdown string) []Fence {
	node, source := ParseAST(markdown)

	fences := make([]Fence, 0)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		fences = append(fences, newFence(fenced, source))
		return ast.WalkSkipChildren, nil
	})

	return fences
}

func newFence(n *ast.FencedCodeBlock, source []byte) Fence {
	f := Fence{Start: -1, End: -1}

	if n.Info != nil {
		info := strings.TrimSpace(string(n.Info.Segment.Value(source)))
		if fields := strings.Fields(info); len(fields) > 0 {
			f.Language = fields[0]
		}
	}

	lines := n.Lines()
	var code bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}
	f.Code = strings.TrimSuffix(code.String(), "\n")
	f.LineCount = lines.Len()

	if lines.Len() > 0 {
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		f.Start = openingLineStart(source, first.Start)
		f.End = closingLineEnd(source, last.Stop)
	}

	return f
}

// openingLineStart 返回代码第一行之前那一行（开围栏）的起始位置
func openingLineStart(source []byte, contentStart int) int {
	lineStart := bytes.LastIndexByte(source[:contentStart], '\n')
	if lineStart < 0 {
		return 0
	}
	prev := bytes.LastIndexByte(source[:lineStart], '\n')
	return prev + 1
}

// closingLineEnd 返回代码最后一行之后那一行（闭围栏）的结束位置，不含换行
func closingLineEnd(source []byte, contentStop int) int {
	if contentStop > 0 && source[contentStop-1] != '\n' {
		// 文档在代码行中间结束，没有闭围栏
		return contentStop
	}
	if contentStop >= len(source) {
		return len(source)
	}
	next := bytes.IndexByte(source[contentStop:], '\n')
	if next < 0 {
		return len(source)
	}
	return contentStop + next
}
