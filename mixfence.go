// Package mixfence 将混合了自然语言和源代码的聊天文本整理为可渲染的 Markdown
//
// LLM 的回复经常把代码直接写在正文里，没有围栏。这个包逐行判断每一行"像代码"
// 还是"像文字"，把连续的同类行合并为块，并把代码块包进 ``` 围栏，同时把
// 代码中字符串字面量里的真实换行转义为 \n，使围栏内的代码保持可读且语法完整。
//
// 核心功能：
//   - 启发式逐行分类（关键字、缩进、调用/赋值形状、括号平衡）
//   - 空行按前后最近的非空行决定归属
//   - 代码块内字符串字面量的换行转义
//   - 按长度拆分消息，长代码块提取为文件
//
// 主要 API：
//   - Render(): 同步转换，返回渲染后的字符串
//   - Process(): 完整处理，返回可发送的内容列表
//
// 示例：
//
//	// 简单转换
//	out := mixfence.Render(reply)
//
//	// 完整处理（含拆分、文件提取）
//	contents, err := mixfence.Process(ctx, reply, 4096)
//	for _, content := range contents {
//	    switch c := content.(type) {
//	    case *mixfence.Text:
//	        // 显示文本消息
//	    case *mixfence.File:
//	        // 提供下载
//	    }
//	}
//
// 所有函数都是纯函数，不持有跨调用状态，可以并发调用。
package mixfence

import (
	"github.com/riverfjs/mixfence-go/internal/classifier"
	"github.com/riverfjs/mixfence-go/internal/converter"
	"github.com/riverfjs/mixfence-go/internal/segmenter"
	"github.com/riverfjs/mixfence-go/internal/types"
)

// 导出类型别名
type (
	Verdict = types.Verdict
	Block   = types.Block
	Segment = converter.Segment
)

// 行判定
const (
	VerdictBlank = types.Blank
	VerdictCode  = types.Code
	VerdictText  = types.Text
)

// Render 将聊天文本转换为 Markdown，代码块加上围栏
//
// 参数：
//   - content: 原始消息文本，可以为空
//   - opts: 渲染选项
//
// 返回：
//   - string: 文本块原样保留、代码块带围栏，块之间以单个换行连接
func Render(content string, opts ...Option) string {
	out, _, _ := RenderWithBlocks(content, opts...)
	return out
}

// RenderWithBlocks 类似 Render()，但还返回分段结果和每个块在输出中的位置
func RenderWithBlocks(content string, opts ...Option) (string, []Block, []Segment) {
	options := applyOptions(opts...)
	blocks := segmenter.SegmentWith(content, segmenter.Options{
		PreserveFences: options.Config.PreserveFences,
	})
	out, segments := converter.Render(blocks, options.Config)
	return out, blocks, segments
}

// Blocks 仅分段，不渲染
func Blocks(content string, opts ...Option) []Block {
	options := applyOptions(opts...)
	return segmenter.SegmentWith(content, segmenter.Options{
		PreserveFences: options.Config.PreserveFences,
	})
}

// Classify 返回单行的原始判定（可能为 Blank）
func Classify(line string) Verdict {
	return classifier.Classify(line)
}
