package types

import "strings"

// Verdict 表示单行的分类结果
type Verdict int

const (
	// Blank 空行，分段前必须被解析为 Code 或 Text
	Blank Verdict = iota
	// Code 看起来像源代码
	Code
	// Text 看起来像自然语言
	Text
)

// String returns the string representation of Verdict.
func (v Verdict) String() string {
	switch v {
	case Blank:
		return "blank"
	case Code:
		return "code"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Block 一段连续且判定相同的行
type Block struct {
	Verdict Verdict
	Lines   []string
}

// Text 以换行符重新拼接块内的行
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// DefaultLanguage 代码块默认的语言标签
const DefaultLanguage = "python"

// RenderConfig 渲染配置
type RenderConfig struct {
	// Language 代码围栏的语言标签
	Language string
	// LineBoundedQuotes 为 true 时单/双引号字符串不跨行匹配
	LineBoundedQuotes bool
	// PreserveFences 为 true 时输入中已有的 ``` 围栏原样透传
	PreserveFences bool
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Language: DefaultLanguage,
	}
}
