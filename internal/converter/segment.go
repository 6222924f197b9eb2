package converter

// Segment 记录一个渲染后块在输出中的位置
type Segment struct {
	Kind      string // "code_block" or "text"
	TextStart int    // 输出中的起始位置（字节）
	TextEnd   int    // 输出中的结束位置（字节）
	RuneStart int    // 起始位置（rune）
	RuneEnd   int    // 结束位置（rune）
	Language  string // 代码块语言标签，文本块为空
	LineCount int    // 源块的行数
	RawCode   string // 转义后的代码内容，不含围栏
}

const (
	KindCodeBlock = "code_block"
	KindText      = "text"
)
