package converter

import (
	"github.com/riverfjs/mixfence-go/internal/buffer"
	"github.com/riverfjs/mixfence-go/internal/escape"
	"github.com/riverfjs/mixfence-go/internal/types"
)

// Fence 代码围栏标记
const Fence = "```"

// Renderer 将有序的块序列化为一个字符串
//
// 文本块原样输出；代码块先做字符串字面量换行转义，再包进带语言标签的围栏。
// 相邻块之间用单个换行分隔。
type Renderer struct {
	language string
	escaper  *escape.Escaper
	buf      *buffer.TextBuffer
	segments []Segment
}

// NewRenderer 创建渲染器，config 为 nil 时使用默认配置
func NewRenderer(config *types.RenderConfig) *Renderer {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	lang := config.Language
	if lang == "" {
		lang = types.DefaultLanguage
	}
	return &Renderer{
		language: lang,
		escaper:  escape.New(escape.Options{LineBounded: config.LineBoundedQuotes}),
		buf:      buffer.New(),
	}
}

// Render 渲染所有块，返回输出文本和每个块的位置
func (r *Renderer) Render(blocks []types.Block) (string, []Segment) {
	r.buf.Reset()
	r.segments = make([]Segment, 0, len(blocks))

	for i, b := range blocks {
		if i > 0 {
			r.buf.Write("\n")
		}
		if b.Verdict == types.Code {
			r.writeCode(b)
		} else {
			r.writeText(b)
		}
	}

	return r.buf.String(), r.segments
}

func (r *Renderer) writeText(b types.Block) {
	start, runeStart := r.buf.ByteOffset(), r.buf.RuneOffset()
	r.buf.Write(b.Text())
	r.segments = append(r.segments, Segment{
		Kind:      KindText,
		TextStart: start,
		TextEnd:   r.buf.ByteOffset(),
		RuneStart: runeStart,
		RuneEnd:   r.buf.RuneOffset(),
		LineCount: len(b.Lines),
	})
}

func (r *Renderer) writeCode(b types.Block) {
	code := r.escaper.Escape(b.Text())

	start, runeStart := r.buf.ByteOffset(), r.buf.RuneOffset()
	r.buf.Write(Fence)
	r.buf.Write(r.language)
	r.buf.Write("\n")
	r.buf.Write(code)
	r.buf.Write("\n")
	r.buf.Write(Fence)

	r.segments = append(r.segments, Segment{
		Kind:      KindCodeBlock,
		TextStart: start,
		TextEnd:   r.buf.ByteOffset(),
		RuneStart: runeStart,
		RuneEnd:   r.buf.RuneOffset(),
		Language:  r.language,
		LineCount: len(b.Lines),
		RawCode:   code,
	})
}

// Render 使用给定配置渲染块
func Render(blocks []types.Block, config *types.RenderConfig) (string, []Segment) {
	return NewRenderer(config).Render(blocks)
}
