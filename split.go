package mixfence

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxMessageLength 默认的单条消息最大长度（rune）
const DefaultMaxMessageLength = 4096

// CountText 计算文本在聊天界面中的有效长度（rune 数）
func CountText(text string) int {
	return utf8.RuneCountInString(text)
}

// fenceTracker 跟踪逐行扫描时是否处在围栏内
type fenceTracker struct {
	open   bool
	wrap   bool   // 块边界处是否补齐并重新打开围栏
	opener string // 开围栏行，用于在下一块中重新打开
	closer string // 对应的闭围栏
	char   byte
	n      int
}

// classify 判断 line 会打开还是关闭围栏，不改变状态
func (f *fenceTracker) classify(line string) (opens, closes bool) {
	trimmed := strings.TrimSpace(line)
	if !f.open {
		if len(trimmed) >= 3 && (trimmed[0] == '`' || trimmed[0] == '~') {
			return countLeading(trimmed, trimmed[0]) >= 3, false
		}
		return false, false
	}
	n := countLeading(trimmed, f.char)
	return false, n > 0 && n >= f.n && n == len(trimmed)
}

// openWith 以 line 打开围栏；maxLen 容不下“开围栏 + 一行 + 闭围栏”时不补齐
func (f *fenceTracker) openWith(line string, maxLen int) {
	trimmed := strings.TrimSpace(line)
	n := countLeading(trimmed, trimmed[0])
	*f = fenceTracker{
		open:   true,
		opener: line,
		closer: strings.Repeat(string(trimmed[0]), n),
		char:   trimmed[0],
		n:      n,
	}
	f.wrap = CountText(line)+n+3 <= maxLen
}

// reserve 返回块末尾需要为闭围栏预留的长度
func (f *fenceTracker) reserve() int {
	if f.open && f.wrap {
		return 1 + CountText(f.closer)
	}
	return 0
}

func countLeading(s string, c byte) int {
	i := 0
	for i < len(s) && s[i] == c {
		i++
	}
	return i
}

// SplitMessage 把文本拆分为不超过 maxLen 个 rune 的块
//
// 优先在换行处拆分；单行超长时按 rune 硬拆分。拆分点落在围栏内部时，
// 当前块补上闭围栏，下一块以同样的开围栏重新打开，保证每块都是合法的 Markdown。
// 每块至少包含一行原文，不会产生只有围栏的空块。
func SplitMessage(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}
	if CountText(text) <= maxLen {
		return []string{text}
	}

	var (
		chunks []string
		cur    []string
		curLen int
		added  int
		fence  fenceTracker
		body   bool // 当前块中的围栏是否已有内容行
	)

	flush := func() {
		out := strings.Join(cur, "\n")
		if fence.open && fence.wrap {
			out += "\n" + fence.closer
		}
		chunks = append(chunks, out)
		cur, curLen, added = nil, 0, 0
	}
	// breakFence 在围栏内结束当前块。围栏在本块还没有内容行时，
	// 开围栏行移到下一块，避免留下空围栏。
	breakFence := func() {
		if !body && len(cur) > 1 {
			cur = cur[:len(cur)-1]
			curLen -= 1 + CountText(fence.opener)
			saved := fence
			fence = fenceTracker{}
			flush()
			fence = saved
		} else {
			flush()
		}
		cur = []string{fence.opener}
		curLen = CountText(fence.opener)
	}
	push := func(piece string) {
		if len(cur) > 0 {
			curLen++
		}
		cur = append(cur, piece)
		curLen += CountText(piece)
		added++
	}
	need := func(piece string) int {
		if len(cur) > 0 {
			return 1 + CountText(piece)
		}
		return CountText(piece)
	}

	for _, line := range strings.Split(text, "\n") {
		opens, closes := fence.classify(line)

		switch {
		case opens:
			var next fenceTracker
			next.openWith(line, maxLen)
			if added > 0 && curLen+need(line)+next.reserve() > maxLen {
				flush()
			}
			if !next.wrap {
				// 围栏过宽，按普通行处理
				for _, piece := range hardSplit(line, maxLen) {
					if added > 0 && curLen+need(piece) > maxLen {
						flush()
					}
					push(piece)
				}
			} else {
				push(line)
			}
			fence = next
			body = false

		case closes && !fence.wrap:
			fence = fenceTracker{}
			for _, piece := range hardSplit(line, maxLen) {
				if added > 0 && curLen+need(piece) > maxLen {
					flush()
				}
				push(piece)
			}

		case closes:
			if added > 0 && curLen+need(line) > maxLen {
				if body || len(cur) == 1 {
					// 块已经以补齐的闭围栏结束，原闭围栏行不再单独成块
					flush()
					fence = fenceTracker{}
					continue
				}
				breakFence()
			}
			push(line)
			fence = fenceTracker{}

		default:
			limit := maxLen
			if fence.open && fence.wrap {
				limit -= CountText(fence.opener) + 1 + fence.reserve()
			}
			for _, piece := range hardSplit(line, limit) {
				if added > 0 && curLen+need(piece)+fence.reserve() > maxLen {
					if fence.open && fence.wrap {
						breakFence()
					} else {
						flush()
					}
				}
				push(piece)
				body = true
			}
		}
	}
	if added > 0 {
		flush()
	}

	return chunks
}

// hardSplit 按 rune 切分超长的行
func hardSplit(line string, limit int) []string {
	if CountText(line) <= limit {
		return []string{line}
	}
	var parts []string
	runes := []rune(line)
	for len(runes) > limit {
		parts = append(parts, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(parts, string(runes))
}
