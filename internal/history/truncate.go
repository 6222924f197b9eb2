package history

import (
	"context"
	"fmt"
)

// DefaultMaxInputTokens is the input budget used when none is configured.
const DefaultMaxInputTokens = 40000

// TokenCounter reports how many input tokens a request would consume.
type TokenCounter interface {
	CountTokens(ctx context.Context, system string, messages []Message) (int, error)
}

// perMessageOverhead approximates role markers and separators.
const perMessageOverhead = 4

// EstimateCounter approximates token counts at four characters per token.
type EstimateCounter struct{}

// CountTokens implements TokenCounter.
func (EstimateCounter) CountTokens(_ context.Context, system string, messages []Message) (int, error) {
	total := estimateTokens(system)
	for _, m := range messages {
		total += estimateTokens(m.Content) + perMessageOverhead
	}
	return total, nil
}

func estimateTokens(s string) int {
	if s == "" {
		return 0
	}
	n := len(s) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// Truncate drops the oldest user+assistant pairs until the conversation fits
// maxTokens by proportion. It returns the kept messages and the token count
// reported for them. At least one pair is always kept, and a conversation
// shorter than one pair is returned as is.
func Truncate(ctx context.Context, counter TokenCounter, system string, messages []Message, maxTokens int) ([]Message, int, error) {
	if len(messages) == 0 {
		return messages, 0, nil
	}
	if counter == nil {
		counter = EstimateCounter{}
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxInputTokens
	}

	current, err := counter.CountTokens(ctx, system, messages)
	if err != nil {
		return nil, 0, fmt.Errorf("counting tokens: %w", err)
	}
	if current <= maxTokens {
		return messages, current, nil
	}

	pairs := len(messages) / 2
	if pairs == 0 {
		return messages, current, nil
	}

	keep := pairs * maxTokens / current
	if keep < 1 {
		keep = 1
	}
	kept := messages[len(messages)-keep*2:]

	// Proportional trimming is assumed to land on the budget; the kept
	// messages are not recounted.
	return kept, maxTokens, nil
}
