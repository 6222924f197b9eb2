package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter struct {
	n   int
	err error
}

func (f fixedCounter) CountTokens(context.Context, string, []Message) (int, error) {
	return f.n, f.err
}

func pairs(n int) []Message {
	out := make([]Message, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out,
			Message{Role: RoleUser, Content: "q"},
			Message{Role: RoleAssistant, Content: "a"},
		)
	}
	return out
}

func TestEstimateCounter(t *testing.T) {
	ctx := context.Background()

	n, err := EstimateCounter{}.CountTokens(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = EstimateCounter{}.CountTokens(ctx, strings.Repeat("x", 40), []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: strings.Repeat("y", 8)},
	})
	require.NoError(t, err)
	// 10 (system) + 1+4 + 2+4
	assert.Equal(t, 21, n)
}

func TestTruncate_WithinBudget(t *testing.T) {
	msgs := pairs(3)
	got, n, err := Truncate(context.Background(), fixedCounter{n: 100}, "", msgs, 100)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
	assert.Equal(t, 100, n)
}

func TestTruncate_Proportional(t *testing.T) {
	msgs := pairs(10)
	msgs[len(msgs)-1].Content = "last"

	got, n, err := Truncate(context.Background(), fixedCounter{n: 400}, "", msgs, 100)
	require.NoError(t, err)
	// 10 pairs * 100/400 = 2 pairs
	assert.Len(t, got, 4)
	assert.Equal(t, "last", got[3].Content)
	assert.Equal(t, RoleUser, got[0].Role)
	assert.Equal(t, 100, n)
}

func TestTruncate_KeepsAtLeastOnePair(t *testing.T) {
	got, _, err := Truncate(context.Background(), fixedCounter{n: 1_000_000}, "", pairs(5), 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTruncate_SingleMessageOverBudget(t *testing.T) {
	msgs := []Message{{Role: RoleUser, Content: "long"}}
	got, n, err := Truncate(context.Background(), fixedCounter{n: 500}, "", msgs, 100)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
	assert.Equal(t, 500, n)
}

func TestTruncate_Empty(t *testing.T) {
	got, n, err := Truncate(context.Background(), fixedCounter{err: errors.New("unused")}, "", nil, 100)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, n)
}

func TestTruncate_CounterError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Truncate(context.Background(), fixedCounter{err: boom}, "", pairs(1), 100)
	assert.ErrorIs(t, err, boom)
}

func TestTruncate_DefaultCounter(t *testing.T) {
	msgs := pairs(2)
	got, n, err := Truncate(context.Background(), nil, "", msgs, 0)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
	assert.Equal(t, 4*(1+4), n)
}
