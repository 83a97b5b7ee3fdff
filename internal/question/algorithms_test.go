package question

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickRandomPairDistinct(t *testing.T) {
	ids := []string{"q1", "q2", "q3", "q4", "q5"}
	for i := 0; i < 1000; i++ {
		a, b, ok := PickRandomPair(ids)
		require.True(t, ok)
		require.NotEqual(t, a, b)
		require.Contains(t, ids, a)
		require.Contains(t, ids, b)
	}
}

func TestPickRandomPairTwoElements(t *testing.T) {
	ids := []string{"q1", "q2"}
	for i := 0; i < 100; i++ {
		a, b, ok := PickRandomPair(ids)
		require.True(t, ok)
		require.NotEqual(t, a, b)
	}
}

func TestPickRandomPairInsufficient(t *testing.T) {
	_, _, ok := PickRandomPair(nil)
	require.False(t, ok)

	_, _, ok = PickRandomPair([]string{"only"})
	require.False(t, ok)
}

func TestPickRandomPairCoversAllPositions(t *testing.T) {
	// 重复抽取后每个问题都应该出现过，粗略验证抽取没有死角
	ids := []string{"q1", "q2", "q3", "q4"}
	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		a, b, ok := PickRandomPair(ids)
		require.True(t, ok)
		seen[a] = true
		seen[b] = true
	}
	require.Len(t, seen, len(ids))
}
