package vote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateEloEqualRatings(t *testing.T) {
	// 同分对局的期望胜率各为0.5，胜者 +16，负者 -16
	newWinner, newLoser := CalculateElo(1200, 1200)
	require.Equal(t, 1216.0, newWinner)
	require.Equal(t, 1184.0, newLoser)
}

func TestCalculateEloUpset(t *testing.T) {
	// 低分方爆冷获胜时得分变化应大于高分方获胜的情况
	upsetWinner, upsetLoser := CalculateElo(1000, 1400)
	expectedWinner, expectedLoser := CalculateElo(1400, 1000)

	upsetGain := upsetWinner - 1000
	expectedGain := expectedWinner - 1400
	require.Greater(t, upsetGain, expectedGain)

	// 分数变化守恒（忽略四舍五入误差）
	require.InDelta(t, upsetGain, 1400-upsetLoser, 1.0)
	require.InDelta(t, expectedGain, 1000-expectedLoser, 1.0)
}

func TestCalculateEloRoundsToInteger(t *testing.T) {
	newWinner, newLoser := CalculateElo(1213, 1187)
	require.Equal(t, newWinner, float64(int64(newWinner)))
	require.Equal(t, newLoser, float64(int64(newLoser)))
}

func TestCalculateEloNotIdempotent(t *testing.T) {
	// 重复应用同一场对比会继续偏移分数，而不是停在首次结果上
	w1, l1 := CalculateElo(1200, 1200)
	w2, l2 := CalculateElo(w1, l1)
	require.NotEqual(t, w1, w2)
	require.NotEqual(t, l1, l2)
	require.Greater(t, w2, w1)
	require.Less(t, l2, l1)
}

func TestCalculateEloStrongFavorite(t *testing.T) {
	// 期望中的胜利几乎不改变分数
	newWinner, newLoser := CalculateElo(2000, 1200)
	require.LessOrEqual(t, newWinner-2000, 2.0)
	require.GreaterOrEqual(t, newLoser, 1198.0)
}
