package question

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Pitäisikö VEROJA nostaa?", "pitäisikö veroja nostaa"},
		{"  paljon   välilyöntejä  ", "paljon välilyöntejä"},
		{"numerot 123 säilyvät", "numerot 123 säilyvät"},
		{"!!!???", ""},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeText(c.in), "NormalizeText(%q)", c.in)
	}
}

func TestJaccardSimilarityIdentity(t *testing.T) {
	text := "pitäisikö veroja nostaa merkittävästi"
	require.Equal(t, 1.0, JaccardSimilarity(text, text))
	// 标点和大小写差异不影响结果
	require.Equal(t, 1.0, JaccardSimilarity(text, "Pitäisikö VEROJA nostaa merkittävästi?"))
}

func TestJaccardSimilarityDisjoint(t *testing.T) {
	sim := JaccardSimilarity("pitäisikö veroja nostaa", "kouluruoka olla ilmaista kaikille")
	require.Equal(t, 0.0, sim)
}

func TestJaccardSimilarityPartialOverlap(t *testing.T) {
	// 集合 {tuloveroja korottaa} 与 {tuloveroja laskettava}: 交1 并3
	sim := JaccardSimilarity("tuloveroja korottaa", "tuloveroja laskettava")
	require.InDelta(t, 1.0/3.0, sim, 1e-9)
	require.GreaterOrEqual(t, sim, 0.0)
	require.LessOrEqual(t, sim, 1.0)
}

func TestJaccardSimilarityEmptyUnion(t *testing.T) {
	// 两个空集合的并集为空，约定相似度为0而不是除零
	require.Equal(t, 0.0, JaccardSimilarity("", ""))
	require.Equal(t, 0.0, JaccardSimilarity("!?", "..."))
}

func TestTokenSetDropsShortTokens(t *testing.T) {
	set := tokenSet("on va ja verotus nostettava")
	require.NotContains(t, set, "on")
	require.NotContains(t, set, "va")
	require.NotContains(t, set, "ja")
	require.Contains(t, set, "verotus")
	require.Contains(t, set, "nostettava")
}

func TestFindDuplicatesThreshold(t *testing.T) {
	existing := []ExistingQuestion{
		{QuestionID: "q1", Text: "Pitäisikö tuloveroja korottaa merkittävästi?"},
		{QuestionID: "q2", Text: "Pitäisikö kouluruoan olla ilmaista kaikille opiskelijoille?"},
	}

	// 与q1几乎相同，只是标点和大小写不同
	matches := FindDuplicates("pitäisikö tuloveroja korottaa MERKITTÄVÄSTI", existing, 0.7)
	require.Len(t, matches, 1)
	require.Equal(t, "q1", matches[0].QuestionID)
	require.Equal(t, 1.0, matches[0].Similarity)

	// 完全无关的文本不应命中任何问题
	matches = FindDuplicates("ydinvoimaa lisättävä energiantuotannossa", existing, 0.7)
	require.Empty(t, matches)
}

func TestFindDuplicatesSortedDescending(t *testing.T) {
	existing := []ExistingQuestion{
		{QuestionID: "partial", Text: "tuloveroja korottaa hieman ensi vuonna"},
		{QuestionID: "exact", Text: "tuloveroja korottaa"},
	}
	matches := FindDuplicates("tuloveroja korottaa", existing, 0.3)
	require.Len(t, matches, 2)
	require.Equal(t, "exact", matches[0].QuestionID)
	require.Greater(t, matches[0].Similarity, matches[1].Similarity)
}

func TestFindDuplicatesEmptyCandidate(t *testing.T) {
	existing := []ExistingQuestion{{QuestionID: "q1", Text: "verotus nostettava"}}
	require.Empty(t, FindDuplicates("", existing, 0.7))
	require.Empty(t, FindDuplicates("?!", existing, 0.7))
}
