package question

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultSimilarityThreshold 是重复问题判定的默认Jaccard阈值
const DefaultSimilarityThreshold = 0.7

// minTokenLength 以下的词元会被丢弃，用于在没有停用词表的情况下去掉连接词噪音
const minTokenLength = 2

// ExistingQuestion 是重复检测的对比对象，由调用方从其数据源组装
type ExistingQuestion struct {
	QuestionID string
	Text       string
}

// DuplicateMatch 描述一条疑似重复的已有问题及其相似度
type DuplicateMatch struct {
	QuestionID string  `json:"id"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// NormalizeText 将文本规范化以便比较：
// 小写化、去掉字母和数字以外的符号（保留äöå等本地字母）、压缩空白。
func NormalizeText(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	// strings.Fields 同时完成空白压缩和首尾修剪
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSet 将规范化后的文本切分为词元集合。
// 文本内的重复词元会被折叠，顺序无意义；长度 ≤ 2 的词元被丢弃。
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(NormalizeText(text)) {
		if len([]rune(tok)) <= minTokenLength {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// JaccardSimilarity 计算两段文本词元集合的Jaccard相似度 |交集|/|并集|。
// 当并集为空（两段文本都没有有效词元）时定义为0，而不是NaN。
func JaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// FindDuplicates 在已有问题中查找与候选文本相似度 ≥ threshold 的疑似重复。
// 返回结果按相似度降序排列；相似度相同的保持输入顺序（稳定排序）。
// 它是输入的纯函数，调用之间不保留任何状态。
func FindDuplicates(candidateText string, existing []ExistingQuestion, threshold float64) []DuplicateMatch {
	// 空文本（或规范化后没有词元的文本）不产生任何重复报告，
	// 避免对同样为空的已有文本误报100%相似。
	if len(tokenSet(candidateText)) == 0 {
		return nil
	}

	var matches []DuplicateMatch
	for _, q := range existing {
		similarity := JaccardSimilarity(candidateText, q.Text)
		if similarity >= threshold {
			matches = append(matches, DuplicateMatch{
				QuestionID: q.QuestionID,
				Text:       q.Text,
				Similarity: similarity,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}
