package question

import "math/rand"

// PickRandomPair 从给定的ID列表中等概率地抽取两个互不相同的ID。
// 每次调用都是独立的简单随机抽样，不记忆之前抽取过的组合，
// 因此跨调用出现重复的组合是允许且符合预期的。
// 列表长度不足2时返回ok=false，这是一个"无可用配对"的信号而不是错误。
func PickRandomPair(ids []string) (a, b string, ok bool) {
	if len(ids) < 2 {
		return "", "", false
	}

	// 抽取第一个下标，再在剩余范围内抽取第二个，保证两者互不相同
	i := rand.Intn(len(ids))
	j := rand.Intn(len(ids) - 1)
	if j >= i {
		j++
	}
	return ids[i], ids[j], true
}
