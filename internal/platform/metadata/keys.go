package metadata

// SQLite metadata表中使用的键
const (
	// LastSnapshotVoteIDKey 记录最近一次成功快照所包含的最后一条投票记录ID
	LastSnapshotVoteIDKey = "last_snapshot_vote_id"

	// SnapshotTotalVotesKey 记录截至最近一次快照时已处理的投票总数（不含跳过）
	SnapshotTotalVotesKey = "snapshot_total_votes"
)

// Redis中的实时检查点键
const (
	// RedisLastProcessedVoteIDKey 是一个Redis String，
	// 保存最后一条已应用到实时评分存储的投票ID
	RedisLastProcessedVoteIDKey = "meta:last_processed_vote_id"

	// RedisTotalVotesKey 是一个Redis计数器，保存实时的已处理投票总数（不含跳过）
	RedisTotalVotesKey = "meta:total_votes"
)
