package metadata

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetValue 从metadata表读取一个键的值。键不存在时返回空字符串，不视为错误。
func GetValue(db *gorm.DB, key string) (string, error) {
	var entry Entry
	err := db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// SetValue 以upsert的方式写入一个键值对。
// 传入事务句柄时，写入会参与调用方的事务。
func SetValue(db *gorm.DB, key, value string) error {
	entry := Entry{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// GetLastSnapshotVoteID 读取快照检查点，即最近一次快照覆盖到的投票ID
func GetLastSnapshotVoteID(db *gorm.DB) (uint, error) {
	raw, err := GetValue(db, LastSnapshotVoteIDKey)
	if err != nil || raw == "" {
		return 0, err
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("无法解析元数据 '%s' 的值: %w", LastSnapshotVoteIDKey, err)
	}
	return uint(id), nil
}

// SetLastSnapshotVoteID 写入快照检查点
func SetLastSnapshotVoteID(db *gorm.DB, voteID uint) error {
	return SetValue(db, LastSnapshotVoteIDKey, strconv.FormatUint(uint64(voteID), 10))
}

// GetSnapshotTotalVotes 读取截至最近一次快照的已处理投票总数
func GetSnapshotTotalVotes(db *gorm.DB) (int64, error) {
	raw, err := GetValue(db, SnapshotTotalVotesKey)
	if err != nil || raw == "" {
		return 0, err
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析元数据 '%s' 的值: %w", SnapshotTotalVotesKey, err)
	}
	return count, nil
}

// SetSnapshotTotalVotes 写入快照时的已处理投票总数
func SetSnapshotTotalVotes(db *gorm.DB, count int64) error {
	return SetValue(db, SnapshotTotalVotesKey, strconv.FormatInt(count, 10))
}
