package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateProvisionalUser 生成一个临时的、尚未持久化的新设备UUID。
// 这个UUID将被设置到cookie中，首次投票时才会被持久化。
func CreateProvisionalUser() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsUserKnown 检查一个给定的UUID是否已经被持久化过。
// 它只查询Redis缓存，以获得最高性能。
func IsUserKnown(uuidStr string) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}
	exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuidStr).Result()
	if err != nil {
		return false, fmt.Errorf("检查Redis用户缓存时出错: %w", err)
	}
	return exists, nil
}

// RecordVoteOutcome 在给定的SQLite事务中为设备累加投票计数器。
// 设备第一次出现时会就地创建记录（upsert）。
func RecordVoteOutcome(tx *gorm.DB, uuidStr string, skipped bool) error {
	newUser := User{UUID: uuidStr}
	column := "votes_count"
	if skipped {
		newUser.SkipCount = 1
		column = "skip_count"
	} else {
		newUser.VotesCount = 1
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{column: gorm.Expr(column + " + 1")}),
	}).Create(&newUser).Error
	if err != nil {
		return fmt.Errorf("无法更新用户 %s 的计数器: %w", uuidStr, err)
	}

	// 同步Redis缓存；失败只影响后续的快速判断，不影响数据正确性
	if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuidStr).Err(); err != nil {
		fmt.Printf("警告: 无法将用户 %s 加入Redis缓存: %v\n", uuidStr, err)
	}
	return nil
}

// BatchCreateUsers 把一批历史设备UUID同步到user表和Redis缓存。
// 已存在的记录保持不变。
func BatchCreateUsers(uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}

	users := make([]User, 0, len(uuids))
	for _, id := range uuids {
		if !IsValidUUID(id) {
			continue
		}
		users = append(users, User{UUID: id})
	}
	if len(users) == 0 {
		return nil
	}

	err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("无法批量创建用户: %w", err)
	}

	members := make([]interface{}, 0, len(users))
	for _, u := range users {
		members = append(members, u.UUID)
	}
	if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, members...).Err(); err != nil {
		return fmt.Errorf("无法批量写入Redis用户缓存: %w", err)
	}
	return nil
}
