package startup

import (
	"context"
	"fmt"

	"github.com/vaalikone-dev/vaalikone-backend/internal/candidate"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/metadata"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
	"github.com/vaalikone-dev/vaalikone-backend/internal/user"
	"github.com/vaalikone-dev/vaalikone-backend/internal/vote"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := metadata.WarmupCache(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := question.PrimeCachedDB(); err != nil {
		return err
	}
	if err := candidate.PrimeCachedDB(); err != nil {
		return err
	}
	if err := vote.PrimeDB(); err != nil {
		return err
	}
	if err := vote.RebuildAndApplyVotes(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := metadata.WarmupCache(); err != nil {
		return err
	}
	if err := question.WarmupCache(); err != nil {
		return err
	}
	if err := user.WarmupCache(); err != nil {
		return err
	}
	if err := vote.RebuildAndApplyVotes(); err != nil {
		return err
	}

	// 触发一次新的快照
	fmt.Println("缓存热重建完成，正在触发一次新的数据快照...")
	if err := question.CreateConsistentSnapshotInDB(context.Background()); err != nil {
		fmt.Printf("警告: 缓存热重建后的快照创建失败: %v\n", err)
		return nil
	}
	fmt.Println("快照创建成功！")

	return nil
}
