package database

import (
	"fmt"
	"log"
	"os"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是全局的GORM实例。SQLite是系统的持久化底座：
// 问题、候选人、投票记录和快照检查点都存放在这里。
var DB *gorm.DB

// InitDB 按配置打开SQLite数据库。连接失败直接panic，没有数据库就没有可运行的系统。
func InitDB(cfg config.SqliteConfig) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
			Colorful: true,
		},
	)

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		panic(fmt.Sprintf("连接数据库失败 (%s): %v", cfg.Path, err))
	}
	DB = db

	fmt.Printf("数据库连接成功: %s\n", cfg.Path)
}
