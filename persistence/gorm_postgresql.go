// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/wfunc/wordclash/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold: time.Second,   // 慢SQL阈值
			LogLevel:      logger.Silent, // 日志级别
			Colorful:      false,         // 禁用彩色打印
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// 获取通用数据库对象 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&models.GormCard{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// LoadAllCards 进程启动时加载全部卡池
func (g *GormPostgreSQL) LoadAllCards() ([]models.Card, error) {
	var rows []models.GormCard
	if err := g.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	cards := make([]models.Card, 0, len(rows))
	for _, row := range rows {
		var forbidden []string
		if err := json.Unmarshal([]byte(row.Forbidden), &forbidden); err != nil {
			return nil, err
		}
		cards = append(cards, models.Card{
			ID:         row.CardID,
			Word:       row.Word,
			Forbidden:  forbidden,
			Category:   row.Category,
			Difficulty: row.Difficulty,
		})
	}
	return cards, nil
}

// InsertCards 批量写入新卡，word 冲突时跳过
func (g *GormPostgreSQL) InsertCards(cards []models.Card) (int, error) {
	if len(cards) == 0 {
		return 0, nil
	}

	rows := make([]models.GormCard, 0, len(cards))
	for _, card := range cards {
		forbidden, err := json.Marshal(card.Forbidden)
		if err != nil {
			return 0, err
		}
		rows = append(rows, models.GormCard{
			CardID:     card.ID,
			Word:       card.Word,
			Forbidden:  string(forbidden),
			Category:   card.Category,
			Difficulty: card.Difficulty,
		})
	}

	result := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "word"}},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// Close 关闭数据库连接
func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
