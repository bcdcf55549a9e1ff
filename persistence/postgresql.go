// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL 驱动

	"github.com/wfunc/wordclash/models"
)

// PostgreSQL 数据库实现
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 初始化表结构
	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	// 创建卡牌表
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS cards (
            id SERIAL PRIMARY KEY,
            card_id VARCHAR(64) UNIQUE NOT NULL,
            word VARCHAR(128) UNIQUE NOT NULL,
            forbidden JSONB NOT NULL,
            category VARCHAR(64) DEFAULT '',
            difficulty VARCHAR(16) DEFAULT 'normal',
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	return err
}

// LoadAllCards 进程启动时加载全部卡池
func (p *PostgreSQL) LoadAllCards() ([]models.Card, error) {
	rows, err := p.db.Query(`
        SELECT card_id, word, forbidden, category, difficulty FROM cards ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var card models.Card
		var forbidden []byte
		if err := rows.Scan(&card.ID, &card.Word, &forbidden, &card.Category, &card.Difficulty); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(forbidden, &card.Forbidden); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// InsertCards 批量写入新卡，word 冲突时跳过
func (p *PostgreSQL) InsertCards(cards []models.Card) (int, error) {
	tx, err := p.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, card := range cards {
		forbidden, err := json.Marshal(card.Forbidden)
		if err != nil {
			return inserted, err
		}

		result, err := tx.Exec(`
            INSERT INTO cards (card_id, word, forbidden, category, difficulty)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (word) DO NOTHING
        `, card.ID, card.Word, forbidden, card.Category, card.Difficulty)
		if err != nil {
			return inserted, err
		}

		n, _ := result.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
