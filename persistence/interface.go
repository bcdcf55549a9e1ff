// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/wordclash/models"
)

// CardStore 卡牌存储接口
type CardStore interface {
	LoadAllCards() ([]models.Card, error)
	// InsertCards 批量写入，按 word 去重（冲突跳过），返回实际写入的数量。
	InsertCards(cards []models.Card) (int, error)
	Close() error
}

// 错误定义
var (
	ErrNoCards = fmt.Errorf("no cards in store")
)
