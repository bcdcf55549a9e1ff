// room/interfaces.go
package room

import (
	"time"

	"github.com/wfunc/wordclash/models"
)

// Broadcaster defines the interface for broadcasting messages to a room.
// This is defined here to break the import cycle between room and broadcast.
type Broadcaster interface {
	BroadcastToRoom(code string, msgID uint16, data []byte) error
}

// TurnScheduler 由回合调度器实现：每个房间一个倒计时和一个回合间歇，
// 两者都必须可以在相位切换时显式取消。
type TurnScheduler interface {
	StartCountdown(r *Room, interval time.Duration)
	StopCountdown(code string)
	ScheduleTurnGap(r *Room, delay time.Duration)
	CancelAll(code string)
}

// DeckSource 牌池来源（deck.Manager 实现）
type DeckSource interface {
	ShuffledDeck() []models.Card
	// CheckLowWatermark returns true when a background replenishment was
	// started; onReplenished runs after the merge with the new pool size.
	CheckLowWatermark(onReplenished func(total int)) bool
}
