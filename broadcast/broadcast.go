// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/wordclash/room"
	"github.com/wfunc/wordclash/session"
)

var (
	ErrRoomNotFound = errors.New("room not found")
)

// 广播接口
type Broadcaster interface {
	BroadcastToRoom(code string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
	SendToPlayer(playerID string, msgID uint16, data []byte) error
}

// 基于房间的广播器。收件人从会话管理器按房间码索引取出，
// 不触碰房间内部状态。
type RoomBroadcaster struct {
	registry       *room.Registry
	sessionManager *session.Manager
}

func NewRoomBroadcaster(registry *room.Registry, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		registry:       registry,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(code string, msgID uint16, data []byte) error {
	if _, exists := b.registry.Get(code); !exists {
		return ErrRoomNotFound
	}

	for _, s := range b.sessionManager.GetByRoom(code) {
		if err := s.Send(msgID, data); err != nil {
			// 发送失败的连接由读循环负责收尾
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	for _, r := range b.registry.Rooms() {
		b.BroadcastToRoom(r.Code, msgID, data)
	}
	return nil
}

func (b *RoomBroadcaster) SendToPlayer(playerID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByPlayerID(playerID) {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}
