// room/registry.go
package room

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wfunc/wordclash/config"
	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/timer"
)

// Registry 管理所有存活的房间。显式构造、显式关停，
// 不走进程级全局变量，引用一路传给传输层。
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	rng     *rand.Rand
	cfg     config.GameConfig
	deck    DeckSource
	sched   TurnScheduler
	timers  *timer.TimerManager
	sweepID int64
	closed  bool
}

func NewRegistry(cfg config.GameConfig, deck DeckSource, sched TurnScheduler, timers *timer.TimerManager) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg:    cfg,
		deck:   deck,
		sched:  sched,
		timers: timers,
	}
}

// CreateRoom 创建房间，房间码保证在存活房间中唯一
func (reg *Registry) CreateRoom(mode Mode, broadcaster Broadcaster) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var code string
	for {
		code = generateCode(reg.rng)
		if _, exists := reg.rooms[code]; !exists {
			break
		}
	}

	r := NewRoom(code, mode, reg.cfg, reg.deck, reg.sched, broadcaster, reg.timers, reg.rng)
	reg.rooms[code] = r
	return r
}

func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, exists := reg.rooms[code]
	return r, exists
}

// Remove 移除并关闭一个房间
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	r, exists := reg.rooms[code]
	if exists {
		delete(reg.rooms, code)
	}
	reg.mu.Unlock()

	if exists {
		r.Close()
	}
}

func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Rooms 当前所有房间的副本
func (reg *Registry) Rooms() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// StartSweeper 周期回收空房间和闲置超时的房间。
// 这是唯一跨房间的操作，只删除，从不改动存活房间的状态。
func (reg *Registry) StartSweeper(interval time.Duration) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.sweepID != 0 || reg.closed {
		return
	}
	reg.sweepID = reg.timers.AddTimer(interval, interval, reg.sweep)
}

func (reg *Registry) sweep() {
	now := time.Now()
	idle := reg.cfg.RoomIdleTimeout()

	for _, r := range reg.Rooms() {
		if r.Expired(idle, now) {
			logger.Log.Infof("Sweeping room %s (participants=%d)", r.Code, r.ParticipantCount())
			reg.Remove(r.Code)
		}
	}
}

// Shutdown 关停：停止清扫并销毁所有房间
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	reg.closed = true
	if reg.sweepID != 0 {
		reg.timers.RemoveTimer(reg.sweepID)
		reg.sweepID = 0
	}
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.rooms = make(map[string]*Room)
	reg.mu.Unlock()

	for _, r := range rooms {
		r.Close()
	}
}
