// orchestrator/orchestrator.go
package orchestrator

import (
	"sync"
	"time"

	"github.com/wfunc/wordclash/room"
	"github.com/wfunc/wordclash/timer"
)

// Orchestrator 回合调度器：每个房间最多一个倒计时和一个回合间歇。
// 两类句柄在相位离开时必须显式取消，杜绝旧定时器打进新状态。
type Orchestrator struct {
	timers     *timer.TimerManager
	mu         sync.Mutex
	countdowns map[string]int64 // room code -> timer id
	gaps       map[string]int64
}

func New(timers *timer.TimerManager) *Orchestrator {
	return &Orchestrator{
		timers:     timers,
		countdowns: make(map[string]int64),
		gaps:       make(map[string]int64),
	}
}

// StartCountdown 启动每秒滴答。已有倒计时会被先取消再替换。
func (o *Orchestrator) StartCountdown(r *room.Room, interval time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.countdowns[r.Code]; ok {
		o.timers.RemoveTimer(id)
	}
	o.countdowns[r.Code] = o.timers.AddTimer(interval, interval, r.CountdownTick)
}

// StopCountdown 解除倒计时。描述者掉线强制收盘前也会先走这里，
// 避免自然超时和强制收盘各关一次。
func (o *Orchestrator) StopCountdown(code string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.countdowns[code]; ok {
		o.timers.RemoveTimer(id)
		delete(o.countdowns, code)
	}
}

// ScheduleTurnGap 安排回合间歇后的下一回合公告（单次）
func (o *Orchestrator) ScheduleTurnGap(r *room.Room, delay time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.gaps[r.Code]; ok {
		o.timers.RemoveTimer(id)
	}
	code := r.Code
	o.gaps[code] = o.timers.AddTimer(delay, 0, func() {
		o.clearGap(code)
		// 房间在间歇里重开或回收时，这次触发会被房间侧忽略
		r.TurnGapElapsed()
	})
}

func (o *Orchestrator) clearGap(code string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.gaps, code)
}

// CancelAll 取消一个房间的所有调度（重开、终局、回收时）
func (o *Orchestrator) CancelAll(code string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.countdowns[code]; ok {
		o.timers.RemoveTimer(id)
		delete(o.countdowns, code)
	}
	if id, ok := o.gaps[code]; ok {
		o.timers.RemoveTimer(id)
		delete(o.gaps, code)
	}
}
