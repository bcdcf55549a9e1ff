// room/room.go
package room

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/wordclash/config"
	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/models"
	"github.com/wfunc/wordclash/network"
	"github.com/wfunc/wordclash/session"
	"github.com/wfunc/wordclash/timer"
)

// Mode 房间模式
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModePractice Mode = "practice"
)

// Room 一个游戏房间。服务端是唯一权威：所有状态变更都在这里检查、
// 执行并广播。每个操作持有 mu 执行到结束，操作之间不会交错。
type Room struct {
	Code      string
	Mode      Mode
	CreatedAt time.Time

	mu           sync.Mutex
	lifecycle    Lifecycle
	participants map[string]*Participant // playerID -> participant
	joinSeq      int
	lastActivity time.Time
	closed       bool

	// 按 Mode 二选一
	classic  *ClassicGame
	practice *PracticeGame

	cfg         config.GameConfig
	deck        DeckSource
	scheduler   TurnScheduler
	broadcaster Broadcaster
	timers      *timer.TimerManager
	graceTimers map[string]int64 // playerID -> timer id
}

// NewRoom 创建房间。classic 房从大厅开始；practice 房立即进入练习状态。
func NewRoom(code string, mode Mode, cfg config.GameConfig, deck DeckSource,
	scheduler TurnScheduler, broadcaster Broadcaster, timers *timer.TimerManager,
	rng *rand.Rand) *Room {

	r := &Room{
		Code:         code,
		Mode:         mode,
		CreatedAt:    time.Now(),
		participants: make(map[string]*Participant),
		lastActivity: time.Now(),
		cfg:          cfg,
		deck:         deck,
		scheduler:    scheduler,
		broadcaster:  broadcaster,
		timers:       timers,
		graceTimers:  make(map[string]int64),
	}

	switch mode {
	case ModePractice:
		r.lifecycle = LifecyclePracticeActive
		r.practice = newPracticeGame(deck.ShuffledDeck(), rng)
	default:
		r.Mode = ModeClassic
		r.lifecycle = LifecycleLobby
		r.classic = newClassicGame()
	}
	return r
}

// --- 进出房间 ---

// AddParticipant 加入房间。对局进行中加入的玩家成为旁观者，
// 队伍在加入时记录，到下一个回合边界才进入轮换。
func (r *Room) AddParticipant(sess *session.Session, name, team string) (*Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Mode == ModePractice {
		if len(r.participants) >= 1 {
			return nil, ErrRoomOccupied
		}
		team = ""
	} else {
		if !validTeam(team) {
			return nil, ErrInvalidTeam
		}
		if r.teamCountLocked(team) >= r.cfg.TeamCapacity {
			return nil, ErrTeamFull
		}
	}

	p := &Participant{
		ID:      uuid.New().String(),
		Name:    name,
		Team:    team,
		Sess:    sess,
		Host:    len(r.participants) == 0,
		JoinSeq: r.joinSeq,
	}
	r.joinSeq++

	if r.Mode == ModeClassic && r.lifecycle == LifecycleActive {
		p.Status = StatusSpectating
	}
	r.participants[p.ID] = p
	r.touchLocked()

	if p.Status == StatusSpectating {
		r.broadcastLocked(network.MsgTypeSpectatorJoined, p.view())
	}
	r.broadcastLocked(network.MsgTypeRoomUpdated, r.snapshotLocked())
	return p, nil
}

// Reconnect 用持久玩家ID找回身份：队伍、房主标记、统计都原样保留。
func (r *Room) Reconnect(sess *session.Session, playerID string) (*Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[playerID]
	if !ok {
		return nil, ErrReconnectFailed
	}

	r.cancelGraceLocked(playerID)
	p.Sess = sess
	r.touchLocked()
	r.broadcastLocked(network.MsgTypeRoomUpdated, r.snapshotLocked())
	return p, nil
}

// HandleDisconnect 连接断开：记录保留一个宽限期，期间可重连。
// sess 是断开的那条连接。玩家已经在新连接上重连时，旧 TCP 迟到的
// 断开通知会在这里被忽略，不能清掉新会话。
// 描述者在回合中掉线会立即结束该回合；房主掉线立即移交。
func (r *Room) HandleDisconnect(playerID string, sess *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[playerID]
	if !ok || p.Sess != sess {
		return
	}
	p.Sess = nil

	if g := r.classic; g != nil && r.lifecycle == LifecycleActive &&
		g.Phase == PhaseTurnActive && g.activeTeam().DescriberID() == playerID {
		r.closeTurnLocked("describer-left")
	}
	if p.Host {
		r.delegateHostLocked(p)
	}

	r.startGraceLocked(playerID)
	r.broadcastLocked(network.MsgTypeRoomUpdated, r.snapshotLocked())
}

// Leave 主动离开：立即删除记录，不走宽限期。
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelGraceLocked(playerID)
	r.removeParticipantLocked(playerID)
}

// finalizeDeparture 宽限期到点仍未重连，离开成为最终事实
func (r *Room) finalizeDeparture(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.graceTimers, playerID)
	p, ok := r.participants[playerID]
	if !ok || p.Connected() {
		return
	}
	r.removeParticipantLocked(playerID)
}

// teamCountLocked 队伍当前占位数。旁观者也占队伍名额，
// 否则转正时可能超出上限。
func (r *Room) teamCountLocked(team string) int {
	count := 0
	for _, p := range r.participants {
		if p.Team == team {
			count++
		}
	}
	return count
}

func (r *Room) startGraceLocked(playerID string) {
	r.cancelGraceLocked(playerID)
	id := r.timers.AddTimer(r.cfg.ReconnectGrace(), 0, func() {
		r.finalizeDeparture(playerID)
	})
	r.graceTimers[playerID] = id
}

func (r *Room) cancelGraceLocked(playerID string) {
	if id, ok := r.graceTimers[playerID]; ok {
		r.timers.RemoveTimer(id)
		delete(r.graceTimers, playerID)
	}
}

func (r *Room) removeParticipantLocked(playerID string) {
	p, ok := r.participants[playerID]
	if !ok {
		return
	}

	if g := r.classic; g != nil && r.lifecycle == LifecycleActive {
		if g.Phase == PhaseTurnActive && g.activeTeam().DescriberID() == playerID {
			r.closeTurnLocked("describer-left")
		}
		stalled := g.Phase == PhaseAwaitingDescriber && g.activeTeam().DescriberID() == playerID
		if t := g.team(p.Team); t != nil {
			t.removeMember(playerID)
		}
		// 游标正等着的描述者被移除：重新公告本回合，不留死等
		if stalled {
			if team := g.activeTeam(); len(team.MemberIDs) > 0 {
				r.broadcastLocked(network.MsgTypeTurnStarted, models.TurnStarted{
					TurnNumber: g.TurnNumber,
					ActiveTeam: team.Name,
					Describer:  r.nameOfLocked(team.DescriberID()),
				})
			}
		}
	}

	delete(r.participants, playerID)
	if p.Host {
		r.delegateHostLocked(p)
	}
	r.touchLocked()
	r.broadcastLocked(network.MsgTypeRoomUpdated, r.snapshotLocked())
}

// delegateHostLocked 房主移交：加入最早的在线正式成员优先，
// 其次是最早的旁观者。没有剩余玩家时房间等待回收。
func (r *Room) delegateHostLocked(old *Participant) {
	old.Host = false

	var next *Participant
	for _, status := range []ParticipantStatus{StatusActive, StatusSpectating} {
		for _, p := range r.participants {
			if p == old || p.Status != status || !p.Connected() {
				continue
			}
			if next == nil || p.JoinSeq < next.JoinSeq {
				next = p
			}
		}
		if next != nil {
			break
		}
	}
	if next == nil {
		return
	}

	next.Host = true
	r.broadcastLocked(network.MsgTypeHostChanged, models.HostChanged{Host: next.Name})
}

// --- 经典模式对局 ---

// StartGame 开局：仅房主、仅大厅、每队人数达标。队伍顺序在此固定。
func (r *Room) StartGame(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.classic
	if g == nil {
		return ErrWrongMode
	}
	if r.lifecycle != LifecycleLobby {
		return ErrWrongPhase
	}
	p, ok := r.participants[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if !p.Host {
		return ErrNotHost
	}

	teams := buildTeams(r.participants)
	for _, t := range teams {
		if len(t.MemberIDs) < r.cfg.MinTeamSize {
			return ErrTeamTooSmall
		}
	}

	for _, member := range r.participants {
		member.Stats = models.PlayerStats{}
	}
	g.Teams = teams
	g.ActiveTeam = 0
	g.Deck = r.deck.ShuffledDeck()
	g.UsedIDs = make(map[string]bool)
	g.Current = nil
	g.TurnNumber = 0
	r.lifecycle = LifecycleActive
	r.touchLocked()

	r.broadcastLocked(network.MsgTypeGameStarted, r.snapshotLocked())
	r.announceTurnLocked()
	return nil
}

// announceTurnLocked 宣布下一回合：轮换已经就位，等待描述者就绪
func (r *Room) announceTurnLocked() {
	g := r.classic
	g.TurnNumber++
	g.Phase = PhaseAwaitingDescriber
	g.SecondsRemaining = 0

	team := g.activeTeam()
	r.broadcastLocked(network.MsgTypeTurnStarted, models.TurnStarted{
		TurnNumber: g.TurnNumber,
		ActiveTeam: team.Name,
		Describer:  r.nameOfLocked(team.DescriberID()),
	})
}

// DescriberReady 描述者确认开始：抽第一张卡并启动倒计时。
// 只有轮换游标指向的那名玩家可以触发。
func (r *Room) DescriberReady(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.practice != nil {
		return r.practiceNextLocked(playerID)
	}

	g := r.classic
	if r.lifecycle != LifecycleActive || g.Phase != PhaseAwaitingDescriber {
		return ErrWrongPhase
	}
	if g.activeTeam().DescriberID() != playerID {
		return ErrOutOfTurn
	}

	card := g.drawNext()
	if card == nil {
		r.endGameLocked()
		return nil
	}

	g.Phase = PhaseTurnActive
	g.Current = card
	g.SecondsRemaining = r.cfg.TurnSeconds
	r.touchLocked()

	r.revealCardLocked(card)
	r.scheduler.StartCountdown(r, time.Second)
	return nil
}

// ResolveCard 判定当前卡。outcome 决定授权和计分：
//   - correct: 进攻方任意成员，+1 分，记描述者和猜词者的统计
//   - forbidden: 防守方成员举报禁用词，进攻方 -1 分
//   - skip: 仅描述者，不计分
//
// 卡号不匹配是"迟到"（stale-card），角色不符是"越权"（out-of-turn），
// 两者分开返回，客户端可以区分处理。
func (r *Room) ResolveCard(playerID, cardID, outcome string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.practice != nil {
		return r.practiceResolveLocked(playerID, cardID, outcome)
	}

	g := r.classic
	if r.lifecycle != LifecycleActive || g.Phase != PhaseTurnActive {
		return ErrWrongPhase
	}
	p, ok := r.participants[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if g.Current == nil || g.Current.ID != cardID {
		return ErrStaleCard
	}

	team := g.activeTeam()
	describerID := team.DescriberID()

	switch outcome {
	case OutcomeCorrect:
		if p.Team != team.Name || p.Status != StatusActive {
			return ErrOutOfTurn
		}
		team.Score++
		for _, memberID := range team.MemberIDs {
			member, ok := r.participants[memberID]
			if !ok {
				continue
			}
			if memberID == describerID {
				member.Stats.Described++
			} else {
				member.Stats.Guessed++
			}
		}
	case OutcomeForbidden:
		if p.Team == team.Name || p.Status != StatusActive {
			return ErrOutOfTurn
		}
		team.Score--
	case OutcomeSkip:
		if playerID != describerID {
			return ErrOutOfTurn
		}
	default:
		return ErrStaleCard
	}

	g.UsedIDs[cardID] = true
	g.Current = nil
	r.touchLocked()

	r.broadcastLocked(network.MsgTypeCardScored, models.CardScored{
		Outcome: outcome,
		CardID:  cardID,
		Scores:  g.scores(),
	})

	if outcome == OutcomeCorrect && team.Score >= r.cfg.ScoreLimit {
		r.endGameLocked()
		return nil
	}

	next := g.drawNext()
	if next == nil {
		// 牌堆耗尽不是错误，而是终局：比分高者胜，平分判平局
		r.endGameLocked()
		return nil
	}
	g.Current = next
	r.revealCardLocked(next)

	// 每次记分后检查水位，补充在后台进行，不阻塞对局
	if r.deck.CheckLowWatermark(r.notifyReplenished) {
		r.broadcastLocked(network.MsgTypeDeckLow, struct{}{})
	}
	return nil
}

// CountdownTick 由调度器每秒调用一次。相位已经切走的滴答直接忽略。
func (r *Room) CountdownTick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.classic
	if g == nil || r.lifecycle != LifecycleActive || g.Phase != PhaseTurnActive {
		return
	}

	g.SecondsRemaining--
	r.broadcastLocked(network.MsgTypeTimerTick, models.TimerTick{
		SecondsRemaining: g.SecondsRemaining,
	})

	if g.SecondsRemaining <= 0 {
		r.closeTurnLocked("timeout")
	}
}

// closeTurnLocked 结束当前回合：在场的卡作废入已用集合，倒计时先行解除,
// 进攻队游标前移，进攻权交给下一队，等待中的旁观者转正进入轮换。
func (r *Room) closeTurnLocked(reason string) {
	g := r.classic

	r.scheduler.StopCountdown(r.Code)

	if g.Current != nil {
		g.UsedIDs[g.Current.ID] = true
		g.Current = nil
	}

	g.activeTeam().advance()
	g.ActiveTeam = (g.ActiveTeam + 1) % len(g.Teams)
	r.activateSpectatorsLocked()
	g.Phase = PhaseTurnEnded
	g.SecondsRemaining = 0
	r.touchLocked()

	next := g.activeTeam()
	r.broadcastLocked(network.MsgTypeTurnEnded, models.TurnEnded{
		Reason:        reason,
		Scores:        g.scores(),
		NextTeam:      next.Name,
		NextDescriber: r.nameOfLocked(next.DescriberID()),
	})

	if r.lifecycle == LifecycleActive {
		r.scheduler.ScheduleTurnGap(r, r.cfg.TurnGap())
	}
}

// TurnGapElapsed 回合间歇到点。房间若已重开或回收，公告不再适用。
func (r *Room) TurnGapElapsed() {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.classic
	if g == nil || r.lifecycle != LifecycleActive || g.Phase != PhaseTurnEnded {
		return
	}
	r.announceTurnLocked()
}

// activateSpectatorsLocked 回合边界：旁观者追加进所属队伍的轮换
func (r *Room) activateSpectatorsLocked() {
	g := r.classic
	for _, p := range r.participants {
		if p.Status != StatusSpectating {
			continue
		}
		p.Status = StatusActive
		if t := g.team(p.Team); t != nil {
			t.MemberIDs = append(t.MemberIDs, p.ID)
		}
		r.broadcastLocked(network.MsgTypeSpectatorActivated, p.view())
	}
}

// endGameLocked 终局：比分高者胜，平分是平局（不加赛）
func (r *Room) endGameLocked() {
	g := r.classic

	r.scheduler.CancelAll(r.Code)
	g.Current = nil
	g.Phase = PhaseTurnEnded
	g.SecondsRemaining = 0
	r.lifecycle = LifecycleConcluded
	r.touchLocked()

	over := models.GameOver{
		Scores: g.scores(),
		Stats:  make(map[string]models.ParticipantResult),
	}
	for _, p := range r.participants {
		over.Stats[p.ID] = models.ParticipantResult{
			Name:  p.Name,
			Team:  p.Team,
			Stats: p.Stats,
		}
	}

	var best *Team
	tie := false
	for _, t := range g.Teams {
		switch {
		case best == nil || t.Score > best.Score:
			best = t
			tie = false
		case t.Score == best.Score:
			tie = true
		}
	}
	if tie {
		over.Tie = true
	} else if best != nil {
		over.Winner = best.Name
	}

	r.broadcastLocked(network.MsgTypeGameOver, over)
}

// Restart 从结算回到大厅：比分、统计、牌堆清零，成员和身份保留。
func (r *Room) Restart(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.classic
	if g == nil {
		return ErrWrongMode
	}
	if r.lifecycle != LifecycleConcluded {
		return ErrWrongPhase
	}
	p, ok := r.participants[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if !p.Host {
		return ErrNotHost
	}

	r.scheduler.CancelAll(r.Code)
	g.Teams = nil
	g.ActiveTeam = 0
	g.Deck = nil
	g.UsedIDs = make(map[string]bool)
	g.Current = nil
	g.TurnNumber = 0
	g.Phase = PhaseAwaitingDescriber
	g.SecondsRemaining = 0
	for _, member := range r.participants {
		member.Stats = models.PlayerStats{}
		member.Status = StatusActive
	}
	r.lifecycle = LifecycleLobby
	r.touchLocked()

	r.broadcastLocked(network.MsgTypeRoomUpdated, r.snapshotLocked())
	return nil
}

// --- 练习模式 ---

func (r *Room) practiceNextLocked(playerID string) error {
	if r.lifecycle != LifecyclePracticeActive {
		return ErrWrongPhase
	}
	if _, ok := r.participants[playerID]; !ok {
		return ErrUnknownPlayer
	}

	card := r.practice.drawRandom()
	if card == nil {
		return ErrWrongPhase
	}
	r.practice.Current = card
	r.touchLocked()
	r.revealCardLocked(card)
	return nil
}

func (r *Room) practiceResolveLocked(playerID, cardID, outcome string) error {
	g := r.practice
	if r.lifecycle != LifecyclePracticeActive {
		return ErrWrongPhase
	}
	if _, ok := r.participants[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if outcome == OutcomeForbidden {
		return ErrOutOfTurn
	}
	if g.Current == nil || g.Current.ID != cardID {
		return ErrStaleCard
	}

	g.CardsSeen++
	if outcome == OutcomeCorrect {
		g.Correct++
	}
	r.touchLocked()

	next := g.drawRandom()
	g.Current = next
	if next != nil {
		r.revealCardLocked(next)
	}
	return nil
}

// EndPractice 结束练习并结算
func (r *Room) EndPractice(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.practice
	if g == nil {
		return ErrWrongMode
	}
	if r.lifecycle != LifecyclePracticeActive {
		return ErrWrongPhase
	}
	if _, ok := r.participants[playerID]; !ok {
		return ErrUnknownPlayer
	}

	g.Current = nil
	r.lifecycle = LifecyclePracticeEnded
	r.touchLocked()

	r.broadcastLocked(network.MsgTypePracticeEnded, map[string]int{
		"cards_seen": g.CardsSeen,
		"correct":    g.Correct,
	})
	return nil
}

// RestartPractice 重新开始练习
func (r *Room) RestartPractice(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.practice
	if g == nil {
		return ErrWrongMode
	}
	if r.lifecycle != LifecyclePracticeEnded {
		return ErrWrongPhase
	}
	if _, ok := r.participants[playerID]; !ok {
		return ErrUnknownPlayer
	}

	g.reset()
	r.lifecycle = LifecyclePracticeActive
	r.touchLocked()
	r.broadcastLocked(network.MsgTypeRoomUpdated, r.snapshotLocked())
	return nil
}

// --- 广播与序列化 ---

// revealCardLocked 发牌：只发给描述者和防守方正式成员，
// 进攻方的猜词者永远收不到卡面。
func (r *Room) revealCardLocked(card *models.Card) {
	data, err := json.Marshal(card)
	if err != nil {
		logger.Log.Errorf("Room %s: failed to marshal card: %v", r.Code, err)
		return
	}

	if r.practice != nil {
		for _, p := range r.participants {
			r.sendLocked(p, network.MsgTypeCardRevealed, data)
		}
		return
	}

	g := r.classic
	team := g.activeTeam()
	describerID := team.DescriberID()
	for _, p := range r.participants {
		if p.Status != StatusActive {
			continue
		}
		if p.ID == describerID || p.Team != team.Name {
			r.sendLocked(p, network.MsgTypeCardRevealed, data)
		}
	}
}

func (r *Room) sendLocked(p *Participant, msgID uint16, data []byte) {
	if p.Sess == nil {
		return
	}
	if err := p.Sess.Send(msgID, data); err != nil {
		logger.Log.Warnf("Room %s: send to %s failed: %v", r.Code, p.Name, err)
	}
}

func (r *Room) broadcastLocked(msgID uint16, payload interface{}) {
	if r.broadcaster == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Room %s: failed to marshal broadcast: %v", r.Code, err)
		return
	}
	if err := r.broadcaster.BroadcastToRoom(r.Code, msgID, data); err != nil {
		logger.Log.Warnf("Room %s: broadcast failed: %v", r.Code, err)
	}
}

func (r *Room) notifyReplenished(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked(network.MsgTypeDeckReplenished, models.DeckReplenished{Total: total})
}

func (r *Room) nameOfLocked(playerID string) string {
	if p, ok := r.participants[playerID]; ok {
		return p.Name
	}
	return ""
}

// Snapshot 当前房间状态（对外安全，不含卡面）
func (r *Room) Snapshot() models.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() models.RoomSnapshot {
	snap := models.RoomSnapshot{
		Code:      r.Code,
		Mode:      string(r.Mode),
		Lifecycle: string(r.lifecycle),
	}

	for _, p := range r.participants {
		snap.Participants = append(snap.Participants, p.view())
	}

	if g := r.classic; g != nil {
		snap.Phase = string(g.Phase)
		snap.TurnNumber = g.TurnNumber
		snap.SecondsRemaining = g.SecondsRemaining
		for i, t := range g.Teams {
			view := models.TeamView{
				Name:      t.Name,
				Score:     t.Score,
				Describer: r.nameOfLocked(t.DescriberID()),
			}
			for _, id := range t.MemberIDs {
				view.Members = append(view.Members, r.nameOfLocked(id))
			}
			snap.Teams = append(snap.Teams, view)
			if i == g.ActiveTeam {
				snap.ActiveTeam = t.Name
			}
		}
	}
	return snap
}

// --- 生命周期查询与回收 ---

func (r *Room) Lifecycle() Lifecycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lifecycle
}

func (r *Room) ParticipantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

// Expired 空房间或闲置超时的房间可以被回收，不论处于什么状态
func (r *Room) Expired(idle time.Duration, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants) == 0 || now.Sub(r.lastActivity) > idle
}

// Close 回收房间：取消所有定时器。调用方负责先把房间移出注册表。
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.scheduler.CancelAll(r.Code)
	for playerID, id := range r.graceTimers {
		r.timers.RemoveTimer(id)
		delete(r.graceTimers, playerID)
	}
}

func (r *Room) touchLocked() {
	r.lastActivity = time.Now()
}
