// room/classic.go
package room

import (
	"sort"

	"github.com/wfunc/wordclash/models"
)

type Lifecycle string

const (
	LifecycleLobby     Lifecycle = "lobby"
	LifecycleActive    Lifecycle = "active"
	LifecycleConcluded Lifecycle = "concluded"

	LifecyclePracticeActive Lifecycle = "practice-active"
	LifecyclePracticeEnded  Lifecycle = "practice-ended"
)

type Phase string

const (
	PhaseAwaitingDescriber Phase = "awaiting-describer"
	PhaseTurnActive        Phase = "turn-active"
	PhaseTurnEnded         Phase = "turn-ended"
)

// 固定的两支队伍
const (
	TeamBlue = "blue"
	TeamRed  = "red"
)

func validTeam(name string) bool {
	return name == TeamBlue || name == TeamRed
}

// Outcome 单张卡的判定结果
const (
	OutcomeCorrect   = "correct"
	OutcomeForbidden = "forbidden"
	OutcomeSkip      = "skip"
)

// Team 一支队伍：有序成员列表 + 描述者轮换游标
type Team struct {
	Name           string
	MemberIDs      []string
	DescriberIndex int
	Score          int
}

// DescriberID 当前描述者，队伍为空时返回空串
func (t *Team) DescriberID() string {
	if len(t.MemberIDs) == 0 {
		return ""
	}
	return t.MemberIDs[t.DescriberIndex%len(t.MemberIDs)]
}

// advance 游标移到下一名成员（回绕）
func (t *Team) advance() {
	if len(t.MemberIDs) == 0 {
		t.DescriberIndex = 0
		return
	}
	t.DescriberIndex = (t.DescriberIndex + 1) % len(t.MemberIDs)
}

// removeMember 移除成员并修正游标，保证游标仍指向存活成员
func (t *Team) removeMember(id string) {
	for i, mid := range t.MemberIDs {
		if mid != id {
			continue
		}
		t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
		if len(t.MemberIDs) == 0 {
			t.DescriberIndex = 0
			return
		}
		if i < t.DescriberIndex {
			t.DescriberIndex--
		}
		t.DescriberIndex %= len(t.MemberIDs)
		return
	}
}

// ClassicGame 经典模式的对局状态
type ClassicGame struct {
	Phase            Phase
	Teams            []*Team
	ActiveTeam       int
	Deck             []models.Card
	UsedIDs          map[string]bool
	Current          *models.Card
	TurnNumber       int
	SecondsRemaining int
}

func newClassicGame() *ClassicGame {
	return &ClassicGame{
		Phase:   PhaseAwaitingDescriber,
		UsedIDs: make(map[string]bool),
	}
}

func (g *ClassicGame) activeTeam() *Team {
	return g.Teams[g.ActiveTeam]
}

func (g *ClassicGame) team(name string) *Team {
	for _, t := range g.Teams {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// drawNext 从预洗好的私有牌堆前端取下一张未用过的卡；
// 没有剩余未用卡时返回 nil，即牌堆耗尽。
func (g *ClassicGame) drawNext() *models.Card {
	for i := range g.Deck {
		if !g.UsedIDs[g.Deck[i].ID] {
			card := g.Deck[i]
			return &card
		}
	}
	return nil
}

func (g *ClassicGame) scores() map[string]int {
	scores := make(map[string]int, len(g.Teams))
	for _, t := range g.Teams {
		scores[t.Name] = t.Score
	}
	return scores
}

// buildTeams 开局时固定队伍顺序（按名字典序）和成员顺序（按加入顺序）
func buildTeams(participants map[string]*Participant) []*Team {
	byName := map[string][]*Participant{
		TeamBlue: nil,
		TeamRed:  nil,
	}
	for _, p := range participants {
		if p.Status != StatusActive {
			continue
		}
		byName[p.Team] = append(byName[p.Team], p)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	teams := make([]*Team, 0, len(names))
	for _, name := range names {
		members := byName[name]
		sort.Slice(members, func(i, j int) bool {
			return members[i].JoinSeq < members[j].JoinSeq
		})
		ids := make([]string, len(members))
		for i, p := range members {
			ids[i] = p.ID
		}
		teams = append(teams, &Team{Name: name, MemberIDs: ids})
	}
	return teams
}
