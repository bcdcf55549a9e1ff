// room/participant.go
package room

import (
	"github.com/wfunc/wordclash/models"
	"github.com/wfunc/wordclash/session"
)

type ParticipantStatus int

const (
	StatusActive ParticipantStatus = iota
	StatusSpectating
)

// Participant 房间里的一名玩家。ID 是持久身份，断线期间记录保留，
// Sess 为 nil 表示当前离线（宽限期内）。
type Participant struct {
	ID      string
	Name    string
	Team    string
	Sess    *session.Session
	Host    bool
	Status  ParticipantStatus
	JoinSeq int
	Stats   models.PlayerStats
}

func (p *Participant) Connected() bool {
	return p.Sess != nil
}

func (p *Participant) view() models.ParticipantView {
	return models.ParticipantView{
		Name:       p.Name,
		Team:       p.Team,
		Host:       p.Host,
		Spectating: p.Status == StatusSpectating,
		Connected:  p.Connected(),
	}
}
