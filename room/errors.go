// room/errors.go
package room

// Rejection 发回给单个请求者的类型化拒绝。拒绝不改变房间状态，
// Code 是客户端可以编程处理的稳定标识。
type Rejection struct {
	Code    string
	Message string
}

func (r *Rejection) Error() string {
	return r.Code + ": " + r.Message
}

var (
	ErrRoomNotFound    = &Rejection{"room-not-found", "room does not exist"}
	ErrTeamFull        = &Rejection{"team-full", "team is at capacity"}
	ErrInvalidTeam     = &Rejection{"invalid-team", "unknown team name"}
	ErrRoomOccupied    = &Rejection{"room-occupied", "practice room already has a player"}
	ErrUnknownPlayer   = &Rejection{"unknown-player", "player is not part of this room"}
	ErrWrongPhase      = &Rejection{"wrong-phase", "action not valid in the current phase"}
	ErrWrongMode       = &Rejection{"wrong-mode", "action not valid for this room mode"}
	ErrNotHost         = &Rejection{"not-host", "only the host may do that"}
	ErrOutOfTurn       = &Rejection{"out-of-turn", "not your role right now"}
	ErrStaleCard       = &Rejection{"stale-card", "that card has already been resolved"}
	ErrTeamTooSmall    = &Rejection{"team-too-small", "every team needs more players"}
	ErrReconnectFailed = &Rejection{"reconnect-failed", "identity not valid for this room"}
)
