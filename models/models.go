// models/models.go
package models

// Card 卡牌数据模型。一张卡固定带五个禁用词，创建后不再修改。
type Card struct {
	ID         string   `json:"id"`
	Word       string   `json:"word"`
	Forbidden  []string `json:"forbidden"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"` // easy/normal/hard
}

// PlayerStats 单局内的玩家统计
type PlayerStats struct {
	Described int `json:"described"` // 作为描述者猜中的卡数
	Guessed   int `json:"guessed"`   // 作为队友参与猜中的卡数
}

// TeamView 队伍状态（用于广播）
type TeamView struct {
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	Describer string   `json:"describer,omitempty"`
	Score     int      `json:"score"`
}

// ParticipantView 玩家状态（用于广播）
type ParticipantView struct {
	Name       string `json:"name"`
	Team       string `json:"team,omitempty"`
	Host       bool   `json:"host"`
	Spectating bool   `json:"spectating"`
	Connected  bool   `json:"connected"`
}

// RoomSnapshot 房间状态快照（用于广播）
type RoomSnapshot struct {
	Code             string            `json:"code"`
	Mode             string            `json:"mode"`
	Lifecycle        string            `json:"lifecycle"`
	Phase            string            `json:"phase,omitempty"`
	Teams            []TeamView        `json:"teams,omitempty"`
	Participants     []ParticipantView `json:"participants"`
	ActiveTeam       string            `json:"active_team,omitempty"`
	TurnNumber       int               `json:"turn_number,omitempty"`
	SecondsRemaining int               `json:"seconds_remaining,omitempty"`
}

// TurnStarted 回合公告
type TurnStarted struct {
	TurnNumber int    `json:"turn_number"`
	ActiveTeam string `json:"active_team"`
	Describer  string `json:"describer"`
}

// TimerTick 倒计时广播
type TimerTick struct {
	SecondsRemaining int `json:"seconds_remaining"`
}

// CardScored 记分结果
type CardScored struct {
	Outcome string         `json:"outcome"` // correct/forbidden/skip
	CardID  string         `json:"card_id"`
	Scores  map[string]int `json:"scores"`
}

// TurnEnded 回合结束
type TurnEnded struct {
	Reason        string         `json:"reason"` // timeout/describer-left/game-over
	Scores        map[string]int `json:"scores"`
	NextTeam      string         `json:"next_team,omitempty"`
	NextDescriber string         `json:"next_describer,omitempty"`
}

// ParticipantResult 终局里单个玩家的成绩。按持久玩家ID键入，
// 同名玩家互不覆盖。
type ParticipantResult struct {
	Name  string      `json:"name"`
	Team  string      `json:"team,omitempty"`
	Stats PlayerStats `json:"stats"`
}

// GameOver 终局结算
type GameOver struct {
	Scores map[string]int               `json:"scores"`
	Stats  map[string]ParticipantResult `json:"stats"` // keyed by player ID
	Winner string                       `json:"winner,omitempty"`
	Tie    bool                         `json:"tie"`
}

// HostChanged 房主转移
type HostChanged struct {
	Host string `json:"host"`
}

// DeckReplenished 卡池补充完成
type DeckReplenished struct {
	Total int `json:"total"`
}

// ErrorReply 发给单个请求者的拒绝
type ErrorReply struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
