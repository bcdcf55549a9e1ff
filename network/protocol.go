package network

// 客户端 -> 服务端
const (
	MsgTypeHeartbeat       = 1
	MsgTypeCreateRoom      = 101
	MsgTypeJoinRoom        = 102
	MsgTypeReconnect       = 103
	MsgTypeLeaveRoom       = 104
	MsgTypeStartGame       = 110
	MsgTypeDescriberReady  = 111
	MsgTypeCardCorrect     = 112
	MsgTypeCardForbidden   = 113
	MsgTypeCardSkip        = 114
	MsgTypeRestartGame     = 115
	MsgTypeEndPractice     = 116
	MsgTypeRestartPractice = 117
)

// 服务端 -> 客户端
const (
	MsgTypeError              = 200
	MsgTypeRoomCreated        = 201
	MsgTypeRoomJoined         = 202
	MsgTypeRoomUpdated        = 203
	MsgTypeReconnectOK        = 204
	MsgTypeReconnectFailed    = 205
	MsgTypeGameStarted        = 210
	MsgTypeTurnStarted        = 211
	MsgTypeCardRevealed       = 212
	MsgTypeTimerTick          = 213
	MsgTypeCardScored         = 214
	MsgTypeTurnEnded          = 215
	MsgTypeGameOver           = 216
	MsgTypeHostChanged        = 217
	MsgTypeSpectatorJoined    = 218
	MsgTypeSpectatorActivated = 219
	MsgTypeDeckLow            = 220
	MsgTypeDeckReplenished    = 221
	MsgTypePracticeEnded      = 222
)
