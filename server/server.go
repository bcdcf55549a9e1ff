package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/wfunc/wordclash/broadcast"
	"github.com/wfunc/wordclash/deck"
	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/models"
	"github.com/wfunc/wordclash/monitor"
	"github.com/wfunc/wordclash/network"
	"github.com/wfunc/wordclash/room"
	wordclash_rpc "github.com/wfunc/wordclash/rpc"
	"github.com/wfunc/wordclash/session"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	registry       *room.Registry
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	rpcServer      *wordclash_rpc.Server
	mon            *monitor.Monitor
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr string, registry *room.Registry, deckMgr *deck.Manager, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           addr,
		registry:       registry,
		sessionManager: session.NewManager(),
		mon:            mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化广播器
	s.broadcaster = broadcast.NewRoomBroadcaster(registry, s.sessionManager)

	// 初始化RPC服务器
	rpcServer, err := wordclash_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	// 注册RPC服务
	adminService := wordclash_rpc.NewAdminService(registry, deckMgr)
	rpc.Register(adminService)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.mon.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecOnlinePlayers()
		if playerID, code := sess.Identity(); code != "" {
			if r, exists := s.registry.Get(code); exists {
				// 同一玩家已在新连接上重连时，这次迟到的断开会被房间忽略
				r.HandleDisconnect(playerID, sess)
			}
		}
		wsConn.Close()
	}()

	// 限制单连接的包频率，超限的包直接丢弃
	limiter := rate.NewLimiter(rate.Limit(20), 40)

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			if !limiter.Allow() {
				continue
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	s.mon.IncPacketsReceived()
	defer func() {
		s.mon.ObservePacketLatency(time.Since(start))
	}()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeReconnect:
		s.handleReconnect(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case network.MsgTypeStartGame:
		s.withRoom(sess, func(r *room.Room, playerID string) error {
			return r.StartGame(playerID)
		})
	case network.MsgTypeDescriberReady:
		s.withRoom(sess, func(r *room.Room, playerID string) error {
			return r.DescriberReady(playerID)
		})
	case network.MsgTypeCardCorrect:
		s.handleCardAction(sess, packet, room.OutcomeCorrect)
	case network.MsgTypeCardForbidden:
		s.handleCardAction(sess, packet, room.OutcomeForbidden)
	case network.MsgTypeCardSkip:
		s.handleCardAction(sess, packet, room.OutcomeSkip)
	case network.MsgTypeRestartGame:
		s.withRoom(sess, func(r *room.Room, playerID string) error {
			return r.Restart(playerID)
		})
	case network.MsgTypeEndPractice:
		s.withRoom(sess, func(r *room.Room, playerID string) error {
			return r.EndPractice(playerID)
		})
	case network.MsgTypeRestartPractice:
		s.withRoom(sess, func(r *room.Room, playerID string) error {
			return r.RestartPractice(playerID)
		})
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

// --- 请求/应答载荷 ---

type createRoomReq struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
	Team string `json:"team"`
}

type joinRoomReq struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Team string `json:"team"`
}

type reconnectReq struct {
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type cardReq struct {
	CardID string `json:"card_id"`
}

// roomAck 入房应答：房间码 + 持久玩家ID，客户端要保存后者用于重连
type roomAck struct {
	Code     string              `json:"code"`
	PlayerID string              `json:"player_id"`
	Snapshot models.RoomSnapshot `json:"snapshot"`
}

// --- 入房流程 ---

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req createRoomReq
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, room.ErrInvalidTeam)
		return
	}

	mode := room.ModeClassic
	if req.Mode == string(room.ModePractice) {
		mode = room.ModePractice
	}
	if mode == room.ModeClassic && req.Team == "" {
		req.Team = room.TeamBlue
	}

	newRoom := s.registry.CreateRoom(mode, s.broadcaster)
	sess.Bind("", req.Name, newRoom.Code)

	p, err := newRoom.AddParticipant(sess, req.Name, req.Team)
	if err != nil {
		sess.ClearRoom()
		s.registry.Remove(newRoom.Code)
		s.sendError(sess, err)
		return
	}
	sess.Bind(p.ID, p.Name, newRoom.Code)
	s.mon.SetActiveRooms(s.registry.Count())

	logger.Log.Infof("Session %s created room %s (%s)", sess.GetID(), newRoom.Code, mode)
	s.reply(sess, network.MsgTypeRoomCreated, roomAck{
		Code:     newRoom.Code,
		PlayerID: p.ID,
		Snapshot: newRoom.Snapshot(),
	})
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req joinRoomReq
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}

	r, exists := s.registry.Get(req.Code)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}

	sess.Bind("", req.Name, r.Code)
	p, err := r.AddParticipant(sess, req.Name, req.Team)
	if err != nil {
		sess.ClearRoom()
		s.sendError(sess, err)
		return
	}
	sess.Bind(p.ID, p.Name, r.Code)

	logger.Log.Infof("Session %s joined room %s", sess.GetID(), r.Code)
	s.reply(sess, network.MsgTypeRoomJoined, roomAck{
		Code:     r.Code,
		PlayerID: p.ID,
		Snapshot: r.Snapshot(),
	})
}

func (s *GameServer) handleReconnect(sess *session.Session, packet *network.Packet) {
	var req reconnectReq
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.reply(sess, network.MsgTypeReconnectFailed, models.ErrorReply{
			Code: room.ErrReconnectFailed.Code, Message: "malformed request",
		})
		return
	}

	r, exists := s.registry.Get(req.Code)
	if !exists {
		s.reply(sess, network.MsgTypeReconnectFailed, models.ErrorReply{
			Code: room.ErrRoomNotFound.Code, Message: room.ErrRoomNotFound.Message,
		})
		return
	}

	sess.Bind(req.PlayerID, req.Name, r.Code)
	p, err := r.Reconnect(sess, req.PlayerID)
	if err != nil {
		sess.ClearRoom()
		if rej, ok := err.(*room.Rejection); ok {
			s.reply(sess, network.MsgTypeReconnectFailed, models.ErrorReply{
				Code: rej.Code, Message: rej.Message,
			})
		}
		return
	}
	sess.Bind(p.ID, p.Name, r.Code)

	logger.Log.Infof("Player %s reconnected to room %s", p.Name, r.Code)
	s.reply(sess, network.MsgTypeReconnectOK, roomAck{
		Code:     r.Code,
		PlayerID: p.ID,
		Snapshot: r.Snapshot(),
	})
}

func (s *GameServer) handleLeaveRoom(sess *session.Session) {
	playerID, code := sess.Identity()
	if code == "" {
		return
	}
	if r, exists := s.registry.Get(code); exists {
		r.Leave(playerID)
	}
	sess.ClearRoom()
}

// --- 房间内操作 ---

func (s *GameServer) handleCardAction(sess *session.Session, packet *network.Packet, outcome string) {
	var req cardReq
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, room.ErrStaleCard)
		return
	}
	s.withRoom(sess, func(r *room.Room, playerID string) error {
		return r.ResolveCard(playerID, req.CardID, outcome)
	})
}

// withRoom 解析会话绑定的房间并执行操作，拒绝只回给请求者
func (s *GameServer) withRoom(sess *session.Session, fn func(r *room.Room, playerID string) error) {
	playerID, code := sess.Identity()
	if code == "" {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}
	r, exists := s.registry.Get(code)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound)
		return
	}
	if err := fn(r, playerID); err != nil {
		s.sendError(sess, err)
	}
}

func (s *GameServer) reply(sess *session.Session, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Failed to marshal reply %d: %v", msgID, err)
		return
	}
	if err := sess.Send(msgID, data); err != nil {
		logger.Log.Warnf("Failed to send reply %d to session %s: %v", msgID, sess.GetID(), err)
	}
}

func (s *GameServer) sendError(sess *session.Session, err error) {
	reply := models.ErrorReply{Code: "internal", Message: "unexpected error"}
	if rej, ok := err.(*room.Rejection); ok {
		reply.Code = rej.Code
		reply.Message = rej.Message
	}
	data, merr := json.Marshal(reply)
	if merr != nil {
		return
	}
	sess.Send(network.MsgTypeError, data)
}
