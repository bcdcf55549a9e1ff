// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/wordclash/network"
)

// Session 一条物理连接。PlayerID 是跨连接的持久身份，
// 断线重连后会绑定到新的 Session 上。
type Session struct {
	ID         string
	Conn       network.Connection
	PlayerID   string
	Name       string
	RoomCode   string
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Bind 绑定玩家身份和房间
func (s *Session) Bind(playerID, name, roomCode string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerID = playerID
	s.Name = name
	s.RoomCode = roomCode
}

// ClearRoom 解除房间绑定（主动离开后）
func (s *Session) ClearRoom() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.RoomCode = ""
}

// Identity 读取玩家身份 (playerID, roomCode)
func (s *Session) Identity() (string, string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.PlayerID, s.RoomCode
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
	return s.Conn.Send(msgID, data)
}

func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByPlayerID 按持久玩家ID查找会话
func (m *Manager) GetByPlayerID(playerID string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		id, _ := session.Identity()
		if id == playerID {
			result = append(result, session)
		}
	}
	return result
}

// GetByRoom 某个房间的全部在线会话。广播器走这里取收件人，
// 不会回头碰房间自身的锁。
func (m *Manager) GetByRoom(roomCode string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		_, code := session.Identity()
		if code == roomCode {
			result = append(result, session)
		}
	}
	return result
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
