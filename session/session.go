package session

import (
	"sync"
	"time"

	"github.com/wfunc/scrabbleserver/network"
)

// Session is one participant's connection. Reconnect bookkeeping lives
// here and on the room seat, never in package-level state: a session
// is constructed per connection and torn down on leave.
type Session struct {
	ID         string
	Conn       network.Connection
	Name       string
	Role       network.Role
	GameID     string
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

// Identify records the join handshake's identity on the session.
func (s *Session) Identify(name string, role network.Role, gameID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Name = name
	s.Role = role
	s.GameID = gameID
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) GetName() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.Name
}

func (s *Session) GetRole() network.Role {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.Role
}

// Send forwards an envelope and marks the session active. Broadcasts
// call this from the room loop while the read loop consults the
// session, so the timestamp is guarded; the connection serializes its
// own writes.
func (s *Session) Send(env *network.Envelope) error {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
	return s.Conn.Send(env)
}

func (s *Session) GetLastActive() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.LastActive
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks live sessions by id.
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

// GetByGame returns every session joined to a game.
func (m *Manager) GetByGame(gameID string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if session.GameID == gameID {
			result = append(result, session)
		}
	}
	return result
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
