package broadcast

import (
	"errors"

	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
	"github.com/wfunc/scrabbleserver/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Broadcaster delivers envelopes to session members.
type Broadcaster interface {
	BroadcastToGame(gameID string, env *network.Envelope) error
	SendToSession(sessionID string, env *network.Envelope) error
}

// SessionBroadcaster fans out over the session manager. State
// snapshots are idempotent full replacements, so a failed or
// duplicated delivery to one member is tolerated; the next broadcast
// resynchronizes it.
type SessionBroadcaster struct {
	sessionManager *session.Manager
}

func NewSessionBroadcaster(sessionManager *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *SessionBroadcaster) BroadcastToGame(gameID string, env *network.Envelope) error {
	for _, s := range b.sessionManager.GetByGame(gameID) {
		if err := s.Send(env); err != nil {
			logger.Log.Warnf("Broadcast to session %s failed: %v", s.GetID(), err)
			continue
		}
	}
	return nil
}

func (b *SessionBroadcaster) SendToSession(sessionID string, env *network.Envelope) error {
	s, ok := b.sessionManager.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	return s.Send(env)
}
