package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/scrabbleserver/broadcast"
	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/monitor"
	"github.com/wfunc/scrabbleserver/network"
	"github.com/wfunc/scrabbleserver/room"
	"github.com/wfunc/scrabbleserver/session"
	"github.com/wfunc/scrabbleserver/timer"
)

const heartbeatInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	errFirstMessageNotJoin = errors.New("first message must be a join")
	errMissingGameID       = errors.New("join without a game id")
	errMissingName         = errors.New("join without a name")
	errInvalidRole         = errors.New("join with an unknown role")
)

// GameServer accepts websocket connections, runs the join handshake and
// feeds decoded actions into the owning room's command queue.
type GameServer struct {
	sessionManager *session.Manager
	roomManager    *room.Manager
	broadcaster    *broadcast.SessionBroadcaster
	results        room.ResultSink
	lexicon        game.Lexicon
	rules          game.Rules
	timers         *timer.Manager
	monitor        *monitor.Monitor
	observer       room.CommitObserver
	httpServer     *http.Server
}

type Options struct {
	Address string
	Rules   game.Rules
	Lexicon game.Lexicon
	Results room.ResultSink
	Timers  *timer.Manager
	Monitor *monitor.Monitor
}

func NewGameServer(opts Options) *GameServer {
	sessions := session.NewManager()
	var observer room.CommitObserver
	if opts.Monitor != nil {
		observer = opts.Monitor
	}
	return &GameServer{
		observer:       observer,
		sessionManager: sessions,
		roomManager:    room.NewManager(),
		broadcaster:    broadcast.NewSessionBroadcaster(sessions),
		results:        opts.Results,
		lexicon:        opts.Lexicon,
		rules:          opts.Rules,
		timers:         opts.Timers,
		monitor:        opts.Monitor,
		httpServer: &http.Server{
			Addr: opts.Address,
		},
	}
}

// Start blocks serving websocket upgrades on /ws until Shutdown.
func (s *GameServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.httpServer.Handler = mux

	logger.Log.Infof("Game server listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *GameServer) Shutdown() error {
	return s.httpServer.Close()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := network.NewWSConnection(wsConn)
	conn.SetHeartbeat(heartbeatInterval)

	sess := session.NewSession(uuid.New().String(), conn)
	if s.monitor != nil {
		s.monitor.IncConnectedClients()
	}
	defer func() {
		if s.monitor != nil {
			s.monitor.DecConnectedClients()
		}
	}()

	rm, err := s.handshake(sess)
	if err != nil {
		logger.Log.Infow("join rejected",
			"session", sess.GetID(),
			"remote", conn.RemoteAddr(),
			"error", err,
		)
		conn.Close()
		return
	}

	defer s.teardown(sess, rm)

	logger.Log.Infow("participant joined",
		"session", sess.GetID(),
		"game", sess.GameID,
		"role", sess.GetRole(),
		"name", sess.GetName(),
	)

	s.readLoop(sess, rm)
}

// handshake reads the mandatory first join envelope and seats the
// session. A full room gets the one fatal error message before the
// connection closes.
func (s *GameServer) handshake(sess *session.Session) (*room.Room, error) {
	env, err := sess.Conn.ReadEnvelope()
	if err != nil {
		return nil, err
	}
	if env.Type != network.MsgJoin {
		return nil, errFirstMessageNotJoin
	}
	if env.GameID == "" {
		return nil, errMissingGameID
	}

	var join network.JoinPayload
	if err := decodePayload(env.Payload, &join); err != nil {
		return nil, err
	}
	if join.Name == "" {
		return nil, errMissingName
	}
	if !join.Role.Valid() {
		return nil, errInvalidRole
	}

	sess.Identify(join.Name, join.Role, env.GameID)

	// Register before seating: the presence broadcast triggered by the
	// seat change must reach the joiner itself, not only the peer.
	s.sessionManager.Add(sess)

	rm := s.roomManager.GetOrCreate(env.GameID, s.rules, s.lexicon, s.broadcaster, s.results, s.timers, s.observer)
	if err := rm.Join(sess); err != nil {
		if rejectErr := s.sendError(sess, env.GameID, network.ErrMsgGameFull, nil); rejectErr != nil {
			logger.Log.Warnf("Failed to deliver rejection to %s: %v", sess.GetID(), rejectErr)
		}
		s.sessionManager.Remove(sess.GetID())
		return nil, err
	}
	if s.monitor != nil {
		s.monitor.SetActiveGames(s.roomManager.Count())
	}
	return rm, nil
}

func (s *GameServer) readLoop(sess *session.Session, rm *room.Room) {
	for {
		env, err := sess.Conn.ReadEnvelope()
		if err != nil {
			logger.Log.Infow("connection closed",
				"session", sess.GetID(),
				"game", sess.GameID,
				"error", err,
			)
			return
		}
		if s.monitor != nil {
			s.monitor.IncMessagesReceived()
		}

		switch env.Type {
		case network.MsgAction:
			action, err := network.DecodeAction(env.Payload)
			if err != nil {
				logger.Log.Warnf("Undecodable action from %s: %v", sess.GetID(), err)
				s.sendError(sess, sess.GameID, "unrecognized action", nil)
				continue
			}
			if !rm.Enqueue(sess, action) {
				logger.Log.Warnf("Room %s rejected action from %s", rm.ID, sess.GetID())
				return
			}
		case network.MsgJoin:
			// Already joined. Duplicate handshakes are ignored.
			logger.Log.Debugf("Duplicate join from session %s ignored", sess.GetID())
		default:
			logger.Log.Warnf("Unexpected %s message from session %s", env.Type, sess.GetID())
		}
	}
}

// teardown runs once the read loop exits for any reason.
func (s *GameServer) teardown(sess *session.Session, rm *room.Room) {
	s.sessionManager.Remove(sess.GetID())
	rm.Leave(sess.GetID())
	if rm.Empty() {
		s.roomManager.Remove(rm.ID)
	}
	if s.monitor != nil {
		s.monitor.SetActiveGames(s.roomManager.Count())
	}
	sess.Close()
}

func (s *GameServer) sendError(sess *session.Session, gameID, message string, details []game.ValidationError) error {
	env, err := network.NewEnvelope(network.MsgError, gameID, network.ErrorPayload{
		Message: message,
		Details: details,
	})
	if err != nil {
		return err
	}
	return sess.Send(env)
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(raw, v)
}
