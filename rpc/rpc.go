package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/models"
	"github.com/wfunc/scrabbleserver/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// ScoreService exposes highscore queries over net/rpc.
type ScoreService struct {
	highscores *services.HighscoreService
}

func NewScoreService(hs *services.HighscoreService) *ScoreService {
	return &ScoreService{highscores: hs}
}

type TopArgs struct {
	Category models.HighscoreCategory
	Limit    int
}

type TopReply struct {
	Entries []models.HighscoreEntry
}

// Top returns the best entries in a category, highest points first.
func (s *ScoreService) Top(args *TopArgs, reply *TopReply) error {
	entries, err := s.highscores.Top(args.Category, args.Limit)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}
