package main

import (
	"net/rpc"

	"github.com/wfunc/scrabbleserver/config"
	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/lexicon"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/monitor"
	"github.com/wfunc/scrabbleserver/persistence"
	rpcserver "github.com/wfunc/scrabbleserver/rpc"
	"github.com/wfunc/scrabbleserver/server"
	"github.com/wfunc/scrabbleserver/services"
	"github.com/wfunc/scrabbleserver/timer"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	db, err := persistence.NewGormPostgreSQL(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Log.Info("Database connection successful.")

	// Dictionary: local word list served over HTTP, optionally backed
	// by a remote oracle for move validation.
	words, err := lexicon.NewFromFile(cfg.Lexicon.DictionaryFile)
	if err != nil {
		logger.Log.Fatalf("Failed to load dictionary: %v", err)
	}
	logger.Log.Infof("Dictionary loaded with %d words.", words.Count())
	go func() {
		if err := lexicon.Serve(cfg.Lexicon.HTTPAddress, words); err != nil {
			logger.Log.Errorf("Dictionary server stopped: %v", err)
		}
	}()

	var lex game.Lexicon = words
	if cfg.Lexicon.RemoteURL != "" {
		lex = lexicon.NewClient(cfg.Lexicon.RemoteURL, cfg.Lexicon.Timeout, words)
	}

	// Monitoring
	mon := monitor.NewMonitor("scrabble")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Highscore RPC endpoint
	highscores := services.NewHighscoreService(db)
	rpcSrv, err := rpcserver.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to start RPC listener: %v", err)
	}
	if err := rpc.RegisterName("ScoreService", rpcserver.NewScoreService(highscores)); err != nil {
		logger.Log.Fatalf("Failed to register RPC service: %v", err)
	}
	go rpcSrv.Start()
	defer rpcSrv.Stop()

	timers := timer.NewManager()
	defer timers.Stop()

	rules := game.Rules{
		SecondsPerTurn: cfg.Game.SecondsPerTurn,
		RackSize:       cfg.Game.RackSize,
		MaxPasses:      cfg.Game.MaxPasses,
		Bag: game.BagOptions{
			IncludeJokers:     cfg.Game.IncludeJokers,
			IncludeFinalForms: cfg.Game.IncludeFinalForms,
			SizeMultiplier:    cfg.Game.BagSizeMultiplier,
		},
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(server.Options{
		Address: cfg.Server.HTTPAddress,
		Rules:   rules,
		Lexicon: lex,
		Results: highscores,
		Timers:  timers,
		Monitor: mon,
	})

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
