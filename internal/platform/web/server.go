package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/velmoga/sinkhole/internal/games/sinkhole"
	"github.com/velmoga/sinkhole/internal/storage"
)

//go:embed client/index.html
var indexHTML []byte

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Endless serves the endless mode instead of the campaign.
	Endless bool

	// TickRate is the simulation rate in ticks per second.
	TickRate int

	// DBPath is the path to the progress database. Empty disables
	// persistence.
	DBPath string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:  ":8080",
		TickRate: 60,
		DBPath:   "~/.sinkhole/sinkhole.db",
	}
}

// Server hosts the shared simulation over HTTP and websockets.
type Server struct {
	config   ServerConfig
	hub      *Hub
	store    *storage.Store
	httpSrv  *http.Server
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer creates a web server around a fresh game instance.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sinkhole-web",
	})

	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open progress database", "error", err)
		} else {
			sinkhole.SetProgressStore(store.WithSlot("web"))
		}
	}

	var game *sinkhole.Game
	if cfg.Endless {
		game = sinkhole.NewEndless()
	} else {
		game = sinkhole.New()
	}

	srv := &Server{
		config: cfg,
		hub:    NewHub(game, cfg.TickRate, logger),
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/state", srv.handleState)
	mux.HandleFunc("/ws", srv.handleWS)

	srv.httpSrv = &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv, nil
}

// handleIndex serves the embedded browser client.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // nothing to do about a failed page write
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	//nolint:errcheck
	w.Write([]byte("ok"))
}

// handleState returns the current snapshot for polling clients and tooling.
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	payload := struct {
		ServerTime int64             `json:"serverTime"`
		Clients    int               `json:"clients"`
		State      sinkhole.Snapshot `json:"state"`
	}{
		ServerTime: time.Now().UnixMilli(),
		Clients:    s.hub.ClientCount(),
		State:      s.hub.Snapshot(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck
	w.Write(data)
}

// handleWS upgrades a client and pumps its messages until it disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}

	sub, snap := s.hub.Subscribe(conn)

	initial := stateMessage{
		Type:       "state",
		ServerTime: time.Now().UnixMilli(),
		State:      snap,
	}
	data, err := json.Marshal(initial)
	if err != nil {
		s.logger.Error("cannot marshal initial state", "error", err)
		s.hub.Disconnect(sub)
		return
	}
	if err := sub.write(data); err != nil {
		s.hub.Disconnect(sub)
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			s.hub.Disconnect(sub)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Warn("discarding malformed message", "error", err)
			continue
		}

		switch msg.Type {
		case "input":
			s.hub.ApplyInput(msg.Actions)
		case "heartbeat":
			now := time.Now()
			ack := heartbeatMessage{
				Type:       "heartbeat",
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  now.UnixMilli() - msg.SentAt,
			}
			ackData, err := json.Marshal(ack)
			if err != nil {
				continue
			}
			if err := sub.write(ackData); err != nil {
				s.hub.Disconnect(sub)
				return
			}
		default:
			s.logger.Warn("unknown message type", "type", msg.Type)
		}
	}
}

// ListenAndServe starts the simulation and HTTP server, blocking until
// shutdown.
func (s *Server) ListenAndServe() error {
	stop := make(chan struct{})
	go s.hub.RunSimulation(stop)
	defer close(stop)

	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server failed: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.httpSrv.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
