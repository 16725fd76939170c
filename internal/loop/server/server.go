// Package server tracks the sessions connected to a geometry board host and
// coordinates their shutdown. Each session owns its own board; the server
// only hands out handles and broadcasts events.
package server

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Hub is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation.
type Hub interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Sessions() int
}

// Server tracks connected clients.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	mu           sync.RWMutex
	logger       *log.Logger
}

// Compile-time check that Server implements Hub.
var _ Hub = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	Connected time.Time        // When the client registered
	EventsCh  chan ClientEvent // Events sent to client (shutdown, etc.)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a new server. A nil logger discards log output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		logger:       logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:        s.nextClientID,
		Username:  username,
		Connected: time.Now(),
		EventsCh:  make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	s.logger.Debug("client registered", "id", handle.ID, "user", username, "sessions", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)

	s.logger.Debug("client unregistered", "id", clientID, "user", handle.Username,
		"duration", time.Since(handle.Connected).Round(time.Second), "sessions", len(s.clients))
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients about the shutdown and waits for
// them to disconnect, up to the given timeout. It reports whether every
// client left in time.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	notified := len(s.clients)
	s.mu.RUnlock()

	s.logger.Info("notified clients of shutdown", "sessions", notified)

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Sessions() == 0 {
			return true
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.Sessions())
			return false
		case <-ticker.C:
		}
	}
}
