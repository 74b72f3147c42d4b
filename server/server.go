// Package server exposes the delivery simulator over HTTP and WebSocket:
// a REST API for simulation, player and session records, and a live feed
// that broadcasts every simulated delivery to connected viewers.
package server

import (
	"log"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/cricklab/fieldsim/engine"
	"github.com/cricklab/fieldsim/field"
	"github.com/cricklab/fieldsim/store"
)

// Server wires the engine, the layout set and the database to transport.
type Server struct {
	sim     *engine.Simulator
	db      *store.Store
	layouts map[string]field.Layout
	logger  *log.Logger

	mu         sync.RWMutex
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
}

// New creates a server. db may be nil; recording endpoints then report the
// database as unavailable while simulation keeps working.
func New(sim *engine.Simulator, db *store.Store, layouts map[string]field.Layout, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		sim:        sim,
		db:         db,
		layouts:    layouts,
		logger:     logger,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ServerMessage, 256),
	}
}

// Run drives the live-feed hub. It blocks; start it on its own goroutine.
func (s *Server) Run() {
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			s.logger.Printf("client %s connected", client.ID)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.mu.Unlock()
			s.logger.Printf("client %s disconnected", client.ID)

		case message := <-s.broadcast:
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
				default:
					s.logger.Printf("client %s send buffer full, dropping message", client.ID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

func (s *Server) layoutNames() []string {
	return field.SortedNames(s.layouts)
}

// Routes builds the HTTP routing table.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(cors)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/simulate", s.handleSimulate)
	r.Get("/api/layouts", s.handleLayouts)
	r.Get("/api/layouts/{name}", s.handleLayout)
	r.Get("/ws", s.handleWebSocket)

	r.Post("/api/players", s.handleCreatePlayer)
	r.Get("/api/players", s.handleListPlayers)
	r.Get("/api/players/{id}", s.handleGetPlayer)
	r.Delete("/api/players/{id}", s.handleDeletePlayer)
	r.Get("/api/players/{id}/sessions", s.handlePlayerSessions)
	r.Get("/api/players/{id}/progress", s.handlePlayerProgress)

	r.Post("/api/sessions", s.handleCreateSession)
	r.Get("/api/sessions", s.handleListSessions)
	r.Get("/api/sessions/{id}", s.handleGetSession)
	r.Delete("/api/sessions/{id}", s.handleDeleteSession)
	r.Get("/api/sessions/{id}/deliveries", s.handleSessionDeliveries)
	r.Get("/api/sessions/{id}/summary", s.handleSessionSummary)
	r.Get("/api/sessions/{id}/zones", s.handleSessionZones)
	r.Get("/api/sessions/{id}/overs", s.handleSessionOvers)
	r.Get("/api/sessions/{id}/speeds", s.handleSessionSpeeds)

	return r
}
