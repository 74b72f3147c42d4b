package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// isValidOrigin checks if the origin is allowed to connect.
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header, could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	// Same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Localhost connections for development
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1" {
		return true
	}

	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// Message types
const (
	MsgTypeSimulate = "simulate" // client asks for a delivery to be simulated
	MsgTypeDelivery = "delivery" // broadcast of a simulated delivery result
	MsgTypeLayouts  = "layouts"  // client asks for the available layout names
	MsgTypeError    = "error"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client represents a connected live-feed viewer
type Client struct {
	ID     string
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// publish pushes a message onto the broadcast channel without blocking the
// HTTP handler when the hub is saturated.
func (s *Server) publish(msg ServerMessage) {
	select {
	case s.broadcast <- msg:
	default:
		s.logger.Printf("broadcast buffer full, dropping %s message", msg.Type)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		conn:   conn,
		send:   make(chan ServerMessage, 256),
		server: s,
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		c.server.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(msg)
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes a message from the client
func (c *Client) handleMessage(msg ClientMessage) {
	defer func() {
		if r := recover(); r != nil {
			c.server.logger.Printf("panic in handleMessage for client %s, type %s: %v", c.ID, msg.Type, r)
		}
	}()

	switch msg.Type {
	case MsgTypeSimulate:
		c.handleSimulate(msg.Data)
	case MsgTypeLayouts:
		c.reply(ServerMessage{Type: MsgTypeLayouts, Data: c.server.layoutNames()})
	default:
		c.reply(errorMessage("unknown message type: " + msg.Type))
	}
}

// handleSimulate runs one delivery requested over the socket. The result is
// broadcast to every viewer, same as deliveries submitted over HTTP.
func (c *Client) handleSimulate(data json.RawMessage) {
	var req SimulateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.reply(errorMessage("invalid simulate request: " + err.Error()))
		return
	}

	in, err := c.server.buildInput(req)
	if err != nil {
		c.reply(errorMessage(err.Error()))
		return
	}

	res := c.server.sim.SimulateDelivery(in)
	c.server.publish(ServerMessage{Type: MsgTypeDelivery, Data: SimulateResponse{Result: res}})
}

// reply sends a message to this client only.
func (c *Client) reply(msg ServerMessage) {
	select {
	case c.send <- msg:
	default:
		c.server.logger.Printf("client %s send buffer full, dropping %s message", c.ID, msg.Type)
	}
}

func errorMessage(text string) ServerMessage {
	return ServerMessage{Type: MsgTypeError, Data: map[string]string{"message": text}}
}
