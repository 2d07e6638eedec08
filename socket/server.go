package socket

import (
	"context"
	"log"

	"pingly_server/models"
	"pingly_server/services"

	socketio "github.com/googollee/go-socket.io"
)

const namespace = "/"

// conn is the part of socketio.Conn the event handlers use.
type conn interface {
	ID() string
	Join(room string)
	Emit(eventName string, v ...interface{})
}

// broadcaster is the part of *socketio.Server the sink uses.
type broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// Hub relays conversation traffic to Socket.IO clients. Rooms are match ids
// for messages and "user:{id}" for per-user events such as new matches.
type Hub struct {
	Server   *socketio.Server
	sessions *services.SessionService
	out      broadcaster
}

// NewHub initializes the Socket.IO server and its event handlers. Attach must
// be called before clients can authenticate.
func NewHub() *Hub {
	server := socketio.NewServer(nil)
	h := &Hub{Server: server, out: server}

	// Handle connection events
	server.OnConnect(namespace, func(s socketio.Conn) error {
		log.Println("✅ Socket connected:", s.ID())
		return nil
	})

	server.OnEvent(namespace, "authenticate", func(s socketio.Conn, data map[string]string) {
		h.authenticate(s, data)
	})

	// Handle join events
	server.OnEvent(namespace, "join", func(s socketio.Conn, data map[string]string) {
		h.join(s, data)
	})

	// Handle sendMessage events
	server.OnEvent(namespace, "sendMessage", func(s socketio.Conn, data map[string]string) {
		h.sendMessage(s, data)
	})

	server.OnError(namespace, func(s socketio.Conn, err error) {
		log.Printf("❌ Socket error: %v", err)
	})

	// Handle disconnection
	server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", s.ID(), reason)
	})

	return h
}

// Attach wires the session service the hub resolves tokens against.
func (h *Hub) Attach(sessions *services.SessionService) {
	h.sessions = sessions
}

func userRoom(userID string) string {
	return "user:" + userID
}

func (h *Hub) dashboard(c conn, token string) (*services.Dashboard, bool) {
	if h.sessions == nil {
		c.Emit("error", map[string]string{"error": "server not ready"})
		return nil, false
	}
	dash, err := h.sessions.Dashboard(token)
	if err != nil {
		c.Emit("error", map[string]string{"error": err.Error()})
		return nil, false
	}
	return dash, true
}

func (h *Hub) authenticate(c conn, data map[string]string) {
	dash, ok := h.dashboard(c, data["token"])
	if !ok {
		return
	}
	c.Join(userRoom(dash.User().ID))
	log.Printf("🔐 Socket %s authenticated as %s", c.ID(), dash.User().ID)
}

func (h *Hub) join(c conn, data map[string]string) {
	matchID := data["matchId"]
	if matchID == "" {
		log.Println("❌ Invalid matchId in join request")
		c.Emit("error", map[string]string{"error": "matchId is required"})
		return
	}
	dash, ok := h.dashboard(c, data["token"])
	if !ok {
		return
	}
	if _, found := dash.Ledger().Match(matchID); !found {
		c.Emit("error", map[string]string{"error": services.ErrNotFound.Error()})
		return
	}
	log.Printf("👥 Socket %s joined match %s", c.ID(), matchID)
	c.Join(matchID)
}

func (h *Hub) sendMessage(c conn, data map[string]string) {
	dash, ok := h.dashboard(c, data["token"])
	if !ok {
		return
	}
	// The message reaches the room through RecordMessage.
	_, ok, err := dash.SendMessage(data["matchId"], data["body"])
	if err != nil {
		c.Emit("error", map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		log.Printf("❌ Empty message body from socket %s", c.ID())
		c.Emit("error", map[string]string{"error": "message body is required"})
	}
}

// RecordDecision is not broadcast.
func (h *Hub) RecordDecision(context.Context, models.SwipeDecision) error {
	return nil
}

func (h *Hub) RecordMatch(_ context.Context, m models.Match) error {
	h.out.BroadcastToRoom(namespace, userRoom(m.Owner), "matched", m)
	return nil
}

func (h *Hub) RecordUnmatch(_ context.Context, m models.Match) error {
	h.out.BroadcastToRoom(namespace, userRoom(m.Owner), "unmatched", map[string]string{"matchId": m.MatchID})
	return nil
}

func (h *Hub) RecordMessage(_ context.Context, msg models.Message) error {
	h.out.BroadcastToRoom(namespace, msg.MatchID, "newMessage", msg)
	return nil
}
