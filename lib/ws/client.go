package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub
	// The websocket connection.
	Conn WebSocketConn
	// Buffered channel of outbound messages.
	Send    chan []byte
	Room    string
	Handler *DocumentHandler

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn WebSocketConn, room string, handler *DocumentHandler) *Client {
	return &Client{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Room:    room,
		Handler: handler,
	}
}

// Reply queues data for the client. It reports false when the client is gone
// or its buffer is full.
func (c *Client) Reply(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// RemoteKey identifies the peer for rate limiting.
func (c *Client) RemoteKey() string {
	if c.Conn == nil || c.Conn.RemoteAddr() == nil {
		return c.Room
	}
	return c.Conn.RemoteAddr().String()
}

// readPump pumps messages from the websocket connection to the handler.
//
// The application runs readPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) readPump(ctx context.Context, maxMessageSize int64, logger *zap.SugaredLogger) {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warnw("websocket closed unexpectedly", "room", c.Room, "error", err)
			}
			break
		}
		c.Handler.HandleMessage(ctx, c, message)
	}
}

// writePump pumps messages from the Send channel to the websocket
// connection and keeps it alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests for the document docID.
func ServeWs(ctx context.Context, w http.ResponseWriter, r *http.Request, docID string,
	handler *DocumentHandler, maxMessageSize int64, logger *zap.SugaredLogger) {
	ed, err := handler.Attach(docID)
	if err != nil {
		logger.Errorw("could not load document", "docId", docID, "error", err)
		http.Error(w, "could not load document", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnw("websocket upgrade failed", "docId", docID, "error", err)
		return
	}

	client := NewClient(handler.Hub(), NewWebSocketWrapper(conn), docID, handler)
	client.Hub.Register <- client
	handler.Welcome(client, ed)

	go client.writePump()
	client.readPump(ctx, maxMessageSize, logger)
}
