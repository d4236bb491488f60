package ws

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// mockWebSocketConn replays queued inbound messages and records writes.
type mockWebSocketConn struct {
	mu       sync.Mutex
	closed   bool
	inbound  chan []byte
	written  [][]byte
	readSize int64
}

func NewMockWebSocketConn() *mockWebSocketConn {
	return &mockWebSocketConn{inbound: make(chan []byte, 16)}
}

func (m *mockWebSocketConn) SetReadLimit(size int64) {
	m.mu.Lock()
	m.readSize = size
	m.mu.Unlock()
}

func (m *mockWebSocketConn) ReadMessage() (messageType int, p []byte, err error) {
	message, ok := <-m.inbound
	if !ok {
		return 0, nil, io.EOF
	}
	return websocket.TextMessage, message, nil
}

func (m *mockWebSocketConn) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return websocket.ErrCloseSent
	}
	if messageType == websocket.TextMessage {
		m.written = append(m.written, data)
	}
	return nil
}

func (m *mockWebSocketConn) Written() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.written...)
}

func (m *mockWebSocketConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

func (m *mockWebSocketConn) SetWriteDeadline(t time.Time) error {
	return nil
}

func (m *mockWebSocketConn) SetReadDeadline(t time.Time) error {
	return nil
}

func (m *mockWebSocketConn) SetPongHandler(h func(appData string) error) {}

func (m *mockWebSocketConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	return nil
}

func (m *mockWebSocketConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
}
