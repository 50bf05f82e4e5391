package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultWebsocketPath is where browsers connect when no path is configured.
const DefaultWebsocketPath = "/ws"

// WebsocketListener serves the game to browser clients. Each text frame from
// the client is one line of input; each write becomes one text frame.
type WebsocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = DefaultWebsocketPath
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()
		l.handle(connCtx, w, r)
	})

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		cancelConns()
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	slog.InfoContext(ctx, "listening for websockets", "port", l.port, "path", l.path)

	svr := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		cancelConns()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svr.Shutdown(shutdownCtx)
	}()

	err = svr.Serve(ln)
	wg.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websockets on port %d: %w", l.port, err)
	}
	return nil
}

func (l *WebsocketListener) handle(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	slog.InfoContext(ctx, "websocket connection established", "remote", r.RemoteAddr)

	wc := newWsConn(conn)
	defer wc.Close()

	// Hijacked connections are not closed by Shutdown.
	stop := context.AfterFunc(ctx, func() { _ = wc.Close() })
	defer stop()

	l.cm.AcceptConnection(ctx, wc)
}

// wsWriteWait bounds how long one frame may take to reach a client.
const wsWriteWait = 10 * time.Second

// wsConn adapts a websocket connection to a byte stream.
type wsConn struct {
	conn *websocket.Conn

	pending []byte

	wmu    sync.Mutex
	closed atomic.Bool
	once   sync.Once
}

func newWsConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

// Read returns the next frame's payload, terminated with a newline.
func (c *wsConn) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		mt, payload, err := c.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		payload = bytes.TrimRight(payload, "\r\n")
		c.pending = append(payload, '\n')
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed.Load() {
		return 0, net.ErrClosed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close marks the connection closed and returns without waiting for a write
// in progress. The close frame and the socket shutdown happen in the
// background.
func (c *wsConn) Close() error {
	c.once.Do(func() {
		c.closed.Store(true)
		go func() {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "goodbye")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			_ = c.conn.Close()
		}()
	})
	return nil
}
