package feed

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
)

const (
	writeWait     = 10 * time.Second
	pingPeriod    = 30 * time.Second
	clientBacklog = 16
)

// MetricsFeed fans generated metric samples out to websocket subscribers.
// Slow clients are dropped rather than allowed to stall the feed.
type MetricsFeed struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger

	onConnect    func()
	onDisconnect func()
}

type client struct {
	conn *websocket.Conn
	send chan []domain.MetricSample
}

func NewMetricsFeed(logger *zap.Logger, onConnect, onDisconnect func()) *MetricsFeed {
	if onConnect == nil {
		onConnect = func() {}
	}
	if onDisconnect == nil {
		onDisconnect = func() {}
	}
	return &MetricsFeed{
		clients: map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:       logger,
		onConnect:    onConnect,
		onDisconnect: onDisconnect,
	}
}

// Handle upgrades the connection and streams samples until the client
// disconnects.
func (f *MetricsFeed) Handle(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, send: make(chan []domain.MetricSample, clientBacklog)}
	f.mu.Lock()
	f.clients[cl] = struct{}{}
	f.mu.Unlock()
	f.onConnect()

	go f.writeLoop(cl)
	f.readLoop(cl)
}

// Broadcast queues samples for every connected client.
func (f *MetricsFeed) Broadcast(samples []domain.MetricSample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for cl := range f.clients {
		select {
		case cl.send <- samples:
		default:
			// client is not keeping up
			f.dropLocked(cl)
		}
	}
}

func (f *MetricsFeed) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case samples, ok := <-cl.send:
			if !ok {
				cl.conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
				return
			}
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteJSON(samples); err != nil {
				f.drop(cl)
				return
			}
		case <-ticker.C:
			if err := cl.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				f.drop(cl)
				return
			}
		}
	}
}

func (f *MetricsFeed) readLoop(cl *client) {
	defer f.drop(cl)
	cl.conn.SetReadLimit(512)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *MetricsFeed) drop(cl *client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropLocked(cl)
}

func (f *MetricsFeed) dropLocked(cl *client) {
	if _, ok := f.clients[cl]; !ok {
		return
	}
	delete(f.clients, cl)
	close(cl.send)
	cl.conn.Close()
	f.onDisconnect()
}

// Close disconnects every client.
func (f *MetricsFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for cl := range f.clients {
		f.dropLocked(cl)
	}
}
