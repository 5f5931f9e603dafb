package network

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"treathunt/protocol"
	"treathunt/session"
)

const (
	readLimit  = 1 << 20 // 1MB
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
)

var (
	errClosed    = errors.New("connection closed")
	errQueueFull = errors.New("send queue full")
)

type wsHandler struct {
	coord      *session.Coordinator
	upgrader   websocket.Upgrader
	sendBuffer int
	log        *slog.Logger
}

func newWSHandler(coord *session.Coordinator, sendBuffer int, logger *slog.Logger) *wsHandler {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &wsHandler{
		coord: coord,
		upgrader: websocket.Upgrader{
			// Same policy as the HTTP routes: any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		log:        logger,
	}
}

func (h *wsHandler) serve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	codec, ok := protocol.CodecByName(r.URL.Query().Get("codec"))
	if !ok {
		http.Error(w, "unknown codec", http.StatusBadRequest)
		return
	}

	// Upgrade HTTP -> WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{
		id:    uuid.NewString(),
		conn:  conn,
		codec: codec,
		send:  make(chan []byte, h.sendBuffer),
		done:  make(chan struct{}),
		log:   h.log,
	}
	if !h.coord.Submit(session.Connect{ID: c.id, Conn: c}) {
		_ = conn.Close()
		return
	}
	h.log.Debug("client connected", "conn", c.id, "codec", codec.Name(), "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump(h.coord)
}

// client is the coordinator's view of one websocket. Send never blocks: a
// full queue drops the frame and the next snapshot catches the client up.
type client struct {
	id        string
	conn      *websocket.Conn
	codec     protocol.Codec
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

func (c *client) Send(event string, payload any) error {
	b, err := c.codec.Encode(event, payload)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return errClosed
	default:
	}
	select {
	case c.send <- b:
		return nil
	default:
		return errQueueFull
	}
}

func (c *client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *client) readPump(coord *session.Coordinator) {
	defer func() {
		coord.Submit(session.Disconnect{ID: c.id})
		_ = c.Close()
	}()

	// Basic timeouts + pong handling (keeps connections healthy)
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read failed", "conn", c.id, "err", err)
			}
			return
		}
		event, payload, err := protocol.DecodeInbound(c.codec, msg)
		if err != nil {
			c.log.Debug("dropping frame", "conn", c.id, "err", err)
			continue
		}
		if !coord.Submit(session.Inbound{ID: c.id, Event: event, Payload: payload}) {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	frame := websocket.TextMessage
	if c.codec.Binary() {
		frame = websocket.BinaryMessage
	}
	for {
		select {
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(frame, b); err != nil {
				c.log.Debug("write failed", "conn", c.id, "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
