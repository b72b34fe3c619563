package game

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Conn is the slice of a websocket the game needs; tests swap in fakes.
type Conn interface {
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
	Close(reason string)
}

type websocketConn struct {
	socket *websocket.Conn
}

func NewWebsocketConn(conn *websocket.Conn) Conn {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &websocketConn{socket: conn}
}

func (wc *websocketConn) Write(data []byte) error {
	return wc.socket.WriteMessage(websocket.TextMessage, data)
}

func (wc *websocketConn) Read() ([]byte, error) {
	_, p, err := wc.socket.ReadMessage()
	return p, err
}

func (wc *websocketConn) Ping() error {
	return wc.socket.WriteMessage(websocket.PingMessage, nil)
}

func (wc *websocketConn) Close(reason string) {
	wc.socket.SetWriteDeadline(time.Now().Add(time.Second * 10))
	wc.socket.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
	wc.socket.Close()
}

const (
	pongWait     = time.Minute
	pingInterval = time.Second * 30
	sendQueue    = 256
)

// Client is one connected player: its connection id doubles as the
// player id for the lifetime of the socket.
type Client struct {
	ID      string
	conn    Conn
	limiter *rate.Limiter
	outbox  chan []byte
	done    chan struct{}
}

func NewClient(id string, conn Conn) *Client {
	return &Client{
		ID:      id,
		conn:    conn,
		limiter: rate.NewLimiter(5, 10),
		outbox:  make(chan []byte, sendQueue),
		done:    make(chan struct{}),
	}
}

// Send queues data for the write pump, dropping the packet rather than
// blocking the caller when the client can't keep up. The outbox is
// never closed; Shutdown stops the write pump instead, so a late
// broadcast can't panic.
func (c *Client) Send(data []byte) {
	select {
	case <-c.done:
	case c.outbox <- data:
	default:
		log.Warn().Str("client", c.ID).Msg("outbox full, packet dropped")
	}
}

// Shutdown stops the write pump and closes the socket.
func (c *Client) Shutdown() {
	close(c.done)
	c.conn.Close("")
}

// ReadPump decodes inbound packets and hands them to dispatch until the
// connection dies. It runs on the connection's own goroutine.
func (c *Client) ReadPump(dispatch func(*Client, Packet)) {
	for {
		data, err := c.conn.Read()
		if err != nil {
			return
		}

		if !c.limiter.Allow() {
			log.Debug().Str("client", c.ID).Msg("rate limited")
			continue
		}

		var pkt Packet
		if err := json.Unmarshal(data, &pkt); err != nil {
			continue
		}
		dispatch(c, pkt)
	}
}

func (c *Client) WritePump() {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.outbox:
			if err := c.conn.Write(data); err != nil {
				return
			}
		case <-pings.C:
			if err := c.conn.Ping(); err != nil {
				return
			}
		}
	}
}
