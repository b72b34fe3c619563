package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// scriptedConn replays canned reads, then fails like a closed socket.
type scriptedConn struct {
	mu     sync.Mutex
	reads  [][]byte
	next   int
	wrote  [][]byte
	closed bool
}

func (s *scriptedConn) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.reads) {
		return nil, errors.New("connection closed")
	}
	data := s.reads[s.next]
	s.next++
	return data, nil
}

func (s *scriptedConn) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote = append(s.wrote, data)
	return nil
}

func (s *scriptedConn) Ping() error { return nil }

func (s *scriptedConn) Close(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *scriptedConn) written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wrote)
}

func TestClient_ReadPumpDispatchesValidPackets(t *testing.T) {
	conn := &scriptedConn{reads: [][]byte{
		[]byte(`{"event":"room:leave"}`),
		[]byte(`not json at all`),
		[]byte(`{"event":"game:play-again","seq":4}`),
	}}
	c := NewClient("c1", conn)

	var events []string
	c.ReadPump(func(_ *Client, pkt Packet) {
		events = append(events, pkt.Event)
	})

	assert.Equal(t, []string{EventLeaveRoom, EventPlayAgain}, events)
}

func TestClient_SendDropsInsteadOfBlocking(t *testing.T) {
	c := NewClient("c1", &scriptedConn{})

	for i := 0; i < sendQueue+50; i++ {
		c.Send([]byte("x"))
	}

	assert.Len(t, c.outbox, sendQueue)
}

func TestClient_WritePumpStopsOnShutdown(t *testing.T) {
	conn := &scriptedConn{}
	c := NewClient("c1", conn)

	stopped := make(chan struct{})
	go func() {
		c.WritePump()
		close(stopped)
	}()

	c.Send([]byte("one"))
	c.Send([]byte("two"))
	assert.Eventually(t, func() bool { return conn.written() == 2 },
		time.Second, time.Millisecond*5)

	c.Shutdown()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("write pump did not stop")
	}
	assert.True(t, conn.closed)
}
