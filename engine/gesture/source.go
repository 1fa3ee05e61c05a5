package gesture

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Frame is one recognizer message: the set of hands detected in a single
// camera frame. An empty Hands slice is a valid frame meaning no detection.
type Frame struct {
	Hands []Hand `json:"hands"`
}

// Source streams landmark frames from the external hand recognizer over a
// WebSocket connection, maps each frame to a Reading, and delivers it through
// a callback. The recognizer runs at its own camera frame rate, usually
// slower than the display; the core never waits on it.
//
// A Source makes a single connection attempt. If the recognizer is
// unavailable, Dial returns an error once and the application runs in
// manual-only mode for the session — no retries.
type Source struct {
	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once

	onReading func(Reading)
}

// Dial connects to the recognizer's WebSocket endpoint and starts the read
// loop. The callback is invoked from the read goroutine, once per recognizer
// frame; it must be cheap (store targets and return).
//
// Parameters:
//   - url: the recognizer endpoint, e.g. ws://127.0.0.1:9160/landmarks
//   - onReading: callback receiving each frame's mapped Reading
//
// Returns:
//   - *Source: the connected source
//   - error: an error if the connection could not be established
func Dial(url string, onReading func(Reading)) (*Source, error) {
	if onReading == nil {
		return nil, fmt.Errorf("gesture: Dial requires a non-nil reading callback")
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("gesture: dial %s: %w", url, err)
	}

	s := &Source{
		conn:      conn,
		done:      make(chan struct{}),
		onReading: onReading,
	}
	go s.readLoop()
	return s, nil
}

// readLoop consumes recognizer messages until the connection closes.
// A malformed message is treated as a frame with no detection — it never
// stops the loop and never reaches the animation path as garbage.
func (s *Source) readLoop() {
	defer close(s.done)

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			// Normal teardown lands here too; only log the unexpected.
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Gesture] read loop ended: %v", err)
			}
			return
		}

		var frame Frame
		if jsonErr := json.Unmarshal(msg, &frame); jsonErr != nil {
			s.onReading(Reading{})
			continue
		}
		s.onReading(MapHands(frame.Hands))
	}
}

// Close tears down the connection and waits for the read loop to exit, so
// no goroutine or callback outlives the source. Safe to call multiple times.
//
// Returns:
//   - error: an error if the close handshake could not be written
func (s *Source) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		s.conn.Close()
		<-s.done
	})
	return err
}

// Done returns a channel closed when the read loop has exited, either from
// Close or from a connection failure. The application watches this to flip
// its gesture-active indicator off.
//
// Returns:
//   - <-chan struct{}: closed on read loop exit
func (s *Source) Done() <-chan struct{} {
	return s.done
}
