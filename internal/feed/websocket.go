package feed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"flakwall/internal/weblog"
)

const (
	wsInitialBackoff = time.Second
	wsMaxBackoff     = 60 * time.Second
)

// WebsocketSource streams log events from a websocket feed into a journal.
// Each text frame is parsed as one record; frames may be JSON objects or raw
// access-log lines depending on the configured parser.
type WebsocketSource struct {
	URL     string
	Parser  weblog.Parser
	Journal *Journal
}

// Start launches the read loop in a background goroutine. It reconnects with
// exponential backoff until the context is cancelled.
func (s *WebsocketSource) Start(ctx context.Context) error {
	if s.URL == "" {
		return fmt.Errorf("websocket source requires a url")
	}
	if s.Parser == nil || s.Journal == nil {
		return fmt.Errorf("websocket source requires a parser and journal")
	}
	go s.run(ctx)
	return nil
}

func (s *WebsocketSource) run(ctx context.Context) {
	backoff := wsInitialBackoff
	for {
		if ctx.Err() != nil {
			return
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.URL, nil)
		if err != nil {
			log.Printf("feed: dial %s failed: %v (retrying in %v)", s.URL, err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > wsMaxBackoff {
				backoff = wsMaxBackoff
			}
			continue
		}
		backoff = wsInitialBackoff

		// Close the connection when the context ends so ReadMessage unblocks.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-done:
			}
		}()

		s.readLoop(conn)
		close(done)
		conn.Close()
	}
}

func (s *WebsocketSource) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("feed: read error: %v, reconnecting", err)
			return
		}
		for _, line := range strings.Split(string(message), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			ev := s.Parser.Parse(line)
			if ev.ID == "" {
				ev.ID = "ws_" + uuid.NewString()
			}
			s.Journal.Append(ev)
		}
	}
}
