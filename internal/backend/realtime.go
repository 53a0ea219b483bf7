package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// connectEvent is the name of the handshake frame carrying the client ID.
const connectEvent = "PB_CONNECT"

const maxEventSize = 1 << 20

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is one change-feed notification.
type Event struct {
	Collection string
	Action     Action
	Record     json.RawMessage
}

// Handler receives change-feed events. Calls are serialized: one goroutine
// owns the stream.
type Handler func(Event)

// Subscription is a live change feed. Close tears it down; leaking it keeps
// a callback firing against a view nobody renders anymore.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops the feed and waits for the reader goroutine to exit.
func (s *Subscription) Close() error {
	s.cancel()
	<-s.done
	return nil
}

type rtConn struct {
	body     io.ReadCloser
	scanner  *bufio.Scanner
	clientID string
}

type rtMessage struct {
	Action Action          `json:"action"`
	Record json.RawMessage `json:"record"`
}

// Subscribe opens the server-sent-events stream, registers interest in the
// given collections, and delivers every create/update/delete on them to h.
// The first connection is made synchronously so a dead backend surfaces
// here; later stream drops reconnect in the background with backoff.
func (c *Client) Subscribe(ctx context.Context, collections []string, h Handler) (*Subscription, error) {
	runCtx, cancel := context.WithCancel(ctx)

	conn, err := c.connect(runCtx, collections)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		c.consume(runCtx, conn, collections, h)

		attempt := 0
		for runCtx.Err() == nil {
			attempt++
			delay := time.Duration(attempt) * c.baseDelay
			if delay > 10*time.Second {
				delay = 10 * time.Second
			}
			select {
			case <-runCtx.Done():
				return
			case <-time.After(delay):
			}

			conn, err := c.connect(runCtx, collections)
			if err != nil {
				c.logger.Warn("Realtime reconnect failed",
					zap.Int("attempt", attempt), zap.Error(err))
				continue
			}
			c.logger.Info("Realtime feed reconnected", zap.Int("attempt", attempt))
			attempt = 0
			c.consume(runCtx, conn, collections, h)
		}
	}()

	return sub, nil
}

// connect opens the stream, waits for the handshake frame, and announces
// the subscription set for the issued client ID.
func (c *Client) connect(ctx context.Context, collections []string) (*rtConn, error) {
	if err := c.session.EnsureValid(ctx); err != nil {
		return nil, err
	}

	resp, err := c.request(ctx).
		SetHeader("Accept", "text/event-stream").
		SetDoNotParseResponse(true).
		Get("/api/realtime")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	body := resp.RawBody()
	if resp.StatusCode() != 200 {
		payload, _ := io.ReadAll(io.LimitReader(body, 4096))
		body.Close()
		return nil, statusError(resp.StatusCode(), string(payload))
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	conn := &rtConn{body: body, scanner: scanner}

	// The handshake is the first frame on the stream.
	name, data, err := nextFrame(scanner)
	if err != nil || name != connectEvent {
		body.Close()
		return nil, fmt.Errorf("%w: no realtime handshake", ErrTransient)
	}

	var hello struct {
		ClientID string `json:"clientId"`
	}
	if err := json.Unmarshal(data, &hello); err != nil || hello.ClientID == "" {
		body.Close()
		return nil, fmt.Errorf("%w: bad realtime handshake", ErrTransient)
	}
	conn.clientID = hello.ClientID

	annResp, err := c.request(ctx).
		SetBody(map[string]any{
			"clientId":      conn.clientID,
			"subscriptions": collections,
		}).
		Post("/api/realtime")
	if err := check(annResp, err); err != nil {
		body.Close()
		return nil, fmt.Errorf("announce subscriptions: %w", err)
	}

	return conn, nil
}

// consume reads frames until the stream ends or ctx is cancelled.
func (c *Client) consume(ctx context.Context, conn *rtConn, collections []string, h Handler) {
	defer conn.body.Close()

	watched := make(map[string]bool, len(collections))
	for _, col := range collections {
		watched[col] = true
	}

	for {
		name, data, err := nextFrame(conn.scanner)
		if err != nil {
			if ctx.Err() == nil {
				c.logger.Warn("Realtime stream dropped", zap.Error(err))
			}
			return
		}
		if !watched[name] {
			continue
		}

		var msg rtMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("Bad realtime payload",
				zap.String("collection", name), zap.Error(err))
			continue
		}

		h(Event{Collection: name, Action: msg.Action, Record: msg.Record})
	}
}

// nextFrame reads one server-sent event: event/data lines up to the blank
// separator line.
func nextFrame(scanner *bufio.Scanner) (name string, data []byte, err error) {
	var buf bytes.Buffer

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if name != "" || buf.Len() > 0 {
				return name, buf.Bytes(), nil
			}
			// stray keep-alive separator
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			buf.WriteString(strings.TrimSpace(line[len("data:"):]))
		default:
			// id: and comment lines are irrelevant here
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, err
	}
	return "", nil, io.EOF
}
