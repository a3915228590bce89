package vlist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// wsRequest and wsResponse are the wire messages for the streaming
// adapter. Grounded on the request/response envelope shape in
// RedClaus-cortex's vision stream client (ws_client.go): a uuid
// correlates each outstanding request to its response instead of
// relying on send/receive ordering, since a single connection may
// have several ensureRange calls in flight at once.
type wsRequest struct {
	ID     string `json:"id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor,omitempty"`
}

type wsResponse struct {
	ID      string          `json:"id"`
	Items   json.RawMessage `json:"items"`
	Total   int             `json:"total"`
	HasMore bool            `json:"hasMore"`
	Cursor  string          `json:"cursor,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// WSAdapter reads pages over a single gorilla/websocket connection,
// matching responses to requests by uuid so overlapping reads don't
// need one connection each. Safe for concurrent Read calls.
type WSAdapter[T Identifiable] struct {
	conn   *websocket.Conn
	log    zerolog.Logger
	decode func(json.RawMessage) ([]T, error)

	mu      sync.Mutex
	pending map[string]chan wsResponse

	writeMu sync.Mutex // gorilla/websocket allows one writer at a time

	readOnce sync.Once
}

// NewWSAdapter wraps an already-dialed websocket connection. decode
// unmarshals a response's raw items payload into []T; callers
// typically pass json.Unmarshal wrapped around a concrete slice type.
func NewWSAdapter[T Identifiable](conn *websocket.Conn, log zerolog.Logger, decode func(json.RawMessage) ([]T, error)) *WSAdapter[T] {
	return &WSAdapter[T]{
		conn:    conn,
		log:     log,
		decode:  decode,
		pending: make(map[string]chan wsResponse),
	}
}

// Read sends a read request and blocks until the matching response
// arrives, the context is cancelled, or the connection dies.
func (a *WSAdapter[T]) Read(ctx context.Context, req ReadRequest) (Page[T], error) {
	a.ensureReadLoop()

	id := uuid.NewString()
	ch := make(chan wsResponse, 1)
	a.mu.Lock()
	a.pending[id] = ch
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		delete(a.pending, id)
		a.mu.Unlock()
	}()

	wire := wsRequest{ID: id, Offset: req.Offset, Limit: req.Limit, Cursor: req.Cursor}
	a.writeMu.Lock()
	err := a.conn.WriteJSON(wire)
	a.writeMu.Unlock()
	if err != nil {
		return Page[T]{}, fmt.Errorf("vlist: wsadapter write: %w", err)
	}

	select {
	case <-ctx.Done():
		return Page[T]{}, ctx.Err()
	case resp := <-ch:
		if resp.Error != "" {
			return Page[T]{}, fmt.Errorf("vlist: wsadapter: %s", resp.Error)
		}
		items, err := a.decode(resp.Items)
		if err != nil {
			return Page[T]{}, fmt.Errorf("vlist: wsadapter decode: %w", err)
		}
		return Page[T]{Items: items, Total: resp.Total, HasMore: resp.HasMore, Cursor: resp.Cursor}, nil
	}
}

// ensureReadLoop starts the single background reader that demuxes
// incoming frames to pending requests by id. Responses for an id with
// no waiter (already timed out, or a server-initiated push) are
// logged and dropped.
func (a *WSAdapter[T]) ensureReadLoop() {
	a.readOnce.Do(func() {
		go func() {
			for {
				var resp wsResponse
				if err := a.conn.ReadJSON(&resp); err != nil {
					a.log.Warn().Err(err).Msg("wsadapter read loop stopped")
					a.failAllPending(err)
					return
				}
				a.mu.Lock()
				ch, ok := a.pending[resp.ID]
				a.mu.Unlock()
				if !ok {
					a.log.Debug().Str("id", resp.ID).Msg("wsadapter response with no waiter")
					continue
				}
				ch <- resp
			}
		}()
	})
}

func (a *WSAdapter[T]) failAllPending(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, ch := range a.pending {
		ch <- wsResponse{ID: id, Error: err.Error()}
	}
}

// Close closes the underlying connection.
func (a *WSAdapter[T]) Close() error {
	return a.conn.Close()
}
