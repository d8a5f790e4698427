package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var updatesUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// UpdateEvent is the payload sent to websocket subscribers after every
// slice mutation.
type UpdateEvent struct {
	Type      string          `json:"type"`
	Slice     string          `json:"slice"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// UpdateHub fans slice updates out to websocket subscribers. It sits
// between the store's synchronous notify and the connections' async writes:
// Publish never blocks an action, a slow subscriber just drops events.
type UpdateHub struct {
	mu      sync.RWMutex
	subs    map[int]chan UpdateEvent
	nextSub int
}

func NewUpdateHub() *UpdateHub {
	return &UpdateHub{subs: make(map[int]chan UpdateEvent)}
}

// Subscribe returns a channel of update events and an unsubscribe func.
func (h *UpdateHub) Subscribe() (<-chan UpdateEvent, func()) {
	ch := make(chan UpdateEvent, 64)
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
		h.mu.Unlock()
	}
}

// Publish is registered as a store subscriber. Best-effort: full channels
// drop the event rather than stall the action.
func (h *UpdateHub) Publish(slice string, data json.RawMessage) {
	event := UpdateEvent{
		Type:      "slice_update",
		Slice:     slice,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// StreamUpdates streams slice updates over a WebSocket. An optional
// `slices` query parameter (comma-separated) narrows which slices are
// forwarded; default is all of them.
func (h *Handler) StreamUpdates(w http.ResponseWriter, r *http.Request) {
	var filter map[string]struct{}
	if raw := strings.TrimSpace(r.URL.Query().Get("slices")); raw != "" {
		filter = make(map[string]struct{})
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				filter[name] = struct{}{}
			}
		}
	}

	conn, err := updatesUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	// Writer goroutine: forward hub events to this connection
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			if filter != nil {
				if _, ok := filter[event.Slice]; !ok {
					continue
				}
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("error writing update event to websocket: %v", err)
				return
			}
		}
	}()

	// Reader loop: only pings/closes are expected from the client
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}

	unsubscribe()
	<-done
}
