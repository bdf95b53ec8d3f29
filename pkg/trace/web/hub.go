// Package web streams trace records to websocket clients, so that
// a run can be watched from a browser while it executes.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
)

// message types sent to clients
const (
	// MessageStep carries a full record.
	MessageStep = "step"
	// MessageRepeat refers back to a recently sent record with
	// the same effect, identified by its hash.
	MessageRepeat = "repeat"
)

// Message is the JSON document sent to clients for each record.
type Message struct {
	Type   string        `json:"type"`
	Step   uint64        `json:"step"`
	Hash   uint64        `json:"hash"`
	Record *trace.Record `json:"record,omitempty"`
}

// Hub fans trace records out to every connected client. It
// implements both http.Handler, for clients to connect, and
// trace.Tracer, for the CPU to publish to.
type Hub struct {
	clients map[*client]bool

	broadcast            chan []byte
	register, unregister chan *client

	cache *cache
	log   log.Logger
	done  chan struct{}

	mu      sync.Mutex
	count   int
	dropped uint64
}

var _ trace.Tracer = (*Hub)(nil)

// NewHub returns a Hub remembering the last cacheSize records for
// repeat detection. Call Run to start delivering messages.
func NewHub(logger log.Logger, cacheSize int) *Hub {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	if cacheSize < 1 {
		cacheSize = 1
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *client),
		unregister: make(chan *client),
		cache:      newCache(cacheSize),
		log:        logger,
		done:       make(chan struct{}),
	}
}

// Run delivers messages until ctx is done, then disconnects every
// client. A Hub can only be run once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.setCount(len(h.clients))
			h.log.Debugf("trace client connected from %s", c.remoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.log.Debugf("trace client %s disconnected", c.remoteAddr)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// client can't keep up
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	delete(h.clients, c)
	h.setCount(len(h.clients))
	close(c.send)
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Dropped returns the number of messages dropped because the
// broadcast queue was full.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Trace publishes a record to connected clients. It never blocks,
// records are dropped while the broadcast queue is full.
func (h *Hub) Trace(r trace.Record) {
	msg, err := h.encode(r)
	if err != nil {
		h.log.Errorf("encoding trace record %d: %v", r.Step, err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
	}
}

// encode builds the message for r. A record whose effect (every
// field but the step index) was sent recently is replaced by a
// repeat message.
func (h *Hub) encode(r trace.Record) ([]byte, error) {
	step := r.Step
	r.Step = 0
	effect, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	hash := xxhash.Sum64(effect)

	h.mu.Lock()
	defer h.mu.Unlock()

	m := Message{Type: MessageRepeat, Step: step, Hash: hash}
	if !h.cache.has(hash) {
		h.cache.add(hash)
		r.Step = step
		m.Type = MessageStep
		m.Record = &r
	}
	return json.Marshal(m)
}

// ServeHTTP upgrades the connection to a websocket and registers
// it as a client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("upgrading trace client %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 256),
		remoteAddr: r.RemoteAddr,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.readPump()
	go c.writePump()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
