package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/qnd101/PenFootball-GameServer/lobby"
	"github.com/qnd101/PenFootball-GameServer/tick"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

var (
	errUnknownConn = errors.New("unknown connection")
	errSlowClient  = errors.New("send buffer full")
)

// Hub tracks live websocket clients by connection id and delivers the
// scheduler's messages to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[lobby.ConnID]*Client
	unregister chan *Client

	registry *lobby.Registry
	auth     *Auth
	policy   EntrancePolicy
	log      logrus.FieldLogger

	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
}

func NewHub(reg *lobby.Registry, auth *Auth, policy EntrancePolicy, log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:    make(map[lobby.ConnID]*Client),
		unregister: make(chan *Client, 64),
		registry:   reg,
		auth:       auth,
		policy:     policy,
		log:        log,
		ipConns:    make(map[string]int),
	}
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Add makes c reachable by SendTo. It runs before the client's pumps start,
// so nothing the client triggers can be sent before it is known.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.WithFields(logrus.Fields{"conn": c.id, "ext": c.ident.ExtID, "addr": c.remoteAddr}).Info("client connected")
}

// Run processes unregister events until ctx is done. A client that goes
// away leaves whatever it was doing, as if it had sent exit.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
			}
			h.mu.Unlock()
			h.registry.Exit(c.id)
			h.log.WithField("conn", c.id).Info("client disconnected")

		case <-ctx.Done():
			return nil
		}
	}
}

func (h *Hub) client(id lobby.ConnID) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// SendTo implements tick.Transport. Frames go out as binary msgpack, every
// other message as a JSON envelope. It never blocks.
func (h *Hub) SendTo(conn lobby.ConnID, name string, payload any) error {
	c := h.client(conn)
	if c == nil {
		return fmt.Errorf("%w: %s", errUnknownConn, conn)
	}
	if name == tick.FrameMessage {
		data, err := msgpack.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding frame: %w", err)
		}
		if !c.SendBinary(data) {
			return errSlowClient
		}
		return nil
	}
	data, err := json.Marshal(Envelope{T: name, Data: payload})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if !c.SendRaw(data) {
		return errSlowClient
	}
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
