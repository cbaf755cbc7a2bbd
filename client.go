package main

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/qnd101/PenFootball-GameServer/lobby"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
)

// Client is one authenticated websocket connection
type Client struct {
	id         lobby.ConnID
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
	ident      Identity
	log        logrus.FieldLogger
	msgCount   int
	msgResetAt time.Time
}

func NewClient(hub *Hub, conn *websocket.Conn, id lobby.ConnID, ident Identity, remoteAddr string) *Client {
	return &Client{
		id:         id,
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
		ident:      ident,
		log:        hub.log.WithFields(logrus.Fields{"conn": id, "ext": ident.ExtID}),
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("ws error")
			}
			break
		}

		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.log.WithField("addr", c.remoteAddr).Warn("rate limit exceeded, disconnecting")
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON envelope to the client
func (c *Client) SendJSON(name string, payload any) {
	data, err := json.Marshal(Envelope{T: name, Data: payload})
	if err != nil {
		c.log.WithError(err).Error("marshal error")
		return
	}
	c.SendRaw(data)
}

// SendRaw queues pre-marshaled bytes as a text message. It reports false if
// the client is too slow or already gone.
func (c *Client) SendRaw(data []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// SendBinary queues pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) bool {
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	return c.SendRaw(msg)
}

func (c *Client) sendError(err error) {
	c.SendJSON(MsgError, ErrorMsg{Message: err.Error()})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.WithError(err).Debug("unmarshal error")
		return
	}

	switch env.T {
	case MsgKey:
		c.handleKey(env.D)
	case MsgExit:
		c.hub.registry.Exit(c.id)
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgTrain:
		c.handleTrain()
	default:
		c.log.WithField("t", env.T).Debug("unknown message")
	}
}

func (c *Client) handleKey(data json.RawMessage) {
	var msg KeyMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	key, press, err := msg.Parse()
	if err != nil {
		c.log.WithError(err).Debug("bad key event")
		return
	}
	c.hub.registry.Key(c.id, key, press)
}

func (c *Client) handleJoin(data json.RawMessage) {
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(err)
		return
	}
	kind, rating, err := msg.Parse()
	if err != nil {
		c.sendError(err)
		return
	}
	if !c.hub.policy.Allows(c.ident.Claims) {
		c.log.Info("entrance refused")
		c.sendError(ErrNotAllowed)
		return
	}
	if err := c.hub.registry.Join(c.id, c.ident.ExtID, kind, rating); err != nil {
		c.reportRejection(err)
	}
}

func (c *Client) handleTrain() {
	if err := c.hub.registry.Train(c.id, c.ident.ExtID); err != nil {
		c.reportRejection(err)
	}
}

func (c *Client) reportRejection(err error) {
	switch {
	case errors.Is(err, lobby.ErrDoubleConnection):
		c.sendError(lobby.ErrDoubleConnection)
	case errors.Is(err, lobby.ErrInMatch):
		c.sendError(lobby.ErrInMatch)
	default:
		c.sendError(err)
	}
}
