package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/qnd101/PenFootball-GameServer/game"
	"github.com/qnd101/PenFootball-GameServer/lobby"
	"github.com/qnd101/PenFootball-GameServer/tick"
)

// ---------- helpers ----------

const (
	testSecret   = "test-secret"
	testIssuer   = "penfootball-server"
	testAudience = "penfootball-frontend"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func signToken(t *testing.T, sub int, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(sub),
		"email": email,
		"iss":   testIssuer,
		"aud":   testAudience,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

// startTestServer runs a hub, a fast scheduler and the HTTP routes, and
// returns the websocket URL. Everything stops when the test ends.
func startTestServer(t *testing.T, policy EntrancePolicy) string {
	t.Helper()
	log := quietLogger()

	lcfg := lobby.DefaultConfig()
	lcfg.NormTimeout = 0.05
	lcfg.Duel.PreviewTime = 0
	reg := lobby.New(lcfg, lobby.WithLogger(log))
	hub := NewHub(reg, NewAuth([]byte(testSecret), testIssuer, testAudience), policy, log)
	sched := tick.New(reg, hub, nil, tick.WithPeriod(10*time.Millisecond), tick.WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	go sched.Run(ctx)

	srv := httptest.NewServer(SetupRoutes(hub))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

// dialWS opens a WebSocket connection carrying a token for ext.
func dialWS(t *testing.T, wsURL string, ext int, email string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?access_token="+signToken(t, ext, email), nil)
	if err != nil {
		t.Fatalf("dial WS: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type inMsg struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d"`
}

// sendMsg sends a typed message over the WebSocket.
func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	raw, _ := json.Marshal(Envelope{T: msgType, Data: data})
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("write WS: %v", err)
	}
}

// readUntil reads messages until one named name arrives. Binary messages
// are msgpack frames and are named UpdateFrame.
func readUntil(t *testing.T, conn *websocket.Conn, name string) inMsg {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", name, err)
		}
		if msgType == websocket.BinaryMessage {
			if name == tick.FrameMessage {
				return inMsg{T: tick.FrameMessage, D: raw}
			}
			continue
		}
		var m inMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if m.T == name {
			return m
		}
	}
}

// ---------- tests ----------

func TestRejectsMissingToken(t *testing.T) {
	wsURL := startTestServer(t, nil)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("expected a failed handshake, got %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestTrainingStream(t *testing.T) {
	wsURL := startTestServer(t, nil)
	conn := dialWS(t, wsURL, 1, "a@example.com")
	sendMsg(t, conn, MsgTrain, nil)

	preview := readUntil(t, conn, "Preview")
	var geo game.Geometry
	if err := json.Unmarshal(preview.D, &geo); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if geo.Width != game.ClassicConfig().Width {
		t.Errorf("unexpected arena width %v", geo.Width)
	}

	raw := readUntil(t, conn, tick.FrameMessage)
	var f game.Frame
	if err := msgpack.Unmarshal(raw.D, &f); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	if len(f.Players) != 2 {
		t.Errorf("training frame carries the player and an offstage dummy, got %d", len(f.Players))
	}

	sendMsg(t, conn, MsgKey, KeyMsg{Type: "KeyDown", Key: "Right"})
	sendMsg(t, conn, MsgExit, nil)
}

func TestDoubleConnectionGetsError(t *testing.T) {
	wsURL := startTestServer(t, nil)
	first := dialWS(t, wsURL, 7, "a@example.com")
	sendMsg(t, first, MsgTrain, nil)
	readUntil(t, first, "Preview")

	second := dialWS(t, wsURL, 7, "a@example.com")
	sendMsg(t, second, MsgTrain, nil)
	msg := readUntil(t, second, MsgError)
	var e ErrorMsg
	json.Unmarshal(msg.D, &e)
	if e.Message != lobby.ErrDoubleConnection.Error() {
		t.Errorf("unexpected error message %q", e.Message)
	}

	// the first connection keeps playing
	readUntil(t, first, tick.FrameMessage)
}

func TestDuelOverWebsocket(t *testing.T) {
	wsURL := startTestServer(t, nil)
	a := dialWS(t, wsURL, 1, "a@example.com")
	b := dialWS(t, wsURL, 2, "b@example.com")
	sendMsg(t, a, MsgJoin, map[string]any{"kind": "duel", "rating": 1000})
	sendMsg(t, b, MsgJoin, map[string]any{"kind": "duel", "rating": "1050"})

	var found game.GameFound
	json.Unmarshal(readUntil(t, a, "GameFound").D, &found)
	if found.Kind != game.KindDuel || len(found.IDs) != 2 || found.IDs[0] != 1 {
		t.Errorf("a should see itself first, got %+v", found)
	}
	json.Unmarshal(readUntil(t, b, "GameFound").D, &found)
	if len(found.IDs) != 2 || found.IDs[0] != 2 {
		t.Errorf("b should see itself first, got %+v", found)
	}

	sendMsg(t, a, MsgExit, nil)
	var end game.GameEnd
	json.Unmarshal(readUntil(t, b, "GameEnd").D, &end)
	if end.Winner != 1 {
		t.Errorf("b stayed and should win from its own side, got %+v", end)
	}
}

func TestEntrancePolicyRefusesJoin(t *testing.T) {
	policy, err := ParsePolicy([]any{map[string]any{"email": `@school\.edu$`}})
	if err != nil {
		t.Fatal(err)
	}
	wsURL := startTestServer(t, policy)
	conn := dialWS(t, wsURL, 3, "c@example.com")

	sendMsg(t, conn, MsgJoin, map[string]any{"kind": "duel", "rating": 1000})
	var e ErrorMsg
	json.Unmarshal(readUntil(t, conn, MsgError).D, &e)
	if e.Message != ErrNotAllowed.Error() {
		t.Errorf("unexpected error %q", e.Message)
	}

	sendMsg(t, conn, MsgTrain, nil)
	readUntil(t, conn, "Preview")
}

func TestStatus(t *testing.T) {
	wsURL := startTestServer(t, nil)
	conn := dialWS(t, wsURL, 5, "e@example.com")
	sendMsg(t, conn, MsgTrain, nil)
	readUntil(t, conn, "Preview")

	resp, err := http.Get("http" + strings.TrimSuffix(strings.TrimPrefix(wsURL, "ws"), "/ws") + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var st struct {
		Connections int            `json:"connections"`
		Sessions    map[string]int `json:"sessions"`
		Clients     int            `json:"clients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Connections != 1 || st.Sessions["training"] != 1 || st.Clients != 1 {
		t.Errorf("unexpected status %+v", st)
	}
}
