package network

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/engine"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newTestServer(t *testing.T, hc HandlerConfig) (*httptest.Server, *Handler) {
	t.Helper()
	cfg := config.Default()
	h := NewHandler(func() (*engine.Simulation, error) {
		return engine.New(cfg, engine.WithSource(fixedSource(0.5)))
	}, hc)
	h.SetLogger(log.New(io.Discard, "", 0))

	srv := httptest.NewServer(NewRouter(h, cfg))
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, codec Codec) ServerMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if mt != codec.FrameType() {
		t.Fatalf("frame type = %d, want %d", mt, codec.FrameType())
	}
	var msg ServerMessage
	if err := codec.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return msg
}

func writeMessage(t *testing.T, conn *websocket.Conn, codec Codec, msg ClientMessage) {
	t.Helper()
	data, err := codec.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(codec.FrameType(), data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

var testFrame = ClientMessage{
	Type:   MsgFrame,
	Dt:     0.1,
	Player: core.PlayerPose{Forward: mgl64.Vec3{0, 0, -1}},
	Blade:  core.BladePose{Center: mgl64.Vec3{5, 0, 0}, Direction: mgl64.Vec3{0, 1, 0}},
}

func TestSessionRoundTrip(t *testing.T) {
	for _, name := range []string{CodecJSON, CodecMsgpack} {
		t.Run(name, func(t *testing.T) {
			srv, h := newTestServer(t, HandlerConfig{})
			codec, _ := CodecFor(name)
			conn := dial(t, srv, "?codec="+name)

			welcome := readMessage(t, conn, codec)
			if welcome.Type != MsgWelcome || welcome.Session == "" || welcome.Config == nil {
				t.Fatalf("welcome = %+v", welcome)
			}
			if welcome.Config.Blade.Length != config.Default().Blade.Length {
				t.Errorf("welcome config blade length = %v", welcome.Config.Blade.Length)
			}

			var hits int
			for i := 0; i < 25; i++ {
				writeMessage(t, conn, codec, testFrame)
				state := readMessage(t, conn, codec)
				if state.Type != MsgState || state.Result == nil || state.Snapshot == nil {
					t.Fatalf("state = %+v", state)
				}
				if state.Result.Frame != int64(i+1) {
					t.Fatalf("frame = %d, want %d", state.Result.Frame, i+1)
				}
				hits += state.Result.Hits
			}
			if hits != 1 {
				t.Errorf("hits = %d, want 1", hits)
			}
			if h.SessionCount() != 1 {
				t.Errorf("session count = %d", h.SessionCount())
			}
		})
	}
}

func TestSessionReset(t *testing.T) {
	srv, _ := newTestServer(t, HandlerConfig{})
	codec, _ := CodecFor(CodecJSON)
	conn := dial(t, srv, "")
	readMessage(t, conn, codec)

	for i := 0; i < 3; i++ {
		writeMessage(t, conn, codec, testFrame)
		readMessage(t, conn, codec)
	}
	writeMessage(t, conn, codec, ClientMessage{Type: MsgReset})
	state := readMessage(t, conn, codec)
	if state.Type != MsgState || state.Snapshot.Frame != 0 || state.Result != nil {
		t.Fatalf("reset state = %+v", state)
	}
}

func TestSessionErrorKeepsOpen(t *testing.T) {
	srv, _ := newTestServer(t, HandlerConfig{})
	codec, _ := CodecFor(CodecJSON)
	conn := dial(t, srv, "")
	readMessage(t, conn, codec)

	writeMessage(t, conn, codec, ClientMessage{Type: "teleport"})
	msg := readMessage(t, conn, codec)
	if msg.Type != MsgError || !strings.Contains(msg.Error, ErrUnknownMessage.Error()) {
		t.Fatalf("error message = %+v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn, codec); msg.Type != MsgError {
		t.Fatalf("malformed frame reply = %+v", msg)
	}

	writeMessage(t, conn, codec, testFrame)
	if msg := readMessage(t, conn, codec); msg.Type != MsgState {
		t.Fatalf("session unusable after errors: %+v", msg)
	}
}

func TestHandleUnknownCodec(t *testing.T) {
	srv, _ := newTestServer(t, HandlerConfig{})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?codec=xml"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("err = %v, want bad handshake", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleMaxSessions(t *testing.T) {
	srv, _ := newTestServer(t, HandlerConfig{MaxSessions: 1})
	codec, _ := CodecFor(CodecJSON)
	conn := dial(t, srv, "")
	readMessage(t, conn, codec)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second session accepted over limit")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("response = %v, want 503", resp)
	}
}

func TestRoutes(t *testing.T) {
	srv, _ := newTestServer(t, HandlerConfig{})
	codec, _ := CodecFor(CodecJSON)
	conn := dial(t, srv, "")
	welcome := readMessage(t, conn, codec)

	writeMessage(t, conn, codec, testFrame)
	readMessage(t, conn, codec)

	var health struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	getJSON(t, srv.URL+"/healthz", http.StatusOK, &health)
	if health.Status != "ok" || health.Sessions != 1 {
		t.Errorf("health = %+v", health)
	}

	var cfg config.Config
	getJSON(t, srv.URL+"/config", http.StatusOK, &cfg)
	if cfg.Blade.Radius != config.Default().Blade.Radius {
		t.Errorf("config blade radius = %v", cfg.Blade.Radius)
	}

	var stats SessionStats
	getJSON(t, srv.URL+"/sessions/"+welcome.Session, http.StatusOK, &stats)
	if stats.ID != welcome.Session || stats.Stats.Frames != 1 {
		t.Errorf("session stats = %+v", stats)
	}

	getJSON(t, srv.URL+"/sessions/00000000-0000-0000-0000-000000000000", http.StatusNotFound, nil)
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestCodecFor(t *testing.T) {
	if c, err := CodecFor(""); err != nil || c.Name() != CodecJSON {
		t.Errorf("default codec = %v, %v", c, err)
	}
	if _, err := CodecFor("gob"); err == nil {
		t.Error("expected error for unknown codec")
	}
}
