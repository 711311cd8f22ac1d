package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/lanebattle/internal/match"
)

type fixedSource struct {
	mu   sync.Mutex
	snap *match.Snapshot
}

func (f *fixedSource) Snapshot() *match.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func newTestServer(t *testing.T, source SnapshotSource) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroadcaster(source, 10*time.Millisecond, nil)
	go b.Run(ctx)

	srv := httptest.NewServer(SetupRouter(RouterOptions{
		SSHHost:     "play.example.org",
		Source:      source,
		Broadcaster: b,
		Rules:       match.DefaultRules(),
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIndexShowsSSHHost(t *testing.T) {
	srv := newTestServer(t, &fixedSource{})
	status, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ssh -p 2222 play.example.org")
	assert.NotContains(t, body, "{{.SSHHost}}")
}

func TestDemoNotStarted(t *testing.T) {
	srv := newTestServer(t, &fixedSource{})
	status, _ := get(t, srv.URL+"/api/demo")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestDemoSnapshotJSON(t *testing.T) {
	m := match.New(match.WithSeed(4))
	m.Update(0, []match.Command{match.SelectLane(1), match.Spawn(match.PieceRook)})
	srv := newTestServer(t, &fixedSource{snap: m.Snapshot()})

	status, body := get(t, srv.URL+"/api/demo")
	require.Equal(t, http.StatusOK, status)

	var got struct {
		MatchID string `json:"matchId"`
		Outcome string `json:"outcome"`
		Human   struct {
			Population int `json:"population"`
			Pieces     []struct {
				Type   string `json:"type"`
				Active bool   `json:"active"`
				Lane   int    `json:"lane"`
			} `json:"pieces"`
		} `json:"human"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, m.ID().String(), got.MatchID)
	assert.Equal(t, "undecided", got.Outcome)
	assert.Equal(t, 1, got.Human.Population)
	require.Len(t, got.Human.Pieces, match.MaxPieces)
	assert.True(t, got.Human.Pieces[0].Active)
	assert.Equal(t, "Rook", got.Human.Pieces[0].Type)
	assert.Equal(t, 1, got.Human.Pieces[0].Lane)
}

func TestRulesUseCamelCaseKeys(t *testing.T) {
	srv := newTestServer(t, &fixedSource{})
	status, body := get(t, srv.URL+"/api/rules")
	require.Equal(t, http.StatusOK, status)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, 500.0, got["startingPoints"])
	assert.Equal(t, 2.5, got["pieceSpeed"])
	assert.NotContains(t, got, "StartingPoints")
}

func TestPiecesTable(t *testing.T) {
	srv := newTestServer(t, &fixedSource{})
	status, body := get(t, srv.URL+"/api/pieces")
	require.Equal(t, http.StatusOK, status)

	var pieces []pieceInfo
	require.NoError(t, json.Unmarshal([]byte(body), &pieces))
	require.Len(t, pieces, match.PieceTypeCount)
	assert.Equal(t, 4, pieces[0].Key)
	assert.Equal(t, 500, pieces[4].Cost)
}

func TestWebsocketStreamsSnapshots(t *testing.T) {
	m := match.New(match.WithSeed(9))
	source := &fixedSource{snap: m.Snapshot()}
	srv := newTestServer(t, source)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/demo"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	first := readFrame(t, conn)
	assert.Equal(t, m.ID().String(), first.MatchID)

	// A newer frame is pushed without asking.
	m.Update(0.5, nil)
	source.mu.Lock()
	source.snap = m.Snapshot()
	source.mu.Unlock()

	for {
		got := readFrame(t, conn)
		if got.Frame == m.Frame() {
			break
		}
	}
}

type wireFrame struct {
	MatchID string `json:"matchId"`
	Frame   int    `json:"frame"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wireFrame {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var f wireFrame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestDemoRestartsFinishedMatches(t *testing.T) {
	rules := match.DefaultRules()
	rules.KingHealth = 1
	rules.PieceSpeed = 40
	rules.AttackInterval = 0.01
	rules.StartingPoints = 5000
	rules.AIInterval = 0.05

	d := NewDemo(DemoOptions{Rules: rules, Seed: 3, RestartDelay: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	var first string
	require.Eventually(t, func() bool {
		if s := d.Snapshot(); s != nil {
			first = s.MatchID
			return true
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		s := d.Snapshot()
		return s != nil && s.MatchID != first
	}, 20*time.Second, 20*time.Millisecond)
}
