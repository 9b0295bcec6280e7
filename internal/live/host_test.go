package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, cfg Config) (*Host, *wsClient) {
	t.Helper()
	host := NewHost(cfg)
	srv := httptest.NewServer(host)
	t.Cleanup(func() {
		srv.Close()
		host.Shutdown()
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?lang=en"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return host, &wsClient{t: t, conn: conn}
}

func (c *wsClient) send(req Request) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteJSON(req))
}

func (c *wsClient) receive(timeout time.Duration) (Response, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	var resp Response
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return resp, err
	}
	err = json.Unmarshal(data, &resp)
	return resp, err
}

// next skips messages until one matches.
func (c *wsClient) next(match func(Response) bool) Response {
	c.t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := c.receive(time.Until(deadline))
		require.NoError(c.t, err)
		if match(resp) {
			return resp
		}
	}
	c.t.Fatal("no matching message")
	return Response{}
}

func ofType(typ string) func(Response) bool {
	return func(r Response) bool { return r.Type == typ }
}

func (c *wsClient) mount(kind widgets.Kind) string {
	c.t.Helper()
	c.send(Request{Type: TypeMount, Ref: "w0", Kind: kind})
	resp := c.next(ofType(TypeMounted))
	require.Equal(c.t, "w0", resp.Ref)
	require.Equal(c.t, kind, resp.Kind)
	require.NotEmpty(c.t, resp.Widget)
	require.NotEmpty(c.t, resp.Controls)
	return resp.Widget
}

// state decodes the State field of a frame into v.
func state(t *testing.T, r Response, v any) {
	t.Helper()
	raw, err := json.Marshal(r.State)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestMountAndAction(t *testing.T) {
	_, c := dial(t, Config{})
	id := c.mount(widgets.KindLoss)

	frame := c.next(ofType(TypeFrame))
	assert.Equal(t, id, frame.Widget)
	assert.Contains(t, frame.SVG, "<svg")

	c.send(Request{Type: TypeAction, Widget: id, Action: "error", Value: 250})
	frame = c.next(ofType(TypeFrame))
	var st struct {
		Error float64 `json:"error"`
	}
	state(t, frame, &st)
	assert.Equal(t, 100.0, st.Error, "slider input should be clamped")
}

func TestErrors(t *testing.T) {
	_, c := dial(t, Config{})

	c.send(Request{Type: TypeMount, Kind: "teapot"})
	resp := c.next(ofType(TypeError))
	assert.Contains(t, resp.Message, "unknown widget kind")

	c.send(Request{Type: TypeAction, Widget: "nope", Action: "spawn"})
	resp = c.next(ofType(TypeError))
	assert.Equal(t, "unknown widget", resp.Message)

	id := c.mount(widgets.KindLoss)
	c.send(Request{Type: TypeAction, Widget: id, Action: "explode"})
	resp = c.next(ofType(TypeError))
	assert.Equal(t, id, resp.Widget)
	assert.Contains(t, resp.Message, "unknown widget action")

	c.send(Request{Type: "bogus"})
	resp = c.next(ofType(TypeError))
	assert.Contains(t, resp.Message, "bogus")
}

func TestFollowupSettles(t *testing.T) {
	_, c := dial(t, Config{})
	id := c.mount(widgets.KindPruning)

	type snapshot struct {
		Dots []widgets.Dot `json:"dots"`
	}

	c.send(Request{Type: TypeAction, Widget: id, Action: "reset_opacity"})
	marked := c.next(func(r Response) bool {
		if r.Type != TypeFrame {
			return false
		}
		var s snapshot
		state(t, r, &s)
		return len(s.Dots) > 0 && s.Dots[0].Status == widgets.DotReset
	})
	assert.Equal(t, id, marked.Widget)

	start := time.Now()
	settled := c.next(ofType(TypeFrame))
	assert.GreaterOrEqual(t, time.Since(start), widgets.SettleDelay/2)
	var s snapshot
	state(t, settled, &s)
	for _, d := range s.Dots {
		assert.Equal(t, widgets.DotNormal, d.Status)
		assert.LessOrEqual(t, d.Opacity, 0.3)
	}
}

func TestAnimationStopsOnPause(t *testing.T) {
	_, c := dial(t, Config{})
	id := c.mount(widgets.KindDynamic4D)

	// Ticks arrive on their own while playing.
	for i := 0; i < 3; i++ {
		c.next(ofType(TypeFrame))
	}

	c.send(Request{Type: TypeAction, Widget: id, Action: "pause"})
	c.next(func(r Response) bool {
		if r.Type != TypeFrame {
			return false
		}
		var st struct {
			Playing bool `json:"playing"`
		}
		state(t, r, &st)
		return !st.Playing
	})

	_, err := c.receive(200 * time.Millisecond)
	assert.Error(t, err, "no frames expected after pause")
}

func TestUnmount(t *testing.T) {
	_, c := dial(t, Config{})
	id := c.mount(widgets.KindGaussian)

	c.send(Request{Type: TypeUnmount, Widget: id})
	resp := c.next(ofType(TypeUnmounted))
	assert.Equal(t, id, resp.Widget)

	c.send(Request{Type: TypeAction, Widget: id, Action: "opacity", Value: 0.5})
	resp = c.next(ofType(TypeError))
	assert.Equal(t, "unknown widget", resp.Message)
}

func TestLanguageSwitchRerenders(t *testing.T) {
	_, c := dial(t, Config{})
	c.mount(widgets.KindPruning)
	c.next(ofType(TypeFrame))

	c.send(Request{Type: TypeLang, Lang: "es"})
	frame := c.next(ofType(TypeFrame))
	var labels []string
	for _, ctl := range frame.Controls {
		labels = append(labels, ctl.Label)
	}
	assert.Contains(t, labels, "Generar Gaussias")
}

func TestActionRateLimit(t *testing.T) {
	_, c := dial(t, Config{ActionsPerSecond: 0.001, Burst: 1})
	id := c.mount(widgets.KindLoss)

	c.send(Request{Type: TypeAction, Widget: id, Action: "error", Value: 10})
	c.send(Request{Type: TypeAction, Widget: id, Action: "error", Value: 20})
	resp := c.next(ofType(TypeError))
	assert.Equal(t, "rate limit exceeded", resp.Message)
}

func TestWidgetLimit(t *testing.T) {
	_, c := dial(t, Config{MaxWidgets: 1})
	c.mount(widgets.KindLoss)
	c.send(Request{Type: TypeMount, Kind: widgets.KindSH})
	resp := c.next(ofType(TypeError))
	assert.Equal(t, "too many widgets", resp.Message)
}

func TestShutdownClosesSessions(t *testing.T) {
	host, c := dial(t, Config{})
	c.mount(widgets.KindComparison)
	require.Eventually(t, func() bool { return host.Active() == 1 }, time.Second, 10*time.Millisecond)

	host.Shutdown()
	assert.Equal(t, 0, host.Active())

	for {
		if _, err := c.receive(time.Second); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway) || strings.Contains(err.Error(), "close"),
				"unexpected error %v", err)
			break
		}
	}
}

func TestPruneSurvivesInterleavedReset(t *testing.T) {
	_, c := dial(t, Config{})
	id := c.mount(widgets.KindPruning)
	c.next(ofType(TypeFrame))

	type snapshot struct {
		Dots []widgets.Dot `json:"dots"`
	}

	c.send(Request{Type: TypeAction, Widget: id, Action: "prune_opacity"})
	c.send(Request{Type: TypeAction, Widget: id, Action: "reset_opacity"})

	// Two frames for the actions, then one per settle.
	var last Response
	for i := 0; i < 4; i++ {
		last = c.next(ofType(TypeFrame))
	}

	var s snapshot
	state(t, last, &s)
	require.NotEmpty(t, s.Dots)
	for _, d := range s.Dots {
		assert.GreaterOrEqual(t, d.Opacity, 0.1, "dot %d", d.ID)
		assert.Equal(t, widgets.DotNormal, d.Status, "dot %d", d.ID)
	}
}

func TestShutdownRacesIncomingRequests(t *testing.T) {
	host := NewHost(Config{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Not a websocket handshake, so the upgrade fails fast.
			host.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		}()
	}
	host.Shutdown()
	wg.Wait()
	assert.Equal(t, 0, host.Active())

	rec := httptest.NewRecorder()
	host.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
