// Package live drives demo widgets over a websocket. Each connection runs a
// single event loop that owns every widget mounted on it; animation ticks
// and delayed follow-ups are posted into that loop, never applied from
// their own goroutines.
package live

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

// Config bounds what a single connection may do.
type Config struct {
	ActionsPerSecond float64
	Burst            int
	MaxWidgets       int
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{ActionsPerSecond: 30, Burst: 60, MaxWidgets: 32}
}

// Host upgrades HTTP requests to widget sessions.
type Host struct {
	cfg      Config
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	active int
	closed bool
}

// NewHost creates a Host. Sessions end when Shutdown is called.
func NewHost(cfg Config) *Host {
	def := DefaultConfig()
	if cfg.ActionsPerSecond <= 0 {
		cfg.ActionsPerSecond = def.ActionsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.MaxWidgets <= 0 {
		cfg.MaxWidgets = def.MaxWidgets
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Host{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Active returns the number of open sessions.
func (h *Host) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Shutdown ends every session and waits for their players and timers to be
// released.
func (h *Host) Shutdown() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.cancel()
	h.wg.Wait()
}

// enter registers a session unless the host is shutting down.
func (h *Host) enter() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	h.active++
	return true
}

func (h *Host) leave() {
	h.mu.Lock()
	h.active--
	h.mu.Unlock()
	h.wg.Done()
}

// ServeHTTP upgrades the connection and runs its session until the client
// disconnects or the host shuts down.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.enter() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.leave()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: websocket upgrade: %v", err)
		return
	}

	s := newSession(h.ctx, conn, h.cfg, i18n.Parse(r.URL.Query().Get("lang")))
	s.run()
}

type mounted struct {
	id      string
	widget  widgets.Widget
	player  *widgets.Player
	pending map[*pending]struct{}
}

// pending is a scheduled follow-up. Only the loop touches timer.
type pending struct {
	timer *time.Timer
}

// event is posted into the loop by players and follow-up timers.
type event struct {
	widget string
	tick    bool
	action  widgets.Action
	pending *pending
}

type session struct {
	ctx     context.Context
	cancel  context.CancelFunc
	conn    *websocket.Conn
	cfg     Config
	lang    i18n.Language
	limiter *rate.Limiter
	widgets map[string]*mounted
	events  chan event
}

func newSession(parent context.Context, conn *websocket.Conn, cfg Config, lang i18n.Language) *session {
	ctx, cancel := context.WithCancel(parent)
	return &session{
		ctx:     ctx,
		cancel:  cancel,
		conn:    conn,
		cfg:     cfg,
		lang:    lang,
		limiter: rate.NewLimiter(rate.Limit(cfg.ActionsPerSecond), cfg.Burst),
		widgets: make(map[string]*mounted),
		events:  make(chan event),
	}
}

func (s *session) run() {
	defer s.close()

	requests := make(chan Request)
	go s.read(requests)

	for {
		select {
		case <-s.ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			s.handle(req)
		case ev := <-s.events:
			s.dispatch(ev)
		}
	}
}

// read pumps client messages into the loop. It closes requests when the
// connection fails.
func (s *session) read(requests chan<- Request) {
	defer close(requests)
	s.conn.SetReadLimit(maxMessageSize)
	for {
		var req Request
		if err := s.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: websocket read: %v", err)
			}
			s.cancel()
			return
		}
		select {
		case requests <- req:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *session) close() {
	s.cancel()
	for id := range s.widgets {
		s.unmount(id)
	}
	s.conn.Close()
}

func (s *session) handle(req Request) {
	switch req.Type {
	case TypeMount:
		s.mount(req)
	case TypeUnmount:
		if _, ok := s.widgets[req.Widget]; !ok {
			s.sendError(req.Widget, "unknown widget")
			return
		}
		s.unmount(req.Widget)
		s.send(Response{Type: TypeUnmounted, Widget: req.Widget})
	case TypeAction:
		if !s.limiter.Allow() {
			s.sendError(req.Widget, "rate limit exceeded")
			return
		}
		s.apply(req.Widget, widgets.Action{Name: req.Action, Value: req.Value, Option: req.Option})
	case TypeLang:
		s.lang = i18n.Parse(string(req.Lang))
		for _, m := range s.widgets {
			s.sendFrame(m)
		}
	default:
		s.sendError("", fmt.Sprintf("unknown message type %q", req.Type))
	}
}

func (s *session) mount(req Request) {
	if len(s.widgets) >= s.cfg.MaxWidgets {
		s.sendError("", "too many widgets")
		return
	}
	w, err := widgets.New(req.Kind, nil)
	if err != nil {
		s.sendError("", err.Error())
		return
	}
	if req.Lang.Valid() {
		s.lang = req.Lang
	}

	m := &mounted{
		id:      uuid.New().String(),
		widget:  w,
		pending: make(map[*pending]struct{}),
	}
	if a, ok := w.(widgets.Animated); ok {
		id := m.id
		m.player = widgets.NewPlayer(a.Interval(), func(ctx context.Context) {
			select {
			case s.events <- event{widget: id, tick: true}:
			case <-ctx.Done():
			}
		})
	}
	s.widgets[m.id] = m

	s.send(Response{
		Type:     TypeMounted,
		Ref:      req.Ref,
		Widget:   m.id,
		Kind:     w.Kind(),
		Title:    w.Title(s.lang),
		Controls: w.Controls(s.lang),
	})
	s.sendFrame(m)
	s.syncPlayer(m)
}

func (s *session) unmount(id string) {
	m, ok := s.widgets[id]
	if !ok {
		return
	}
	if m.player != nil {
		m.player.Stop()
	}
	for p := range m.pending {
		p.timer.Stop()
	}
	delete(s.widgets, id)
}

func (s *session) apply(id string, a widgets.Action) {
	m, ok := s.widgets[id]
	if !ok {
		s.sendError(id, "unknown widget")
		return
	}
	eff, err := m.widget.Apply(a)
	if err != nil {
		s.sendError(id, err.Error())
		return
	}
	if f := eff.Followup; f != nil {
		s.schedule(m, *f)
	}
	s.sendFrame(m)
	s.syncPlayer(m)
}

// schedule delivers a follow-up action through the loop once its delay
// elapses. Timers are dropped on unmount.
func (s *session) schedule(m *mounted, f widgets.Followup) {
	p := &pending{}
	id, action := m.id, f.Action
	p.timer = time.AfterFunc(f.After, func() {
		select {
		case s.events <- event{widget: id, action: action, pending: p}:
		case <-s.ctx.Done():
		}
	})
	m.pending[p] = struct{}{}
}

func (s *session) dispatch(ev event) {
	m, ok := s.widgets[ev.widget]
	if !ok {
		return
	}
	if ev.pending != nil {
		delete(m.pending, ev.pending)
	}
	if ev.tick {
		a, ok := m.widget.(widgets.Animated)
		if !ok || !a.Playing() {
			return
		}
		a.Tick()
		s.sendFrame(m)
		return
	}
	s.apply(ev.widget, ev.action)
}

// syncPlayer runs the player exactly while an animated widget is playing.
func (s *session) syncPlayer(m *mounted) {
	a, ok := m.widget.(widgets.Animated)
	if !ok || m.player == nil {
		return
	}
	if a.Playing() {
		m.player.Start(s.ctx)
	} else {
		m.player.Stop()
	}
}

func (s *session) sendFrame(m *mounted) {
	s.send(Response{
		Type:     TypeFrame,
		Widget:   m.id,
		Kind:     m.widget.Kind(),
		Controls: m.widget.Controls(s.lang),
		SVG:      m.widget.Render(s.lang),
		State:    m.widget.Snapshot(),
	})
}

func (s *session) sendError(widget, message string) {
	s.send(Response{Type: TypeError, Widget: widget, Message: message})
}

func (s *session) send(resp Response) {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(resp); err != nil {
		log.Printf("live: websocket write: %v", err)
		s.cancel()
	}
}
