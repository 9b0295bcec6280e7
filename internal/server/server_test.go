package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/db"
	"github.com/ziadkadry99/splatdocs/internal/embeddings"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/indexer"
	"github.com/ziadkadry99/splatdocs/internal/live"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/session"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

func newTestServer(t *testing.T, cfg Config, store vectordb.VectorStore) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	catalog := content.Course()
	sessions := session.NewSQLStore(database)
	defaults := nav.DefaultState(catalog.Tree(i18n.Spanish).PartIDs(), []string{"part-1"})
	srv, err := New(cfg, Deps{
		Catalog:  catalog,
		Sessions: sessions,
		Cookies:  session.NewCookies("test-secret", 1),
		Nav:      nav.NewController(sessions, defaults),
		Live:     live.NewHost(live.DefaultConfig()),
		Store:    store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv
}

// client replays cookies between requests like a browser would.
type client struct {
	t       *testing.T
	srv     *Server
	cookies []*http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.srv.Router().ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest("GET", path, nil))
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{AllowAll: true}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestRootRedirectsToDefault(t *testing.T) {
	srv := newTestServer(t, Config{DefaultID: "1.1"}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/section/1.1" {
		t.Errorf("Location = %q", loc)
	}
}

func TestSectionPage(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/section/9.2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	html := w.Body.String()
	for _, want := range []string{
		`<html lang="es">`,
		"Estrategias de Poda (Pruning)",
		`data-widget="pruning"`,
		`data-live="1"`,
		`href="/section/9.1"`,
		`href="/section/9.5"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, `data-semantic="1"`) {
		t.Error("semantic search should be off without an index")
	}
	if len(c.cookies) == 0 {
		t.Error("first visit should issue a visitor cookie")
	}
}

func TestSectionIDRedirectsToFirstSubsection(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/section/7")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/section/7.0" {
		t.Errorf("Location = %q", loc)
	}
}

func TestUnknownSectionRendersPlaceholder(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/section/99.9")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), i18n.T(i18n.Spanish, i18n.MsgNotFound)) {
		t.Error("missing localized placeholder")
	}
	if !strings.Contains(w.Body.String(), `class="parts"`) {
		t.Error("not found page should still carry the sidebar")
	}
}

func TestLanguageTogglePersistsPerVisitor(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	alice := &client{t: t, srv: srv}
	bob := &client{t: t, srv: srv}

	alice.get("/section/9.2")
	bob.get("/section/9.2")

	w := alice.post("/lang/toggle", url.Values{"return": {"9.2"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/section/9.2" {
		t.Errorf("Location = %q", loc)
	}

	if html := alice.get("/section/9.2").Body.String(); !strings.Contains(html, "Pruning Strategies") {
		t.Error("toggled visitor should see the English page for the same id")
	}
	if html := bob.get("/section/9.2").Body.String(); !strings.Contains(html, "Estrategias de Poda") {
		t.Error("other visitors keep their language")
	}

	alice.post("/lang/toggle", url.Values{"return": {"9.2"}})
	if html := alice.get("/section/9.2").Body.String(); !strings.Contains(html, `<html lang="es">`) {
		t.Error("toggling twice should restore Spanish")
	}
}

func TestLanguageToggleWithoutReturn(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.post("/lang/toggle", nil)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Errorf("got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestSidebarToggle(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	html := c.get("/section/1.1").Body.String()
	if !strings.Contains(html, `<li class="part expanded" data-part="part-1">`) {
		t.Fatal("part-1 should start expanded")
	}
	if !strings.Contains(html, `<li class="part" data-part="part-3">`) {
		t.Fatal("part-3 should start collapsed")
	}

	if w := c.post("/sidebar/part-3/toggle", url.Values{"return": {"1.1"}}); w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	html = c.get("/section/1.1").Body.String()
	if !strings.Contains(html, `<li class="part expanded" data-part="part-3">`) {
		t.Error("part-3 should be expanded after toggle")
	}

	var tree treeResponse
	if err := json.Unmarshal(c.get("/api/tree").Body.Bytes(), &tree); err != nil {
		t.Fatal(err)
	}
	if len(tree.Expanded) != 2 || tree.Expanded[0] != "part-1" || tree.Expanded[1] != "part-3" {
		t.Errorf("expanded = %v", tree.Expanded)
	}

	if w := c.post("/sidebar/part-99/toggle", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown part: expected 404, got %d", w.Code)
	}
}

func TestAPITree(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	var tree treeResponse
	if err := json.Unmarshal(c.get("/api/tree?lang=en").Body.Bytes(), &tree); err != nil {
		t.Fatal(err)
	}
	if tree.Lang != i18n.English {
		t.Errorf("lang = %q", tree.Lang)
	}
	if len(tree.Parts) != len(content.English().Parts) || tree.Parts[0].Title != "Part I: Fundamentals" {
		t.Errorf("unexpected parts: %d", len(tree.Parts))
	}
}

func TestAPISection(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/api/section/9.2?lang=en")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp sectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Found || resp.Title != "Pruning Strategies" || resp.PartID != "part-3" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Prev == nil || resp.Prev.ID != "9.1" || resp.Next == nil || resp.Next.ID != "9.5" {
		t.Errorf("neighbors = %+v %+v", resp.Prev, resp.Next)
	}
	if len(resp.Widgets) != 1 || resp.Widgets[0] != "pruning" {
		t.Errorf("widgets = %v", resp.Widgets)
	}

	w = c.get("/api/section/nope?lang=en")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp = sectionResponse{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Found || resp.Placeholder != i18n.T(i18n.English, i18n.MsgNotFound) {
		t.Errorf("resp = %+v", resp)
	}
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/static/style.css")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/css") {
		t.Errorf("style.css: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w := c.get("/static/missing.js"); w.Code != http.StatusNotFound {
		t.Errorf("missing asset: got %d", w.Code)
	}
}

func TestSearchIndexEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	var entries []struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	}
	if err := json.Unmarshal(c.get("/api/search-index?lang=en").Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(content.Flatten(content.English())) {
		t.Errorf("entries = %d", len(entries))
	}
	if entries[0].Path != "/section/"+entries[0].ID {
		t.Errorf("live paths should be server routes, got %q", entries[0].Path)
	}
}

func TestSearchWithoutIndex(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	if w := c.get("/api/search?q=pruning"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if w := c.get("/api/search"); w.Code != http.StatusBadRequest {
		t.Errorf("empty query: expected 400, got %d", w.Code)
	}
}

func TestSemanticSearch(t *testing.T) {
	store, err := vectordb.NewChromemStore(embeddings.NewHashingEmbedder(128))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, lang := range i18n.All {
		if err := store.AddDocuments(ctx, indexer.ChunkTree(content.Course().Tree(lang), filter.Set{})); err != nil {
			t.Fatal(err)
		}
	}
	srv := newTestServer(t, Config{}, store)
	c := &client{t: t, srv: srv}

	if !strings.Contains(c.get("/section/1.1").Body.String(), `data-semantic="1"`) {
		t.Error("pages should enable semantic search when an index is present")
	}

	req := httptest.NewRequest("POST", "/api/search", strings.NewReader(`{"query":"pruning strategies opacity","lang":"en","limit":3}`))
	req.Header.Set("Content-Type", "application/json")
	w := c.do(req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) == 0 || len(resp.Results) > 3 {
		t.Fatalf("results = %d", len(resp.Results))
	}
	var found bool
	for _, hit := range resp.Results {
		if hit.Path != "/section/"+hit.ID {
			t.Errorf("path = %q", hit.Path)
		}
		found = found || hit.ID == "9.2"
	}
	if !found {
		t.Errorf("9.2 not among %+v", resp.Results)
	}

	bad := httptest.NewRequest("POST", "/api/search", strings.NewReader(`{`))
	if w := c.do(bad); w.Code != http.StatusBadRequest {
		t.Errorf("bad body: expected 400, got %d", w.Code)
	}
}

func TestWidgetSVG(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	c := &client{t: t, srv: srv}

	w := c.get("/widgets/loss.svg?error=250&lang=en")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "image/svg+xml" || !strings.HasPrefix(strings.TrimSpace(w.Body.String()), "<svg") {
		t.Errorf("not an svg: %q", w.Body.String())
	}

	if w := c.get("/widgets/pruning.svg?actions=prune_opacity"); w.Code != http.StatusOK {
		t.Errorf("two-phase action: got %d", w.Code)
	}
	if w := c.get("/widgets/loss.svg?error=abc"); w.Code != http.StatusBadRequest {
		t.Errorf("bad slider value: got %d", w.Code)
	}
	for _, v := range []string{"NaN", "Inf", "-inf"} {
		if w := c.get("/widgets/projection.svg?depth=" + v); w.Code != http.StatusBadRequest {
			t.Errorf("non-finite depth %s: got %d", v, w.Code)
		}
	}
	if w := c.get("/widgets/loss.svg?actions=explode"); w.Code != http.StatusBadRequest {
		t.Errorf("unknown action: got %d", w.Code)
	}
	if w := c.get("/widgets/teapot.svg"); w.Code != http.StatusNotFound {
		t.Errorf("unknown kind: got %d", w.Code)
	}
}

func TestRateLimitOnToggles(t *testing.T) {
	srv := newTestServer(t, Config{RateLimitRPS: 1, RateLimitBurst: 2}, nil)
	c := &client{t: t, srv: srv}

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = c.post("/lang/toggle", url.Values{"return": {"1.1"}})
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last.Code)
	}
	if last.Header().Get("Retry-After") != "1" {
		t.Error("missing Retry-After")
	}

	// Page reads are not limited.
	if w := c.get("/section/1.1"); w.Code != http.StatusOK {
		t.Errorf("GET should not be limited, got %d", w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"direct", "203.0.113.7:1234", "", "203.0.113.7"},
		{"untrusted forward", "203.0.113.7:1234", "198.51.100.1", "203.0.113.7"},
		{"proxied", "127.0.0.1:1234", "198.51.100.1, 10.0.0.1", "198.51.100.1"},
		{"private proxy", "10.1.2.3:80", "198.51.100.2", "198.51.100.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
