package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/site"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

const (
	defaultSearchLimit = 8
	maxSearchLimit     = 50
	maxSVGActions      = 16
	maxSearchBody      = 16 << 10
)

func sectionPath(id string) string {
	return "/section/" + url.PathEscape(id)
}

// visitorState identifies the visitor from its cookie and loads its
// navigation state.
func (s *Server) visitorState(w http.ResponseWriter, r *http.Request) (string, nav.State, error) {
	visitor, _, err := s.deps.Cookies.VisitorID(w, r)
	if err != nil {
		return "", nav.State{}, err
	}
	state, err := s.deps.Nav.Load(r.Context(), visitor)
	if err != nil {
		return "", nav.State{}, err
	}
	return visitor, state, nil
}

// requestLang prefers an explicit ?lang over the visitor's language.
func requestLang(r *http.Request, fallback i18n.Language) i18n.Language {
	if v := r.URL.Query().Get("lang"); v != "" {
		return i18n.Parse(v)
	}
	return fallback
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, sectionPath(s.cfg.DefaultID), http.StatusFound)
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, state, err := s.visitorState(w, r)
	if err != nil {
		log.Printf("server: loading session: %v", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	if target, ok := nav.SectionTarget(s.deps.Catalog.Tree(state.Lang), id); ok {
		http.Redirect(w, r, sectionPath(target), http.StatusFound)
		return
	}

	page := nav.Resolve(s.deps.Catalog, state.Lang, id)
	view, err := s.pages.View(page, state.Expanded, site.LiveLinks)
	if err != nil {
		log.Printf("server: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	view.Semantic = s.deps.Store != nil

	var buf bytes.Buffer
	if err := s.pages.Write(&buf, view); err != nil {
		log.Printf("server: writing page %s: %v", id, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	status := http.StatusOK
	if !page.Found {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirectBack returns to the page named by the "return" form value.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if id := strings.TrimSpace(r.FormValue("return")); id != "" {
		target = sectionPath(id)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleLangToggle(w http.ResponseWriter, r *http.Request) {
	visitor, _, err := s.deps.Cookies.VisitorID(w, r)
	if err == nil {
		_, err = s.deps.Nav.ToggleLanguage(r.Context(), visitor)
	}
	if err != nil {
		log.Printf("server: toggling language: %v", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	redirectBack(w, r)
}

func (s *Server) handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	part := chi.URLParam(r, "part")
	if !s.knownPart(part) {
		writeJSONError(w, http.StatusNotFound, "unknown part")
		return
	}
	visitor, _, err := s.deps.Cookies.VisitorID(w, r)
	if err == nil {
		_, err = s.deps.Nav.TogglePart(r.Context(), visitor, part)
	}
	if err != nil {
		log.Printf("server: toggling %s: %v", part, err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	redirectBack(w, r)
}

func (s *Server) knownPart(id string) bool {
	for _, lang := range s.deps.Catalog.Languages() {
		if _, ok := s.deps.Catalog.Tree(lang).Part(id); ok {
			return true
		}
	}
	return false
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := site.Asset(chi.URLParam(r, "file"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	io.WriteString(w, data)
}

type treeResponse struct {
	Lang     i18n.Language  `json:"lang"`
	Parts    []content.Part `json:"parts"`
	Expanded []string       `json:"expanded"`
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	_, state, err := s.visitorState(w, r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	tree := s.deps.Catalog.Tree(requestLang(r, state.Lang))
	writeJSON(w, http.StatusOK, treeResponse{
		Lang:     tree.Lang,
		Parts:    tree.Parts,
		Expanded: state.Expanded.IDs(),
	})
}

type entryRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func refOf(e *content.Entry) *entryRef {
	if e == nil {
		return nil
	}
	return &entryRef{ID: e.ID, Title: e.Title}
}

type sectionResponse struct {
	Lang         i18n.Language  `json:"lang"`
	ID           string         `json:"id"`
	Found        bool           `json:"found"`
	Title        string         `json:"title,omitempty"`
	PartID       string         `json:"part_id,omitempty"`
	PartTitle    string         `json:"part_title,omitempty"`
	SectionID    string         `json:"section_id,omitempty"`
	SectionTitle string         `json:"section_title,omitempty"`
	Prev         *entryRef      `json:"prev,omitempty"`
	Next         *entryRef      `json:"next,omitempty"`
	Widgets      []widgets.Kind `json:"widgets,omitempty"`
	HTML         string         `json:"html,omitempty"`
	Placeholder  string         `json:"placeholder,omitempty"`
}

func (s *Server) handleAPISection(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r, s.deps.Nav.Defaults().Lang)
	id := chi.URLParam(r, "id")
	if target, ok := nav.SectionTarget(s.deps.Catalog.Tree(lang), id); ok {
		id = target
	}

	page := nav.Resolve(s.deps.Catalog, lang, id)
	resp := sectionResponse{Lang: page.Lang, ID: page.ID, Found: page.Found, Placeholder: page.Placeholder}
	if !page.Found {
		writeJSON(w, http.StatusNotFound, resp)
		return
	}

	body, err := s.renderer.Body(page.Entry.Body, lang)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp.Title = page.Entry.Title
	resp.PartID = page.Entry.PartID
	resp.SectionID = page.Entry.SectionID
	if page.Part != nil {
		resp.PartTitle = page.Part.Title
	}
	if page.Section != nil {
		resp.SectionTitle = page.Section.Title
	}
	resp.Prev = refOf(page.Prev)
	resp.Next = refOf(page.Next)
	resp.Widgets = page.Entry.Body.Widgets()
	resp.HTML = string(body)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	tree := s.deps.Catalog.Tree(requestLang(r, i18n.Default))
	entries := site.BuildSearchIndex(tree, filter.Set{}, site.LiveLinks)
	if entries == nil {
		entries = []site.SearchEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type searchRequest struct {
	Query string `json:"query"`
	Lang  string `json:"lang"`
	Limit int    `json:"limit"`
}

type searchHit struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Path       string  `json:"path"`
	PartID     string  `json:"part_id"`
	SectionID  string  `json:"section_id"`
	Summary    string  `json:"summary"`
	Similarity float32 `json:"similarity"`
}

type searchResponse struct {
	Query   string      `json:"query"`
	Lang    string      `json:"lang"`
	Results []searchHit `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxSearchBody)).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		q := r.URL.Query()
		req.Query = q.Get("q")
		req.Lang = q.Get("lang")
		req.Limit, _ = strconv.Atoi(q.Get("limit"))
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeJSONError(w, http.StatusBadRequest, "query is required")
		return
	}
	if s.deps.Store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "search index not available: run `splatdocs index`")
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}
	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}
	lang := i18n.Parse(req.Lang)

	docType := vectordb.DocTypeSubsection
	langTag := lang.String()
	results, err := s.deps.Store.Search(r.Context(), req.Query, req.Limit, &vectordb.SearchFilter{Type: &docType, Lang: &langTag})
	if err != nil {
		log.Printf("server: search %q: %v", req.Query, err)
		writeJSONError(w, http.StatusInternalServerError, "search failed")
		return
	}

	resp := searchResponse{Query: req.Query, Lang: langTag, Results: make([]searchHit, 0, len(results))}
	for _, res := range results {
		md := res.Document.Metadata
		resp.Results = append(resp.Results, searchHit{
			ID:         md.SubsectionID,
			Title:      md.Title,
			Path:       site.LiveLinks.Subsection(lang, md.SubsectionID),
			PartID:     md.PartID,
			SectionID:  md.SectionID,
			Summary:    vectordb.Excerpt(res.Document.Content, 160),
			Similarity: res.Similarity,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleWidgetSVG renders a freshly mounted widget with the query applied:
// slider and choice controls by name, then the comma separated button
// names in ?actions. Follow-ups are applied at once.
func (s *Server) handleWidgetSVG(w http.ResponseWriter, r *http.Request) {
	kind := widgets.Kind(chi.URLParam(r, "kind"))
	q := r.URL.Query()
	lang := i18n.Parse(q.Get("lang"))

	// A fixed seed keeps the same URL rendering the same image.
	wd, err := widgets.New(kind, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	var actions []widgets.Action
	for _, c := range wd.Controls(lang) {
		v := q.Get(c.Name)
		if v == "" {
			continue
		}
		switch c.Type {
		case widgets.ControlSlider:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				writeJSONError(w, http.StatusBadRequest, "invalid value for "+c.Name)
				return
			}
			actions = append(actions, widgets.Action{Name: c.Name, Value: f})
		case widgets.ControlChoice:
			actions = append(actions, widgets.Action{Name: c.Name, Option: v})
		}
	}
	if list := q.Get("actions"); list != "" {
		names := strings.Split(list, ",")
		if len(names) > maxSVGActions {
			writeJSONError(w, http.StatusBadRequest, "too many actions")
			return
		}
		for _, name := range names {
			actions = append(actions, widgets.Action{Name: strings.TrimSpace(name)})
		}
	}

	for _, a := range actions {
		if err := applyNow(wd, a); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, widgets.ErrUnknownAction) {
				status = http.StatusBadRequest
			}
			writeJSONError(w, status, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	io.WriteString(w, wd.Render(lang))
}

// applyNow applies a and any chain of follow-ups it requests.
func applyNow(wd widgets.Widget, a widgets.Action) error {
	for {
		eff, err := wd.Apply(a)
		if err != nil {
			return err
		}
		if eff.Followup == nil {
			return nil
		}
		a = eff.Followup.Action
	}
}
