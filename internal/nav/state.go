package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/session"
)

// State is everything a visitor can change about navigation.
type State struct {
	Lang     i18n.Language
	Expanded Expansion
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{Lang: s.Lang, Expanded: s.Expanded.Clone()}
}

// DefaultState starts in the default language with every part matching
// patterns expanded. No patterns expands every part.
func DefaultState(partIDs, patterns []string) State {
	e := NewExpansion()
	for _, id := range partIDs {
		if filter.MatchesInclude(id, patterns) {
			e[id] = struct{}{}
		}
	}
	return State{Lang: i18n.Default, Expanded: e}
}

// Controller owns navigation state for all visitors. Reads go through
// Load; changes go through the update handles, which persist the result.
type Controller struct {
	store    session.Store
	defaults State

	// Serializes read-modify-write cycles so concurrent toggles from the
	// same visitor never lose an update.
	mu sync.Mutex
}

// NewController creates a Controller over store. New visitors start from a
// copy of defaults.
func NewController(store session.Store, defaults State) *Controller {
	if defaults.Lang == "" {
		defaults.Lang = i18n.Default
	}
	if defaults.Expanded == nil {
		defaults.Expanded = NewExpansion()
	}
	return &Controller{store: store, defaults: defaults}
}

// Defaults returns a copy of the state new visitors start from.
func (c *Controller) Defaults() State { return c.defaults.Clone() }

// Load returns the visitor's state, or the defaults for an unknown visitor.
func (c *Controller) Load(ctx context.Context, visitor string) (State, error) {
	rec, err := c.store.Get(ctx, visitor)
	if errors.Is(err, session.ErrNotFound) {
		return c.defaults.Clone(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("loading visitor %s: %w", visitor, err)
	}
	return State{Lang: i18n.Parse(rec.Lang), Expanded: NewExpansion(rec.Expanded...)}, nil
}

// ToggleLanguage flips the visitor's language.
func (c *Controller) ToggleLanguage(ctx context.Context, visitor string) (State, error) {
	return c.update(ctx, visitor, func(s *State) { s.Lang = s.Lang.Toggle() })
}

// SetLanguage selects a language explicitly.
func (c *Controller) SetLanguage(ctx context.Context, visitor string, lang i18n.Language) (State, error) {
	return c.update(ctx, visitor, func(s *State) { s.Lang = lang })
}

// TogglePart flips the expansion of one sidebar part.
func (c *Controller) TogglePart(ctx context.Context, visitor, partID string) (State, error) {
	return c.update(ctx, visitor, func(s *State) { s.Expanded.Toggle(partID) })
}

func (c *Controller) update(ctx context.Context, visitor string, fn func(*State)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.Load(ctx, visitor)
	if err != nil {
		return State{}, err
	}
	fn(&s)
	rec := &session.Record{ID: visitor, Lang: string(s.Lang), Expanded: s.Expanded.IDs()}
	if err := c.store.Save(ctx, rec); err != nil {
		return State{}, fmt.Errorf("saving visitor %s: %w", visitor, err)
	}
	return s, nil
}
