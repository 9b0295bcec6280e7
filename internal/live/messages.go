package live

import (
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

// Client message types.
const (
	TypeMount   = "mount"
	TypeUnmount = "unmount"
	TypeAction  = "action"
	TypeLang    = "lang"
)

// Server message types.
const (
	TypeMounted   = "mounted"
	TypeUnmounted = "unmounted"
	TypeFrame     = "frame"
	TypeError     = "error"
)

// Request is a message from the browser.
type Request struct {
	Type   string        `json:"type"`
	Ref    string        `json:"ref,omitempty"`
	Kind   widgets.Kind  `json:"kind,omitempty"`
	Lang   i18n.Language `json:"lang,omitempty"`
	Widget string        `json:"widget,omitempty"`
	Action string        `json:"action,omitempty"`
	Value  float64       `json:"value,omitempty"`
	Option string        `json:"option,omitempty"`
}

// Response is a message to the browser.
type Response struct {
	Type     string            `json:"type"`
	Ref      string            `json:"ref,omitempty"`
	Widget   string            `json:"widget,omitempty"`
	Kind     widgets.Kind      `json:"kind,omitempty"`
	Title    string            `json:"title,omitempty"`
	Controls []widgets.Control `json:"controls,omitempty"`
	SVG      string            `json:"svg,omitempty"`
	State    any               `json:"state,omitempty"`
	Message  string            `json:"message,omitempty"`
}
