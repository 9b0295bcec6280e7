package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "splatdocs"
	visitorKey = "visitor"
)

// Cookies binds a visitor id to a signed, encrypted cookie.
type Cookies struct {
	store *sessions.CookieStore
}

// NewCookies creates a cookie binder. The secret derives the hash and
// encryption keys; an empty secret gets random keys, which means visitor
// ids do not survive a restart.
func NewCookies(secret string, maxAgeDays int) *Cookies {
	var hashKey, blockKey []byte
	if secret == "" {
		hashKey = securecookie.GenerateRandomKey(64)
		blockKey = securecookie.GenerateRandomKey(32)
	} else {
		h := sha256.Sum256([]byte("hash:" + secret))
		b := sha256.Sum256([]byte("block:" + secret))
		hashKey, blockKey = h[:], b[:]
	}
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeDays * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)
	return &Cookies{store: store}
}

// VisitorID returns the visitor id carried by the request, issuing a new
// one and setting the cookie when absent or unreadable. The bool reports
// whether the id was newly issued.
func (c *Cookies) VisitorID(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	// A decode error still yields a fresh session, which is what we want
	// for tampered or stale cookies.
	sess, _ := c.store.Get(r, cookieName)
	if id, ok := sess.Values[visitorKey].(string); ok && id != "" {
		return id, false, nil
	}
	id := uuid.New().String()
	sess.Values[visitorKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", false, err
	}
	return id, true, nil
}
