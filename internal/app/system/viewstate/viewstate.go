// Package viewstate keeps a visitor's dashboard preferences (page size and
// row selection) in a signed cookie session.
package viewstate

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	// DefaultSessionName is the cookie name used when none is configured.
	DefaultSessionName = "staffboard-view"

	// MaxSelectionBytes bounds the encoded selection so the signed cookie
	// stays under the 4096-byte browser limit.
	MaxSelectionBytes = 2048

	pageSizeKey = "page_size"
	selectedKey = "selected"
	invertedKey = "selected_inverted"
)

// ErrSelectionTooLarge is returned by Save when the selection does not fit
// in the cookie. Nothing is written in that case.
var ErrSelectionTooLarge = errors.New("viewstate: selection too large for cookie")

// State is what a visitor's session remembers between requests.
//
// When Inverted is set, Selected lists the rows that are NOT selected; the
// caller owns the row universe and expands it.
type State struct {
	PageSize int
	Selected []string
	Inverted bool
}

// Config configures the cookie store.
type Config struct {
	// Key signs the cookie. When empty a random key is generated, so view
	// state does not survive a restart.
	Key    string
	Name   string
	Domain string
	Secure bool
	// MaxAge in seconds; 0 keeps the cookie for the browser session.
	MaxAge int
}

// Manager loads and saves State.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// New builds a Manager over a gorilla cookie store.
func New(cfg Config, logger *zap.Logger) *Manager {
	key := []byte(cfg.Key)
	switch {
	case len(key) == 0:
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("session key not set; using a random key, view state resets on restart")
	case len(key) < 32:
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	name := cfg.Name
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   cfg.Domain,
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("view state store initialized",
		zap.String("cookie", name),
		zap.Bool("secure", cfg.Secure),
		zap.String("domain", cfg.Domain))

	return &Manager{store: store, name: name, logger: logger}
}

// Name returns the cookie name.
func (m *Manager) Name() string { return m.name }

// Load returns the visitor's state. A missing or tampered cookie yields the
// zero State.
func (m *Manager) Load(r *http.Request) State {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.logger.Debug("view state cookie rejected", zap.Error(err))
		return State{}
	}

	var st State
	if n, ok := sess.Values[pageSizeKey].(int); ok {
		st.PageSize = n
	}
	if s, ok := sess.Values[selectedKey].(string); ok {
		st.Selected = DecodeIDs(s)
	}
	if inv, ok := sess.Values[invertedKey].(bool); ok {
		st.Inverted = inv
	}
	return st
}

// Save writes st to the response cookie. It returns ErrSelectionTooLarge,
// without touching the response, when the encoded selection exceeds
// MaxSelectionBytes.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, st State) error {
	enc := EncodeIDs(st.Selected)
	if len(enc) > MaxSelectionBytes {
		return ErrSelectionTooLarge
	}

	// Get never returns a nil session, even when the old cookie is invalid.
	sess, _ := m.store.Get(r, m.name)
	sess.Values[pageSizeKey] = st.PageSize
	sess.Values[selectedKey] = enc
	sess.Values[invertedKey] = st.Inverted
	return sess.Save(r, w)
}

// EncodeIDs joins ids with commas, collapsing runs of three or more
// consecutive integers into "lo-hi".
func EncodeIDs(ids []string) string {
	var b strings.Builder
	for i := 0; i < len(ids); {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		lo, ok := parseID(ids[i])
		if !ok {
			b.WriteString(ids[i])
			i++
			continue
		}
		j := i + 1
		for j < len(ids) {
			n, ok := parseID(ids[j])
			if !ok || n != lo+(j-i) {
				break
			}
			j++
		}
		if j-i >= 3 {
			b.WriteString(ids[i])
			b.WriteByte('-')
			b.WriteString(ids[j-1])
			i = j
			continue
		}
		b.WriteString(ids[i])
		i++
	}
	return b.String()
}

// DecodeIDs reverses EncodeIDs. An empty string yields nil.
func DecodeIDs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		loS, hiS, found := strings.Cut(part, "-")
		if found {
			lo, okLo := parseID(loS)
			hi, okHi := parseID(hiS)
			if okLo && okHi && lo <= hi {
				for n := lo; n <= hi; n++ {
					out = append(out, strconv.Itoa(n))
				}
				continue
			}
		}
		out = append(out, part)
	}
	return out
}

// parseID accepts canonical non-negative integers only, so "007" stays text.
func parseID(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}
