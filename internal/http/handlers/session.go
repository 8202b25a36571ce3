package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"sucree/internal/services"
)

const sidCookie = "sid"

type session struct {
	front *services.Storefront
	seen  time.Time
}

// Sessions keeps one Storefront per visitor, keyed by the sid cookie.
// Nothing is persisted; a restart starts every visitor over.
type Sessions struct {
	mu    sync.Mutex
	auth  services.Authenticator
	ttl   time.Duration
	items map[string]*session
}

func NewSessions(auth services.Authenticator, ttl time.Duration) *Sessions {
	return &Sessions{auth: auth, ttl: ttl, items: map[string]*session{}}
}

// Middleware attaches the visitor's storefront when the sid cookie names a
// live session. Sessions are only created by acquire, so read-only traffic
// leaves nothing behind.
func (s *Sessions) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("sessions", s)
		sid := c.Cookies(sidCookie)
		if front, ok := s.lookup(sid, time.Now()); ok {
			// c.Cookies aliases the request buffer.
			sid = utils.CopyString(sid)
			c.Locals("sid", sid)
			c.Locals("storefront", front)
		}
		return c.Next()
	}
}

func (s *Sessions) lookup(sid string, now time.Time) (*services.Storefront, bool) {
	if sid == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[sid]
	if !ok || s.expired(it, now) {
		return nil, false
	}
	it.seen = now
	return it.front, true
}

// create registers a fresh storefront under a new sid.
func (s *Sessions) create(now time.Time) (string, *services.Storefront) {
	sid := uuid.NewString()
	front := services.NewStorefront(s.auth)
	s.mu.Lock()
	s.items[sid] = &session{front: front, seen: now}
	s.mu.Unlock()
	return sid, front
}

func (s *Sessions) expired(it *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(it.seen) > s.ttl
}

// Sweep drops sessions idle for longer than the ttl and reports how many went.
func (s *Sessions) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sid, it := range s.items {
		if s.expired(it, now) {
			delete(s.items, sid)
			n++
		}
	}
	return n
}

// Each calls fn for every live storefront.
func (s *Sessions) Each(fn func(*services.Storefront)) {
	s.mu.Lock()
	fronts := make([]*services.Storefront, 0, len(s.items))
	for _, it := range s.items {
		fronts = append(fronts, it.front)
	}
	s.mu.Unlock()
	for _, f := range fronts {
		fn(f)
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// storefront returns the visitor's storefront for reading. Without a session
// it is a blank, unregistered one.
func storefront(c *fiber.Ctx) *services.Storefront {
	if f, ok := c.Locals("storefront").(*services.Storefront); ok {
		return f
	}
	return services.NewStorefront(nil)
}

// acquire returns the visitor's storefront for writing, starting a session
// and issuing the sid cookie when there is none yet.
func acquire(c *fiber.Ctx) *services.Storefront {
	if f, ok := c.Locals("storefront").(*services.Storefront); ok {
		return f
	}
	s, ok := c.Locals("sessions").(*Sessions)
	if !ok {
		return services.NewStorefront(nil)
	}
	sid, front := s.create(time.Now())
	c.Cookie(&fiber.Cookie{Name: sidCookie, Value: sid, Path: "/", HTTPOnly: true, SameSite: fiber.CookieSameSiteLaxMode})
	c.Locals("sid", sid)
	c.Locals("storefront", front)
	return front
}
