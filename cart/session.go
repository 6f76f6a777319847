package cart

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Govind-619/storefront/models"
	"go.uber.org/zap"
)

// Storage is the durable key -> JSON store backing carts and favorites.
// Load reports false when the key does not exist.
type Storage interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Session is the state owned by one shopper: cart, active coupon, favorites
// and login state. Engine operations take the session as an explicit handle
// and serialize on it.
type Session struct {
	ID string

	mu        sync.Mutex
	userID    string
	cart      Cart
	coupon    *models.Coupon
	favorites []Favorite

	checkingOut atomic.Bool
	notices     noticeBuffer

	// refs counts the requests holding the session. Guarded by SessionManager.mu.
	refs int
}

// NewSession returns an empty session. Most callers go through SessionManager.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// SetUser records the login state for this request; "" means guest.
func (s *Session) SetUser(userID string) {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
}

func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) LoggedIn() bool {
	return s.UserID() != ""
}

// Cart returns a copy of the current lines.
func (s *Session) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

// CouponCode is the active coupon's code, or "".
func (s *Session) CouponCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return ""
	}
	return s.coupon.Code
}

// Notices drains pending user-facing notices.
func (s *Session) Notices() []Notice {
	return s.notices.drain()
}

func (s *Session) pushNotice(n Notice) {
	s.notices.push(n)
}

// SessionManager hands out one Session per id. Storage is the source of
// truth: a session stays in memory only while some caller holds it, and the
// next Get after the last Release reloads cart, coupon and favorites.
type SessionManager struct {
	storage   Storage
	keyPrefix string
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(storage Storage, keyPrefix string, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		storage:   storage,
		keyPrefix: keyPrefix,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

func (m *SessionManager) cartKey(id string) string {
	return m.keyPrefix + ":" + id
}

func (m *SessionManager) favoritesKey(id string) string {
	return m.keyPrefix + "_favorites:" + id
}

func (m *SessionManager) couponKey(id string) string {
	return m.keyPrefix + "_coupon:" + id
}

// Get returns the session for id and holds it until Release. Concurrent
// holders of the same id share one Session. A storage read failure is logged
// and that part of the session starts empty.
func (m *SessionManager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.refs++
		return s
	}

	s := m.load(ctx, id)
	s.refs = 1
	m.sessions[id] = s
	return s
}

// Release drops one hold on s. The last release evicts it from memory;
// persisted state stays.
func (m *SessionManager) Release(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.refs--
	if s.refs <= 0 && m.sessions[s.ID] == s {
		delete(m.sessions, s.ID)
	}
}

func (m *SessionManager) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) load(ctx context.Context, id string) *Session {
	s := NewSession(id)
	var lines Cart
	found, err := m.storage.Load(ctx, m.cartKey(id), &lines)
	switch {
	case err != nil:
		m.logger.Warn("Failed to load cart, starting empty", zap.String("session", id), zap.Error(err))
	case found:
		s.cart = lines.sanitize()
		m.logger.Debug("Cart recovered", zap.String("session", id), zap.Int("lines", len(s.cart)))
	}

	var code string
	if found, err := m.storage.Load(ctx, m.couponKey(id), &code); err != nil {
		m.logger.Warn("Failed to load active coupon", zap.String("session", id), zap.Error(err))
	} else if found && code != "" {
		// Revalidated against the coupon store on the next quote.
		s.coupon = &models.Coupon{Code: code}
	}

	var favs []Favorite
	if found, err := m.storage.Load(ctx, m.favoritesKey(id), &favs); err != nil {
		m.logger.Warn("Failed to load favorites", zap.String("session", id), zap.Error(err))
	} else if found {
		s.favorites = favs
	}
	return s
}

// saveCart persists lines for s. Caller holds s.mu.
func (m *SessionManager) saveCart(ctx context.Context, s *Session) error {
	return m.storage.Save(ctx, m.cartKey(s.ID), s.cart)
}

func (m *SessionManager) deleteCart(ctx context.Context, s *Session) error {
	return m.storage.Delete(ctx, m.cartKey(s.ID))
}

// saveCoupon persists the active coupon code, or deletes the entry when no
// coupon is active. Caller holds s.mu.
func (m *SessionManager) saveCoupon(ctx context.Context, s *Session) error {
	if s.coupon == nil {
		return m.storage.Delete(ctx, m.couponKey(s.ID))
	}
	return m.storage.Save(ctx, m.couponKey(s.ID), s.coupon.Code)
}

func (m *SessionManager) saveFavorites(ctx context.Context, s *Session) error {
	return m.storage.Save(ctx, m.favoritesKey(s.ID), s.favorites)
}
