package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// FallbackUsername is recorded for successful logins whose email has no
// local part.
const FallbackUsername = "Admin"

// auditTimeout bounds one best-effort audit write.
const auditTimeout = 5 * time.Second

// Auditor stores login attempts. *resource.Admins implements it.
type Auditor interface {
	RecordLoginLog(ctx context.Context, l types.LoginLog) error
}

// State is one published session state. User is nil when signed out.
type State struct {
	User *types.AdminUser
}

// SignedIn reports whether the state carries a user.
func (s State) SignedIn() bool { return s.User != nil }

// Session tracks the signed-in admin.
type Session struct {
	provider Provider
	audit    Auditor
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	current *types.AdminUser
	subs    map[int]chan State
	nextSub int

	pending sync.WaitGroup
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithAuditor records login attempts through a.
func WithAuditor(a Auditor) SessionOption {
	return func(s *Session) { s.audit = a }
}

// WithLogger sets the logger used for audit failures.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for audit timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a signed-out session.
func NewSession(p Provider, opts ...SessionOption) *Session {
	s := &Session{
		provider: p,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		subs:     make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the signed-in admin.
func (s *Session) Current() (types.AdminUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return types.AdminUser{}, false
	}
	return *s.current, true
}

// Restore resumes a session for u without checking credentials, as when
// a stored session cookie is presented.
func (s *Session) Restore(u types.AdminUser) {
	s.set(&u)
}

// Login signs in with identifier and secret. Failures are returned as
// *types.AuthError. Every attempt is audited in the background with the
// client IP carried by ctx.
func (s *Session) Login(ctx context.Context, identifier, secret string) error {
	u, err := s.provider.SignInWithPassword(ctx, identifier, secret)
	if err != nil {
		s.record(ctx, types.LoginLog{
			Username: identifier,
			Status:   types.LoginFailed,
		})
		return &types.AuthError{Identifier: identifier, Err: err}
	}
	if u.Username == "" {
		u.Username = types.UsernameFromEmail(u.Email, FallbackUsername)
	}
	s.record(ctx, types.LoginLog{
		UserID:   u.ID,
		Username: types.UsernameFromEmail(u.Email, FallbackUsername),
		Status:   types.LoginSuccess,
	})
	s.set(&u)
	return nil
}

// Logout signs the current admin out. The session is cleared even when
// the provider fails; that error is returned.
func (s *Session) Logout(ctx context.Context) error {
	u, ok := s.Current()
	if !ok {
		return nil
	}
	err := s.provider.SignOut(ctx, u)
	s.set(nil)
	return err
}

// Subscribe returns a channel that receives the current state immediately
// and every later change. Only the latest undelivered state is kept. The
// returned function unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.stateLocked()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Wait blocks until background audit writes have finished.
func (s *Session) Wait() {
	s.pending.Wait()
}

func (s *Session) stateLocked() State {
	if s.current == nil {
		return State{}
	}
	u := *s.current
	return State{User: &u}
}

func (s *Session) set(u *types.AdminUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = u
	st := s.stateLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (s *Session) record(ctx context.Context, l types.LoginLog) {
	if s.audit == nil {
		return
	}
	l.IP = ClientIP(ctx)
	l.Timestamp = s.now()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
		defer cancel()
		if err := s.audit.RecordLoginLog(actx, l); err != nil {
			s.logger.Warn("recording login attempt failed",
				slog.String("username", l.Username),
				slog.String("status", string(l.Status)),
				slog.Any("error", err))
		}
	}()
}

type clientIPKey struct{}

// WithClientIP returns a context carrying the client address recorded in
// login audit entries.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the client address carried by ctx, or "" when none.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// Authorize reports ErrForbidden unless u holds one of roles. An empty
// roles list admits every admin.
func Authorize(u types.AdminUser, roles ...types.Role) error {
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return types.ErrForbidden
}
