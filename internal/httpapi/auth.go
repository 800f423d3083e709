package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mesh-intelligence/backoffice/internal/auth"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

const (
	sessionName   = "backoffice_session"
	sessionUserID = "admin_id"
)

type sessionKey struct{}

// sessionFrom returns the admin session attached by requireSession.
func sessionFrom(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return s
}

// currentUser returns the signed-in admin of the request.
func currentUser(r *http.Request) (types.AdminUser, bool) {
	sess := sessionFrom(r.Context())
	if sess == nil {
		return types.AdminUser{}, false
	}
	return sess.Current()
}

func (s *Server) newSession() *auth.Session {
	return auth.NewSession(s.provider,
		auth.WithAuditor(s.svc.Admins),
		auth.WithLogger(s.logger),
	)
}

// track keeps the server from shutting down under a pending audit write.
func (s *Server) track(sess *auth.Session) {
	s.audits.Add(1)
	go func() {
		defer s.audits.Done()
		sess.Wait()
	}()
}

// Wait blocks until background login audits have finished.
func (s *Server) Wait() {
	s.audits.Wait()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	identifier := strings.TrimSpace(req.Email)
	if !s.throttle.Allow(identifier) {
		s.writeError(w, r, &types.AuthError{Identifier: identifier, Err: types.ErrTooManyAttempts})
		return
	}

	sess := s.newSession()
	ctx := auth.WithClientIP(r.Context(), clientIP(r))
	err := sess.Login(ctx, identifier, req.Password)
	s.track(sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	u, _ := sess.Current()
	cookie, _ := s.sessions.Get(r, sessionName)
	cookie.Values[sessionUserID] = u.ID
	if err := cookie.Save(r, w); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("admin signed in", "admin", u.Username)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Logout(r.Context()); err != nil {
		s.logger.Warn("sign out failed", "err", err)
	}
	cookie, _ := s.sessions.Get(r, sessionName)
	delete(cookie.Values, sessionUserID)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r)
	writeJSON(w, http.StatusOK, u)
}

// requireSession restores the admin named by the session cookie. Deleted
// and deactivated accounts are rejected.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, _ := s.sessions.Get(r, sessionName)
		id, _ := cookie.Values[sessionUserID].(string)
		if id == "" {
			s.writeError(w, r, types.ErrNotAuthenticated)
			return
		}
		u, found, err := s.svc.Admins.GetByID(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if !found || u.Status != types.StatusActive {
			s.writeError(w, r, types.ErrNotAuthenticated)
			return
		}
		sess := s.newSession()
		sess.Restore(u)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

// requireRole admits only admins holding one of roles.
func (s *Server) requireRole(roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := currentUser(r)
			if err := auth.Authorize(u, roles...); err != nil {
				s.writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// actor names the signed-in admin in order history entries.
func actor(r *http.Request) string {
	u, ok := currentUser(r)
	if !ok {
		return ""
	}
	return u.Username
}
