package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/backoffice/internal/media"
	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func (s *Server) adminRoutes(r chi.Router) {
	r.Use(s.requireRole(types.RoleSuperAdmin))
	r.Get("/", s.listAdmins)
	r.Post("/", s.createAdmin)
	r.Get("/login-logs", s.listLoginLogs)
	r.Get("/{id}", s.getAdmin)
	r.Patch("/{id}", s.updateAdmin)
	r.Put("/{id}/status", s.updateAdminStatus)
	r.Put("/{id}/password", s.setAdminPassword)
	r.Delete("/{id}", s.deleteAdmin)
}

func (s *Server) listAdmins(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.svc.Admins.GetAll,
		table.WithSearchKey(
			table.JSONField[types.AdminUser]("username"),
			table.JSONField[types.AdminUser]("email"),
		))
}

func (s *Server) listLoginLogs(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.svc.Admins.GetLoginLogs,
		table.WithSearchKey(
			table.JSONField[types.LoginLog]("username"),
			table.JSONField[types.LoginLog]("ip"),
		))
}

func (s *Server) getAdmin(w http.ResponseWriter, r *http.Request) {
	u, found, err := s.svc.Admins.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, u, found, err)
}

func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	var d types.AdminUserDraft
	if err := decode(w, r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.svc.Admins.Create(r.Context(), d)
	writeResult(s, w, r, http.StatusCreated, u, err)
}

func (s *Server) updateAdmin(w http.ResponseWriter, r *http.Request) {
	var patch types.AdminUserPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.svc.Admins.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, u, err)
}

func (s *Server) updateAdminStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.notSelf(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.svc.Admins.UpdateStatus(r.Context(), idParam(r), types.ActivityStatus(req.Status))
	writeResult(s, w, r, http.StatusOK, u, err)
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (s *Server) setAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeNoContent(w, r, s.svc.Admins.SetPassword(r.Context(), idParam(r), req.Password))
}

func (s *Server) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.notSelf(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeNoContent(w, r, s.svc.Admins.Delete(r.Context(), idParam(r)))
}

// notSelf keeps an admin from deactivating or deleting their own account.
func (s *Server) notSelf(r *http.Request) error {
	if u, ok := currentUser(r); ok && u.ID == idParam(r) {
		return types.ErrForbidden
	}
	return nil
}

// handleUpload stores the multipart "file" field as an image.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageSize+1<<20)
	f, _, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, r, media.ErrTooLarge)
			return
		}
		s.writeError(w, r, errBadRequest)
		return
	}
	defer f.Close()

	info, err := media.Upload(r.Context(), s.cfg.Media, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("image uploaded", "key", info.Key, "size", info.Size)
	writeJSON(w, http.StatusCreated, info)
}
