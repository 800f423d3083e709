package resource

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Admin list defaults.
const (
	DefaultAdminName = "İsimsiz"
	UnknownIP        = "Bilinmiyor"
	LoginLogLimit    = 50
)

// Admins manages back-office operators and their login audit trail.
type Admins struct{ env *env }

func mapAdmin(r types.Record) types.AdminUser {
	u := types.AdminUser{
		ID:        str(r, "id"),
		Username:  strOr(r, "username", DefaultAdminName),
		Email:     str(r, "email"),
		Role:      types.Role(str(r, "role")),
		Status:    types.ActivityStatus(str(r, "status")),
		CreatedAt: timestamp(r, "created_at"),
		LastLogin: timestampPtr(r, "last_login"),
	}
	if !u.Role.Valid() {
		u.Role = types.RoleEditor
	}
	if !u.Status.Valid() {
		u.Status = types.StatusActive
	}
	return u
}

func mapLoginLog(r types.Record) types.LoginLog {
	return types.LoginLog{
		ID:        str(r, "id"),
		UserID:    str(r, "user_id"),
		Username:  str(r, "username"),
		IP:        strOr(r, "ip_address", UnknownIP),
		Status:    types.LoginStatus(str(r, "status")),
		Timestamp: timestamp(r, "timestamp"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetAll returns every admin, newest first.
func (s *Admins) GetAll(ctx context.Context) ([]types.AdminUser, error) {
	return list(ctx, s.env, types.CollectionAdminProfiles, types.Query{
		Order: []types.OrderBy{{Field: "created_at", Desc: true}},
	}, mapAdmin)
}

// GetByID returns the admin with the given id.
func (s *Admins) GetByID(ctx context.Context, id string) (types.AdminUser, bool, error) {
	return find(ctx, s.env, types.CollectionAdminProfiles, id, mapAdmin)
}

// Create stores a new active admin. The password, when given, is stored
// as a bcrypt hash.
func (s *Admins) Create(ctx context.Context, d types.AdminUserDraft) (types.AdminUser, error) {
	if err := d.Validate(); err != nil {
		return types.AdminUser{}, writeError(types.CollectionAdminProfiles, types.OpCreate, "", err)
	}
	email := normalizeEmail(d.Email)
	rec := types.Record{
		"username": d.Username,
		"email":    email,
		"role":     string(d.Role),
		"status":   string(types.StatusActive),
	}
	if d.Username == "" {
		rec["username"] = types.UsernameFromEmail(email, DefaultAdminName)
	}
	if d.Role == "" {
		rec["role"] = string(types.RoleEditor)
	}
	if d.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), s.env.bcryptCost)
		if err != nil {
			return types.AdminUser{}, writeError(types.CollectionAdminProfiles, types.OpCreate, "", err)
		}
		rec["password_hash"] = string(hash)
	}
	out, err := insert(ctx, s.env, types.CollectionAdminProfiles, rec)
	if err != nil {
		return types.AdminUser{}, err
	}
	return mapAdmin(out), nil
}

// Update writes the fields set in p.
func (s *Admins) Update(ctx context.Context, id string, p types.AdminUserPatch) (types.AdminUser, error) {
	if p.Role != nil && !p.Role.Valid() {
		return types.AdminUser{}, writeError(types.CollectionAdminProfiles, types.OpUpdate, id, types.ErrInvalidData)
	}
	rec := types.Record{}
	setPtr(rec, "username", p.Username)
	setPtr(rec, "role", p.Role)
	if p.Email != nil {
		if !strings.Contains(*p.Email, "@") {
			return types.AdminUser{}, writeError(types.CollectionAdminProfiles, types.OpUpdate, id, types.ErrInvalidData)
		}
		rec["email"] = normalizeEmail(*p.Email)
	}
	out, err := update(ctx, s.env, types.CollectionAdminProfiles, id, rec)
	if err != nil {
		return types.AdminUser{}, err
	}
	return mapAdmin(out), nil
}

// UpdateStatus activates or deactivates the admin.
func (s *Admins) UpdateStatus(ctx context.Context, id string, status types.ActivityStatus) (types.AdminUser, error) {
	if !status.Valid() {
		return types.AdminUser{}, writeError(types.CollectionAdminProfiles, types.OpUpdate, id, types.ErrInvalidStatus)
	}
	out, err := update(ctx, s.env, types.CollectionAdminProfiles, id, types.Record{"status": string(status)})
	if err != nil {
		return types.AdminUser{}, err
	}
	return mapAdmin(out), nil
}

// SetPassword replaces the admin's password hash.
func (s *Admins) SetPassword(ctx context.Context, id, password string) error {
	if password == "" {
		return writeError(types.CollectionAdminProfiles, types.OpUpdate, id, types.ErrInvalidData)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.env.bcryptCost)
	if err != nil {
		return writeError(types.CollectionAdminProfiles, types.OpUpdate, id, err)
	}
	_, err = update(ctx, s.env, types.CollectionAdminProfiles, id, types.Record{"password_hash": string(hash)})
	return err
}

// Delete removes the admin.
func (s *Admins) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.env, types.CollectionAdminProfiles, id)
}

// Credentials returns the admin registered under email together with the
// stored password hash. An unknown email is reported as found == false.
func (s *Admins) Credentials(ctx context.Context, email string) (u types.AdminUser, hash string, found bool, err error) {
	c, err := s.env.gw.Collection(types.CollectionAdminProfiles)
	if err != nil {
		return u, "", false, fetchError(types.CollectionAdminProfiles, err)
	}
	recs, err := c.Select(ctx, types.Query{
		Filter: map[string]any{"email": normalizeEmail(email)},
		Limit:  1,
	})
	if err != nil {
		return u, "", false, fetchError(types.CollectionAdminProfiles, err)
	}
	if len(recs) == 0 {
		return u, "", false, nil
	}
	return mapAdmin(recs[0]), str(recs[0], "password_hash"), true, nil
}

// MarkLogin stamps the admin's last login time.
func (s *Admins) MarkLogin(ctx context.Context, id string) error {
	_, err := update(ctx, s.env, types.CollectionAdminProfiles, id, types.Record{"last_login": s.env.now().UTC()})
	return err
}

// GetLoginLogs returns the most recent login attempts, newest first.
func (s *Admins) GetLoginLogs(ctx context.Context) ([]types.LoginLog, error) {
	return list(ctx, s.env, types.CollectionAdminLoginLogs, types.Query{
		Order: []types.OrderBy{{Field: "timestamp", Desc: true}},
		Limit: LoginLogLimit,
	}, mapLoginLog)
}

// RecordLoginLog stores one login attempt. The timestamp defaults to now.
func (s *Admins) RecordLoginLog(ctx context.Context, l types.LoginLog) error {
	if l.Status != types.LoginSuccess && l.Status != types.LoginFailed {
		return writeError(types.CollectionAdminLoginLogs, types.OpCreate, "", types.ErrInvalidStatus)
	}
	ts := l.Timestamp
	if ts.IsZero() {
		ts = s.env.now()
	}
	_, err := insert(ctx, s.env, types.CollectionAdminLoginLogs, types.Record{
		"user_id":    ref(l.UserID),
		"username":   l.Username,
		"ip_address": l.IP,
		"status":     string(l.Status),
		"timestamp":  ts.UTC(),
	})
	return err
}
