package httpapi

import (
	"net/http"

	"github.com/mesh-intelligence/backoffice/internal/auth"
	"github.com/mesh-intelligence/backoffice/internal/resource"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Site settings reported with the menu.
const (
	SiteName = "Smell Admin"
	Currency = resource.DefaultCurrency
)

// Features toggles the optional panels.
type Features struct {
	Reviews    bool `mapstructure:"reviews" yaml:"reviews" json:"reviews"`
	Banners    bool `mapstructure:"banners" yaml:"banners" json:"banners"`
	LegalTexts bool `mapstructure:"legal_texts" yaml:"legal_texts" json:"legal_texts"`
}

// AllFeatures enables every optional panel.
var AllFeatures = Features{Reviews: true, Banners: true, LegalTexts: true}

// Feature names used by menu entries.
const (
	FeatureReviews    = "reviews"
	FeatureBanners    = "banners"
	FeatureLegalTexts = "legal_texts"
)

// Enabled reports whether the named feature is on. The empty name is
// always enabled.
func (f Features) Enabled(name string) bool {
	switch name {
	case "":
		return true
	case FeatureReviews:
		return f.Reviews
	case FeatureBanners:
		return f.Banners
	case FeatureLegalTexts:
		return f.LegalTexts
	}
	return false
}

// MenuItem is one navigation entry.
type MenuItem struct {
	Path    string       `json:"path"`
	Label   string       `json:"label"`
	Roles   []types.Role `json:"-"`
	Feature string       `json:"-"`
}

// Menu lists every navigation entry before filtering.
var Menu = []MenuItem{
	{Path: "/", Label: "Dashboard"},
	{Path: "/products", Label: "Ürünler"},
	{Path: "/categories", Label: "Kategoriler"},
	{Path: "/orders", Label: "Siparişler"},
	{Path: "/customers", Label: "Müşteriler"},
	{Path: "/banners", Label: "Banner & İçerik", Feature: FeatureBanners},
	{Path: "/reviews", Label: "Yorumlar", Feature: FeatureReviews},
	{Path: "/legal-texts", Label: "Yasal Metinler", Feature: FeatureLegalTexts},
	{Path: "/admin-users", Label: "Admin Kullanıcılar", Roles: []types.Role{types.RoleSuperAdmin}},
}

// VisibleMenu returns the entries u may see with features f.
func VisibleMenu(u types.AdminUser, f Features) []MenuItem {
	out := make([]MenuItem, 0, len(Menu))
	for _, it := range Menu {
		if !f.Enabled(it.Feature) {
			continue
		}
		if auth.Authorize(u, it.Roles...) != nil {
			continue
		}
		out = append(out, it)
	}
	return out
}

type menuResponse struct {
	SiteName string     `json:"site_name"`
	Currency string     `json:"currency"`
	Features Features   `json:"features"`
	Items    []MenuItem `json:"items"`
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r)
	writeJSON(w, http.StatusOK, menuResponse{
		SiteName: SiteName,
		Currency: Currency,
		Features: s.cfg.Features,
		Items:    VisibleMenu(u, s.cfg.Features),
	})
}

type dashboardResponse struct {
	Stats    types.DashboardStats    `json:"stats"`
	LowStock []types.LowStockProduct `json:"low_stock"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Dashboard.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	low, err := s.svc.Dashboard.LowStock(r.Context(), s.cfg.LowStockThreshold)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Stats: stats, LowStock: low})
}
