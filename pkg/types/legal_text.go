package types

import "time"

// LegalTextType identifies a legal document.
type LegalTextType string

// Legal text types.
const (
	LegalPrivacyPolicy   LegalTextType = "privacy_policy"
	LegalKVKK            LegalTextType = "kvkk"
	LegalCookiePolicy    LegalTextType = "cookie_policy"
	LegalDistanceSales   LegalTextType = "distance_sales"
	LegalPreliminaryInfo LegalTextType = "preliminary_info"
	LegalTermsOfUse      LegalTextType = "terms_of_use"
	LegalReturnPolicy    LegalTextType = "return_policy"
)

// LegalTextTypes lists every legal text type.
var LegalTextTypes = []LegalTextType{
	LegalPrivacyPolicy,
	LegalKVKK,
	LegalCookiePolicy,
	LegalDistanceSales,
	LegalPreliminaryInfo,
	LegalTermsOfUse,
	LegalReturnPolicy,
}

// LegalText is a versionless legal document shown on the storefront.
type LegalText struct {
	ID        string        `json:"id"`
	Type      LegalTextType `json:"type"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	IsActive  bool          `json:"isActive"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// LegalTextPatch carries a partial legal text update; nil fields are not written.
type LegalTextPatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// Label returns the Turkish display title of the legal text type.
func (t LegalTextType) Label() string {
	switch t {
	case LegalPrivacyPolicy:
		return "Gizlilik Politikası"
	case LegalKVKK:
		return "KVKK Aydınlatma Metni"
	case LegalCookiePolicy:
		return "Çerez Politikası"
	case LegalDistanceSales:
		return "Mesafeli Satış Sözleşmesi"
	case LegalPreliminaryInfo:
		return "Ön Bilgilendirme Formu"
	case LegalTermsOfUse:
		return "Kullanım Koşulları"
	case LegalReturnPolicy:
		return "İade ve Değişim Politikası"
	default:
		return string(t)
	}
}
