package types

// Standard collection names for Gateway.Collection.
const (
	CollectionProducts       = "products"
	CollectionCategories     = "categories"
	CollectionOrders         = "orders"
	CollectionOrderItems     = "order_items"
	CollectionCustomers      = "customers"
	CollectionReviews        = "reviews"
	CollectionBanners        = "banners"
	CollectionShowcases      = "showcases"
	CollectionLegalTexts     = "legal_texts"
	CollectionAdminProfiles  = "admin_profiles"
	CollectionAdminLoginLogs = "admin_login_logs"
)

// StandardCollectionNames lists all standard collection names for enumeration.
var StandardCollectionNames = []string{
	CollectionProducts,
	CollectionCategories,
	CollectionOrders,
	CollectionOrderItems,
	CollectionCustomers,
	CollectionReviews,
	CollectionBanners,
	CollectionShowcases,
	CollectionLegalTexts,
	CollectionAdminProfiles,
	CollectionAdminLoginLogs,
}
