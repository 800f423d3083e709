package collection

import (
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Kind is the storage kind of a column.
type Kind int

// Column kinds.
const (
	KindText Kind = iota
	KindInt
	KindReal
	KindBool
	KindJSON
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	case KindJSON:
		return "json"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Column describes one column of a collection.
type Column struct {
	Name string
	Kind Kind
}

// KeyColumn is the primary key of every collection.
const KeyColumn = "id"

// Schema describes the columns of one collection. Created and Updated name
// the timestamp columns stamped by Insert and Update; either may be empty.
type Schema struct {
	Name    string
	Columns []Column
	Created string
	Updated string
}

// Column returns the named column.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

func textCol(name string) Column { return Column{name, KindText} }
func intCol(name string) Column  { return Column{name, KindInt} }
func realCol(name string) Column { return Column{name, KindReal} }
func boolCol(name string) Column { return Column{name, KindBool} }
func jsonCol(name string) Column { return Column{name, KindJSON} }
func timeCol(name string) Column { return Column{name, KindTime} }

func withTimestamps(name string, cols ...Column) Schema {
	cols = append([]Column{textCol(KeyColumn)}, cols...)
	cols = append(cols, timeCol("created_at"), timeCol("updated_at"))
	return Schema{Name: name, Columns: cols, Created: "created_at", Updated: "updated_at"}
}

// Schemas returns the schemas of the standard collections. The migrations
// in internal/migrations create matching tables.
func Schemas() []Schema {
	return []Schema{
		withTimestamps(types.CollectionCategories,
			textCol("name"), textCol("description"), textCol("image"), textCol("parent_id"),
			intCol("order"), boolCol("is_active"),
			textCol("meta_title"), textCol("meta_description"), textCol("slug"),
		),
		withTimestamps(types.CollectionProducts,
			textCol("name"), textCol("description"), textCol("short_description"),
			realCol("price"), realCol("discounted_price"), textCol("currency"), realCol("vat_rate"),
			intCol("stock"), textCol("sku"), textCol("barcode"), textCol("category_id"),
			jsonCol("images"), jsonCol("variants"),
			boolCol("is_featured"), boolCol("is_active"),
			textCol("meta_title"), textCol("meta_description"), textCol("slug"),
			jsonCol("scent_notes"), textCol("fragrance_family"), textCol("concentration"), textCol("gender"),
			realCol("volume"), textCol("batch_code"), textCol("production_date"), textCol("expiration_date"),
		),
		withTimestamps(types.CollectionCustomers,
			textCol("first_name"), textCol("last_name"), textCol("email"), textCol("phone"),
			textCol("status"), jsonCol("addresses"),
			intCol("order_count"), realCol("total_spent"), textCol("notes"),
			timeCol("last_order_date"),
		),
		withTimestamps(types.CollectionOrders,
			textCol("order_number"), textCol("customer_id"), textCol("customer_name"),
			textCol("customer_email"), textCol("customer_phone"),
			jsonCol("shipping_address"), jsonCol("billing_address"),
			realCol("subtotal"), realCol("vat_amount"), realCol("shipping_cost"), realCol("total_amount"),
			textCol("status"), textCol("payment_status"), textCol("payment_method"),
			timeCol("payment_date"), timeCol("order_date"),
			textCol("shipping_company"), textCol("tracking_number"), textCol("tracking_url"),
			textCol("notes"), jsonCol("history"),
		),
		withTimestamps(types.CollectionOrderItems,
			textCol("order_id"), textCol("product_id"), textCol("product_name"), textCol("product_image"),
			intCol("quantity"), realCol("unit_price"), realCol("total_price"), textCol("variant"),
		),
		withTimestamps(types.CollectionReviews,
			textCol("product_id"), textCol("customer_id"), intCol("rating"),
			textCol("comment"), textCol("status"),
		),
		withTimestamps(types.CollectionBanners,
			textCol("title"), textCol("subtitle"), textCol("image"), textCol("link"),
			intCol("order"), boolCol("is_active"),
		),
		withTimestamps(types.CollectionShowcases,
			textCol("type"), textCol("title"), textCol("content"), jsonCol("product_ids"),
			boolCol("is_active"), intCol("order"),
		),
		withTimestamps(types.CollectionLegalTexts,
			textCol("type"), textCol("title"), textCol("content"), boolCol("is_active"),
		),
		withTimestamps(types.CollectionAdminProfiles,
			textCol("username"), textCol("email"), textCol("role"), textCol("status"),
			textCol("password_hash"), timeCol("last_login"),
		),
		{
			Name: types.CollectionAdminLoginLogs,
			Columns: []Column{
				textCol(KeyColumn), textCol("user_id"), textCol("username"),
				textCol("ip_address"), textCol("status"), timeCol("timestamp"),
			},
			Created: "timestamp",
		},
	}
}
