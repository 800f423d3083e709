package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"github.com/mesh-intelligence/backoffice/internal/resource"
	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// cliActor names the CLI in order history entries.
const cliActor = "cli"

type listOptions struct {
	search  string
	page    int
	perPage int
}

type pageInfo struct {
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

type listResult struct {
	Items      any      `json:"items"`
	Pagination pageInfo `json:"pagination"`

	rows []pretty.Row
}

type (
	listFunc   func(context.Context, *resource.Services, listOptions) (listResult, error)
	getFunc    func(context.Context, *resource.Services, string) (any, bool, error)
	removeFunc func(ctx context.Context, svc *resource.Services, id string, o listOptions) (listResult, error)
	statusFunc func(ctx context.Context, svc *resource.Services, id, value string, o listOptions) (any, listResult, error)
)

// resourceDef binds a CLI resource name to its service. Nil operations are
// not offered for the resource.
type resourceDef struct {
	header pretty.Row
	list   listFunc
	get    getFunc
	del    removeFunc
	status statusFunc
}

// view describes how one entity type is listed and matched by id.
type view[T any] struct {
	fetch func(*resource.Services) table.FetchFunc[T]
	id    func(T) string
	row   func(T) pretty.Row
	keys  []table.SearchKey[T]
}

// open loads the full collection into a controller.
func (v view[T]) open(ctx context.Context, svc *resource.Services, o listOptions) (*table.Controller[T], error) {
	c := table.Open(ctx, v.fetch(svc), table.WithItemsPerPage[T](o.perPage), table.WithSearchKey(v.keys...))
	select {
	case <-c.Ready():
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if msg := c.Err(); msg != "" {
		return nil, errors.New(msg)
	}
	c.SetSearchQuery(o.search)
	c.GoToPage(o.page)
	return c, nil
}

func (v view[T]) result(c *table.Controller[T]) listResult {
	p := c.Page()
	rows := make([]pretty.Row, len(p.Items))
	for i, it := range p.Items {
		rows[i] = v.row(it)
	}
	return listResult{
		Items: p.Items,
		Pagination: pageInfo{
			TotalItems:   p.TotalItems,
			TotalPages:   p.TotalPages,
			CurrentPage:  p.CurrentPage,
			ItemsPerPage: p.ItemsPerPage,
		},
		rows: rows,
	}
}

func (v view[T]) match(id string) table.Predicate[T] {
	return func(item T) bool { return v.id(item) == id }
}

func (v view[T]) list() listFunc {
	return func(ctx context.Context, svc *resource.Services, o listOptions) (listResult, error) {
		c, err := v.open(ctx, svc, o)
		if err != nil {
			return listResult{}, err
		}
		return v.result(c), nil
	}
}

// remove deletes through the service and reflects the delete on the loaded
// page without reading the collection again.
func (v view[T]) remove(del func(*resource.Services) func(context.Context, string) error) removeFunc {
	return func(ctx context.Context, svc *resource.Services, id string, o listOptions) (listResult, error) {
		c, err := v.open(ctx, svc, o)
		if err != nil {
			return listResult{}, err
		}
		if _, err := c.Remove(ctx, v.match(id), func(ctx context.Context) error {
			return del(svc)(ctx, id)
		}); err != nil {
			return listResult{}, err
		}
		return v.result(c), nil
	}
}

// setStatus writes a status through the service and replaces the item on
// the loaded page with the entity the service returned.
func (v view[T]) setStatus(set func(ctx context.Context, svc *resource.Services, id, value string) (T, error)) statusFunc {
	return func(ctx context.Context, svc *resource.Services, id, value string, o listOptions) (any, listResult, error) {
		c, err := v.open(ctx, svc, o)
		if err != nil {
			return nil, listResult{}, err
		}
		got, err := c.Apply(ctx, v.match(id), func(ctx context.Context) (T, error) {
			return set(ctx, svc, id, value)
		})
		if err != nil {
			return nil, listResult{}, err
		}
		return got, v.result(c), nil
	}
}

// getOf adapts a typed lookup.
func getOf[T any](get func(*resource.Services) func(context.Context, string) (T, bool, error)) getFunc {
	return func(ctx context.Context, svc *resource.Services, id string) (any, bool, error) {
		return get(svc)(ctx, id)
	}
}

// activeFlag parses the active/inactive status of products and categories.
func activeFlag(value string) (bool, error) {
	switch types.ActivityStatus(value) {
	case types.StatusActive:
		return true, nil
	case types.StatusInactive:
		return false, nil
	}
	return false, usageErrorf("%w: %q (want active or inactive)", types.ErrInvalidStatus, value)
}

func money(v float64) string { return fmt.Sprintf("%.2f %s", v, resource.DefaultCurrency) }

func date(t time.Time) string { return t.Format("2006-01-02 15:04") }

var (
	products = view[types.Product]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Product] { return s.Products.GetAll },
		id:    func(p types.Product) string { return p.ID },
		row: func(p types.Product) pretty.Row {
			return pretty.Row{p.ID, p.Name, p.SKU, p.CategoryName, money(p.Price), p.Stock, p.IsActive}
		},
		keys: []table.SearchKey[types.Product]{
			table.StringField(func(p types.Product) string { return p.Name }),
			table.StringField(func(p types.Product) string { return p.SKU }),
		},
	}
	categories = view[types.Category]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Category] { return s.Categories.GetAll },
		id:    func(c types.Category) string { return c.ID },
		row: func(c types.Category) pretty.Row {
			return pretty.Row{c.ID, c.Name, c.Order, c.ProductCount, c.IsActive}
		},
		keys: []table.SearchKey[types.Category]{table.JSONField[types.Category]("name")},
	}
	orders = view[types.Order]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Order] { return s.Orders.GetAll },
		id:    func(o types.Order) string { return o.ID },
		row: func(o types.Order) pretty.Row {
			return pretty.Row{o.ID, o.OrderNumber, o.CustomerName, money(o.Total), o.Status.Label(), date(o.OrderDate)}
		},
		keys: []table.SearchKey[types.Order]{
			table.JSONField[types.Order]("orderNumber"),
			table.JSONField[types.Order]("customerName"),
		},
	}
	customers = view[types.Customer]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Customer] { return s.Customers.GetAll },
		id:    func(c types.Customer) string { return c.ID },
		row: func(c types.Customer) pretty.Row {
			return pretty.Row{c.ID, c.FullName(), c.Email, c.Phone, c.Status}
		},
		keys: []table.SearchKey[types.Customer]{
			table.StringField(types.Customer.FullName),
			table.JSONField[types.Customer]("email"),
		},
	}
	reviews = view[types.Review]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Review] { return s.Reviews.GetAll },
		id:    func(r types.Review) string { return r.ID },
		row: func(r types.Review) pretty.Row {
			return pretty.Row{r.ID, r.ProductName, r.CustomerName, r.Rating, r.Status}
		},
		keys: []table.SearchKey[types.Review]{
			table.JSONField[types.Review]("productName"),
			table.JSONField[types.Review]("customerName"),
			table.JSONField[types.Review]("comment"),
		},
	}
	banners = view[types.Banner]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Banner] { return s.Banners.GetAll },
		id:    func(b types.Banner) string { return b.ID },
		row:   func(b types.Banner) pretty.Row { return pretty.Row{b.ID, b.Title, b.Order, b.IsActive} },
		keys:  []table.SearchKey[types.Banner]{table.JSONField[types.Banner]("title")},
	}
	showcases = view[types.Showcase]{
		fetch: func(s *resource.Services) table.FetchFunc[types.Showcase] { return s.Showcases.GetAll },
		id:    func(sc types.Showcase) string { return sc.ID },
		row: func(sc types.Showcase) pretty.Row {
			return pretty.Row{sc.ID, sc.Type, sc.Title, len(sc.ProductIDs), sc.Order, sc.IsActive}
		},
		keys: []table.SearchKey[types.Showcase]{table.JSONField[types.Showcase]("title")},
	}
	legalTexts = view[types.LegalText]{
		fetch: func(s *resource.Services) table.FetchFunc[types.LegalText] { return s.LegalTexts.GetAll },
		id:    func(lt types.LegalText) string { return lt.ID },
		row: func(lt types.LegalText) pretty.Row {
			return pretty.Row{lt.ID, lt.Type, lt.Title, lt.IsActive, date(lt.UpdatedAt)}
		},
		keys: []table.SearchKey[types.LegalText]{table.JSONField[types.LegalText]("title")},
	}
	admins = view[types.AdminUser]{
		fetch: func(s *resource.Services) table.FetchFunc[types.AdminUser] { return s.Admins.GetAll },
		id:    func(u types.AdminUser) string { return u.ID },
		row:   func(u types.AdminUser) pretty.Row { return pretty.Row{u.ID, u.Username, u.Email, u.Role, u.Status} },
		keys: []table.SearchKey[types.AdminUser]{
			table.JSONField[types.AdminUser]("username"),
			table.JSONField[types.AdminUser]("email"),
		},
	}
	loginLogs = view[types.LoginLog]{
		fetch: func(s *resource.Services) table.FetchFunc[types.LoginLog] { return s.Admins.GetLoginLogs },
		id:    func(l types.LoginLog) string { return l.ID },
		row:   func(l types.LoginLog) pretty.Row { return pretty.Row{date(l.Timestamp), l.Username, l.IP, l.Status} },
		keys: []table.SearchKey[types.LoginLog]{
			table.JSONField[types.LoginLog]("username"),
			table.JSONField[types.LoginLog]("ip"),
		},
	}
)

var resources = map[string]resourceDef{
	"products": {
		header: pretty.Row{"id", "name", "sku", "category", "price", "stock", "active"},
		list:   products.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Product, bool, error) { return s.Products.GetByID }),
		del:    products.remove(func(s *resource.Services) func(context.Context, string) error { return s.Products.Delete }),
		status: products.setStatus(func(ctx context.Context, s *resource.Services, id, value string) (types.Product, error) {
			active, err := activeFlag(value)
			if err != nil {
				return types.Product{}, err
			}
			return s.Products.SetActive(ctx, id, active)
		}),
	},
	"categories": {
		header: pretty.Row{"id", "name", "order", "products", "active"},
		list:   categories.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Category, bool, error) { return s.Categories.GetByID }),
		del:    categories.remove(func(s *resource.Services) func(context.Context, string) error { return s.Categories.Delete }),
		status: categories.setStatus(func(ctx context.Context, s *resource.Services, id, value string) (types.Category, error) {
			active, err := activeFlag(value)
			if err != nil {
				return types.Category{}, err
			}
			return s.Categories.SetActive(ctx, id, active)
		}),
	},
	"orders": {
		header: pretty.Row{"id", "number", "customer", "total", "status", "date"},
		list:   orders.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Order, bool, error) { return s.Orders.GetByID }),
		status: orders.setStatus(func(ctx context.Context, s *resource.Services, id, value string) (types.Order, error) {
			return s.Orders.UpdateStatus(ctx, id, types.OrderStatus(value), cliActor)
		}),
	},
	"customers": {
		header: pretty.Row{"id", "name", "email", "phone", "status"},
		list:   customers.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Customer, bool, error) { return s.Customers.GetByID }),
		del:    customers.remove(func(s *resource.Services) func(context.Context, string) error { return s.Customers.Delete }),
		status: customers.setStatus(func(ctx context.Context, s *resource.Services, id, value string) (types.Customer, error) {
			return s.Customers.UpdateStatus(ctx, id, types.ActivityStatus(value))
		}),
	},
	"reviews": {
		header: pretty.Row{"id", "product", "customer", "rating", "status"},
		list:   reviews.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Review, bool, error) { return s.Reviews.GetByID }),
		del:    reviews.remove(func(s *resource.Services) func(context.Context, string) error { return s.Reviews.Delete }),
		status: reviews.setStatus(func(ctx context.Context, s *resource.Services, id, value string) (types.Review, error) {
			return s.Reviews.UpdateStatus(ctx, id, types.ReviewStatus(value))
		}),
	},
	"banners": {
		header: pretty.Row{"id", "title", "order", "active"},
		list:   banners.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Banner, bool, error) { return s.Banners.GetByID }),
		del:    banners.remove(func(s *resource.Services) func(context.Context, string) error { return s.Banners.Delete }),
	},
	"showcases": {
		header: pretty.Row{"id", "type", "title", "products", "order", "active"},
		list:   showcases.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.Showcase, bool, error) { return s.Showcases.GetByID }),
	},
	"legal-texts": {
		header: pretty.Row{"id", "type", "title", "active", "updated"},
		list:   legalTexts.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.LegalText, bool, error) { return s.LegalTexts.GetByID }),
	},
	"admin-users": {
		header: pretty.Row{"id", "username", "email", "role", "status"},
		list:   admins.list(),
		get:    getOf(func(s *resource.Services) func(context.Context, string) (types.AdminUser, bool, error) { return s.Admins.GetByID }),
		del:    admins.remove(func(s *resource.Services) func(context.Context, string) error { return s.Admins.Delete }),
		status: admins.setStatus(func(ctx context.Context, s *resource.Services, id, value string) (types.AdminUser, error) {
			return s.Admins.UpdateStatus(ctx, id, types.ActivityStatus(value))
		}),
	},
	"login-logs": {
		header: pretty.Row{"time", "username", "ip", "status"},
		list:   loginLogs.list(),
	},
}

func resourceNames() string {
	names := make([]string, 0, len(resources))
	for n := range resources {
		names = append(names, n)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// lookupResource returns the named resource, or a user error listing the
// valid names.
func lookupResource(name string) (resourceDef, error) {
	def, ok := resources[name]
	if !ok {
		return resourceDef{}, usageErrorf("unknown resource %q (valid: %s)", name, resourceNames())
	}
	return def, nil
}
