package resource

import (
	"context"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Customers manages storefront customers.
type Customers struct{ env *env }

func mapCustomer(r types.Record) types.Customer {
	c := types.Customer{
		ID:            str(r, "id"),
		FirstName:     str(r, "first_name"),
		LastName:      str(r, "last_name"),
		Email:         str(r, "email"),
		Phone:         str(r, "phone"),
		Status:        types.ActivityStatus(str(r, "status")),
		Addresses:     []types.Address{},
		OrderCount:    integer(r, "order_count"),
		TotalSpent:    number(r, "total_spent"),
		Notes:         str(r, "notes"),
		CreatedAt:     timestamp(r, "created_at"),
		LastOrderDate: timestampPtr(r, "last_order_date"),
	}
	if !c.Status.Valid() {
		c.Status = types.StatusActive
	}
	decodeJSON(r, "addresses", &c.Addresses)
	if c.Addresses == nil {
		c.Addresses = []types.Address{}
	}
	return c
}

// GetAll returns every customer, newest first.
func (s *Customers) GetAll(ctx context.Context) ([]types.Customer, error) {
	return list(ctx, s.env, types.CollectionCustomers, types.Query{
		Order: []types.OrderBy{{Field: "created_at", Desc: true}},
	}, mapCustomer)
}

// GetByID returns the customer with the given id.
func (s *Customers) GetByID(ctx context.Context, id string) (types.Customer, bool, error) {
	return find(ctx, s.env, types.CollectionCustomers, id, mapCustomer)
}

// Update writes the fields set in p.
func (s *Customers) Update(ctx context.Context, id string, p types.CustomerPatch) (types.Customer, error) {
	if p.Status != nil && !p.Status.Valid() {
		return types.Customer{}, writeError(types.CollectionCustomers, types.OpUpdate, id, types.ErrInvalidStatus)
	}
	rec := types.Record{}
	setPtr(rec, "first_name", p.FirstName)
	setPtr(rec, "last_name", p.LastName)
	setPtr(rec, "email", p.Email)
	setPtr(rec, "phone", p.Phone)
	setPtr(rec, "status", p.Status)
	setPtr(rec, "notes", p.Notes)
	out, err := update(ctx, s.env, types.CollectionCustomers, id, rec)
	if err != nil {
		return types.Customer{}, err
	}
	return mapCustomer(out), nil
}

// UpdateStatus activates or deactivates the customer.
func (s *Customers) UpdateStatus(ctx context.Context, id string, status types.ActivityStatus) (types.Customer, error) {
	return s.Update(ctx, id, types.CustomerPatch{Status: &status})
}

// Delete removes the customer.
func (s *Customers) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.env, types.CollectionCustomers, id)
}
