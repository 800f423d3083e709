package types

import "time"

// ActivityStatus is the active/inactive flag used by customers and admins.
type ActivityStatus string

// Activity statuses.
const (
	StatusActive   ActivityStatus = "active"
	StatusInactive ActivityStatus = "inactive"
)

// Valid reports whether s is active or inactive.
func (s ActivityStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Customer is a storefront shopper.
type Customer struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Status        ActivityStatus `json:"status"`
	Addresses     []Address      `json:"addresses"`
	OrderCount    int64          `json:"orderCount"`
	TotalSpent    float64        `json:"totalSpent"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	LastOrderDate *time.Time     `json:"lastOrderDate,omitempty"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// CustomerPatch carries a partial customer update; nil fields are not written.
type CustomerPatch struct {
	FirstName *string         `json:"firstName,omitempty"`
	LastName  *string         `json:"lastName,omitempty"`
	Email     *string         `json:"email,omitempty"`
	Phone     *string         `json:"phone,omitempty"`
	Status    *ActivityStatus `json:"status,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
}
