package resource

import (
	"context"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Display names used when a review's product or customer no longer exists.
const (
	DeletedProductName  = "Ürün Silinmiş"
	UnknownCustomerName = "Bilinmeyen Müşteri"
)

var reviewJoins = []types.Join{
	{Collection: types.CollectionProducts, LocalKey: "product_id", Columns: []string{"name"}},
	{Collection: types.CollectionCustomers, LocalKey: "customer_id", Columns: []string{"first_name", "last_name"}},
}

// Reviews moderates product reviews.
type Reviews struct{ env *env }

func mapReview(r types.Record) types.Review {
	rv := types.Review{
		ID:          str(r, "id"),
		ProductID:   str(r, "product_id"),
		ProductName: DeletedProductName,
		CustomerID:  str(r, "customer_id"),
		Rating:      integer(r, "rating"),
		Comment:     str(r, "comment"),
		Status:      types.ReviewStatus(str(r, "status")),
		CreatedAt:   timestamp(r, "created_at"),
	}
	if !rv.Status.Valid() {
		rv.Status = types.ReviewPending
	}
	if p := nested(r, types.CollectionProducts); p != nil {
		rv.ProductName = strOr(p, "name", DeletedProductName)
	}
	cust := types.Customer{}
	if c := nested(r, types.CollectionCustomers); c != nil {
		cust.FirstName, cust.LastName = str(c, "first_name"), str(c, "last_name")
	}
	rv.CustomerName = cust.FullName()
	if rv.CustomerName == "" {
		rv.CustomerName = UnknownCustomerName
	}
	return rv
}

// GetAll returns every review, newest first, with product and customer names.
func (s *Reviews) GetAll(ctx context.Context) ([]types.Review, error) {
	return list(ctx, s.env, types.CollectionReviews, types.Query{
		Order: []types.OrderBy{{Field: "created_at", Desc: true}},
		Joins: reviewJoins,
	}, mapReview)
}

// GetByID returns the review with the given id.
func (s *Reviews) GetByID(ctx context.Context, id string) (types.Review, bool, error) {
	return find(ctx, s.env, types.CollectionReviews, id, mapReview, reviewJoins...)
}

// UpdateStatus moves the review to a moderation state.
func (s *Reviews) UpdateStatus(ctx context.Context, id string, status types.ReviewStatus) (types.Review, error) {
	if !status.Valid() {
		return types.Review{}, writeError(types.CollectionReviews, types.OpUpdate, id, types.ErrInvalidStatus)
	}
	rec, err := update(ctx, s.env, types.CollectionReviews, id, types.Record{"status": string(status)})
	if err != nil {
		return types.Review{}, err
	}
	return mapReview(rejoin(ctx, s.env, types.CollectionReviews, rec, reviewJoins...)), nil
}

// Delete removes the review.
func (s *Reviews) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.env, types.CollectionReviews, id)
}
