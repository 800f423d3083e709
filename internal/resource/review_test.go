package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func TestReviews_JoinedNames(t *testing.T) {
	svc, gw := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Products.Create(ctx, types.ProductDraft{Name: "Rose Noir"})
	require.NoError(t, err)
	cust := mustInsert(t, gw, types.CollectionCustomers, types.Record{"first_name": "Ayşe", "last_name": "Yılmaz"})

	id := mustInsert(t, gw, types.CollectionReviews, types.Record{
		"product_id":  p.ID,
		"customer_id": cust["id"],
		"rating":      int64(5),
		"comment":     "Harika",
	})["id"].(string)
	mustInsert(t, gw, types.CollectionReviews, types.Record{"rating": int64(2), "status": "weird"})

	all, err := svc.Reviews.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	orphan, joined := all[0], all[1]
	assert.Equal(t, id, joined.ID)
	assert.Equal(t, "Rose Noir", joined.ProductName)
	assert.Equal(t, "Ayşe Yılmaz", joined.CustomerName)
	assert.Equal(t, types.ReviewPending, joined.Status)

	assert.Equal(t, DeletedProductName, orphan.ProductName)
	assert.Equal(t, UnknownCustomerName, orphan.CustomerName)
	assert.Equal(t, types.ReviewPending, orphan.Status, "unknown status falls back to pending")
}

func TestReviews_ProductDeletedKeepsReview(t *testing.T) {
	svc, gw := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Products.Create(ctx, types.ProductDraft{Name: "Oud"})
	require.NoError(t, err)
	id := mustInsert(t, gw, types.CollectionReviews, types.Record{"product_id": p.ID, "rating": int64(4)})["id"].(string)

	require.NoError(t, svc.Products.Delete(ctx, p.ID))

	got, ok, err := svc.Reviews.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.ProductID)
	assert.Equal(t, DeletedProductName, got.ProductName)
}

func TestReviews_UpdateStatusAndDelete(t *testing.T) {
	svc, gw := newTestServices(t)
	ctx := context.Background()
	id := mustInsert(t, gw, types.CollectionReviews, types.Record{"rating": int64(1)})["id"].(string)

	got, err := svc.Reviews.UpdateStatus(ctx, id, types.ReviewSpam)
	require.NoError(t, err)
	assert.Equal(t, types.ReviewSpam, got.Status)

	_, err = svc.Reviews.UpdateStatus(ctx, id, "hidden")
	requireWriteError(t, err, types.ErrInvalidStatus)

	require.NoError(t, svc.Reviews.Delete(ctx, id))
	_, ok, err := svc.Reviews.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
