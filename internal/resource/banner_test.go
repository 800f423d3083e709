package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func TestBanners_CRUD(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Banners.Create(ctx, types.BannerDraft{Image: "x.jpg"})
	requireWriteError(t, err, types.ErrInvalidName)

	second, err := svc.Banners.Create(ctx, types.BannerDraft{Title: "Yaz", Image: "yaz.jpg", Order: 2, IsActive: true})
	require.NoError(t, err)
	first, err := svc.Banners.Create(ctx, types.BannerDraft{Title: "Kış", Image: "kis.jpg", Order: 1})
	require.NoError(t, err)

	all, err := svc.Banners.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	link := "/kampanya"
	got, err := svc.Banners.Update(ctx, first.ID, types.BannerPatch{Link: &link})
	require.NoError(t, err)
	assert.Equal(t, link, got.Link)
	assert.Equal(t, "Kış", got.Title)

	require.NoError(t, svc.Banners.Delete(ctx, second.ID))
	all, err = svc.Banners.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShowcases_SeededAndUpdated(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	all, err := svc.Showcases.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, types.ShowcaseFeaturedProducts, all[0].Type)
	assert.Equal(t, []string{}, all[0].ProductIDs)

	active := true
	got, err := svc.Showcases.Update(ctx, all[0].ID, types.ShowcasePatch{
		ProductIDs: []string{"p1", "p2"},
		IsActive:   &active,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, got.ProductIDs)
	assert.True(t, got.IsActive)
	assert.Equal(t, all[0].Title, got.Title)
}
