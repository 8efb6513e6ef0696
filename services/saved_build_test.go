package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
)

func strPtr(s string) *string { return &s }

const sampleItems = `{
	"cpu": {"id": 6, "name": "Intel Core i5-13400F", "vendors": [{"name": "a", "price": 15000, "stock": true}]},
	"pcCase": {"id": 38, "name": "Ant Esports ICE-100", "vendors": [{"name": "b", "price": 2500, "stock": true}]}
}`

func TestSavedBuildLifecycle(t *testing.T) {
	svc := NewSavedBuildService(repository.NewMemorySavedBuilds())
	ctx := context.Background()

	b, err := svc.Create(ctx, "user-1", models.SavedBuildRequest{Name: strPtr(" My rig "), Items: json.RawMessage(sampleItems)})
	require.NoError(t, err)
	assert.Equal(t, "My rig", b.Name)
	assert.Equal(t, 17500.0, b.TotalPrice)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	updated, err := svc.Update(ctx, b.ID, "user-1", models.SavedBuildRequest{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 17500.0, updated.TotalPrice)

	updated, err = svc.Update(ctx, b.ID, "user-1", models.SavedBuildRequest{
		Items: json.RawMessage(`{"gpu": {"id": 12, "name": "RTX 4060 Ti", "vendors": [{"price": 38000, "stock": true}]}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 38000.0, updated.TotalPrice)

	_, err = svc.Update(ctx, b.ID, "user-2", models.SavedBuildRequest{Name: strPtr("stolen")})
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, b.ID, "user-2"), repository.ErrNotFound))
	require.NoError(t, svc.Delete(ctx, b.ID, "user-1"))
	assert.True(t, errors.Is(svc.Delete(ctx, b.ID, "user-1"), repository.ErrNotFound))
}

func TestSavedBuildValidation(t *testing.T) {
	svc := NewSavedBuildService(repository.NewMemorySavedBuilds())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u", models.SavedBuildRequest{Items: json.RawMessage(sampleItems)})
	assert.True(t, errors.Is(err, ErrMissingBuild))

	_, err = svc.Create(ctx, "u", models.SavedBuildRequest{Name: strPtr("x")})
	assert.True(t, errors.Is(err, ErrMissingBuild))

	_, err = svc.Create(ctx, "u", models.SavedBuildRequest{Name: strPtr("x"), Items: json.RawMessage(`null`)})
	assert.True(t, errors.Is(err, ErrMissingBuild))

	_, err = svc.Create(ctx, "u", models.SavedBuildRequest{Name: strPtr("x"), Items: json.RawMessage(`["cpu"]`)})
	assert.True(t, errors.Is(err, ErrInvalidItems))

	b, err := svc.Create(ctx, "u", models.SavedBuildRequest{Name: strPtr("x"), Items: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.Zero(t, b.TotalPrice)

	_, err = svc.Update(ctx, b.ID, "u", models.SavedBuildRequest{Name: strPtr("  ")})
	assert.True(t, errors.Is(err, ErrMissingBuild))
}
