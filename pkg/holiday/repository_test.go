package holiday

import (
	"context"
	"testing"

	"github.com/gantty/gantty/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl) {
	db := test_utils.SetupTestDB(t)
	return context.Background(), NewRepository(db)
}

func TestRepositoryImpl_StoreAndGetAll(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	_, err := repo.Store(ctx, Holiday{Name: "Later", StartDate: mustDate(t, "2025-12-24"), EndDate: mustDate(t, "2025-12-26")})
	require.NoError(t, err)
	_, err = repo.Store(ctx, Holiday{Name: "Earlier", StartDate: mustDate(t, "2025-07-01"), EndDate: mustDate(t, "2025-07-14")})
	require.NoError(t, err)

	// when
	holidays, err := repo.GetAll(ctx)

	// then
	assert.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Earlier", holidays[0].Name)
	assert.Equal(t, "Later", holidays[1].Name)
	assert.Equal(t, mustDate(t, "2025-07-01"), holidays[0].StartDate)
}

func TestRepositoryImpl_Update(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.Store(ctx, Holiday{Name: "Before", StartDate: mustDate(t, "2025-07-01"), EndDate: mustDate(t, "2025-07-14")})
	require.NoError(t, err)

	// when
	updated, err := repo.Update(ctx, Holiday{ID: id, Name: "After", StartDate: mustDate(t, "2025-07-02"), EndDate: mustDate(t, "2025-07-15")})

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	stored, err := repo.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "After", stored.Name)
	assert.Equal(t, mustDate(t, "2025-07-15"), stored.EndDate)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.Store(ctx, Holiday{Name: "Doomed", StartDate: mustDate(t, "2025-07-01"), EndDate: mustDate(t, "2025-07-02")})
	require.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, id)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	holidays, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, holidays)
}
