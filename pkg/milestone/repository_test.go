package milestone

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gantty/gantty/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, *sql.DB) {
	db := test_utils.SetupTestDB(t)
	return context.Background(), NewRepository(db), db
}

func storeProject(t *testing.T, db *sql.DB) int {
	t.Helper()
	result, err := db.Exec(
		`INSERT INTO project (name, start_date, end_date, estimated_hours, continuous, row_id) VALUES (?, ?, ?, ?, ?, ?)`,
		"Website relaunch", "2025-06-02", "2025-06-30", 80.0, false, 1,
	)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func TestRepositoryImpl_StoreAndGet(t *testing.T) {
	// given
	ctx, repo, db := setupTestRepository(t)
	projectId := storeProject(t, db)

	// when
	id, err := repo.Store(ctx, Milestone{
		ProjectID:           projectId,
		Name:                "Design",
		EndDate:             mustDate(t, "2025-06-10"),
		TimeAllocationHours: 10,
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Design", stored.Name)
	assert.Equal(t, mustDate(t, "2025-06-10"), stored.EndDate)
	assert.Equal(t, 10.0, stored.TimeAllocationHours)
	assert.Nil(t, stored.Recurring)
}

func TestRepositoryImpl_RecurrenceRoundTrip(t *testing.T) {
	// given
	ctx, repo, db := setupTestRepository(t)
	projectId := storeProject(t, db)
	friday := time.Friday

	// when
	id, err := repo.Store(ctx, Milestone{
		ProjectID:           projectId,
		Name:                "Monthly review",
		EndDate:             mustDate(t, "2025-06-27"),
		TimeAllocationHours: 4,
		Recurring: &RecurringConfig{
			Type:               RecurrenceMonthly,
			Interval:           1,
			MonthlyPattern:     MonthlyPatternDayOfWeek,
			DayOfWeek:          &friday,
			MonthlyWeekOrdinal: WeekOrdinalLast,
		},
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, id)
	assert.NoError(t, err)
	require.NotNil(t, stored.Recurring)
	assert.Equal(t, RecurrenceMonthly, stored.Recurring.Type)
	assert.Equal(t, 1, stored.Recurring.Interval)
	assert.Equal(t, MonthlyPatternDayOfWeek, stored.Recurring.MonthlyPattern)
	require.NotNil(t, stored.Recurring.DayOfWeek)
	assert.Equal(t, time.Friday, *stored.Recurring.DayOfWeek)
	assert.Equal(t, WeekOrdinalLast, stored.Recurring.MonthlyWeekOrdinal)
}

func TestRepositoryImpl_GetAllForProject(t *testing.T) {
	// given
	ctx, repo, db := setupTestRepository(t)
	projectId := storeProject(t, db)
	_, err := repo.Store(ctx, Milestone{ProjectID: projectId, Name: "Later", EndDate: mustDate(t, "2025-06-20"), TimeAllocationHours: 5})
	require.NoError(t, err)
	_, err = repo.Store(ctx, Milestone{ProjectID: projectId, Name: "Earlier", EndDate: mustDate(t, "2025-06-10"), TimeAllocationHours: 5})
	require.NoError(t, err)

	// when
	milestones, err := repo.GetAllForProject(ctx, projectId)

	// then
	assert.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "Earlier", milestones[0].Name)
	assert.Equal(t, "Later", milestones[1].Name)
}

func TestRepositoryImpl_CascadeDeleteWithProject(t *testing.T) {
	// given
	ctx, repo, db := setupTestRepository(t)
	projectId := storeProject(t, db)
	id, err := repo.Store(ctx, Milestone{ProjectID: projectId, Name: "Doomed", EndDate: mustDate(t, "2025-06-10"), TimeAllocationHours: 5})
	require.NoError(t, err)

	// when
	_, err = db.Exec(`DELETE FROM project WHERE id = ?`, projectId)
	require.NoError(t, err)

	// then
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRepositoryImpl_Update(t *testing.T) {
	// given
	ctx, repo, db := setupTestRepository(t)
	projectId := storeProject(t, db)
	id, err := repo.Store(ctx, Milestone{ProjectID: projectId, Name: "Before", EndDate: mustDate(t, "2025-06-10"), TimeAllocationHours: 5})
	require.NoError(t, err)

	// when
	updated, err := repo.Update(ctx, Milestone{
		ID:                  id,
		ProjectID:           projectId,
		Name:                "After",
		EndDate:             mustDate(t, "2025-06-12"),
		TimeAllocationHours: 8,
	})

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	stored, err := repo.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "After", stored.Name)
	assert.Equal(t, 8.0, stored.TimeAllocationHours)
}
