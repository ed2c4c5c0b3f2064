package milestone

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, milestone Milestone) (int, error)
	Get(ctx context.Context, id int) (Milestone, error)
	// GetAllForProject returns the project's milestones ordered by due date.
	GetAllForProject(ctx context.Context, projectId int) ([]Milestone, error)
	Update(ctx context.Context, milestone Milestone) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, milestone Milestone) (int, error) {
	query := `INSERT INTO milestone (
                    project_id,
                    name,
                    end_date,
                    time_allocation_hours,
                    recurrence_type,
                    recurrence_interval,
                    recurrence_day_of_week,
                    recurrence_monthly_pattern,
                    recurrence_monthly_date,
                    recurrence_week_ordinal
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	params := recurrenceParams(milestone.Recurring)
	result, err := stmt.ExecContext(ctx,
		milestone.ProjectID,
		milestone.Name,
		milestone.EndDate.String(),
		milestone.TimeAllocationHours,
		params.recurrenceType,
		params.interval,
		params.dayOfWeek,
		params.monthlyPattern,
		params.monthlyDate,
		params.weekOrdinal,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Milestone, error) {
	query := selectColumns + ` FROM milestone WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	milestone, err := scanMilestone(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Milestone{}, err
		}
		log.Error(err)
		return Milestone{}, err
	}
	return milestone, nil
}

func (r *RepositoryImpl) GetAllForProject(ctx context.Context, projectId int) ([]Milestone, error) {
	query := selectColumns + ` FROM milestone WHERE project_id = ? ORDER BY end_date, id`

	rows, err := r.db.QueryContext(ctx, query, projectId)
	if err != nil {
		err := fmt.Errorf("could not query milestones: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	milestones := make([]Milestone, 0, 10)
	for rows.Next() {
		milestone, err := scanMilestone(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		milestones = append(milestones, milestone)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return milestones, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, milestone Milestone) (bool, error) {
	query := `UPDATE milestone SET
                  name = ?,
                  end_date = ?,
                  time_allocation_hours = ?,
                  recurrence_type = ?,
                  recurrence_interval = ?,
                  recurrence_day_of_week = ?,
                  recurrence_monthly_pattern = ?,
                  recurrence_monthly_date = ?,
                  recurrence_week_ordinal = ?
              WHERE id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	params := recurrenceParams(milestone.Recurring)
	result, err := stmt.ExecContext(ctx,
		milestone.Name,
		milestone.EndDate.String(),
		milestone.TimeAllocationHours,
		params.recurrenceType,
		params.interval,
		params.dayOfWeek,
		params.monthlyPattern,
		params.monthlyDate,
		params.weekOrdinal,
		milestone.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM milestone WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

const selectColumns = `SELECT id, project_id, name, end_date, time_allocation_hours,
       recurrence_type, recurrence_interval, recurrence_day_of_week,
       recurrence_monthly_pattern, recurrence_monthly_date, recurrence_week_ordinal`

type recurrenceColumns struct {
	recurrenceType any
	interval       any
	dayOfWeek      any
	monthlyPattern any
	monthlyDate    any
	weekOrdinal    any
}

func recurrenceParams(cfg *RecurringConfig) recurrenceColumns {
	if cfg == nil {
		return recurrenceColumns{}
	}
	params := recurrenceColumns{
		recurrenceType: string(cfg.Type),
		interval:       cfg.Interval,
		monthlyDate:    cfg.MonthlyDate,
		weekOrdinal:    cfg.MonthlyWeekOrdinal,
	}
	if cfg.DayOfWeek != nil {
		params.dayOfWeek = int(*cfg.DayOfWeek)
	}
	if cfg.MonthlyPattern != "" {
		params.monthlyPattern = string(cfg.MonthlyPattern)
	}
	return params
}

func scanMilestone(scan func(dest ...any) error) (Milestone, error) {
	var milestone Milestone
	var endDate string
	var recurrenceType, monthlyPattern sql.NullString
	var interval, dayOfWeek, monthlyDate, weekOrdinal sql.NullInt64
	if err := scan(
		&milestone.ID,
		&milestone.ProjectID,
		&milestone.Name,
		&endDate,
		&milestone.TimeAllocationHours,
		&recurrenceType,
		&interval,
		&dayOfWeek,
		&monthlyPattern,
		&monthlyDate,
		&weekOrdinal,
	); err != nil {
		if err == sql.ErrNoRows {
			return Milestone{}, err
		}
		return Milestone{}, fmt.Errorf("could not scan milestone: %w", err)
	}

	var err error
	if milestone.EndDate, err = civil.ParseDate(endDate); err != nil {
		return Milestone{}, fmt.Errorf("could not parse end date: %w", err)
	}

	if recurrenceType.Valid {
		cfg := &RecurringConfig{
			Type:               RecurrenceType(recurrenceType.String),
			Interval:           int(interval.Int64),
			MonthlyDate:        int(monthlyDate.Int64),
			MonthlyWeekOrdinal: int(weekOrdinal.Int64),
		}
		if dayOfWeek.Valid {
			weekday := time.Weekday(dayOfWeek.Int64)
			cfg.DayOfWeek = &weekday
		}
		if monthlyPattern.Valid {
			cfg.MonthlyPattern = MonthlyPattern(monthlyPattern.String)
		}
		milestone.Recurring = cfg
	}
	return milestone, nil
}
