package project

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, project Project) (int, error)
	GetAll(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id int) (Project, error)
	// GetByRow returns all projects placed on the given timeline row.
	GetByRow(ctx context.Context, rowId int) ([]Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	// Delete removes the project; its milestones are removed by the
	// ON DELETE CASCADE constraint.
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, project Project) (int, error) {
	query := `INSERT INTO project (
                    name,
                    start_date,
                    end_date,
                    estimated_hours,
                    continuous,
                    row_id,
                    auto_estimate_days
				) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		project.Name,
		project.StartDate.String(),
		endDateParam(project),
		project.EstimatedHours,
		project.Continuous,
		project.RowID,
		weekdaySetParam(project.AutoEstimateDays),
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

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Project, error) {
	query := `SELECT id, name, start_date, end_date, estimated_hours, continuous, row_id, auto_estimate_days
              FROM project ORDER BY row_id, start_date`
	return r.queryProjects(ctx, query)
}

func (r *RepositoryImpl) GetByRow(ctx context.Context, rowId int) ([]Project, error) {
	query := `SELECT id, name, start_date, end_date, estimated_hours, continuous, row_id, auto_estimate_days
              FROM project WHERE row_id = ? ORDER BY start_date`
	return r.queryProjects(ctx, query, rowId)
}

func (r *RepositoryImpl) queryProjects(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0, 10)
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return projects, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Project, error) {
	query := `SELECT id, name, start_date, end_date, estimated_hours, continuous, row_id, auto_estimate_days
              FROM project WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	project, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Project{}, err
		}
		log.Error(err)
		return Project{}, err
	}
	return project, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, project Project) (bool, error) {
	query := `UPDATE project SET
                  name = ?,
                  start_date = ?,
                  end_date = ?,
                  estimated_hours = ?,
                  continuous = ?,
                  row_id = ?,
                  auto_estimate_days = ?
              WHERE id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		project.Name,
		project.StartDate.String(),
		endDateParam(project),
		project.EstimatedHours,
		project.Continuous,
		project.RowID,
		weekdaySetParam(project.AutoEstimateDays),
		project.ID,
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
	query := `DELETE FROM project WHERE id = ?`
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

func endDateParam(project Project) any {
	if project.Continuous || project.EndDate.IsZero() {
		return nil
	}
	return project.EndDate.String()
}

// weekdaySetParam encodes the optional weekday override as a 7-character mask
// ("0" / "1" per weekday, Sunday first), or NULL when absent.
func weekdaySetParam(set *WeekdaySet) any {
	if set == nil {
		return nil
	}
	mask := make([]byte, 7)
	for i, enabled := range set {
		if enabled {
			mask[i] = '1'
		} else {
			mask[i] = '0'
		}
	}
	return string(mask)
}

func parseWeekdaySet(mask string) *WeekdaySet {
	if len(mask) != 7 {
		return nil
	}
	var set WeekdaySet
	for i := 0; i < 7; i++ {
		set[i] = mask[i] == '1'
	}
	return &set
}

func scanProject(scan func(dest ...any) error) (Project, error) {
	var project Project
	var startDate string
	var endDate, autoEstimateDays sql.NullString
	if err := scan(
		&project.ID,
		&project.Name,
		&startDate,
		&endDate,
		&project.EstimatedHours,
		&project.Continuous,
		&project.RowID,
		&autoEstimateDays,
	); err != nil {
		if err == sql.ErrNoRows {
			return Project{}, err
		}
		return Project{}, fmt.Errorf("could not scan project: %w", err)
	}

	var err error
	if project.StartDate, err = civil.ParseDate(startDate); err != nil {
		return Project{}, fmt.Errorf("could not parse start date: %w", err)
	}
	if endDate.Valid {
		if project.EndDate, err = civil.ParseDate(endDate.String); err != nil {
			return Project{}, fmt.Errorf("could not parse end date: %w", err)
		}
	}
	if autoEstimateDays.Valid {
		project.AutoEstimateDays = parseWeekdaySet(autoEstimateDays.String)
	}
	return project, nil
}
