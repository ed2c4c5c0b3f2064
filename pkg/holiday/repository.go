package holiday

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

type Repository interface {
	Store(ctx context.Context, holiday Holiday) (int, error)
	GetAll(ctx context.Context) ([]Holiday, error)
	Get(ctx context.Context, id int) (Holiday, error)
	Update(ctx context.Context, holiday Holiday) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, holiday Holiday) (int, error) {
	query := `INSERT INTO holiday (name, start_date, end_date) VALUES (?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, holiday.Name, holiday.StartDate.String(), holiday.EndDate.String())
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

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Holiday, error) {
	query := `SELECT id, name, start_date, end_date FROM holiday ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	holidays := make([]Holiday, 0, 10)
	for rows.Next() {
		holiday, err := scanHoliday(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		holidays = append(holidays, holiday)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return holidays, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Holiday, error) {
	query := `SELECT id, name, start_date, end_date FROM holiday WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	holiday, err := scanHoliday(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Holiday{}, err
		}
		log.Error(err)
		return Holiday{}, err
	}
	return holiday, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, holiday Holiday) (bool, error) {
	query := `UPDATE holiday SET name = ?, start_date = ?, end_date = ? WHERE id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, holiday.Name, holiday.StartDate.String(), holiday.EndDate.String(), holiday.ID)
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
	query := `DELETE FROM holiday WHERE id = ?`

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

func scanHoliday(scan func(dest ...any) error) (Holiday, error) {
	var holiday Holiday
	var startDate, endDate string
	if err := scan(&holiday.ID, &holiday.Name, &startDate, &endDate); err != nil {
		if err == sql.ErrNoRows {
			return Holiday{}, err
		}
		return Holiday{}, fmt.Errorf("could not scan holiday: %w", err)
	}
	var err error
	if holiday.StartDate, err = civil.ParseDate(startDate); err != nil {
		return Holiday{}, fmt.Errorf("could not parse start date: %w", err)
	}
	if holiday.EndDate, err = civil.ParseDate(endDate); err != nil {
		return Holiday{}, fmt.Errorf("could not parse end date: %w", err)
	}
	return holiday, nil
}
