package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Get returns the stored weekly schedule, or an empty schedule when
	// nothing has been stored yet.
	Get(ctx context.Context) (WeeklySchedule, error)
	// Replace overwrites the whole weekly schedule.
	Replace(ctx context.Context, schedule WeeklySchedule) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context) (WeeklySchedule, error) {
	query := `SELECT weekday, start_time, end_time, duration_minutes
              FROM work_slot ORDER BY weekday, position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query work slots: %w", err)
		log.Error(err)
		return WeeklySchedule{}, err
	}
	defer rows.Close()

	days := make(map[time.Weekday][]WorkSlot)
	for rows.Next() {
		var weekday int
		var slot WorkSlot
		var durationMinutes int
		if err := rows.Scan(&weekday, &slot.Start, &slot.End, &durationMinutes); err != nil {
			err := fmt.Errorf("could not scan work slot: %w", err)
			log.Error(err)
			return WeeklySchedule{}, err
		}
		slot.Duration = float64(durationMinutes) / 60
		days[time.Weekday(weekday)] = append(days[time.Weekday(weekday)], slot)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return WeeklySchedule{}, err
	}

	return WeeklySchedule{Days: days}, nil
}

func (r *RepositoryImpl) Replace(ctx context.Context, schedule WeeklySchedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM work_slot"); err != nil {
		err := fmt.Errorf("could not clear work slots: %w", err)
		log.Error(err)
		return err
	}

	query := `INSERT INTO work_slot (weekday, position, start_time, end_time, duration_minutes)
              VALUES (?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for weekday, slots := range schedule.Days {
		for position, slot := range slots {
			durationMinutes := int(slot.Duration * 60)
			if _, err := stmt.ExecContext(ctx, int(weekday), position, slot.Start, slot.End, durationMinutes); err != nil {
				err := fmt.Errorf("could not store work slot: %w", err)
				log.Error(err)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
