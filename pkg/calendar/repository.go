package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvent(ctx context.Context, event Event) (uuid.UUID, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	GetEventsForProject(ctx context.Context, projectId int) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) (bool, error)
	DeleteEvent(ctx context.Context, eventId uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, event Event) (uuid.UUID, error) {
	query := `INSERT INTO calendar_event (
                            uid,
                            summary,
                            project_id,
                            start_time,
                            end_time,
                            completed
						) VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}
	defer stmt.Close()

	uid := uuid.New()
	_, err = stmt.ExecContext(ctx,
		uid.String(),
		event.Summary,
		projectIdParam(event),
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		event.Completed,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}
	return uid, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	// Return all events that overlap with the given period:
	// start before the end of the period AND end after its start.
	query := `SELECT uid, summary, project_id, start_time, end_time, completed
              FROM calendar_event
              WHERE start_time <= ? AND end_time >= ?
              ORDER BY start_time`

	return r.queryEvents(ctx, query, to.UnixMilli(), from.UnixMilli())
}

func (r *RepositoryImpl) GetEventsForProject(ctx context.Context, projectId int) ([]Event, error) {
	query := `SELECT uid, summary, project_id, start_time, end_time, completed
              FROM calendar_event
              WHERE project_id = ?
              ORDER BY start_time`

	return r.queryEvents(ctx, query, projectId)
}

func (r *RepositoryImpl) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query calendar events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var event Event
		var uidString string
		var projectId sql.NullInt64
		var startMillis, endMillis int64
		if err := rows.Scan(&uidString, &event.Summary, &projectId, &startMillis, &endMillis, &event.Completed); err != nil {
			err := fmt.Errorf("could not scan calendar event: %w", err)
			log.Error(err)
			return nil, err
		}
		if event.UID, err = uuid.Parse(uidString); err != nil {
			err := fmt.Errorf("could not parse event uid: %w", err)
			log.Error(err)
			return nil, err
		}
		if projectId.Valid {
			event.ProjectID = int(projectId.Int64)
		}
		event.StartTime = time.UnixMilli(startMillis)
		event.EndTime = time.UnixMilli(endMillis)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, event Event) (bool, error) {
	query := `UPDATE calendar_event SET
                  summary = ?,
                  project_id = ?,
                  start_time = ?,
                  end_time = ?,
                  completed = ?
              WHERE uid = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		event.Summary,
		projectIdParam(event),
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		event.Completed,
		event.UID.String(),
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

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, eventId uuid.UUID) (bool, error) {
	query := `DELETE FROM calendar_event WHERE uid = ?`
	result, err := r.db.ExecContext(ctx, query, eventId.String())
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

func projectIdParam(event Event) any {
	if event.ProjectID == 0 {
		return nil
	}
	return event.ProjectID
}
