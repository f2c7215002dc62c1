package activity

import (
	"context"
	"database/sql"

	domain "mergington/internal/domain/activity"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new ActivityStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByName retrieves an Activity and its ordered participant list.
// PRE: name is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT name, description, schedule, max_participants FROM activity WHERE name = ?", name)

	var entity domain.Activity
	err := row.Scan(&entity.Name, &entity.Description, &entity.Schedule, &entity.MaxParticipants)
	if err == sql.ErrNoRows {
		return domain.Activity{}, ErrNotFound
	}
	if err != nil {
		return domain.Activity{}, err
	}

	entity.Participants, err = s.participants(ctx, s.db, name)
	return entity, err
}

// Save persists an Activity and replaces its participant list.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Activity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO activity (name, description, schedule, max_participants) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description=excluded.description,
			schedule=excluded.schedule,
			max_participants=excluded.max_participants`,
		entity.Name, entity.Description, entity.Schedule, entity.MaxParticipants)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM participant WHERE activity_name = ?", entity.Name); err != nil {
		return err
	}
	for i, email := range entity.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participant (activity_name, email, position) VALUES (?, ?, ?)",
			entity.Name, email, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes an Activity and its participants.
// PRE: name is non-empty
// POST: Entity with given name is removed
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM activity WHERE name = ?", name)
	return err
}

// List retrieves all Activities with their participant lists.
// PRE: none
// POST: Returns all activities ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, description, schedule, max_participants FROM activity ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Activity
	for rows.Next() {
		var entity domain.Activity
		if err := rows.Scan(&entity.Name, &entity.Description, &entity.Schedule, &entity.MaxParticipants); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Participants, err = s.participants(ctx, s.db, results[i].Name)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// AddParticipant enrolls email in the named activity.
// The capacity and uniqueness checks run inside the same transaction as the
// insert, so two concurrent signups cannot both take the last spot.
// PRE: name and email are non-empty
// POST: email appended at the end of the participant order, or a typed error
func (s *SQLiteStore) AddParticipant(ctx context.Context, name, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var max int
	err = tx.QueryRowContext(ctx, "SELECT max_participants FROM activity WHERE name = ?", name).Scan(&max)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var enrolled int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM participant WHERE activity_name = ? AND email = ?", name, email).Scan(&enrolled)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return ErrAlreadyEnrolled
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM participant WHERE activity_name = ?", name).Scan(&count); err != nil {
		return err
	}
	if count >= max {
		return ErrFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO participant (activity_name, email, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM participant WHERE activity_name = ?))`,
		name, email, name)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveParticipant removes email from the named activity.
// PRE: name and email are non-empty
// POST: email removed, or a typed error
func (s *SQLiteStore) RemoveParticipant(ctx context.Context, name, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity WHERE name = ?", name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM participant WHERE activity_name = ? AND email = ?", name, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotEnrolled
	}

	return tx.Commit()
}

// Count returns the total number of activities.
// PRE: none
// POST: Returns total activity count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity").Scan(&count)
	return count, err
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// participants returns the ordered participant emails for an activity.
func (s *SQLiteStore) participants(ctx context.Context, q querier, name string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT email FROM participant WHERE activity_name = ? ORDER BY position ASC", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
