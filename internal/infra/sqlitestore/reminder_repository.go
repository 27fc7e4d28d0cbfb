package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/observability/tracing"
)

const reminderColumns = `id, owner_id, title, description, due_at, completed, notified, priority,
	location_name, latitude, longitude, radius, location_notified, created_at, updated_at`

type reminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(store *Store) domain.ReminderRepository {
	return &reminderRepository{db: store.db}
}

func (r *reminderRepository) Find(ctx context.Context, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "find")
	defer span.End()

	where, args := buildWhere(filter)

	query := "SELECT " + reminderColumns + " FROM reminders"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY due_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

func buildWhere(filter domain.ReminderFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.OwnerID != "" {
		clauses = append(clauses, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.DueFrom != nil {
		clauses = append(clauses, "due_at >= ?")
		args = append(args, filter.DueFrom.UnixNano())
	}
	if filter.DueTo != nil {
		clauses = append(clauses, "due_at <= ?")
		args = append(args, filter.DueTo.UnixNano())
	}
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Notified != nil {
		clauses = append(clauses, "notified = ?")
		args = append(args, *filter.Notified)
	}
	if filter.LocationNotified != nil {
		clauses = append(clauses, "location_notified = ?")
		args = append(args, *filter.LocationNotified)
	}
	if filter.HasLocation {
		clauses = append(clauses, "location_name IS NOT NULL")
	}

	return strings.Join(clauses, " AND "), args
}

func (r *reminderRepository) FindByID(ctx context.Context, id string) (*domain.Reminder, error) {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "find_by_id")
	defer span.End()

	row := r.db.QueryRowContext(ctx, "SELECT "+reminderColumns+" FROM reminders WHERE id = ?", id)

	reminder, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReminderNotFound
		}
		tracing.RecordError(span, err)
		return nil, err
	}
	return reminder, nil
}

type locationColumns struct {
	name                sql.NullString
	latitude, longitude sql.NullFloat64
	radius              sql.NullFloat64
}

func toLocationColumns(loc *domain.Location) locationColumns {
	if loc == nil {
		return locationColumns{}
	}
	return locationColumns{
		name:      sql.NullString{String: loc.Name, Valid: true},
		latitude:  sql.NullFloat64{Float64: loc.Latitude, Valid: true},
		longitude: sql.NullFloat64{Float64: loc.Longitude, Valid: true},
		radius:    sql.NullFloat64{Float64: loc.Radius, Valid: true},
	}
}

// sameLocation matches a stored location against the given one, NULLs included.
const sameLocation = `location_name IS ? AND latitude IS ? AND longitude IS ? AND radius IS ?`

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "create")
	defer span.End()

	loc := toLocationColumns(reminder.Location)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		reminder.ID, reminder.OwnerID, reminder.Title, reminder.Description,
		reminder.DueDate.UnixNano(), reminder.Completed, reminder.Notified, reminder.Priority.String(),
		loc.name, loc.latitude, loc.longitude, loc.radius, reminder.LocationNotified,
		formatTime(reminder.CreatedAt), formatTime(reminder.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReminderAlreadyExists
		}
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

// Save updates the editable fields of an existing reminder. The stored
// notification flags are kept unless the due date or location they refer to
// changed in this write.
func (r *reminderRepository) Save(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "save")
	defer span.End()

	loc := toLocationColumns(reminder.Location)
	dueAt := reminder.DueDate.UnixNano()
	result, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET
			notified = CASE WHEN due_at = ? THEN notified ELSE 0 END,
			location_notified = CASE WHEN `+sameLocation+` THEN location_notified ELSE 0 END,
			title = ?,
			description = ?,
			due_at = ?,
			completed = ?,
			priority = ?,
			location_name = ?,
			latitude = ?,
			longitude = ?,
			radius = ?,
			updated_at = ?
		WHERE id = ?
	`,
		dueAt,
		loc.name, loc.latitude, loc.longitude, loc.radius,
		reminder.Title, reminder.Description, dueAt, reminder.Completed, reminder.Priority.String(),
		loc.name, loc.latitude, loc.longitude, loc.radius,
		formatTime(reminder.UpdatedAt), reminder.ID,
	)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) MarkNotified(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "mark_notified")
	defer span.End()

	result, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET notified = 1, updated_at = ? WHERE id = ? AND due_at = ?",
		formatTime(reminder.UpdatedAt), reminder.ID, reminder.DueDate.UnixNano(),
	)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to mark reminder notified: %w", err)
	}
	return r.checkMarked(ctx, result, reminder.ID)
}

func (r *reminderRepository) MarkLocationNotified(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "mark_location_notified")
	defer span.End()

	loc := toLocationColumns(reminder.Location)
	result, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET location_notified = 1, updated_at = ? WHERE id = ? AND "+sameLocation,
		formatTime(reminder.UpdatedAt), reminder.ID, loc.name, loc.latitude, loc.longitude, loc.radius,
	)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to mark reminder location notified: %w", err)
	}
	return r.checkMarked(ctx, result, reminder.ID)
}

// checkMarked tells a deleted reminder apart from one whose guard no longer matched.
func (r *reminderRepository) checkMarked(ctx context.Context, result sql.Result, id string) error {
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM reminders WHERE id = ?)", id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check reminder: %w", err)
	}
	if !exists {
		return domain.ErrReminderNotFound
	}
	return domain.ErrReminderChanged
}

func (r *reminderRepository) Delete(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "sqlite", "delete")
	defer span.End()

	result, err := r.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", reminder.ID)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(s scanner) (*domain.Reminder, error) {
	var (
		r                    domain.Reminder
		priority             string
		dueAt                int64
		locationName         sql.NullString
		latitude, longitude  sql.NullFloat64
		radius               sql.NullFloat64
		createdAt, updatedAt string
	)

	err := s.Scan(
		&r.ID, &r.OwnerID, &r.Title, &r.Description, &dueAt, &r.Completed, &r.Notified, &priority,
		&locationName, &latitude, &longitude, &radius, &r.LocationNotified, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Priority = domain.Priority(priority)
	r.DueDate = time.Unix(0, dueAt).UTC()
	if locationName.Valid {
		r.Location = &domain.Location{
			Name:      locationName.String,
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
			Radius:    radius.Float64,
		}
	}

	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidReminderData, err)
	}
	return t, nil
}
