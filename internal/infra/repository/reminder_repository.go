package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/observability/tracing"
)

const (
	reminderKeyPrefix       = "reminder:"
	ownerRemindersKeyPrefix = "reminders:owner:"
	dueIndexKey             = "reminders:due"
	locatedIndexKey         = "reminders:located"
)

type reminderRecord struct {
	ID               string          `json:"id"`
	OwnerID          string          `json:"owner_id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	DueDate          time.Time       `json:"due_date"`
	Completed        bool            `json:"completed"`
	Notified         bool            `json:"notified"`
	Priority         string          `json:"priority"`
	Location         *locationRecord `json:"location,omitempty"`
	LocationNotified bool            `json:"location_notified"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type locationRecord struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

func toReminderRecord(r *domain.Reminder) reminderRecord {
	record := reminderRecord{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		Title:            r.Title,
		Description:      r.Description,
		DueDate:          r.DueDate.UTC(),
		Completed:        r.Completed,
		Notified:         r.Notified,
		Priority:         r.Priority.String(),
		LocationNotified: r.LocationNotified,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
	if r.Location != nil {
		record.Location = &locationRecord{
			Name:      r.Location.Name,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
			Radius:    r.Location.Radius,
		}
	}
	return record
}

func (rec reminderRecord) toDomain() *domain.Reminder {
	r := &domain.Reminder{
		ID:               rec.ID,
		OwnerID:          rec.OwnerID,
		Title:            rec.Title,
		Description:      rec.Description,
		DueDate:          rec.DueDate,
		Completed:        rec.Completed,
		Notified:         rec.Notified,
		Priority:         domain.Priority(rec.Priority),
		LocationNotified: rec.LocationNotified,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
	if rec.Location != nil {
		r.Location = &domain.Location{
			Name:      rec.Location.Name,
			Latitude:  rec.Location.Latitude,
			Longitude: rec.Location.Longitude,
			Radius:    rec.Location.Radius,
		}
	}
	return r
}

type reminderRepository struct {
	client *redis.Client
}

// NewReminderRepository stores each reminder as a JSON document and keeps
// secondary indexes by owner, due time and location presence.
func NewReminderRepository(client *redis.Client) domain.ReminderRepository {
	return &reminderRepository{
		client: client,
	}
}

func (r *reminderRepository) Find(ctx context.Context, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "find")
	defer span.End()

	ids, err := r.candidateIDs(ctx, filter)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	reminders, err := r.load(ctx, ids)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	matched := make([]*domain.Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if filter.Matches(reminder) {
			matched = append(matched, reminder)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DueDate.Before(matched[j].DueDate)
	})

	return matched, nil
}

// candidateIDs narrows the key space with the most selective index available.
// The result is a superset; Find applies the full filter afterwards.
func (r *reminderRepository) candidateIDs(ctx context.Context, filter domain.ReminderFilter) ([]string, error) {
	switch {
	case filter.DueFrom != nil || filter.DueTo != nil:
		rangeBy := &redis.ZRangeBy{Min: "-inf", Max: "+inf"}
		if filter.DueFrom != nil {
			rangeBy.Min = strconv.FormatInt(filter.DueFrom.Unix(), 10)
		}
		if filter.DueTo != nil {
			rangeBy.Max = strconv.FormatInt(filter.DueTo.Unix(), 10)
		}
		return r.client.ZRangeByScore(ctx, dueIndexKey, rangeBy).Result()
	case filter.OwnerID != "":
		return r.client.SMembers(ctx, ownerRemindersKeyPrefix+filter.OwnerID).Result()
	case filter.HasLocation:
		return r.client.SMembers(ctx, locatedIndexKey).Result()
	default:
		return r.client.ZRange(ctx, dueIndexKey, 0, -1).Result()
	}
}

func (r *reminderRepository) load(ctx context.Context, ids []string) ([]*domain.Reminder, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, reminderKeyPrefix+id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	reminders := make([]*domain.Reminder, 0, len(values))
	for _, v := range values {
		// Index entries can briefly outlive a deleted document.
		s, ok := v.(string)
		if !ok {
			continue
		}

		var record reminderRecord
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			return nil, ErrInvalidReminderData
		}
		reminders = append(reminders, record.toDomain())
	}

	return reminders, nil
}

func (r *reminderRepository) FindByID(ctx context.Context, id string) (*domain.Reminder, error) {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "find_by_id")
	defer span.End()

	data, err := r.client.Get(ctx, reminderKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrReminderNotFound
		}
		tracing.RecordError(span, err)
		return nil, err
	}

	var record reminderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidReminderData
	}

	return record.toDomain(), nil
}

// maxWatchRetries bounds optimistic transaction retries when a watched key changes under us.
const maxWatchRetries = 5

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "create")
	defer span.End()

	data, err := json.Marshal(toReminderRecord(reminder))
	if err != nil {
		return ErrInvalidReminderData
	}

	key := reminderKeyPrefix + reminder.ID
	err = r.watch(ctx, key, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return domain.ErrReminderAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			writeIndexes(ctx, pipe, reminder)
			return nil
		})
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrReminderAlreadyExists) {
		tracing.RecordError(span, err)
	}
	return err
}

// Save updates the editable fields of an existing reminder. The stored
// notification flags are kept unless the due date or location they refer to
// changed in this write.
func (r *reminderRepository) Save(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "save")
	defer span.End()

	err := r.update(ctx, reminder.ID, func(stored *domain.Reminder) error {
		notified := stored.Notified && stored.DueDate.Equal(reminder.DueDate)
		locationNotified := stored.LocationNotified && stored.Location.Equal(reminder.Location)

		*stored = *reminder
		stored.Notified = notified
		stored.LocationNotified = locationNotified
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrReminderNotFound) {
		tracing.RecordError(span, err)
	}
	return err
}

func (r *reminderRepository) MarkNotified(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "mark_notified")
	defer span.End()

	err := r.update(ctx, reminder.ID, func(stored *domain.Reminder) error {
		if !stored.DueDate.Equal(reminder.DueDate) {
			return domain.ErrReminderChanged
		}
		stored.Notified = true
		stored.UpdatedAt = reminder.UpdatedAt
		return nil
	})
	if err != nil && !isExpectedWriteError(err) {
		tracing.RecordError(span, err)
	}
	return err
}

func (r *reminderRepository) MarkLocationNotified(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "mark_location_notified")
	defer span.End()

	err := r.update(ctx, reminder.ID, func(stored *domain.Reminder) error {
		if !stored.Location.Equal(reminder.Location) {
			return domain.ErrReminderChanged
		}
		stored.LocationNotified = true
		stored.UpdatedAt = reminder.UpdatedAt
		return nil
	})
	if err != nil && !isExpectedWriteError(err) {
		tracing.RecordError(span, err)
	}
	return err
}

func isExpectedWriteError(err error) bool {
	return errors.Is(err, domain.ErrReminderNotFound) || errors.Is(err, domain.ErrReminderChanged)
}

// update applies fn to the stored reminder inside a WATCH transaction, so a
// concurrent delete or edit aborts the write instead of being overwritten.
func (r *reminderRepository) update(ctx context.Context, id string, fn func(stored *domain.Reminder) error) error {
	key := reminderKeyPrefix + id
	return r.watch(ctx, key, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrReminderNotFound
			}
			return err
		}

		var record reminderRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return ErrInvalidReminderData
		}

		stored := record.toDomain()
		if err := fn(stored); err != nil {
			return err
		}

		updated, err := json.Marshal(toReminderRecord(stored))
		if err != nil {
			return ErrInvalidReminderData
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			writeIndexes(ctx, pipe, stored)
			return nil
		})
		return err
	})
}

func (r *reminderRepository) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for range maxWatchRetries {
		err := r.client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func writeIndexes(ctx context.Context, pipe redis.Pipeliner, reminder *domain.Reminder) {
	pipe.SAdd(ctx, ownerRemindersKeyPrefix+reminder.OwnerID, reminder.ID)
	pipe.ZAdd(ctx, dueIndexKey, redis.Z{
		Score:  float64(reminder.DueDate.Unix()),
		Member: reminder.ID,
	})
	if reminder.HasLocation() {
		pipe.SAdd(ctx, locatedIndexKey, reminder.ID)
	} else {
		pipe.SRem(ctx, locatedIndexKey, reminder.ID)
	}
}

func (r *reminderRepository) Delete(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return ErrInvalidReminderData
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "delete")
	defer span.End()

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, reminderKeyPrefix+reminder.ID)
	pipe.SRem(ctx, ownerRemindersKeyPrefix+reminder.OwnerID, reminder.ID)
	pipe.ZRem(ctx, dueIndexKey, reminder.ID)
	pipe.SRem(ctx, locatedIndexKey, reminder.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		tracing.RecordError(span, err)
		return err
	}

	if del.Val() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}
