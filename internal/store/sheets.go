package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ethersheet/internal/models"
)

const sheetKeyPrefix = "sheet:"

// RedisSheetStore keeps one hash per sheet under "sheet:{id}" with fields
// data and created_at.
type RedisSheetStore struct {
	rdb *redis.Client
}

func NewRedisSheetStore(rdb *redis.Client) *RedisSheetStore {
	return &RedisSheetStore{rdb: rdb}
}

func (s *RedisSheetStore) FindOrCreate(ctx context.Context, sheetID string) (models.Sheet, error) {
	if sheetID == "" {
		return models.Sheet{}, ErrEmptyID
	}
	key := sheetKeyPrefix + sheetID

	// HSetNX makes creation atomic per id: the first caller stamps created_at,
	// everyone else reads the existing hash.
	created, err := s.rdb.HSetNX(ctx, key, "created_at", time.Now().UTC().Format(time.RFC3339Nano)).Result()
	if err != nil {
		return models.Sheet{}, fmt.Errorf("create sheet %q: %w", sheetID, err)
	}
	if created {
		if err := s.rdb.HSetNX(ctx, key, "data", "").Err(); err != nil {
			return models.Sheet{}, fmt.Errorf("init sheet %q: %w", sheetID, err)
		}
	}

	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return models.Sheet{}, fmt.Errorf("load sheet %q: %w", sheetID, err)
	}
	sheet := models.Sheet{ID: sheetID, Data: fields["data"]}
	if ts, perr := time.Parse(time.RFC3339Nano, fields["created_at"]); perr == nil {
		sheet.CreatedAt = ts
	}
	return sheet, nil
}

func (s *RedisSheetStore) Save(ctx context.Context, sheetID, data string) error {
	if sheetID == "" {
		return ErrEmptyID
	}
	key := sheetKeyPrefix + sheetID

	// Sheets may be saved before anyone has opened them, so stamp created_at
	// here too.
	if err := s.rdb.HSetNX(ctx, key, "created_at", time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("save sheet %q: %w", sheetID, err)
	}
	if err := s.rdb.HSet(ctx, key, "data", data).Err(); err != nil {
		return fmt.Errorf("save sheet %q: %w", sheetID, err)
	}
	return nil
}
