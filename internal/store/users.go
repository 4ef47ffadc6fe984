package store

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"

	"ethersheet/internal/models"
)

const userKeyPrefix = "user:"

// palette colors presence cursors; assignment is deterministic per user id so
// a user renders the same everywhere.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#17becf",
}

// RedisUserDirectory keeps one hash per user under "user:{id}" with fields
// name, color and created_at.
type RedisUserDirectory struct {
	rdb *redis.Client
}

func NewRedisUserDirectory(rdb *redis.Client) *RedisUserDirectory {
	return &RedisUserDirectory{rdb: rdb}
}

func (d *RedisUserDirectory) FindOrCreate(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, ErrEmptyID
	}
	key := userKeyPrefix + userID

	created, err := d.rdb.HSetNX(ctx, key, "created_at", time.Now().UTC().Format(time.RFC3339Nano)).Result()
	if err != nil {
		return models.User{}, fmt.Errorf("create user %q: %w", userID, err)
	}
	if created {
		if err := d.rdb.HSet(ctx, key, "name", userID, "color", colorFor(userID)).Err(); err != nil {
			return models.User{}, fmt.Errorf("init user %q: %w", userID, err)
		}
	}

	fields, err := d.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return models.User{}, fmt.Errorf("load user %q: %w", userID, err)
	}
	user := models.User{ID: userID, Name: fields["name"], Color: fields["color"]}
	if ts, perr := time.Parse(time.RFC3339Nano, fields["created_at"]); perr == nil {
		user.CreatedAt = ts
	}
	return user, nil
}

func colorFor(userID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return palette[h.Sum32()%uint32(len(palette))]
}
