package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type storedUser struct {
	User domain.User `json:"user"`
	Hash string      `json:"hash"`
}

// RedisUserRepository stores users as JSON blobs with username/email
// lookup indexes.
type RedisUserRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisUserRepository(client *redis.Client) ports.UserRepository {
	return &RedisUserRepository{client: client, prefix: "hostdeck:user:"}
}

func (r *RedisUserRepository) userKey(id string) string    { return r.prefix + id }
func (r *RedisUserRepository) indexKey(name string) string { return r.prefix + "index:" + name }
func (r *RedisUserRepository) allKey() string              { return r.prefix + "all" }
func (r *RedisUserRepository) counterKey() string          { return r.prefix + "next_id" }

func (r *RedisUserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	if exists, err := r.client.Exists(ctx, r.indexKey(user.Username)).Result(); err != nil {
		return fmt.Errorf("failed to check username index: %w", err)
	} else if exists > 0 {
		return domain.ErrDuplicateUsername
	}
	if exists, err := r.client.Exists(ctx, r.indexKey(user.Email)).Result(); err != nil {
		return fmt.Errorf("failed to check email index: %w", err)
	} else if exists > 0 {
		return domain.ErrDuplicateEmail
	}

	if user.ID == "" {
		n, err := r.client.Incr(ctx, r.counterKey()).Result()
		if err != nil {
			return fmt.Errorf("failed to allocate user id: %w", err)
		}
		user.ID = strconv.FormatInt(n, 10)
	}

	return r.write(ctx, user, passwordHash)
}

func (r *RedisUserRepository) write(ctx context.Context, user *domain.User, passwordHash string) error {
	data, err := json.Marshal(storedUser{User: *user, Hash: passwordHash})
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.userKey(user.ID), data, 0)
	pipe.Set(ctx, r.indexKey(user.Username), user.ID, 0)
	pipe.Set(ctx, r.indexKey(user.Email), user.ID, 0)
	pipe.SAdd(ctx, r.allKey(), user.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

func (r *RedisUserRepository) read(ctx context.Context, id string) (*storedUser, error) {
	data, err := r.client.Get(ctx, r.userKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	var rec storedUser
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &rec, nil
}

func (r *RedisUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	rec, err := r.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec.User, nil
}

func (r *RedisUserRepository) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, string, error) {
	id, err := r.client.Get(ctx, r.indexKey(usernameOrEmail)).Result()
	if err == redis.Nil {
		return nil, "", domain.ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve user index: %w", err)
	}
	rec, err := r.read(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return &rec.User, rec.Hash, nil
}

func (r *RedisUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ids, err := r.client.SMembers(ctx, r.allKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		rec, err := r.read(ctx, id)
		if err == domain.ErrUserNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, &rec.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisUserRepository) Update(ctx context.Context, user *domain.User) error {
	rec, err := r.read(ctx, user.ID)
	if err != nil {
		return err
	}
	return r.write(ctx, user, rec.Hash)
}

func (r *RedisUserRepository) Delete(ctx context.Context, id string) error {
	rec, err := r.read(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.userKey(id))
	pipe.Del(ctx, r.indexKey(rec.User.Username))
	pipe.Del(ctx, r.indexKey(rec.User.Email))
	pipe.SRem(ctx, r.allKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
