// internal/store/redis.go
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newthinker/prospect/internal/core"
)

// RedisOptions holds redis connection settings.
type RedisOptions struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Redis is a Backend on a redis server. Artifact paths become keys under
// a namespace prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects and pings the server.
func NewRedis(opts RedisOptions) (*Redis, error) {
	if opts.Prefix == "" {
		opts.Prefix = "prospect"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "redis ping %s: %v", opts.Addr, err)
	}
	return &Redis{client: client, prefix: opts.Prefix}, nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(path string) string {
	return r.prefix + ":" + path
}

func (r *Redis) Write(ctx context.Context, path string, data []byte) error {
	if err := r.client.Set(ctx, r.key(path), data, 0).Err(); err != nil {
		return core.Wrapf(core.ErrStoreFailed, "set %s: %v", path, err)
	}
	return nil
}

func (r *Redis) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.Wrapf(core.ErrNotFound, "%s", path)
	}
	if err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "get %s: %v", path, err)
	}
	return data, nil
}

func (r *Redis) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		paths = append(paths, strings.TrimPrefix(iter.Val(), r.prefix+":"))
	}
	if err := iter.Err(); err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "scan %s: %v", prefix, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *Redis) Delete(ctx context.Context, path string) error {
	if err := r.client.Del(ctx, r.key(path)).Err(); err != nil {
		return core.Wrapf(core.ErrStoreFailed, "del %s: %v", path, err)
	}
	return nil
}

func (r *Redis) Exists(ctx context.Context, path string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(path)).Result()
	if err != nil {
		return false, core.Wrapf(core.ErrStoreFailed, "exists %s: %v", path, err)
	}
	return n > 0, nil
}
