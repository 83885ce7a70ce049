package runlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "stockmind:lock:"

// ErrLocked indica que outra instância já está executando o job
var ErrLocked = errors.New("job já em execução em outra instância")

// Lock representa um lock obtido
type Lock interface {
	Release(ctx context.Context) error
}

// Locker obtém locks exclusivos por nome de job
type Locker interface {
	Obtain(ctx context.Context, job string, ttl time.Duration) (Lock, error)
}

type redisLocker struct {
	client *redislock.Client
}

// New retorna um Locker baseado em Redis quando a URL é informada.
// Sem URL o lock é apenas local (o mutex do agendador já protege o processo).
func New(ctx context.Context, redisURL string) (Locker, error) {
	if redisURL == "" {
		logrus.Info("REDIS_URL não configurada, lock distribuído desabilitado")
		return NoopLocker{}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	logrus.WithField("addr", opts.Addr).Info("Lock distribuído habilitado via Redis")

	return NewRedisLocker(redislock.New(rdb)), nil
}

func NewRedisLocker(client *redislock.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Obtain(ctx context.Context, job string, ttl time.Duration) (Lock, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+job, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao obter lock %s: %w", job, err)
	}

	return lock, nil
}

// NoopLocker sempre concede o lock
type NoopLocker struct{}

func (NoopLocker) Obtain(context.Context, string, time.Duration) (Lock, error) {
	return noopLock{}, nil
}

type noopLock struct{}

func (noopLock) Release(context.Context) error { return nil }
