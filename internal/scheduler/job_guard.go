package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/pkg/runlock"
)

// jobGuard impede execuções sobrepostas do mesmo job, no processo e entre instâncias
type jobGuard struct {
	name                string
	locker              runlock.Locker
	lockTTL             time.Duration
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func newJobGuard(name string, locker runlock.Locker, lockTTL time.Duration) *jobGuard {
	if locker == nil {
		locker = runlock.NoopLocker{}
	}
	return &jobGuard{
		name:    name,
		locker:  locker,
		lockTTL: lockTTL,
	}
}

func (g *jobGuard) running() bool {
	g.syncMutex.Lock()
	defer g.syncMutex.Unlock()
	return g.syncRunning
}

// acquire retorna ErrSyncInProgress quando o job já está rodando aqui ou em outra instância
func (g *jobGuard) acquire(ctx context.Context) (func(), error) {
	g.syncMutex.Lock()
	if g.syncRunning {
		g.syncMutex.Unlock()
		return nil, domain.ErrSyncInProgress
	}
	g.syncRunning = true
	g.lastSyncStartedAt = time.Now()
	g.syncMutex.Unlock()

	lock, err := g.locker.Obtain(ctx, g.name, g.lockTTL)
	if err != nil {
		g.finish()
		if errors.Is(err, runlock.ErrLocked) {
			return nil, domain.ErrSyncInProgress
		}
		return nil, err
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil {
			logrus.WithError(err).WithField("job", g.name).Warn("Erro ao liberar lock do job")
		}
		g.syncMutex.Lock()
		g.lastSyncCompletedAt = time.Now()
		g.syncMutex.Unlock()
		g.finish()
	}, nil
}

func (g *jobGuard) finish() {
	g.syncMutex.Lock()
	g.syncRunning = false
	g.syncMutex.Unlock()
}

func (g *jobGuard) status() (running bool, startedAt, completedAt time.Time) {
	g.syncMutex.Lock()
	defer g.syncMutex.Unlock()
	return g.syncRunning, g.lastSyncStartedAt, g.lastSyncCompletedAt
}
