package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Adrian140/Stockmind/infrastructure/integrator/keepa"
	"github.com/Adrian140/Stockmind/infrastructure/repository"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/pkg/log"
	"github.com/Adrian140/Stockmind/pkg/metrics"
	"github.com/Adrian140/Stockmind/pkg/runlock"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

const (
	KeepaImagesJob     = "keepa-images"
	keepaImagesLockTTL = 12 * time.Hour
)

// KeepaImageSyncConfig representa a configuração do agendador de imagens
type KeepaImageSyncConfig struct {
	CronSchedule    string
	TargetOwnerID   string
	PoolKeys        []string
	TokensPerMinute int
	BatchSize       int
	ItemsPerRun     int
	SyncEnabled     bool
}

// Pacer espaça as chamadas externas
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewRatePacer libera uma chamada a cada 60s/tokensPerMinute, sem rajadas
func NewRatePacer(tokensPerMinute int) Pacer {
	if tokensPerMinute < 1 {
		tokensPerMinute = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(tokensPerMinute)), 1)
}

// KeepaImageSyncService resolve as imagens dos produtos sem imagem usando o Keepa
type KeepaImageSyncService struct {
	scheduler       *gocron.Scheduler
	config          KeepaImageSyncConfig
	productRepo     repository.ProductRepository
	asinImageRepo   repository.AsinImageRepository
	integrationRepo repository.IntegrationRepository
	keepaService    keepa.KeepaIntegrator
	newPacer        func(tokensPerMinute int) Pacer
	guard           *jobGuard
	lastSummary     *domain.ImageSyncSummary
}

func NewKeepaImageSyncService(
	productRepo repository.ProductRepository,
	asinImageRepo repository.AsinImageRepository,
	integrationRepo repository.IntegrationRepository,
	keepaService keepa.KeepaIntegrator,
	locker runlock.Locker,
	appConfig *config.Config,
) *KeepaImageSyncService {
	syncConfig := KeepaImageSyncConfig{
		CronSchedule:    appConfig.KeepaImageSync.CronSchedule,
		TargetOwnerID:   appConfig.Keepa.TargetOwnerID,
		PoolKeys:        appConfig.Keepa.APIKeys,
		TokensPerMinute: appConfig.Keepa.TokensPerMinute,
		BatchSize:       appConfig.Keepa.BatchSize,
		ItemsPerRun:     appConfig.Keepa.ItemsPerRun,
		SyncEnabled:     appConfig.KeepaImageSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":     syncConfig.CronSchedule,
		"tokens_per_minute": syncConfig.TokensPerMinute,
		"batch_size":        syncConfig.BatchSize,
		"items_per_run":     syncConfig.ItemsPerRun,
		"pool_keys":         len(syncConfig.PoolKeys),
		"sync_enabled":      syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de imagens do Keepa carregada")

	return &KeepaImageSyncService{
		scheduler:       gocron.NewScheduler(time.UTC),
		config:          syncConfig,
		productRepo:     productRepo,
		asinImageRepo:   asinImageRepo,
		integrationRepo: integrationRepo,
		keepaService:    keepaService,
		newPacer:        NewRatePacer,
		guard:           newJobGuard(KeepaImagesJob, locker, keepaImagesLockTTL),
	}
}

// Start inicia o agendador
func (s *KeepaImageSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de imagens do Keepa desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de imagens do Keepa")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de imagens do Keepa: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de imagens do Keepa")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *KeepaImageSyncService) runScheduled(ctx context.Context) {
	summary, err := s.Run(ctx, s.config.BatchSize, s.config.ItemsPerRun)
	if errors.Is(err, domain.ErrSyncInProgress) {
		logrus.Info("Sincronização de imagens do Keepa já em andamento, ignorando")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Erro na sincronização de imagens do Keepa")
	}
	if summary != nil {
		logrus.WithFields(logrus.Fields{
			"run_id":            summary.RunID,
			"processed":         summary.Processed,
			"found":             summary.Found,
			"stopped_for_quota": summary.StoppedForQuota,
		}).Info("Sincronização agendada de imagens do Keepa concluída")
	}
}

// credentialPool distribui as chaves compartilhadas em rodízio; o cursor vive só durante a execução
type credentialPool struct {
	keys   []string
	cursor int
}

func (p *credentialPool) next() (string, bool) {
	if len(p.keys) == 0 {
		return "", false
	}
	key := p.keys[p.cursor%len(p.keys)]
	p.cursor++
	return key, true
}

// imageRunContext concentra o estado de uma execução
type imageRunContext struct {
	ownerKeys map[string]string
	pool      *credentialPool
	pacer     Pacer
	summary   *domain.ImageSyncSummary
}

// credentialFor prefere a chave do próprio dono e recorre ao pool
func (rc *imageRunContext) credentialFor(ownerID string) (domain.SyncCredential, bool) {
	if key := rc.ownerKeys[ownerID]; key != "" {
		return domain.SyncCredential{Key: key, Origin: domain.CredentialOriginOwner}, true
	}
	if key, ok := rc.pool.next(); ok {
		return domain.SyncCredential{Key: key, Origin: domain.CredentialOriginPool}, true
	}
	return domain.SyncCredential{}, false
}

// Run processa até batchSize candidatos (limitado a [50, 2000]) e no máximo maxItems
// itens quando maxItems > 0. A execução para na primeira resposta de cota esgotada.
func (s *KeepaImageSyncService) Run(ctx context.Context, batchSize, maxItems int) (*domain.ImageSyncSummary, error) {
	release, err := s.guard.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador da execução: %w", err)
	}

	batchSize = config.ClampBatchSize(batchSize)
	if maxItems < 0 {
		maxItems = 0
	}

	summary := &domain.ImageSyncSummary{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
	}
	defer s.finish(summary)

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx).WithFields(logrus.Fields{
		"batch_size": batchSize,
		"max_items":  maxItems,
	})

	candidates, err := s.productRepo.ListMissingImages(ctx, s.config.TargetOwnerID, uint64(batchSize))
	if err != nil {
		return summary, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	candidates = dedupeCandidates(candidates)
	summary.TotalScanned = len(candidates)

	rc := &imageRunContext{
		ownerKeys: s.loadOwnerKeys(ctx, candidates),
		pool:      &credentialPool{keys: s.config.PoolKeys},
		pacer:     s.newPacer(s.config.TokensPerMinute),
		summary:   summary,
	}

	logger.WithField("candidates", len(candidates)).Info("Iniciando sincronização de imagens do Keepa")

	for _, candidate := range candidates {
		if maxItems > 0 && summary.Processed >= maxItems {
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Processed++

		stop, err := s.processCandidate(ctx, rc, candidate)
		if err != nil {
			return summary, err
		}
		if stop {
			break
		}
	}

	logger.WithFields(logrus.Fields{
		"processed":         summary.Processed,
		"found":             summary.Found,
		"reused_from_cache": summary.ReusedFromCache,
		"not_found":         summary.NotFound,
		"failed":            summary.Failed,
		"stopped_for_quota": summary.StoppedForQuota,
	}).Info("Sincronização de imagens do Keepa concluída")

	return summary, nil
}

// processCandidate retorna stop=true quando a cota acabou e erro quando a gravação falhou
func (s *KeepaImageSyncService) processCandidate(ctx context.Context, rc *imageRunContext, candidate domain.ImageCandidate) (bool, error) {
	summary := rc.summary
	logger := log.ForContext(ctx).WithFields(logrus.Fields{
		"owner_id":    candidate.OwnerID,
		"asin":        candidate.ASIN,
		"marketplace": candidate.Marketplace,
	})

	cached, err := s.asinImageRepo.Get(ctx, candidate.OwnerID, candidate.ASIN)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if cached != nil && cached.ImageURL != "" {
		if _, err := s.productRepo.ApplyImage(ctx, candidate.OwnerID, candidate.ASIN, cached.ImageURL); err != nil {
			return false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		summary.ReusedFromCache++
		metrics.ImageResults.WithLabelValues("reused").Inc()
		return false, nil
	}

	credential, ok := rc.credentialFor(candidate.OwnerID)
	if !ok {
		summary.Failed++
		metrics.ImageResults.WithLabelValues("failed").Inc()
		logger.WithError(domain.ErrCredentialUnavailable).Warn("Nenhuma chave do Keepa disponível para o produto")
		return false, nil
	}

	if err := rc.pacer.Wait(ctx); err != nil {
		return false, err
	}

	lookup, err := s.keepaService.LookupImage(ctx, credential.Key, candidate.ASIN, candidate.Marketplace)
	if err != nil {
		summary.Failed++
		metrics.ImageResults.WithLabelValues("failed").Inc()
		if errors.Is(err, domain.ErrQuotaExhausted) {
			summary.StoppedForQuota = true
			logger.WithError(err).Warn("Cota do Keepa esgotada, interrompendo a execução")
			return true, nil
		}
		logger.WithError(err).WithField("credential", credential.Origin).Warn("Erro ao consultar imagem no Keepa")
		return false, nil
	}

	if !lookup.Found() {
		summary.NotFound++
		metrics.ImageResults.WithLabelValues("not_found").Inc()
		return false, nil
	}

	entry := domain.AsinImageCacheEntry{
		OwnerID:  candidate.OwnerID,
		ASIN:     candidate.ASIN,
		ImageURL: lookup.ImageURL,
		Source:   domain.AsinImageSourceKeepa,
	}
	if err := s.asinImageRepo.Save(ctx, entry); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if _, err := s.productRepo.ApplyImage(ctx, candidate.OwnerID, candidate.ASIN, lookup.ImageURL); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	summary.Found++
	metrics.ImageResults.WithLabelValues("found").Inc()

	return false, nil
}

// loadOwnerKeys busca uma única vez as chaves próprias dos donos dos candidatos
func (s *KeepaImageSyncService) loadOwnerKeys(ctx context.Context, candidates []domain.ImageCandidate) map[string]string {
	seen := make(map[string]struct{})
	ownerIDs := make([]string, 0)
	for _, c := range candidates {
		if _, ok := seen[c.OwnerID]; ok || c.OwnerID == "" {
			continue
		}
		seen[c.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, c.OwnerID)
	}
	if len(ownerIDs) == 0 {
		return map[string]string{}
	}

	keys, err := s.integrationRepo.ListKeepaKeys(ctx, ownerIDs)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao carregar chaves do Keepa dos donos, usando apenas o pool")
		return map[string]string{}
	}
	return keys
}

func dedupeCandidates(candidates []domain.ImageCandidate) []domain.ImageCandidate {
	type key struct{ owner, asin string }

	seen := make(map[key]struct{}, len(candidates))
	unique := make([]domain.ImageCandidate, 0, len(candidates))
	for _, c := range candidates {
		k := key{c.OwnerID, c.ASIN}
		if _, ok := seen[k]; ok || c.ASIN == "" {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

func (s *KeepaImageSyncService) finish(summary *domain.ImageSyncSummary) {
	summary.FinishedAt = time.Now().UTC()
	metrics.SyncDuration.WithLabelValues(KeepaImagesJob).Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())

	s.guard.syncMutex.Lock()
	s.lastSummary = summary
	s.guard.syncMutex.Unlock()
}

// TriggerManualSync executa a sincronização em segundo plano com os limites configurados
func (s *KeepaImageSyncService) TriggerManualSync() {
	if s.guard.running() {
		logrus.Info("Sincronização de imagens do Keepa já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando sincronização manual de imagens do Keepa")
	go s.runScheduled(context.Background())
}

// DefaultLimits retorna o lote e o máximo de itens configurados
func (s *KeepaImageSyncService) DefaultLimits() (batchSize, maxItems int) {
	return s.config.BatchSize, s.config.ItemsPerRun
}

// GetStatus retorna o status atual do agendador
func (s *KeepaImageSyncService) GetStatus() map[string]any {
	running, startedAt, completedAt := s.guard.status()

	s.guard.syncMutex.Lock()
	lastSummary := s.lastSummary
	s.guard.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_batch_size":        s.config.BatchSize,
		"sync_items_per_run":     s.config.ItemsPerRun,
		"tokens_per_minute":      s.config.TokensPerMinute,
		"pool_keys":              len(s.config.PoolKeys),
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
	if lastSummary != nil {
		status["last_run_id"] = lastSummary.RunID
		status["last_processed"] = lastSummary.Processed
		status["last_stopped_for_quota"] = lastSummary.StoppedForQuota
	}

	return status
}
