package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/infrastructure/integrator/sellerboard"
	"github.com/Adrian140/Stockmind/infrastructure/repository"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/internal/normalizer"
	"github.com/Adrian140/Stockmind/internal/usecases/ingesting"
	"github.com/Adrian140/Stockmind/pkg/log"
	"github.com/Adrian140/Stockmind/pkg/metrics"
	"github.com/Adrian140/Stockmind/pkg/runlock"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

const (
	DailySalesJob     = "daily-sales"
	dailySalesLockTTL = 30 * time.Minute
)

// DailySalesSyncConfig representa a configuração do agendador de vendas diárias
type DailySalesSyncConfig struct {
	CronSchedule string
	OwnerID      string
	BatchSize    int
	SyncEnabled  bool
}

// SyncRequest limita uma execução a um dono e, opcionalmente, a alguns marketplaces
type SyncRequest struct {
	OwnerID      string
	Marketplaces []string
}

// DailySalesSyncService baixa o relatório diário de cada marketplace e grava a data mais recente
type DailySalesSyncService struct {
	scheduler   *gocron.Scheduler
	config      DailySalesSyncConfig
	sellerboard sellerboard.SellerboardIntegrator
	upserter    ingesting.Upserter
	productRepo repository.ProductRepository
	guard       *jobGuard
	lastReport  *domain.DailySyncReport
}

func NewDailySalesSyncService(
	sellerboardService sellerboard.SellerboardIntegrator,
	upserter ingesting.Upserter,
	productRepo repository.ProductRepository,
	locker runlock.Locker,
	appConfig *config.Config,
) *DailySalesSyncService {
	syncConfig := DailySalesSyncConfig{
		CronSchedule: appConfig.DailySalesSync.CronSchedule,
		OwnerID:      appConfig.Sellerboard.OwnerID,
		BatchSize:    appConfig.DailySalesSync.BatchSize,
		SyncEnabled:  appConfig.DailySalesSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"batch_size":    syncConfig.BatchSize,
		"sync_enabled":  syncConfig.SyncEnabled,
		"markets":       len(sellerboardService.Sources()),
	}).Info("Configuração do agendador de vendas diárias carregada")

	return &DailySalesSyncService{
		scheduler:   gocron.NewScheduler(time.UTC),
		config:      syncConfig,
		sellerboard: sellerboardService,
		upserter:    upserter,
		productRepo: productRepo,
		guard:       newJobGuard(DailySalesJob, locker, dailySalesLockTTL),
	}
}

// Start inicia o agendador
func (s *DailySalesSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de vendas diárias desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de vendas diárias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de vendas diárias: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de vendas diárias")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DailySalesSyncService) runScheduled(ctx context.Context) {
	report, err := s.Sync(ctx, SyncRequest{OwnerID: s.config.OwnerID})
	if err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			logrus.Info("Sincronização de vendas diárias já em andamento, ignorando")
			return
		}
		logrus.WithError(err).Error("Erro na sincronização de vendas diárias")
		return
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"success":  report.Success,
		"imported": report.Imported,
		"failures": len(report.Failures),
	}).Info("Sincronização agendada de vendas diárias concluída")
}

// Sync processa os marketplaces em sequência. Uma falha em um marketplace é registrada
// no relatório e não impede os demais.
func (s *DailySalesSyncService) Sync(ctx context.Context, req SyncRequest) (*domain.DailySyncReport, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, domain.ErrOwnerRequired
	}

	sources := filterSources(s.sellerboard.Sources(), req.Marketplaces)
	if len(sources) == 0 {
		return nil, domain.ErrNoSourcesConfigured
	}

	release, err := s.guard.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador da execução: %w", err)
	}

	report := &domain.DailySyncReport{
		RunID:        runID,
		OwnerID:      req.OwnerID,
		Marketplaces: make([]domain.MarketplaceOutcome, 0, len(sources)),
		Failures:     make([]domain.SyncFailure, 0),
		StartedAt:    time.Now().UTC(),
	}

	ctx = log.WithOwnerID(log.WithRunID(ctx, runID), req.OwnerID)
	logger := log.ForContext(ctx).WithField("markets", len(sources))
	logger.Info("Iniciando sincronização de vendas diárias")

	synced := make([]domain.DailySalesRecord, 0)
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return s.finish(report), err
		}

		outcome, records, err := s.syncMarketplace(ctx, req.OwnerID, source)
		if err != nil {
			s.addFailure(ctx, report, source.Code, err)
			continue
		}

		report.Marketplaces = append(report.Marketplaces, *outcome)
		report.Imported += outcome.Imported
		synced = append(synced, records...)
	}

	if report.Imported > 0 {
		skus := ingesting.CollectSKUs(synced)
		refreshed, err := s.productRepo.RefreshFromDailySKUs(ctx, req.OwnerID, skus, nil)
		if err != nil {
			s.addFailure(ctx, report, "", domain.NewSyncError(err, domain.SyncStageRefresh, ""))
		} else {
			report.RefreshedSKU = refreshed
		}
	}

	s.finish(report)

	logger.WithFields(logrus.Fields{
		"success":   report.Success,
		"imported":  report.Imported,
		"refreshed": report.RefreshedSKU,
		"failures":  len(report.Failures),
		"duration":  report.FinishedAt.Sub(report.StartedAt).String(),
	}).Info("Sincronização de vendas diárias concluída")

	return report, nil
}

func (s *DailySalesSyncService) finish(report *domain.DailySyncReport) *domain.DailySyncReport {
	report.FinishedAt = time.Now().UTC()
	report.Success = len(report.Failures) == 0
	metrics.SyncDuration.WithLabelValues(DailySalesJob).Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	s.guard.syncMutex.Lock()
	s.lastReport = report
	s.guard.syncMutex.Unlock()

	return report
}

func (s *DailySalesSyncService) addFailure(ctx context.Context, report *domain.DailySyncReport, marketplace string, err error) {
	stage := domain.SyncStageFetch
	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) && syncErr.Code != "" {
		stage = syncErr.Code
	}

	metrics.SyncFailures.WithLabelValues(stage).Inc()
	log.ForContext(ctx).WithFields(logrus.Fields{
		"marketplace": marketplace,
		"stage":       stage,
	}).WithError(err).Error("Falha na sincronização do marketplace")

	report.Failures = append(report.Failures, domain.SyncFailure{
		Marketplace: marketplace,
		Stage:       stage,
		Error:       err.Error(),
	})
}

// syncMarketplace baixa, normaliza e grava somente a data mais recente do relatório
func (s *DailySalesSyncService) syncMarketplace(ctx context.Context, ownerID string, source config.MarketSource) (*domain.MarketplaceOutcome, []domain.DailySalesRecord, error) {
	table, err := s.sellerboard.FetchDailyReport(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	result, err := normalizer.Normalize(table, normalizer.Options{DefaultMarketplace: source.Code})
	if err != nil {
		return nil, nil, domain.NewSyncErrorForMarketplace(err, domain.SyncStageNormalize, source.Code, "")
	}

	dropped := result.DroppedByReason()
	metrics.RecordDropped(dropped)

	outcome := &domain.MarketplaceOutcome{
		Marketplace: source.Code,
		Rows:        result.Rows,
		Dropped:     dropped,
	}

	latest, ok := LatestReportDate(result.Records)
	if !ok {
		log.ForContext(ctx).WithField("marketplace", source.Code).Warn("Nenhuma linha válida no relatório diário")
		return outcome, nil, nil
	}
	outcome.ReportDate = latest.Format(time.DateOnly)

	records := FilterByReportDate(result.Records, latest)

	imported, err := s.upserter.Upsert(ctx, ownerID, records, s.config.BatchSize)
	if err != nil {
		return nil, nil, domain.NewSyncErrorForMarketplace(err, domain.SyncStageUpsert, source.Code, "")
	}
	outcome.Imported = imported
	metrics.ImportedRows.WithLabelValues(source.Code).Add(float64(imported))

	log.ForContext(ctx).WithFields(logrus.Fields{
		"marketplace": source.Code,
		"report_date": outcome.ReportDate,
		"rows":        result.Rows,
		"records":     len(records),
		"imported":    imported,
	}).Info("Marketplace sincronizado")

	return outcome, records, nil
}

// LatestReportDate retorna a maior data entre os registros
func LatestReportDate(records []domain.DailySalesRecord) (time.Time, bool) {
	var latest time.Time
	for _, rec := range records {
		if rec.ReportDate.After(latest) {
			latest = rec.ReportDate
		}
	}
	return latest, !latest.IsZero()
}

func FilterByReportDate(records []domain.DailySalesRecord, date time.Time) []domain.DailySalesRecord {
	filtered := make([]domain.DailySalesRecord, 0, len(records))
	for _, rec := range records {
		if rec.ReportDate.Equal(date) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// filterSources mantém a ordem configurada; sem filtro retorna todos
func filterSources(sources []config.MarketSource, codes []string) []config.MarketSource {
	if len(codes) == 0 {
		return sources
	}

	wanted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		wanted[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}

	filtered := make([]config.MarketSource, 0, len(sources))
	for _, source := range sources {
		if _, ok := wanted[source.Code]; ok {
			filtered = append(filtered, source)
		}
	}
	return filtered
}

// TriggerManualSync executa a sincronização em segundo plano
func (s *DailySalesSyncService) TriggerManualSync() {
	if s.guard.running() {
		logrus.Info("Sincronização de vendas diárias já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando sincronização manual de vendas diárias")
	go s.runScheduled(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DailySalesSyncService) GetStatus() map[string]any {
	running, startedAt, completedAt := s.guard.status()

	s.guard.syncMutex.Lock()
	lastReport := s.lastReport
	s.guard.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_batch_size":        s.config.BatchSize,
		"sync_running":           running,
		"markets":                len(s.sellerboard.Sources()),
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
	if lastReport != nil {
		status["last_run_id"] = lastReport.RunID
		status["last_success"] = lastReport.Success
		status["last_imported"] = lastReport.Imported
	}

	return status
}
