package ingesting

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/infrastructure/repository"
	"github.com/Adrian140/Stockmind/internal/csvtable"
	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/internal/normalizer"
	"github.com/Adrian140/Stockmind/pkg/metrics"
)

// DefaultBatchSize é o tamanho de lote usado quando nenhum é informado
const DefaultBatchSize = 500

// Upserter grava registros diários sem duplicar linhas
type Upserter interface {
	Upsert(ctx context.Context, ownerID string, records []domain.DailySalesRecord, batchSize int) (int64, error)
}

// Importer importa arquivos exportados manualmente
type Importer interface {
	ImportFile(ctx context.Context, req ImportRequest) (*domain.ImportReport, error)
}

type Ingester interface {
	Upserter
	Importer
}

// ImportRequest descreve um arquivo enviado para importação
type ImportRequest struct {
	OwnerID     string
	Filename    string
	Reader      io.Reader
	Start       *time.Time
	End         *time.Time
	Marketplace string
}

type Service struct {
	salesRepo   repository.DailySalesRepository
	productRepo repository.ProductRepository
}

func NewService(salesRepo repository.DailySalesRepository, productRepo repository.ProductRepository) Ingester {
	return &Service{
		salesRepo:   salesRepo,
		productRepo: productRepo,
	}
}

// Dedupe remove duplicados pela chave (data, marketplace, SKU); a primeira ocorrência vence
func Dedupe(records []domain.DailySalesRecord) []domain.DailySalesRecord {
	seen := make(map[domain.DedupeKey]struct{}, len(records))
	unique := make([]domain.DailySalesRecord, 0, len(records))

	for _, rec := range records {
		key := rec.DedupeKey()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}

	return unique
}

// CollectSKUs retorna os SKUs distintos dos registros, ordenados
func CollectSKUs(records []domain.DailySalesRecord) []string {
	set := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if sku := strings.TrimSpace(rec.SKU); sku != "" {
			set[sku] = struct{}{}
		}
	}

	skus := make([]string, 0, len(set))
	for sku := range set {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	return skus
}

// Upsert grava os registros em lotes. O primeiro lote com erro interrompe os seguintes;
// os lotes anteriores continuam gravados e o total parcial é retornado junto com o erro.
func (s *Service) Upsert(ctx context.Context, ownerID string, records []domain.DailySalesRecord, batchSize int) (int64, error) {
	if ownerID == "" || len(records) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	unique := Dedupe(records)

	var total int64
	for start := 0; start < len(unique); start += batchSize {
		end := min(start+batchSize, len(unique))

		affected, err := s.salesRepo.UpsertBatch(ctx, ownerID, unique[start:end])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"owner_id": ownerID,
				"offset":   start,
				"size":     end - start,
			}).WithError(err).Error("Erro ao gravar lote de vendas diárias")

			return total, fmt.Errorf("%w: lote %d-%d: %w", domain.ErrPersistence, start, end, err)
		}
		total += affected
	}

	logrus.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"received":   len(records),
		"unique":     len(unique),
		"written":    total,
		"batch_size": batchSize,
	}).Debug("Vendas diárias gravadas")

	return total, nil
}

// ImportFile interpreta, normaliza e grava um arquivo exportado (CSV ou XLSX)
func (s *Service) ImportFile(ctx context.Context, req ImportRequest) (*domain.ImportReport, error) {
	if req.OwnerID == "" {
		return nil, domain.ErrOwnerRequired
	}

	table, err := csvtable.ParseFile(req.Filename, req.Reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o arquivo %s: %w", req.Filename, err)
	}

	marketplace := normalizer.DefaultMarketplace
	if req.Marketplace != "" {
		marketplace = normalizer.MapMarketplace(req.Marketplace)
	}

	result, err := normalizer.Normalize(table, normalizer.Options{
		Filename:           req.Filename,
		Start:              req.Start,
		End:                req.End,
		DefaultMarketplace: marketplace,
	})
	if err != nil {
		return nil, err
	}

	dropped := result.DroppedByReason()
	metrics.RecordDropped(dropped)

	report := &domain.ImportReport{
		Filename: req.Filename,
		Schema:   result.Schema.String(),
		Rows:     result.Rows,
		Records:  len(result.Records),
		Dropped:  dropped,
	}
	if result.Range != nil {
		report.Start = result.Range.Start.Format(time.DateOnly)
		report.End = result.Range.End.Format(time.DateOnly)
	}

	imported, err := s.Upsert(ctx, req.OwnerID, result.Records, DefaultBatchSize)
	report.Imported = imported
	if err != nil {
		return report, err
	}

	if imported > 0 {
		refreshed, err := s.productRepo.RefreshFromDailySKUs(ctx, req.OwnerID, CollectSKUs(result.Records), nil)
		if err != nil {
			logrus.WithError(err).WithField("owner_id", req.OwnerID).Warn("Erro ao atualizar produtos após a importação")
		}
		report.RefreshedSKU = refreshed
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": req.OwnerID,
		"filename": req.Filename,
		"schema":   report.Schema,
		"rows":     report.Rows,
		"imported": report.Imported,
	}).Info("Arquivo importado")

	return report, nil
}
