package repository

//go:generate mockgen -source=daily_sales.go -destination=mocks/daily_sales.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
	"github.com/Adrian140/Stockmind/internal/domain"
)

const (
	salesDailyTable = "sales_daily"
)

var salesDailyColumns = []string{
	"owner_id", "report_date", "marketplace", "asin", "sku", "title", "category",
	"units_total", "revenue_total", "net_profit", "roi", "cost_of_goods", "raw",
}

// Só atualiza quando algum campo mudou, assim linhas idênticas não contam como gravadas
const salesDailyUpsertSuffix = `
	ON CONFLICT (owner_id, sku, marketplace, report_date) DO UPDATE SET
		asin = EXCLUDED.asin,
		title = EXCLUDED.title,
		category = EXCLUDED.category,
		units_total = EXCLUDED.units_total,
		revenue_total = EXCLUDED.revenue_total,
		net_profit = EXCLUDED.net_profit,
		roi = EXCLUDED.roi,
		cost_of_goods = EXCLUDED.cost_of_goods,
		raw = EXCLUDED.raw,
		updated_at = NOW()
	WHERE (sales_daily.asin, sales_daily.title, sales_daily.category, sales_daily.units_total,
		sales_daily.revenue_total, sales_daily.net_profit, sales_daily.roi, sales_daily.cost_of_goods, sales_daily.raw)
		IS DISTINCT FROM
		(EXCLUDED.asin, EXCLUDED.title, EXCLUDED.category, EXCLUDED.units_total,
		EXCLUDED.revenue_total, EXCLUDED.net_profit, EXCLUDED.roi, EXCLUDED.cost_of_goods, EXCLUDED.raw)
`

type DailySalesRepository interface {
	UpsertBatch(ctx context.Context, ownerID string, records []domain.DailySalesRecord) (int64, error)
	ListRange(ctx context.Context, filter domain.DailySalesFilter) ([]domain.DailySalesRecord, error)
}

type dailySalesRepository struct {
	conn postgres.Queryer
}

func NewDailySalesRepository(conn postgres.Queryer) DailySalesRepository {
	return &dailySalesRepository{
		conn: conn,
	}
}

// UpsertBatch grava o lote em um único INSERT multi-linha e retorna as linhas efetivamente alteradas
func (r *dailySalesRepository) UpsertBatch(ctx context.Context, ownerID string, records []domain.DailySalesRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query := squirrel.StatementBuilder.
		Insert(salesDailyTable).
		Columns(salesDailyColumns...)

	for _, rec := range records {
		query = query.Values(
			ownerID,
			rec.ReportDate.Format(time.DateOnly),
			rec.Marketplace,
			rec.ASIN,
			rec.SKU,
			rec.Title,
			rec.Category,
			rec.UnitsTotal,
			rec.RevenueTotal,
			rec.NetProfit,
			rec.ROI,
			rec.CostOfGoods,
			rawJSON(rec.Raw),
		)
	}

	sqlQuery, args, err := query.
		Suffix(salesDailyUpsertSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *dailySalesRepository) ListRange(ctx context.Context, filter domain.DailySalesFilter) ([]domain.DailySalesRecord, error) {
	builder := squirrel.
		Select("id, owner_id, report_date, marketplace, asin, sku, title, category, units_total, revenue_total, net_profit, roi, cost_of_goods, created_at, updated_at").
		From(salesDailyTable).
		Where(squirrel.Eq{"owner_id": filter.OwnerID}).
		Where(squirrel.GtOrEq{"report_date": filter.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"report_date": filter.EndDate.Format(time.DateOnly)})

	if filter.Marketplace != nil {
		builder = builder.Where(squirrel.Eq{"marketplace": *filter.Marketplace})
	}

	builder = builder.OrderBy("report_date ASC", "sku ASC", "marketplace ASC", "id ASC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DailySalesRecord, 0)
	for rows.Next() {
		var rec domain.DailySalesRecord
		var cost sql.NullFloat64

		err := rows.Scan(
			&rec.ID,
			&rec.OwnerID,
			&rec.ReportDate,
			&rec.Marketplace,
			&rec.ASIN,
			&rec.SKU,
			&rec.Title,
			&rec.Category,
			&rec.UnitsTotal,
			&rec.RevenueTotal,
			&rec.NetProfit,
			&rec.ROI,
			&cost,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas diárias: %w", err)
		}

		rec.ReportDate = domain.DateOnly(rec.ReportDate)
		if cost.Valid {
			c := cost.Float64
			rec.CostOfGoods = &c
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// rawJSON converte o registro bruto para texto; o driver envia []byte como bytea
func rawJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
