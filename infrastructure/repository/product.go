package repository

//go:generate mockgen -source=product.go -destination=mocks/product.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
	"github.com/Adrian140/Stockmind/internal/domain"
)

const (
	productsTable = "products"
)

type ProductRepository interface {
	ListMissingImages(ctx context.Context, ownerID string, limit uint64) ([]domain.ImageCandidate, error)
	ApplyImage(ctx context.Context, ownerID, asin, imageURL string) (int64, error)
	RefreshFromDailySKUs(ctx context.Context, ownerID string, skus []string, marketplace *string) (int, error)
}

type productRepository struct {
	conn postgres.Queryer
}

func NewProductRepository(conn postgres.Queryer) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

// ListMissingImages retorna os produtos sem imagem, dos mais antigos para os mais novos
func (r *productRepository) ListMissingImages(ctx context.Context, ownerID string, limit uint64) ([]domain.ImageCandidate, error) {
	builder := squirrel.
		Select("owner_id, asin, marketplace, created_at").
		From(productsTable).
		Where(squirrel.Eq{"image_url": nil}).
		Where(squirrel.NotEq{"asin": ""}).
		OrderBy("created_at ASC").
		Limit(limit)

	if ownerID != "" {
		builder = builder.Where(squirrel.Eq{"owner_id": ownerID})
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

	candidates := make([]domain.ImageCandidate, 0)
	for rows.Next() {
		var c domain.ImageCandidate
		if err := rows.Scan(&c.OwnerID, &c.ASIN, &c.Marketplace, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return candidates, nil
}

// ApplyImage grava a imagem em todos os produtos do dono com o ASIN
func (r *productRepository) ApplyImage(ctx context.Context, ownerID, asin, imageURL string) (int64, error) {
	query, args, err := squirrel.
		Update(productsTable).
		Set("image_url", imageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": ownerID, "asin": asin}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// RefreshFromDailySKUs recalcula os produtos a partir das vendas diárias dos SKUs informados
func (r *productRepository) RefreshFromDailySKUs(ctx context.Context, ownerID string, skus []string, marketplace *string) (int, error) {
	if len(skus) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Select().
		Column(squirrel.Expr("refresh_products_from_daily_skus(?, ?, ?)", ownerID, pq.Array(skus), marketplace)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var refreshed int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&refreshed); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao atualizar produtos: %w", err)
	}

	return refreshed, nil
}
