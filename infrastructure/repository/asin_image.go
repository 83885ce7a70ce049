package repository

//go:generate mockgen -source=asin_image.go -destination=mocks/asin_image.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
	"github.com/Adrian140/Stockmind/internal/domain"
)

const (
	asinImagesTable = "asin_images"
)

type AsinImageRepository interface {
	Get(ctx context.Context, ownerID, asin string) (*domain.AsinImageCacheEntry, error)
	Save(ctx context.Context, entry domain.AsinImageCacheEntry) error
}

type asinImageRepository struct {
	conn postgres.Queryer
}

func NewAsinImageRepository(conn postgres.Queryer) AsinImageRepository {
	return &asinImageRepository{
		conn: conn,
	}
}

// Get retorna nil quando o ASIN ainda não tem imagem em cache
func (r *asinImageRepository) Get(ctx context.Context, ownerID, asin string) (*domain.AsinImageCacheEntry, error) {
	query, args, err := squirrel.
		Select("owner_id, asin, image_url, source, updated_at").
		From(asinImagesTable).
		Where(squirrel.Eq{"owner_id": ownerID, "asin": asin}).
		Where(squirrel.NotEq{"image_url": ""}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.AsinImageCacheEntry{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&entry.OwnerID,
		&entry.ASIN,
		&entry.ImageURL,
		&entry.Source,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear imagem do ASIN: %w", err)
	}

	return entry, nil
}

func (r *asinImageRepository) Save(ctx context.Context, entry domain.AsinImageCacheEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(asinImagesTable).
		Columns("owner_id", "asin", "image_url", "source").
		Values(entry.OwnerID, entry.ASIN, entry.ImageURL, entry.Source).
		Suffix(`
			ON CONFLICT (owner_id, asin) DO UPDATE SET
				image_url = EXCLUDED.image_url,
				source = EXCLUDED.source,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
