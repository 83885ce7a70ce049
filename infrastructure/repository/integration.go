package repository

//go:generate mockgen -source=integration.go -destination=mocks/integration.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
)

type IntegrationRepository interface {
	ListKeepaKeys(ctx context.Context, ownerIDs []string) (map[string]string, error)
}

type integrationRepository struct {
	conn postgres.Queryer
}

func NewIntegrationRepository(conn postgres.Queryer) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

// ListKeepaKeys retorna a chave do Keepa de cada dono informado que configurou uma
func (r *integrationRepository) ListKeepaKeys(ctx context.Context, ownerIDs []string) (map[string]string, error) {
	keys := make(map[string]string)
	if len(ownerIDs) == 0 {
		return keys, nil
	}

	query, args, err := squirrel.
		Select("owner_id, keepa_api_key").
		From("integrations").
		Where(squirrel.Eq{"owner_id": ownerIDs}).
		Where(squirrel.NotEq{"keepa_api_key": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID, key string
		if err := rows.Scan(&ownerID, &key); err != nil {
			return nil, fmt.Errorf("erro ao escanear integração: %w", err)
		}
		if key = strings.TrimSpace(key); key != "" {
			keys[ownerID] = key
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return keys, nil
}
