package migration

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
)

//go:embed schema.sql
var Schema string

// Apply cria as tabelas e a função de atualização de produtos, se ainda não existirem.
// O schema inteiro roda em uma única transação.
func Apply(ctx context.Context, conn *postgres.Connection) error {
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, Schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("erro ao aplicar o schema: %w", err)
	}
	return nil
}
