// Package migrations хранит схему БД, встроенную в бинарник
package migrations

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

//go:embed schema.sql
var Schema string

// Apply применяет схему. Все выражения идемпотентны (IF NOT EXISTS).
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
