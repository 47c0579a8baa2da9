package postgresql

import (
	"context"

	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by the context when the call
// happens inside database.TxRunner.RunInTx, the pool otherwise. Every
// repository goes through this so service transactions compose.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
