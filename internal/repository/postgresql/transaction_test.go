package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/database"
)

type fakeTx struct {
	pgx.Tx
}

func TestGetQuerierPrefersContextTransaction(t *testing.T) {
	db := &database.DB{}
	tx := fakeTx{}

	q := GetQuerier(ContextWithTx(context.Background(), tx), db)
	assert.Equal(t, tx, q)
}

func TestGetQuerierFallsBackToPool(t *testing.T) {
	db := &database.DB{}

	q := GetQuerier(context.Background(), db)
	assert.Equal(t, db.Pool, q)
}
