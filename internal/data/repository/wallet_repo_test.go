package repository

import (
	"context"
	"testing"
	"time"

	"cosplay-booking/internal/data/entity"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWalletRepository_CompletePending(t *testing.T) {
	balance := decimal.NewFromInt(500000)
	processed := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	tx := &entity.WalletTransaction{
		BaseSimple:   entity.BaseSimple{ID: 11},
		BalanceAfter: &balance,
		ProcessedAt:  &processed,
	}

	t.Run("pending row settles", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewWalletRepository(mock, zap.NewNop())

		mock.ExpectExec("UPDATE wallet_transactions").
			WithArgs(int64(11), &balance, &processed, tx.ReferenceID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.CompletePending(context.Background(), tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already settled row is rejected", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewWalletRepository(mock, zap.NewNop())

		mock.ExpectExec("UPDATE wallet_transactions").
			WithArgs(int64(11), &balance, &processed, tx.ReferenceID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.CompletePending(context.Background(), tx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not pending")
	})
}

func TestWalletRepository_SignedSum(t *testing.T) {
	mock := newMockPool(t)
	repo := NewWalletRepository(mock, zap.NewNop())

	mock.ExpectQuery("SUM\\(CASE WHEN type = 'debit' THEN -amount ELSE amount END\\)").
		WithArgs(int64(4)).
		WillReturnRows(mock.NewRows([]string{"sum"}).AddRow(decimal.NewFromInt(350000)))

	sum, err := repo.SignedSum(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(350000)))
}

func TestWalletRepository_FindByOrderCodeMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewWalletRepository(mock, zap.NewNop())

	mock.ExpectQuery("WHERE order_code = \\$1 FOR UPDATE").
		WithArgs(int64(999)).
		WillReturnRows(mock.NewRows([]string{"id"}))

	got, err := repo.FindByOrderCodeForUpdate(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}
