package repository

import (
	"context"
	"testing"
	"time"

	"cosplay-booking/internal/data/entity"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEscrowRepository_MarkReleased(t *testing.T) {
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	escrow := &entity.EscrowTransaction{BaseSimple: entity.BaseSimple{ID: 3}, ReleasedAt: &at}

	t.Run("held escrow", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewEscrowRepository(mock, zap.NewNop())

		mock.ExpectExec("SET status = 'released'").
			WithArgs(int64(3), &at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.MarkReleased(context.Background(), escrow))
	})

	t.Run("already settled", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewEscrowRepository(mock, zap.NewNop())

		mock.ExpectExec("SET status = 'released'").
			WithArgs(int64(3), &at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.Error(t, repo.MarkReleased(context.Background(), escrow))
	})
}

func TestEscrowRepository_FindAllByStatus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEscrowRepository(mock, zap.NewNop())

	status := "held"
	mock.ExpectQuery(`WHERE status = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(status, 20, 0).
		WillReturnRows(mock.NewRows([]string{
			"id", "booking_id", "payment_id", "customer_id", "cosplayer_id", "amount", "status",
			"transaction_code", "refund_reason", "released_at", "refunded_at", "created_at",
		}))

	got, err := repo.FindAll(context.Background(), &status, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
