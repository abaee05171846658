package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = NewTransactor(mock).WithTx(context.Background(), func(ctx context.Context) error {
		assert.True(t, InTx(ctx))
		_, err := Conn(ctx, mock).Exec(ctx, "UPDATE users SET is_active = true WHERE id = $1", int64(1))
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = NewTransactor(mock).WithTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_JoinsOuterTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// one Begin/Commit pair for both levels
	mock.ExpectBegin()
	mock.ExpectCommit()

	tr := NewTransactor(mock)
	err = tr.WithTx(context.Background(), func(ctx context.Context) error {
		return tr.WithTx(ctx, func(inner context.Context) error {
			assert.True(t, InTx(inner))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_WithoutTxUsesPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.False(t, InTx(context.Background()))
	assert.Equal(t, Querier(mock), Conn(context.Background(), mock))
}
