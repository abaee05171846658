package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransactionType string

const (
	WalletTxTopUp         WalletTransactionType = "topup"
	WalletTxDebit         WalletTransactionType = "debit"
	WalletTxRefund        WalletTransactionType = "refund"
	WalletTxEscrowRelease WalletTransactionType = "escrow_release"
)

// IsCredit reports whether the type increases the balance.
func (t WalletTransactionType) IsCredit() bool {
	return t != WalletTxDebit
}

type WalletTransactionStatus string

const (
	WalletTxPending   WalletTransactionStatus = "pending"
	WalletTxCompleted WalletTransactionStatus = "completed"
	WalletTxFailed    WalletTransactionStatus = "failed"
)

// WalletTransaction is an append-only ledger row. Amount is always positive;
// Type decides the sign. Pending top-ups carry no BalanceAfter yet.
type WalletTransaction struct {
	BaseSimple
	UserID       int64                   `db:"user_id"`
	Code         string                  `db:"code"`
	OrderCode    *int64                  `db:"order_code"`
	Type         WalletTransactionType   `db:"type"`
	Amount       decimal.Decimal         `db:"amount"`
	Description  string                  `db:"description"`
	ReferenceID  *string                 `db:"reference_id"`
	Status       WalletTransactionStatus `db:"status"`
	BalanceAfter *decimal.Decimal        `db:"balance_after"`
	ProcessedAt  *time.Time              `db:"processed_at"`
}
