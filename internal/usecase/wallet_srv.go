package usecase

import (
	"context"
	"fmt"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/dto/response"
	"cosplay-booking/pkg/database"
	"cosplay-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInsufficientFunds = utils.NewError(utils.ErrValidation, "insufficient wallet balance")

type WalletService interface {
	// Ledger primitives, joined to the caller's transaction when one is open
	Credit(ctx context.Context, userID int64, typ entity.WalletTransactionType, amount decimal.Decimal, description string, reference *string) (*entity.WalletTransaction, error)
	Debit(ctx context.Context, userID int64, amount decimal.Decimal, description string, reference *string) (*entity.WalletTransaction, error)

	// Top-up via payment gateway
	InitiateTopUp(ctx context.Context, userID int64, req *request.TopUpRequest) (*response.TopUpResponse, error)
	SettleTopUp(ctx context.Context, wtx *entity.WalletTransaction, success bool, reference string, amount int64) (bool, error)

	GetBalance(ctx context.Context, userID int64) (*response.BalanceResponse, error)
	GetHistory(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WalletTransactionResponse], error)
	Reconcile(ctx context.Context, userID int64) (*response.ReconcileResponse, error)
}

type walletService struct {
	repo    *repository.Repository
	tx      database.Transactor
	gateway PaymentGateway
	log     *zap.Logger
}

func NewWalletService(repo *repository.Repository, tx database.Transactor, gateway PaymentGateway, log *zap.Logger) WalletService {
	return &walletService{
		repo:    repo,
		tx:      tx,
		gateway: gateway,
		log:     log.With(zap.String("service", "wallet")),
	}
}

func (s *walletService) Credit(ctx context.Context, userID int64, typ entity.WalletTransactionType, amount decimal.Decimal, description string, reference *string) (*entity.WalletTransaction, error) {
	if !typ.IsCredit() {
		return nil, fmt.Errorf("wallet type %s is not a credit", typ)
	}
	return s.apply(ctx, userID, typ, amount, description, reference)
}

func (s *walletService) Debit(ctx context.Context, userID int64, amount decimal.Decimal, description string, reference *string) (*entity.WalletTransaction, error) {
	return s.apply(ctx, userID, entity.WalletTxDebit, amount, description, reference)
}

// apply appends one completed ledger row and moves the cached balance with it.
func (s *walletService) apply(ctx context.Context, userID int64, typ entity.WalletTransactionType, amount decimal.Decimal, description string, reference *string) (*entity.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, utils.Validation("amount must be greater than zero")
	}

	var out *entity.WalletTransaction

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		// 1. Lock user row
		user, err := s.repo.User.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return utils.NotFound("user %d not found", userID)
		}

		// 2. Hitung saldo baru
		balance := user.WalletBalance
		if typ.IsCredit() {
			balance = balance.Add(amount)
		} else {
			if balance.LessThan(amount) {
				s.log.Warn("Insufficient wallet balance",
					zap.Int64("user_id", userID),
					zap.String("balance", user.WalletBalance.String()),
					zap.String("amount", amount.String()),
				)
				return ErrInsufficientFunds
			}
			balance = balance.Sub(amount)
		}

		// 3. Append ledger row
		now := time.Now()
		wtx := &entity.WalletTransaction{
			BaseSimple:   entity.BaseSimple{CreatedAt: now},
			UserID:       userID,
			Code:         utils.GenerateWalletCode(now),
			Type:         typ,
			Amount:       amount,
			Description:  description,
			ReferenceID:  reference,
			Status:       entity.WalletTxCompleted,
			BalanceAfter: &balance,
			ProcessedAt:  &now,
		}
		if err := s.repo.Wallet.Create(ctx, wtx); err != nil {
			return err
		}

		// 4. Update cached balance
		if err := s.repo.User.UpdateWalletBalance(ctx, userID, balance); err != nil {
			return err
		}

		out = wtx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Wallet transaction applied",
		zap.Int64("user_id", userID),
		zap.String("code", out.Code),
		zap.String("type", string(typ)),
		zap.String("amount", amount.String()),
	)

	return out, nil
}

func (s *walletService) InitiateTopUp(ctx context.Context, userID int64, req *request.TopUpRequest) (*response.TopUpResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Top up validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}
	if !req.Amount.Equal(req.Amount.Truncate(0)) {
		return nil, utils.Validation("amount must be a whole number")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("user %d not found", userID)
	}

	// 2. Pending row, saldo belum berubah
	now := time.Now()
	orderCode := utils.GenerateOrderCode(now)
	wtx := &entity.WalletTransaction{
		BaseSimple:  entity.BaseSimple{CreatedAt: now},
		UserID:      userID,
		Code:        utils.GenerateWalletCode(now),
		OrderCode:   &orderCode,
		Type:        entity.WalletTxTopUp,
		Amount:      req.Amount,
		Description: "Wallet top up",
		Status:      entity.WalletTxPending,
	}
	if err := s.repo.Wallet.Create(ctx, wtx); err != nil {
		return nil, err
	}

	// 3. Checkout link
	link, err := s.gateway.CreatePaymentLink(ctx, orderCode, req.Amount.IntPart(), fmt.Sprintf("Topup %d", orderCode))
	if err != nil {
		s.log.Error("Failed to create top up payment link",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("order_code", orderCode),
		)
		if ferr := s.repo.Wallet.FailPending(ctx, wtx.ID); ferr != nil {
			s.log.Warn("Failed to mark top up failed", zap.Error(ferr), zap.Int64("wallet_tx_id", wtx.ID))
		}
		return nil, utils.External(err, "payment gateway unavailable")
	}

	s.log.Info("Top up initiated",
		zap.Int64("user_id", userID),
		zap.Int64("order_code", orderCode),
		zap.String("amount", req.Amount.String()),
	)

	return &response.TopUpResponse{
		TransactionID: wtx.ID,
		Code:          wtx.Code,
		OrderCode:     orderCode,
		Amount:        wtx.Amount,
		CheckoutURL:   link.CheckoutURL,
	}, nil
}

// SettleTopUp applies a verified gateway result to a locked top-up row.
// It reports false when the row was already settled.
func (s *walletService) SettleTopUp(ctx context.Context, wtx *entity.WalletTransaction, success bool, reference string, amount int64) (bool, error) {
	if wtx.Status != entity.WalletTxPending {
		s.log.Info("Top up already settled",
			zap.Int64("wallet_tx_id", wtx.ID),
			zap.String("status", string(wtx.Status)),
		)
		return false, nil
	}

	if !success {
		if err := s.repo.Wallet.FailPending(ctx, wtx.ID); err != nil {
			return false, err
		}
		wtx.Status = entity.WalletTxFailed
		return true, nil
	}

	if !wtx.Amount.Equal(decimal.NewFromInt(amount)) {
		s.log.Warn("Top up amount mismatch",
			zap.Int64("wallet_tx_id", wtx.ID),
			zap.String("expected", wtx.Amount.String()),
			zap.Int64("received", amount),
		)
		return false, utils.Validation("amount mismatch for order %d", *wtx.OrderCode)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.repo.User.FindByIDForUpdate(ctx, wtx.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return utils.NotFound("user %d not found", wtx.UserID)
		}

		balance := user.WalletBalance.Add(wtx.Amount)
		now := time.Now()
		wtx.Status = entity.WalletTxCompleted
		wtx.BalanceAfter = &balance
		wtx.ProcessedAt = &now
		if reference != "" {
			wtx.ReferenceID = &reference
		}

		if err := s.repo.Wallet.CompletePending(ctx, wtx); err != nil {
			return err
		}
		return s.repo.User.UpdateWalletBalance(ctx, wtx.UserID, balance)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *walletService) GetBalance(ctx context.Context, userID int64) (*response.BalanceResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("user %d not found", userID)
	}

	return &response.BalanceResponse{
		UserID:  user.ID,
		Balance: user.WalletBalance,
	}, nil
}

func (s *walletService) GetHistory(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WalletTransactionResponse], error) {
	req.Normalize()

	items, err := s.repo.Wallet.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Wallet.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return response.Paginate(items, response.WalletTxToResponse, req.Page, req.PerPage, total), nil
}

// Reconcile checks the cached balance against the signed ledger sum.
func (s *walletService) Reconcile(ctx context.Context, userID int64) (*response.ReconcileResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("user %d not found", userID)
	}

	sum, err := s.repo.Wallet.SignedSum(ctx, userID)
	if err != nil {
		return nil, err
	}

	consistent := sum.Equal(user.WalletBalance)
	if !consistent {
		s.log.Error("Wallet balance drift detected",
			zap.Int64("user_id", userID),
			zap.String("balance", user.WalletBalance.String()),
			zap.String("ledger_sum", sum.String()),
		)
	}

	return &response.ReconcileResponse{
		UserID:     userID,
		Balance:    user.WalletBalance,
		LedgerSum:  sum,
		Consistent: consistent,
	}, nil
}
