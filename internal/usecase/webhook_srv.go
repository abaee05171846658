package usecase

import (
	"context"
	"fmt"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

const gatewaySuccessCode = "00"

// HandleWebhook verifies the gateway signature before touching anything,
// then routes the order code to a pending top-up or a booking payment.
// Repeated deliveries for a settled order are acknowledged without effect.
func (s *paymentService) HandleWebhook(ctx context.Context, payload *payos.WebhookPayload) error {
	// 1. Verifikasi signature
	data, err := s.gateway.VerifyWebhook(payload)
	if err != nil {
		s.log.Warn("Rejected webhook", zap.Error(err))
		return utils.Validation("invalid webhook signature")
	}

	// hanya data yang ditandatangani, envelope tidak ikut signature
	success := data.Code == gatewaySuccessCode

	var (
		topUp      *entity.WalletTransaction
		topUpDone  bool
		settlement *paymentSettlement
	)

	// 2. Route order code
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		wtx, err := s.repo.Wallet.FindByOrderCodeForUpdate(ctx, data.OrderCode)
		if err != nil {
			return err
		}
		if wtx != nil {
			changed, err := s.wallet.SettleTopUp(ctx, wtx, success, data.Reference, data.Amount)
			if err != nil {
				return err
			}
			topUp, topUpDone = wtx, changed && success
			return nil
		}

		payment, err := s.repo.Payment.FindByCodeForUpdate(ctx, data.OrderCode)
		if err != nil {
			return err
		}
		if payment == nil {
			return utils.NotFound("order %d not found", data.OrderCode)
		}

		settlement, err = s.settleGatewayPayment(ctx, payment, success, data)
		return err
	})
	if err != nil {
		s.log.Warn("Webhook not applied",
			zap.Error(err),
			zap.Int64("order_code", data.OrderCode),
		)
		return err
	}

	s.log.Info("Webhook processed",
		zap.Int64("order_code", data.OrderCode),
		zap.Bool("success", success),
		zap.String("reference", data.Reference),
	)

	// 3. Notifikasi setelah commit
	if topUpDone {
		s.notifier.Notify(ctx, topUp.UserID, entity.NotifWalletTopUp,
			"Top up successful",
			fmt.Sprintf("%s has been added to your wallet", topUp.Amount.String()),
			map[string]any{"wallet_tx_id": topUp.ID, "amount": topUp.Amount.String()},
		)
	}
	if settlement != nil {
		s.notifyPaid(ctx, settlement)
	}

	return nil
}
