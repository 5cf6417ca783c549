package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/payment"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MoMoService opens wallet payments for placed orders
type MoMoService struct {
	gateway   payment.Gateway
	orderRepo order.Repository
	txRepo    payment.TransactionRepository
	logger    *zap.Logger
}

// NewMoMoService creates a new MoMo payment service
func NewMoMoService(
	gateway payment.Gateway,
	orderRepo order.Repository,
	txRepo payment.TransactionRepository,
	logger *zap.Logger,
) *MoMoService {
	return &MoMoService{
		gateway:   gateway,
		orderRepo: orderRepo,
		txRepo:    txRepo,
		logger:    logger,
	}
}

// CreatePayment opens a MoMo payment for the buyer's own unpaid order and
// records the attempt
func (s *MoMoService) CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentResult, error) {
	o, err := s.orderRepo.FindByIDForAccount(ctx, input.AccountID, input.OrderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if o.PaymentMethod != order.PaymentMethodMoMo {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Order is not payable with MoMo")
	}
	if o.IsPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status == order.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cancelled orders cannot be paid")
	}

	// VND has no fractional unit; the gateway takes whole dong
	amount := o.FinalAmount.IntPart()
	requestID := uuid.New().String()

	tx, err := payment.NewTransaction(o.ID, requestID, amount)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, tx); err != nil {
		s.logger.Error("Failed to save payment attempt", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start payment")
	}

	resp, err := s.gateway.CreatePayment(ctx, &payment.CreateRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		RequestID:   requestID,
		Amount:      amount,
		OrderInfo:   fmt.Sprintf("Thanh toán đơn hàng %s", o.OrderNumber),
	})
	if err != nil {
		message := "gateway unreachable"
		if resp != nil {
			message = resp.Message
		}
		tx.Complete("", -1, message, "")
		if saveErr := s.txRepo.Save(ctx, tx); saveErr != nil {
			s.logger.Error("Failed to record gateway failure", zap.Error(saveErr))
		}

		s.logger.Error("MoMo create payment failed",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
		return nil, shared.NewDomainError("GATEWAY_REJECTED", "Payment gateway rejected the request")
	}

	s.logger.Info("MoMo payment opened",
		zap.String("order_number", o.OrderNumber),
		zap.String("request_id", requestID),
		zap.Int64("amount", amount))

	return &CreatePaymentResult{
		OrderNumber: o.OrderNumber,
		RequestID:   requestID,
		Amount:      amount,
		PayURL:      resp.PayURL,
		Deeplink:    resp.Deeplink,
		QRCodeURL:   resp.QRCodeURL,
	}, nil
}

// Status returns the latest payment attempt for the buyer's own order
func (s *MoMoService) Status(ctx context.Context, accountID, orderID uuid.UUID) (*TransactionInfo, error) {
	if _, err := s.orderRepo.FindByIDForAccount(ctx, accountID, orderID); err != nil {
		return nil, shared.ErrNotFound
	}

	tx, err := s.txRepo.FindLatestByOrder(ctx, orderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	return toTransactionInfo(tx), nil
}
