package payment

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/payment"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ipnIdempotencyTTL bounds how long a processed notification key is kept.
// MoMo retries for at most a day; a week leaves a wide margin.
const ipnIdempotencyTTL = 7 * 24 * time.Hour

// ipnKeyPrefix namespaces notification keys in the idempotency store
const ipnKeyPrefix = "momo:ipn:"

// CallbackService processes asynchronous payment notifications. Nothing in
// a notification is trusted until its signature verifies, and every request
// id is processed at most once.
type CallbackService struct {
	gateway     payment.Gateway
	orderRepo   order.Repository
	txRepo      payment.TransactionRepository
	idempotency shared.IdempotencyStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewCallbackService creates a new callback service
func NewCallbackService(
	gateway payment.Gateway,
	orderRepo order.Repository,
	txRepo payment.TransactionRepository,
	idempotency shared.IdempotencyStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CallbackService {
	return &CallbackService{
		gateway:     gateway,
		orderRepo:   orderRepo,
		txRepo:      txRepo,
		idempotency: idempotency,
		publisher:   publisher,
		logger:      logger,
	}
}

// ProcessIPN handles one payment notification. Verification order matters:
// signature first, then idempotency, then state changes. A key stays marked
// only when processing reached a verdict; any failure after marking releases
// it so the gateway's retry is not swallowed.
func (s *CallbackService) ProcessIPN(ctx context.Context, n *payment.IPN) (*IPNResult, error) {
	if err := s.gateway.VerifyIPN(n); err != nil {
		s.logger.Warn("IPN signature verification failed",
			zap.String("order_id", n.OrderID),
			zap.String("request_id", n.RequestID))
		return nil, err
	}

	fresh, err := s.idempotency.MarkProcessed(ctx, ipnKeyPrefix+n.RequestID, ipnIdempotencyTTL)
	if err != nil {
		s.logger.Error("Idempotency store failure", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process notification")
	}
	if !fresh {
		s.logger.Info("Duplicate IPN ignored", zap.String("request_id", n.RequestID))
		return &IPNResult{OrderNumber: n.OrderID, Duplicate: true}, nil
	}

	tx, err := s.txRepo.FindByRequestID(ctx, n.RequestID)
	if err != nil {
		s.logger.Warn("IPN for unknown payment attempt", zap.String("request_id", n.RequestID))
		s.releaseMark(ctx, n.RequestID)
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown payment request")
	}

	o, err := s.orderRepo.FindByOrderNumber(ctx, n.OrderID)
	if err != nil {
		s.releaseMark(ctx, n.RequestID)
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	if n.Amount != tx.Amount {
		s.logger.Warn("IPN amount mismatch",
			zap.String("request_id", n.RequestID),
			zap.Int64("expected", tx.Amount),
			zap.Int64("got", n.Amount))
		s.releaseMark(ctx, n.RequestID)
		return nil, shared.NewDomainError("INVALID_INPUT", "Notification amount does not match the payment request")
	}

	rawPayload, _ := json.Marshal(n)
	tx.Complete(formatTransID(n.TransID), n.ResultCode, n.Message, string(rawPayload))
	if err := s.txRepo.Save(ctx, tx); err != nil {
		s.logger.Error("Failed to save payment verdict", zap.Error(err))
		s.releaseMark(ctx, n.RequestID)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process notification")
	}

	if !n.IsSuccess() {
		s.logger.Info("Payment failed at gateway",
			zap.String("order_number", o.OrderNumber),
			zap.Int("result_code", n.ResultCode),
			zap.String("message", n.Message))
		return &IPNResult{OrderNumber: o.OrderNumber, Captured: false}, nil
	}

	if err := o.MarkPaid(formatTransID(n.TransID), time.UnixMilli(n.ResponseTime)); err != nil {
		// Already paid or cancelled; the transaction verdict is kept anyway
		s.logger.Warn("Capture not applied to order",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
		return &IPNResult{OrderNumber: o.OrderNumber, Captured: false}, nil
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save captured order", zap.Error(err))
		s.releaseMark(ctx, n.RequestID)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process notification")
	}

	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish payment events", zap.Error(err))
	}
	o.ClearDomainEvents()

	s.logger.Info("Payment captured",
		zap.String("order_number", o.OrderNumber),
		zap.Int64("trans_id", n.TransID),
		zap.Int64("amount", n.Amount))

	return &IPNResult{OrderNumber: o.OrderNumber, Captured: true}, nil
}

func (s *CallbackService) releaseMark(ctx context.Context, requestID string) {
	if err := s.idempotency.Release(ctx, ipnKeyPrefix+requestID); err != nil {
		// The key expires with its TTL; the capture needs manual reconciliation
		s.logger.Error("Failed to release idempotency key",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

func formatTransID(transID int64) string {
	return strconv.FormatInt(transID, 10)
}
