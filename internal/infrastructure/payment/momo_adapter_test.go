package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/payment"
)

func newTestConfig() *MoMoConfig {
	return &MoMoConfig{
		PartnerCode: "MOMOTEST",
		AccessKey:   "access-key",
		SecretKey:   "secret-key",
		RedirectURL: "https://shop.example/payment/return",
		IPNURL:      "https://shop.example/api/v1/payments/momo/ipn",
		IsSandbox:   true,
	}
}

// signIPN reproduces the gateway-side signature for test notifications
func signIPN(secret string, n *payment.IPN) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		"access-key",
		n.Amount, n.ExtraData, n.Message, n.OrderID, n.OrderInfo, n.OrderType,
		n.PartnerCode, n.PayType, n.RequestID, n.ResponseTime, n.ResultCode, n.TransID,
	)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestIPN() *payment.IPN {
	return &payment.IPN{
		PartnerCode:  "MOMOTEST",
		OrderID:      "VC20260828-0001",
		RequestID:    "req-0001",
		Amount:       230000,
		OrderInfo:    "Thanh toán đơn hàng VC20260828-0001",
		OrderType:    "momo_wallet",
		TransID:      2147483647,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1724800000000,
	}
}

func TestNewMoMoAdapterValidatesConfig(t *testing.T) {
	_, err := NewMoMoAdapter(&MoMoConfig{})
	assert.ErrorIs(t, err, ErrMoMoMissingPartnerCode)

	adapter, err := NewMoMoAdapter(newTestConfig())
	require.NoError(t, err)
	assert.Equal(t, momoSandboxEndpoint, adapter.config.Endpoint())
}

func TestVerifyIPN(t *testing.T) {
	adapter, err := NewMoMoAdapter(newTestConfig())
	require.NoError(t, err)

	n := newTestIPN()
	n.Signature = signIPN("secret-key", n)

	assert.NoError(t, adapter.VerifyIPN(n))
}

func TestVerifyIPNTamperedAmount(t *testing.T) {
	adapter, err := NewMoMoAdapter(newTestConfig())
	require.NoError(t, err)

	n := newTestIPN()
	n.Signature = signIPN("secret-key", n)
	n.Amount = 1000 // changed after signing

	assert.ErrorIs(t, adapter.VerifyIPN(n), payment.ErrInvalidSignature)
}

func TestVerifyIPNWrongSecret(t *testing.T) {
	adapter, err := NewMoMoAdapter(newTestConfig())
	require.NoError(t, err)

	n := newTestIPN()
	n.Signature = signIPN("attacker-secret", n)

	assert.ErrorIs(t, adapter.VerifyIPN(n), payment.ErrInvalidSignature)
}

func TestVerifyIPNMissingSignature(t *testing.T) {
	adapter, err := NewMoMoAdapter(newTestConfig())
	require.NoError(t, err)

	n := newTestIPN()

	assert.ErrorIs(t, adapter.VerifyIPN(n), payment.ErrInvalidSignature)
}

func TestSignCreateIsDeterministic(t *testing.T) {
	adapter, err := NewMoMoAdapter(newTestConfig())
	require.NoError(t, err)

	req := &momoCreateRequest{
		PartnerCode: "MOMOTEST",
		RequestID:   "req-0002",
		Amount:      150000,
		OrderID:     "VC20260828-0002",
		OrderInfo:   "Thanh toán đơn hàng VC20260828-0002",
		RedirectURL: "https://shop.example/payment/return",
		IPNURL:      "https://shop.example/api/v1/payments/momo/ipn",
		RequestType: momoRequestTypeCaptureWallet,
	}

	first := adapter.signCreate(req)
	second := adapter.signCreate(req)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "hex-encoded SHA-256")

	req.Amount = 999
	assert.NotEqual(t, first, adapter.signCreate(req))
}
