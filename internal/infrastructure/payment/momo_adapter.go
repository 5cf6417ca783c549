package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vietcart/backend/internal/domain/payment"
)

// MoMoAdapter implements the payment.Gateway port for the MoMo wallet
type MoMoAdapter struct {
	config     *MoMoConfig
	httpClient *http.Client
}

// NewMoMoAdapter creates a new MoMo adapter
func NewMoMoAdapter(config *MoMoConfig) (*MoMoAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MoMoAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreatePayment opens a payment at MoMo and returns the redirect data
func (a *MoMoAdapter) CreatePayment(ctx context.Context, req *payment.CreateRequest) (*payment.CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := momoCreateRequest{
		PartnerCode: a.config.PartnerCode,
		RequestID:   req.RequestID,
		Amount:      req.Amount,
		OrderID:     req.OrderNumber,
		OrderInfo:   req.OrderInfo,
		RedirectURL: a.config.RedirectURL,
		IPNURL:      a.config.IPNURL,
		RequestType: momoRequestTypeCaptureWallet,
		ExtraData:   req.ExtraData,
		Lang:        "vi",
	}
	body.Signature = a.signCreate(&body)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.config.Endpoint()+momoCreatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("momo create payment: %w", err)
	}
	defer httpResp.Body.Close()

	var resp momoCreateResponse
	raw := new(bytes.Buffer)
	if err := json.NewDecoder(io.TeeReader(httpResp.Body, raw)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("momo create payment: decode response: %w", err)
	}

	result := &payment.CreateResponse{
		PayURL:      resp.PayURL,
		Deeplink:    resp.Deeplink,
		QRCodeURL:   resp.QRCodeURL,
		ResultCode:  resp.ResultCode,
		Message:     resp.Message,
		RawResponse: raw.String(),
	}

	if resp.ResultCode != 0 {
		return result, payment.ErrGatewayRejected
	}
	return result, nil
}

// VerifyIPN recomputes the notification signature with the merchant secret
// and compares it in constant time
func (a *MoMoAdapter) VerifyIPN(n *payment.IPN) error {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		a.config.AccessKey,
		n.Amount,
		n.ExtraData,
		n.Message,
		n.OrderID,
		n.OrderInfo,
		n.OrderType,
		n.PartnerCode,
		n.PayType,
		n.RequestID,
		n.ResponseTime,
		n.ResultCode,
		n.TransID,
	)

	expected := a.sign(raw)
	if !hmac.Equal([]byte(expected), []byte(n.Signature)) {
		return payment.ErrInvalidSignature
	}
	return nil
}

// signCreate builds the create-request signing string. The fields are
// concatenated in the alphabetical order the gateway mandates.
func (a *MoMoAdapter) signCreate(r *momoCreateRequest) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		a.config.AccessKey,
		r.Amount,
		r.ExtraData,
		r.IPNURL,
		r.OrderID,
		r.OrderInfo,
		r.PartnerCode,
		r.RedirectURL,
		r.RequestID,
		r.RequestType,
	)
	return a.sign(raw)
}

func (a *MoMoAdapter) sign(raw string) string {
	mac := hmac.New(sha256.New, []byte(a.config.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
