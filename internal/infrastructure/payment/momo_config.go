package payment

import "errors"

const (
	momoProductionEndpoint = "https://payment.momo.vn"
	momoSandboxEndpoint    = "https://test-payment.momo.vn"

	momoCreatePath = "/v2/gateway/api/create"

	// momoRequestTypeCaptureWallet opens the MoMo wallet payment screen
	momoRequestTypeCaptureWallet = "captureWallet"
)

// MoMoConfig contains configuration for the MoMo wallet gateway
type MoMoConfig struct {
	// PartnerCode is the merchant identifier issued by MoMo
	PartnerCode string
	// AccessKey is the public half of the merchant credentials
	AccessKey string
	// SecretKey signs every request and verifies every notification
	SecretKey string
	// RedirectURL is where the buyer's browser returns after payment
	RedirectURL string
	// IPNURL receives the server-to-server payment notification
	IPNURL string
	// IsSandbox switches to the MoMo test environment
	IsSandbox bool
}

// Errors for configuration validation
var (
	ErrMoMoMissingPartnerCode = errors.New("momo: missing partner code")
	ErrMoMoMissingAccessKey   = errors.New("momo: missing access key")
	ErrMoMoMissingSecretKey   = errors.New("momo: missing secret key")
	ErrMoMoMissingRedirectURL = errors.New("momo: missing redirect URL")
	ErrMoMoMissingIPNURL      = errors.New("momo: missing IPN URL")
)

// Validate validates the configuration
func (c *MoMoConfig) Validate() error {
	if c.PartnerCode == "" {
		return ErrMoMoMissingPartnerCode
	}
	if c.AccessKey == "" {
		return ErrMoMoMissingAccessKey
	}
	if c.SecretKey == "" {
		return ErrMoMoMissingSecretKey
	}
	if c.RedirectURL == "" {
		return ErrMoMoMissingRedirectURL
	}
	if c.IPNURL == "" {
		return ErrMoMoMissingIPNURL
	}
	return nil
}

// Endpoint returns the gateway base URL for the configured environment
func (c *MoMoConfig) Endpoint() string {
	if c.IsSandbox {
		return momoSandboxEndpoint
	}
	return momoProductionEndpoint
}
