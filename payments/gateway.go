package payments

import (
	"context"
	"os"
	"time"
)

// STKPushRequest initiates a mobile-money payment request. InvoiceID/Amount is
// the shape the invoice flow sends; Phone/Account come from the standalone
// mock endpoint.
type STKPushRequest struct {
	InvoiceID string  `json:"invoiceId,omitempty"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Phone     string  `json:"phone,omitempty"`
	Account   string  `json:"account,omitempty"`
}

// STKPushResponse mirrors the Daraja STK push acknowledgement fields.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// Gateway hands a payment request to the provider. Implementations do not
// retry; a single failure is surfaced to the caller.
type Gateway interface {
	InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error)
}

// FromEnv selects the gateway implementation via PAYMENTS_MODE:
// "http" posts to STK_PUSH_URL, "simulated" is the demo-mode gateway with
// random failure injection, anything else is the canned mock.
func FromEnv() Gateway {
	switch os.Getenv("PAYMENTS_MODE") {
	case "http":
		return &HTTPGateway{URL: os.Getenv("STK_PUSH_URL"), Timeout: 15 * time.Second}
	case "simulated":
		return NewSimulatedGateway(2*time.Second, 0.8)
	default:
		return &MockGateway{}
	}
}
