package payments

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quickpay-backend/utils"
)

const acceptedMessage = "Success. Request accepted for processing"

func cannedResponse() *STKPushResponse {
	return &STKPushResponse{
		MerchantRequestID:   uuid.NewString(),
		CheckoutRequestID:   fmt.Sprintf("ws_CO_%s", time.Now().Format("02012006150405")),
		ResponseCode:        "0",
		ResponseDescription: acceptedMessage,
		CustomerMessage:     acceptedMessage,
	}
}

// MockGateway returns a canned success acknowledgement and never performs a
// real mobile-money transaction. This is the default gateway.
type MockGateway struct{}

func (g *MockGateway) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	return cannedResponse(), nil
}

// SimulatedGateway mimics the demo-mode payment flow: a fixed delay followed
// by a random outcome (default ~80% success). Demo behavior only, not the
// contract for a real provider.
type SimulatedGateway struct {
	Delay       time.Duration
	SuccessRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(delay time.Duration, successRate float64) *SimulatedGateway {
	return &SimulatedGateway{
		Delay:       delay,
		SuccessRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *SimulatedGateway) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	select {
	case <-time.After(g.Delay):
	case <-ctx.Done():
		return nil, &utils.RemoteCallFailure{Op: "stk push", Err: ctx.Err()}
	}

	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()
	if roll >= g.SuccessRate {
		return nil, &utils.RemoteCallFailure{Op: "stk push", Err: fmt.Errorf("simulated provider decline")}
	}
	return cannedResponse(), nil
}
