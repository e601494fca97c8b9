package payments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"quickpay-backend/utils"
)

// HTTPGateway posts the request to an external STK push endpoint. A non-2xx
// response or transport error is a RemoteCallFailure; there is no retry and
// no cancellation of an in-flight call.
type HTTPGateway struct {
	URL     string
	Timeout time.Duration
}

func (g *HTTPGateway) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	agent := fiber.Post(g.URL)
	if g.Timeout > 0 {
		agent.Timeout(g.Timeout)
	}
	agent.JSON(req)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &utils.RemoteCallFailure{Op: "stk push", Err: errs[0]}
	}
	if code < 200 || code > 299 {
		return nil, &utils.RemoteCallFailure{Op: "stk push", Status: code}
	}

	var resp STKPushResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &utils.RemoteCallFailure{Op: "stk push", Err: err}
	}
	return &resp, nil
}
