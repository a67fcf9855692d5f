package fire

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/fire-pension-agent/agent/contract"
	businesslogicx "github.com/tanpawarit/fire-pension-agent/pkg/businesslogic"
	logx "github.com/tanpawarit/fire-pension-agent/pkg/logger"
)

// Transport sends one calculation payload and returns the 2xx body.
type Transport interface {
	Execute(ctx context.Context, payload any) ([]byte, error)
}

var _ Transport = (*businesslogicx.Client)(nil)

type Calculator struct {
	transport Transport
}

func NewCalculator(transport Transport) (*Calculator, error) {
	if transport == nil {
		return nil, errors.New("calculation transport is required")
	}
	return &Calculator{transport: transport}, nil
}

// CalculateArgs decodes loosely typed arguments and runs FireCalculator.
func (c *Calculator) CalculateArgs(ctx context.Context, args map[string]any) string {
	raw, err := DecodeArgs(args)
	if err != nil {
		return reportText(ctx, err)
	}
	return c.FireCalculator(ctx, raw)
}

// FireCalculator validates raw and, when valid, runs the calculation. It
// always returns a message for the user; invalid input never reaches the
// network.
func (c *Calculator) FireCalculator(ctx context.Context, raw RawCalculatorRequest) string {
	req, err := Validate(raw)
	if err != nil {
		return reportText(ctx, err)
	}
	return c.Calculate(ctx, req)
}

// Calculate issues exactly one request to the calculation service.
func (c *Calculator) Calculate(ctx context.Context, req ValidatedCalculatorRequest) string {
	return Render(c.Execute(ctx, req))
}

func (c *Calculator) Execute(ctx context.Context, req ValidatedCalculatorRequest) Outcome {
	logger := logx.FromContext(ctx)

	body, err := c.transport.Execute(ctx, newRemotePayload(req))
	if err != nil {
		var statusErr *businesslogicx.StatusError
		switch {
		case errors.Is(err, businesslogicx.ErrTimeout):
			logger.Error().Err(err).Msg("calculation request timed out")
			return Timeout{Err: fmt.Errorf("%w: %v", contractx.ErrTimeout, err)}
		case errors.As(err, &statusErr):
			logger.Error().
				Err(contractx.ErrRemoteService).
				Int("status", statusErr.Code).
				Str("body", statusErr.Body).
				Msg("calculation service returned an error status")
			return ServiceError{Status: statusErr.Code, Body: statusErr.Body}
		default:
			logger.Error().Err(err).Msg("calculation request failed")
			return Unexpected{Err: fmt.Errorf("%w: %v", contractx.ErrUnexpected, err)}
		}
	}

	res, err := DecodeResult(body)
	if err != nil {
		logger.Error().Err(err).Str("body", string(body)).Msg("calculation response could not be decoded")
		return Unexpected{Err: fmt.Errorf("%w: %v", contractx.ErrUnexpected, err)}
	}

	switch {
	case res == nil:
		logger.Warn().Str("body", string(body)).Msg("calculation response carried no information")
	case !res.Complete():
		logger.Warn().Err(contractx.ErrIncompleteResult).Str("body", string(body)).Msg("calculation response is missing fields")
	default:
		logger.Debug().
			Float64("opsparing_ar", *res.SavingsPerYear).
			Float64("result", *res.NetResultAtTerminalAge).
			Msg("calculation completed")
	}
	return Success{Result: res}
}

func reportText(ctx context.Context, err error) string {
	var report ErrorReport
	if !errors.As(err, &report) {
		report = ErrorReport{{Field: "request", Message: err.Error()}}
	}
	logx.FromContext(ctx).Error().Strs("fields", report.Fields()).Msg("calculator input validation failed")
	return report.String()
}
