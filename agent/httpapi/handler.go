// Package httpapi exposes the FIRE calculator over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	firex "github.com/tanpawarit/fire-pension-agent/agent/fire"
	logx "github.com/tanpawarit/fire-pension-agent/pkg/logger"
)

const (
	PathCalculate = "/v1/fire/calculate"
	PathHealth    = "/healthz"

	HeaderRequestID = "X-Request-ID"

	contentTypeJSON = "application/json"
)

type Config struct {
	Port         int           `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" split_words:"true" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" split_words:"true" default:"60s"`
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Calculator turns loosely typed calculator input into the user message.
type Calculator interface {
	CalculateArgs(ctx context.Context, args map[string]any) string
}

var _ Calculator = (*firex.Calculator)(nil)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	calc Calculator
}

func NewHandler(calc Calculator) (*Handler, error) {
	if calc == nil {
		return nil, errors.New("calculator is required")
	}
	return &Handler{calc: calc}, nil
}

// NewServer wraps the handler in a fasthttp server using cfg's timeouts.
func NewServer(cfg Config, h *Handler) *fasthttp.Server {
	return &fasthttp.Server{
		Name:         "fire-pension-agent",
		Handler:      h.Handle,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case PathCalculate:
		if !ctx.IsPost() {
			ctx.Response.Header.Set(fasthttp.HeaderAllow, fasthttp.MethodPost)
			writeJSON(ctx, fasthttp.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}
		h.calculate(ctx)
	case PathHealth:
		if !ctx.IsGet() && !ctx.IsHead() {
			ctx.Response.Header.Set(fasthttp.HeaderAllow, fasthttp.MethodGet)
			writeJSON(ctx, fasthttp.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Error: "not found"})
	}
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) {
	requestID := string(ctx.Request.Header.Peek(HeaderRequestID))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(HeaderRequestID, requestID)

	reqCtx := logx.WithFields(context.Background(), map[string]any{
		"request_id": requestID,
		"path":       PathCalculate,
	})
	logger := logx.FromContext(reqCtx)

	var args map[string]any
	if err := json.Unmarshal(ctx.PostBody(), &args); err != nil {
		logger.Warn().Err(err).Msg("calculate request body is not a json object")
		writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: "request body must be a json object"})
		return
	}

	message := h.calc.CalculateArgs(reqCtx, args)
	writeJSON(ctx, fasthttp.StatusOK, messageResponse{Message: message})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logx.FromContext(context.Background()).Error().Err(err).Msg("encode response")
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(body)
}
