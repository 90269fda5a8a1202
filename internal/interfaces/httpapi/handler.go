package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/racha-league/internal/platform/logging"
	"github.com/riskibarqy/racha-league/internal/usecase"
)

type Handler struct {
	rankingService *usecase.RankingService
	matchService   *usecase.MatchService
	warmupService  *usecase.WarmupService
	logger         *logging.Logger
	validator      *validator.Validate
	now            func() time.Time
}

type HandlerOption func(*Handler)

// WithHandlerClock sets the clock used to default missing period fields. It
// should match the clock of the ranking service.
func WithHandlerClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

func NewHandler(
	rankingService *usecase.RankingService,
	matchService *usecase.MatchService,
	warmupService *usecase.WarmupService,
	logger *logging.Logger,
	opts ...HandlerOption,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	h := &Handler{
		rankingService: rankingService,
		matchService:   matchService,
		warmupService:  warmupService,
		logger:         logger.Named("handler"),
		validator:      validator.New(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
