package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/racha-league/internal/usecase"
)

func (h *Handler) RunWarmRankingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RunWarmRankingsJob")
	defer span.End()

	if h.warmupService == nil {
		writeError(ctx, w, fmt.Errorf("%w: warmup service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeWarmRankingsRequest(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.warmupService.Run(ctx, usecase.WarmupInput{
		GroupIDs:   req.GroupIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "warm rankings job failed", "groups", len(req.GroupIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "warm rankings job finished",
		"groups", result.GroupCount,
		"tasks", result.TaskCount,
		"failed", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
