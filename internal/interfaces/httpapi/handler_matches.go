package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListMatches")
	defer span.End()

	req := matchListRequest{
		GroupID: strings.TrimSpace(r.PathValue("groupID")),
		Period:  periodQueryFrom(r.URL.Query()),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	sel, err := period.Parse(req.Period, h.now())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListMatches(ctx, req.GroupID, sel)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "group_id", req.GroupID, "period", sel.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMatchDTOs(items))
}

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RecordMatch")
	defer span.End()

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	if groupID == "" {
		writeError(ctx, w, fmt.Errorf("%w: group id is required", usecase.ErrInvalidInput))
		return
	}

	req, err := decodeRecordMatchRequest(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput(ctx, groupID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.RecordResult(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "record match failed", "group_id", groupID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, recordMatchDTO{
		Match:       toMatchDTO(result.Match),
		DataVersion: result.DataVersion,
		Created:     result.Created,
	})
}
