package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/domain/ranking"
	"github.com/riskibarqy/racha-league/internal/usecase"
)

func (h *Handler) ListAthleteRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListAthleteRanking")
	defer span.End()

	req, err := parseRankingQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	metric, err := ranking.ParseMetric(req.Metric)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	position, err := ranking.ParsePositionFilter(req.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	sel, err := period.Parse(req.Period, h.now())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rankingService.ListAthleteRanking(ctx, usecase.AthleteRankingQuery{
		GroupID:  req.GroupID,
		Period:   sel,
		Metric:   metric,
		Position: position,
		Limit:    req.Limit,
		Trend:    req.Trend,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list athlete ranking failed", "group_id", req.GroupID, "period", sel.Key(), "metric", metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toAthleteRankingDTO(result))
}

func (h *Handler) ListTeamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListTeamStandings")
	defer span.End()

	req, err := parseRankingQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.rejectAthleteFilters(); err != nil {
		writeError(ctx, w, err)
		return
	}
	sel, err := period.Parse(req.Period, h.now())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rankingService.ListTeamStandings(ctx, usecase.TeamStandingsQuery{
		GroupID: req.GroupID,
		Period:  sel,
		Limit:   req.Limit,
		Trend:   req.Trend,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list team standings failed", "group_id", req.GroupID, "period", sel.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamStandingsDTO(result))
}

func (h *Handler) GetRankingOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetRankingOverview")
	defer span.End()

	req, err := parseRankingQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.rejectAthleteFilters(); err != nil {
		writeError(ctx, w, err)
		return
	}
	sel, err := period.Parse(req.Period, h.now())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rankingService.Overview(ctx, usecase.OverviewQuery{
		GroupID: req.GroupID,
		Period:  sel,
		Limit:   req.Limit,
		Trend:   req.Trend,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get ranking overview failed", "group_id", req.GroupID, "period", sel.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toRankingOverviewDTO(result))
}

// rejectAthleteFilters guards routes whose results are not filtered by
// metric or position.
func (req rankingQueryRequest) rejectAthleteFilters() error {
	if strings.TrimSpace(req.Metric) != "" {
		return fmt.Errorf("%w: metric is only accepted by the athlete ranking, got %q", ranking.ErrInvalidRankingQuery, req.Metric)
	}
	if strings.TrimSpace(req.Position) != "" {
		return fmt.Errorf("%w: position is only accepted by the athlete ranking, got %q", ranking.ErrInvalidRankingQuery, req.Position)
	}
	return nil
}

func (h *Handler) GetDailyHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetDailyHighlights")
	defer span.End()

	req := highlightRequest{
		GroupID: strings.TrimSpace(r.PathValue("groupID")),
		Date:    strings.TrimSpace(r.PathValue("date")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rankingService.GetDailyHighlights(ctx, req.GroupID, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "get daily highlights failed", "group_id", req.GroupID, "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toDailyHighlightsDTO(result))
}
