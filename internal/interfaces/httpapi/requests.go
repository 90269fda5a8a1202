package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type rankingQueryRequest struct {
	GroupID  string `validate:"required,max=64"`
	Metric   string `validate:"max=16"`
	Position string `validate:"max=16"`
	Period   period.Query
	Limit    int `validate:"gte=0,lte=500"`
	Trend    bool
}

type highlightRequest struct {
	GroupID string `validate:"required,max=64"`
	Date    string `validate:"required,max=10"`
}

type matchListRequest struct {
	GroupID string `validate:"required,max=64"`
	Period  period.Query
}

type recordMatchRequest struct {
	MatchID   string                  `json:"match_id" validate:"omitempty,max=64"`
	PlayedAt  string                  `json:"played_at" validate:"required"`
	Location  string                  `json:"location" validate:"omitempty,max=120"`
	TeamAID   string                  `json:"team_a_id" validate:"required,max=64"`
	TeamBID   string                  `json:"team_b_id" validate:"required,max=64,nefield=TeamAID"`
	ScoreA    int                     `json:"score_a" validate:"gte=0,lte=99"`
	ScoreB    int                     `json:"score_b" validate:"gte=0,lte=99"`
	Presences []recordPresenceRequest `json:"presences" validate:"max=64,dive"`
}

type recordPresenceRequest struct {
	AthleteID   string `json:"athlete_id" validate:"required,max=64"`
	TeamID      string `json:"team_id" validate:"required,max=64"`
	Goals       int    `json:"goals" validate:"gte=0"`
	Assists     int    `json:"assists" validate:"gte=0"`
	YellowCards int    `json:"yellow_cards" validate:"gte=0,lte=2"`
	RedCards    int    `json:"red_cards" validate:"gte=0,lte=1"`
	Starter     bool   `json:"starter"`
	Position    string `json:"position" validate:"omitempty,max=16"`
}

type warmRankingsRequest struct {
	GroupIDs   []string `json:"group_ids" validate:"omitempty,max=100,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"gte=0,lte=64"`
}

func periodQueryFrom(values url.Values) period.Query {
	return period.Query{
		Kind:    values.Get("period"),
		Year:    values.Get("year"),
		Quarter: values.Get("quarter"),
		Month:   values.Get("month"),
		Start:   values.Get("start"),
		End:     values.Get("end"),
	}
}

func parseRankingQuery(r *http.Request) (rankingQueryRequest, error) {
	values := r.URL.Query()
	req := rankingQueryRequest{
		GroupID:  strings.TrimSpace(r.PathValue("groupID")),
		Metric:   values.Get("metric"),
		Position: values.Get("position"),
		Period:   periodQueryFrom(values),
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return rankingQueryRequest{}, fmt.Errorf("%w: limit must be numeric, got %q", usecase.ErrInvalidInput, raw)
		}
		req.Limit = limit
	}
	if raw := strings.TrimSpace(values.Get("trend")); raw != "" {
		trend, err := strconv.ParseBool(raw)
		if err != nil {
			return rankingQueryRequest{}, fmt.Errorf("%w: trend must be a boolean, got %q", usecase.ErrInvalidInput, raw)
		}
		req.Trend = trend
	}
	return req, nil
}

func decodeRecordMatchRequest(w http.ResponseWriter, r *http.Request) (recordMatchRequest, error) {
	var req recordMatchRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(&req); err != nil {
		return recordMatchRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

// decodeWarmRankingsRequest treats an empty body as "every group".
func decodeWarmRankingsRequest(w http.ResponseWriter, r *http.Request) (warmRankingsRequest, error) {
	var req warmRankingsRequest
	if r.Body == nil || r.Body == http.NoBody {
		return req, nil
	}
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return warmRankingsRequest{}, nil
		}
		return warmRankingsRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

func (req recordMatchRequest) toInput(ctx context.Context, groupID string) (usecase.RecordMatchInput, error) {
	_, span := startSpan(ctx, "httpapi.recordMatchRequest.toInput")
	defer span.End()

	playedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.PlayedAt))
	if err != nil {
		return usecase.RecordMatchInput{}, fmt.Errorf("%w: played_at must be RFC3339, got %q", usecase.ErrInvalidInput, req.PlayedAt)
	}

	presences := make([]match.Presence, 0, len(req.Presences))
	for _, item := range req.Presences {
		var position athlete.Position
		if strings.TrimSpace(item.Position) != "" {
			parsed, ok := athlete.ParsePosition(item.Position)
			if !ok {
				return usecase.RecordMatchInput{}, fmt.Errorf("%w: unknown position %q for athlete %s", usecase.ErrInvalidInput, item.Position, item.AthleteID)
			}
			position = parsed
		}
		presences = append(presences, match.Presence{
			AthleteID:   strings.TrimSpace(item.AthleteID),
			TeamID:      strings.TrimSpace(item.TeamID),
			Goals:       item.Goals,
			Assists:     item.Assists,
			YellowCards: item.YellowCards,
			RedCards:    item.RedCards,
			Starter:     item.Starter,
			Position:    position,
		})
	}

	return usecase.RecordMatchInput{
		GroupID:   groupID,
		MatchID:   req.MatchID,
		PlayedAt:  playedAt,
		Location:  req.Location,
		TeamAID:   req.TeamAID,
		TeamBID:   req.TeamBID,
		ScoreA:    req.ScoreA,
		ScoreB:    req.ScoreB,
		Presences: presences,
	}, nil
}
