package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}
	mux.Handle("GET /metrics", metrics)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/groups/{groupID}/rankings/athletes", handler.ListAthleteRanking)
	mux.HandleFunc("GET /v1/groups/{groupID}/rankings/teams", handler.ListTeamStandings)
	mux.HandleFunc("GET /v1/groups/{groupID}/rankings/overview", handler.GetRankingOverview)
	mux.HandleFunc("GET /v1/groups/{groupID}/highlights/{date}", handler.GetDailyHighlights)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.HandleFunc("GET /v1/groups/{groupID}/matches", handler.ListMatches)
	// Results arrive from the scorekeeping job, never from end users.
	mux.Handle("POST /v1/groups/{groupID}/matches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecordMatch)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/warm-rankings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmRankingsJob)))
}
