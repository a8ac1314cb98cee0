package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerHistoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons", handler.ListLeagueSeasons)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/timeline", handler.GetRosterTimeline)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/eligibility", handler.GetEligibility)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/eligibility/quotas", handler.GetTaxiQuotas)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/recordbook", handler.GetRecordBook)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons/{season}/totals", handler.GetSeasonTotals)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons/{season}/awards", handler.GetSeasonAwards)
}
