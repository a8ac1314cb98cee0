package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/league-history/internal/platform/logging"
	"github.com/riskibarqy/league-history/internal/usecase"
)

type Handler struct {
	gateway            usecase.ProviderGateway
	timelineService    *usecase.TimelineService
	eligibilityService *usecase.EligibilityService
	recordBookService  *usecase.RecordBookService
	scoringService     *usecase.ScoringService
	awardsService      *usecase.AwardsService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	gateway usecase.ProviderGateway,
	timelineService *usecase.TimelineService,
	eligibilityService *usecase.EligibilityService,
	recordBookService *usecase.RecordBookService,
	scoringService *usecase.ScoringService,
	awardsService *usecase.AwardsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gateway:            gateway,
		timelineService:    timelineService,
		eligibilityService: eligibilityService,
		recordBookService:  recordBookService,
		scoringService:     scoringService,
		awardsService:      awardsService,
		logger:             logger,
		validator:          validator.New(),
	}
}

type leagueParams struct {
	LeagueID string `validate:"required,min=1,max=64"`
}

type seasonParams struct {
	LeagueID string `validate:"required,min=1,max=64"`
	Season   int    `validate:"required,gte=1990,lte=2100"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagueSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueSeasons")
	defer span.End()

	params := leagueParams{LeagueID: strings.TrimSpace(r.PathValue("leagueID"))}
	if err := h.validator.Struct(params); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	seasons, err := h.gateway.GetLeagueSeasons(ctx, params.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list league seasons failed", "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasons)
}

func (h *Handler) GetRosterTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterTimeline")
	defer span.End()

	params := leagueParams{LeagueID: strings.TrimSpace(r.PathValue("leagueID"))}
	if err := h.validator.Struct(params); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}
	ownerID := strings.TrimSpace(r.URL.Query().Get("owner"))

	timelines, err := h.timelineService.ReconstructRosterTimeline(ctx, params.LeagueID, ownerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconstruct roster timeline failed", "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timelines)
}

func (h *Handler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEligibility")
	defer span.End()

	params := leagueParams{LeagueID: strings.TrimSpace(r.PathValue("leagueID"))}
	if err := h.validator.Struct(params); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}
	ownerID := strings.TrimSpace(r.URL.Query().Get("owner"))

	reports, err := h.eligibilityService.ComputeEligibility(ctx, params.LeagueID, ownerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute eligibility failed", "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reports)
}

func (h *Handler) GetTaxiQuotas(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTaxiQuotas")
	defer span.End()

	params := leagueParams{LeagueID: strings.TrimSpace(r.PathValue("leagueID"))}
	if err := h.validator.Struct(params); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	report, err := h.eligibilityService.CheckTaxiQuotas(ctx, params.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "check taxi quotas failed", "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) GetRecordBook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecordBook")
	defer span.End()

	params := leagueParams{LeagueID: strings.TrimSpace(r.PathValue("leagueID"))}
	if err := h.validator.Struct(params); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.recordBookService.ComputeRecordBook(ctx, params.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute record book failed", "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetSeasonTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonTotals")
	defer span.End()

	params, err := h.seasonParamsFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ComputeSeasonTotals(ctx, params.LeagueID, params.Season)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute season totals failed", "league_id", params.LeagueID, "season", params.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetSeasonAwards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonAwards")
	defer span.End()

	params, err := h.seasonParamsFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.awardsService.ResolveAwards(ctx, params.LeagueID, params.Season)
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve awards failed", "league_id", params.LeagueID, "season", params.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) seasonParamsFrom(r *http.Request) (seasonParams, error) {
	season, err := strconv.Atoi(strings.TrimSpace(r.PathValue("season")))
	if err != nil {
		return seasonParams{}, fmt.Errorf("%w: season must be a year", usecase.ErrInvalidInput)
	}
	params := seasonParams{
		LeagueID: strings.TrimSpace(r.PathValue("leagueID")),
		Season:   season,
	}
	if err := h.validator.Struct(params); err != nil {
		return seasonParams{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return params, nil
}
