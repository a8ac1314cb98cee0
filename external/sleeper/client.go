package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/league-history/internal/domain/league"
	"github.com/riskibarqy/league-history/internal/platform/cache"
	"github.com/riskibarqy/league-history/internal/platform/logging"
	"github.com/riskibarqy/league-history/internal/platform/resilience"
	"github.com/riskibarqy/league-history/internal/usecase"
)

const (
	defaultBaseURL = "https://api.sleeper.app"
	// responseBodyLimit guards the players directory endpoint, which
	// returns a multi-megabyte document.
	responseBodyLimit = 32 << 20
	// maxChainDepth caps the previous-league walk so a cyclic chain from
	// a misconfigured upstream cannot loop forever.
	maxChainDepth = 30
)

var errSleeperTransient = crerr.New("sleeper transient failure")

// ClientCaches holds the per-resource read-through stores. A nil store
// disables caching for that resource.
type ClientCaches struct {
	Leagues      *cache.Store
	Rosters      *cache.Store
	Matchups     *cache.Store
	Transactions *cache.Store
	Brackets     *cache.Store
	Stats        *cache.Store
	Players      *cache.Store
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Backoff        resilience.BackoffConfig
	Caches         ClientCaches
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	backoff        resilience.BackoffConfig
	caches         ClientCaches
	flight         resilience.SingleFlight
}

var _ usecase.ProviderGateway = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		backoff:        resilience.NormalizeBackoffConfig(cfg.Backoff),
		caches:         cfg.Caches,
	}
}

// GetLeagueSeasons walks the previous_league_id chain starting from the
// given league and returns one Season per hop, oldest first.
func (c *Client) GetLeagueSeasons(ctx context.Context, leagueID string) ([]league.Season, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	seasons := make([]league.Season, 0, 8)
	visited := make(map[string]struct{}, 8)
	current := leagueID
	for depth := 0; depth < maxChainDepth && current != "" && current != "0"; depth++ {
		if _, seen := visited[current]; seen {
			c.logger.WarnContext(ctx, "league chain contains a cycle", "league_id", current)
			break
		}
		visited[current] = struct{}{}

		envelope, err := c.fetchLeague(ctx, current)
		if err != nil {
			if len(seasons) > 0 && stderrors.Is(err, errNotFoundStatus) {
				// Oldest known hop points at a league the provider has
				// purged. Stop the walk with what we have.
				c.logger.WarnContext(ctx, "league chain hop missing upstream", "league_id", current)
				break
			}
			return nil, fmt.Errorf("fetch league league_id=%s: %w", current, err)
		}

		season, err := mapLeagueToSeason(envelope)
		if err != nil {
			return nil, fmt.Errorf("map league league_id=%s: %w", current, err)
		}
		seasons = append(seasons, season)
		current = strings.TrimSpace(envelope.PreviousLeagueID)
	}

	sort.Slice(seasons, func(i, j int) bool { return seasons[i].Year < seasons[j].Year })
	return seasons, nil
}

func (c *Client) GetSeasonRosters(ctx context.Context, leagueID string) ([]usecase.ExternalRoster, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	key := "rosters:" + leagueID
	out, err := c.cached(ctx, c.caches.Rosters, key, func(ctx context.Context) (any, error) {
		var rosters []rosterItem
		if _, err := c.doJSON(ctx, "/v1/league/"+leagueID+"/rosters", &rosters); err != nil {
			return nil, fmt.Errorf("fetch rosters league_id=%s: %w", leagueID, err)
		}
		var users []userItem
		if _, err := c.doJSON(ctx, "/v1/league/"+leagueID+"/users", &users); err != nil {
			return nil, fmt.Errorf("fetch users league_id=%s: %w", leagueID, err)
		}
		return mapRosters(rosters, users), nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]usecase.ExternalRoster), nil
}

func (c *Client) GetWeeklyResults(ctx context.Context, leagueID string, week int) ([]usecase.ExternalMatchup, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" || week <= 0 {
		return nil, fmt.Errorf("%w: league id and week are required", usecase.ErrInvalidInput)
	}

	key := fmt.Sprintf("matchups:%s:%d", leagueID, week)
	out, err := c.cached(ctx, c.caches.Matchups, key, func(ctx context.Context) (any, error) {
		var items []matchupItem
		path := fmt.Sprintf("/v1/league/%s/matchups/%d", leagueID, week)
		if _, err := c.doJSON(ctx, path, &items); err != nil {
			return nil, fmt.Errorf("fetch matchups league_id=%s week=%d: %w", leagueID, week, err)
		}

		matchups := make([]usecase.ExternalMatchup, 0, len(items))
		for _, item := range items {
			matchups = append(matchups, usecase.ExternalMatchup{
				RosterID:      item.RosterID,
				PairingID:     item.MatchupID,
				Points:        item.Points,
				PlayersPoints: item.PlayersPoints,
				Starters:      item.Starters,
				Players:       item.Players,
			})
		}
		return matchups, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]usecase.ExternalMatchup), nil
}

func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]usecase.ExternalTransaction, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" || week <= 0 {
		return nil, fmt.Errorf("%w: league id and week are required", usecase.ErrInvalidInput)
	}

	key := fmt.Sprintf("transactions:%s:%d", leagueID, week)
	out, err := c.cached(ctx, c.caches.Transactions, key, func(ctx context.Context) (any, error) {
		var items []transactionItem
		path := fmt.Sprintf("/v1/league/%s/transactions/%d", leagueID, week)
		if _, err := c.doJSON(ctx, path, &items); err != nil {
			return nil, fmt.Errorf("fetch transactions league_id=%s week=%d: %w", leagueID, week, err)
		}

		transactions := make([]usecase.ExternalTransaction, 0, len(items))
		for _, item := range items {
			transactions = append(transactions, usecase.ExternalTransaction{
				Type:      item.Type,
				Status:    item.Status,
				CreatedAt: time.UnixMilli(item.CreatedMs).UTC(),
				Week:      item.Leg,
				Adds:      item.Adds,
				Drops:     item.Drops,
			})
		}
		return transactions, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]usecase.ExternalTransaction), nil
}

// GetBrackets fetches both playoff brackets. A 404 on the losers bracket
// means the league never exposed one; an empty 200 list means it exists
// but has no pairings, and the two must stay distinguishable downstream.
func (c *Client) GetBrackets(ctx context.Context, leagueID string) (usecase.ExternalBrackets, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return usecase.ExternalBrackets{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	key := "brackets:" + leagueID
	out, err := c.cached(ctx, c.caches.Brackets, key, func(ctx context.Context) (any, error) {
		var winners []bracketMatch
		if _, err := c.doJSON(ctx, "/v1/league/"+leagueID+"/winners_bracket", &winners); err != nil {
			return nil, fmt.Errorf("fetch winners bracket league_id=%s: %w", leagueID, err)
		}

		brackets := usecase.ExternalBrackets{
			Championship: mapBracket(winners),
		}

		var losers []bracketMatch
		if _, err := c.doJSON(ctx, "/v1/league/"+leagueID+"/losers_bracket", &losers); err != nil {
			if !stderrors.Is(err, errNotFoundStatus) {
				return nil, fmt.Errorf("fetch losers bracket league_id=%s: %w", leagueID, err)
			}
		} else {
			brackets.Consolation = mapBracket(losers)
			brackets.ConsolationExposed = true
		}
		return brackets, nil
	})
	if err != nil {
		return usecase.ExternalBrackets{}, err
	}
	return out.(usecase.ExternalBrackets), nil
}

func (c *Client) GetLeagueSettings(ctx context.Context, leagueID string) (usecase.ExternalLeagueSettings, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return usecase.ExternalLeagueSettings{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	envelope, err := c.fetchLeague(ctx, leagueID)
	if err != nil {
		return usecase.ExternalLeagueSettings{}, fmt.Errorf("fetch league league_id=%s: %w", leagueID, err)
	}

	year, err := strconv.Atoi(strings.TrimSpace(envelope.Season))
	if err != nil {
		return usecase.ExternalLeagueSettings{}, fmt.Errorf("parse season year %q: %w", envelope.Season, err)
	}

	playoffStart := envelope.Settings.PlayoffWeekStart
	if playoffStart <= 0 {
		playoffStart = 15
	}
	return usecase.ExternalLeagueSettings{
		Season:           year,
		PlayoffStartWeek: playoffStart,
		RegularWeeks:     playoffStart - 1,
		ScoringRules:     envelope.ScoringSettings,
	}, nil
}

func (c *Client) GetWeeklyStats(ctx context.Context, seasonYear, week int) (map[string]map[string]float64, error) {
	if seasonYear <= 0 || week <= 0 {
		return nil, fmt.Errorf("%w: season year and week are required", usecase.ErrInvalidInput)
	}

	key := fmt.Sprintf("stats:%d:%d", seasonYear, week)
	out, err := c.cached(ctx, c.caches.Stats, key, func(ctx context.Context) (any, error) {
		stats := make(map[string]map[string]float64, 2048)
		path := fmt.Sprintf("/v1/stats/nfl/regular/%d/%d", seasonYear, week)
		if _, err := c.doJSON(ctx, path, &stats); err != nil {
			return nil, fmt.Errorf("fetch stats season=%d week=%d: %w", seasonYear, week, err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]map[string]float64), nil
}

func (c *Client) GetPlayerDirectory(ctx context.Context) (map[string]usecase.ExternalPlayerMeta, error) {
	out, err := c.cached(ctx, c.caches.Players, "players:nfl", func(ctx context.Context) (any, error) {
		players := make(map[string]playerItem, 8192)
		if _, err := c.doJSON(ctx, "/v1/players/nfl", &players); err != nil {
			return nil, fmt.Errorf("fetch player directory: %w", err)
		}

		directory := make(map[string]usecase.ExternalPlayerMeta, len(players))
		for id, item := range players {
			directory[id] = usecase.ExternalPlayerMeta{
				Position:   strings.ToUpper(strings.TrimSpace(item.Position)),
				RookieYear: item.rookieYear(),
			}
		}
		return directory, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]usecase.ExternalPlayerMeta), nil
}

func (c *Client) fetchLeague(ctx context.Context, leagueID string) (leagueEnvelope, error) {
	key := "league:" + leagueID
	out, err := c.cached(ctx, c.caches.Leagues, key, func(ctx context.Context) (any, error) {
		var envelope leagueEnvelope
		if _, err := c.doJSON(ctx, "/v1/league/"+leagueID, &envelope); err != nil {
			return nil, err
		}
		return envelope, nil
	})
	if err != nil {
		return leagueEnvelope{}, err
	}
	return out.(leagueEnvelope), nil
}

// cached wraps a loader with the read-through store for its resource.
// Loader errors are never cached.
func (c *Client) cached(ctx context.Context, store *cache.Store, key string, loader func(context.Context) (any, error)) (any, error) {
	if store == nil {
		return loader(ctx)
	}
	return store.GetOrLoad(ctx, key, loader)
}

func (c *Client) doJSON(ctx context.Context, path string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: league data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isSleeperCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: provider status=404 body=%s", errNotFoundStatus, abbreviateBody(raw))
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSleeperTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

var errNotFoundStatus = crerr.New("sleeper resource not found")

func mapLeagueToSeason(envelope leagueEnvelope) (league.Season, error) {
	year, err := strconv.Atoi(strings.TrimSpace(envelope.Season))
	if err != nil {
		return league.Season{}, fmt.Errorf("parse season year %q: %w", envelope.Season, err)
	}

	playoffStart := envelope.Settings.PlayoffWeekStart
	if playoffStart <= 0 {
		playoffStart = 15
	}
	season := league.Season{
		LeagueID:         envelope.LeagueID,
		Year:             year,
		PlayoffStartWeek: playoffStart,
		RegularWeeks:     playoffStart - 1,
	}
	if err := season.ValidateBasic(); err != nil {
		return league.Season{}, err
	}
	return season, nil
}

func mapRosters(rosters []rosterItem, users []userItem) []usecase.ExternalRoster {
	namesByUser := make(map[string]string, len(users))
	for _, user := range users {
		namesByUser[user.UserID] = user.teamName()
	}

	mapped := make([]usecase.ExternalRoster, 0, len(rosters))
	for _, item := range rosters {
		mapped = append(mapped, usecase.ExternalRoster{
			RosterID: item.RosterID,
			OwnerID:  strings.TrimSpace(item.OwnerID),
			TeamName: namesByUser[item.OwnerID],
			Players:  item.Players,
			Starters: item.Starters,
			Reserve:  item.Reserve,
			Taxi:     item.Taxi,
		})
	}
	sort.Slice(mapped, func(i, j int) bool { return mapped[i].RosterID < mapped[j].RosterID })
	return mapped
}

func mapBracket(matches []bracketMatch) []usecase.ExternalBracketMatch {
	mapped := make([]usecase.ExternalBracketMatch, 0, len(matches))
	for _, match := range matches {
		mapped = append(mapped, usecase.ExternalBracketMatch{
			Round: match.Round,
			Team1: match.Team1.RosterID,
			Team2: match.Team2.RosterID,
		})
	}
	return mapped
}

func isSleeperCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return stderrors.Is(err, errSleeperTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
