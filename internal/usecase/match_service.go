package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/dataversion"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/domain/team"
	"github.com/riskibarqy/racha-league/internal/platform/id"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
)

type RecordMatchInput struct {
	GroupID string
	// MatchID is optional; a new id is generated when empty, otherwise the
	// existing match is replaced.
	MatchID   string
	PlayedAt  time.Time
	Location  string
	TeamAID   string
	TeamBID   string
	ScoreA    int
	ScoreB    int
	Presences []match.Presence
}

type RecordMatchResult struct {
	Match       match.Match
	DataVersion int64
	// Created is false when an existing match of the group was replaced.
	Created bool
}

// CacheInvalidator drops derived data of a group after its matches change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, groupID string)
}

type MatchService struct {
	groupRepo   group.Repository
	teamRepo    team.Repository
	athleteRepo athlete.Repository
	matchRepo   match.Repository
	versions    dataversion.Repository
	ids         id.Generator
	invalidator CacheInvalidator
	logger      *logging.Logger
	now         func() time.Time
}

func NewMatchService(
	groupRepo group.Repository,
	teamRepo team.Repository,
	athleteRepo athlete.Repository,
	matchRepo match.Repository,
	versions dataversion.Repository,
	ids id.Generator,
	invalidator CacheInvalidator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		groupRepo:   groupRepo,
		teamRepo:    teamRepo,
		athleteRepo: athleteRepo,
		matchRepo:   matchRepo,
		versions:    versions,
		ids:         ids,
		invalidator: invalidator,
		logger:      logger.Named("match"),
		now:         time.Now,
	}
}

// RecordResult stores a finalized match with its presences and bumps the
// group's data version.
func (s *MatchService) RecordResult(ctx context.Context, input RecordMatchInput) (RecordMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	groupID, err := s.ensureGroup(ctx, input.GroupID)
	if err != nil {
		return RecordMatchResult{}, err
	}

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		matchID, err = s.ids.NewID()
		if err != nil {
			return RecordMatchResult{}, fmt.Errorf("generate match id: %w", err)
		}
	}

	item := match.Match{
		ID:        matchID,
		GroupID:   groupID,
		PlayedAt:  input.PlayedAt.UTC(),
		Location:  strings.TrimSpace(input.Location),
		Finalized: true,
		TeamAID:   strings.TrimSpace(input.TeamAID),
		TeamBID:   strings.TrimSpace(input.TeamBID),
		ScoreA:    input.ScoreA,
		ScoreB:    input.ScoreB,
		Presences: input.Presences,
	}
	if err := item.Validate(); err != nil {
		return RecordMatchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateReferences(ctx, item); err != nil {
		return RecordMatchResult{}, err
	}

	created, err := s.matchRepo.Upsert(ctx, item)
	if errors.Is(err, match.ErrOwnedByOtherGroup) {
		return RecordMatchResult{}, fmt.Errorf("%w: match id %s is taken", ErrInvalidInput, matchID)
	}
	if err != nil {
		return RecordMatchResult{}, fmt.Errorf("upsert match: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, groupID)
	}

	version, err := s.versions.Bump(ctx, groupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "bump data version failed after match upsert", "group_id", groupID, "match_id", matchID, "error", err)
		return RecordMatchResult{}, fmt.Errorf("%w: bump data version: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"group_id", groupID,
		"match_id", matchID,
		"presences", len(item.Presences),
		"created", created,
		"data_version", version,
	)
	return RecordMatchResult{Match: item, DataVersion: version, Created: created}, nil
}

func (s *MatchService) validateReferences(ctx context.Context, item match.Match) error {
	for _, teamID := range []string{item.TeamAID, item.TeamBID} {
		_, exists, err := s.teamRepo.GetByID(ctx, item.GroupID, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: unknown team %s", ErrInvalidInput, teamID)
		}
	}

	roster, err := s.athleteRepo.ListByGroup(ctx, item.GroupID)
	if err != nil {
		return fmt.Errorf("list athletes: %w", err)
	}
	members := make(map[string]struct{}, len(roster))
	for _, a := range roster {
		members[a.ID] = struct{}{}
	}

	for _, p := range item.Presences {
		if _, ok := members[p.AthleteID]; !ok {
			return fmt.Errorf("%w: athlete %s is not on the roster", ErrInvalidInput, p.AthleteID)
		}
		if !item.HasTeam(p.TeamID) {
			return fmt.Errorf("%w: athlete %s assigned to team %q outside the match", ErrInvalidInput, p.AthleteID, p.TeamID)
		}
	}
	return nil
}

// ListMatches returns the group's matches inside sel ordered by date, newest first.
func (s *MatchService) ListMatches(ctx context.Context, groupID string, sel period.Selector) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	r, err := period.Resolve(sel, s.now())
	if err != nil {
		return nil, err
	}
	groupID, err = s.ensureGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var items []match.Match
	if r.Unbounded {
		items, err = s.matchRepo.ListByGroup(ctx, groupID)
	} else {
		items, err = s.matchRepo.ListByGroupBetween(ctx, groupID, r.Start, r.End)
	}
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if r.Contains(item.PlayedAt) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PlayedAt.Equal(out[j].PlayedAt) {
			return out[i].PlayedAt.After(out[j].PlayedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MatchService) ensureGroup(ctx context.Context, groupID string) (string, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return "", fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	_, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return "", fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	return groupID, nil
}
