package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/team"
)

type stubGroupRepo struct {
	items []group.Group
}

func (s *stubGroupRepo) List(context.Context) ([]group.Group, error) {
	return append([]group.Group(nil), s.items...), nil
}

func (s *stubGroupRepo) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	for _, item := range s.items {
		if item.ID == groupID {
			return item, true, nil
		}
	}
	return group.Group{}, false, nil
}

type stubAthleteRepo struct {
	items []athlete.Athlete
}

func (s *stubAthleteRepo) ListByGroup(_ context.Context, groupID string) ([]athlete.Athlete, error) {
	out := make([]athlete.Athlete, 0, len(s.items))
	for _, item := range s.items {
		if item.GroupID == groupID {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubTeamRepo struct {
	items []team.Team
}

func (s *stubTeamRepo) ListByGroup(_ context.Context, groupID string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(s.items))
	for _, item := range s.items {
		if item.GroupID == groupID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubTeamRepo) GetByID(_ context.Context, groupID, teamID string) (team.Team, bool, error) {
	for _, item := range s.items {
		if item.GroupID == groupID && item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

type stubMatchRepo struct {
	mu    sync.Mutex
	items []match.Match
	loads atomic.Int32
}

func (s *stubMatchRepo) ListByGroup(_ context.Context, groupID string) ([]match.Match, error) {
	s.loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]match.Match, 0, len(s.items))
	for _, item := range s.items {
		if item.GroupID == groupID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubMatchRepo) ListByGroupBetween(_ context.Context, groupID string, start, end time.Time) ([]match.Match, error) {
	s.loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]match.Match, 0, len(s.items))
	for _, item := range s.items {
		if item.GroupID == groupID && !item.PlayedAt.Before(start) && item.PlayedAt.Before(end) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubMatchRepo) Upsert(_ context.Context, item match.Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != item.ID {
			continue
		}
		if s.items[i].GroupID != item.GroupID {
			return false, match.ErrOwnedByOtherGroup
		}
		s.items[i] = item
		return false, nil
	}
	s.items = append(s.items, item)
	return true, nil
}

type stubVersionRepo struct {
	mu       sync.Mutex
	versions map[string]int64
	err      error
	reads    int
}

func (s *stubVersionRepo) Current(_ context.Context, groupID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return 0, s.err
	}
	return s.versions[groupID], nil
}

func (s *stubVersionRepo) Bump(_ context.Context, groupID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if s.versions == nil {
		s.versions = make(map[string]int64)
	}
	s.versions[groupID]++
	return s.versions[groupID], nil
}

type recordingObserver struct {
	mu        sync.Mutex
	anomalies []string
	hits      int
	misses    int
}

func (o *recordingObserver) ObserveAnomaly(reason string) {
	o.mu.Lock()
	o.anomalies = append(o.anomalies, reason)
	o.mu.Unlock()
}

func (o *recordingObserver) ObserveCache(_ string, hit bool) {
	o.mu.Lock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
	o.mu.Unlock()
}

func (o *recordingObserver) ObserveComputation(string, time.Duration) {}

type sequentialIDs struct {
	next int
}

func (s *sequentialIDs) NewID() (string, error) {
	s.next++
	return "mt_" + string(rune('0'+s.next)), nil
}

var errStoreDown = errors.New("store down")

// fixtureClock is 2025-06-15 09:00 in league time, inside quarter two.
var fixtureClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixtureClock }

func racha() (*stubGroupRepo, *stubAthleteRepo, *stubTeamRepo, *stubMatchRepo) {
	groups := &stubGroupRepo{items: []group.Group{{ID: "grp-1", Name: "Racha do Sabado"}}}
	athletes := &stubAthleteRepo{items: []athlete.Athlete{
		{ID: "ath-gk", GroupID: "grp-1", Name: "Goleiro", PrimaryPosition: athlete.PositionGoalkeeper},
		{ID: "ath-x", GroupID: "grp-1", Name: "Xavier", PrimaryPosition: athlete.PositionForward},
		{ID: "ath-y", GroupID: "grp-1", Name: "Yuri", PrimaryPosition: athlete.PositionMidfielder},
		{ID: "ath-z", GroupID: "grp-1", Name: "Zeca", PrimaryPosition: athlete.PositionDefender},
	}}
	teams := &stubTeamRepo{items: []team.Team{
		{ID: "blue", GroupID: "grp-1", Name: "Azul"},
		{ID: "red", GroupID: "grp-1", Name: "Vermelho"},
	}}

	may := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	march := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{items: []match.Match{
		{
			ID: "m-q2-1", GroupID: "grp-1", PlayedAt: may, Finalized: true,
			TeamAID: "blue", TeamBID: "red", ScoreA: 4, ScoreB: 2,
			Presences: []match.Presence{
				{AthleteID: "ath-x", TeamID: "blue", Goals: 3, Assists: 1},
				{AthleteID: "ath-gk", TeamID: "blue"},
				{AthleteID: "ath-y", TeamID: "red", Goals: 2},
				{AthleteID: "ath-ghost", TeamID: "green"},
			},
		},
		{
			ID: "m-q2-2", GroupID: "grp-1", PlayedAt: may.Add(time.Hour), Finalized: true,
			TeamAID: "red", TeamBID: "blue", ScoreA: 2, ScoreB: 2,
			Presences: []match.Presence{
				{AthleteID: "ath-x", TeamID: "blue", Assists: 2},
				{AthleteID: "ath-y", TeamID: "red", Goals: 1},
				{AthleteID: "ath-z", TeamID: "red", Goals: 1},
			},
		},
		{
			ID: "m-q1-1", GroupID: "grp-1", PlayedAt: march, Finalized: true,
			TeamAID: "red", TeamBID: "blue", ScoreA: 3, ScoreB: 0,
			Presences: []match.Presence{
				{AthleteID: "ath-y", TeamID: "red", Goals: 3},
				{AthleteID: "ath-x", TeamID: "blue"},
			},
		},
	}}
	return groups, athletes, teams, matches
}
