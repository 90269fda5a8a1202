package httpapi

import (
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/highlight"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/domain/ranking"
	"github.com/riskibarqy/racha-league/internal/usecase"
)

type periodDTO struct {
	Kind  string  `json:"kind"`
	Key   string  `json:"key"`
	Start *string `json:"start"`
	End   *string `json:"end"`
}

type athleteRankingEntryDTO struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	DisplayName   string  `json:"displayName"`
	Nickname      string  `json:"nickname,omitempty"`
	Position      *string `json:"position"`
	IsMember      bool    `json:"isMember"`
	Points        int     `json:"points"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	MatchesPlayed int     `json:"matchesPlayed"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"winRate"`
	Trend         string  `json:"trend"`
}

type athleteRankingDTO struct {
	GroupID     string                   `json:"groupId"`
	Period      periodDTO                `json:"period"`
	Metric      string                   `json:"metric"`
	Position    *string                  `json:"position"`
	DataVersion int64                    `json:"dataVersion"`
	Entries     []athleteRankingEntryDTO `json:"entries"`
}

type teamStandingEntryDTO struct {
	Rank           int    `json:"rank"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	Points         int    `json:"points"`
	MatchesPlayed  int    `json:"matchesPlayed"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Trend          string `json:"trend"`
}

type teamStandingsDTO struct {
	GroupID     string                 `json:"groupId"`
	Period      periodDTO              `json:"period"`
	DataVersion int64                  `json:"dataVersion"`
	Entries     []teamStandingEntryDTO `json:"entries"`
}

type rankingOverviewDTO struct {
	GroupID     string                   `json:"groupId"`
	Period      periodDTO                `json:"period"`
	DataVersion int64                    `json:"dataVersion"`
	Points      []athleteRankingEntryDTO `json:"points"`
	Goals       []athleteRankingEntryDTO `json:"goals"`
	Assists     []athleteRankingEntryDTO `json:"assists"`
	Teams       []teamStandingEntryDTO   `json:"teams"`
}

// highlightRolesDTO keeps every role present in the payload, null when the
// role could not be determined.
type highlightRolesDTO struct {
	TopScorer      *string `json:"topScorer"`
	TopAssister    *string `json:"topAssister"`
	Goalkeeper     *string `json:"goalkeeper"`
	Defender       *string `json:"defender"`
	DayTopScorer   *string `json:"dayTopScorer"`
	DayTopAssister *string `json:"dayTopAssister"`
}

type teamDayDTO struct {
	TeamID         string `json:"teamId"`
	Points         int    `json:"points"`
	MatchesPlayed  int    `json:"matchesPlayed"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
}

type dailyHighlightsDTO struct {
	GroupID        string            `json:"groupId"`
	Date           string            `json:"date"`
	DataVersion    int64             `json:"dataVersion"`
	ChampionTeamID *string           `json:"championTeamId"`
	Highlights     highlightRolesDTO `json:"highlights"`
	Teams          []teamDayDTO      `json:"teams"`
}

type presenceDTO struct {
	AthleteID   string  `json:"athleteId"`
	TeamID      string  `json:"teamId"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	YellowCards int     `json:"yellowCards"`
	RedCards    int     `json:"redCards"`
	Starter     bool    `json:"starter"`
	Position    *string `json:"position"`
}

type matchDTO struct {
	ID        string        `json:"id"`
	GroupID   string        `json:"groupId"`
	PlayedAt  string        `json:"playedAt"`
	Location  string        `json:"location,omitempty"`
	Finalized bool          `json:"finalized"`
	TeamAID   string        `json:"teamAId"`
	TeamBID   string        `json:"teamBId"`
	ScoreA    int           `json:"scoreA"`
	ScoreB    int           `json:"scoreB"`
	Presences []presenceDTO `json:"presences"`
}

type recordMatchDTO struct {
	Match       matchDTO `json:"match"`
	DataVersion int64    `json:"dataVersion"`
	Created     bool     `json:"created"`
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func toPeriodDTO(sel period.Selector, r period.Range) periodDTO {
	out := periodDTO{Kind: string(sel.Kind), Key: sel.Key()}
	if r.Unbounded {
		return out
	}
	start := r.Start.UTC().Format(time.RFC3339)
	end := r.End.UTC().Format(time.RFC3339)
	out.Start = &start
	out.End = &end
	return out
}

func toAthleteEntryDTOs(entries []ranking.AthleteEntry) []athleteRankingEntryDTO {
	out := make([]athleteRankingEntryDTO, 0, len(entries))
	for _, item := range entries {
		out = append(out, athleteRankingEntryDTO{
			Rank:          item.Rank,
			ID:            item.AthleteID,
			DisplayName:   item.DisplayName,
			Nickname:      item.Nickname,
			Position:      optionalString(string(item.Position)),
			IsMember:      item.IsMember,
			Points:        item.Points,
			Goals:         item.Goals,
			Assists:       item.Assists,
			MatchesPlayed: item.Matches,
			Wins:          item.Wins,
			Draws:         item.Draws,
			Losses:        item.Losses,
			WinRate:       item.WinRate,
			Trend:         string(item.Trend),
		})
	}
	return out
}

func toTeamEntryDTOs(entries []ranking.TeamEntry) []teamStandingEntryDTO {
	out := make([]teamStandingEntryDTO, 0, len(entries))
	for _, item := range entries {
		out = append(out, teamStandingEntryDTO{
			Rank:           item.Rank,
			ID:             item.TeamID,
			Name:           item.Name,
			Color:          item.Color,
			LogoURL:        item.LogoURL,
			Points:         item.Points,
			MatchesPlayed:  item.Matches,
			Wins:           item.Wins,
			Draws:          item.Draws,
			Losses:         item.Losses,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Trend:          string(item.Trend),
		})
	}
	return out
}

func toAthleteRankingDTO(result usecase.AthleteRanking) athleteRankingDTO {
	return athleteRankingDTO{
		GroupID:     result.GroupID,
		Period:      toPeriodDTO(result.Period, result.Range),
		Metric:      string(result.Metric),
		Position:    optionalString(string(result.Position)),
		DataVersion: result.DataVersion,
		Entries:     toAthleteEntryDTOs(result.Entries),
	}
}

func toTeamStandingsDTO(result usecase.TeamStandings) teamStandingsDTO {
	return teamStandingsDTO{
		GroupID:     result.GroupID,
		Period:      toPeriodDTO(result.Period, result.Range),
		DataVersion: result.DataVersion,
		Entries:     toTeamEntryDTOs(result.Entries),
	}
}

func toRankingOverviewDTO(result usecase.RankingOverview) rankingOverviewDTO {
	return rankingOverviewDTO{
		GroupID:     result.GroupID,
		Period:      toPeriodDTO(result.Period, result.Range),
		DataVersion: result.DataVersion,
		Points:      toAthleteEntryDTOs(result.Points),
		Goals:       toAthleteEntryDTOs(result.Goals),
		Assists:     toAthleteEntryDTOs(result.Assists),
		Teams:       toTeamEntryDTOs(result.Teams),
	}
}

func toDailyHighlightsDTO(result usecase.DailyHighlights) dailyHighlightsDTO {
	set := result.Set
	teams := make([]teamDayDTO, 0, len(set.Teams))
	for _, item := range set.Teams {
		teams = append(teams, teamDayDTO{
			TeamID:         item.TeamID,
			Points:         item.Points,
			MatchesPlayed:  item.Matches,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference(),
		})
	}

	return dailyHighlightsDTO{
		GroupID:        result.GroupID,
		Date:           set.Date.String(),
		DataVersion:    result.DataVersion,
		ChampionTeamID: set.ChampionTeamID,
		Highlights: highlightRolesDTO{
			TopScorer:      set.Highlights[highlight.RoleTopScorer],
			TopAssister:    set.Highlights[highlight.RoleTopAssister],
			Goalkeeper:     set.Highlights[highlight.RoleGoalkeeper],
			Defender:       set.Highlights[highlight.RoleDefender],
			DayTopScorer:   set.Highlights[highlight.RoleDayTopScorer],
			DayTopAssister: set.Highlights[highlight.RoleDayTopAssister],
		},
		Teams: teams,
	}
}

func toMatchDTO(item match.Match) matchDTO {
	presences := make([]presenceDTO, 0, len(item.Presences))
	for _, p := range item.Presences {
		presences = append(presences, presenceDTO{
			AthleteID:   p.AthleteID,
			TeamID:      p.TeamID,
			Goals:       p.Goals,
			Assists:     p.Assists,
			YellowCards: p.YellowCards,
			RedCards:    p.RedCards,
			Starter:     p.Starter,
			Position:    optionalString(string(p.Position)),
		})
	}

	return matchDTO{
		ID:        item.ID,
		GroupID:   item.GroupID,
		PlayedAt:  item.PlayedAt.UTC().Format(time.RFC3339),
		Location:  item.Location,
		Finalized: item.Finalized,
		TeamAID:   item.TeamAID,
		TeamBID:   item.TeamBID,
		ScoreA:    item.ScoreA,
		ScoreB:    item.ScoreB,
		Presences: presences,
	}
}

func toMatchDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toMatchDTO(item))
	}
	return out
}
