package memory

import (
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/team"
)

const (
	GroupIDRachaQuinta  = "racha-quinta-meireles"
	GroupIDRachaDomingo = "racha-domingo-benfica"
)

func SeedGroups() []group.Group {
	return []group.Group{
		{ID: GroupIDRachaQuinta, Name: "Racha de Quinta", City: "Fortaleza", Timezone: "America/Fortaleza"},
		{ID: GroupIDRachaDomingo, Name: "Racha do Domingo", City: "Fortaleza", Timezone: "America/Fortaleza"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "qui-azul", GroupID: GroupIDRachaQuinta, Name: "Azul", Color: "#1f4fd1"},
		{ID: "qui-vermelho", GroupID: GroupIDRachaQuinta, Name: "Vermelho", Color: "#d11f2a"},
		{ID: "qui-colete", GroupID: GroupIDRachaQuinta, Name: "Colete", Color: "#f2c80f"},
		{ID: "dom-branco", GroupID: GroupIDRachaDomingo, Name: "Branco", Color: "#ffffff"},
		{ID: "dom-preto", GroupID: GroupIDRachaDomingo, Name: "Preto", Color: "#111111"},
	}
}

// SeedAthletes is returned in roster order.
func SeedAthletes() []athlete.Athlete {
	return []athlete.Athlete{
		{ID: "qui-gk-01", GroupID: GroupIDRachaQuinta, Name: "Francisco Holanda", Nickname: "Chico", PrimaryPosition: athlete.PositionGoalkeeper, IsMember: true},
		{ID: "qui-gk-02", GroupID: GroupIDRachaQuinta, Name: "Raimundo Nonato", Nickname: "Mundinho", PrimaryPosition: athlete.PositionGoalkeeper, IsMember: true},
		{ID: "qui-def-01", GroupID: GroupIDRachaQuinta, Name: "Antonio Carlos Lima", Nickname: "Toinho", PrimaryPosition: athlete.PositionDefender, IsMember: true},
		{ID: "qui-def-02", GroupID: GroupIDRachaQuinta, Name: "Jose Wellington", Nickname: "Wel", PrimaryPosition: athlete.PositionDefender, SecondaryPosition: athlete.PositionMidfielder, IsMember: true},
		{ID: "qui-def-03", GroupID: GroupIDRachaQuinta, Name: "Marcos Vinicius", PrimaryPosition: athlete.PositionDefender, IsMember: false},
		{ID: "qui-mid-01", GroupID: GroupIDRachaQuinta, Name: "Paulo Roberto Sales", Nickname: "Paulinho", PrimaryPosition: athlete.PositionMidfielder, IsMember: true},
		{ID: "qui-mid-02", GroupID: GroupIDRachaQuinta, Name: "Evandro Castelo", Nickname: "Vando", PrimaryPosition: athlete.PositionMidfielder, IsMember: true},
		{ID: "qui-mid-03", GroupID: GroupIDRachaQuinta, Name: "Luiz Gonzaga", Nickname: "Gonza", SecondaryPosition: athlete.PositionMidfielder, IsMember: false},
		{ID: "qui-fwd-01", GroupID: GroupIDRachaQuinta, Name: "Cicero Romao", Nickname: "Cicinho", PrimaryPosition: athlete.PositionForward, IsMember: true},
		{ID: "qui-fwd-02", GroupID: GroupIDRachaQuinta, Name: "Helder Bezerra", Nickname: "Bezerra", PrimaryPosition: athlete.PositionForward, IsMember: true},
		{ID: "dom-gk-01", GroupID: GroupIDRachaDomingo, Name: "Iran Teixeira", PrimaryPosition: athlete.PositionGoalkeeper, IsMember: true},
		{ID: "dom-def-01", GroupID: GroupIDRachaDomingo, Name: "Joao Batista", Nickname: "Batista", PrimaryPosition: athlete.PositionDefender, IsMember: true},
		{ID: "dom-mid-01", GroupID: GroupIDRachaDomingo, Name: "Rafael Aguiar", Nickname: "Rafa", PrimaryPosition: athlete.PositionMidfielder, IsMember: true},
		{ID: "dom-fwd-01", GroupID: GroupIDRachaDomingo, Name: "Tiago Feitosa", Nickname: "Feitosa", PrimaryPosition: athlete.PositionForward, IsMember: true},
	}
}

func SeedMatches() []match.Match {
	// Kick-offs are 19:30 and later in Fortaleza, i.e. 22:30 UTC onwards.
	at := func(year int, month time.Month, day, hour, minute int) time.Time {
		return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	}
	p := func(athleteID, teamID string, goals, assists int) match.Presence {
		return match.Presence{AthleteID: athleteID, TeamID: teamID, Goals: goals, Assists: assists, Starter: true}
	}
	gk := func(athleteID, teamID string) match.Presence {
		return match.Presence{AthleteID: athleteID, TeamID: teamID, Starter: true, Position: athlete.PositionGoalkeeper}
	}

	return []match.Match{
		{
			ID: "qui-2026-02-05-1", GroupID: GroupIDRachaQuinta, PlayedAt: at(2026, time.February, 5, 22, 30),
			Location: "Arena Meireles", Finalized: true,
			TeamAID: "qui-azul", TeamBID: "qui-vermelho", ScoreA: 3, ScoreB: 1,
			Presences: []match.Presence{
				gk("qui-gk-01", "qui-azul"),
				p("qui-def-01", "qui-azul", 0, 1),
				p("qui-mid-01", "qui-azul", 1, 1),
				p("qui-fwd-01", "qui-azul", 2, 0),
				gk("qui-gk-02", "qui-vermelho"),
				p("qui-def-02", "qui-vermelho", 0, 0),
				p("qui-mid-02", "qui-vermelho", 0, 1),
				p("qui-fwd-02", "qui-vermelho", 1, 0),
			},
		},
		{
			ID: "qui-2026-02-05-2", GroupID: GroupIDRachaQuinta, PlayedAt: at(2026, time.February, 5, 23, 15),
			Location: "Arena Meireles", Finalized: true,
			TeamAID: "qui-azul", TeamBID: "qui-colete", ScoreA: 2, ScoreB: 2,
			Presences: []match.Presence{
				gk("qui-gk-01", "qui-azul"),
				p("qui-def-01", "qui-azul", 0, 0),
				p("qui-mid-01", "qui-azul", 0, 2),
				p("qui-fwd-01", "qui-azul", 2, 0),
				p("qui-def-03", "qui-colete", 1, 0),
				p("qui-mid-03", "qui-colete", 1, 1),
			},
		},
		{
			ID: "qui-2026-06-11-1", GroupID: GroupIDRachaQuinta, PlayedAt: at(2026, time.June, 11, 22, 30),
			Location: "Arena Meireles", Finalized: true,
			TeamAID: "qui-vermelho", TeamBID: "qui-azul", ScoreA: 4, ScoreB: 2,
			Presences: []match.Presence{
				gk("qui-gk-02", "qui-vermelho"),
				p("qui-def-02", "qui-vermelho", 1, 0),
				p("qui-mid-02", "qui-vermelho", 1, 2),
				p("qui-fwd-02", "qui-vermelho", 2, 1),
				gk("qui-gk-01", "qui-azul"),
				p("qui-def-01", "qui-azul", 0, 0),
				p("qui-fwd-01", "qui-azul", 1, 0),
				p("qui-mid-01", "qui-azul", 1, 1),
			},
		},
		{
			ID: "qui-2026-09-17-1", GroupID: GroupIDRachaQuinta, PlayedAt: at(2026, time.September, 17, 22, 30),
			Location: "Arena Meireles", Finalized: true,
			TeamAID: "qui-colete", TeamBID: "qui-vermelho", ScoreA: 1, ScoreB: 1,
			Presences: []match.Presence{
				p("qui-def-03", "qui-colete", 0, 1),
				p("qui-mid-03", "qui-colete", 1, 0),
				gk("qui-gk-02", "qui-vermelho"),
				p("qui-fwd-02", "qui-vermelho", 1, 0),
			},
		},
		{
			ID: "qui-2026-10-15-1", GroupID: GroupIDRachaQuinta, PlayedAt: at(2026, time.October, 15, 22, 30),
			Location: "Arena Meireles", Finalized: false,
			TeamAID: "qui-azul", TeamBID: "qui-vermelho",
		},
		{
			ID: "dom-2026-03-01-1", GroupID: GroupIDRachaDomingo, PlayedAt: at(2026, time.March, 1, 11, 0),
			Location: "Quadra do Benfica", Finalized: true,
			TeamAID: "dom-branco", TeamBID: "dom-preto", ScoreA: 0, ScoreB: 2,
			Presences: []match.Presence{
				gk("dom-gk-01", "dom-branco"),
				p("dom-def-01", "dom-branco", 0, 0),
				p("dom-mid-01", "dom-preto", 0, 1),
				p("dom-fwd-01", "dom-preto", 2, 0),
			},
		},
	}
}

// SeedRepositories builds the full in-memory store for the demo rachas.
func SeedRepositories() (*GroupRepository, *AthleteRepository, *TeamRepository, *MatchRepository) {
	return NewGroupRepository(SeedGroups()),
		NewAthleteRepository(SeedAthletes()),
		NewTeamRepository(SeedTeams()),
		NewMatchRepository(SeedMatches())
}
