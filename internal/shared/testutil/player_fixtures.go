package testutil

import "nhlvis/pkg/contracts/domain"

// Skater builds a player-season row with the given counting stats.
// Rates are derived the way the stats service reports them.
func Skater(name, team string, pos domain.Position, season int, gp, g, a, shots float64) domain.PlayerSeason {
	r := domain.PlayerSeason{
		Player:         name,
		LastName:       name,
		Team:           team,
		Position:       pos,
		Season:         season,
		GamesPlayed:    domain.Known(gp),
		Goals:          domain.Known(g),
		Assists:        domain.Known(a),
		Points:         domain.Known(g + a),
		Shots:          domain.Known(shots),
		PenaltyMinutes: domain.Known(0),
		PlusMinus:      domain.Known(0),
		TOIPerGame:     domain.Known(900),
		FaceoffWinPct:  domain.Missing,
	}
	if shots > 0 {
		r.ShootingPct = domain.Known(g / shots)
	}
	if gp > 0 {
		r.PointsPerGame = domain.Known((g + a) / gp)
	}
	return r
}

// SampleTable is a small league: two UTA skaters, an OTT forward, a TOR
// defenseman and a traded player listed under two teams.
func SampleTable() domain.Table {
	return domain.NewTable([]domain.PlayerSeason{
		Skater("Clayton Keller", "UTA", domain.PositionCenter, 2024, 82, 10, 20, 100),
		Skater("Dylan Guenther", "UTA", domain.PositionRightWing, 2024, 70, 6, 12, 60),
		Skater("Brady Tkachuk", "OTT", domain.PositionLeftWing, 2024, 80, 4, 10, 0),
		Skater("Morgan Rielly", "TOR", domain.PositionDefense, 2024, 78, 2, 30, 40),
		Skater("Nick Bjugstad", "TOR,UTA", domain.PositionCenter, 2024, 40, 3, 3, 30),
	})
}
