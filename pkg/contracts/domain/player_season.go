package domain

import (
	"math"
	"strings"
)

// Position represents an NHL skater position code
type Position string

const (
	PositionCenter    Position = "C"
	PositionLeftWing  Position = "L"
	PositionRightWing Position = "R"
	PositionDefense   Position = "D"

	// PositionForward is the derived C/L/R group. It never appears on a record.
	PositionForward Position = "F"
)

// ForwardPositions returns the position codes that make up the forward group
func ForwardPositions() []Position {
	return []Position{PositionCenter, PositionLeftWing, PositionRightWing}
}

// ParsePositionGroup maps user input to a position or group.
// "F" and "forward" (any case) select the forward group; anything else is
// taken as an exact position code.
func ParsePositionGroup(s string) Position {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "forward") || strings.EqualFold(trimmed, string(PositionForward)) {
		return PositionForward
	}
	return Position(trimmed)
}

// IsGroup reports whether p names a derived group rather than a stored code
func (p Position) IsGroup() bool {
	return p == PositionForward
}

// Includes reports whether a record with position code other belongs to p
func (p Position) Includes(other Position) bool {
	if p == PositionForward {
		return other == PositionCenter || other == PositionLeftWing || other == PositionRightWing
	}
	return p == other
}

// Stat is a metric value that may be absent.
// Rates are absent when their denominator is zero (S% with no shots).
type Stat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Known wraps a present value
func Known(v float64) Stat {
	return Stat{Value: v, Valid: true}
}

// Missing is the absent value
var Missing = Stat{}

// Float returns the value, or NaN when absent
func (s Stat) Float() float64 {
	if !s.Valid {
		return math.NaN()
	}
	return s.Value
}

// PlayerSeason is one row per (player, team, season).
// A traded player appears once per team stint.
type PlayerSeason struct {
	PlayerID      int      `json:"player_id"`
	Player        string   `json:"player"`
	LastName      string   `json:"last_name"`
	Team          string   `json:"team"`
	Position      Position `json:"position"`
	ShootsCatches string   `json:"shoots_catches"`
	Season        int      `json:"season"`

	GamesPlayed      Stat `json:"gp"`
	Goals            Stat `json:"g"`
	Assists          Stat `json:"a"`
	Points           Stat `json:"p"`
	Shots            Stat `json:"s"`
	PenaltyMinutes   Stat `json:"pim"`
	PlusMinus        Stat `json:"plus_minus"`
	EVGoals          Stat `json:"evg"`
	EVPoints         Stat `json:"evp"`
	PPGoals          Stat `json:"ppg"`
	PPPoints         Stat `json:"ppp"`
	SHGoals          Stat `json:"shg"`
	SHPoints         Stat `json:"shp"`
	OTGoals          Stat `json:"otg"`
	GameWinningGoals Stat `json:"gwg"`

	ShootingPct   Stat `json:"shooting_pct"`
	FaceoffWinPct Stat `json:"faceoff_win_pct"`
	TOIPerGame    Stat `json:"toi_per_game"`
	PointsPerGame Stat `json:"points_per_game"`
}

// Stat returns the value of metric m on the record.
// Unknown metrics read as Missing.
func (r PlayerSeason) Stat(m Metric) Stat {
	switch m {
	case MetricGamesPlayed:
		return r.GamesPlayed
	case MetricGoals:
		return r.Goals
	case MetricAssists:
		return r.Assists
	case MetricPoints:
		return r.Points
	case MetricShots:
		return r.Shots
	case MetricPenaltyMinutes:
		return r.PenaltyMinutes
	case MetricPlusMinus:
		return r.PlusMinus
	case MetricEVGoals:
		return r.EVGoals
	case MetricEVPoints:
		return r.EVPoints
	case MetricPPGoals:
		return r.PPGoals
	case MetricPPPoints:
		return r.PPPoints
	case MetricSHGoals:
		return r.SHGoals
	case MetricSHPoints:
		return r.SHPoints
	case MetricOTGoals:
		return r.OTGoals
	case MetricGameWinningGoals:
		return r.GameWinningGoals
	case MetricShootingPct:
		return r.ShootingPct
	case MetricFaceoffWinPct:
		return r.FaceoffWinPct
	case MetricTOIPerGame:
		return r.TOIPerGame
	case MetricPointsPerGame:
		return r.PointsPerGame
	default:
		return Missing
	}
}

// HasAll reports whether every metric in metrics is present on the record
func (r PlayerSeason) HasAll(metrics []Metric) bool {
	for _, m := range metrics {
		if !r.Stat(m).Valid {
			return false
		}
	}
	return true
}
