package nhlapi

import (
	"strconv"
)

// RawColumns is the fixed column order of the raw CSV, which is the set of
// skater summary fields sorted alphabetically.
var RawColumns = []string{
	"assists",
	"evGoals",
	"evPoints",
	"faceoffWinPct",
	"gameWinningGoals",
	"gamesPlayed",
	"goals",
	"lastName",
	"otGoals",
	"penaltyMinutes",
	"playerId",
	"plusMinus",
	"points",
	"pointsPerGame",
	"positionCode",
	"ppGoals",
	"ppPoints",
	"seasonId",
	"shGoals",
	"shPoints",
	"shootingPct",
	"shootsCatches",
	"shots",
	"skaterFullName",
	"teamAbbrevs",
	"timeOnIcePerGame",
}

// SkaterSummary is one record of the skater summary report.
// Numeric fields are pointers because the service sends null for
// undefined rates and, on older seasons, for some counts.
type SkaterSummary struct {
	Assists          *int     `json:"assists"`
	EVGoals          *int     `json:"evGoals"`
	EVPoints         *int     `json:"evPoints"`
	FaceoffWinPct    *float64 `json:"faceoffWinPct"`
	GameWinningGoals *int     `json:"gameWinningGoals"`
	GamesPlayed      *int     `json:"gamesPlayed"`
	Goals            *int     `json:"goals"`
	LastName         string   `json:"lastName"`
	OTGoals          *int     `json:"otGoals"`
	PenaltyMinutes   *int     `json:"penaltyMinutes"`
	PlayerID         int      `json:"playerId"`
	PlusMinus        *int     `json:"plusMinus"`
	Points           *int     `json:"points"`
	PointsPerGame    *float64 `json:"pointsPerGame"`
	PositionCode     string   `json:"positionCode"`
	PPGoals          *int     `json:"ppGoals"`
	PPPoints         *int     `json:"ppPoints"`
	SeasonID         int      `json:"seasonId"`
	SHGoals          *int     `json:"shGoals"`
	SHPoints         *int     `json:"shPoints"`
	ShootingPct      *float64 `json:"shootingPct"`
	ShootsCatches    string   `json:"shootsCatches"`
	Shots            *int     `json:"shots"`
	SkaterFullName   string   `json:"skaterFullName"`
	TeamAbbrevs      string   `json:"teamAbbrevs"`
	TimeOnIcePerGame *float64 `json:"timeOnIcePerGame"`
}

// pageEnvelope is the response body of one report page
type pageEnvelope struct {
	Data  []SkaterSummary `json:"data"`
	Total int             `json:"total"`
}

// Row renders the record as CSV cells in RawColumns order.
// Null values become empty cells.
func (s SkaterSummary) Row() []string {
	return []string{
		formatInt(s.Assists),
		formatInt(s.EVGoals),
		formatInt(s.EVPoints),
		formatFloat(s.FaceoffWinPct),
		formatInt(s.GameWinningGoals),
		formatInt(s.GamesPlayed),
		formatInt(s.Goals),
		s.LastName,
		formatInt(s.OTGoals),
		formatInt(s.PenaltyMinutes),
		strconv.Itoa(s.PlayerID),
		formatInt(s.PlusMinus),
		formatInt(s.Points),
		formatFloat(s.PointsPerGame),
		s.PositionCode,
		formatInt(s.PPGoals),
		formatInt(s.PPPoints),
		strconv.Itoa(s.SeasonID),
		formatInt(s.SHGoals),
		formatInt(s.SHPoints),
		formatFloat(s.ShootingPct),
		s.ShootsCatches,
		formatInt(s.Shots),
		s.SkaterFullName,
		s.TeamAbbrevs,
		formatFloat(s.TimeOnIcePerGame),
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
