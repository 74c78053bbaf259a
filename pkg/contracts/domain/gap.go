package domain

// GapSign fixes the direction of a gap
type GapSign string

const (
	// SignTeamMinusLeague is the canonical convention: a positive gap means
	// the team exceeds the reference population.
	SignTeamMinusLeague GapSign = "team_minus_league"
	SignLeagueMinusTeam GapSign = "league_minus_team"
)

// Apply computes the signed difference between team and league
func (s GapSign) Apply(team, league float64) float64 {
	if s == SignLeagueMinusTeam {
		return league - team
	}
	return team - league
}

// GapResult compares one metric between a team and its reference population
type GapResult struct {
	Metric      Metric  `json:"metric"`
	TeamValue   float64 `json:"team_value"`
	LeagueValue float64 `json:"league_value"`
	Gap         float64 `json:"gap"`
	TeamN       int     `json:"team_n"`
	LeagueN     int     `json:"league_n"`
}

// GapTable holds one GapResult per requested metric, in request order
type GapTable struct {
	Team    string      `json:"team"`
	Scope   Position    `json:"scope,omitempty"` // empty for the whole league
	Sign    GapSign     `json:"sign"`
	Results []GapResult `json:"results"`
}

// Lookup returns the result for metric m
func (g GapTable) Lookup(m Metric) (GapResult, bool) {
	for _, r := range g.Results {
		if r.Metric == m {
			return r, true
		}
	}
	return GapResult{}, false
}

// Metrics returns the metrics in result order
func (g GapTable) Metrics() []Metric {
	out := make([]Metric, len(g.Results))
	for i, r := range g.Results {
		out[i] = r.Metric
	}
	return out
}

// Gaps returns the gap values in result order
func (g GapTable) Gaps() []float64 {
	out := make([]float64, len(g.Results))
	for i, r := range g.Results {
		out[i] = r.Gap
	}
	return out
}
