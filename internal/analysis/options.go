package analysis

import "nhlvis/pkg/contracts/domain"

// MissingPolicy selects how absent metric values are treated
type MissingPolicy string

const (
	// MissingPerMetric drops a row only from the metrics it lacks
	MissingPerMetric MissingPolicy = "per_metric"
	// MissingCompleteCases drops any row missing one of the requested metrics
	MissingCompleteCases MissingPolicy = "complete_cases"
)

// Options tunes a gap computation. The zero value is team minus league
// with per-metric exclusion.
type Options struct {
	Sign    domain.GapSign
	Missing MissingPolicy
}

// DefaultOptions returns the canonical options
func DefaultOptions() Options {
	return Options{Sign: domain.SignTeamMinusLeague, Missing: MissingPerMetric}
}

func (o Options) sign() domain.GapSign {
	if o.Sign == "" {
		return domain.SignTeamMinusLeague
	}
	return o.Sign
}
