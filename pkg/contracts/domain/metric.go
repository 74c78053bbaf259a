package domain

// Metric is a canonical column code of the cleaned player-season table
type Metric string

const (
	MetricGamesPlayed      Metric = "GP"
	MetricGoals            Metric = "G"
	MetricAssists          Metric = "A"
	MetricPoints           Metric = "P"
	MetricShots            Metric = "S"
	MetricPenaltyMinutes   Metric = "PIM"
	MetricPlusMinus        Metric = "+/-"
	MetricEVGoals          Metric = "EVG"
	MetricEVPoints         Metric = "EVP"
	MetricPPGoals          Metric = "PPG"
	MetricPPPoints         Metric = "PPP"
	MetricSHGoals          Metric = "SHG"
	MetricSHPoints         Metric = "SHP"
	MetricOTGoals          Metric = "OTG"
	MetricGameWinningGoals Metric = "GWG"
	MetricShootingPct      Metric = "S%"
	MetricFaceoffWinPct    Metric = "FOW%"
	MetricTOIPerGame       Metric = "TOI/GP"
	MetricPointsPerGame    Metric = "P/GP"
)

// MetricKind separates counts from rates
type MetricKind string

const (
	MetricKindCount MetricKind = "count"
	MetricKindRate  MetricKind = "rate"
)

var metricKinds = map[Metric]MetricKind{
	MetricGamesPlayed:      MetricKindCount,
	MetricGoals:            MetricKindCount,
	MetricAssists:          MetricKindCount,
	MetricPoints:           MetricKindCount,
	MetricShots:            MetricKindCount,
	MetricPenaltyMinutes:   MetricKindCount,
	MetricPlusMinus:        MetricKindCount,
	MetricEVGoals:          MetricKindCount,
	MetricEVPoints:         MetricKindCount,
	MetricPPGoals:          MetricKindCount,
	MetricPPPoints:         MetricKindCount,
	MetricSHGoals:          MetricKindCount,
	MetricSHPoints:         MetricKindCount,
	MetricOTGoals:          MetricKindCount,
	MetricGameWinningGoals: MetricKindCount,
	MetricShootingPct:      MetricKindRate,
	MetricFaceoffWinPct:    MetricKindRate,
	MetricTOIPerGame:       MetricKindRate,
	MetricPointsPerGame:    MetricKindRate,
}

// Known reports whether m is a metric of the canonical schema
func (m Metric) Known() bool {
	_, ok := metricKinds[m]
	return ok
}

// Kind returns the metric kind; unknown metrics report an empty kind
func (m Metric) Kind() MetricKind {
	return metricKinds[m]
}

// String implements fmt.Stringer
func (m Metric) String() string {
	return string(m)
}

// ParseMetrics converts codes to metrics, preserving order
func ParseMetrics(codes []string) []Metric {
	metrics := make([]Metric, 0, len(codes))
	for _, c := range codes {
		metrics = append(metrics, Metric(c))
	}
	return metrics
}
