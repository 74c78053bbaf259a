package domain

import "strings"

// Table is an immutable set of player-season rows.
// Every operation returns a new Table; the backing rows are never shared
// with callers.
type Table struct {
	rows []PlayerSeason
}

// NewTable copies rows into a new Table
func NewTable(rows []PlayerSeason) Table {
	cpy := make([]PlayerSeason, len(rows))
	copy(cpy, rows)
	return Table{rows: cpy}
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows
func (t Table) Empty() bool {
	return len(t.rows) == 0
}

// Rows returns a copy of the rows
func (t Table) Rows() []PlayerSeason {
	cpy := make([]PlayerSeason, len(t.rows))
	copy(cpy, t.rows)
	return cpy
}

// Row returns the i-th row
func (t Table) Row(i int) PlayerSeason {
	return t.rows[i]
}

// Filter returns the rows for which keep returns true
func (t Table) Filter(keep func(PlayerSeason) bool) Table {
	out := make([]PlayerSeason, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return Table{rows: out}
}

// ForTeam returns rows whose team field equals team exactly
func (t Table) ForTeam(team string) Table {
	return t.Filter(func(r PlayerSeason) bool { return r.Team == team })
}

// ExcludingTeam returns rows whose team field is not team
func (t Table) ExcludingTeam(team string) Table {
	return t.Filter(func(r PlayerSeason) bool { return r.Team != team })
}

// ForPosition returns the rows belonging to position or group p
func (t Table) ForPosition(p Position) Table {
	return t.Filter(func(r PlayerSeason) bool { return p.Includes(r.Position) })
}

// ForSeason returns the rows of one season year
func (t Table) ForSeason(season int) Table {
	return t.Filter(func(r PlayerSeason) bool { return r.Season == season })
}

// TeamContains returns rows whose team field contains team, case-insensitively.
// Multi-team rows such as "TOR,UTA" match either abbreviation.
func (t Table) TeamContains(team string) Table {
	needle := strings.ToLower(team)
	return t.Filter(func(r PlayerSeason) bool {
		return strings.Contains(strings.ToLower(r.Team), needle)
	})
}

// CompleteCases returns rows that have every metric present
func (t Table) CompleteCases(metrics []Metric) Table {
	return t.Filter(func(r PlayerSeason) bool { return r.HasAll(metrics) })
}

// Values returns the present values of metric m in row order
func (t Table) Values(m Metric) []float64 {
	values := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		if s := r.Stat(m); s.Valid {
			values = append(values, s.Value)
		}
	}
	return values
}
