// Package analysis compares a team's skaters with the league.
//
// Gap functions take a domain.Table and return a domain.GapTable with one
// result per requested metric. Central tendency is the median for every
// metric. Absent values are excluded per metric unless Options.Missing is
// MissingCompleteCases, and an empty side yields NaN rather than an error.
// The scatter helper is strict and returns an EMPTY_DATA error when a
// position filter leaves nothing to plot.
//
// Player helpers summarize a career, list a roster and compare a player
// with the season's league mean.
package analysis
