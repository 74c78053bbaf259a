// Package report runs the full team-vs-league analysis: gap tables for the
// count and percentage metric sets over the whole league, all forwards and
// each position, plus the forward scatter. Every gap table is charted,
// written as CSV and collected into one workbook.
package report
