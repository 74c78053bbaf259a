// Package chart renders gap tables and scatter data with gonum/plot.
//
// Builders return a *plot.Plot; Renderer.Save writes PNG at the configured
// DPI and leaves vector formats to plot.Save. WriteOverview draws a compact
// SVG page of every gap table of a run.
package chart
