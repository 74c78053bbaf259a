package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"nhlvis/internal/analysis"
	"nhlvis/internal/app"
	"nhlvis/internal/chart"
	"nhlvis/internal/config"
	"nhlvis/internal/dataprocessing"
	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

const usage = `usage: player <command> [flags]

commands:
  summary    aggregate a player's rows over seasons
  roster     list a team's rows for one season
  compare    chart a player's season against league averages
  highlight  scatter every row, highlighting a player and a team
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	in := fs.String("in", "", "cleaned CSV path (defaults to the cleaned file under the data directory)")
	name := fs.String("name", "", "player full name")
	team := fs.String("team", "", "team abbreviation")
	season := fs.Int("season", 0, "season start year, 0 for every season")
	seasons := fs.String("seasons", "", "season start years: 2024, 2022,2023 or 2020-2024")
	metrics := fs.String("metrics", "", "comma separated metric codes")
	x := fs.String("x", string(domain.MetricGoals), "highlight x metric")
	y := fs.String("y", string(domain.MetricAssists), "highlight y metric")
	sizeByGP := fs.Bool("size-by-gp", false, "scale highlight points by games played")
	switch command {
	case "summary", "roster", "compare", "highlight":
		_ = fs.Parse(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	application, err := app.New("player")
	if err != nil {
		app.Exit(nil, "Startup failed", err)
	}
	defer application.Close()

	logger := application.Logger
	ctx, cancel := application.Context()
	defer cancel()

	inPath := *in
	if inPath == "" {
		inPath = application.Paths.CleanedCSV
	}

	err = application.RunStage(ctx, "player_"+command, func(ctx context.Context) error {
		table, err := dataprocessing.NewLoader(logger).LoadFile(inPath)
		if err != nil {
			return err
		}
		renderer := chart.NewRenderer(chart.OptionsFromConfig(application.Config.Chart), logger)
		format := application.Config.Chart.Format

		switch command {
		case "summary":
			years, err := parseSeasonYears(*seasons)
			if err != nil {
				return err
			}
			summary, err := analysis.SummarizePlayer(table, *name, years)
			if err != nil {
				return err
			}
			printSummary(os.Stdout, summary)

		case "roster":
			if *team == "" || *season == 0 {
				return apperrors.NewAppValidationError("roster needs -team and -season")
			}
			printRoster(os.Stdout, analysis.Roster(table, *team, *season))

		case "compare":
			list := config.PlayerMetrics()
			if *metrics != "" {
				if list, err = parseMetrics(*metrics); err != nil {
					return err
				}
			}
			cmp, err := analysis.PlayerVsLeague(table, *name, *season, list)
			if err != nil {
				return err
			}
			p, err := renderer.PlayerVsLeague(cmp)
			if err != nil {
				return err
			}
			return renderer.Save(p, application.Paths.ChartPath(compareFileName(cmp.Player, cmp.Season, format)))

		case "highlight":
			axes, err := parseMetrics(*x + "," + *y)
			if err != nil {
				return err
			}
			data := analysis.HighlightScatter(table, analysis.HighlightOptions{
				X:        axes[0],
				Y:        axes[1],
				Player:   *name,
				Team:     *team,
				Season:   *season,
				SizeByGP: *sizeByGP,
			})
			p, err := renderer.HighlightScatter(data)
			if err != nil {
				return err
			}
			return renderer.Save(p, application.Paths.ChartPath(highlightFileName(data, format)))
		}
		return nil
	})
	if err != nil {
		application.Fail("Player command failed", err)
	}
}

// parseSeasonYears reads "", "2024", "2022,2023" or "2020-2024"
func parseSeasonYears(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	invalid := apperrors.NewAppValidationError(fmt.Sprintf("invalid seasons %q", s))

	if from, to, ok := strings.Cut(s, "-"); ok {
		start, err1 := strconv.Atoi(strings.TrimSpace(from))
		end, err2 := strconv.Atoi(strings.TrimSpace(to))
		if err1 != nil || err2 != nil || end < start {
			return nil, invalid
		}
		years := make([]int, 0, end-start+1)
		for y := start; y <= end; y++ {
			years = append(years, y)
		}
		return years, nil
	}

	var years []int
	for _, part := range strings.Split(s, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, invalid
		}
		years = append(years, y)
	}
	return years, nil
}

func parseMetrics(s string) ([]domain.Metric, error) {
	var out []domain.Metric
	for _, code := range strings.Split(s, ",") {
		m := domain.Metric(strings.TrimSpace(code))
		if !m.Known() {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown metric %q", code))
		}
		out = append(out, m)
	}
	return out, nil
}

func fileSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '%':
			return 'p'
		}
		return '_'
	}, s)
}

func compareFileName(player string, season int, format string) string {
	return fmt.Sprintf("%s_vs_league_%d.%s", fileSlug(player), season, format)
}

func highlightFileName(data analysis.HighlightData, format string) string {
	parts := []string{"highlight", fileSlug(string(data.X)), fileSlug(string(data.Y))}
	if data.Player != "" {
		parts = append(parts, fileSlug(data.Player))
	}
	if data.Team != "" {
		parts = append(parts, fileSlug(data.Team))
	}
	return strings.Join(parts, "_") + "." + format
}

func formatStat(s domain.Stat) string {
	if !s.Valid {
		return "-"
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

func printSummary(w io.Writer, s analysis.PlayerSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Player\t%s\n", s.Player)
	fmt.Fprintf(tw, "Seasons\t%s\n", s.Seasons)
	fmt.Fprintf(tw, "Teams\t%s\n", s.Teams)
	fmt.Fprintf(tw, "Positions\t%s\n", s.Positions)
	fmt.Fprintf(tw, "S/C\t%s\n", s.ShootsCatches)
	fmt.Fprintf(tw, "Rows\t%d\n", s.Rows)
	for _, m := range append(analysis.SummedMetrics(), analysis.AveragedMetrics()...) {
		fmt.Fprintf(tw, "%s\t%s\n", m, formatStat(s.Stat(m)))
	}
	for _, m := range []domain.Metric{domain.MetricPointsPerGame, domain.MetricShootingPct} {
		fmt.Fprintf(tw, "%s\t%s\n", m, formatStat(s.Stat(m)))
	}
	tw.Flush()
}

func printRoster(w io.Writer, roster domain.Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Player\tTeam\tPos\tGP\tG\tA\tP")
	for _, r := range roster.Rows() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Player, r.Team, r.Position,
			formatStat(r.GamesPlayed), formatStat(r.Goals), formatStat(r.Assists), formatStat(r.Points))
	}
	tw.Flush()
}
