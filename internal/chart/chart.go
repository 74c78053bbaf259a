package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"nhlvis/internal/config"
	apperrors "nhlvis/internal/errors"
)

// Palette
var (
	ColorTeam      = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	ColorLeague    = color.NRGBA{R: 31, G: 119, B: 180, A: 77}
	ColorBar       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	ColorPlayer    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	ColorTeamOnly  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	ColorBoth      = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	ColorOther     = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	ColorZeroLine  = color.Gray{Y: 64}
	ColorComparand = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Options sets the canvas size and raster resolution
type Options struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// OptionsFromConfig converts chart settings given in inches
func OptionsFromConfig(cfg config.ChartConfig) Options {
	return Options{
		Width:  vg.Length(cfg.Width) * vg.Inch,
		Height: vg.Length(cfg.Height) * vg.Inch,
		DPI:    cfg.DPI,
	}
}

// DefaultOptions is a 10x6 inch canvas at 300 DPI
func DefaultOptions() Options {
	return Options{Width: 10 * vg.Inch, Height: 6 * vg.Inch, DPI: config.DefaultDPI}
}

// Renderer builds and saves plots
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// NewRenderer creates a renderer; zero option fields take the defaults
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.DPI <= 0 {
		opts.DPI = def.DPI
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{opts: opts, logger: logger.With(slog.String("component", "chart"))}
}

// Save writes p to path. PNG is rasterized at the configured DPI; other
// extensions (.svg, .pdf, .eps, .jpg, .tif) are left to plot.Save.
func (r *Renderer) Save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create chart directory", err).WithContext("path", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" {
		if err := p.Save(r.opts.Width, r.opts.Height, path); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("save %s chart", ext), err).WithContext("path", path)
		}
		return nil
	}

	c := vgimg.NewWith(vgimg.UseWH(r.opts.Width, r.opts.Height), vgimg.UseDPI(r.opts.DPI))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("create chart file", err).WithContext("path", path)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return apperrors.NewStorageError("encode png", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewStorageError("close chart file", err).WithContext("path", path)
	}

	r.logger.Debug("Chart saved", slog.String("path", path), slog.Int("dpi", r.opts.DPI))
	return nil
}
