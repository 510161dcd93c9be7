// Package charts renders report figures as inline SVG with gonum/plot.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ErrNoData is returned when a chart is requested without any values.
var ErrNoData = errors.New("no data to plot")

// MaxLegendEntries caps the in-figure legend; larger cohorts rely on the
// HTML legend next to the figure.
const MaxLegendEntries = 12

var highlightColor = color.RGBA{R: 220, G: 38, B: 38, A: 255}

// SVGRenderer implements Renderer on top of gonum/plot.
type SVGRenderer struct {
	width  vg.Length
	height vg.Length
	logger logrus.FieldLogger
}

// NewSVGRenderer creates a renderer producing figures of the given size in inches.
func NewSVGRenderer(widthIn, heightIn float64, logger logrus.FieldLogger) *SVGRenderer {
	return &SVGRenderer{
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
		logger: logger.WithField("component", "charts"),
	}
}

// SeriesColor returns the CSS colour used for the i-th series.
func SeriesColor(i int) string {
	r, g, b, _ := plotutil.Color(i).RGBA()

	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// seriesDashes is solid for the first colour cycle. Every later cycle gets a
// longer dash, so no two series share both colour and dash pattern.
func seriesDashes(i int) []vg.Length {
	cycle := i / len(plotutil.DefaultColors)
	if cycle == 0 {
		return nil
	}

	return []vg.Length{vg.Points(float64(1 + 2*cycle)), vg.Points(float64(2 + cycle%3))}
}

// SeriesDash returns the SVG stroke-dasharray of the i-th series, empty for
// a solid line.
func SeriesDash(i int) string {
	dashes := seriesDashes(i)

	parts := make([]string, len(dashes))
	for j, d := range dashes {
		parts[j] = strconv.FormatFloat(d.Points(), 'f', -1, 64)
	}

	return strings.Join(parts, ",")
}

// Lines draws one line per series on shared axes.
func (r *SVGRenderer) Lines(xLabel, yLabel string, series []Series) (string, error) {
	p := newPlot(xLabel, yLabel)
	p.Add(plotter.NewGrid())

	drawn := 0

	for i, s := range series {
		if len(s.X) == 0 || len(s.X) != len(s.Y) {
			continue
		}

		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("failed to build line for %s: %w", s.Name, err)
		}

		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.2)
		line.LineStyle.Dashes = seriesDashes(i)
		p.Add(line)

		if len(series) <= MaxLegendEntries {
			p.Legend.Add(s.Name, line)
		}

		drawn++
	}

	if drawn == 0 {
		return "", ErrNoData
	}

	p.Legend.Top = true

	return r.renderFramed(p)
}

// Bars draws a single bar per category.
func (r *SVGRenderer) Bars(yLabel string, categories []string, values []float64) (string, error) {
	return r.GroupedBars(yLabel, categories, []Group{{Values: values}})
}

// GroupedBars draws the groups side by side within each category.
func (r *SVGRenderer) GroupedBars(yLabel string, categories []string, groups []Group) (string, error) {
	if err := checkGroups(categories, groups); err != nil {
		return "", err
	}

	p := newPlot("", yLabel)
	width := r.barWidth(len(categories), len(groups))

	for i, g := range groups {
		bars, err := plotter.NewBarChart(plotter.Values(g.Values), width)
		if err != nil {
			return "", fmt.Errorf("failed to build bars for %s: %w", g.Name, err)
		}

		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		bars.Offset = width * vg.Length(2*i-len(groups)+1) / 2
		p.Add(bars)

		if g.Name != "" {
			p.Legend.Add(g.Name, bars)
		}
	}

	r.nominalX(p, categories)

	return r.render(p)
}

// StackedBars stacks the groups on top of each other within each category.
func (r *SVGRenderer) StackedBars(yLabel string, categories []string, groups []Group) (string, error) {
	if err := checkGroups(categories, groups); err != nil {
		return "", err
	}

	p := newPlot("", yLabel)
	width := r.barWidth(len(categories), 1)

	var below *plotter.BarChart

	for i, g := range groups {
		bars, err := plotter.NewBarChart(plotter.Values(g.Values), width)
		if err != nil {
			return "", fmt.Errorf("failed to build bars for %s: %w", g.Name, err)
		}

		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0

		if below != nil {
			bars.StackOn(below)
		}

		below = bars

		p.Add(bars)
		p.Legend.Add(g.Name, bars)
	}

	r.nominalX(p, categories)

	return r.render(p)
}

// Scatter draws labelled points. Highlighted points are drawn in a separate
// colour and listed in the legend as outliers.
func (r *SVGRenderer) Scatter(xLabel, yLabel string, points []Point) (string, error) {
	if len(points) == 0 {
		return "", ErrNoData
	}

	p := newPlot(xLabel, yLabel)
	p.Add(plotter.NewGrid())

	var normal, flagged plotter.XYs

	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(points)),
		Labels: make([]string, len(points)),
	}

	for i, pt := range points {
		xy := plotter.XY{X: pt.X, Y: pt.Y}
		labels.XYs[i] = xy
		labels.Labels[i] = pt.Label

		if pt.Highlight {
			flagged = append(flagged, xy)
		} else {
			normal = append(normal, xy)
		}
	}

	if len(normal) > 0 {
		s, err := newScatter(normal, plotutil.Color(0))
		if err != nil {
			return "", err
		}

		p.Add(s)
	}

	if len(flagged) > 0 {
		s, err := newScatter(flagged, highlightColor)
		if err != nil {
			return "", err
		}

		p.Add(s)
		p.Legend.Add("outlier", s)
		p.Legend.Top = true
	}

	l, err := plotter.NewLabels(labels)
	if err != nil {
		return "", fmt.Errorf("failed to build point labels: %w", err)
	}

	l.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(3)}
	p.Add(l)

	padRange(&p.X)
	padRange(&p.Y)

	return r.render(p)
}

func newScatter(xys plotter.XYs, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter: %w", err)
	}

	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(3.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	return s, nil
}

func newPlot(xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	return p
}

func checkGroups(categories []string, groups []Group) error {
	if len(categories) == 0 || len(groups) == 0 {
		return ErrNoData
	}

	for _, g := range groups {
		if len(g.Values) != len(categories) {
			return fmt.Errorf("group %q has %d values for %d categories", g.Name, len(g.Values), len(categories))
		}
	}

	return nil
}

// barWidth fits all bars into roughly 70% of the figure width.
func (r *SVGRenderer) barWidth(categories, perCategory int) vg.Length {
	w := r.width * 0.7 / vg.Length(categories*perCategory)

	return vg.Length(math.Max(2, math.Min(float64(w), 24)))
}

func (r *SVGRenderer) nominalX(p *plot.Plot, categories []string) {
	p.NominalX(categories...)
	p.Legend.Top = true

	if len(categories) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}
}

// padRange widens an axis so labels at the extremes stay inside the figure.
func padRange(a *plot.Axis) {
	span := a.Max - a.Min
	if span == 0 {
		span = math.Max(math.Abs(a.Max), 1)
	}

	a.Min -= span * 0.05
	a.Max += span * 0.1
}

func (r *SVGRenderer) render(p *plot.Plot) (string, error) {
	svg, _, err := r.draw(p)

	return svg, err
}

// renderFramed also records where the data area sits in the figure and the
// axis ranges it spans, so the page script can map the pointer back to data
// coordinates.
func (r *SVGRenderer) renderFramed(p *plot.Plot) (string, error) {
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		if a.Min == a.Max {
			padRange(a)
		}
	}

	svg, dc, err := r.draw(p)
	if err != nil {
		return "", err
	}

	return strings.Replace(svg, "<svg", "<svg"+frameAttributes(p, dc), 1), nil
}

func (r *SVGRenderer) draw(p *plot.Plot) (string, draw.Canvas, error) {
	c := vgsvg.New(r.width, r.height)
	dc := draw.New(c)
	p.Draw(dc)

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return "", dc, fmt.Errorf("failed to write SVG: %w", err)
	}

	r.logger.WithField("bytes", buf.Len()).Debug("Rendered chart")

	return inline(buf.String()), dc, nil
}

// frameAttributes describes the data area as fractions of the figure,
// measured from its top-left corner (left top right bottom), and the axis
// ranges (xmin xmax ymin ymax).
func frameAttributes(p *plot.Plot, dc draw.Canvas) string {
	da := p.DataCanvas(dc)

	w := float64(dc.Max.X - dc.Min.X)
	h := float64(dc.Max.Y - dc.Min.Y)

	left := float64(da.Min.X-dc.Min.X) / w
	right := float64(da.Max.X-dc.Min.X) / w
	top := float64(dc.Max.Y-da.Max.Y) / h
	bottom := float64(dc.Max.Y-da.Min.Y) / h

	return fmt.Sprintf(` data-frame="%.5f %.5f %.5f %.5f" data-range="%g %g %g %g"`,
		left, top, right, bottom, p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
}

// inline drops the XML prolog so the document can be embedded in HTML.
func inline(svg string) string {
	if i := strings.Index(svg, "<svg"); i > 0 {
		return svg[i:]
	}

	return svg
}
