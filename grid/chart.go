package grid

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ErrBadChart indicates chart input that cannot be plotted: no points, or a
// line index the molecule does not have.
var ErrBadChart = errors.New("grid: cannot chart")

// Chart renders the sweep results for one transition as an HTML page with
// two plots: excitation temperature and optical depth against density.
// Points sharing a (Tkin, Cdmol) pair form one series.
func Chart(w io.Writer, points []Point, lineIdx int, title string) error {
	if len(points) == 0 {
		return fmt.Errorf("no points: %w", ErrBadChart)
	}
	for i := range points {
		if points[i].Result == nil || lineIdx < 0 || lineIdx >= len(points[i].Result.TauL) {
			return fmt.Errorf("line index %d: %w", lineIdx, ErrBadChart)
		}
	}

	type key struct{ tkin, cdmol float64 }
	series := make(map[key][]Point)
	var keys []key
	for _, pt := range points {
		k := key{pt.Tkin, pt.Cdmol}
		if _, ok := series[k]; !ok {
			keys = append(keys, k)
		}
		series[k] = append(series[k], pt)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].tkin != keys[j].tkin {
			return keys[i].tkin < keys[j].tkin
		}

		return keys[i].cdmol < keys[j].cdmol
	})

	lineTex := newLineChart(title, "excitation temperature", "Tex (K)")
	lineTau := newLineChart(title, "line-center optical depth", "tau")

	var xaxis []string
	for _, pt := range series[keys[0]] {
		xaxis = append(xaxis, fmt.Sprintf("%.3g", pt.Density))
	}
	lineTex.SetXAxis(xaxis)
	lineTau.SetXAxis(xaxis)

	for _, k := range keys {
		name := fmt.Sprintf("T=%gK N=%.2g", k.tkin, k.cdmol)
		texData := make([]opts.LineData, 0, len(series[k]))
		tauData := make([]opts.LineData, 0, len(series[k]))
		for _, pt := range series[k] {
			texData = append(texData, opts.LineData{Value: pt.Result.Tex[lineIdx]})
			tauData = append(tauData, opts.LineData{Value: pt.Result.TauL[lineIdx]})
		}
		lineTex.AddSeries(name, texData)
		lineTau.AddSeries(name, tauData)
	}

	page := components.NewPage()
	page.AddCharts(lineTex, lineTau)

	return page.Render(w)
}

func newLineChart(title, subtitle, yname string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "density (cm^-3)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yname,
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	return line
}
