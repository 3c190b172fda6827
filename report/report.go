// Package report renders the transfer curve of a wrapper circuit as an HTML
// line chart: the ideal B(x)·N next to the quantized value the circuit is
// expected to count, for every x_bin.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/expect"
)

// Series names used in the chart legend.
const (
	SeriesIdeal    = "ideal B(x)·N"
	SeriesExpected = "expected z_bin"
)

// TransferCurve writes an HTML page with one line chart to w.
// It fails on the same inputs as expect.Table (including m_input above
// expect.MaxTableInput), before writing anything.
func TransferCurve(w io.Writer, title string, coeffs []float64, bits config.Bitstream) error {
	table, err := expect.Table(coeffs, bits)
	if err != nil {
		return fmt.Errorf("TransferCurve: %w", err)
	}

	scale := math.Ldexp(1, bits.MInput)
	xs := make([]string, len(table))
	ideal := make([]opts.LineData, len(table))
	expected := make([]opts.LineData, len(table))
	for x, v := range table {
		xs[x] = strconv.Itoa(x)
		ideal[x] = opts.LineData{Value: expect.Bernstein(coeffs, float64(x)/scale) * float64(bits.N)}
		expected[x] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("N=%d m_input=%d m_coeff=%d", bits.N, bits.MInput, bits.MCoeff),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x_bin"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "z_bin"}),
	)
	line.SetXAxis(xs).
		AddSeries(SeriesIdeal, ideal).
		AddSeries(SeriesExpected, expected)

	page := components.NewPage().SetPageTitle(title)
	page.AddCharts(line)
	if err = page.Render(w); err != nil {
		return fmt.Errorf("TransferCurve: %w", err)
	}
	return nil
}
