package charts

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"aquaeco/internal/models"
)

// TrendPage renders a standalone interactive chart document for one
// dataset. Missing columns follow the TrendSnippet contract: present
// columns still render, absent ones come back as a *RenderError.
func TrendPage(ds *models.Dataset, columns []string, mode Mode, title, subtitle string) ([]byte, error) {
	var present, missing []string
	for _, c := range columns {
		if ds.HasColumn(c) {
			present = append(present, c)
		} else {
			missing = append(missing, c)
		}
	}

	var renderErr error
	if len(missing) > 0 {
		renderErr = &RenderError{Columns: missing}
	}
	if len(present) == 0 {
		return nil, renderErr
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "900px",
			Height: "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	line.SetXAxis(formatTimestamps(ds.Timestamps()))
	for _, c := range present {
		vals, err := ds.Series(c)
		if err != nil {
			return nil, err
		}
		data := make([]opts.LineData, len(vals))
		for i, v := range vals {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(c, data)
	}

	if mode == Area {
		line.SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Stack: "total"}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.5}),
		)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), renderErr
}
