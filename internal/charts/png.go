package charts

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"aquaeco/internal/models"
)

// pngColors maps known columns to go-chart stroke colors, mirroring the
// ECharts palette
var pngColors = map[string]drawing.Color{
	"solar":       {R: 251, G: 192, B: 45, A: 255},
	"biogas":      {R: 139, G: 195, B: 74, A: 255},
	"wind":        {R: 77, G: 208, B: 225, A: 255},
	"temperature": {R: 239, G: 83, B: 80, A: 255},
	"humidity":    {R: 92, G: 107, B: 192, A: 255},
}

func pngColor(column string) drawing.Color {
	if c, ok := pngColors[column]; ok {
		return c
	}
	return drawing.Color{R: 46, G: 125, B: 50, A: 255}
}

// TrendPNG renders the requested columns as a static time-series image.
// Missing columns follow the TrendSnippet contract.
func TrendPNG(ds *models.Dataset, columns []string, title string, w io.Writer) error {
	var present, missing []string
	for _, c := range columns {
		if ds.HasColumn(c) {
			present = append(present, c)
		} else {
			missing = append(missing, c)
		}
	}
	if len(present) == 0 {
		if len(missing) > 0 {
			return &RenderError{Columns: missing}
		}
		return fmt.Errorf("no columns requested")
	}
	if ds.Len() < 2 {
		// go-chart cannot compute a range from fewer than two points
		return fmt.Errorf("need at least 2 records to render a PNG trend, got %d", ds.Len())
	}

	xValues := ds.Timestamps()

	var series []chart.Series
	for _, c := range present {
		vals, err := ds.Series(c)
		if err != nil {
			return err
		}
		series = append(series, chart.TimeSeries{
			Name: c,
			Style: chart.Style{
				StrokeColor: pngColor(c),
				StrokeWidth: 2,
			},
			XValues: xValues,
			YValues: vals,
		})
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return time.Unix(0, int64(f)).Format("01-02 15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Value",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render trend chart: %w", err)
	}

	if len(missing) > 0 {
		return &RenderError{Columns: missing}
	}
	return nil
}
