package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquaeco/internal/models"
)

// Snippet represents an embeddable ECharts chart fragment.
// Div contains a single root <div id="..."></div>, Script the <script>
// block that initializes the chart in that div, and HTML the complete
// snippet with both combined for template substitution.
type Snippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// Mode selects how a trend chart draws its series
type Mode int

const (
	// Line draws one plain line per column
	Line Mode = iota
	// Area draws stacked areas per column
	Area
)

// RenderError reports requested columns that are absent from the dataset
type RenderError struct {
	Columns []string
}

// Error implements the error interface
func (e *RenderError) Error() string {
	return fmt.Sprintf("missing column(s): %s", strings.Join(e.Columns, ", "))
}

// IsMissingColumn reports whether err is a *RenderError
func IsMissingColumn(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// seriesColors maps known columns to their display colors
var seriesColors = map[string]string{
	"solar":       "#fbc02d",
	"biogas":      "#8bc34a",
	"wind":        "#4dd0e1",
	"temperature": "#ef5350",
	"humidity":    "#5c6bc0",
}

func seriesColor(column string) string {
	if c, ok := seriesColors[column]; ok {
		return c
	}
	return "#2e7d32"
}

// TrendSnippet builds an ECharts line or area chart for the requested
// columns, x axis = record timestamps, raw values as-is. Columns absent
// from the dataset are reported via *RenderError; series for the columns
// that are present are still produced, so a partially matching request
// yields both a usable snippet and an error.
func TrendSnippet(ds *models.Dataset, columns []string, mode Mode, id, title string) (Snippet, error) {
	if ds == nil {
		return Snippet{}, fmt.Errorf("dataset cannot be nil")
	}

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
		return Snippet{}, renderErr
	}

	xdata := formatTimestamps(ds.Timestamps())

	series := make([]interface{}, 0, len(present))
	for _, c := range present {
		vals, err := ds.Series(c)
		if err != nil {
			return Snippet{}, err
		}
		entry := map[string]interface{}{
			"name":       c,
			"type":       "line",
			"showSymbol": true,
			"symbolSize": 6,
			"lineStyle":  map[string]interface{}{"width": 2, "color": seriesColor(c)},
			"itemStyle":  map[string]interface{}{"color": seriesColor(c)},
			"data":       vals,
		}
		if mode == Area {
			entry["stack"] = "total"
			entry["areaStyle"] = map[string]interface{}{"opacity": 0.5}
		}
		series = append(series, entry)
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{
			"trigger":     "axis",
			"axisPointer": map[string]interface{}{"type": "cross"},
		},
		"grid": map[string]interface{}{"left": "8%", "right": "8%", "bottom": "15%", "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":      "category",
			"data":      xdata,
			"axisLabel": map[string]interface{}{"rotate": 45},
		},
		"yAxis":  map[string]interface{}{"type": "value"},
		"series": series,
		"legend": map[string]interface{}{"data": present, "bottom": 0},
	}

	snippet, err := buildSnippet(id, title, option, 420)
	if err != nil {
		return Snippet{}, err
	}
	return snippet, renderErr
}

// CompositionSnippet builds an ECharts pie chart of per-column totals.
// Missing columns follow the same contract as TrendSnippet.
func CompositionSnippet(ds *models.Dataset, columns []string, id, title string) (Snippet, error) {
	if ds == nil {
		return Snippet{}, fmt.Errorf("dataset cannot be nil")
	}

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
		return Snippet{}, renderErr
	}

	pieData := make([]interface{}, 0, len(present))
	for _, c := range present {
		vals, err := ds.Series(c)
		if err != nil {
			return Snippet{}, err
		}
		total := 0.0
		for _, v := range vals {
			total += v
		}
		pieData = append(pieData, map[string]interface{}{
			"name":      c,
			"value":     total,
			"itemStyle": map[string]interface{}{"color": seriesColor(c)},
		})
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{"trigger": "item", "formatter": "{b}: {c} ({d}%)"},
		"legend":  map[string]interface{}{"data": present, "bottom": 0},
		"series": []interface{}{
			map[string]interface{}{
				"type":   "pie",
				"radius": "60%",
				"label":  map[string]interface{}{"formatter": "{b}: {d}%"},
				"data":   pieData,
			},
		},
	}

	snippet, err := buildSnippet(id, title, option, 360)
	if err != nil {
		return Snippet{}, err
	}
	return snippet, renderErr
}

// buildSnippet assembles the div + init script pair around marshaled
// ECharts options
func buildSnippet(id, title string, option map[string]interface{}, height int) (Snippet, error) {
	optJSON, err := json.Marshal(option)
	if err != nil {
		return Snippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%dpx;\"></div>", id, height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, title, div, script)

	return Snippet{ID: id, Title: title, Div: div, Script: script, HTML: completeHTML}, nil
}

// formatTimestamps renders x-axis labels, keeping the date-only form when
// no record carries a time of day
func formatTimestamps(times []time.Time) []string {
	layout := "2006-01-02"
	for _, t := range times {
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
			layout = "2006-01-02 15:04"
			break
		}
	}
	xdata := make([]string, len(times))
	for i, t := range times {
		xdata[i] = t.Format(layout)
	}
	return xdata
}
