package charts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"aquaeco/internal/models"
)

func energyDataset(t *testing.T) *models.Dataset {
	t.Helper()
	ds := models.NewDataset(models.EnergySchema, []string{"solar", "biogas", "wind"})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := [][]float64{
		{5, 2, 3},
		{6, 1, 4},
	}
	for i, row := range rows {
		if err := ds.Append(base.AddDate(0, 0, i), row); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return ds
}

func sensorDatasetWithoutHumidity(t *testing.T) *models.Dataset {
	t.Helper()
	ds := models.NewDataset(models.SensorSchema, []string{"temperature"})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{20.5, 21.0} {
		if err := ds.Append(base.AddDate(0, 0, i), []float64{v}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return ds
}

func TestTrendSnippetLine(t *testing.T) {
	ds := energyDataset(t)

	snippet, err := TrendSnippet(ds, []string{"solar", "biogas", "wind"}, Line, "chart-energy-trend", "Energy Generation Over Time")
	if err != nil {
		t.Fatalf("TrendSnippet failed: %v", err)
	}

	if snippet.ID != "chart-energy-trend" {
		t.Errorf("Unexpected snippet ID: %s", snippet.ID)
	}
	if !strings.Contains(snippet.Div, "chart-energy-trend") {
		t.Error("Div should reference the chart element ID")
	}
	// Three series, two points each
	for _, name := range []string{"solar", "biogas", "wind"} {
		if !strings.Contains(snippet.Script, `"name":"`+name+`"`) {
			t.Errorf("Script missing series %q", name)
		}
	}
	if !strings.Contains(snippet.Script, `"data":[5,6]`) {
		t.Errorf("Script missing solar data points: %s", snippet.Script)
	}
	if !strings.Contains(snippet.Script, "2025-01-01") || !strings.Contains(snippet.Script, "2025-01-02") {
		t.Error("Script missing x-axis labels")
	}
	if strings.Contains(snippet.Script, "areaStyle") {
		t.Error("Line mode should not emit area styling")
	}
}

func TestTrendSnippetArea(t *testing.T) {
	ds := energyDataset(t)

	snippet, err := TrendSnippet(ds, []string{"solar", "wind"}, Area, "chart-energy-area", "Energy Composition Over Time")
	if err != nil {
		t.Fatalf("TrendSnippet failed: %v", err)
	}
	if !strings.Contains(snippet.Script, "areaStyle") {
		t.Error("Area mode should emit area styling")
	}
	if !strings.Contains(snippet.Script, `"stack":"total"`) {
		t.Error("Area mode should stack series")
	}
}

func TestTrendSnippetMissingColumn(t *testing.T) {
	ds := sensorDatasetWithoutHumidity(t)

	snippet, err := TrendSnippet(ds, []string{"temperature", "humidity"}, Line, "chart-water-trend", "Water Quality")
	if err == nil {
		t.Fatal("Expected RenderError for humidity, got nil")
	}
	if !IsMissingColumn(err) {
		t.Fatalf("Expected RenderError, got: %v", err)
	}
	if !strings.Contains(err.Error(), "humidity") {
		t.Errorf("Error should name the missing column: %v", err)
	}

	// Temperature series is still plotted
	if !strings.Contains(snippet.Script, `"name":"temperature"`) {
		t.Error("Present column should still be plotted")
	}
	if strings.Contains(snippet.Script, `"name":"humidity"`) {
		t.Error("Absent column must not appear in the chart")
	}
}

func TestTrendSnippetAllColumnsMissing(t *testing.T) {
	ds := sensorDatasetWithoutHumidity(t)

	snippet, err := TrendSnippet(ds, []string{"humidity"}, Line, "chart-water-trend", "Water Quality")
	if !IsMissingColumn(err) {
		t.Fatalf("Expected RenderError, got: %v", err)
	}
	if snippet.HTML != "" {
		t.Error("No snippet should be produced when every column is missing")
	}
}

func TestCompositionSnippet(t *testing.T) {
	ds := energyDataset(t)

	snippet, err := CompositionSnippet(ds, []string{"solar", "biogas", "wind"}, "chart-energy-composition", "Energy Source Composition")
	if err != nil {
		t.Fatalf("CompositionSnippet failed: %v", err)
	}

	// Totals: solar 11, biogas 3, wind 7
	if !strings.Contains(snippet.Script, `"value":11`) {
		t.Errorf("Expected solar total 11 in script: %s", snippet.Script)
	}
	if !strings.Contains(snippet.Script, `"value":3`) {
		t.Error("Expected biogas total 3 in script")
	}
	if !strings.Contains(snippet.Script, `"value":7`) {
		t.Error("Expected wind total 7 in script")
	}
	if !strings.Contains(snippet.Script, `"type":"pie"`) {
		t.Error("Composition chart should be a pie")
	}
}

func TestTrendPage(t *testing.T) {
	ds := energyDataset(t)

	page, err := TrendPage(ds, []string{"solar", "biogas", "wind"}, Line, "Energy Generation", "solar, biogas and wind output")
	if err != nil {
		t.Fatalf("TrendPage failed: %v", err)
	}

	html := string(page)
	if !strings.Contains(html, "echarts") {
		t.Error("Page should embed ECharts")
	}
	for _, name := range []string{"solar", "biogas", "wind"} {
		if !strings.Contains(html, name) {
			t.Errorf("Page missing series %q", name)
		}
	}
}

func TestTrendPageMissingColumn(t *testing.T) {
	ds := sensorDatasetWithoutHumidity(t)

	page, err := TrendPage(ds, []string{"temperature", "humidity"}, Line, "Water Quality", "")
	if !IsMissingColumn(err) {
		t.Fatalf("Expected RenderError, got: %v", err)
	}
	if len(page) == 0 {
		t.Error("Present columns should still render")
	}
}

func TestTrendPNG(t *testing.T) {
	ds := energyDataset(t)

	var buf bytes.Buffer
	if err := TrendPNG(ds, []string{"solar", "biogas", "wind"}, "Energy Generation", &buf); err != nil {
		t.Fatalf("TrendPNG failed: %v", err)
	}

	// PNG magic bytes
	if buf.Len() < 8 || !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Output is not a PNG image")
	}
}

func TestTrendPNGAllColumnsMissing(t *testing.T) {
	ds := sensorDatasetWithoutHumidity(t)

	var buf bytes.Buffer
	err := TrendPNG(ds, []string{"humidity"}, "Water Quality", &buf)
	if !IsMissingColumn(err) {
		t.Fatalf("Expected RenderError, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("Nothing should be written when every column is missing")
	}
}
