package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"aquaeco/internal/charts"
	"aquaeco/internal/feed"
	"aquaeco/internal/loader"
	"aquaeco/internal/logger"
	"aquaeco/internal/models"
)

// rawTableRows caps how many trailing records the raw-data tables show
const rawTableRows = 5

// newsItemLimit caps the community news panel
const newsItemLimit = 5

// Config holds the dashboard's fixed inputs
type Config struct {
	EnergySource      string
	SensorSource      string
	AssistantEmbedURL string
	NewsFeedURL       string
}

// Builder composes the dashboard page. Each section loads and renders
// independently: a failed section becomes an inline warning while the
// rest of the page still renders.
type Builder struct {
	cfg      Config
	loader   *loader.Loader
	news     *feed.Fetcher
	markdown goldmark.Markdown
	page     *template.Template
	embed    *template.Template
	log      *logger.Logger
}

// Metric is one card in the metrics overview
type Metric struct {
	Title string
	Value string
}

// Section is one dashboard section: a chart plus optional warning,
// secondary chart, and raw-data table
type Section struct {
	Title   string
	Warning string
	Chart   template.HTML
	Extra   template.HTML
	Table   template.HTML
}

// NewsData feeds the community news panel
type NewsData struct {
	Enabled bool
	Warning string
	Items   []feed.Item
}

// PageData is the template payload for the main page
type PageData struct {
	GeneratedAt string
	Styles      template.CSS
	Metrics     []Metric
	Energy      Section
	Water       Section
	News        NewsData
}

// AssistantData is the template payload for the assistant page
type AssistantData struct {
	Styles   template.CSS
	EmbedURL string
	Tips     template.HTML
}

// NewBuilder creates a dashboard builder
func NewBuilder(cfg Config, l *loader.Loader, news *feed.Fetcher) (*Builder, error) {
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	embed, err := template.New("assistant").Parse(assistantTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse assistant template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	return &Builder{
		cfg:      cfg,
		loader:   l,
		news:     news,
		markdown: md,
		page:     page,
		embed:    embed,
		log:      logger.WithComponent("dashboard"),
	}, nil
}

// BuildPage loads both datasets and renders the full dashboard page.
// Load and render failures surface as section warnings, never as a page
// error; only a template execution failure is returned.
func (b *Builder) BuildPage(ctx context.Context) (string, error) {
	data := PageData{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Styles:      template.CSS(pageStyles),
	}

	energyDS, energySection := b.buildEnergySection(ctx)
	data.Energy = energySection

	sensorDS, waterSection := b.buildWaterSection(ctx)
	data.Water = waterSection

	data.Metrics = b.buildMetrics(energyDS, sensorDS)
	data.News = b.buildNews(ctx)

	var buf bytes.Buffer
	if err := b.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return buf.String(), nil
}

// BuildAssistantPage renders the assistant page: the sandboxed iframe
// and the markdown tips
func (b *Builder) BuildAssistantPage() (string, error) {
	var tips bytes.Buffer
	if err := b.markdown.Convert([]byte(assistantTips), &tips); err != nil {
		return "", fmt.Errorf("failed to render assistant tips: %w", err)
	}

	data := AssistantData{
		Styles:   template.CSS(pageStyles),
		EmbedURL: b.cfg.AssistantEmbedURL,
		Tips:     template.HTML(tips.String()),
	}

	var buf bytes.Buffer
	if err := b.embed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render assistant page: %w", err)
	}
	return buf.String(), nil
}

func (b *Builder) buildEnergySection(ctx context.Context) (*models.Dataset, Section) {
	section := Section{Title: "Energy Performance Trend"}

	ds, err := b.loader.Load(ctx, b.cfg.EnergySource, models.EnergySchema)
	if err != nil {
		section.Warning = loadWarning(err)
		return nil, section
	}

	trend, err := charts.TrendSnippet(ds, models.EnergySchema.Columns, charts.Line, "chart-energy-trend", "Energy Generation Over Time")
	section.Chart = template.HTML(trend.HTML)
	if err != nil {
		section.Warning = renderWarning(err)
		b.log.Warn("energy trend rendered partially", map[string]interface{}{"reason": err.Error()})
	}

	// Composition pie only makes sense over the columns that loaded
	if pie, pieErr := charts.CompositionSnippet(ds, ds.Columns, "chart-energy-composition", "Energy Source Composition"); pieErr == nil {
		section.Extra = template.HTML(pie.HTML)
	}

	section.Table = rawTable(ds)
	return ds, section
}

func (b *Builder) buildWaterSection(ctx context.Context) (*models.Dataset, Section) {
	section := Section{Title: "Water Quality Performance Trend"}

	ds, err := b.loader.Load(ctx, b.cfg.SensorSource, models.SensorSchema)
	if err != nil {
		section.Warning = loadWarning(err)
		return nil, section
	}

	trend, err := charts.TrendSnippet(ds, models.SensorSchema.Columns, charts.Line, "chart-water-trend", "Temperature and Humidity Over Time")
	section.Chart = template.HTML(trend.HTML)
	if err != nil {
		section.Warning = renderWarning(err)
		b.log.Warn("water trend rendered partially", map[string]interface{}{"reason": err.Error()})
	}

	section.Table = rawTable(ds)
	return ds, section
}

// buildMetrics creates overview cards from whichever datasets loaded
// with their full schema
func (b *Builder) buildMetrics(energy, sensor *models.Dataset) []Metric {
	var metrics []Metric

	if energy != nil {
		if records, err := energy.EnergyRecords(); err == nil {
			s := models.SummarizeEnergy(records)
			metrics = append(metrics,
				Metric{Title: "Total Solar Output", Value: formatValue(s.TotalSolar)},
				Metric{Title: "Total Biogas Output", Value: formatValue(s.TotalBiogas)},
				Metric{Title: "Total Wind Output", Value: formatValue(s.TotalWind)},
			)
		}
	}

	if sensor != nil {
		if records, err := sensor.SensorRecords(); err == nil {
			s := models.SummarizeSensor(records)
			metrics = append(metrics,
				Metric{Title: "Latest Temperature", Value: formatValue(s.LatestTemperature) + " °C"},
				Metric{Title: "Latest Humidity", Value: formatValue(s.LatestHumidity) + " %"},
			)
		}
	}

	return metrics
}

func (b *Builder) buildNews(ctx context.Context) NewsData {
	if b.cfg.NewsFeedURL == "" || b.news == nil {
		return NewsData{}
	}

	news := NewsData{Enabled: true}
	items, err := b.news.Fetch(ctx, b.cfg.NewsFeedURL, newsItemLimit)
	if err != nil {
		b.log.Warn("news feed unavailable", map[string]interface{}{"reason": err.Error()})
		news.Warning = "Community news is currently unavailable."
		return news
	}
	news.Items = items
	return news
}

// loadWarning converts a load failure into the user-visible warning text
func loadWarning(err error) string {
	switch {
	case loader.IsUnavailable(err):
		return "Data source is unreachable. Please check the configured source and try again."
	case loader.IsParseFailure(err):
		return "Data source returned malformed content and could not be parsed."
	default:
		return "Data could not be loaded."
	}
}

// renderWarning converts a render failure into the user-visible warning text
func renderWarning(err error) string {
	if charts.IsMissingColumn(err) {
		return fmt.Sprintf("Some readings are missing from the data source (%s); the remaining series are shown.", err.Error())
	}
	return "Chart could not be rendered."
}

// rawTable renders the last few records as an HTML table
func rawTable(ds *models.Dataset) template.HTML {
	if ds == nil || ds.Len() == 0 || len(ds.Columns) == 0 {
		return ""
	}

	start := ds.Len() - rawTableRows
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	sb.WriteString("<table><thead><tr><th>timestamp</th>")
	for _, c := range ds.Columns {
		sb.WriteString("<th>" + template.HTMLEscapeString(c) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")

	times := ds.Timestamps()
	for i := start; i < ds.Len(); i++ {
		sb.WriteString("<tr><td>" + times[i].Format("2006-01-02 15:04") + "</td>")
		for _, c := range ds.Columns {
			sb.WriteString("<td>" + formatValue(ds.Value(c, i)) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")

	return template.HTML(sb.String())
}

// formatValue trims trailing zeros from a reading for display
func formatValue(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
