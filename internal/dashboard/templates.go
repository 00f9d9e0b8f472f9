package dashboard

// pageTemplate is the main dashboard page. Chart snippets arrive as
// pre-rendered HTML; the ECharts runtime is included once here.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AquaECO Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
<style>{{.Styles}}</style>
</head>
<body>
<div class="main-header">
	<div class="header-content">
		<h1 class="header-title">AquaECO Aquaponics System Performance Dashboard</h1>
		<p class="header-subtitle">Generated at {{.GeneratedAt}} &middot; <a href="/assistant">AI Assistant</a></p>
	</div>
</div>

{{if .Metrics}}
<h2>System Metrics Overview</h2>
<div class="metrics-grid">
	{{range .Metrics}}
	<div class="metric-card">
		<div class="metric-title">{{.Title}}</div>
		<div class="metric-value">{{.Value}}</div>
	</div>
	{{end}}
</div>
{{end}}

<hr>
{{template "section" .Energy}}

<hr>
{{template "section" .Water}}

{{if .News.Enabled}}
<hr>
<h2>Community News</h2>
{{if .News.Warning}}
<div class="section-warning">{{.News.Warning}}</div>
{{else}}
<ul class="news-list">
	{{range .News.Items}}
	<li><a href="{{.Link}}" target="_blank">{{.Title}}</a>{{if not .Published.IsZero}} <span class="news-date">{{.Published.Format "2006-01-02"}}</span>{{end}}</li>
	{{end}}
</ul>
{{end}}
{{end}}

<footer class="page-footer">Omfeonix &middot; AquaECO</footer>
</body>
</html>

{{define "section"}}
<h2>{{.Title}}</h2>
{{if .Warning}}
<div class="section-warning">{{.Warning}}</div>
{{end}}
{{if .Chart}}
{{.Chart}}
{{end}}
{{if .Extra}}
{{.Extra}}
{{end}}
{{if .Table}}
<details class="raw-data">
	<summary>View Raw Data</summary>
	{{.Table}}
</details>
{{end}}
{{end}}`

// assistantTemplate is the AI assistant page: an opaque iframe plus the
// usage tips. No dashboard state crosses into the frame.
const assistantTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AquaECO AI Assistant</title>
<style>{{.Styles}}</style>
</head>
<body>
<div class="main-header">
	<div class="header-content">
		<h1 class="header-title">AquaECO AI Assistant</h1>
		<p class="header-subtitle"><a href="/">Back to dashboard</a></p>
	</div>
</div>

<iframe class="assistant-frame" src="{{.EmbedURL}}" width="100%" height="640"
	sandbox="allow-scripts allow-same-origin allow-forms allow-popups"
	title="AquaECO AI Assistant"></iframe>

<div class="tips-box">
{{.Tips}}
</div>
</body>
</html>`

// pageStyles carries the Omfeonix brand styling from the original
// dashboard
const pageStyles = `:root {
	--primary: #2e7d32;
	--secondary: #4caf50;
	--accent: #8bc34a;
	--dark: #1b5e20;
	--light: #c8e6c9;
}
body {
	font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
	background-color: #f8faf9;
	color: #333333;
	margin: 0;
	padding: 0 1rem 2rem;
}
.main-header {
	display: flex;
	align-items: center;
	gap: 20px;
	margin-bottom: 1.5rem;
	padding-top: 1rem;
}
.header-title {
	margin: 0;
	color: var(--primary);
	font-size: 1.8rem;
	line-height: 1.2;
}
.header-subtitle {
	margin: 0.5rem 0 0 0;
	color: var(--secondary);
	font-size: 1rem;
}
h2 {
	color: var(--primary);
}
.metrics-grid {
	display: grid;
	grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
	gap: 1rem;
}
.metric-card {
	border-left: 4px solid var(--primary);
	background: white;
	padding: 15px;
	border-radius: 8px;
	box-shadow: 0 2px 8px rgba(0,0,0,0.08);
}
.metric-title {
	color: var(--primary);
	font-size: 0.9rem;
	font-weight: 600;
	margin-bottom: 5px;
}
.metric-value {
	color: var(--dark);
	font-size: 1.6rem;
	font-weight: 700;
}
.chart-container {
	border-radius: 10px;
	box-shadow: 0 4px 6px rgba(0,0,0,0.05);
	border: 1px solid #e1e4e8;
	background: white;
	padding: 10px;
	margin-bottom: 1rem;
}
.section-warning {
	background: #fff3e0;
	border-left: 4px solid #fb8c00;
	padding: 12px 15px;
	border-radius: 6px;
	margin-bottom: 1rem;
}
.raw-data table {
	border-collapse: collapse;
	background: white;
}
.raw-data th, .raw-data td {
	border: 1px solid #e1e4e8;
	padding: 6px 12px;
	text-align: right;
}
.raw-data th {
	background: var(--light);
	color: var(--dark);
}
.news-list .news-date {
	color: var(--secondary);
	font-size: 0.85rem;
}
.assistant-frame {
	border: 1px solid #e1e4e8;
	border-radius: 10px;
	background: white;
}
.tips-box {
	margin-top: 20px;
	padding: 20px;
	background-color: var(--light);
	border-radius: 10px;
	border-left: 4px solid var(--primary);
}
.page-footer {
	margin-top: 2rem;
	color: var(--secondary);
	font-size: 0.85rem;
}`

// assistantTips is rendered to HTML with goldmark and shown under the
// embedded assistant
const assistantTips = `#### Assistant Tips

- Ask "How can I optimize energy usage in my system?"
- Request "Show me ideal water parameters for tilapia"
- Try "What's causing these temperature fluctuations?"
- Ask "How can I reduce my system's carbon footprint?"`
