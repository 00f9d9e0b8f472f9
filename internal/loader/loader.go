package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"aquaeco/internal/logger"
	"aquaeco/internal/models"
	"aquaeco/internal/storage"
)

// Loader fetches CSV datasets from HTTP(S) URLs, gs:// objects, or local
// paths and parses them against an expected schema. One attempt per call,
// no retries; a failed section is reported on the page instead.
type Loader struct {
	client    *resty.Client
	local     storage.Store
	gcs       storage.Store
	gcsBucket string
	log       *logger.Logger
}

// Options configures a Loader
type Options struct {
	// Timeout bounds a single fetch attempt
	Timeout time.Duration
	// Local serves plain-path sources
	Local storage.Store
	// GCS serves gs:// sources; nil disables them
	GCS storage.Store
	// GCSBucket is the bucket the GCS store is bound to
	GCSBucket string
}

// New creates a new dataset loader
func New(opts Options) *Loader {
	client := resty.New()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.SetRetryCount(0)

	return &Loader{
		client:    client,
		local:     opts.Local,
		gcs:       opts.GCS,
		gcsBucket: opts.GCSBucket,
		log:       logger.WithComponent("loader"),
	}
}

// Load fetches the source and parses it into a dataset. Failures are
// returned as *LoadError with kind Unavailable or ParseFailure.
func (l *Loader) Load(ctx context.Context, source string, schema models.Schema) (*models.Dataset, error) {
	body, err := l.fetch(ctx, source)
	if err != nil {
		l.log.Error("dataset fetch failed", err, map[string]interface{}{"source": source, "schema": schema.Name})
		return nil, err
	}

	ds, err := parseCSV(source, body, schema)
	if err != nil {
		l.log.Error("dataset parse failed", err, map[string]interface{}{"source": source, "schema": schema.Name})
		return nil, err
	}

	l.log.Debug("dataset loaded", map[string]interface{}{
		"source":  source,
		"schema":  schema.Name,
		"records": ds.Len(),
		"columns": strings.Join(ds.Columns, ","),
	})
	return ds, nil
}

// fetch retrieves the raw bytes for a source identifier
func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.fetchHTTP(ctx, source)
	case strings.HasPrefix(source, "gs://"):
		return l.fetchGCS(ctx, source)
	default:
		return l.fetchLocal(ctx, source)
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)

	if err != nil {
		return nil, unavailable(url, fmt.Errorf("failed to fetch: %w", err))
	}
	if resp.StatusCode() != 200 {
		return nil, unavailable(url, fmt.Errorf("source returned status %d", resp.StatusCode()))
	}

	return resp.Body(), nil
}

func (l *Loader) fetchGCS(ctx context.Context, source string) ([]byte, error) {
	if l.gcs == nil {
		return nil, unavailable(source, fmt.Errorf("no GCS bucket configured"))
	}

	rest := strings.TrimPrefix(source, "gs://")
	bucket, object, found := strings.Cut(rest, "/")
	if !found || object == "" {
		return nil, unavailable(source, fmt.Errorf("malformed gs:// source"))
	}
	if bucket != l.gcsBucket {
		return nil, unavailable(source, fmt.Errorf("bucket %q not configured (have %q)", bucket, l.gcsBucket))
	}

	data, err := l.gcs.GetFile(ctx, object)
	if err != nil {
		return nil, unavailable(source, err)
	}
	return data, nil
}

func (l *Loader) fetchLocal(ctx context.Context, path string) ([]byte, error) {
	exists, err := l.local.FileExists(ctx, path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	if !exists {
		return nil, unavailable(path, fmt.Errorf("file not found"))
	}

	data, err := l.local.GetFile(ctx, path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	return data, nil
}
