package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"aquaeco/internal/models"
	"aquaeco/internal/storage"
)

const energyCSV = "timestamp,solar,biogas,wind\n2025-01-01,5,2,3\n2025-01-02,6,1,4\n"

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	local, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	return New(Options{Timeout: 5 * time.Second, Local: local})
}

func serveCSV(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadRemoteCSV(t *testing.T) {
	srv := serveCSV(t, energyCSV)
	l := newTestLoader(t)

	ds, err := l.Load(context.Background(), srv.URL, models.EnergySchema)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Record count equals data-row count, header excluded
	if ds.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", ds.Len())
	}
	if !reflect.DeepEqual(ds.Columns, []string{"solar", "biogas", "wind"}) {
		t.Errorf("Unexpected columns: %v", ds.Columns)
	}

	solar, err := ds.Series("solar")
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	if solar[0] != 5 || solar[1] != 6 {
		t.Errorf("Unexpected solar series: %v", solar)
	}

	ts := ds.Timestamps()
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ts[0].Equal(want) {
		t.Errorf("Expected first timestamp %v, got %v", want, ts[0])
	}
}

func TestLoadDeterminism(t *testing.T) {
	srv := serveCSV(t, energyCSV)
	l := newTestLoader(t)
	ctx := context.Background()

	first, err := l.Load(ctx, srv.URL, models.EnergySchema)
	if err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	second, err := l.Load(ctx, srv.URL, models.EnergySchema)
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Loading the same CSV twice produced different datasets")
	}
}

func TestLoadUnavailable(t *testing.T) {
	l := newTestLoader(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		source func(t *testing.T) string
	}{
		{
			name: "remote returns 404",
			source: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.NotFound(w, r)
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
		},
		{
			name: "remote connection refused",
			source: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				srv.Close()
				return srv.URL
			},
		},
		{
			name: "local file missing",
			source: func(t *testing.T) string {
				return "missing.csv"
			},
		},
		{
			name: "gs source without configured bucket",
			source: func(t *testing.T) string {
				return "gs://aquaeco-data/energy.csv"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(ctx, tt.source(t), models.EnergySchema)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !IsUnavailable(err) {
				t.Errorf("Expected Unavailable, got: %v", err)
			}
			if IsParseFailure(err) {
				t.Errorf("Error classified as both kinds: %v", err)
			}
		})
	}
}

func TestLoadParseFailure(t *testing.T) {
	l := newTestLoader(t)
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing time column", "solar,biogas,wind\n5,2,3\n"},
		{"unknown column", "timestamp,solar,biogas,wind,ph\n2025-01-01,5,2,3,7\n"},
		{"duplicate column", "timestamp,solar,solar\n2025-01-01,5,2\n"},
		{"wrong field count", "timestamp,solar,biogas,wind\n2025-01-01,5,2\n"},
		{"non-numeric value", "timestamp,solar,biogas,wind\n2025-01-01,five,2,3\n"},
		{"bad timestamp", "timestamp,solar,biogas,wind\nyesterday,5,2,3\n"},
		// Truncated body: quoted field never closes, csv reader errors mid-stream
		{"truncated body", "timestamp,solar,biogas,wind\n2025-01-01,5,2,3\n\"2025-01-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveCSV(t, tt.body)
			_, err := l.Load(ctx, srv.URL, models.EnergySchema)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !IsParseFailure(err) {
				t.Errorf("Expected ParseFailure, got: %v", err)
			}
		})
	}
}

func TestLoadMissingExpectedColumn(t *testing.T) {
	// Humidity column absent: the dataset still loads; the failure is
	// deferred to render time
	srv := serveCSV(t, "timestamp,temperature\n2025-01-01,21.5\n2025-01-02,22.0\n")
	l := newTestLoader(t)

	ds, err := l.Load(context.Background(), srv.URL, models.SensorSchema)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", ds.Len())
	}
	if ds.HasColumn("humidity") {
		t.Error("Humidity should be absent")
	}
	if !ds.HasColumn("temperature") {
		t.Error("Temperature should be present")
	}
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "energy.csv"), []byte(energyCSV), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	local, err := storage.NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	l := New(Options{Timeout: 5 * time.Second, Local: local})

	ds, err := l.Load(context.Background(), "energy.csv", models.EnergySchema)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", ds.Len())
	}
}

func TestLoadTimestampLayouts(t *testing.T) {
	body := "timestamp,temperature,humidity\n" +
		"2025-01-01,20,60\n" +
		"2025-01-01 06:00:00,21,61\n" +
		"2025-01-01T12:00:00,22,62\n" +
		"2025-01-01T18:00:00Z,23,63\n" +
		"2025-01-01 21:30,24,64\n"
	srv := serveCSV(t, body)
	l := newTestLoader(t)

	ds, err := l.Load(context.Background(), srv.URL, models.SensorSchema)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 5 {
		t.Errorf("Expected 5 records, got %d", ds.Len())
	}

	ts := ds.Timestamps()
	if ts[1].Hour() != 6 || ts[2].Hour() != 12 || ts[4].Minute() != 30 {
		t.Errorf("Timestamps parsed incorrectly: %v", ts)
	}
}
