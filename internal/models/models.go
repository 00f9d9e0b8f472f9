package models

import (
	"fmt"
	"time"
)

// Schema describes the expected shape of a CSV dataset: one time column
// followed by a fixed set of numeric value columns.
type Schema struct {
	Name       string
	TimeColumn string
	Columns    []string
}

// EnergySchema is the schema of the energy generation dataset
var EnergySchema = Schema{
	Name:       "energy",
	TimeColumn: "timestamp",
	Columns:    []string{"solar", "biogas", "wind"},
}

// SensorSchema is the schema of the water-quality sensor dataset
var SensorSchema = Schema{
	Name:       "sensor",
	TimeColumn: "timestamp",
	Columns:    []string{"temperature", "humidity"},
}

// HasColumn reports whether the schema expects the given value column
func (s Schema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Dataset is an ordered sequence of parsed records sharing one schema.
// Rows keep file order; no sorting or de-duplication is applied.
// Columns holds the value columns actually present in the source file,
// which may be a subset of the schema's expected columns.
type Dataset struct {
	Schema  Schema
	Columns []string
	times   []time.Time
	values  map[string][]float64
}

// NewDataset creates an empty dataset for the given schema and the value
// columns present in the source header, in header order.
func NewDataset(schema Schema, columns []string) *Dataset {
	values := make(map[string][]float64, len(columns))
	for _, c := range columns {
		values[c] = nil
	}
	return &Dataset{
		Schema:  schema,
		Columns: columns,
		values:  values,
	}
}

// Append adds one record. Values must be given in Columns order.
func (d *Dataset) Append(ts time.Time, vals []float64) error {
	if len(vals) != len(d.Columns) {
		return fmt.Errorf("expected %d values, got %d", len(d.Columns), len(vals))
	}
	d.times = append(d.times, ts)
	for i, c := range d.Columns {
		d.values[c] = append(d.values[c], vals[i])
	}
	return nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.times)
}

// HasColumn reports whether the dataset contains the given value column
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Series returns the values of one column in record order
func (d *Dataset) Series(name string) ([]float64, error) {
	series, ok := d.values[name]
	if !ok {
		return nil, fmt.Errorf("column %q not present in dataset %q", name, d.Schema.Name)
	}
	return series, nil
}

// Timestamps returns the record timestamps in record order
func (d *Dataset) Timestamps() []time.Time {
	return d.times
}

// Value returns one cell; used by typed record conversion
func (d *Dataset) Value(name string, i int) float64 {
	return d.values[name][i]
}

// EnergyRecord is one timestamped row of energy generation readings
type EnergyRecord struct {
	Timestamp time.Time
	Solar     float64
	Biogas    float64
	Wind      float64
}

// SensorRecord is one timestamped row of water-quality sensor readings
type SensorRecord struct {
	Timestamp   time.Time
	Temperature float64
	Humidity    float64
}

// EnergyRecords converts the dataset to typed energy records. All energy
// columns must be present; schema completeness is checked here once
// instead of per-field access later.
func (d *Dataset) EnergyRecords() ([]EnergyRecord, error) {
	for _, c := range EnergySchema.Columns {
		if !d.HasColumn(c) {
			return nil, fmt.Errorf("dataset %q missing column %q", d.Schema.Name, c)
		}
	}
	records := make([]EnergyRecord, d.Len())
	for i := range records {
		records[i] = EnergyRecord{
			Timestamp: d.times[i],
			Solar:     d.Value("solar", i),
			Biogas:    d.Value("biogas", i),
			Wind:      d.Value("wind", i),
		}
	}
	return records, nil
}

// SensorRecords converts the dataset to typed sensor records. All sensor
// columns must be present.
func (d *Dataset) SensorRecords() ([]SensorRecord, error) {
	for _, c := range SensorSchema.Columns {
		if !d.HasColumn(c) {
			return nil, fmt.Errorf("dataset %q missing column %q", d.Schema.Name, c)
		}
	}
	records := make([]SensorRecord, d.Len())
	for i := range records {
		records[i] = SensorRecord{
			Timestamp:   d.times[i],
			Temperature: d.Value("temperature", i),
			Humidity:    d.Value("humidity", i),
		}
	}
	return records, nil
}
