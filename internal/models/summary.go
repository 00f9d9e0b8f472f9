package models

// EnergySummary aggregates an energy dataset for the metrics overview
// and the composition chart.
type EnergySummary struct {
	TotalSolar  float64
	TotalBiogas float64
	TotalWind   float64
}

// Total returns the combined output of all sources
func (s EnergySummary) Total() float64 {
	return s.TotalSolar + s.TotalBiogas + s.TotalWind
}

// SummarizeEnergy computes per-source totals over all records
func SummarizeEnergy(records []EnergyRecord) EnergySummary {
	var s EnergySummary
	for _, r := range records {
		s.TotalSolar += r.Solar
		s.TotalBiogas += r.Biogas
		s.TotalWind += r.Wind
	}
	return s
}

// SensorSummary aggregates a sensor dataset for the metrics overview
type SensorSummary struct {
	LatestTemperature float64
	LatestHumidity    float64
	MeanTemperature   float64
	MeanHumidity      float64
}

// SummarizeSensor computes latest and mean readings over all records.
// Latest means the last record in file order.
func SummarizeSensor(records []SensorRecord) SensorSummary {
	var s SensorSummary
	if len(records) == 0 {
		return s
	}
	last := records[len(records)-1]
	s.LatestTemperature = last.Temperature
	s.LatestHumidity = last.Humidity
	for _, r := range records {
		s.MeanTemperature += r.Temperature
		s.MeanHumidity += r.Humidity
	}
	n := float64(len(records))
	s.MeanTemperature /= n
	s.MeanHumidity /= n
	return s
}
