package domain

import "time"

// MetricSample is a single backend metric snapshot for a server.
type MetricSample struct {
	ID          string    `json:"id,omitempty"`
	ServerID    string    `json:"serverId,omitempty"`
	CPUUsage    float64   `json:"cpuUsage"`
	MemoryUsage float64   `json:"memoryUsage"`
	DiskUsage   float64   `json:"diskUsage"`
	NetworkIn   float64   `json:"networkIn"`
	NetworkOut  float64   `json:"networkOut"`
	Temperature float64   `json:"temperature"`
	LoadAvg     float64   `json:"loadAvg"`
	CollectedAt time.Time `json:"collectedAt"`
}

// LatestMetric is one named gauge from the most recent sample, as shown on
// dashboard cards.
type LatestMetric struct {
	ID         string    `json:"id"`
	MetricType string    `json:"metricType"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Timestamp  time.Time `json:"timestamp"`
}

// MetricSummary aggregates a metric over a window of samples.
type MetricSummary struct {
	MetricType string    `json:"metricType"`
	Average    float64   `json:"average"`
	Minimum    float64   `json:"minimum"`
	Maximum    float64   `json:"maximum"`
	Count      int       `json:"count"`
	LastValue  float64   `json:"lastValue"`
	LastUpdate time.Time `json:"lastUpdate"`
	Unit       string    `json:"unit"`
}

// MetricUnit returns the display unit for a metric type name.
func MetricUnit(metricType string) string {
	switch metricType {
	case "CPU Usage", "Memory Usage", "Disk Usage":
		return "%"
	case "Network In", "Network Out":
		return "MB/s"
	case "Temperature":
		return "°C"
	default:
		return ""
	}
}
