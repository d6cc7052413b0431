package model

// SystemStatus is the classifier verdict for one snapshot.
type SystemStatus string

const (
	StatusNormal   SystemStatus = "NORMAL"
	StatusWarning  SystemStatus = "WARNING"
	StatusCritical SystemStatus = "CRITICAL"
)

// ValidSystemStatus reports whether s is one of the three known states.
func ValidSystemStatus(s SystemStatus) bool {
	return s == StatusNormal || s == StatusWarning || s == StatusCritical
}

// MetricSnapshot is one full set of operator-entered system and network
// metrics, submitted together for classification. It is immutable after
// submission; the classify response echoes it back and the client passes
// it along to the save step unchanged.
type MetricSnapshot struct {
	CPUUtilization       float64 `json:"cpu_utilization"`
	MemoryUsage          float64 `json:"memory_usage"`
	BandwidthUtilization float64 `json:"bandwidth_utilization"`
	Throughput           float64 `json:"throughput"`
	Latency              float64 `json:"latency"`
	Jitter               float64 `json:"jitter"`
	PacketLoss           float64 `json:"packet_loss"`
	ErrorRates           float64 `json:"error_rates"`
	ConnectionTimes      float64 `json:"connection_times"`
	NetworkAvailability  float64 `json:"network_availability"`
	TransmissionDelay    float64 `json:"transmission_delay"`
	GridVoltage          float64 `json:"grid_voltage"`
	CoolingTemperature   float64 `json:"cooling_temperature"`
	NetworkTrafficVolume float64 `json:"network_traffic_volume"`
}

// FeatureVector returns the snapshot as the ordered feature slice the
// classifier service expects. The order is part of the wire contract with
// the pre-trained model and must not change. Scaling happens inside the
// classifier service.
func (s MetricSnapshot) FeatureVector() []float64 {
	return []float64{
		s.CPUUtilization,
		s.MemoryUsage,
		s.BandwidthUtilization,
		s.Throughput,
		s.Latency,
		s.Jitter,
		s.PacketLoss,
		s.ErrorRates,
		s.ConnectionTimes,
		s.NetworkAvailability,
		s.TransmissionDelay,
		s.GridVoltage,
		s.CoolingTemperature,
		s.NetworkTrafficVolume,
	}
}
