package service

import "github.com/statuswatch/backend/internal/model"

// Fixed threshold policy. Rules are evaluated in table order and each
// triggered rule contributes one diagnosis sentence and one remediation
// block to the report.
var thresholdRules = []struct {
	metric      string
	triggered   func(model.MetricSnapshot) bool
	diagnosis   string
	remediation []string
}{
	{
		metric:    "cpu_utilization",
		triggered: func(s model.MetricSnapshot) bool { return s.CPUUtilization >= 80 },
		diagnosis: "High CPU utilization indicating system overload",
		remediation: []string{
			"Identify and terminate resource-intensive processes",
			"Consider upgrading CPU capacity",
			"Implement better load balancing",
		},
	},
	{
		metric:    "memory_usage",
		triggered: func(s model.MetricSnapshot) bool { return s.MemoryUsage >= 80 },
		diagnosis: "Elevated memory usage suggesting resource constraints",
		remediation: []string{
			"Clear system cache",
			"Optimize memory-intensive applications",
			"Consider increasing RAM capacity",
		},
	},
	{
		metric:    "error_rates",
		triggered: func(s model.MetricSnapshot) bool { return s.ErrorRates >= 5 },
		diagnosis: "High error rates detected indicating potential system issues",
		remediation: []string{
			"Review system logs for error patterns",
			"Update system dependencies",
			"Implement error tracking and monitoring",
		},
	},
	{
		metric:    "network_traffic_volume",
		triggered: func(s model.MetricSnapshot) bool { return s.NetworkTrafficVolume > 1000 },
		diagnosis: "Excessive network traffic detected suggesting potential network congestion",
		remediation: []string{
			"Review network traffic patterns",
			"Implement traffic shaping",
			"Consider bandwidth upgrade",
		},
	},
	{
		metric:    "cooling_temperature",
		triggered: func(s model.MetricSnapshot) bool { return s.CoolingTemperature > 30 },
		diagnosis: "Elevated cooling temperature indicating potential cooling system issues",
		remediation: []string{
			"Check cooling system functionality",
			"Ensure proper ventilation",
			"Monitor temperature trends",
		},
	},
	{
		metric:    "bandwidth_utilization",
		triggered: func(s model.MetricSnapshot) bool { return s.BandwidthUtilization > 90 },
		diagnosis: "High bandwidth utilization indicating potential network bottleneck",
		remediation: []string{
			"Analyze bandwidth consumption patterns",
			"Implement QoS policies",
			"Consider bandwidth optimization techniques",
		},
	},
	{
		metric:    "latency",
		triggered: func(s model.MetricSnapshot) bool { return s.Latency > 100 },
		diagnosis: "High network latency detected affecting system performance",
		remediation: []string{
			"Check network connectivity",
			"Identify network bottlenecks",
			"Optimize network routing",
		},
	},
	{
		metric:    "packet_loss",
		triggered: func(s model.MetricSnapshot) bool { return s.PacketLoss > 2 },
		diagnosis: "Significant packet loss detected affecting network reliability",
		remediation: []string{
			"Investigate network connectivity issues",
			"Check for network congestion",
			"Verify network hardware functionality",
		},
	},
	{
		metric:    "jitter",
		triggered: func(s model.MetricSnapshot) bool { return s.Jitter > 30 },
		diagnosis: "High jitter levels affecting network stability",
		remediation: []string{
			"Monitor network stability",
			"Implement jitter buffering",
			"Check for network interference",
		},
	},
	{
		metric:    "network_availability",
		triggered: func(s model.MetricSnapshot) bool { return s.NetworkAvailability < 99 },
		diagnosis: "Reduced network availability affecting system reliability",
		remediation: []string{
			"Review network infrastructure",
			"Implement redundancy measures",
			"Check for single points of failure",
		},
	},
	{
		metric:    "transmission_delay",
		triggered: func(s model.MetricSnapshot) bool { return s.TransmissionDelay > 200 },
		diagnosis: "High transmission delay affecting data transfer efficiency",
		remediation: []string{
			"Optimize data transmission paths",
			"Review network topology",
			"Consider content delivery optimization",
		},
	},
	{
		metric:    "connection_times",
		triggered: func(s model.MetricSnapshot) bool { return s.ConnectionTimes > 1000 },
		diagnosis: "Prolonged connection establishment and termination times",
		remediation: []string{
			"Check connection pooling settings",
			"Optimize connection handling",
			"Review connection timeout parameters",
		},
	},
}

// Rendered when no rule triggers.
const (
	noIssuesDiagnosis    = "No significant issues detected."
	noActionsRemediation = "No immediate actions required. Continue regular monitoring."
)

// EvaluateThresholds applies the fixed threshold table to a snapshot. It is
// pure and total: it never fails, and the findings come back in table order.
func EvaluateThresholds(snap model.MetricSnapshot) []model.ThresholdFinding {
	findings := make([]model.ThresholdFinding, 0)
	for _, rule := range thresholdRules {
		if rule.triggered(snap) {
			findings = append(findings, model.ThresholdFinding{
				Metric:      rule.metric,
				Diagnosis:   rule.diagnosis,
				Remediation: rule.remediation,
			})
		}
	}
	return findings
}
