package service

import (
	"strings"
	"testing"

	"github.com/statuswatch/backend/internal/model"
)

// nominalSnapshot triggers no threshold rule.
func nominalSnapshot() model.MetricSnapshot {
	return model.MetricSnapshot{
		CPUUtilization:       50,
		MemoryUsage:          50,
		BandwidthUtilization: 50,
		Throughput:           100,
		Latency:              20,
		Jitter:               5,
		PacketLoss:           0.1,
		ErrorRates:           0,
		ConnectionTimes:      100,
		NetworkAvailability:  99.9,
		TransmissionDelay:    50,
		GridVoltage:          220,
		CoolingTemperature:   25,
		NetworkTrafficVolume: 100,
	}
}

func TestEvaluateThresholdsNominal(t *testing.T) {
	findings := EvaluateThresholds(nominalSnapshot())
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %d: %+v", len(findings), findings)
	}
}

func TestEvaluateThresholdsSingleTrigger(t *testing.T) {
	snap := nominalSnapshot()
	snap.CPUUtilization = 85

	findings := EvaluateThresholds(snap)
	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %d", len(findings))
	}
	if findings[0].Metric != "cpu_utilization" {
		t.Fatalf("expected cpu_utilization finding, got %s", findings[0].Metric)
	}
	if !strings.Contains(findings[0].Diagnosis, "CPU") {
		t.Fatalf("unexpected diagnosis: %s", findings[0].Diagnosis)
	}
	if len(findings[0].Remediation) == 0 {
		t.Fatal("expected a remediation block")
	}
}

func TestEvaluateThresholdsBoundaries(t *testing.T) {
	// CPU and memory trigger at >= 80; the strict-inequality rules do not
	// trigger at their exact threshold values.
	snap := nominalSnapshot()
	snap.CPUUtilization = 80
	snap.MemoryUsage = 80
	snap.CoolingTemperature = 30
	snap.Latency = 100
	snap.PacketLoss = 2
	snap.ConnectionTimes = 1000

	findings := EvaluateThresholds(snap)
	if len(findings) != 2 {
		t.Fatalf("expected cpu and memory findings only, got %d: %+v", len(findings), findings)
	}
	if findings[0].Metric != "cpu_utilization" || findings[1].Metric != "memory_usage" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestEvaluateThresholdsTableOrder(t *testing.T) {
	snap := nominalSnapshot()
	snap.ConnectionTimes = 2000 // last rule in the table
	snap.CPUUtilization = 95    // first rule in the table
	snap.NetworkAvailability = 90

	findings := EvaluateThresholds(snap)
	want := []string{"cpu_utilization", "network_availability", "connection_times"}
	if len(findings) != len(want) {
		t.Fatalf("expected %d findings, got %d", len(want), len(findings))
	}
	for i, metric := range want {
		if findings[i].Metric != metric {
			t.Fatalf("finding %d: expected %s, got %s", i, metric, findings[i].Metric)
		}
	}
}
