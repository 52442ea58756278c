// Package telemetry samples host load and thermal state into
// TelemetrySnapshots. Every source is best-effort: real CPU figures
// come from gopsutil, GPU figures from nvidia-smi when present, and
// anything unavailable is synthesized from CPU load so that Collect
// always returns a structurally valid snapshot.
package telemetry

import (
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/dig-network/digd/internal/domain"
)

// wavePeriod drives the synthetic GPU curve. A non-integer-second
// period keeps synthesized values from looking flat in demos.
const wavePeriod = 11 * time.Second

// GPUProbe reads GPU utilization (percent) and temperature (celsius)
// from a vendor tool. A failed read means "no GPU telemetry"; the
// sampler falls back to synthesis, never to an error.
type GPUProbe interface {
	Read() (utilPercent, tempC float64, err error)
}

// Sampler produces telemetry snapshots. The zero value is not usable;
// call NewSampler.
type Sampler struct {
	probe GPUProbe

	// Hooks for the host sensors, replaceable in tests.
	cpuLoad func() (float64, bool)
	cpuTemp func() (float64, bool)
	clock   func() time.Time
}

// NewSampler creates a sampler backed by gopsutil and nvidia-smi.
func NewSampler() *Sampler {
	return &Sampler{
		probe:   NewSMIProbe(),
		cpuLoad: hostCPULoad,
		cpuTemp: hostCPUTemp,
		clock:   time.Now,
	}
}

// Collect builds a snapshot for the given mode. It never fails: each
// sensor falls back independently when unavailable.
func (s *Sampler) Collect(mode domain.PerformanceMode) domain.TelemetrySnapshot {
	now := s.clock()

	cpuLoad := 0.0
	if load, ok := s.cpuLoad(); ok {
		cpuLoad = clamp(load, 0, 100)
	}

	cpuTemp, ok := s.cpuTemp()
	if !ok {
		cpuTemp = lerpTemp(cpuLoad, 33, 88)
	}

	gpuLoad, gpuTemp, err := s.probe.Read()
	if err != nil {
		gpuLoad, gpuTemp = syntheticGPU(cpuLoad, now)
	}

	earnings := math.Max(0.002, (gpuLoad/100)*0.08)
	impact := math.Max(0, earnings*900+math.Max(0, 100-gpuTemp)*0.8)
	latency := clamp(12+cpuLoad*0.18+gpuLoad*0.22, 8, 190)

	return domain.TelemetrySnapshot{
		Timestamp:      now,
		CPULoadPercent: round2(cpuLoad),
		CPUTempC:       round2(cpuTemp),
		GPULoadPercent: round2(gpuLoad),
		GPUTempC:       round2(gpuTemp),
		NetLatencyMS:   round2(latency),
		EarningsPerSec: round4(earnings),
		ImpactScore:    round2(impact),
		Mode:           mode,
	}
}

// hostCPULoad reads global CPU utilization. The first call after
// process start compares against boot-time counters; subsequent calls
// measure since the previous call, which matches the poll cadence.
func hostCPULoad() (float64, bool) {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return 0, false
	}
	return percents[0], true
}

// hostCPUTemp returns the hottest reported thermal sensor, if any.
func hostCPUTemp() (float64, bool) {
	stats, err := sensors.SensorsTemperatures()
	if err != nil || len(stats) == 0 {
		return 0, false
	}
	hottest := math.Inf(-1)
	found := false
	for _, stat := range stats {
		if stat.Temperature <= 0 {
			continue
		}
		hottest = math.Max(hottest, stat.Temperature)
		found = true
	}
	return hottest, found
}

// syntheticGPU fabricates GPU load/temperature from CPU load plus a
// smooth time-based wave so demo machines without a GPU still show
// plausible movement.
func syntheticGPU(cpuLoad float64, now time.Time) (load, temp float64) {
	phase := float64(now.UnixNano()%int64(wavePeriod)) / float64(wavePeriod)
	wave := math.Sin(phase * 2 * math.Pi)
	load = clamp(cpuLoad*0.75+wave*15+40, 5, 99)
	temp = lerpTemp(load, 38, 92)
	return load, temp
}

// lerpTemp maps a load percentage onto a temperature band.
func lerpTemp(load, minC, maxC float64) float64 {
	return minC + (maxC-minC)*(load/100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10_000) / 10_000 }
