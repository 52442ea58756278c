package telemetry

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// SMIProbe queries GPU utilization and temperature from nvidia-smi.
// The tool is looked up on every Read so a driver installed after
// daemon start is picked up without a restart.
type SMIProbe struct {
	command string
}

// NewSMIProbe creates a probe using the nvidia-smi binary from PATH.
func NewSMIProbe() *SMIProbe {
	return &SMIProbe{command: "nvidia-smi"}
}

// Read invokes nvidia-smi and parses the first GPU's utilization and
// temperature. Any failure (tool missing, non-zero exit, garbage
// output) is returned as an error for the sampler to swallow.
func (p *SMIProbe) Read() (float64, float64, error) {
	out, err := exec.Command(p.command,
		"--query-gpu=utilization.gpu,temperature.gpu",
		"--format=csv,noheader,nounits",
	).Output()
	if err != nil {
		return 0, 0, fmt.Errorf("run %s: %w", p.command, err)
	}
	return parseSMIOutput(string(out))
}

// parseSMIOutput extracts "utilization, temperature" from the first
// line of nvidia-smi CSV output.
func parseSMIOutput(text string) (float64, float64, error) {
	line, _, _ := strings.Cut(text, "\n")
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("unexpected nvidia-smi output %q", line)
	}

	util, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse gpu utilization: %w", err)
	}
	temp, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse gpu temperature: %w", err)
	}

	return clamp(util, 0, 100), clamp(temp, 20, 100), nil
}
