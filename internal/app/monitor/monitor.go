//go:generate mockgen -source=monitor.go -destination=monitor_mock.go -package=monitor
package monitor

import (
	"context"
	"math"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// Stats contains process resource statistics
type Stats struct {
	CPU float64
	MEM float64 // in MB
}

// Monitor samples resource usage of a process
type Monitor interface {
	GetStats(ctx context.Context, pid int) (Stats, error)
	Self(ctx context.Context) (Stats, error)
}

type monitor struct {
	self int
}

// NewMonitor creates a Monitor whose Self reports the running viewer
func NewMonitor() Monitor {
	return &monitor{self: os.Getpid()}
}

// GetStats returns CPU and resident memory of pid; out-of-range pids report zero stats
func (m *monitor) GetStats(ctx context.Context, pid int) (Stats, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return Stats{}, nil
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}

	if cpu, err := proc.CPUPercentWithContext(ctx); err == nil {
		stats.CPU = cpu
	}

	if mem, err := proc.MemoryInfoWithContext(ctx); err == nil {
		stats.MEM = float64(mem.RSS) / 1024 / 1024
	}

	return stats, nil
}

// Self returns the stats of the current process
func (m *monitor) Self(ctx context.Context) (Stats, error) {
	return m.GetStats(ctx, m.self)
}
