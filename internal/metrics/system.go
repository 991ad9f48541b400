// Package metrics collects storage and process statistics for the server
// status endpoint.
package metrics

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerStatus is the payload of the status endpoint.
type ServerStatus struct {
	Storage StorageMetrics `json:"storage"`
	Process ProcessMetrics `json:"process"`
	Memory  MemoryMetrics  `json:"memory"`
	Uptime  float64        `json:"uptime"` // seconds
}

// StorageMetrics describes the filesystem holding the ROM library.
type StorageMetrics struct {
	Path        string  `json:"path"`
	Filesystem  string  `json:"filesystem"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// ProcessMetrics describes this server process.
type ProcessMetrics struct {
	PID        int32   `json:"pid"`
	RSS        uint64  `json:"rss"`
	CPUPercent float64 `json:"cpu_percent"`
	Goroutines int     `json:"goroutines"`
}

// MemoryMetrics represents host memory usage.
type MemoryMetrics struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	UsedPercent float64 `json:"used_percent"`
}

// GetServerStatus collects metrics in parallel. A section that cannot be
// read is left zeroed; only a cancelled context is an error.
func GetServerStatus(ctx context.Context, romRoot string, started time.Time) (*ServerStatus, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	status := &ServerStatus{
		Storage: StorageMetrics{Path: romRoot},
		Uptime:  time.Since(started).Seconds(),
	}
	var wg sync.WaitGroup
	var mu sync.Mutex

	// Storage
	wg.Add(1)
	go func() {
		defer wg.Done()
		usage, err := disk.UsageWithContext(ctx, romRoot)
		if err != nil {
			return
		}
		mu.Lock()
		status.Storage.Filesystem = usage.Fstype
		status.Storage.Total = usage.Total
		status.Storage.Used = usage.Used
		status.Storage.Free = usage.Free
		status.Storage.UsedPercent = usage.UsedPercent
		mu.Unlock()
	}()

	// Process
	wg.Add(1)
	go func() {
		defer wg.Done()
		pid := int32(os.Getpid()) // #nosec G115 -- pids fit in int32
		mu.Lock()
		status.Process.PID = pid
		status.Process.Goroutines = runtime.NumGoroutine()
		mu.Unlock()

		p, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			return
		}
		if info, err := p.MemoryInfoWithContext(ctx); err == nil {
			mu.Lock()
			status.Process.RSS = info.RSS
			mu.Unlock()
		}
		if ctx.Err() != nil {
			return
		}
		if pct, err := p.CPUPercentWithContext(ctx); err == nil {
			mu.Lock()
			status.Process.CPUPercent = pct
			mu.Unlock()
		}
	}()

	// Host memory
	wg.Add(1)
	go func() {
		defer wg.Done()
		vmem, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return
		}
		mu.Lock()
		status.Memory = MemoryMetrics{
			Total:       vmem.Total,
			Available:   vmem.Available,
			UsedPercent: vmem.UsedPercent,
		}
		mu.Unlock()
	}()

	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return status, nil
}
