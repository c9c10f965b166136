package catalog

import (
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"
)

// Watchdog reports memory usage after each fold.
type Watchdog struct {
	threshold float64
	log       *zap.Logger
	virtual   func() (*mem.VirtualMemoryStat, error)
}

// NewWatchdog returns a watchdog that warns when system memory usage exceeds threshold percent.
func NewWatchdog(threshold float64, log *zap.Logger) *Watchdog {
	return &Watchdog{threshold: threshold, log: log, virtual: mem.VirtualMemory}
}

// Check logs the process heap and warns when system memory crosses the threshold. It reports
// whether the threshold was crossed.
func (w *Watchdog) Check(release string) bool {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	w.log.Debug("Memory after fold",
		zap.String("release", release),
		zap.String("heap", humanize.Bytes(ms.HeapAlloc)),
		zap.String("sys", humanize.Bytes(ms.Sys)),
	)

	if w.threshold <= 0 {
		return false
	}
	vm, err := w.virtual()
	if err != nil {
		w.log.Debug("System memory unavailable", zap.Error(err))
		return false
	}
	if vm.UsedPercent < w.threshold {
		return false
	}
	w.log.Warn("System memory usage high",
		zap.String("release", release),
		zap.Float64("used_percent", vm.UsedPercent),
		zap.String("used", humanize.Bytes(vm.Used)),
		zap.String("total", humanize.Bytes(vm.Total)),
	)
	return true
}
