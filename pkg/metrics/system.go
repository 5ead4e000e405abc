package metrics

import "runtime"

const nanosecondsPerMillisecond = 1e6

// RefreshSystemMetrics samples runtime memory, goroutine and GC statistics.
func RefreshSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	UpdateSystemMemoryUsage(m.Alloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		RecordSystemGCPauseTime(float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond)
	}
}
