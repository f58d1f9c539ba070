package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"waste-service/pkg/logger"
)

const systemCollectInterval = 5 * time.Second

var (
	SystemCPUUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Host CPU usage percentage over the last sample",
	})

	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_usage_bytes",
		Help: "Host memory in use",
	})

	SystemLoadAverage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "system_load_average",
		Help: "Host load average",
	}, []string{"window"})

	ApplicationHeapBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "application_heap_alloc_bytes",
		Help: "Go heap bytes allocated by this process",
	})

	ApplicationGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "application_goroutines",
		Help: "Live goroutines in this process",
	})
)

// StartSystemMetricsCollector samples host and process gauges in the background until ctx is done.
// Host readings that fail are logged once and then skipped silently.
func StartSystemMetricsCollector(ctx context.Context, log logger.Logger) {
	sampler := &systemSampler{log: log.With(logger.NewField("component", "system-metrics"))}

	go func() {
		ticker := time.NewTicker(systemCollectInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sampler.sample(ctx)
			}
		}
	}()
}

type systemSampler struct {
	log      logger.Logger
	reported bool
}

func (s *systemSampler) sample(ctx context.Context) {
	var readErr error

	if percent, err := cpu.PercentWithContext(ctx, time.Second, false); err != nil {
		readErr = err
	} else if len(percent) > 0 {
		SystemCPUUsage.Set(percent[0])
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		readErr = err
	} else {
		SystemMemoryUsage.Set(float64(vm.Used))
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		readErr = err
	} else {
		SystemLoadAverage.WithLabelValues("1m").Set(avg.Load1)
		SystemLoadAverage.WithLabelValues("5m").Set(avg.Load5)
		SystemLoadAverage.WithLabelValues("15m").Set(avg.Load15)
	}

	if readErr != nil && !s.reported && ctx.Err() == nil {
		s.reported = true
		s.log.Warn("host metrics read failed", logger.NewField("error", readErr))
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	ApplicationHeapBytes.Set(float64(m.HeapAlloc))
	ApplicationGoroutines.Set(float64(runtime.NumGoroutine()))
}
