package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"chat-relay/observability"
)

// HeartbeatWorker periodically logs hub counters together with the
// process self-stats (RSS, CPU, OS status).
type HeartbeatWorker struct {
	log      *slog.Logger
	stats    *observability.HubStats
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, stats *observability.HubStats, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, stats: stats, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting hub heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			snap := w.stats.Snapshot()
			w.log.Info("heartbeat",
				"active_sessions", snap.ActiveSessions,
				"messages_relayed", snap.MessagesRelayed,
				"frames_rejected", snap.FramesRejected,
				"events_dropped", snap.EventsDropped,
				"ram_bytes", rss,
				"cpu_percent", cpu,
				"pid_status", status)
		}
	}
}

// selfStats retrieves memory, CPU, and OS status for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
