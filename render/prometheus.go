package render

import (
	"fmt"
	"io"

	"github.com/kernelstats/softnet-stat/softnet"
)

// Prometheus prints one exposition-format sample per counter per
// record, labeled with the owning CPU. cpu_id is consumed for the label
// only and gets no sample of its own: before kernel v5.10 the label
// falls back to the record's position, which can misattribute rows when
// CPUs are offline, so the explicit id wins whenever the kernel
// provides it.
func Prometheus(w io.Writer, stats []softnet.SoftnetStat) {
	for i := range stats {
		stat := &stats[i]
		cpu := stat.CPU(i)

		samples := []struct {
			name  string
			value uint32
		}{
			{"softnet_frames_processed", stat.Processed},
			{"softnet_frames_dropped", stat.Dropped},
			{"softnet_time_squeeze", stat.TimeSqueeze},
			{"softnet_cpu_collisions", stat.CPUCollision},
			{"softnet_received_rps", orZero(stat.ReceivedRPS)},
			{"softnet_flow_limit_count", orZero(stat.FlowLimitCount)},
			{"softnet_backlog_len", orZero(stat.BacklogLen)},
		}

		for _, s := range samples {
			fmt.Fprintf(w, "%s{cpu=\"cpu%d\"} %d\n", s.name, cpu, s.value)
		}
	}
}
