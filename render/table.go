package render

import (
	"fmt"
	"io"

	"github.com/kernelstats/softnet-stat/softnet"
)

// DefaultTableWidth is the column width the table renderer uses unless
// the caller overrides it.
const DefaultTableWidth = 15

var tableHeader = []string{
	"Cpu",
	"Processed",
	"Dropped",
	"Time Squeezed",
	"Cpu Collision",
	"Received RPS",
	"Flow Limit Cnt",
	"Backlog Length",
	"CPU Id",
}

// Table prints one left-justified row per record, preceded by a header
// row. The Cpu column is the record's position in the dump.
func Table(w io.Writer, stats []softnet.SoftnetStat, width int) {
	if width <= 0 {
		width = DefaultTableWidth
	}

	for _, h := range tableHeader {
		fmt.Fprintf(w, "%-*s", width, h)
	}
	fmt.Fprintln(w)

	for i := range stats {
		stat := &stats[i]
		columns := []uint32{
			uint32(i),
			stat.Processed,
			stat.Dropped,
			stat.TimeSqueeze,
			stat.CPUCollision,
			orZero(stat.ReceivedRPS),
			orZero(stat.FlowLimitCount),
			orZero(stat.BacklogLen),
			orZero(stat.CPUID),
		}
		for _, c := range columns {
			fmt.Fprintf(w, "%-*d", width, c)
		}
		fmt.Fprintln(w)
	}
}
