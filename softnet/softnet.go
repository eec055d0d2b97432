// Package softnet decodes the kernel's per-CPU network receive-path
// counters from /proc/net/softnet_stat. The file is one line per online
// CPU; the column count grew across kernel releases (9 columns in
// v2.6.32, up to 13 since v5.10), so trailing fields are optional.
package softnet

// SoftnetStat is one row of the dump, i.e. the counters of one CPU.
// Optional fields are nil when the running kernel predates them.
type SoftnetStat struct {
	// Processed is the number of network frames processed. With ethernet
	// bonding this can exceed the number of frames received, since the
	// bonding driver may re-queue a frame for processing.
	Processed uint32 `json:"processed"`

	// Dropped is the number of frames dropped for lack of room on the
	// per-CPU backlog queue.
	Dropped uint32 `json:"dropped"`

	// TimeSqueeze is the number of times the net_rx_action loop gave up
	// with work remaining because its budget or time slice ran out.
	TimeSqueeze uint32 `json:"time_squeeze"`

	// CPUCollision counts device-lock collisions on transmit.
	// The kernel stopped maintaining this in v4.7.
	CPUCollision uint32 `json:"cpu_collision"`

	// ReceivedRPS is the number of times this CPU was woken by an
	// inter-processor interrupt to process packets. Kernel v2.6.36+.
	ReceivedRPS *uint32 `json:"received_rps,omitempty"`

	// FlowLimitCount is the number of times the RPS flow limit was
	// reached. Kernel v3.11+.
	FlowLimitCount *uint32 `json:"flow_limit_count,omitempty"`

	// BacklogLen is the current backlog queue length. Kernel v5.10+.
	BacklogLen *uint32 `json:"backlog_len,omitempty"`

	// CPUID identifies the CPU owning this row. Offline CPUs are not
	// dumped, so on kernels that report it this is authoritative and the
	// row position is not. Kernel v5.10+.
	CPUID *uint32 `json:"cpu_id,omitempty"`
}

// CPU resolves the CPU identity of a record: CPUID when the kernel
// reports it, otherwise the record's 0-based position in the dump.
func (s *SoftnetStat) CPU(position int) uint32 {
	if s.CPUID != nil {
		return *s.CPUID
	}
	return uint32(position)
}
