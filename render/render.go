// Package render formats a parsed softnet_stat record sequence for
// stdout as a fixed-width table, JSON, or Prometheus exposition text.
package render

// Optional counters print as 0 in the numeric output formats when the
// kernel predates them.
func orZero(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}
