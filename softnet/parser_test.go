package softnet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32(v uint32) *uint32 { return &v }

func TestParseLegacyLine(t *testing.T) {
	raw := []byte("6dcad223 00000000 00000001 00000000 00000000 00000000 00000000 00000000 00000000\n")

	stats, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, SoftnetStat{
		Processed:    1842008611,
		Dropped:      0,
		TimeSqueeze:  1,
		CPUCollision: 0,
	}, stats[0])
}

func TestParseOptionalFieldShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SoftnetStat
	}{
		{
			name: "9 columns, all optionals absent",
			raw:  "000000aa 00000001 00000002 00000000 00000000 00000000 00000000 00000000 00000003\n",
			want: SoftnetStat{Processed: 0xaa, Dropped: 1, TimeSqueeze: 2, CPUCollision: 3},
		},
		{
			name: "10 columns adds received_rps",
			raw:  "000000aa 00000001 00000002 00000000 00000000 00000000 00000000 00000000 00000003 000000b1\n",
			want: SoftnetStat{Processed: 0xaa, Dropped: 1, TimeSqueeze: 2, CPUCollision: 3, ReceivedRPS: u32(0xb1)},
		},
		{
			name: "11 columns adds flow_limit_count",
			raw:  "000000aa 00000001 00000002 00000000 00000000 00000000 00000000 00000000 00000003 000000b1 0000000c\n",
			want: SoftnetStat{Processed: 0xaa, Dropped: 1, TimeSqueeze: 2, CPUCollision: 3, ReceivedRPS: u32(0xb1), FlowLimitCount: u32(0xc)},
		},
		{
			name: "12 columns adds backlog_len",
			raw:  "000000aa 00000001 00000002 00000000 00000000 00000000 00000000 00000000 00000003 000000b1 0000000c 0000002f\n",
			want: SoftnetStat{Processed: 0xaa, Dropped: 1, TimeSqueeze: 2, CPUCollision: 3, ReceivedRPS: u32(0xb1), FlowLimitCount: u32(0xc), BacklogLen: u32(0x2f)},
		},
		{
			name: "13 columns adds cpu_id",
			raw:  "000000aa 00000001 00000002 00000000 00000000 00000000 00000000 00000000 00000003 000000b1 0000000c 0000002f 00000007\n",
			want: SoftnetStat{Processed: 0xaa, Dropped: 1, TimeSqueeze: 2, CPUCollision: 3, ReceivedRPS: u32(0xb1), FlowLimitCount: u32(0xc), BacklogLen: u32(0x2f), CPUID: u32(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Parse([]byte(tt.raw))
			require.NoError(t, err)
			require.Len(t, stats, 1)
			assert.Equal(t, tt.want, stats[0])
		})
	}
}

func TestParseMultipleLines(t *testing.T) {
	raw := []byte("00000001 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\n" +
		"00000002 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\n" +
		"00000003 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\n")

	stats, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	for i, stat := range stats {
		assert.Equal(t, uint32(i+1), stat.Processed)
	}
}

func TestParseCRLF(t *testing.T) {
	raw := []byte("00000001 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\r\n")

	stats, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, stats, 1)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(nil)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindEmptyInput, perr.Kind)
	assert.Equal(t, 0, perr.Offset)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		kind   ErrorKind
		offset int
	}{
		{
			name:   "fewer than 9 fields",
			raw:    "00000001 00000000 00000000\n",
			kind:   KindMalformedToken,
			offset: 26,
		},
		{
			name:   "line truncated mid-record",
			raw:    "00000001 00000000 00000000",
			kind:   KindUnexpectedEOF,
			offset: 26,
		},
		{
			name:   "uppercase hex is not a token",
			raw:    "0000000A 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\n",
			kind:   KindMalformedToken,
			offset: 7,
		},
		{
			name:   "token wider than 8 digits",
			raw:    "000000001 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\n",
			kind:   KindMalformedToken,
			offset: 0,
		},
		{
			name:   "double space between fields",
			raw:    "00000001  00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\n",
			kind:   KindMalformedToken,
			offset: 9,
		},
		{
			name:   "missing final line terminator",
			raw:    "00000001 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000",
			kind:   KindMissingLineEnding,
			offset: 80,
		},
		{
			name:   "trailing junk after optional fields",
			raw:    "00000001 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000 zz\n",
			kind:   KindMissingLineEnding,
			offset: 80,
		},
		{
			name:   "residual bytes after last line",
			raw:    "00000001 00000000 00000000 00000000 00000000 00000000 00000000 00000000 00000000\nabc",
			kind:   KindUnexpectedEOF,
			offset: 84,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.offset, perr.Offset)
		})
	}
}

// A short line never succeeds by borrowing optional-looking trailing
// tokens: the nine mandatory columns are required before any optional
// is considered.
func TestParseShortLineWithTrailingTokens(t *testing.T) {
	raw := []byte("00000001 00000002 00000003 00000004\n")

	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParseKernelFixtures(t *testing.T) {
	tests := []struct {
		file    string
		lines   int
		columns int
	}{
		{file: "proc-net-softnet_stat-2_6_32", lines: 4, columns: 9},
		{file: "proc-net-softnet_stat-2_6_36", lines: 2, columns: 10},
		{file: "proc-net-softnet_stat-3_11", lines: 2, columns: 11},
		{file: "proc-net-softnet_stat-5_10_47", lines: 3, columns: 13},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			raw, err := os.ReadFile(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			stats, err := Parse(raw)
			require.NoError(t, err)
			require.Len(t, stats, tt.lines)

			for _, stat := range stats {
				assert.Equal(t, tt.columns >= 10, stat.ReceivedRPS != nil)
				assert.Equal(t, tt.columns >= 11, stat.FlowLimitCount != nil)
				assert.Equal(t, tt.columns >= 12, stat.BacklogLen != nil)
				assert.Equal(t, tt.columns >= 13, stat.CPUID != nil)
			}
		})
	}
}

func TestCPUIdentity(t *testing.T) {
	positional := &SoftnetStat{}
	assert.Equal(t, uint32(2), positional.CPU(2))

	explicit := &SoftnetStat{CPUID: u32(7)}
	assert.Equal(t, uint32(7), explicit.CPU(2))
}
