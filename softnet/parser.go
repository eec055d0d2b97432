package softnet

import "fmt"

// The first nine columns are common to every kernel since v2.6.32. A
// line with fewer is not a softnet_stat dump.
const mandatoryFields = 9

// ErrorKind classifies what the parser tripped over.
type ErrorKind int

const (
	KindEmptyInput ErrorKind = iota
	KindMalformedToken
	KindMissingLineEnding
	KindUnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty input"
	case KindMalformedToken:
		return "malformed hex token"
	case KindMissingLineEnding:
		return "missing line terminator"
	case KindUnexpectedEOF:
		return "unexpected end of input"
	}
	return "unknown parse error"
}

// ParseError reports where in the raw buffer the input stopped looking
// like a softnet_stat dump, and how.
type ParseError struct {
	Offset int
	Kind   ErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at byte offset %d", e.Kind, e.Offset)
}

// Parse decodes a complete softnet_stat dump into one record per line,
// in file order. Each line carries nine mandatory lowercase hex fields
// separated by single spaces, then up to four optional trailing fields
// (received_rps, flow_limit_count, backlog_len, cpu_id) that newer
// kernels append in that fixed order. The first optional field that is
// absent ends the line: the kernel only ever grew the format by
// appending columns, so a gap is impossible and anything after one is
// rejected. The whole buffer must be consumed; leftover bytes after the
// last well-formed line are an error at their offset.
func Parse(data []byte) ([]SoftnetStat, error) {
	if len(data) == 0 {
		return nil, &ParseError{Offset: 0, Kind: KindEmptyInput}
	}

	p := &parser{data: data}

	var stats []SoftnetStat
	for p.pos < len(p.data) {
		stat, err := p.line()
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, nil
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) line() (SoftnetStat, error) {
	var fields [mandatoryFields]uint32
	for i := range fields {
		if i > 0 {
			if err := p.space(); err != nil {
				return SoftnetStat{}, err
			}
		}
		v, err := p.hexU32()
		if err != nil {
			return SoftnetStat{}, err
		}
		fields[i] = v
	}

	// Columns 3..8 are legacy counters the kernel zeroes on modern
	// releases; they are validated above and dropped here.
	stat := SoftnetStat{
		Processed:    fields[0],
		Dropped:      fields[1],
		TimeSqueeze:  fields[2],
		CPUCollision: fields[8],
	}

	for _, dst := range []**uint32{&stat.ReceivedRPS, &stat.FlowLimitCount, &stat.BacklogLen, &stat.CPUID} {
		v, ok := p.optionalHexU32()
		if !ok {
			break
		}
		*dst = &v
	}

	if err := p.lineEnding(); err != nil {
		return SoftnetStat{}, err
	}

	return stat, nil
}

func (p *parser) space() error {
	if p.pos >= len(p.data) {
		return &ParseError{Offset: p.pos, Kind: KindUnexpectedEOF}
	}
	if p.data[p.pos] != ' ' {
		return &ParseError{Offset: p.pos, Kind: KindMalformedToken}
	}
	p.pos++
	return nil
}

// hexU32 consumes one to eight lowercase hex digits. A ninth digit in a
// row would overflow 32 bits and fails the token.
func (p *parser) hexU32() (uint32, error) {
	start := p.pos

	var v uint32
	n := 0
	for p.pos < len(p.data) && n < 8 {
		d, ok := hexDigit(p.data[p.pos])
		if !ok {
			break
		}
		v = v<<4 | uint32(d)
		p.pos++
		n++
	}

	if n == 0 {
		if p.pos >= len(p.data) {
			return 0, &ParseError{Offset: start, Kind: KindUnexpectedEOF}
		}
		return 0, &ParseError{Offset: start, Kind: KindMalformedToken}
	}

	if p.pos < len(p.data) {
		if _, ok := hexDigit(p.data[p.pos]); ok {
			return 0, &ParseError{Offset: start, Kind: KindMalformedToken}
		}
	}

	return v, nil
}

// optionalHexU32 attempts a single space followed by a hex token,
// rewinding on any mismatch so the line terminator check sees the
// original position.
func (p *parser) optionalHexU32() (uint32, bool) {
	save := p.pos

	if p.pos >= len(p.data) || p.data[p.pos] != ' ' {
		return 0, false
	}
	p.pos++

	v, err := p.hexU32()
	if err != nil {
		p.pos = save
		return 0, false
	}

	return v, true
}

func (p *parser) lineEnding() error {
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
		return nil
	}
	if p.pos+1 < len(p.data) && p.data[p.pos] == '\r' && p.data[p.pos+1] == '\n' {
		p.pos += 2
		return nil
	}
	return &ParseError{Offset: p.pos, Kind: KindMissingLineEnding}
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
