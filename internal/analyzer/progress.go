package analyzer

import "io"

// ProgressFunc receives whole-number upload percentages. Reported values are
// monotonically non-decreasing and reach 100 only once the body has been
// fully consumed by the transport.
type ProgressFunc func(percent int)

// progressReader wraps an upload body and reports progress as the HTTP
// transport drains it.
type progressReader struct {
	reader io.Reader
	total  int64
	sent   int64
	last   int
	report ProgressFunc
}

func newProgressReader(reader io.Reader, total int64, report ProgressFunc) *progressReader {
	return &progressReader{reader: reader, total: total, last: -1, report: report}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 && p.report != nil && p.total > 0 {
		p.sent += int64(n)
		percent := int(p.sent * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent > p.last {
			p.last = percent
			p.report(percent)
		}
	}
	return n, err
}
