package registry

import "bytes"

// ProgressFunc receives the cumulative bytes transferred so far and the
// total payload size. It is invoked synchronously on every read during
// an instrumented upload.
type ProgressFunc func(transferred, total int64)

// progressReader wraps an in-memory copy of an artifact and reports
// cumulative bytes consumed to the observer on each Read. It never
// mutates the source buffer; reading past the end returns io.EOF.
type progressReader struct {
	r        *bytes.Reader
	total    int64
	consumed int64
	fn       ProgressFunc
}

func newProgressReader(content []byte, fn ProgressFunc) *progressReader {
	return &progressReader{
		r:     bytes.NewReader(content),
		total: int64(len(content)),
		fn:    fn,
	}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.consumed += int64(n)
	if p.fn != nil {
		p.fn(p.consumed, p.total)
	}
	return n, err
}
