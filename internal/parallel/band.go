package parallel

// Band is a half-open range of rows [Start, End).
type Band struct {
	Start, End int
}

// Bands splits [0, total) into consecutive bands of at most size rows.
// size <= 0 yields a single band.
func Bands(total, size int) []Band {
	if total <= 0 {
		return nil
	}
	if size <= 0 || size > total {
		size = total
	}
	bands := make([]Band, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		bands = append(bands, Band{Start: start, End: min(start+size, total)})
	}
	return bands
}

// ForEachBand calls fn once for every band of Bands(total, size) and returns
// when all calls have finished. With a nil pool the bands run in order on
// the calling goroutine.
func (p *WorkerPool) ForEachBand(total, size int, fn func(start, end int)) {
	bands := Bands(total, size)
	if p == nil || len(bands) == 1 {
		for _, b := range bands {
			fn(b.Start, b.End)
		}
		return
	}

	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b.Start, b.End) }
	}
	p.ExecuteAll(work)
}

// BandSize picks a band height for a frame of total rows so that every
// worker gets several bands to steal from.
func (p *WorkerPool) BandSize(total int) int {
	if p == nil {
		return total
	}
	return max(1, total/(4*p.workers))
}
