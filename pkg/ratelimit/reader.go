package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// Limiter throttles read bandwidth across readers using a token bucket.
// A scan over a network mount or a shared disk can use this to keep
// hashing I/O from saturating the link.
type Limiter struct {
	bytesPerSecond int64

	mu         sync.Mutex
	tokens     int64
	bucketSize int64
	lastUpdate time.Time
}

// NewLimiter creates a limiter for the given bytes-per-second rate
// A rate <= 0 returns nil, meaning no limiting
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second of burst, with a 64KB floor so small rates still read smoothly
	bucketSize := bytesPerSecond
	if bucketSize < 65536 {
		bucketSize = 65536
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		bucketSize:     bucketSize,
		lastUpdate:     time.Now(),
	}
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps reader with rate limiting
// A nil limiter returns the reader unchanged
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read implements io.Reader, blocking until the bucket holds enough tokens
func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	toRead := int64(len(p))
	if toRead > r.limiter.bucketSize {
		toRead = r.limiter.bucketSize
	}

	if err := r.limiter.wait(r.ctx, toRead); err != nil {
		return 0, err
	}

	n, err := r.reader.Read(p[:toRead])
	if n > 0 {
		r.limiter.consume(int64(n))
	}
	return n, err
}

// wait blocks until needed tokens are available or the context is cancelled
func (l *Limiter) wait(ctx context.Context, needed int64) error {
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= needed {
			l.mu.Unlock()
			return nil
		}
		deficit := needed - l.tokens
		l.mu.Unlock()

		sleep := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// refill adds tokens for the time elapsed since the last update
// Caller must hold the lock
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastUpdate)

	add := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if add > 0 {
		l.tokens += add
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastUpdate = now
	}
}

// consume removes tokens after a completed read
func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
