// Package match implements the exact-match (fingerprint) and fuzzy-match
// (TF-IDF cosine similarity) engines.
package match

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
	"github.com/JanKosminski/DuplicateCrawler/pkg/storage"
)

// DefaultBlockSize is the read block size for streamed binary hashing
const DefaultBlockSize = 65536

// ReaderWrapper wraps file readers, e.g. for bandwidth limiting
type ReaderWrapper func(io.Reader) io.Reader

// Fingerprinter computes content fingerprints for classified files.
// Fingerprints are a pure function of (category, normalized text | raw
// bytes): identical inputs always yield identical digests.
type Fingerprinter struct {
	blockSize     int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewFingerprinter creates a fingerprinter with the given block size
func NewFingerprinter(blockSize int) *Fingerprinter {
	if blockSize < 4096 {
		blockSize = DefaultBlockSize
	}
	return &Fingerprinter{
		blockSize: blockSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, blockSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap file readers (e.g. rate limiting)
func (f *Fingerprinter) SetReaderWrapper(wrapper ReaderWrapper) {
	f.readerWrapper = wrapper
}

// TextFingerprint hashes the UTF-8 bytes of normalized text. This is the
// semantic hash: a .pdf and a .docx with identical prose collapse to the
// same digest regardless of container bytes.
func TextFingerprint(normalized string) models.Fingerprint {
	sum := sha256.Sum256([]byte(normalized))
	return models.Fingerprint(fmt.Sprintf("%x", sum))
}

// Fingerprint computes the fingerprint for one record: the semantic hash
// for text-eligible files, the streamed raw-byte hash otherwise. Returns
// the bytes read so the caller can account for hashing I/O.
func (f *Fingerprinter) Fingerprint(ctx context.Context, backend storage.Backend, rec *models.FileRecord) (models.Fingerprint, int64, error) {
	if rec.Category == models.TextEligible {
		return TextFingerprint(rec.NormalizedText), 0, nil
	}
	return f.binaryFingerprint(ctx, backend, rec)
}

// binaryFingerprint hashes raw file bytes in fixed-size blocks so memory
// use stays bounded regardless of file size. Files whose size drifted
// since enumeration are rejected rather than hashed inconsistently.
func (f *Fingerprinter) binaryFingerprint(ctx context.Context, backend storage.Backend, rec *models.FileRecord) (models.Fingerprint, int64, error) {
	path := rec.RelativePath

	info, err := backend.Stat(ctx, path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat file: %w", err)
	}
	if rec.RawSize > 0 && info.Size != rec.RawSize {
		return "", 0, fmt.Errorf("file changed during scan: size %d, expected %d", info.Size, rec.RawSize)
	}

	reader, err := backend.Read(ctx, path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	var src io.Reader = reader
	if f.readerWrapper != nil {
		src = f.readerWrapper(reader)
	}

	hasher := sha256.New()

	bufPtr := f.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer f.bufferPool.Put(bufPtr)

	var total int64
	for {
		// Cancellation between blocks keeps partial results valid
		select {
		case <-ctx.Done():
			return "", total, ctx.Err()
		default:
		}

		n, err := src.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", total, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return models.Fingerprint(fmt.Sprintf("%x", hasher.Sum(nil))), total, nil
}
