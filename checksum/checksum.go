// Package checksum computes file digests by streaming the file through a
// hash in fixed-size chunks, so memory use does not depend on file size.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
)

// Algorithm names a supported digest. The names match the Croissant
// FileObject property that carries the digest.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	MD5    Algorithm = "md5"
)

const (
	DefaultChunkSize = 1 << 20
	MinChunkSize     = 64 << 10
)

// ParseAlgorithm maps a user-supplied name to an Algorithm. Empty means SHA256.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case "", SHA256:
		return SHA256, nil
	case MD5:
		return MD5, nil
	default:
		return "", fmt.Errorf("unsupported digest %q (want %s or %s)", name, SHA256, MD5)
	}
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case MD5:
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported digest %q", string(a))
	}
}

// SHA256File returns the lowercase hex SHA-256 of the file at filePath, read
// in DefaultChunkSize chunks.
func SHA256File(filePath string) (string, error) {
	return File(filePath, SHA256, DefaultChunkSize)
}

// File returns the lowercase hex digest of the file at filePath. chunkSize
// values below MinChunkSize are raised to it.
func File(filePath string, algo Algorithm, chunkSize int) (string, error) {
	hasher, err := algo.newHash()
	if err != nil {
		return "", err
	}
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := stream(hasher, file, chunkSize); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", filePath, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Reader digests everything remaining in r.
func Reader(r io.Reader, algo Algorithm, chunkSize int) (string, error) {
	hasher, err := algo.newHash()
	if err != nil {
		return "", err
	}
	if err := stream(hasher, r, chunkSize); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func stream(h hash.Hash, r io.Reader, chunkSize int) error {
	if chunkSize < MinChunkSize {
		chunkSize = MinChunkSize
	}
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
