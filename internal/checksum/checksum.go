// Package checksum computes and verifies content digests for burn sources.
package checksum

import (
	"crypto/md5"  //nolint:gosec // disc verification, not authentication
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrFileNotFound marks digests requested for missing or unreadable files.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedAlgorithm marks digests requested with an unknown algorithm.
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
)

// Algorithms returns the supported algorithms in preference order.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256}
}

// ParseAlgorithm converts user input into a known Algorithm.
func ParseAlgorithm(value string) (Algorithm, error) {
	normalized := Algorithm(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case MD5, SHA1, SHA256:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, value)
	}
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil //nolint:gosec
	case SHA1:
		return sha1.New(), nil //nolint:gosec
	case SHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}
}

// Record is an immutable digest of one source file.
type Record struct {
	Algorithm  Algorithm `json:"algorithm"`
	Digest     string    `json:"digest"` // lowercase hex
	SourcePath string    `json:"source_path"`
}

// Compute streams the file through the selected hash. The file is read in
// fixed-size blocks; it is never loaded into memory whole.
func Compute(path string, algorithm Algorithm) (Record, error) {
	hasher, err := algorithm.newHash()
	if err != nil {
		return Record{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return Record{}, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
		}
		return Record{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.CopyBuffer(hasher, file, make([]byte, 64*1024)); err != nil {
		return Record{}, fmt.Errorf("read %s: %w", path, err)
	}

	return Record{
		Algorithm:  algorithm,
		Digest:     hex.EncodeToString(hasher.Sum(nil)),
		SourcePath: path,
	}, nil
}

// Verify recomputes the digest of path under the expected record's algorithm
// and compares case-insensitively.
func Verify(expected Record, path string) (bool, error) {
	actual, err := Compute(path, expected.Algorithm)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(expected.Digest, actual.Digest), nil
}
