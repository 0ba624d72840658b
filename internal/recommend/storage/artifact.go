// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package storage reads and writes the precomputed model artifacts.
//
// An artifact is a JSON document, optionally gzip-compressed (detected from
// the gzip magic bytes, not the file name). When a sidecar file named
// <artifact>.sha256 exists, its first field must equal the SHA-256 of the
// uncompressed JSON, matching the output of sha256sum.
package storage

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// ErrChecksumMismatch is returned when the sidecar digest does not match.
var ErrChecksumMismatch = errors.New("artifact checksum mismatch")

// ChecksumSuffix is appended to an artifact path to find its digest.
const ChecksumSuffix = ".sha256"

// Info describes a loaded artifact.
type Info struct {
	Path       string
	SizeBytes  int64
	Compressed bool
	Checksum   string
	Verified   bool
}

// Read decodes the artifact at path into target.
func Read(path string, target interface{}) (*Info, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	info := &Info{Path: path, SizeBytes: int64(len(raw))}

	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		info.Compressed = true
		gzr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decompress artifact: %w", err)
		}
		raw, err = io.ReadAll(gzr)
		_ = gzr.Close() //nolint:errcheck // close after a full read is not actionable
		if err != nil {
			return nil, fmt.Errorf("decompress artifact: %w", err)
		}
	}

	sum := sha256.Sum256(raw)
	info.Checksum = hex.EncodeToString(sum[:])

	want, err := readChecksum(path + ChecksumSuffix)
	if err != nil {
		return nil, err
	}
	if want != "" {
		if !strings.EqualFold(want, info.Checksum) {
			return nil, fmt.Errorf("%w: %s expected %s, got %s", ErrChecksumMismatch, filepath.Base(path), want, info.Checksum)
		}
		info.Verified = true
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", filepath.Base(path), err)
	}
	return info, nil
}

// readChecksum returns "" when the sidecar does not exist.
func readChecksum(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // derived from the artifact path
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open checksum: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read checksum: %w", err)
		}
		return "", nil
	}
	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// Write encodes v as JSON at path, gzip-compressed when compress is set, and
// writes the matching checksum sidecar. The offline export tooling and the
// tests use it; the server only reads.
func Write(path string, v interface{}, compress bool) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	sum := sha256.Sum256(raw)

	payload := raw
	if compress {
		var buf bytes.Buffer
		gzw := gzip.NewWriter(&buf)
		if _, err := gzw.Write(raw); err != nil {
			return fmt.Errorf("compress artifact: %w", err)
		}
		if err := gzw.Close(); err != nil {
			return fmt.Errorf("compress artifact: %w", err)
		}
		payload = buf.Bytes()
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	line := hex.EncodeToString(sum[:]) + "  " + filepath.Base(path) + "\n"
	if err := os.WriteFile(path+ChecksumSuffix, []byte(line), 0o600); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}
	return nil
}
