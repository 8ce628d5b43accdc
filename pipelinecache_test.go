// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPipelineCacheBlobRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.cache")
	blob := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02}

	if err := writePipelineCacheBlob(path, blob); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readPipelineCacheBlob(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("read %x, want %x", got, blob)
	}

	// Length prefix + payload on disk.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 4+len(blob) {
		t.Errorf("file length = %d, want %d", len(raw), 4+len(blob))
	}
}

func TestPipelineCacheMissingFile(t *testing.T) {
	if _, err := readPipelineCacheBlob(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("reading a missing cache succeeded")
	}
}

func TestPipelineCachePersistedOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persisted.cache")

	e := newTestEngine(t, Config{PipelineCachePath: path})
	// Seed the device cache so shutdown has bytes to persist.
	if err := e.Device().LoadPipelineCache([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	e.Shutdown()

	got, err := readPipelineCacheBlob(path)
	if err != nil {
		t.Fatalf("blob not persisted: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("persisted blob = %x", got)
	}
}
