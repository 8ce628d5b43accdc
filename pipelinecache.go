// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Pipeline-cache blob persistence. The payload is opaque vendor-specific
// bytes from the driver; the on-disk format is a little-endian uint32
// length prefix followed by the payload. Contents are advisory: a driver
// may reject a reloaded blob without error.

func readPipelineCacheBlob(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := lockFile(f, false); err != nil {
		return nil, err
	}
	defer unlockFile(f)

	var length uint32
	if err := binary.Read(f, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("sedx: pipeline cache %s: %w", path, err)
	}
	blob := make([]byte, length)
	if _, err := io.ReadFull(f, blob); err != nil {
		return nil, fmt.Errorf("sedx: pipeline cache %s: %w", path, err)
	}
	return blob, nil
}

func writePipelineCacheBlob(path string, blob []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Exclusive lock: two editor instances shutting down concurrently
	// must not interleave their blobs.
	if err := lockFile(f, true); err != nil {
		return err
	}
	defer unlockFile(f)

	if err := f.Truncate(0); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(blob))); err != nil {
		return err
	}
	if _, err := f.Write(blob); err != nil {
		return err
	}
	return f.Sync()
}
