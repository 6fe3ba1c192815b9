// Package romloader gets a ROM image, however it is packaged, into the
// plain byte slice cartridge.New expects: a raw file, or the first
// entry of a .7z archive, plus a native "open file" dialog for
// callers that don't already have a path.
package romloader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/sqweek/dialog"
)

// Load reads path and returns the ROM bytes cartridge.New expects. A
// .7z archive is transparently extracted; its first entry is assumed
// to be the ROM image. Anything else is returned as-is.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("romloader: open %s: %w", path, err)
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".7z") {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("romloader: read %s: %w", path, err)
		}
		return data, nil
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("romloader: stat %s: %w", path, err)
	}

	archive, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("romloader: open archive %s: %w", path, err)
	}
	if len(archive.File) == 0 {
		return nil, fmt.Errorf("romloader: %s: empty archive", path)
	}

	entry, err := archive.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("romloader: open archive entry: %w", err)
	}
	defer entry.Close()

	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("romloader: read archive entry: %w", err)
	}
	return data, nil
}

// Pick opens a native "open file" dialog filtered to Game Boy ROM
// images, for use when no ROM path is given on the command line.
func Pick() (string, error) {
	return dialog.File().Filter("Game Boy ROM", "gb", "gbc", "7z").Load()
}
