package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
)

// Entry is one (filename, blob) pair destined for an archive or a
// download.
type Entry struct {
	Name string
	Data []byte
}

// Archive combines the entries into a single ZIP blob. Duplicate
// filenames are disambiguated deterministically by appending an
// incrementing counter in parentheses before the extension.
func Archive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]int)
	for _, e := range entries {
		name := dedupName(e.Name, seen)
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("archiving %s: %w", name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("archiving %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// dedupName returns name unchanged on first sight, then "name (N).ext"
// for repeats.
func dedupName(name string, seen map[string]int) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
