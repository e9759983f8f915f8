package transfer

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// manifestEntryName is the mandatory archive entry holding the manifest.
const manifestEntryName = "data.json"

// ErrMalformedArchive marks an archive that is unreadable or missing its
// manifest entry. It is always surfaced as a validation failure, never a
// crash.
var ErrMalformedArchive = errors.New("malformed archive")

// writeArchive builds a zip archive from the encoded manifest and any
// attachment payloads keyed by entry name. Entries are written in sorted
// name order so identical inputs produce identical archives.
func writeArchive(manifestJSON []byte, files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(manifestEntryName)
	if err != nil {
		return nil, fmt.Errorf("creating %s entry: %w", manifestEntryName, err)
	}
	if _, err := w.Write(manifestJSON); err != nil {
		return nil, fmt.Errorf("writing %s entry: %w", manifestEntryName, err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("creating %s entry: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, fmt.Errorf("writing %s entry: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// openArchive opens archive bytes for reading.
func openArchive(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	return r, nil
}

// readEntry reads one named entry from an open archive.
func readEntry(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrMalformedArchive, name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrMalformedArchive, name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: missing %s entry", ErrMalformedArchive, name)
}

// findEntry returns the named entry, or nil if the archive has none.
func findEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// decodeManifest reads and parses the manifest entry. Unknown JSON fields
// are ignored and property matching is case-insensitive, so archives from
// newer format revisions still parse.
func decodeManifest(r *zip.Reader) (*Manifest, error) {
	raw, err := readEntry(r, manifestEntryName)
	if err != nil {
		return nil, err
	}

	if string(bytes.TrimSpace(raw)) == "null" {
		return nil, fmt.Errorf("%w: %s holds no manifest", ErrMalformedArchive, manifestEntryName)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrMalformedArchive, manifestEntryName, err)
	}
	return &m, nil
}

// encodeManifest serializes a manifest to indented JSON. HTML escaping is
// disabled so titles in any script round-trip byte for byte.
func encodeManifest(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return buf.Bytes(), nil
}
