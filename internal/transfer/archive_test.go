package transfer

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRoundTrip(t *testing.T) {
	manifest := []byte(`{"version":"1.0"}`)
	files := map[string][]byte{
		"attachments/2_b.txt": []byte("bravo"),
		"attachments/1_a.txt": []byte("alpha"),
	}

	archive, err := writeArchive(manifest, files)
	require.NoError(t, err)

	r, err := openArchive(archive)
	require.NoError(t, err)

	got, err := readEntry(r, manifestEntryName)
	require.NoError(t, err)
	assert.Equal(t, manifest, got)

	got, err = readEntry(r, "attachments/1_a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), got)

	// Entries come out in deterministic order: manifest first, then
	// attachments sorted by name.
	require.Len(t, r.File, 3)
	assert.Equal(t, manifestEntryName, r.File[0].Name)
	assert.Equal(t, "attachments/1_a.txt", r.File[1].Name)
	assert.Equal(t, "attachments/2_b.txt", r.File[2].Name)
}

func TestOpenArchiveCorrupt(t *testing.T) {
	_, err := openArchive([]byte("this is not a zip file"))
	require.ErrorIs(t, err, ErrMalformedArchive)
}

func TestReadEntryMissingManifest(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r, err := openArchive(buf.Bytes())
	require.NoError(t, err)

	_, err = readEntry(r, manifestEntryName)
	require.ErrorIs(t, err, ErrMalformedArchive)
}

func TestDecodeManifestBadJSON(t *testing.T) {
	archive, err := writeArchive([]byte("{not json"), nil)
	require.NoError(t, err)

	r, err := openArchive(archive)
	require.NoError(t, err)

	_, err = decodeManifest(r)
	require.ErrorIs(t, err, ErrMalformedArchive)
}

func TestDecodeManifestNull(t *testing.T) {
	archive, err := writeArchive([]byte("null"), nil)
	require.NoError(t, err)

	r, err := openArchive(archive)
	require.NoError(t, err)

	_, err = decodeManifest(r)
	require.ErrorIs(t, err, ErrMalformedArchive)
}

func TestDecodeManifestTolerant(t *testing.T) {
	raw := []byte(`{
		"Version": "1.0",
		"ExportType": "WorkLogData",
		"futureField": {"nested": true},
		"workLogs": [{"title": "entry", "unknown": 1}]
	}`)
	archive, err := writeArchive(raw, nil)
	require.NoError(t, err)

	r, err := openArchive(archive)
	require.NoError(t, err)

	m, err := decodeManifest(r)
	require.NoError(t, err)
	assert.Equal(t, "1.0", m.Version, "field matching is case-insensitive")
	assert.Equal(t, ExportTypeWorkLog, m.ExportType)
	require.Len(t, m.WorkLogs, 1)
	assert.Equal(t, "entry", m.WorkLogs[0].Title)
}

func TestEncodeManifestPreservesText(t *testing.T) {
	m := &Manifest{
		Version:    FormatVersion,
		ExportType: ExportTypeFull,
		ExportedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Username:   "山田",
		WorkLogs: []WorkLogRecord{
			{Title: "リリース <v2> & 検証", RecordDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	raw, err := encodeManifest(m)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "リリース <v2> & 検証", "no HTML escaping of titles")
	assert.Contains(t, string(raw), "山田")

	archive, err := writeArchive(raw, nil)
	require.NoError(t, err)
	r, err := openArchive(archive)
	require.NoError(t, err)
	decoded, err := decodeManifest(r)
	require.NoError(t, err)
	assert.Equal(t, "リリース <v2> & 検証", decoded.WorkLogs[0].Title)
}

func TestAttachmentPath(t *testing.T) {
	assert.Equal(t, "attachments/7_notes.txt", attachmentPath(7, "notes.txt"))
}
