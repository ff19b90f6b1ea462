package auditlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 31, 17, 45, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Action:    "build",
		From:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		LedgerID:  1,
		Entries:   3,
		Balanced:  true,
		Details:   "Assets 700 = Liabilities + Owner's Equity 700",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "build", entries[0].Action)
	assert.True(t, entries[0].Balanced)
	assert.Equal(t, 3, entries[0].Entries)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Action = "check"
	e2.Balanced = false
	e2.Details = "journal entry 4 out of balance by 50"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "build", entries[0].Action)
	assert.Equal(t, "check", entries[1].Action)
	assert.False(t, entries[1].Balanced)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := testEntry()
	require.NoError(t, Append(dir, []Entry{want}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, want, entries[0])
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "build-log.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "short"})
	assert.ErrorContains(t, err, "expected 8 fields")
}

func TestUnmarshalEntry_BadTimestamp(t *testing.T) {
	rec := MarshalEntry(testEntry())
	rec[0] = "yesterday"
	_, err := UnmarshalEntry(rec)
	assert.ErrorContains(t, err, "parsing timestamp")
}
