package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsDirSaveOpen(t *testing.T) {
	dir, err := NewResultsDir(t.TempDir())
	require.NoError(t, err)

	rel, err := dir.Save("timetables/a.csv", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "timetables/a.csv", rel)

	file, err := dir.Open(rel)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size())
}

func TestResultsDirRejectsEscape(t *testing.T) {
	dir, err := NewResultsDir(t.TempDir())
	require.NoError(t, err)

	_, err = dir.Save("../outside.csv", []byte("x"))
	assert.ErrorIs(t, err, ErrOutsideResults)
	_, err = dir.Open("/etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideResults)
}

func TestResultsDirCleanup(t *testing.T) {
	base := t.TempDir()
	dir, err := NewResultsDir(base)
	require.NoError(t, err)

	_, err = dir.Save("old.pdf", []byte("x"))
	require.NoError(t, err)
	_, err = dir.Save("new.pdf", []byte("y"))
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(base, "old.pdf"), past, past))

	removed, err := dir.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.pdf"}, removed)
	assert.FileExists(t, filepath.Join(base, "new.pdf"))
}

func TestLinkSignerRoundTrip(t *testing.T) {
	signer := NewLinkSigner("secret", time.Hour)
	token, expiresAt, err := signer.Sign("exp-1", "timetables/a.csv")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	id, path, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "exp-1", id)
	assert.Equal(t, "timetables/a.csv", path)
}

func TestLinkSignerRejectsTamperingAndExpiry(t *testing.T) {
	signer := NewLinkSigner("secret", time.Hour)
	token, _, err := signer.Sign("exp-1", "a.csv")
	require.NoError(t, err)

	_, _, err = NewLinkSigner("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidLink)
	_, _, err = signer.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidLink)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, _, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrLinkExpired)
}
