package homepage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, s *Store, onSync func(int)) {
	t.Helper()
	cw, err := NewContentWatcher(dir, s, zerolog.Nop(), onSync)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cw.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestContentWatcherResyncs(t *testing.T) {
	dir := t.TempDir()
	s := setupTestStore(t)

	var synced atomic.Int32
	startWatcher(t, dir, s, func(n int) { synced.Store(int32(n)) })

	writeNote(t, dir, "jtbd.md", sampleNote)

	require.Eventually(t, func() bool {
		_, err := s.GetPost("jtbd")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	assert.Eventually(t, func() bool { return synced.Load() == 1 }, time.Second, 20*time.Millisecond)
}

func TestContentWatcherRemovesDeletedNote(t *testing.T) {
	dir := t.TempDir()
	s := setupTestStore(t)
	writeNote(t, dir, "jtbd.md", sampleNote)
	writeNote(t, dir, "later.md", "---\ntitle: Later\ndate: 2024-09-09\n---\nlater")
	_, err := SyncNotes(context.Background(), s, dir)
	require.NoError(t, err)

	var synced atomic.Int32
	synced.Store(-1)
	startWatcher(t, dir, s, func(n int) { synced.Store(int32(n)) })

	require.NoError(t, os.Remove(filepath.Join(dir, "jtbd.md")))

	require.Eventually(t, func() bool {
		_, err := s.GetPost("jtbd")
		return errors.Is(err, ErrNotFound)
	}, 5*time.Second, 50*time.Millisecond)
	assert.Eventually(t, func() bool { return synced.Load() == 1 }, time.Second, 20*time.Millisecond)

	_, err = s.GetPost("later")
	assert.NoError(t, err)
}

func TestContentWatcherKeepsLastGoodSetOnBadNote(t *testing.T) {
	dir := t.TempDir()
	s := setupTestStore(t)
	writeNote(t, dir, "jtbd.md", sampleNote)
	_, err := SyncNotes(context.Background(), s, dir)
	require.NoError(t, err)

	var syncs atomic.Int32
	startWatcher(t, dir, s, func(int) { syncs.Add(1) })

	writeNote(t, dir, "bad.md", "no front matter")
	writeNote(t, dir, "later.md", "---\ntitle: Later\ndate: 2024-09-09\n---\nlater")

	assert.Never(t, func() bool {
		_, err := s.GetPost("later")
		return err == nil
	}, 3*watchDebounce, 50*time.Millisecond)
	assert.Zero(t, syncs.Load())

	_, err = s.GetPost("jtbd")
	require.NoError(t, err, "last good set must still be served")

	require.NoError(t, os.Remove(filepath.Join(dir, "bad.md")))
	require.Eventually(t, func() bool {
		_, err := s.GetPost("later")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNewContentWatcherMissingDir(t *testing.T) {
	s := setupTestStore(t)
	_, err := NewContentWatcher(t.TempDir()+"/missing", s, zerolog.Nop(), nil)
	assert.Error(t, err)
}
