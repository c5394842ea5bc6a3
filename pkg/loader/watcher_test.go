package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-formcontent/pkg/contenterr"
	"github.com/goliatone/go-formcontent/pkg/loader"
)

func writeFile(t *testing.T, name, body string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(body), 0o644))
}

func TestWatcher_ResetsChangedFramework(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "frameworks", "g-cloud", "messages", "dashboard.yml"), "heading: Before\n")
	writeFile(t, filepath.Join(root, "frameworks", "dos", "messages", "dashboard.yml"), "heading: Other\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := loader.NewFromDir(root)
	require.NoError(t, l.LoadMessages(ctx, "g-cloud", "dashboard"))
	require.NoError(t, l.LoadMessages(ctx, "dos", "dashboard"))

	w, err := loader.NewWatcher(l, "")
	require.NoError(t, err)
	w.Start(ctx)

	writeFile(t, filepath.Join(root, "frameworks", "g-cloud", "messages", "dashboard.yml"), "heading: After\n")

	require.Eventually(t, func() bool {
		_, err := l.GetMessage("g-cloud", "dashboard")
		return errors.Is(err, contenterr.ErrContentNotFound)
	}, 5*time.Second, 20*time.Millisecond)

	_, err = l.GetMessage("dos", "dashboard")
	require.NoError(t, err, "other frameworks keep their cache")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	require.NoError(t, l.LoadMessages(ctx, "g-cloud", "dashboard"))
	message, err := l.GetMessage("g-cloud", "dashboard")
	require.NoError(t, err)
	heading, err := message.Text("heading")
	require.NoError(t, err)
	require.Equal(t, "After", heading)
}

func TestWatcher_NeedsDirectory(t *testing.T) {
	_, err := loader.NewWatcher(loader.New(nil), "")
	require.Error(t, err)
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "frameworks"), 0o755))

	w, err := loader.NewWatcher(loader.NewFromDir(root), "")
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestOpen_WatchesWhenConfigured(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	name := filepath.Join(root, "frameworks", "g-cloud", "messages", "dashboard.yml")
	writeFile(t, name, "heading: Before\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, closeFn, err := loader.Open(ctx, loader.Config{ContentPath: root, Watch: true})
	require.NoError(t, err)
	require.NoError(t, l.LoadMessages(ctx, "g-cloud", "dashboard"))

	writeFile(t, name, "heading: After\n")

	require.Eventually(t, func() bool {
		_, err := l.GetMessage("g-cloud", "dashboard")
		return errors.Is(err, contenterr.ErrContentNotFound)
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, closeFn())
}

func TestOpen_WithoutWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "frameworks", "g-cloud", "messages", "dashboard.yml"), "heading: Before\n")

	l, closeFn, err := loader.Open(context.Background(), loader.Config{ContentPath: root})
	require.NoError(t, err)
	require.Equal(t, root, l.Root())
	require.NoError(t, closeFn())
}

func TestOpen_WatchNeedsFrameworksDirectory(t *testing.T) {
	_, _, err := loader.Open(context.Background(), loader.Config{ContentPath: t.TempDir(), Watch: true})
	require.Error(t, err)
}
