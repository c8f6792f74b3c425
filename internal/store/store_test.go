package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/sigstudio/internal/config"
	"github.com/ByLCY/sigstudio/signature"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte(`[1]`)))
	require.NoError(t, kv.Set(ctx, "k", []byte(`[2]`)))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestMemory(t *testing.T) {
	t.Parallel()
	testKV(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", buf))
	buf[0] = 'x'
	got, _ := m.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	f, err := NewFile(dir)
	require.NoError(t, err)
	testKV(t, f)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileRejectsPathKeys(t *testing.T) {
	t.Parallel()

	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"", "../x", `a\b`, ".."} {
		err := f.Set(context.Background(), key, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestRedis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := ConnectRedis(ctx, RedisOptions{URL: url, KeyPrefix: "sigstudio-test:" + t.Name() + ":"})
	require.NoError(t, err)
	defer r.Close()
	testKV(t, r)
}

func TestConnectRedisRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := ConnectRedis(context.Background(), RedisOptions{})
	assert.ErrorIs(t, err, ErrEmptyConnectionURL)
}

func TestRepositoryDefaults(t *testing.T) {
	t.Parallel()

	repo := NewRepository(NewMemory(), nil)
	ctx := context.Background()

	profiles, err := repo.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, signature.Default(), profiles[0])

	layouts, err := repo.Layouts(ctx)
	require.NoError(t, err)
	assert.Empty(t, layouts)
}

func TestRepositoryMalformedData(t *testing.T) {
	t.Parallel()

	kv := NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyProfiles, []byte(`{not json`)))
	require.NoError(t, kv.Set(ctx, KeyLayouts, []byte(`42`)))
	repo := NewRepository(kv, nil)

	profiles, err := repo.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []signature.Config{signature.Default()}, profiles)

	layouts, err := repo.Layouts(ctx)
	require.NoError(t, err)
	assert.Empty(t, layouts)
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewRepository(NewMemory(), nil)
	ctx := context.Background()

	cfg := signature.Default()
	cfg.ID = "p2"
	cfg.ProfileName = "Perso"
	cfg.SocialLinks.Twitter = "https://x.com/homty"
	cfg.ContactOffsetX = -12
	cfg.ShowAddress = false
	cfg.LayoutMode = signature.LogoBottom
	in := []signature.Config{signature.Default(), cfg}
	require.NoError(t, repo.SaveProfiles(ctx, in))

	out, err := repo.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	l := signature.CaptureLayout(cfg, "Bas")
	l.ID = "l1"
	l.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveLayouts(ctx, []signature.Layout{l}))
	layouts, err := repo.Layouts(ctx)
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	assert.Equal(t, l, layouts[0])
}

func TestOpen(t *testing.T) {
	t.Parallel()

	kv, closeFn, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, kv)
	assert.NoError(t, closeFn())

	kv, _, err = Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	_, _, err = Open(context.Background(), config.StoreConfig{Driver: "etcd"})
	assert.Error(t, err)
}
