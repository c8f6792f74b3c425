package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/sigstudio/internal/logo"
	"github.com/ByLCY/sigstudio/internal/store"
	"github.com/ByLCY/sigstudio/renderer"
	"github.com/ByLCY/sigstudio/signature"
)

// flakyKV 在 failSet 为 true 时拒绝写入。
type flakyKV struct {
	*store.Memory
	failSet bool
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

type suggesterFunc func(ctx context.Context, businessType string) (string, error)

func (f suggesterFunc) Suggest(ctx context.Context, businessType string) (string, error) {
	return f(ctx, businessType)
}

type failingClipboard struct{}

func (failingClipboard) WriteHTML(context.Context, string, string) error {
	return errors.New("copy command unsupported")
}

func newEditor(t *testing.T, kv store.KV, opts Options) *Editor {
	t.Helper()
	seq := 0
	opts.NewID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	opts.Now = func() time.Time { return time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC) }
	e := New(store.NewRepository(kv, nil), opts)
	require.NoError(t, e.Open(context.Background()))
	return e
}

func TestOpenUsesDefaultProfile(t *testing.T) {
	t.Parallel()

	e := newEditor(t, store.NewMemory(), Options{})
	profiles := e.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "default", profiles[0].ID)
	assert.Equal(t, signature.DefaultProfileName, profiles[0].ProfileName)
	assert.Empty(t, e.Layouts())
}

func TestOpenRepairsMissingIDs(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	require.NoError(t, kv.Set(context.Background(), store.KeyProfiles, []byte(`[{"profileName":"A"},{"id":"x","profileName":"B"},{"id":"x","profileName":"C"}]`)))
	e := newEditor(t, kv, Options{})

	profiles := e.Profiles()
	require.Len(t, profiles, 3)
	assert.Equal(t, "id-1", profiles[0].ID)
	assert.Equal(t, "x", profiles[1].ID)
	assert.Equal(t, "id-2", profiles[2].ID)
}

func TestProfileLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	e := newEditor(t, kv, Options{})

	created, err := e.CreateProfile(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, DefaultNewProfileName, created.ProfileName)

	updated, err := e.Update(ctx, created.ID, func(c *signature.Config) {
		c.FullName = "Sarah Dupont"
		c.ID = "hijack"
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "id must be preserved")
	assert.Equal(t, "Sarah Dupont", updated.FullName)

	replacement := signature.Default()
	replacement.Email = "sarah@homty.be"
	replacement.ProfileName = ""
	replaced, err := e.UpdateProfile(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, DefaultNewProfileName, replaced.ProfileName)
	assert.Equal(t, "sarah@homty.be", replaced.Email)

	// 重新打开后状态一致
	reopened := newEditor(t, kv, Options{})
	assert.Equal(t, e.Profiles(), reopened.Profiles())

	require.NoError(t, e.DeleteProfile(ctx, "default"))
	assert.ErrorIs(t, e.DeleteProfile(ctx, created.ID), ErrLastProfile)
	assert.ErrorIs(t, e.DeleteProfile(ctx, "nope"), ErrProfileNotFound)
	_, err = e.Profile("default")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFailedPersistenceKeepsState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := &flakyKV{Memory: store.NewMemory()}
	e := newEditor(t, kv, Options{})
	before := e.Profiles()

	kv.failSet = true
	_, err := e.Update(ctx, "default", func(c *signature.Config) { c.FullName = "X" })
	require.Error(t, err)
	_, err = e.CreateProfile(ctx, "B")
	require.Error(t, err)
	_, err = e.SaveLayout(ctx, "default", "L")
	require.Error(t, err)

	assert.Equal(t, before, e.Profiles())
	assert.Empty(t, e.Layouts())
}

func TestLayoutsCaptureApplyDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEditor(t, store.NewMemory(), Options{})

	src, err := e.Update(ctx, "default", func(c *signature.Config) {
		c.LayoutMode = signature.LogoTop
		c.AccentColor = "#ff0000"
		c.NameOffsetX = 9
	})
	require.NoError(t, err)

	l, err := e.SaveLayout(ctx, "default", "Haut")
	require.NoError(t, err)
	assert.Equal(t, "id-1", l.ID)
	assert.Equal(t, time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC), l.CreatedAt)
	assert.Equal(t, src.Style, l.Style)

	_, err = e.SaveLayout(ctx, "default", " ")
	assert.ErrorIs(t, err, ErrEmptyName)

	other, err := e.CreateProfile(ctx, "Autre")
	require.NoError(t, err)
	other, err = e.Update(ctx, other.ID, func(c *signature.Config) { c.FullName = "Autre Nom" })
	require.NoError(t, err)

	applied, err := e.ApplyLayout(ctx, other.ID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, src.Style, applied.Style)
	assert.Equal(t, "Autre Nom", applied.FullName)
	assert.Equal(t, "Autre", applied.ProfileName)
	assert.Equal(t, other.ID, applied.ID)

	_, err = e.ApplyLayout(ctx, other.ID, "missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	require.NoError(t, e.DeleteLayout(ctx, l.ID))
	assert.Empty(t, e.Layouts())
	assert.ErrorIs(t, e.DeleteLayout(ctx, l.ID), ErrLayoutNotFound)
}

func TestApplyPreset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEditor(t, store.NewMemory(), Options{})

	cfg, err := e.ApplyPreset(ctx, "default", "minimal")
	require.NoError(t, err)
	assert.Equal(t, signature.DividerNone, cfg.DividerStyle)
	assert.Equal(t, signature.DefaultContent(), cfg.Content)

	cfg, err = e.ApplyLayout(ctx, "default", "preset:classic")
	require.NoError(t, err)
	assert.Equal(t, signature.LogoTop, cfg.LayoutMode)

	_, err = e.ApplyPreset(ctx, "default", "rococo")
	assert.ErrorIs(t, err, ErrLayoutNotFound)
	assert.Len(t, e.Presets(), 3)
}

func TestSetLogo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))

	e := newEditor(t, store.NewMemory(), Options{LogoMaxBytes: 1 << 20})
	cfg, err := e.SetLogo(context.Background(), "default", &buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cfg.LogoURL, "data:image/png;base64,"))

	_, err = e.SetLogo(context.Background(), "default", strings.NewReader("plain text"))
	assert.ErrorIs(t, err, logo.ErrNotImage)
	got, _ := e.Profile("default")
	assert.Equal(t, cfg.LogoURL, got.LogoURL, "failed upload must not change the logo")
}

func TestSuggestFooter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var asked string
	e := newEditor(t, store.NewMemory(), Options{Suggester: suggesterFunc(func(_ context.Context, bt string) (string, error) {
		asked = bt
		return "Conseil - Audit", nil
	})})

	cfg, err := e.SuggestFooter(ctx, "default", "cabinet comptable")
	require.NoError(t, err)
	assert.Equal(t, "cabinet comptable", asked)
	assert.Equal(t, "Conseil - Audit", cfg.FooterServices)

	_, err = e.SuggestFooter(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSuggestFooterNeverFails(t *testing.T) {
	t.Parallel()

	e := newEditor(t, store.NewMemory(), Options{Suggester: suggesterFunc(func(context.Context, string) (string, error) {
		return "", errors.New("network down")
	})})
	cfg, err := e.SuggestFooter(context.Background(), "default", "x")
	require.NoError(t, err)
	assert.Equal(t, "Vente - Location - Gestion - Syndic", cfg.FooterServices)
	assert.Equal(t, "Vente - Location - Gestion - Syndic", e.Suggest(context.Background(), "x"))
}

func TestRenderFormats(t *testing.T) {
	t.Parallel()

	e := newEditor(t, store.NewMemory(), Options{})

	html, err := e.Render("default", renderer.FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), "signature-container")

	svg, err := e.Render("default", renderer.FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	pdf, err := e.Render("default", renderer.FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = e.Render("missing", renderer.FormatHTML)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEditor(t, store.NewMemory(), Options{})

	var clip Buffer
	require.NoError(t, e.Copy(ctx, "default", &clip))
	html, text := clip.Contents()
	assert.Contains(t, html, "mailto:trk@homty.be")
	assert.NotContains(t, html, "\n<tr>")
	assert.True(t, strings.HasPrefix(text, "Tarek Ben Bachir\n"))
	assert.Contains(t, text, "1050 Ixelles - Bruxelles")

	assert.ErrorIs(t, e.Copy(ctx, "default", nil), ErrNoClipboard)

	before := e.Profiles()
	err := e.Copy(ctx, "default", failingClipboard{})
	require.Error(t, err)
	assert.Equal(t, before, e.Profiles())
}

func TestCopyNothingVisible(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEditor(t, store.NewMemory(), Options{})
	_, err := e.Update(ctx, "default", func(c *signature.Config) {
		c.Content = signature.Content{}
	})
	require.NoError(t, err)

	var clip Buffer
	assert.ErrorIs(t, e.Copy(ctx, "default", &clip), ErrNothingToCopy)
	html, _ := clip.Contents()
	assert.Empty(t, html)
}

func TestPlainTextHonoursVisibility(t *testing.T) {
	t.Parallel()

	cfg := signature.Default()
	cfg.ShowEmail = false
	cfg.ShowAddress = false
	text := PlainText(cfg)
	assert.NotContains(t, text, "trk@homty.be")
	assert.NotContains(t, text, "Ixelles")
	assert.Contains(t, text, "+32 (2) 844 23 03")
	assert.Contains(t, text, "Vente - Location - Gestion - Syndic")
}
