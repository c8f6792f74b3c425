// Package editor owns the signature profiles and saved layouts, persists every
// mutation as a full snapshot and drives the renderers.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ByLCY/sigstudio/internal/logo"
	"github.com/ByLCY/sigstudio/internal/store"
	"github.com/ByLCY/sigstudio/internal/suggest"
	"github.com/ByLCY/sigstudio/layout"
	"github.com/ByLCY/sigstudio/preset"
	"github.com/ByLCY/sigstudio/renderer"
	canvasrenderer "github.com/ByLCY/sigstudio/renderer/canvas"
	htmlrenderer "github.com/ByLCY/sigstudio/renderer/html"
	"github.com/ByLCY/sigstudio/signature"
)

// DefaultNewProfileName 为未命名新签名的名称。
const DefaultNewProfileName = "Nouvelle signature"

// Options configures an Editor.
type Options struct {
	Suggester    suggest.Suggester        // 为空时页脚建议总是返回默认关键词
	Canvas       *canvasrenderer.Renderer // 测量文本并输出 svg/pdf/png；为空时按默认参数创建
	HTML         htmlrenderer.Options     // 预览 HTML 的选项；复制时强制压缩
	LogoMaxBytes int64
	Logger       *slog.Logger
	Now          func() time.Time
	NewID        func() string
}

// Editor 持有全部签名与已保存的布局。每次修改先作用于副本，持久化成功后才替换内存状态。
type Editor struct {
	repo      *store.Repository
	suggester suggest.Suggester
	canvas    *canvasrenderer.Renderer
	html      *htmlrenderer.Renderer
	clip      *htmlrenderer.Renderer
	logoMax   int64
	log       *slog.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	profiles []signature.Config
	layouts  []signature.Layout
}

// New creates an editor. Call Open before use.
func New(repo *store.Repository, opts Options) *Editor {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Suggester == nil {
		opts.Suggester = suggest.WithFallback(nil, suggest.DefaultFallback, 0, opts.Logger)
	}
	if opts.Canvas == nil {
		opts.Canvas = canvasrenderer.NewRenderer(canvasrenderer.Options{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	clipOpts := opts.HTML
	clipOpts.Minify = true
	return &Editor{
		repo:      repo,
		suggester: opts.Suggester,
		canvas:    opts.Canvas,
		html:      htmlrenderer.New(opts.HTML),
		clip:      htmlrenderer.New(clipOpts),
		logoMax:   opts.LogoMaxBytes,
		log:       opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		profiles:  []signature.Config{signature.Default()},
		layouts:   []signature.Layout{},
	}
}

// Open 从存储加载签名与布局。没有签名时使用默认签名。
func (e *Editor) Open(ctx context.Context) error {
	profiles, err := e.repo.Profiles(ctx)
	if err != nil {
		return err
	}
	layouts, err := e.repo.Layouts(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiles = fixIDs(profiles, e.newID)
	e.layouts = layouts
	e.log.Info("编辑器已加载", "profiles", len(profiles), "layouts", len(layouts))
	return nil
}

// fixIDs 为缺少 ID 或 ID 重复的旧快照补上新 ID。
func fixIDs(profiles []signature.Config, newID func() string) []signature.Config {
	seen := make(map[string]bool, len(profiles))
	for i := range profiles {
		if profiles[i].ID == "" || seen[profiles[i].ID] {
			profiles[i].ID = newID()
		}
		seen[profiles[i].ID] = true
	}
	return profiles
}

// Profiles 返回全部签名的副本。
func (e *Editor) Profiles() []signature.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.profiles)
}

// Profile 返回指定签名。
func (e *Editor) Profile(id string) (signature.Config, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.profileIndex(id)
	if i < 0 {
		return signature.Config{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return e.profiles[i], nil
}

func (e *Editor) profileIndex(id string) int {
	return slices.IndexFunc(e.profiles, func(c signature.Config) bool { return c.ID == id })
}

// CreateProfile 以默认签名为模板新建一个签名。
func (e *Editor) CreateProfile(ctx context.Context, name string) (signature.Config, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultNewProfileName
	}
	cfg := signature.Default()
	cfg.ID = e.newID()
	cfg.ProfileName = name

	e.mu.Lock()
	defer e.mu.Unlock()
	next := append(slices.Clone(e.profiles), cfg)
	if err := e.commitProfiles(ctx, next); err != nil {
		return signature.Config{}, err
	}
	e.log.Info("新建签名", "id", cfg.ID, "name", name)
	return cfg, nil
}

// UpdateProfile 用 cfg 整体替换指定签名，ID 保持不变；名称为空时沿用原名称。
func (e *Editor) UpdateProfile(ctx context.Context, id string, cfg signature.Config) (signature.Config, error) {
	return e.Update(ctx, id, func(cur *signature.Config) {
		name := cur.ProfileName
		*cur = cfg
		cur.ID = id
		if strings.TrimSpace(cur.ProfileName) == "" {
			cur.ProfileName = name
		}
	})
}

// Update 对指定签名的副本执行一次修改并持久化全部签名。
func (e *Editor) Update(ctx context.Context, id string, mutate func(*signature.Config)) (signature.Config, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.profileIndex(id)
	if i < 0 {
		return signature.Config{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	next := slices.Clone(e.profiles)
	mutate(&next[i])
	next[i].ID = id
	if err := e.commitProfiles(ctx, next); err != nil {
		return signature.Config{}, err
	}
	return next[i], nil
}

// DeleteProfile 删除签名；不允许删除最后一个。
func (e *Editor) DeleteProfile(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.profileIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	if len(e.profiles) == 1 {
		return ErrLastProfile
	}
	next := slices.Delete(slices.Clone(e.profiles), i, i+1)
	if err := e.commitProfiles(ctx, next); err != nil {
		return err
	}
	e.log.Info("删除签名", "id", id)
	return nil
}

func (e *Editor) commitProfiles(ctx context.Context, next []signature.Config) error {
	if err := e.repo.SaveProfiles(ctx, next); err != nil {
		e.log.Error("保存签名失败", "error", err)
		return err
	}
	e.profiles = next
	return nil
}

func (e *Editor) commitLayouts(ctx context.Context, next []signature.Layout) error {
	if err := e.repo.SaveLayouts(ctx, next); err != nil {
		e.log.Error("保存布局失败", "error", err)
		return err
	}
	e.layouts = next
	return nil
}

// Layouts 返回已保存的布局。
func (e *Editor) Layouts() []signature.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.layouts)
}

// Presets 返回内置预设。
func (e *Editor) Presets() []signature.Layout {
	return preset.Builtin()
}

// SaveLayout 从指定签名捕获样式并保存为命名布局。
func (e *Editor) SaveLayout(ctx context.Context, profileID, name string) (signature.Layout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return signature.Layout{}, ErrEmptyName
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.profileIndex(profileID)
	if i < 0 {
		return signature.Layout{}, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	l := signature.CaptureLayout(e.profiles[i], name)
	l.ID = e.newID()
	l.CreatedAt = e.now().UTC()

	next := append(slices.Clone(e.layouts), l)
	if err := e.commitLayouts(ctx, next); err != nil {
		return signature.Layout{}, err
	}
	e.log.Info("保存布局", "id", l.ID, "name", name, "profile", profileID)
	return l, nil
}

// ApplyLayout 把已保存的布局（或以 preset: 开头的内置预设）应用到签名，内容保持不变。
func (e *Editor) ApplyLayout(ctx context.Context, profileID, layoutID string) (signature.Config, error) {
	l, err := e.findLayout(layoutID)
	if err != nil {
		return signature.Config{}, err
	}
	return e.Update(ctx, profileID, func(cfg *signature.Config) {
		*cfg = signature.ApplyLayout(*cfg, l)
	})
}

// ApplyPreset 按名称应用内置预设。
func (e *Editor) ApplyPreset(ctx context.Context, profileID, name string) (signature.Config, error) {
	l, ok := preset.Lookup(name)
	if !ok {
		return signature.Config{}, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	return e.Update(ctx, profileID, func(cfg *signature.Config) {
		*cfg = signature.ApplyLayout(*cfg, l)
	})
}

func (e *Editor) findLayout(id string) (signature.Layout, error) {
	if strings.HasPrefix(id, preset.IDPrefix) {
		if l, ok := preset.Lookup(id); ok {
			return l, nil
		}
		return signature.Layout{}, fmt.Errorf("%w: %s", ErrLayoutNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, l := range e.layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return signature.Layout{}, fmt.Errorf("%w: %s", ErrLayoutNotFound, id)
}

// DeleteLayout 删除已保存的布局。
func (e *Editor) DeleteLayout(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.IndexFunc(e.layouts, func(l signature.Layout) bool { return l.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, id)
	}
	next := slices.Delete(slices.Clone(e.layouts), i, i+1)
	return e.commitLayouts(ctx, next)
}

// SetLogo 读取上传的图片并以 data URI 写入 logoUrl。
func (e *Editor) SetLogo(ctx context.Context, profileID string, r io.Reader) (signature.Config, error) {
	uri, err := logo.DataURI(r, e.logoMax)
	if err != nil {
		return signature.Config{}, err
	}
	return e.Update(ctx, profileID, func(cfg *signature.Config) {
		cfg.LogoURL = uri
	})
}

// SuggestFooter 请求页脚关键词并写入 footerServices。建议本身从不失败。
func (e *Editor) SuggestFooter(ctx context.Context, profileID, businessType string) (signature.Config, error) {
	if _, err := e.Profile(profileID); err != nil {
		return signature.Config{}, err
	}
	text, err := e.suggester.Suggest(ctx, businessType)
	if err != nil || strings.TrimSpace(text) == "" {
		e.log.Warn("页脚建议不可用，使用默认值", "error", err)
		text = suggest.DefaultFallback
	}
	return e.Update(ctx, profileID, func(cfg *signature.Config) {
		cfg.FooterServices = text
	})
}

// Suggest 只返回建议文本，不修改任何签名。
func (e *Editor) Suggest(ctx context.Context, businessType string) string {
	text, err := e.suggester.Suggest(ctx, businessType)
	if err != nil || strings.TrimSpace(text) == "" {
		return suggest.DefaultFallback
	}
	return text
}

// BuildOptions 返回布局计算使用的测量后端。
func (e *Editor) BuildOptions() layout.BuildOptions {
	return layout.BuildOptions{Typesetter: e.canvas, Images: e.canvas}
}

// Layout 计算指定签名的布局树。
func (e *Editor) Layout(profileID string) (*layout.Result, error) {
	cfg, err := e.Profile(profileID)
	if err != nil {
		return nil, err
	}
	return layout.Build(cfg, e.BuildOptions()), nil
}

// Render 以指定格式渲染签名。
func (e *Editor) Render(profileID string, format renderer.Format) ([]byte, error) {
	res, err := e.Layout(profileID)
	if err != nil {
		return nil, err
	}
	return e.rendererFor(format).Render(res)
}

func (e *Editor) rendererFor(format renderer.Format) renderer.Renderer {
	if format == renderer.FormatHTML || format == "" {
		return e.html
	}
	return e.canvas.As(format)
}

// Clipboard 接收复制的签名。html 为压缩后的片段，text 为纯文本备选内容。
type Clipboard interface {
	WriteHTML(ctx context.Context, html, text string) error
}

// Copy 把签名的压缩 HTML 写入剪贴板。失败不会改动任何签名。
func (e *Editor) Copy(ctx context.Context, profileID string, clip Clipboard) error {
	if clip == nil {
		return ErrNoClipboard
	}
	cfg, err := e.Profile(profileID)
	if err != nil {
		return err
	}
	res := layout.Build(cfg, e.BuildOptions())
	if res.Content.Empty() && len(res.Logo.Images) == 0 {
		return ErrNothingToCopy
	}
	html, err := e.clip.Render(res)
	if err != nil {
		return fmt.Errorf("生成签名失败: %w", err)
	}
	if err := clip.WriteHTML(ctx, string(html), PlainText(cfg)); err != nil {
		return fmt.Errorf("复制签名失败: %w", err)
	}
	e.log.Info("签名已复制", "profile", profileID, "bytes", len(html))
	return nil
}

// PlainText 返回签名的纯文本版本，只包含可见字段。
func PlainText(cfg signature.Config) string {
	var lines []string
	for _, f := range []signature.Field{signature.FieldFullName, signature.FieldJobTitle} {
		if cfg.Visible(f) {
			lines = append(lines, strings.TrimSpace(cfg.Value(f)))
		}
	}
	for _, f := range signature.ContactFields {
		if !cfg.Visible(f) {
			continue
		}
		if f == signature.FieldAddress {
			for _, l := range cfg.AddressLines() {
				if l = strings.TrimSpace(l); l != "" {
					lines = append(lines, l)
				}
			}
			continue
		}
		lines = append(lines, strings.TrimSpace(cfg.Value(f)))
	}
	if cfg.Visible(signature.FieldWebsite) {
		lines = append(lines, strings.TrimSpace(cfg.Website))
	}
	if kws := cfg.FooterKeywords(); len(kws) > 0 {
		lines = append(lines, strings.Join(kws, " - "))
	}
	return strings.Join(lines, "\n")
}

// Buffer 是内存剪贴板，供 HTTP 接口与命令行使用。
type Buffer struct {
	mu   sync.Mutex
	html string
	text string
}

func (b *Buffer) WriteHTML(_ context.Context, html, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.html, b.text = html, text
	return nil
}

// Contents 返回最近一次写入的内容。
func (b *Buffer) Contents() (html, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.html, b.text
}
