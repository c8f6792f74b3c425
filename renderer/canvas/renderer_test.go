package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/sigstudio/internal/logo"
	"github.com/ByLCY/sigstudio/layout"
	"github.com/ByLCY/sigstudio/renderer"
	"github.com/ByLCY/sigstudio/signature"
)

var (
	regular = layout.FontResource{Name: "Body", Style: "regular"}
	bold    = layout.FontResource{Name: "Body-Bold", Style: "bold"}
)

func testLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		img.Set(x, 5, color.RGBA{G: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return logo.Encode(buf.Bytes(), "image/png")
}

func TestMeasureTextBoldIsWider(t *testing.T) {
	r := NewRenderer(Options{})
	wr, err := r.MeasureText("Tarek Ben Bachir", regular, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wb, err := r.MeasureText("Tarek Ben Bachir", bold, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wr <= 0 || wb <= wr {
		t.Fatalf("expected bold wider than regular, got regular=%g bold=%g", wr, wb)
	}
}

// 字宽应随字号线性变化（单位均为 px）。
func TestMeasureTextScalesWithSize(t *testing.T) {
	r := NewRenderer(Options{})
	small, _ := r.MeasureText("Homty.be", regular, 12)
	large, _ := r.MeasureText("Homty.be", regular, 24)
	if math.Abs(large-2*small) > 0.01*large {
		t.Fatalf("expected linear scaling, got 12px=%g 24px=%g", small, large)
	}
	if empty, _ := r.MeasureText("", regular, 12); empty != 0 {
		t.Fatalf("empty text should measure 0, got %g", empty)
	}
}

func TestImageSize(t *testing.T) {
	r := NewRenderer(Options{})
	w, h, ok := r.ImageSize(testLogo(t))
	if !ok || w != 20 || h != 10 {
		t.Fatalf("ImageSize = %g,%g,%v", w, h, ok)
	}
	if _, _, ok := r.ImageSize("https://homty.be/logo.png"); ok {
		t.Fatalf("remote images must not be measured")
	}
}

func TestRenderFormats(t *testing.T) {
	base := NewRenderer(Options{})
	cfg := signature.Default()
	cfg.LogoURL = testLogo(t)
	cfg.DividerStyle = signature.DividerDashed
	res := layout.Build(cfg, layout.BuildOptions{Typesetter: base, Images: base})

	if img := res.Logo.Images[0]; math.Abs(img.Height-img.Width/2) > 1e-9 {
		t.Fatalf("logo height should follow the 2:1 image ratio, got %gx%g", img.Width, img.Height)
	}

	cases := []struct {
		format renderer.Format
		check  func([]byte) bool
	}{
		{renderer.FormatSVG, func(b []byte) bool { return strings.Contains(string(b), "<svg") }},
		{renderer.FormatPDF, func(b []byte) bool { return bytes.HasPrefix(b, []byte("%PDF")) }},
		{renderer.FormatPNG, func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) }},
	}
	for _, tc := range cases {
		out, err := base.As(tc.format).Render(res)
		if err != nil {
			t.Fatalf("%s: render error: %v", tc.format, err)
		}
		if !tc.check(out) {
			t.Fatalf("%s: unexpected output header %q", tc.format, out[:min(len(out), 16)])
		}
	}
}

func TestRenderRemoteLogoAndVerticalMode(t *testing.T) {
	r := NewRenderer(Options{Format: renderer.FormatSVG})
	cfg := signature.Default()
	cfg.LayoutMode = signature.LogoBottom
	res := layout.Build(cfg, layout.BuildOptions{Typesetter: r, Images: r})
	if _, err := r.Render(res); err != nil {
		t.Fatalf("render with remote logo should not fail: %v", err)
	}
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.As(renderer.FormatHTML).Render(&layout.Result{Width: 10, Height: 10}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
