package preset_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/sigstudio/preset"
	"github.com/ByLCY/sigstudio/signature"
)

func TestBuiltinPresets(t *testing.T) {
	layouts := preset.Builtin()
	if len(layouts) != 3 {
		t.Fatalf("expected 3 builtin presets, got %d", len(layouts))
	}
	want := []string{"modern", "classic", "minimal"}
	for i, name := range want {
		if layouts[i].Name != name {
			t.Fatalf("preset %d: expected %s, got %s", i, name, layouts[i].Name)
		}
		if layouts[i].ID != preset.IDPrefix+name {
			t.Fatalf("preset %d: unexpected id %s", i, layouts[i].ID)
		}
	}

	classic, ok := preset.Lookup("Classic")
	if !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if classic.LayoutMode != signature.LogoTop || classic.NameTitleAlign != signature.AlignCenter {
		t.Fatalf("unexpected classic style: %+v", classic.Style)
	}
	minimal, _ := preset.Lookup("minimal")
	if minimal.DividerStyle != signature.DividerNone || minimal.ShowSocialIcons {
		t.Fatalf("unexpected minimal style: %+v", minimal.Style)
	}
	// 未列出的属性保持默认值
	if !minimal.ShowEmail || minimal.VerticalSpacing != signature.DefaultStyle().VerticalSpacing {
		t.Fatalf("expected defaults for unspecified keys")
	}
	if _, ok := preset.Lookup("baroque"); ok {
		t.Fatalf("unexpected preset baroque")
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	first := preset.Builtin()
	first[0].AccentColor = "#000000"
	if again := preset.Builtin(); again[0].AccentColor == "#000000" {
		t.Fatalf("Builtin should return a copy")
	}
}

func TestLoadOffsetsAndAliases(t *testing.T) {
	src := `presets v1 {
  layout "Mon style" {
    nameOffset: [6, -4]
    contactOffsetX: -12
    logoAlign: flex-end
    contactVerticalAlign: "flex-start"
  }
}`
	layouts, err := preset.Load("custom.sigl", strings.NewReader(src))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	l := layouts[0]
	if l.Name != "Mon style" || l.ID != "preset:mon style" {
		t.Fatalf("unexpected identity: %s / %s", l.Name, l.ID)
	}
	if l.NameOffsetX != 6 || l.NameOffsetY != -4 || l.ContactOffsetX != -12 {
		t.Fatalf("unexpected offsets: %+v", l.Style)
	}
	if l.LogoAlign != signature.AlignRight || l.ContactVerticalAlign != signature.VAlignTop {
		t.Fatalf("unexpected aligns: %s %s", l.LogoAlign, l.ContactVerticalAlign)
	}
}

func TestLoadErrorsCarryPosition(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "presets v1 {\n layout a {\n  fooBar: 1\n }\n}\n", "x.sigl:3:3"},
		{"bad color", "presets v1 {\n layout a {\n  accentColor: \"red\"\n }\n}\n", "accentColor"},
		{"negative size", "presets v1 {\n layout a {\n  logoWidth: -10\n }\n}\n", "logoWidth"},
		{"bad mode", "presets v1 {\n layout a {\n  layoutMode: sideways\n }\n}\n", "sideways"},
		{"fractional offset", "presets v1 {\n layout a {\n  nameOffset: [1.5, 0]\n }\n}\n", "nameOffset"},
		{"duplicate", "presets v1 {\n layout a {}\n layout A {}\n}\n", "重复"},
		{"version", "presets v2 {}\n", "v2"},
	}
	for _, tc := range cases {
		_, err := preset.Load("x.sigl", strings.NewReader(tc.src))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected %q in error, got %v", tc.name, tc.want, err)
		}
		var perr *preset.Error
		if !errors.As(err, &perr) {
			t.Fatalf("%s: expected *preset.Error, got %T", tc.name, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	style := signature.DefaultStyle()
	style.LayoutMode = signature.LogoBottom
	style.DividerStyle = signature.DividerDashed
	style.NameOffsetX, style.NameOffsetY = -3, 7
	style.WebsiteOffsetY = 2
	style.ShowJobTitle = false
	style.FooterFontSize = 10.5
	style.ContactVerticalAlign = signature.VAlignBottom
	in := []signature.Layout{
		{Name: "Équipe ventes", Style: style},
		{Name: "simple", Style: signature.DefaultStyle()},
	}

	var buf bytes.Buffer
	if err := preset.Encode(&buf, in); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := preset.Load("roundtrip.sigl", &buf)
	if err != nil {
		t.Fatalf("reload failed: %v\n%s", err, buf.String())
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d layouts, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Name != in[i].Name {
			t.Fatalf("layout %d: name %q != %q", i, out[i].Name, in[i].Name)
		}
		if out[i].Style != in[i].Style {
			t.Fatalf("layout %d: style mismatch\nwant %+v\ngot  %+v", i, in[i].Style, out[i].Style)
		}
	}
}
