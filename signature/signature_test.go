package signature

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestApplyCapturedLayoutKeepsContent(t *testing.T) {
	src := Default()
	src.LayoutMode = LogoTop
	src.AccentColor = "#ff0000"
	src.NameOffsetX = -12
	src.ShowJobTitle = false

	dst := Config{ID: "p2", ProfileName: "Autre"}
	dst.FullName = "Alice"
	dst.Email = "alice@example.com"
	dst.SocialLinks.Twitter = "https://x.com/alice"

	l := CaptureLayout(src, "Mon style")
	if l.Name != "Mon style" {
		t.Fatalf("layout name = %q", l.Name)
	}
	got := ApplyLayout(dst, l)

	if got.ID != "p2" || got.ProfileName != "Autre" {
		t.Fatalf("identity changed: %+v", got)
	}
	if !reflect.DeepEqual(got.Content, dst.Content) {
		t.Fatalf("content changed: %+v", got.Content)
	}
	if !reflect.DeepEqual(got.Style, src.Style) {
		t.Fatalf("style not applied")
	}
	if dst.LayoutMode != "" {
		t.Fatalf("input mutated")
	}
}

func TestConfigJSONRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.SocialLinks.Twitter = "https://twitter.com/homty"
	cfg.WebsiteOffsetY = -7
	cfg.ShowAddress = false

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	for _, key := range []string{"id", "fullName", "logoWidth", "websiteOffsetY", "socialLinks", "layoutMode"} {
		if _, ok := flat[key]; !ok {
			t.Fatalf("missing key %q in %s", key, data)
		}
	}

	var back Config
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", back, cfg)
	}
}

func TestConfigDecodeDefaultsMissingFlags(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"id":"x","fullName":"Bob","contactVerticalAlign":"flex-end"}`), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cfg.ShowFullName || !cfg.ShowSocialIcons {
		t.Fatalf("missing flags should default to shown")
	}
	if cfg.ContactVerticalAlign != VAlignBottom {
		t.Fatalf("legacy valign not mapped: %q", cfg.ContactVerticalAlign)
	}
	if cfg.Email != "" {
		t.Fatalf("content must not be defaulted, got %q", cfg.Email)
	}
}

func TestNormalized(t *testing.T) {
	cfg := Default()
	cfg.LogoWidth = -10
	cfg.DividerHeight = math.NaN()
	cfg.LayoutMode = "diagonal"
	cfg.WebsiteAlign = "end"
	cfg.AccentColor = "green"
	cfg.DividerColor = "#ABC"
	cfg.NameOffsetX = -40

	got := cfg.Normalized()
	if got.LogoWidth != 0 || got.DividerHeight != 0 {
		t.Fatalf("sizes not clamped: %v %v", got.LogoWidth, got.DividerHeight)
	}
	if got.LayoutMode != LogoLeft {
		t.Fatalf("layout mode = %q", got.LayoutMode)
	}
	if got.WebsiteAlign != AlignRight {
		t.Fatalf("website align = %q", got.WebsiteAlign)
	}
	if got.AccentColor != "#16a34a" || got.DividerColor != "#abc" {
		t.Fatalf("colors = %q %q", got.AccentColor, got.DividerColor)
	}
	if got.NameOffsetX != -40 {
		t.Fatalf("offset must be preserved")
	}
	if cfg.LogoWidth != -10 {
		t.Fatalf("input mutated")
	}
}

func TestVisibility(t *testing.T) {
	cfg := Default()
	cfg.Email = "   "
	cfg.ShowPhoneWork = false
	if cfg.Visible(FieldEmail) {
		t.Fatalf("blank email must be hidden")
	}
	if cfg.Visible(FieldPhoneWork) {
		t.Fatalf("disabled phone must be hidden")
	}
	if !cfg.Visible(FieldPhoneMobile) {
		t.Fatalf("mobile should be visible")
	}
	cfg.SocialLinks = SocialLinks{}
	if cfg.SocialVisible() {
		t.Fatalf("social row without links must be hidden")
	}
}

func TestFooterKeywords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Vente - Location - Gestion - Syndic", []string{"Vente", "Location", "Gestion", "Syndic"}},
		{"  A--B - ", []string{"A", "B"}},
		{"", []string{}},
		{" - - ", []string{}},
	}
	for _, tc := range cases {
		cfg := Config{}
		cfg.FooterServices = tc.in
		got := cfg.FooterKeywords()
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("FooterKeywords(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestLinkTargets(t *testing.T) {
	for in, want := range map[string]string{
		"+32 (2) 844 23 03":    "tel:+3228442303",
		"+32 (0) 484 86 59 54": "tel:+32484865954",
		"02 / 844.23.03":       "tel:028442303",
		"(0) 484 86":           "tel:048486",
		" +33 1+2 ":            "tel:+3312",
	} {
		if got := TelTarget(in); got != want {
			t.Fatalf("TelTarget(%q) = %q, want %q", in, got, want)
		}
	}
	if got := URLTarget("Homty.be"); got != "https://Homty.be" {
		t.Fatalf("URLTarget = %q", got)
	}
	for in, want := range map[string]string{
		"http://homty.be":  "http://homty.be",
		"HTTPS://Homty.be": "HTTPS://Homty.be",
		"httpster.net":     "https://httpster.net",
		"httpbin.org/get":  "https://httpbin.org/get",
	} {
		if got := URLTarget(in); got != want {
			t.Fatalf("URLTarget(%q) = %q, want %q", in, got, want)
		}
	}
	if got := MailTarget(" a@b.c "); got != "mailto:a@b.c" {
		t.Fatalf("MailTarget = %q", got)
	}
}
