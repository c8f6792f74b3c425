package binding

import (
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"businessType": "agence immobilière",
		"agent": map[string]any{
			"name":  "Tarek",
			"langs": []any{"fr", "nl"},
		},
		"blank": "  ",
	}

	cases := []struct {
		in, want string
	}{
		{"Secteur: ${businessType}.", "Secteur: agence immobilière."},
		{"${agent.name} parle ${agent.langs[1]}", "Tarek parle nl"},
		{"${missing}", "${missing}"},
		{"${missing|immobilier}", "immobilier"},
		{"${blank|défaut}", "défaut"},
		{"${agent.langs[5]}", "${agent.langs[5]}"},
		{"${ }", "${ }"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateStringMap(t *testing.T) {
	got := Interpolate("Type: ${businessType}", map[string]string{"businessType": "syndic"})
	if got != "Type: syndic" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := Interpolate("${x|y}", nil); got != "y" {
		t.Fatalf("fallback should apply without data, got %q", got)
	}
}

func TestFields(t *testing.T) {
	got := Fields("${a} ${b|x} ${a} ${c.d[0]}")
	want := []string{"a", "b", "c.d[0]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Fields = %v, want %v", got, want)
	}
}
