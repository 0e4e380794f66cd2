package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ibnfzy/gizichain/internal/model"
)

func TestParseMotherProfileCoercions(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{
		"id": 7,
		"name": "Siti",
		"bb": "65,5",
		"tb": 158,
		"umur": "29",
		"usia_bayi_bln": "4",
		"laktasi_tipe": "eksklusif",
		"aktivitas": "sedang",
		"alergi": "udang, kacang ,,telur",
		"preferensi": ["sayur", "", "ikan "],
		"riwayat_penyakit": "anemia"
	}`)
	got := ParseMotherProfile(raw, "")
	if got == nil {
		t.Fatal("expected profile")
	}
	if got.ID != "7" || got.BB != 65.5 || got.TB != 158 || got.Umur != 29 || got.UsiaBayiBulan != 4 {
		t.Fatalf("unexpected numerics: %+v", got)
	}
	if !reflect.DeepEqual(got.Alergi, []string{"udang", "kacang", "telur"}) {
		t.Fatalf("alergi = %v", got.Alergi)
	}
	if !reflect.DeepEqual(got.Preferensi, []string{"sayur", "ikan"}) {
		t.Fatalf("preferensi = %v", got.Preferensi)
	}
	if !reflect.DeepEqual(got.Riwayat, []string{"anemia"}) {
		t.Fatalf("riwayat = %v (legacy riwayat_penyakit key must populate it)", got.Riwayat)
	}
}

func TestParseMotherProfileRiwayatPrecedence(t *testing.T) {
	t.Parallel()

	got := ParseMotherProfile(map[string]any{
		"id":               "m1",
		"riwayat":          []any{"hipertensi"},
		"riwayat_penyakit": []any{"anemia"},
	}, "")
	if !reflect.DeepEqual(got.Riwayat, []string{"hipertensi"}) {
		t.Fatalf("riwayat = %v, want current key to win", got.Riwayat)
	}
}

func TestParseMotherProfileFallbackID(t *testing.T) {
	t.Parallel()

	got := ParseMotherProfile(map[string]any{"bb": 60}, "m9")
	if got == nil || got.ID != "m9" {
		t.Fatalf("expected fallback id m9, got %+v", got)
	}
	if ParseMotherProfile(nil, "m9") != nil {
		t.Fatal("expected nil for nil payload")
	}
}

// Serializing an update payload and parsing it back must yield an equivalent
// profile, with list order preserved. Mirrors the app's edit screen, which
// writes both riwayat keys outward.
func TestMotherProfileUpdateRoundTrip(t *testing.T) {
	t.Parallel()

	in := model.MotherProfile{
		ID:            "m1",
		BB:            65.5,
		TB:            158,
		Umur:          29,
		UsiaBayiBulan: 4,
		LaktasiTipe:   "parsial",
		Aktivitas:     "ringan",
		Alergi:        []string{"udang", "kacang"},
		Preferensi:    []string{"sayur"},
		Riwayat:       []string{"anemia", "hipertensi"},
	}
	payload := map[string]any{
		"bb":               in.BB,
		"tb":               in.TB,
		"umur":             in.Umur,
		"usia_bayi_bln":    in.UsiaBayiBulan,
		"laktasi_tipe":     in.LaktasiTipe,
		"aktivitas":        in.Aktivitas,
		"alergi":           in.Alergi,
		"preferensi":       in.Preferensi,
		"riwayat":          in.Riwayat,
		"riwayat_penyakit": in.Riwayat,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	got := ParseMotherProfile(decode(t, string(b)), in.ID)
	if got == nil {
		t.Fatal("expected profile")
	}
	if !reflect.DeepEqual(*got, in) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, in)
	}
}

func TestParseUserMotherID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"camelCase", `{"id":1,"motherId":"m2"}`, "m2"},
		{"legacy snake", `{"id":1,"mother_id":3}`, "3"},
		{"camel wins", `{"id":1,"motherId":"m2","mother_id":3}`, "m2"},
		{"absent", `{"id":1}`, ""},
	}
	for _, tc := range cases {
		got := ParseUser(decode(t, tc.raw))
		if got == nil {
			t.Fatalf("%s: expected user", tc.name)
		}
		if got.MotherID != tc.want {
			t.Errorf("%s: motherID = %q, want %q", tc.name, got.MotherID, tc.want)
		}
	}
}
