package normalize

import (
	"github.com/ibnfzy/gizichain/internal/coerce"
	"github.com/ibnfzy/gizichain/internal/model"
)

// ParseMotherProfile builds a MotherProfile from a raw payload, tolerating
// comma-decimal numeric strings and list fields sent as either arrays or
// comma-separated strings. fallbackID fills in when the payload carries no
// usable id. Returns nil when the payload is not an object.
func ParseMotherProfile(raw any, fallbackID string) *model.MotherProfile {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	id := firstID(m, "id", "mother_id", "motherId")
	if id == "" {
		id = fallbackID
	}
	riwayat := coerce.StringList(m["riwayat"])
	if len(riwayat) == 0 {
		riwayat = coerce.StringList(m["riwayat_penyakit"])
	}
	return &model.MotherProfile{
		ID:            id,
		Name:          firstString(m, "name", "nama"),
		Email:         firstString(m, "email"),
		BB:            coerce.Number(m["bb"], 0),
		TB:            coerce.Number(m["tb"], 0),
		Umur:          coerce.Number(m["umur"], 0),
		UsiaBayiBulan: firstNumber(m, "usia_bayi_bln", "usia_bayi_bulan", "usiaBayiBulan"),
		LaktasiTipe:   firstString(m, "laktasi_tipe", "laktasiTipe"),
		Aktivitas:     firstString(m, "aktivitas"),
		Alergi:        coerce.StringList(m["alergi"]),
		Preferensi:    coerce.StringList(m["preferensi"]),
		Riwayat:       riwayat,
	}
}

func firstNumber(m map[string]any, paths ...string) float64 {
	f, _ := firstFloat(m, paths...)
	return f
}

// ParseUser builds the authenticated user, resolving the mother id from
// either the camelCase or the legacy snake_case key.
func ParseUser(raw any) *model.User {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	return &model.User{
		ID:       firstID(m, "id"),
		Name:     firstString(m, "name", "nama"),
		Email:    firstString(m, "email"),
		MotherID: firstID(m, "motherId", "mother_id"),
	}
}
