// Package shipping holds the flat per-governorate delivery fee table used
// at checkout. Fees are fixed amounts, not weight- or distance-based.
package shipping

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when the client does not send one.
const DefaultCurrency = "EGP"

// ErrUnknownGovernorate is returned for keys not in the table.
var ErrUnknownGovernorate = errors.New("unknown governorate")

// Governorate is one delivery zone.
type Governorate struct {
	Key    string
	NameAR string
	NameEN string
	Fee    decimal.Decimal
}

var governorates = map[string]Governorate{
	"cairo":      {Key: "cairo", NameAR: "القاهرة", NameEN: "Cairo", Fee: decimal.NewFromInt(50)},
	"giza":       {Key: "giza", NameAR: "الجيزة", NameEN: "Giza", Fee: decimal.NewFromInt(50)},
	"alexandria": {Key: "alexandria", NameAR: "الإسكندرية", NameEN: "Alexandria", Fee: decimal.NewFromInt(60)},
	"dakahlia":   {Key: "dakahlia", NameAR: "الدقهلية", NameEN: "Dakahlia", Fee: decimal.NewFromInt(65)},
	"sharqia":    {Key: "sharqia", NameAR: "الشرقية", NameEN: "Sharqia", Fee: decimal.NewFromInt(65)},
	"gharbia":    {Key: "gharbia", NameAR: "الغربية", NameEN: "Gharbia", Fee: decimal.NewFromInt(65)},
	"qalyubia":   {Key: "qalyubia", NameAR: "القليوبية", NameEN: "Qalyubia", Fee: decimal.NewFromInt(55)},
	"menoufia":   {Key: "menoufia", NameAR: "المنوفية", NameEN: "Menoufia", Fee: decimal.NewFromInt(65)},
	"beheira":    {Key: "beheira", NameAR: "البحيرة", NameEN: "Beheira", Fee: decimal.NewFromInt(70)},
	"fayoum":     {Key: "fayoum", NameAR: "الفيوم", NameEN: "Fayoum", Fee: decimal.NewFromInt(70)},
	"ismailia":   {Key: "ismailia", NameAR: "الإسماعيلية", NameEN: "Ismailia", Fee: decimal.NewFromInt(70)},
	"suez":       {Key: "suez", NameAR: "السويس", NameEN: "Suez", Fee: decimal.NewFromInt(70)},
	"port-said":  {Key: "port-said", NameAR: "بورسعيد", NameEN: "Port Said", Fee: decimal.NewFromInt(70)},
	"damietta":   {Key: "damietta", NameAR: "دمياط", NameEN: "Damietta", Fee: decimal.NewFromInt(70)},
	"minya":      {Key: "minya", NameAR: "المنيا", NameEN: "Minya", Fee: decimal.NewFromInt(80)},
	"assiut":     {Key: "assiut", NameAR: "أسيوط", NameEN: "Assiut", Fee: decimal.NewFromInt(80)},
	"sohag":      {Key: "sohag", NameAR: "سوهاج", NameEN: "Sohag", Fee: decimal.NewFromInt(85)},
	"qena":       {Key: "qena", NameAR: "قنا", NameEN: "Qena", Fee: decimal.NewFromInt(85)},
	"luxor":      {Key: "luxor", NameAR: "الأقصر", NameEN: "Luxor", Fee: decimal.NewFromInt(90)},
	"aswan":      {Key: "aswan", NameAR: "أسوان", NameEN: "Aswan", Fee: decimal.NewFromInt(90)},
	"red-sea":    {Key: "red-sea", NameAR: "البحر الأحمر", NameEN: "Red Sea", Fee: decimal.NewFromInt(100)},
	"matrouh":    {Key: "matrouh", NameAR: "مطروح", NameEN: "Matrouh", Fee: decimal.NewFromInt(100)},
}

// Fee returns the delivery fee for a governorate key.
func Fee(key string) (decimal.Decimal, error) {
	g, ok := governorates[key]
	if !ok {
		return decimal.Zero, ErrUnknownGovernorate
	}
	return g.Fee, nil
}

// Lookup returns the full governorate record for a key.
func Lookup(key string) (Governorate, bool) {
	g, ok := governorates[key]
	return g, ok
}

// All returns every governorate, sorted by key for stable listings.
func All() []Governorate {
	out := make([]Governorate, 0, len(governorates))
	for _, g := range governorates {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
