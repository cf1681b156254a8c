package acidbase

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Band is one color range of an indicator. A band covers pH values below
// UpTo, or up to and including UpTo when Inclusive is set.
type Band struct {
	UpTo      float64
	Inclusive bool
	Color     string
}

func (b Band) contains(ph float64) bool {
	if b.Inclusive {
		return ph <= b.UpTo
	}
	return ph < b.UpTo
}

// Indicator is a pH indicator with its color bands in ascending pH order.
// The last band is open-ended.
type Indicator struct {
	Name    string
	Aliases []string
	Bands   []Band
}

// Color returns the indicator color at ph.
func (i Indicator) Color(ph float64) string {
	for _, band := range i.Bands {
		if band.contains(ph) {
			return band.Color
		}
	}
	return i.Bands[len(i.Bands)-1].Color
}

// Indicators lists the supported indicators.
var Indicators = []Indicator{
	{
		Name:    "Fenolftaleína",
		Aliases: []string{"phenolphthalein"},
		Bands: []Band{
			{UpTo: 8.2, Color: "Incolor"},
			{UpTo: 10.0, Inclusive: true, Color: "Rosa claro/Róseo"},
			{UpTo: math.Inf(1), Color: "Carmim/Magenta"},
		},
	},
	{
		Name:    "Azul de Bromotimol",
		Aliases: []string{"bromothymol blue", "bromotimol"},
		Bands: []Band{
			{UpTo: 6.0, Color: "Amarelo"},
			{UpTo: 7.6, Inclusive: true, Color: "Verde"},
			{UpTo: math.Inf(1), Color: "Azul"},
		},
	},
	{
		Name:    "Alaranjado de Metila",
		Aliases: []string{"methyl orange", "metilorange"},
		Bands: []Band{
			{UpTo: 3.1, Color: "Vermelho"},
			{UpTo: 4.4, Inclusive: true, Color: "Laranja"},
			{UpTo: math.Inf(1), Color: "Amarelo"},
		},
	},
	{
		Name:    "Vermelho de Metila",
		Aliases: []string{"methyl red"},
		Bands: []Band{
			{UpTo: 4.4, Color: "Vermelho"},
			{UpTo: 6.2, Inclusive: true, Color: "Laranja"},
			{UpTo: math.Inf(1), Color: "Amarelo"},
		},
	},
	{
		Name:    "Tornassol",
		Aliases: []string{"litmus", "papel tornassol"},
		Bands: []Band{
			{UpTo: 4.5, Color: "Vermelho"},
			{UpTo: 8.3, Inclusive: true, Color: "Violeta"},
			{UpTo: math.Inf(1), Color: "Azul"},
		},
	},
}

// noIndicator names that mean the experiment uses no indicator.
var noIndicator = map[string]bool{
	"":        true,
	"nenhum":  true,
	"nenhuma": true,
	"none":    true,
}

var indicatorIndex = buildIndicatorIndex()

func buildIndicatorIndex() map[string]Indicator {
	index := make(map[string]Indicator)
	for _, ind := range Indicators {
		index[FoldName(ind.Name)] = ind
		for _, alias := range ind.Aliases {
			index[FoldName(alias)] = ind
		}
	}
	return index
}

// FoldName lowercases name, strips diacritics and collapses whitespace, so
// "  AZUL de bromotimol" and "Fenolftaleina" match their table entries.
func FoldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// LookupIndicator resolves name. none reports that name selects no indicator;
// ok reports whether a supported indicator was found.
func LookupIndicator(name string) (ind Indicator, ok bool, none bool) {
	key := FoldName(name)
	if noIndicator[key] {
		return Indicator{}, false, true
	}
	ind, ok = indicatorIndex[key]
	return ind, ok, false
}
