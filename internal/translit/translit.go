// Package translit converts Russian text between Cyrillic and Latin script.
// Photo descriptions are stored in both scripts so a search typed in either
// matches.
package translit

import (
	"strings"
	"unicode"
)

// Script is the writing system a text is detected as
type Script int

const (
	Unknown Script = iota
	Cyrillic
	Latin
)

// Direction selects the conversion
type Direction int

const (
	CyrillicToLatin Direction = iota
	LatinToCyrillic
)

var cyrToLat = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",
}

// Longest patterns first; matching is greedy.
var latToCyr = []struct {
	lat string
	cyr string
}{
	{"sch", "щ"},
	{"zh", "ж"}, {"ts", "ц"}, {"ch", "ч"}, {"sh", "ш"}, {"yo", "ё"},
	{"ju", "ю"}, {"yu", "ю"}, {"ja", "я"}, {"ya", "я"},
	{"a", "а"}, {"b", "б"}, {"c", "ц"}, {"d", "д"}, {"e", "е"}, {"f", "ф"},
	{"g", "г"}, {"h", "х"}, {"i", "и"}, {"j", "й"}, {"k", "к"}, {"l", "л"},
	{"m", "м"}, {"n", "н"}, {"o", "о"}, {"p", "п"}, {"q", "к"}, {"r", "р"},
	{"s", "с"}, {"t", "т"}, {"u", "у"}, {"v", "в"}, {"w", "в"}, {"x", "кс"},
	{"y", "ы"}, {"z", "з"},
}

func isCyrillic(r rune) bool {
	return unicode.Is(unicode.Cyrillic, r)
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Detect reports Cyrillic if text has any Cyrillic letter, otherwise Latin if
// it has any Latin letter.
func Detect(text string) Script {
	if strings.IndexFunc(text, isCyrillic) >= 0 {
		return Cyrillic
	}
	if strings.IndexFunc(text, isLatin) >= 0 {
		return Latin
	}
	return Unknown
}

// Transliterate converts text in the given direction. Characters outside the
// source alphabet are copied unchanged.
func Transliterate(text string, dir Direction) string {
	if dir == LatinToCyrillic {
		return toCyrillic(text)
	}
	return toLatin(text)
}

func toLatin(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		lower := unicode.ToLower(r)
		lat, ok := cyrToLat[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r && lat != "" {
			lat = strings.ToUpper(lat[:1]) + lat[1:]
		}
		b.WriteString(lat)
	}
	return b.String()
}

func toCyrillic(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text) * 2)

	for i := 0; i < len(runes); {
		if !isLatin(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		matched := false
		for _, p := range latToCyr {
			n := len(p.lat)
			if i+n > len(runes) {
				continue
			}
			if strings.ToLower(string(runes[i:i+n])) != p.lat {
				continue
			}
			cyr := p.cyr
			if unicode.IsUpper(runes[i]) {
				cr := []rune(cyr)
				cyr = string(unicode.ToUpper(cr[0])) + string(cr[1:])
			}
			b.WriteString(cyr)
			i += n
			matched = true
			break
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

// Enriched is a description together with its companion-script rendering.
// DescriptionTranslit is empty when the text has no letters to convert.
type Enriched struct {
	Description         string
	DescriptionTranslit string
}

// Enrich builds the dual-script form of a description
func Enrich(text string) Enriched {
	text = strings.TrimSpace(text)
	e := Enriched{Description: text}
	switch Detect(text) {
	case Cyrillic:
		e.DescriptionTranslit = Transliterate(text, CyrillicToLatin)
	case Latin:
		e.DescriptionTranslit = Transliterate(text, LatinToCyrillic)
	}
	return e
}

// ParseCaption splits an "add" caption into the category token and the
// enriched description. ok is false when the caption has fewer than two
// whitespace-separated tokens.
func ParseCaption(caption string) (category string, desc Enriched, ok bool) {
	fields := strings.Fields(caption)
	if len(fields) < 2 {
		return "", Enriched{}, false
	}
	category = fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(caption), category))
	return category, Enrich(rest), true
}
