// Package datefmt renders timestamps as a long-style date followed by a
// short-style time in a given locale, e.g. "January 15, 2024 at 2:30 PM".
package datefmt

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultLocale is used when a locale tag is malformed or unsupported.
const DefaultLocale = "en-US"

type style struct {
	locale monday.Locale
	layout string // Go reference layout; English month names are translated by monday
}

// The first entry is the matcher's fallback.
var (
	tags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.MustParse("de-DE"),
		language.MustParse("fr-FR"),
		language.MustParse("es-ES"),
		language.MustParse("it-IT"),
		language.BrazilianPortuguese,
		language.MustParse("nl-NL"),
		language.MustParse("ru-RU"),
		language.MustParse("ja-JP"),
	}

	styles = []style{
		{monday.LocaleEnUS, "January 2, 2006 at 3:04 PM"},
		{monday.LocaleEnGB, "2 January 2006 at 15:04"},
		{monday.LocaleDeDE, "2. January 2006 um 15:04"},
		{monday.LocaleFrFR, "2 January 2006 à 15:04"},
		{monday.LocaleEsES, "2 de January de 2006, 15:04"},
		{monday.LocaleItIT, "2 January 2006 alle ore 15:04"},
		{monday.LocalePtBR, "2 de January de 2006 às 15:04"},
		{monday.LocaleNlNL, "2 January 2006 om 15:04"},
		{monday.LocaleRuRU, "2 January 2006 г. в 15:04"},
		{monday.LocaleJaJP, "2006年1月2日 15:04"},
	}

	matcher = language.NewMatcher(tags)
)

// Format renders t in its own location using the conventions of locale,
// a BCP 47 tag such as "en-US" or "de". Malformed or unsupported tags fall
// back to DefaultLocale. Seconds are never shown.
func Format(t time.Time, locale string) string {
	s := lookup(locale)
	return monday.Format(t, s.layout, s.locale)
}

func lookup(locale string) style {
	tag, err := language.Parse(locale)
	if err != nil {
		return styles[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return styles[0]
	}
	return styles[idx]
}

// Formatter formats dates for a fixed locale.
type Formatter struct {
	style style
}

// NewFormatter resolves locale once for repeated use.
func NewFormatter(locale string) Formatter {
	return Formatter{style: lookup(locale)}
}

// Format renders t like the package-level Format.
func (f Formatter) Format(t time.Time) string {
	return monday.Format(t, f.style.layout, f.style.locale)
}

// Supported reports whether locale resolves to a built-in style without
// falling back.
func Supported(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	_, _, conf := matcher.Match(tag)
	return conf != language.No
}
