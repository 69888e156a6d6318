package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
)

// timeMethods returns the calendar operations. Getters read the time in its
// own location; getMonth is zero-based.
func timeMethods() map[string]MethodFunc {
	return map[string]MethodFunc{
		"getFullYear":       timeGetter(func(t time.Time) int { return t.Year() }),
		"getMonth":          timeGetter(func(t time.Time) int { return int(t.Month()) - 1 }),
		"getDate":           timeGetter(time.Time.Day),
		"getDay":            timeGetter(func(t time.Time) int { return int(t.Weekday()) }),
		"getHours":          timeGetter(time.Time.Hour),
		"getMinutes":        timeGetter(time.Time.Minute),
		"getSeconds":        timeGetter(time.Time.Second),
		"getMilliseconds":   timeGetter(func(t time.Time) int { return t.Nanosecond() / int(time.Millisecond) }),
		"getTime":           timeGetTime,
		"toISOString":       timeToISOString,
		"getMonthName":      timeMonthName("January"),
		"getMonthNameShort": timeMonthName("Jan"),
		"format":            timeFormat,
	}
}

func timeGetter(fn func(time.Time) int) MethodFunc {
	return func(c *Call) (any, error) {
		t, _ := asTime(c.Receiver)
		return fn(t), nil
	}
}

func timeGetTime(c *Call) (any, error) {
	t, _ := asTime(c.Receiver)
	return t.UnixMilli(), nil
}

func timeToISOString(c *Call) (any, error) {
	t, _ := asTime(c.Receiver)
	return t.UTC().Format(isoLayout), nil
}

// timeMonthName renders the month with a monday layout in the locale given
// as the first argument, falling back to the formatter locale.
func timeMonthName(layout string) MethodFunc {
	return func(c *Call) (any, error) {
		t, _ := asTime(c.Receiver)
		return monday.Format(t, layout, mondayLocale(c.TextArg(0, c.Locale))), nil
	}
}

// timeFormat renders the time with a Go layout, localized through monday.
func timeFormat(c *Call) (any, error) {
	t, _ := asTime(c.Receiver)
	if len(c.Args) == 0 {
		return nil, fmt.Errorf("%w: format needs a layout", ErrBadArgument)
	}
	return monday.Format(t, c.TextArg(0, ""), mondayLocale(c.TextArg(1, c.Locale))), nil
}

// textToDate parses free-form date text. Text without a zone is read as UTC.
func textToDate(c *Call) (any, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(Text(c.Receiver)), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
	}
	return t, nil
}

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"ru":    monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"cs":    monday.LocaleCsCZ,
	"da":    monday.LocaleDaDK,
	"fi":    monday.LocaleFiFI,
	"sv":    monday.LocaleSvSE,
	"nb":    monday.LocaleNbNO,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_tw": monday.LocaleZhTW,
	"ko":    monday.LocaleKoKR,
	"tr":    monday.LocaleTrTR,
	"uk":    monday.LocaleUkUA,
	"el":    monday.LocaleElGR,
	"ro":    monday.LocaleRoRO,
}

// mondayLocale maps a language tag such as "de", "pt-BR" or "en_GB" to a
// monday locale. Unknown tags fall back to the base language, then English.
func mondayLocale(lang string) monday.Locale {
	lang = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "-", "_"))
	if loc, ok := mondayLocales[lang]; ok {
		return loc
	}
	if base, _, found := strings.Cut(lang, "_"); found {
		if loc, ok := mondayLocales[base]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}
