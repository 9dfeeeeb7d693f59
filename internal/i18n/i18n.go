// Package i18n resolves user-facing messages by locale.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no catalog matches the requested locale.
const DefaultLocale = "en"

// Catalog looks up messages for one resolved locale.
type Catalog struct {
	locale string
}

// NewCatalog returns a catalog for the best available match of locale.
func NewCatalog(locale string) *Catalog {
	return &Catalog{locale: Resolve(locale)}
}

// Locale returns the resolved locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// T returns the message for key with {0}, {1}, ... replaced by args.
// Missing keys fall back to the default locale, then to the key itself.
func (c *Catalog) T(key string, args ...any) string {
	msg, ok := catalogs[c.locale][key]
	if !ok {
		msg, ok = catalogs[DefaultLocale][key]
	}
	if !ok {
		msg = key
	}

	for i, arg := range args {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%d}", i), fmt.Sprint(arg))
	}
	return msg
}

// Locales returns the locales that have a catalog.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for l := range catalogs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Resolve maps a locale string such as "zh_CN.UTF-8" or "en-GB" to a
// catalog locale: exact match first, then the base language, then
// DefaultLocale.
func Resolve(locale string) string {
	norm := normalize(locale)
	if norm == "" {
		return DefaultLocale
	}
	if _, ok := catalogs[norm]; ok {
		return norm
	}

	tag, err := language.Parse(norm)
	if err != nil {
		return DefaultLocale
	}

	base, _ := tag.Base()
	if base.String() == "zh" {
		return "zh-cn"
	}
	if _, ok := catalogs[base.String()]; ok {
		return base.String()
	}

	return DefaultLocale
}

// DetectLocale reads the locale from LC_ALL, LC_MESSAGES and LANG, in that
// order. Unset values and the POSIX "C" locale are skipped.
func DetectLocale(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		return v
	}
	return DefaultLocale
}

func normalize(locale string) string {
	l := strings.TrimSpace(locale)
	if i := strings.IndexAny(l, ".@"); i >= 0 {
		l = l[:i]
	}
	l = strings.ReplaceAll(l, "_", "-")
	return strings.ToLower(l)
}
