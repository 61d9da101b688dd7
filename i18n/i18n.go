// Package i18n translates chlang's own console messages.
//
// Catalogs live in locales/{lang}/LC_MESSAGES/chlang.po and are embedded
// in the binary. Init picks the language from the environment the same way
// GNU gettext does; T and N fall back to the English text when no catalog
// or entry exists.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "chlang"

var (
	po   *gotext.Locale
	lang = "en"
)

// Init loads the catalog for language, or for the environment's language
// when it is empty. Call it once before the first T or N.
func Init(language string) {
	if language == "" {
		language = detectLanguage()
	}
	lang = language

	po = gotext.NewLocaleFSWithPath(language, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// Language returns the language selected by Init.
func Language() string {
	return lang
}

// T translates msgid.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with a count-dependent plural form.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage checks LANGUAGE, LC_ALL, LC_MESSAGES and LANG in order.
// Encoding suffixes are dropped and the C/POSIX locales mean English.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
