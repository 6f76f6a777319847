package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders minor-unit integer prices with the locale's digit
// grouping, e.g. "$50.000" for es-CO.
func PriceFormatter(locale string) (func(int64) string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	p := message.NewPrinter(tag)
	return func(v int64) string {
		if v < 0 {
			return p.Sprintf("-$%d", -v)
		}
		return p.Sprintf("$%d", v)
	}, nil
}
