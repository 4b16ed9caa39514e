package snowtype

import (
	"strings"
	"unicode"
)

// initialisms are tokens rendered all-caps in generated Go identifiers,
// matching the convention of common Go DB code generators.
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uuid": "UUID",
	"json": "JSON",
	"sql":  "SQL",
	"api":  "API",
}

// splitIdent breaks an identifier-ish string into word tokens. Splits on
// any non-alphanumeric rune and on lower-to-upper case boundaries, so it
// handles UPPER_SNAKE column names, snake_case config keys, and camelCase
// alike.
func splitIdent(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
		prev = r
	}
	flush()
	return tokens
}

// upperCamel converts a column or table name to an exported Go identifier,
// so "MENU_ITEM_ID" becomes "MenuItemID" and "menu_type" becomes "MenuType".
func upperCamel(s string) string {
	var b strings.Builder
	for _, tok := range splitIdent(s) {
		lower := strings.ToLower(tok)
		if init, ok := initialisms[lower]; ok {
			b.WriteString(init)
			continue
		}
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}
	return b.String()
}

// variantIdent normalizes an enum source string into an identifier suffix,
// so "Mac & Cheese" becomes "MacCheese" and "2nd Floor" becomes
// "V2ndFloor". The source string itself stays the exact match key; only the
// identifier is derived.
func variantIdent(source string) string {
	var b strings.Builder
	for _, tok := range splitIdent(source) {
		lower := strings.ToLower(tok)
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}
	ident := b.String()
	if ident == "" {
		return ""
	}
	if unicode.IsDigit(rune(ident[0])) {
		ident = "V" + ident
	}
	return ident
}

// snakeCase lowercases a name into snake_case, the form override keys use
// in the generation config. Both "MENU_TYPE" and "MenuType" come out as
// "menu_type".
func snakeCase(s string) string {
	tokens := splitIdent(s)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return strings.Join(tokens, "_")
}
