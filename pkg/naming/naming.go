// Package naming provides property naming strategies used to translate raw
// member names into JSON keys when no explicit naming tag applies.
package naming

import (
	"strings"
	"unicode"
)

// Strategy translates a raw member name to a JSON key.
type Strategy interface {
	Translate(name string) string
}

// Func adapts an ordinary function to a Strategy.
type Func func(string) string

// Translate implements Strategy.
func (f Func) Translate(name string) string { return f(name) }

// Identity keeps member names unchanged.
var Identity Strategy = Func(func(name string) string { return name })

// LowerCamelCase lowercases the leading character: "UserName" -> "userName".
var LowerCamelCase Strategy = Func(func(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
})

// UpperCamelCase uppercases the leading character: "userName" -> "UserName".
var UpperCamelCase Strategy = Func(func(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
})

// LowerSnakeCase separates words with underscores: "UserName" -> "user_name".
var LowerSnakeCase Strategy = Func(func(name string) string {
	return separate(name, '_', unicode.ToLower)
})

// UpperSnakeCase separates words with underscores and uppercases:
// "userName" -> "USER_NAME".
var UpperSnakeCase Strategy = Func(func(name string) string {
	return separate(name, '_', unicode.ToUpper)
})

// KebabCase separates words with dashes: "UserName" -> "user-name".
var KebabCase Strategy = Func(func(name string) string {
	return separate(name, '-', unicode.ToLower)
})

// separate splits a camel-case name at upper-case boundaries, joining the
// words with sep and mapping every rune through transform. Runs of upper
// case (initialisms like "URL") stay one word.
func separate(name string, sep rune, transform func(rune) rune) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(sep)
		}
		b.WriteRune(transform(r))
	}
	return b.String()
}

// ByName returns the strategy registered under the given manifest name.
func ByName(name string) (Strategy, bool) {
	s, ok := strategies[name]
	return s, ok
}

var strategies = map[string]Strategy{
	"identity":    Identity,
	"lower-camel": LowerCamelCase,
	"upper-camel": UpperCamelCase,
	"lower-snake": LowerSnakeCase,
	"upper-snake": UpperSnakeCase,
	"kebab":       KebabCase,
}
