package ir

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Rust strict and reserved keywords. Descriptor names that collide with
// these cannot be spliced into generated source as plain identifiers.
var reservedWords = map[string]bool{
	"as":       true,
	"async":    true,
	"await":    true,
	"break":    true,
	"const":    true,
	"continue": true,
	"crate":    true,
	"dyn":      true,
	"else":     true,
	"enum":     true,
	"extern":   true,
	"false":    true,
	"fn":       true,
	"for":      true,
	"if":       true,
	"impl":     true,
	"in":       true,
	"let":      true,
	"loop":     true,
	"match":    true,
	"mod":      true,
	"move":     true,
	"mut":      true,
	"pub":      true,
	"ref":      true,
	"return":   true,
	"self":     true,
	"Self":     true,
	"static":   true,
	"struct":   true,
	"super":    true,
	"trait":    true,
	"true":     true,
	"type":     true,
	"unsafe":   true,
	"use":      true,
	"where":    true,
	"while":    true,
	"abstract": true,
	"become":   true,
	"box":      true,
	"do":       true,
	"final":    true,
	"macro":    true,
	"override": true,
	"priv":     true,
	"typeof":   true,
	"unsized":  true,
	"virtual":  true,
	"yield":    true,
	"try":      true,
	"gen":      true,
}

// Warning codes reported by CheckIdentifier.
const (
	WarnReservedWord   = "RESERVED_WORD"
	WarnInvalidChar    = "INVALID_IDENTIFIER"
	WarnLeadingDigit   = "LEADING_DIGIT"
	WarnBareUnderscore = "BARE_UNDERSCORE"
)

// isIdentRune approximates Rust's XID_Start and XID_Continue classes with
// Unicode general categories. Go has no XID tables, so the rare code points
// where the two differ (Other_ID_Start, NFKC exclusions) are not special-cased.
// A leading digit is left to the LEADING_DIGIT check.
func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_', unicode.In(r, unicode.L, unicode.Nl):
		return true
	case unicode.IsDigit(r):
		return true
	case first:
		return false
	default:
		return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
	}
}

// IsReservedWord reports whether name is a keyword in the target language.
func IsReservedWord(name string) bool {
	return reservedWords[name]
}

// CheckIdentifier reports why id cannot be used verbatim as a target
// language identifier. Names are never rewritten here; the caller decides
// whether a warning is fatal.
func CheckIdentifier(id Identifier) []Warning {
	name := id.String()
	if name == "" {
		return nil
	}

	var warnings []Warning
	if name == "_" {
		warnings = append(warnings, Warning{
			Code:     WarnBareUnderscore,
			Message:  "a lone underscore is a wildcard pattern, not a binding",
			TypeName: name,
		})
	}

	// Tensor names escape only when every byte is an ASCII digit, so "1a"
	// still reaches this check, as do scalar, shape and other names.
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		warnings = append(warnings, Warning{
			Code:     WarnLeadingDigit,
			Message:  "identifier starts with a digit",
			TypeName: name,
		})
	}

	for i, r := range name {
		if !isIdentRune(r, i == 0) {
			warnings = append(warnings, Warning{
				Code:     WarnInvalidChar,
				Message:  fmt.Sprintf("identifier contains invalid character %q", r),
				TypeName: name,
			})
			break
		}
	}

	if reservedWords[name] {
		warnings = append(warnings, Warning{
			Code:     WarnReservedWord,
			Message:  fmt.Sprintf("%q is a reserved word", name),
			TypeName: name,
		})
	}

	return warnings
}
