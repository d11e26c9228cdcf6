// Package i18n holds the two display languages and the UI strings for each.
package i18n

import "unicode/utf8"

type Language string

const (
	English Language = "en"
	Bengali Language = "bn"

	// Primary is the source language posts are written in.
	Primary = English
	// Secondary is the language posts are translated into.
	Secondary = Bengali
)

func (l Language) String() string {
	return string(l)
}

// Name is the English name of the language, used in AI prompts.
func (l Language) Name() string {
	switch l {
	case Bengali:
		return "Bengali"
	default:
		return "English"
	}
}

// Other returns the language the toggle switches to.
func (l Language) Other() Language {
	if l == Secondary {
		return Primary
	}
	return Secondary
}

// Parse returns the language for a code, falling back to Primary.
func Parse(code string) Language {
	if Language(code) == Bengali {
		return Bengali
	}
	return English
}

// Valid reports whether code names a supported language.
func Valid(code string) bool {
	return Language(code) == English || Language(code) == Bengali
}

// Bengali script block.
const (
	bengaliFirst = 'ঀ'
	bengaliLast  = '৿'
)

// HasSecondaryScript reports whether s contains any Bengali-script rune.
func HasSecondaryScript(s string) bool {
	for _, r := range s {
		if r >= bengaliFirst && r <= bengaliLast {
			return true
		}
	}
	return false
}

// RuneLen is the length of s in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
