// Package naming defines the hierarchical names of simulated components.
package naming

import (
	"strings"
	"unicode"
)

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// NamedBase is a base implementation of Named.
type NamedBase struct {
	name string
}

func (b NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a new NamedBase. The name must be valid.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)

	return NamedBase{name: name}
}

// Join creates a child name under the parent. For example, Join("Cache",
// "DataBank") returns "Cache.DataBank".
func Join(parent, child string) string {
	return parent + "." + child
}

// NameMustBeValid panics if the name does not follow the naming convention.
//  1. It is organized as dot-separated tokens, e.g. "Cache.DataBank".
//  2. Tokens must not be empty, so "A..B" and "A." are not valid.
//  3. Tokens must be capitalized CamelCase, so "A.b" is not valid.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	for _, token := range strings.Split(name, ".") {
		if token == "" {
			panic("name " + name + " is not valid: empty token")
		}

		first := []rune(token)[0]
		if !unicode.IsUpper(first) {
			panic("name " + name + " is not valid: " +
				"token " + token + " must start with a capital letter")
		}

		for _, c := range token {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				panic("name " + name + " is not valid: " +
					"token " + token + " must be CamelCase")
			}
		}
	}
}
