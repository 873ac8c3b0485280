// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textmap

import (
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// ⚠️ Configuration errors, all detected when a Transformer is built
var (
	ErrConfiguration     = errors.Base("configuration error")
	ErrDuplicateRuleName = errors.Errorf("%w: duplicate rule name", ErrConfiguration)
	ErrInvalidRuleName   = errors.Errorf("%w: invalid rule name", ErrConfiguration)
	ErrEmptyPattern      = errors.Errorf("%w: empty pattern", ErrConfiguration)
	ErrPatternCompile    = errors.Errorf("%w: pattern does not compile", ErrConfiguration)
)

// rule names become named groups in the combined pattern
var ruleNameRE = regexp2.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\z`, regexp2.None)

// 🔄 Replacement is either a constant string or a function of the matched text
type Replacement struct {
	constant string
	fn       func(string) string
	isConst  bool
}

// 🏭 Constant replaces every match with s
func Constant(s string) Replacement {
	return Replacement{constant: s, isConst: true}
}

// 🏭 Transform replaces every match with fn(match)
func Transform(fn func(string) string) Replacement {
	return Replacement{fn: fn}
}

// Identity leaves matched text as it is. Useful for rules that only claim text.
func Identity() Replacement {
	return Replacement{}
}

// 🎯 Apply returns the replacement for the matched text
func (r Replacement) Apply(match string) string {
	switch {
	case r.isConst:
		return r.constant
	case r.fn != nil:
		return r.fn(match)
	default:
		return match
	}
}

// IsConstant reports whether the replacement ignores the matched text
func (r Replacement) IsConstant() bool {
	return r.isConst
}

// 📝 Rule is a named pattern with its replacement.
// Context is the number of characters kept on each side of a match.
type Rule struct {
	Name        string
	Pattern     string
	Replacement Replacement
	Context     int
}

func (r Rule) validate() error {
	if ok, _ := ruleNameRE.MatchString(r.Name); !ok {
		return errors.Errorf("%w %q", ErrInvalidRuleName, r.Name)
	}
	if r.Pattern == "" {
		return errors.Errorf("%w for rule %q", ErrEmptyPattern, r.Name)
	}
	if r.Context < 0 {
		return errors.Errorf("%w: rule %q has negative context %d", ErrConfiguration, r.Name, r.Context)
	}
	return nil
}

// 🔧 EscapeWithWordBoundaries matches s literally between word boundaries.
// Strings that start or end with punctuation rarely match this way.
func EscapeWithWordBoundaries(s string) string {
	return `\b` + regexp2.Escape(s) + `\b`
}

// 🔧 SqueezeAndEscape matches s with any run of whitespace wherever s has whitespace
func SqueezeAndEscape(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = regexp2.Escape(w)
	}
	return strings.Join(words, `\s+`)
}

// 🔧 SpacedOutRegex matches word with an optional whitespace between letters,
// e.g. "F I G U R E" for "figure".
func SpacedOutRegex(word string) string {
	letters := make([]string, 0, len(word))
	for _, r := range word {
		letters = append(letters, regexp2.Escape(string(r)))
	}
	return strings.Join(letters, `\s?`)
}

// 🔧 VocabTermRegex turns a curator vocabulary term into a pattern.
// Everything is escaped, then
//
//	' ' -> \s (any whitespace)
//	'#' -> \d (any digit)
//	'_' -> \b (word boundary)
func VocabTermRegex(term string) string {
	var sb strings.Builder
	for _, r := range term {
		switch r {
		case ' ':
			sb.WriteString(`\s`)
		case '#':
			sb.WriteString(`\d`)
		case '_':
			sb.WriteString(`\b`)
		default:
			sb.WriteString(regexp2.Escape(string(r)))
		}
	}
	return sb.String()
}

// 📦 VocabRule builds one rule matching any of the vocabulary terms.
// Returns false if no non-empty term remains.
func VocabRule(name string, terms []string, repl Replacement, context int) (Rule, bool) {
	return alternationRule(name, terms, VocabTermRegex, repl, context)
}

// 📦 StringsRule builds one rule matching any of the strings as whole words
func StringsRule(name string, strs []string, repl Replacement, context int) (Rule, bool) {
	return alternationRule(name, strs, EscapeWithWordBoundaries, repl, context)
}

func alternationRule(name string, terms []string, toRegex func(string) string, repl Replacement, context int) (Rule, bool) {
	alts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		alts = append(alts, toRegex(t))
	}
	if len(alts) == 0 {
		return Rule{}, false
	}
	return Rule{
		Name:        name,
		Pattern:     strings.Join(alts, "|"),
		Replacement: repl,
		Context:     context,
	}, true
}
