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

package router

import (
	"strings"
	"unicode"

	"github.com/walteh/figtriage/pkg/textmap"
)

// 🏷️ Category tags for match records
const (
	TagCat1          = "cat1"
	TagCat1Exclude   = "excludeCat1"
	TagCat2          = "cat2"
	TagCat2Exclude   = "excludeCat2"
	TagAgeExclude    = "excludeAge"
	TagAgeOrgExclude = "excludeAgeOrg"
)

// 📖 termSet maps lower case terms to the upper case text that replaces them
type termSet struct {
	terms []string
	repl  map[string]string
}

// newTermSet keeps the first of any duplicate terms and drops empty ones
func newTermSet(terms []string, norm func(string) string) termSet {
	ts := termSet{repl: map[string]string{}}
	for _, t := range terms {
		nt := norm(t)
		if nt == "" {
			continue
		}
		if _, ok := ts.repl[nt]; ok {
			continue
		}
		ts.terms = append(ts.terms, nt)
		ts.repl[nt] = upper(nt)
	}
	return ts
}

// 🔍 FindMatches finds every occurrence of each term in text.
//
// Terms are searched one after another. Each hit is replaced by the upper case
// term in a working copy, so a later term never matches text an earlier term
// claimed. Newlines in the working copy become spaces so terms match across lines.
// Terms are matched as given; lower case the text and the terms for case
// insensitive matching.
//
// Returns the working copy and one record per hit. Match and context text
// come from text itself.
func FindMatches(text string, terms []string, matchType string, ctxLen int) (string, []textmap.MatchRecord) {
	ts := newTermSet(terms, func(s string) string { return s })
	return ts.find(text, matchType, ctxLen)
}

func (ts termSet) find(text string, matchType string, ctxLen int) (string, []textmap.MatchRecord) {
	if len(ts.terms) == 0 {
		return text, nil
	}

	orig := []rune(text)
	work := []rune(strings.ReplaceAll(text, "\n", " "))

	var recs []textmap.MatchRecord
	for _, term := range ts.terms {
		needle := []rune(term)
		repl := []rune(ts.repl[term])

		for from := 0; ; {
			start := indexRunes(work, needle, from)
			if start < 0 {
				break
			}
			end := start + len(needle)

			recs = append(recs, textmap.MatchRecord{
				Type:      matchType,
				Start:     start,
				End:       end,
				MatchText: string(orig[start:end]),
				PreText:   string(orig[max(0, start-ctxLen):start]),
				PostText:  string(orig[end:min(len(orig), end+ctxLen)]),
				ReplText:  string(repl),
			})

			copy(work[start:end], repl)
			from = end
		}
	}

	return string(work), recs
}

func indexRunes(hay, needle []rune, from int) int {
	n := len(needle)
	for i := from; i+n <= len(hay); i++ {
		match := true
		for j := 0; j < n; j++ {
			if hay[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// lower and upper map rune by rune so offsets survive the change
func lower(s string) string {
	return strings.Map(unicode.ToLower, s)
}

func upper(s string) string {
	return strings.Map(unicode.ToUpper, s)
}

// 📂 category is a term list shielded by its own exclude list
type category struct {
	terms      termSet
	exclude    termSet
	tag        string
	excludeTag string
}

func newCategory(terms, exclude []string, tag, excludeTag string) category {
	return category{
		terms:      newTermSet(terms, lower),
		exclude:    newTermSet(exclude, lower),
		tag:        tag,
		excludeTag: excludeTag,
	}
}

// search runs the exclude pass, then looks for terms in what the excludes left
func (c category) search(text string, ctxLen int) (matches, excludes []textmap.MatchRecord) {
	work, excludes := c.exclude.find(text, c.excludeTag, ctxLen)
	_, matches = c.terms.find(work, c.tag, ctxLen)
	return matches, excludes
}
