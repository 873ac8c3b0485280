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

// Package figtext pulls out the parts of a document that talk about figures and tables.
package figtext

import (
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/textmap"
)

// ErrInvalidConfiguration is returned for an unknown strategy or word count
var ErrInvalidConfiguration = errors.Errorf("%w: figure text", textmap.ErrConfiguration)

// 🎯 Strategy selects how figure text is collected
type Strategy string

const (
	// Legends keeps paragraphs that start like a figure or table legend
	Legends Strategy = "legends"
	// LegendsAndWords keeps legends plus a window of words around figure references
	LegendsAndWords Strategy = "legCloseWords"
	// LegendsAndParagraphs keeps legends plus any paragraph with a figure reference
	LegendsAndParagraphs Strategy = "legParagraphs"
)

// DefaultNumWords is the window size used by the router
const DefaultNumWords = 75

var (
	// "Supplemental F I G U R E 1", "Extended data fig. 2", "table S3" ...
	legendRE = regexp2.MustCompile(`^\s*`+
		`(?:(?:`+textmap.SpacedOutRegex("online")+
		`|`+textmap.SpacedOutRegex("extended")+`\s*`+textmap.SpacedOutRegex("data")+
		`|`+textmap.SpacedOutRegex("supp")+`(?:\s?`+textmap.SpacedOutRegex("lemental")+
		`|\s?`+textmap.SpacedOutRegex("lementary")+`)?`+
		`)\s*)?`+
		`(?:`+textmap.SpacedOutRegex("fig")+`(?:\s?`+textmap.SpacedOutRegex("ure")+`)?`+
		`|`+textmap.SpacedOutRegex("table")+`)`+
		`s?[.]?\s*[a-z]?\d`, regexp2.IgnoreCase)

	// a token that is a figure or table reference, possibly wrapped in punctuation
	cueRE = regexp2.MustCompile(`^\W*(?:fig(?:ure)?s?|tables?)\b`, regexp2.IgnoreCase)
)

// 📦 Extractor collects figure text with one strategy
type Extractor struct {
	strategy Strategy
	numWords int
}

// 🏭 New builds an extractor. numWords only matters for LegendsAndWords.
func New(strategy Strategy, numWords int) (*Extractor, error) {
	switch strategy {
	case Legends, LegendsAndWords, LegendsAndParagraphs:
	default:
		return nil, errors.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, strategy)
	}
	if numWords < 0 {
		return nil, errors.Errorf("%w: negative word count %d", ErrInvalidConfiguration, numWords)
	}
	return &Extractor{strategy: strategy, numWords: numWords}, nil
}

// Strategy returns the configured strategy
func (e *Extractor) Strategy() Strategy { return e.strategy }

// NumWords returns the configured window size
func (e *Extractor) NumWords() int { return e.numWords }

// 🔍 Extract returns the figure text spans of text in document order
func (e *Extractor) Extract(text string) []string {
	var spans []string
	for _, p := range Paragraphs(text) {
		legend := IsLegend(p)
		switch e.strategy {
		case Legends:
			if legend {
				spans = appendTrimmed(spans, p)
			}
		case LegendsAndParagraphs:
			if legend || HasCue(p) {
				spans = appendTrimmed(spans, p)
			}
		case LegendsAndWords:
			if legend {
				spans = appendTrimmed(spans, p)
				continue
			}
			spans = append(spans, Windows(p, e.numWords)...)
		}
	}
	return spans
}

// 📄 Paragraphs splits text on runs of two or more newlines.
// Leading and trailing boundaries produce empty paragraphs.
func Paragraphs(text string) []string {
	var (
		paras []string
		start int
	)
	for i := 0; i < len(text); {
		if text[i] != '\n' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '\n' {
			j++
		}
		if j-i >= 2 {
			paras = append(paras, text[start:i])
			start = j
		}
		i = j
	}
	return append(paras, text[start:])
}

// IsLegend reports whether a paragraph starts like a figure or table legend
func IsLegend(paragraph string) bool {
	ok, _ := legendRE.MatchString(paragraph)
	return ok
}

// HasCue reports whether any word of the paragraph is a figure or table reference
func HasCue(paragraph string) bool {
	for _, tok := range strings.Fields(paragraph) {
		if isCue(tok) {
			return true
		}
	}
	return false
}

// 🪟 Windows returns numWords words either side of every figure reference.
// Overlapping windows are merged. Windows that only touch are not.
func Windows(paragraph string, numWords int) []string {
	tokens := strings.Fields(paragraph)

	var (
		spans      []string
		start, end = -1, -1
	)
	flush := func() {
		if start >= 0 {
			spans = append(spans, strings.Join(tokens[start:end+1], " "))
		}
	}

	for i, tok := range tokens {
		if !isCue(tok) {
			continue
		}
		s, e := max(0, i-numWords), min(len(tokens)-1, i+numWords)
		if start >= 0 && s <= end {
			end = max(end, e)
			continue
		}
		flush()
		start, end = s, e
	}
	flush()

	return spans
}

func isCue(token string) bool {
	ok, _ := cueRE.MatchString(token)
	return ok
}

func appendTrimmed(spans []string, p string) []string {
	if p = strings.TrimSpace(p); p != "" {
		spans = append(spans, p)
	}
	return spans
}
