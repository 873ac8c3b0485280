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
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/age"
	"github.com/walteh/figtriage/pkg/figtext"
	"github.com/walteh/figtriage/pkg/textmap"
)

// ⚙️ Defaults used when an Options field is zero
const (
	DefaultNumChars       = 30
	DefaultFigureStrategy = figtext.LegendsAndWords
)

// BlockPattern finds text that stops an exclude term from reaching an age match:
// a paragraph boundary, or ". " unless it ends "fig." or "et al.".
// "; " never blocks.
const BlockPattern = `\n\n|(?<!\Wfig|t al)[.]\s`

// DefaultOrganismExclude lists non mouse organism cues. '_' is a word boundary
// and '#' a digit.
var DefaultOrganismExclude = []string{
	"bovine",
	"chick",
	"human",
	"larvae",
	"monkey",
	"porcine",
	"zebra",
	"xenopus",
	"_pig_",
	"_rat_",
	"_rats_",
	"drosophila",
	"worm",
	"cynomolgus",
	"macaque",
	"opossum",
	"tadpole",
	"turtle",
	"hamilton and hamburger",
	"hamburger and hamilton",
	"hamburger hamilton",
	"hamburger-hamilton",
	"_hh##_",
	"_hh ##_",
	"_hh-##_",
	"chameleon",
	"equine",
	"quail",
}

var (
	blockRE = regexp2.MustCompile(BlockPattern, regexp2.IgnoreCase)
	mouseRE = regexp2.MustCompile(`\b(?:mouse|mice)\b`, regexp2.IgnoreCase)
)

// 📝 Options configures a Router. Zero numbers and an empty strategy take defaults.
type Options struct {
	SkipJournals []string

	Cat1Terms   []string
	Cat1Exclude []string

	AgeExclude []string
	// nil means DefaultOrganismExclude, an empty slice means none
	AgeOrganismExclude []string

	Cat2Terms   []string
	Cat2Exclude []string

	NumChars   int // context kept around cat1/cat2 matches
	AgeContext int // context kept and searched around age matches
	FixContext int

	FigureStrategy figtext.Strategy
	FigureWords    int

	// documents shorter than this many characters route on the journal alone; 0 disables
	MinTextLength int
}

func (o Options) withDefaults() Options {
	if o.NumChars == 0 {
		o.NumChars = DefaultNumChars
	}
	if o.AgeContext == 0 {
		o.AgeContext = age.DefaultContext
	}
	if o.FixContext == 0 {
		o.FixContext = age.DefaultFixContext
	}
	if o.FigureStrategy == "" {
		o.FigureStrategy = DefaultFigureStrategy
	}
	if o.FigureWords == 0 {
		o.FigureWords = figtext.DefaultNumWords
	}
	if o.AgeOrganismExclude == nil {
		o.AgeOrganismExclude = DefaultOrganismExclude
	}
	return o
}

// 🚦 Router decides whether a document goes to curation
type Router struct {
	opts Options
	skip map[string]struct{}

	cat1 category
	cat2 category

	figures    *figtext.Extractor
	ages       *textmap.Transformer
	ageExclude *textmap.Transformer // nil when there are no terms
	orgExclude *textmap.Transformer // nil when there are no terms
}

// 🏭 New builds a router. Empty term lists are fine, they just never match.
func New(opts Options) (*Router, error) {
	opts = opts.withDefaults()
	if opts.NumChars < 0 || opts.AgeContext < 0 || opts.FixContext < 0 || opts.MinTextLength < 0 {
		return nil, errors.Errorf("%w: negative context or length", textmap.ErrConfiguration)
	}

	r := &Router{
		opts: opts,
		skip: make(map[string]struct{}, len(opts.SkipJournals)),
		cat1: newCategory(opts.Cat1Terms, opts.Cat1Exclude, TagCat1, TagCat1Exclude),
		cat2: newCategory(opts.Cat2Terms, opts.Cat2Exclude, TagCat2, TagCat2Exclude),
	}
	for _, j := range opts.SkipJournals {
		r.skip[j] = struct{}{}
	}

	var err error
	if r.figures, err = figtext.New(opts.FigureStrategy, opts.FigureWords); err != nil {
		return nil, errors.Errorf("building figure text extractor: %w", err)
	}
	if r.ages, err = age.NewTransformer(opts.AgeContext, opts.FixContext); err != nil {
		return nil, errors.Errorf("building age transformer: %w", err)
	}
	if r.ageExclude, err = vocabTransformer(TagAgeExclude, opts.AgeExclude); err != nil {
		return nil, errors.Errorf("building age exclude transformer: %w", err)
	}
	if r.orgExclude, err = vocabTransformer(TagAgeOrgExclude, opts.AgeOrganismExclude); err != nil {
		return nil, errors.Errorf("building organism exclude transformer: %w", err)
	}

	return r, nil
}

func vocabTransformer(name string, terms []string) (*textmap.Transformer, error) {
	rule, ok := textmap.VocabRule(name, terms, textmap.Transform(upper), 0)
	if !ok {
		return nil, nil
	}
	return textmap.New([]textmap.Rule{rule})
}

// Options returns the options in effect, defaults filled in
func (r *Router) Options() Options {
	return r.opts
}

// 🎯 Route runs every stage on the document and combines them into a decision.
// Stages never stop early so the result always carries all the evidence.
func (r *Router) Route(ctx context.Context, text, journal string) *Result {
	res := &Result{Journal: journal}

	_, skipped := r.skip[journal]
	res.GoodJournal = !skipped

	lowered := lower(text)

	res.Cat1Matches, res.Cat1Excludes = r.cat1.search(lowered, r.opts.NumChars)

	figText := strings.Join(r.figures.Extract(lowered), "\n\n")
	res.AgeMatches, res.AgeExcludes = r.findAges(figText)
	res.Cat2Matches, res.Cat2Excludes = r.cat2.search(figText, r.opts.NumChars)

	if r.opts.MinTextLength > 0 && utf8.RuneCountInString(text) < r.opts.MinTextLength {
		res.ShortText = true
	}

	switch {
	case !res.GoodJournal:
		res.Decision = No
	case res.ShortText:
		res.Decision = Yes
	case len(res.Cat1Matches) > 0 && len(res.AgeMatches) > 0 && len(res.Cat2Matches) > 0:
		res.Decision = Yes
	default:
		res.Decision = No
	}

	c := res.Counts()
	zerolog.Ctx(ctx).Debug().
		Str("journal", journal).
		Bool("good_journal", res.GoodJournal).
		Bool("short_text", res.ShortText).
		Int("cat1", c.Cat1Matches).
		Int("cat1_excludes", c.Cat1Excludes).
		Int("age", c.AgeMatches).
		Int("age_excludes", c.AgeExcludes).
		Int("cat2", c.Cat2Matches).
		Int("cat2_excludes", c.Cat2Excludes).
		Str("decision", string(res.Decision)).
		Msg("routed document")

	return res
}

// findAges splits the age matches in figure text into accepted and excluded
func (r *Router) findAges(figText string) (matches, excludes []textmap.MatchRecord) {
	_, recs := r.ages.Transform(figText)
	for _, m := range recs {
		if age.IsFix(m.Type) {
			continue
		}
		if r.goodAge(&m) && r.goodOrganism(&m) {
			matches = append(matches, m)
		} else {
			excludes = append(excludes, m)
		}
	}
	return matches, excludes
}

// goodAge rejects a match with an unblocked age exclude term near it
func (r *Router) goodAge(m *textmap.MatchRecord) bool {
	if r.highlightExcludes(r.ageExclude, m) {
		m.Type = TagAgeExclude
		return false
	}
	return true
}

// goodOrganism accepts mouse matches and rejects ones near another organism
func (r *Router) goodOrganism(m *textmap.MatchRecord) bool {
	if r.aboutMouse(*m) {
		return true
	}
	if r.highlightExcludes(r.orgExclude, m) {
		m.Type = TagAgeOrgExclude
		return false
	}
	return true
}

// aboutMouse looks for mouse|mice in the match or, unblocked, in its context
func (r *Router) aboutMouse(m textmap.MatchRecord) bool {
	if ok, _ := mouseRE.MatchString(m.MatchText); ok {
		return true
	}

	pre := []rune(m.PreText)
	for _, loc := range findAll(mouseRE, pre) {
		if !r.blocked(pre[loc[1]:]) {
			return true
		}
	}

	post := []rune(m.PostText)
	for _, loc := range findAll(mouseRE, post) {
		if !r.blocked(post[:loc[0]]) {
			return true
		}
	}

	return false
}

// highlightExcludes upper cases the first exclude term that applies in the
// match text, the pre text and the post text. Terms in the match always apply,
// terms in the context only when nothing blocks them.
func (r *Router) highlightExcludes(tr *textmap.Transformer, m *textmap.MatchRecord) bool {
	if tr == nil {
		return false
	}
	found := false

	if _, hits := tr.Scan(m.MatchText); len(hits) > 0 {
		m.MatchText = highlight(m.MatchText, hits[0])
		found = true
	}

	pre := []rune(m.PreText)
	_, hits := tr.Scan(m.PreText)
	for _, h := range hits {
		if !r.blocked(pre[h.End:]) {
			m.PreText = highlight(m.PreText, h)
			found = true
			break
		}
	}

	post := []rune(m.PostText)
	_, hits = tr.Scan(m.PostText)
	for _, h := range hits {
		if !r.blocked(post[:h.Start]) {
			m.PostText = highlight(m.PostText, h)
			found = true
			break
		}
	}

	return found
}

func (r *Router) blocked(between []rune) bool {
	m, _ := blockRE.FindRunesMatch(between)
	return m != nil
}

// 🧱 HasBlock reports whether text would stop an exclude term from applying
func (r *Router) HasBlock(text string) bool {
	return r.blocked([]rune(text))
}

// AgeGroups returns the age matches accumulated since the last ResetMatches, grouped
func (r *Router) AgeGroups() []textmap.Group {
	return r.ages.Groups()
}

// 📊 AgeReport renders the age matches seen since the last ResetMatches
func (r *Router) AgeReport(title string) string {
	return r.ages.Report(title)
}

// 🧹 ResetMatches clears the age matches kept for AgeReport
func (r *Router) ResetMatches() {
	r.ages.ResetMatches()
}

func highlight(s string, h textmap.MatchRecord) string {
	runes := []rune(s)
	return string(runes[:h.Start]) + h.ReplText + string(runes[h.End:])
}

// findAll returns rune [start, end) pairs of every match
func findAll(re *regexp2.Regexp, runes []rune) [][2]int {
	var locs [][2]int
	m, err := re.FindRunesMatch(runes)
	for err == nil && m != nil {
		locs = append(locs, [2]int{m.Index, m.Index + m.Length})
		m, err = re.FindNextMatch(m)
	}
	return locs
}
