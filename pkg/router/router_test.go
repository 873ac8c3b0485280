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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/figtriage/pkg/figtext"
	"github.com/walteh/figtriage/pkg/textmap"
)

func newTestRouter(t *testing.T, opts Options) *Router {
	t.Helper()
	r, err := New(opts)
	require.NoError(t, err)
	return r
}

func TestFindMatches(t *testing.T) {
	text := "the start. the middle.\nthe\nend"
	got, matches := FindMatches(text, []string{"the start", "middle", "the end"}, "textMatches", 5)

	assert.Equal(t, "THE START. the MIDDLE. THE END", got)
	require.Len(t, matches, 3)
	assert.Equal(t, "middle", matches[1].MatchText)
	assert.Equal(t, " the ", matches[1].PreText)
	assert.Equal(t, ".\nthe", matches[1].PostText)
	assert.Equal(t, "the\nend", matches[2].MatchText)
}

func TestFindMatchesEdgeCases(t *testing.T) {
	got, matches := FindMatches("abc abc", []string{"", "abc", "abc"}, "x", 2)
	assert.Equal(t, "ABC ABC", got)
	assert.Len(t, matches, 2)

	got, matches = FindMatches("abc\nabc", nil, "x", 2)
	assert.Equal(t, "abc\nabc", got)
	assert.Empty(t, matches)
}

func TestCategoryExcludeShieldsOverlap(t *testing.T) {
	r := newTestRouter(t, Options{
		Cat1Terms:   []string{"Embryo"},
		Cat1Exclude: []string{"embryonic stem"},
	})

	res := r.Route(context.Background(), "Embryonic stem cells and an embryo.", "j")

	require.Len(t, res.Cat1Excludes, 1)
	assert.Equal(t, TagCat1Exclude, res.Cat1Excludes[0].Type)
	assert.Equal(t, "embryonic stem", res.Cat1Excludes[0].MatchText)

	require.Len(t, res.Cat1Matches, 1)
	assert.Equal(t, TagCat1, res.Cat1Matches[0].Type)
	assert.Equal(t, "embryo", res.Cat1Matches[0].MatchText)
	assert.Equal(t, "EMBRYONIC STEM cells and an ", res.Cat1Matches[0].PreText)
}

func TestAgeExcludes(t *testing.T) {
	r := newTestRouter(t, Options{
		AgeExclude: []string{"_hh##_", "hamburger hamilton"},
	})

	tests := []struct {
		name     string
		doc      string
		wantType string
	}{
		{name: "no_exclusion", doc: "\n\nfig 1. some text E14.5 more text", wantType: "eday"},
		{name: "exclude_before", doc: "\n\nfig 1. (hh23) some text E14.5 more text", wantType: TagAgeExclude},
		{name: "exclude_after", doc: "\n\nfig 1. some text E14.5 more text (hh46)", wantType: TagAgeExclude},
		{name: "word_boundary_required", doc: "\n\nfig 1. (hh23not_word_boundary) some text E14.5 more text", wantType: "eday"},
		{name: "space_matches_newline", doc: "\n\nfig 1. (hamburger\nhamilton) some text E14.5 more text", wantType: TagAgeExclude},
		{name: "paragraph_blocks_before", doc: "\n\nfig 1. (hh23)\n\nfig 2 some text E14.5 more text", wantType: "eday"},
		{name: "paragraph_blocks_after", doc: "\n\nfig 1. some text E14.5 more text\n\n fig 2 (hh23)", wantType: "eday"},
		{name: "period_newline_blocks", doc: "\n\nfig 1. (hh23).\n some text E14.5 more text", wantType: "eday"},
		{name: "period_blocks", doc: "\n\nfig 1. (hh23). some text E14.5 more text", wantType: "eday"},
		{name: "period_blocks_after", doc: "\n\nfig 1. some text E14.5 more text. new sentence hh46.", wantType: "eday"},
		{name: "fig_period_does_not_block", doc: "\n\nfig 1. (hh23) fig. 54, some text E14.5 more text", wantType: TagAgeExclude},
		{name: "paren_fig_period_does_not_block", doc: "\n\nfig 1. (hh23) (fig. 54), some text E14.5 more text", wantType: TagAgeExclude},
		{name: "fig_period_newline_does_not_block", doc: "\n\nfig 1. some text E14.5 more text fig.\n54 hh33", wantType: TagAgeExclude},
		{name: "et_al_does_not_block", doc: "\n\nfig 1. some text E14.5 more text et al. 54 hh33", wantType: TagAgeExclude},
		{name: "semicolon_does_not_block", doc: "\n\nfig 1. (hh23); some text E14.5 more text", wantType: TagAgeExclude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Route(context.Background(), tt.doc, "journal")
			all := res.AllMatches()
			require.Len(t, all, 1)
			assert.Equal(t, tt.wantType, all[0].Type)
			assert.Equal(t, "e14.5", all[0].MatchText)
		})
	}
}

func TestAgeExcludeHighlightsTerm(t *testing.T) {
	r := newTestRouter(t, Options{AgeExclude: []string{"_hh##_"}})

	res := r.Route(context.Background(), "\n\nFig 1. (HH23) some text E14.5 more text", "journal")
	require.Len(t, res.AgeExcludes, 1)
	assert.Equal(t, "fig 1. (HH23) some text ", res.AgeExcludes[0].PreText)
	assert.Equal(t, " more text", res.AgeExcludes[0].PostText)
}

func TestOrganismExcludes(t *testing.T) {
	r := newTestRouter(t, Options{})

	tests := []struct {
		name         string
		doc          string
		wantMatches  []string
		wantExcludes []string
	}{
		{
			name:         "other_organism_before",
			doc:          "\n\nfig 1. human embryos at E14.5 were used",
			wantExcludes: []string{TagAgeOrgExclude},
		},
		{
			name:        "mouse_in_match_wins",
			doc:         "\n\nfig 1. chick and mouse embryo E14.5",
			wantMatches: []string{"developmental", "eday"},
		},
		{
			name:         "mouse_blocked_by_sentence",
			doc:          "\n\nfig 1. mouse data. human tissue at E14.5",
			wantExcludes: []string{TagAgeOrgExclude},
		},
		{
			name:        "mouse_after_match",
			doc:         "\n\nfig 1. E14.5 human and mouse",
			wantMatches: []string{"eday"},
		},
		{
			name:         "hh_stage_is_chick",
			doc:          "\n\nfig 1. (hh23); some text E14.5",
			wantExcludes: []string{TagAgeOrgExclude},
		},
		{
			name:        "no_organism",
			doc:         "\n\nfig 1. sections at E14.5",
			wantMatches: []string{"eday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Route(context.Background(), tt.doc, "journal")
			assert.Equal(t, tt.wantMatches, types(res.AgeMatches))
			assert.Equal(t, tt.wantExcludes, types(res.AgeExcludes))
		})
	}
}

func TestOrganismExcludeHighlightsTerm(t *testing.T) {
	r := newTestRouter(t, Options{})

	res := r.Route(context.Background(), "\n\nfig 1. human embryos at E14.5 were used", "journal")
	require.Len(t, res.AgeExcludes, 1)
	assert.Equal(t, "fig 1. HUMAN embryos at ", res.AgeExcludes[0].PreText)
}

func TestHasBlock(t *testing.T) {
	r := newTestRouter(t, Options{})

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "no_block", text: "fig 1.1 (hh23)\nfig 2 some text E14.5 more text", want: false},
		{name: "paragraph", text: "fig 1.1 (hh23)\n\nfig 2 some text E14.5 more text", want: true},
		{name: "semicolon", text: "fig 1.1 (hh23); fig 2 some text E14.5 more text", want: false},
		{name: "period", text: "fig 1.1 (hh23). fig 2 some text E14.5 more text", want: true},
		{name: "fig_period", text: "fig 1.1 (hh23) fig. 2 some text E14.5 more text", want: false},
		{name: "fig_period_newline", text: "fig 1.1 (hh23) fig.\n 2 some text E14.5 more text", want: false},
		{name: "paren_fig_period", text: "fig 1.1 (hh23) (fig. 2) some text E14.5 more text", want: false},
		{name: "config_period", text: "fig 1.1 (hh23) config. 2 some text E14.5 more text", want: true},
		{name: "et_al_period", text: "fig 1.1 (hh23) et al. some text E14.5 more text", want: false},
		{name: "et_al_period_newline", text: "fig 1.1 (hh23) et al.\nsome text E14.5 more text", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.HasBlock(tt.text))
		})
	}
}

const routedDoc = "We studied the embryo.\n\nFig 1. In situ hybridization at E14.5 in mouse."

func TestRouteDecision(t *testing.T) {
	opts := Options{
		SkipJournals: []string{"Skip Journal"},
		Cat1Terms:    []string{"embryo"},
		Cat2Terms:    []string{"in situ"},
	}
	r := newTestRouter(t, opts)

	tests := []struct {
		name        string
		doc         string
		journal     string
		want        Decision
		wantJournal bool
		wantCounts  Counts
	}{
		{
			name:        "all_categories",
			doc:         routedDoc,
			journal:     "Good Journal",
			want:        Yes,
			wantJournal: true,
			wantCounts:  Counts{Cat1Matches: 1, AgeMatches: 1, Cat2Matches: 1},
		},
		{
			name:        "missing_age",
			doc:         "We studied the embryo.\n\nFig 1. In situ hybridization in mouse.",
			journal:     "Good Journal",
			want:        No,
			wantJournal: true,
			wantCounts:  Counts{Cat1Matches: 1, Cat2Matches: 1},
		},
		{
			name:        "cat2_outside_figure_text",
			doc:         "We studied the embryo with in situ probes.\n\nFig 1. Sections at E14.5 in mouse.",
			journal:     "Good Journal",
			want:        No,
			wantJournal: true,
			wantCounts:  Counts{Cat1Matches: 1, AgeMatches: 1},
		},
		{
			name:        "skipped_journal_keeps_evidence",
			doc:         routedDoc,
			journal:     "Skip Journal",
			want:        No,
			wantJournal: false,
			wantCounts:  Counts{Cat1Matches: 1, AgeMatches: 1, Cat2Matches: 1},
		},
		{
			name:        "empty_document",
			doc:         "",
			journal:     "Good Journal",
			want:        No,
			wantJournal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Route(context.Background(), tt.doc, tt.journal)
			assert.Equal(t, tt.want, res.Decision)
			assert.Equal(t, tt.want == Yes, res.Routed())
			assert.Equal(t, tt.wantJournal, res.GoodJournal)
			assert.Equal(t, tt.wantCounts, res.Counts())
		})
	}
}

func TestResultUnions(t *testing.T) {
	r := newTestRouter(t, Options{
		Cat1Terms:   []string{"embryo"},
		Cat1Exclude: []string{"embryonic"},
		Cat2Terms:   []string{"in situ"},
		AgeExclude:  []string{"zebrafish"},
	})

	res := r.Route(context.Background(), "Embryonic embryo.\n\nFig 1. In situ at E14.5. Zebrafish at E9.", "j")

	assert.Equal(t, []string{TagCat1, "eday", TagCat2}, types(res.PosMatches()))
	assert.Equal(t, []string{TagCat1Exclude, TagAgeExclude}, types(res.ExcludeMatches()))
	assert.Equal(t, []string{TagCat1, TagCat1Exclude, "eday", TagAgeExclude, TagCat2}, types(res.AllMatches()))
}

func TestShortText(t *testing.T) {
	r := newTestRouter(t, Options{
		SkipJournals:  []string{"skip"},
		AgeExclude:    []string{"_hh##_"},
		MinTextLength: 10,
	})

	res := r.Route(context.Background(), "long enough, but no matches", "journal")
	assert.Equal(t, No, res.Decision)
	assert.False(t, res.ShortText)

	res = r.Route(context.Background(), "too short", "journal")
	assert.Equal(t, Yes, res.Decision)
	assert.True(t, res.ShortText)

	res = r.Route(context.Background(), "too short", "skip")
	assert.Equal(t, No, res.Decision)
}

func TestRouteIsRepeatable(t *testing.T) {
	r := newTestRouter(t, Options{
		Cat1Terms:  []string{"embryo"},
		Cat2Terms:  []string{"in situ"},
		AgeExclude: []string{"_hh##_"},
	})

	first := r.Route(context.Background(), routedDoc, "j")
	r.ResetMatches()
	second := r.Route(context.Background(), routedDoc, "j")

	assert.Equal(t, first, second)
}

func TestAgeReport(t *testing.T) {
	r := newTestRouter(t, Options{})

	r.Route(context.Background(), routedDoc, "j")
	r.Route(context.Background(), routedDoc, "j")

	report := r.AgeReport("Ages")
	assert.True(t, strings.HasPrefix(report, "Ages\n"))
	assert.Contains(t, report, "eday\t'__mouse_age'\t2\t")

	r.ResetMatches()
	assert.Equal(t, "Ages\n", r.AgeReport("Ages"))
}

func TestExplanation(t *testing.T) {
	r := newTestRouter(t, Options{
		SkipJournals: []string{"b journal", "a journal"},
		Cat1Terms:    []string{"Embryo", "animal"},
		AgeExclude:   []string{"_hh##_"},
	})

	exp := r.Explanation()
	assert.Contains(t, exp, "Category1 terms in full text:\n\t'animal'\n\t'embryo'\n")
	assert.Contains(t, exp, "Number of figure text words: 75\n")
	assert.Contains(t, exp, "Mouse age exclude regular expression:\n(?<excludeAge>\\bhh\\d\\d\\b)\n")
	assert.Contains(t, exp, BlockPattern)
	assert.Contains(t, exp, "Route=No for these journals:\n\t'a journal'\n\t'b journal'\n")
	assert.True(t, strings.HasSuffix(exp, strings.Repeat("-", 50)+"\n"))
}

func TestNewErrors(t *testing.T) {
	_, err := New(Options{FigureStrategy: "bogus"})
	assert.ErrorIs(t, err, figtext.ErrInvalidConfiguration)
	assert.ErrorIs(t, err, textmap.ErrConfiguration)

	_, err = New(Options{NumChars: -1})
	assert.ErrorIs(t, err, textmap.ErrConfiguration)
}

func TestEmptyVocabulary(t *testing.T) {
	r := newTestRouter(t, Options{AgeOrganismExclude: []string{}})

	res := r.Route(context.Background(), "\n\nfig 1. human embryos at E14.5", "j")
	assert.Equal(t, []string{"eday"}, types(res.AgeMatches))
	assert.Empty(t, res.AgeExcludes)
	assert.Empty(t, res.Cat1Matches)
}

func types(recs []textmap.MatchRecord) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}
