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
	"fmt"
	"sort"
	"strings"

	"github.com/walteh/figtriage/pkg/textmap"
)

// 📖 Explanation describes the active configuration for audits and debugging
func (r *Router) Explanation() string {
	var sb strings.Builder

	terms := func(title string, ts []string) {
		sb.WriteString(title + ":\n")
		sorted := append([]string(nil), ts...)
		sort.Strings(sorted)
		for _, t := range sorted {
			fmt.Fprintf(&sb, "\t'%s'\n", t)
		}
	}
	pattern := func(title, p string) {
		sb.WriteString(title + ":\n" + p + "\n")
	}
	blocking := func(title string) {
		pattern(title, BlockPattern)
		sb.WriteString("Mouse age exclude blocking logic for \". \":\n")
		sb.WriteString("\". \" not following \"fig\" nor \"et al\"\n")
	}

	terms("Category1 terms in full text", r.cat1.terms.terms)
	terms("Category1 Exclude terms", r.cat1.exclude.terms)

	fmt.Fprintf(&sb, "Figure text strategy: %s\n", r.figures.Strategy())
	fmt.Fprintf(&sb, "Number of figure text words: %d\n", r.figures.NumWords())

	terms("Category2 terms in figure text", r.cat2.terms.terms)
	terms("Category2 Exclude terms", r.cat2.exclude.terms)

	pattern("Mouse age regular expression - searched in figure text", r.ages.Pattern())
	fmt.Fprintf(&sb, "Num chars around age matches to look for age excludes: %d\n", r.opts.AgeContext)

	terms("Mouse Age Exclude terms", r.opts.AgeExclude)
	pattern("Mouse age exclude regular expression", patternOf(r.ageExclude))
	blocking("Mouse age exclude blocking regular expression")

	sb.WriteString("Treating organism terms differently from other ageExcludes\n")
	terms("Mouse Age Organism Exclude terms", r.opts.AgeOrganismExclude)
	pattern("Mouse age Organism exclude regular expression", patternOf(r.orgExclude))
	blocking("Mouse age Organism exclude blocking regular expression")

	if r.opts.MinTextLength > 0 {
		fmt.Fprintf(&sb, "Route=Yes for texts shorter than %d chars\n", r.opts.MinTextLength)
	}

	journals := make([]string, 0, len(r.skip))
	for j := range r.skip {
		journals = append(journals, j)
	}
	terms("Route=No for these journals", journals)

	sb.WriteString(strings.Repeat("-", 50) + "\n")
	return sb.String()
}

func patternOf(tr *textmap.Transformer) string {
	if tr == nil {
		return ""
	}
	return tr.Pattern()
}
