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
	"github.com/walteh/figtriage/pkg/textmap"
)

// Decision is the routing outcome
type Decision string

const (
	Yes Decision = "Yes"
	No  Decision = "No"
)

// 📦 Result is the routing outcome of one document with all of its evidence
type Result struct {
	Journal     string
	GoodJournal bool
	ShortText   bool
	Decision    Decision

	Cat1Matches  []textmap.MatchRecord
	Cat1Excludes []textmap.MatchRecord
	AgeMatches   []textmap.MatchRecord
	AgeExcludes  []textmap.MatchRecord
	Cat2Matches  []textmap.MatchRecord
	Cat2Excludes []textmap.MatchRecord
}

// Counts is the size of each match list
type Counts struct {
	Cat1Matches  int
	Cat1Excludes int
	AgeMatches   int
	AgeExcludes  int
	Cat2Matches  int
	Cat2Excludes int
}

// Routed reports a positive decision
func (r *Result) Routed() bool {
	return r.Decision == Yes
}

// PosMatches returns the accepted cat1, age and cat2 matches
func (r *Result) PosMatches() []textmap.MatchRecord {
	return concat(r.Cat1Matches, r.AgeMatches, r.Cat2Matches)
}

// ExcludeMatches returns the excluded cat1, age and cat2 matches
func (r *Result) ExcludeMatches() []textmap.MatchRecord {
	return concat(r.Cat1Excludes, r.AgeExcludes, r.Cat2Excludes)
}

// AllMatches returns every list, each category's matches before its excludes
func (r *Result) AllMatches() []textmap.MatchRecord {
	return concat(r.Cat1Matches, r.Cat1Excludes, r.AgeMatches, r.AgeExcludes, r.Cat2Matches, r.Cat2Excludes)
}

// Counts returns the size of each list
func (r *Result) Counts() Counts {
	return Counts{
		Cat1Matches:  len(r.Cat1Matches),
		Cat1Excludes: len(r.Cat1Excludes),
		AgeMatches:   len(r.AgeMatches),
		AgeExcludes:  len(r.AgeExcludes),
		Cat2Matches:  len(r.Cat2Matches),
		Cat2Excludes: len(r.Cat2Excludes),
	}
}

func concat(lists ...[]textmap.MatchRecord) []textmap.MatchRecord {
	var out []textmap.MatchRecord
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
