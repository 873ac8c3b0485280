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
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultReportTitle heads a report when no title is given
const DefaultReportTitle = "Text Transformation Report"

var reportEscaper = strings.NewReplacer("\n", `\n`, "\t", `\t`)

// 📝 Report renders the grouped matches as tab delimited lines:
//
//	rule 'replacement' count 'pre' 'match' 'post'
//
// Output is sorted, so two reports of the same corpus can be diffed.
func (t *Transformer) Report(title string) string {
	return FormatReport(title, t.Groups())
}

// FormatReport renders groups the way Report does
func FormatReport(title string, groups []Group) string {
	if title == "" {
		title = DefaultReportTitle
	}

	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, g := range groups {
		sb.WriteString(strings.Join([]string{
			g.Rule,
			Quote(g.ReplText),
			strconv.Itoa(g.Count),
			Quote(g.PreText),
			Quote(g.MatchText),
			Quote(g.PostText),
		}, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// 🔗 MergeGroups sums the counts of groups sharing a rule and key,
// for example the groups of several transformers run over parts of one corpus.
// The result is sorted like Groups.
func MergeGroups(lists ...[]Group) []Group {
	type id struct {
		rule string
		key  Key
	}
	counts := map[id]int{}
	var order []id
	for _, l := range lists {
		for _, g := range l {
			k := id{g.Rule, g.Key}
			if _, ok := counts[k]; !ok {
				order = append(order, k)
			}
			counts[k] += g.Count
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].rule != order[j].rule {
			return order[i].rule < order[j].rule
		}
		return order[i].key.less(order[j].key)
	})

	out := make([]Group, 0, len(order))
	for _, k := range order {
		out = append(out, Group{Rule: k.rule, Key: k.key, Count: counts[k]})
	}
	return out
}

// Quote single-quotes s with newlines and tabs escaped
func Quote(s string) string {
	return fmt.Sprintf("'%s'", reportEscaper.Replace(s))
}
