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

package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/stats"
)

// 📊 printSummary renders the corpus counters as a table
func printSummary(snap stats.Snapshot) error {
	pterm.DefaultSection.Println("Summary")

	pct := func(n int) string {
		if snap.Documents == 0 {
			return "-"
		}
		return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(snap.Documents))
	}

	data := pterm.TableData{
		{"", "count", "share"},
		{"documents", strconv.Itoa(snap.Documents), pct(snap.Documents)},
		{"routed", strconv.Itoa(snap.Routed), pct(snap.Routed)},
		{"skipped journal", strconv.Itoa(snap.Skipped), pct(snap.Skipped)},
		{"short text", strconv.Itoa(snap.ShortText), pct(snap.ShortText)},
	}

	keys := make([]string, 0, len(snap.Matches))
	for k := range snap.Matches {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data = append(data, []string{k, strconv.Itoa(snap.Matches[k]), ""})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}
	return nil
}
