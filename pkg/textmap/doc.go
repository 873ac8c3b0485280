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

/*
Package textmap merges many named regular expression rules into one scanner.

	+---------+     +----------------------+     +-------------+
	|  Rules  | --> | (?<a>..)|(?<b>..)|.. | --> | MatchRecord |
	+---------+     +----------------------+     +-------------+

🎯 Purpose:
  - One left to right pass over the text, whatever the number of rules
  - First declared rule wins where rules overlap
  - Every match keeps the text around it for auditing

🔄 Flow:
 1. New validates names and compiles the combined alternation
 2. Transform (or Scan) finds matches and asks the winning rule for its replacement
 3. Matches, Groups and Report read back what Transform recorded

⚡ Notes:
  - Patterns use .NET syntax through github.com/dlclark/regexp2, so lookbehind
    and lookahead are available. Named groups are written (?<name>...).
  - Offsets in MatchRecord count runes, not bytes.
  - Context is always cut from the original text, never from replaced text.

🔍 Example:

	t, err := textmap.New([]textmap.Rule{
		{Name: "fig", Pattern: `\bfig(?:ure)?\b`, Replacement: textmap.Constant("FIG"), Context: 5},
	})
	if err != nil {
		return err
	}
	out, matches := t.Transform("see figure 2")
*/
package textmap
