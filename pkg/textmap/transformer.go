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
	"sort"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// 🎯 MatchRecord is one occurrence of a rule match.
// Start and End are rune offsets into the scanned text.
type MatchRecord struct {
	Type      string // rule name, or a category tag assigned later
	Start     int
	End       int
	MatchText string
	PreText   string
	PostText  string
	ReplText  string
}

// 🔑 Key identifies identical matches in the grouped view
type Key struct {
	MatchText string
	PostText  string
	PreText   string
	ReplText  string
}

// 📊 Group is a set of identical matches of one rule with their count
type Group struct {
	Rule string
	Key
	Count int
}

// ⚙️ Option configures a Transformer
type Option func(*options)

type options struct {
	flags regexp2.RegexOptions
}

// WithCaseSensitive turns off the default case-insensitive matching
func WithCaseSensitive() Option {
	return func(o *options) {
		o.flags &^= regexp2.IgnoreCase
	}
}

// 🔄 Transformer applies an ordered list of rules in a single pass.
// When several rules could match at the same position the first declared rule wins.
//
// Transform accumulates matches until ResetMatches is called. Scan does not touch
// any state and is safe to share between goroutines.
type Transformer struct {
	rules   []Rule
	byName  map[string]int
	pattern string
	re      *regexp2.Regexp

	mu      sync.Mutex
	matches []MatchRecord
	groups  map[string]map[Key]int
}

// 🏭 New compiles the rules into one transformer
func New(rules []Rule, opts ...Option) (*Transformer, error) {
	o := &options{flags: regexp2.IgnoreCase | regexp2.ExplicitCapture}
	for _, opt := range opts {
		opt(o)
	}

	t := &Transformer{
		rules:  append([]Rule(nil), rules...),
		byName: make(map[string]int, len(rules)),
		groups: map[string]map[Key]int{},
	}

	named := make([]string, 0, len(rules))
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, ok := t.byName[r.Name]; ok {
			return nil, errors.Errorf("%w %q", ErrDuplicateRuleName, r.Name)
		}
		t.byName[r.Name] = i

		// compile alone first so the error names the rule
		if _, err := regexp2.Compile(r.Pattern, o.flags); err != nil {
			return nil, errors.Errorf("%w: rule %q: %s", ErrPatternCompile, r.Name, err.Error())
		}
		named = append(named, "(?<"+r.Name+">"+r.Pattern+")")
	}

	t.pattern = strings.Join(named, "|")
	if len(rules) == 0 {
		return t, nil
	}

	re, err := regexp2.Compile(t.pattern, o.flags)
	if err != nil {
		return nil, errors.Errorf("%w: combined pattern: %s", ErrPatternCompile, err.Error())
	}
	t.re = re

	return t, nil
}

// 🏭 MustNew is like New but panics on a configuration error
func MustNew(rules []Rule, opts ...Option) *Transformer {
	t, err := New(rules, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// 📝 Transform rewrites text and records every match.
// The records are returned and also accumulated in the transformer.
func (t *Transformer) Transform(text string) (string, []MatchRecord) {
	out, recs := t.Scan(text)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range recs {
		t.matches = append(t.matches, m)
		g, ok := t.groups[m.Type]
		if !ok {
			g = map[Key]int{}
			t.groups[m.Type] = g
		}
		g[m.key()]++
	}

	return out, recs
}

// 🔍 Scan rewrites text and returns the matches without recording them
func (t *Transformer) Scan(text string) (string, []MatchRecord) {
	if t.re == nil || text == "" {
		return text, nil
	}

	runes := []rune(text)
	var (
		sb    strings.Builder
		recs  []MatchRecord
		last  int
		match *regexp2.Match
		err   error
	)

	match, err = t.re.FindRunesMatch(runes)
	for err == nil && match != nil {
		if rule, start, end, ok := t.matchingRule(match); ok && end > start {
			matched := string(runes[start:end])
			repl := rule.Replacement.Apply(matched)

			recs = append(recs, MatchRecord{
				Type:      rule.Name,
				Start:     start,
				End:       end,
				MatchText: matched,
				PreText:   string(runes[max(0, start-rule.Context):start]),
				PostText:  string(runes[end:min(len(runes), end+rule.Context)]),
				ReplText:  repl,
			})

			sb.WriteString(string(runes[last:start]))
			sb.WriteString(repl)
			last = end
		}
		match, err = t.re.FindNextMatch(match)
	}
	// err is only set when a match timeout is configured, which we never do

	if len(recs) == 0 {
		return text, nil
	}
	sb.WriteString(string(runes[last:]))
	return sb.String(), recs
}

// matchingRule finds the first rule whose group took part in the match
func (t *Transformer) matchingRule(m *regexp2.Match) (Rule, int, int, bool) {
	for _, r := range t.rules {
		g := m.GroupByName(r.Name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		return r, g.Index, g.Index + g.Length, true
	}
	return Rule{}, 0, 0, false
}

// 📋 Matches returns every match recorded since the last reset, in scan order
func (t *Transformer) Matches() []MatchRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]MatchRecord(nil), t.matches...)
}

// 📊 Groups returns the recorded matches grouped by rule and key, with counts.
// Rules are sorted by name and keys by match, post, pre and replacement text.
func (t *Transformer) Groups() []Group {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.groups))
	for name, g := range t.groups {
		if len(g) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var out []Group
	for _, name := range names {
		keys := make([]Key, 0, len(t.groups[name]))
		for k := range t.groups[name] {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
		for _, k := range keys {
			out = append(out, Group{Rule: name, Key: k, Count: t.groups[name][k]})
		}
	}
	return out
}

// 🧹 ResetMatches forgets every recorded match
func (t *Transformer) ResetMatches() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.matches = nil
	t.groups = map[string]map[Key]int{}
}

// Pattern returns the combined pattern
func (t *Transformer) Pattern() string {
	return t.pattern
}

// Rules returns the rules in priority order
func (t *Transformer) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Rule looks up a rule by name
func (t *Transformer) Rule(name string) (Rule, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Rule{}, false
	}
	return t.rules[i], true
}

func (m MatchRecord) key() Key {
	return Key{MatchText: m.MatchText, PostText: m.PostText, PreText: m.PreText, ReplText: m.ReplText}
}

func (k Key) less(o Key) bool {
	if k.MatchText != o.MatchText {
		return k.MatchText < o.MatchText
	}
	if k.PostText != o.PostText {
		return k.PostText < o.PostText
	}
	if k.PreText != o.PreText {
		return k.PreText < o.PreText
	}
	return k.ReplText < o.ReplText
}
