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

// Package stats keeps corpus-wide routing counters on a private prometheus registry.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/router"
)

const namespace = "figtriage"

// reasons a document got its decision
const (
	ReasonJournal   = "journal"
	ReasonShortText = "short_text"
	ReasonEvidence  = "evidence"
)

// match kinds
const (
	KindMatch   = "match"
	KindExclude = "exclude"
)

// 📊 Collector counts documents and matches across a batch.
// It is safe for concurrent use.
type Collector struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	matches   *prometheus.CounterVec
}

// 🏭 New creates a collector with its own registry
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents routed, by decision and the reason for it.",
		}, []string{"decision", "reason"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Match records, by category and kind.",
		}, []string{"category", "kind"}),
	}
	c.registry.MustRegister(c.documents, c.matches)
	return c
}

// Registry exposes the underlying registry, for example to serve it over http
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// 📝 Observe records one routing result
func (c *Collector) Observe(res *router.Result) {
	reason := ReasonEvidence
	switch {
	case !res.GoodJournal:
		reason = ReasonJournal
	case res.ShortText:
		reason = ReasonShortText
	}
	c.documents.WithLabelValues(string(res.Decision), reason).Inc()

	counts := res.Counts()
	for _, m := range []struct {
		category string
		kind     string
		n        int
	}{
		{"cat1", KindMatch, counts.Cat1Matches},
		{"cat1", KindExclude, counts.Cat1Excludes},
		{"age", KindMatch, counts.AgeMatches},
		{"age", KindExclude, counts.AgeExcludes},
		{"cat2", KindMatch, counts.Cat2Matches},
		{"cat2", KindExclude, counts.Cat2Excludes},
	} {
		if m.n > 0 {
			c.matches.WithLabelValues(m.category, m.kind).Add(float64(m.n))
		}
	}
}

// 🧹 Reset zeroes every counter
func (c *Collector) Reset() {
	c.documents.Reset()
	c.matches.Reset()
}

// 📸 Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Documents int
	Routed    int
	Skipped   int // journal in the skip list
	ShortText int
	// keyed "category/kind", e.g. "age/exclude"
	Matches map[string]int
}

// 📸 Snapshot gathers the registry into plain counts
func (c *Collector) Snapshot() (Snapshot, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return Snapshot{}, errors.Errorf("gathering metrics: %w", err)
	}

	snap := Snapshot{Matches: map[string]int{}}
	for _, fam := range families {
		switch fam.GetName() {
		case namespace + "_documents_total":
			for _, m := range fam.GetMetric() {
				n := counterValue(m)
				snap.Documents += n
				labels := labelMap(m)
				if labels["decision"] == string(router.Yes) {
					snap.Routed += n
				}
				switch labels["reason"] {
				case ReasonJournal:
					snap.Skipped += n
				case ReasonShortText:
					snap.ShortText += n
				}
			}
		case namespace + "_matches_total":
			for _, m := range fam.GetMetric() {
				labels := labelMap(m)
				snap.Matches[labels["category"]+"/"+labels["kind"]] += counterValue(m)
			}
		}
	}

	return snap, nil
}

// String renders the snapshot on one line with matches in key order
func (s Snapshot) String() string {
	keys := make([]string, 0, len(s.Matches))
	for k := range s.Matches {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{
		fmt.Sprintf("documents=%d", s.Documents),
		fmt.Sprintf("routed=%d", s.Routed),
		fmt.Sprintf("skipped=%d", s.Skipped),
		fmt.Sprintf("short=%d", s.ShortText),
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.Matches[k]))
	}
	return strings.Join(parts, " ")
}

func counterValue(m *dto.Metric) int {
	return int(m.GetCounter().GetValue())
}

func labelMap(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
