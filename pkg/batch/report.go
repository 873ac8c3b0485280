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

package batch

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/textmap"
)

const (
	routingSep = "|"
	matchesSep = "\t"
)

var routingHeader = []string{
	"ID",
	"journal",
	"routing",
	"goodJournal",
	"Cat1 matches",
	"Cat1 Excludes",
	"Age matches",
	"Age Excludes",
	"Cat2 matches",
	"Cat2 Excludes",
}

var matchesHeader = []string{
	"ID",
	"routing",
	"goodJournal",
	"Cat1 matches",
	"Age matches",
	"Cat2 matches",
	"matchType",
	"preText",
	"matchText",
	"postText",
}

// 📝 WriteRoutings writes one '|' delimited line of counts per routing, after a header
func WriteRoutings(w io.Writer, routings []Routing) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, routingSep, routingHeader)

	for _, rt := range routings {
		c := rt.Result.Counts()
		writeLine(bw, routingSep, []string{
			rt.Document.ID,
			rt.Document.Journal,
			string(rt.Result.Decision),
			strconv.FormatBool(rt.Result.GoodJournal),
			strconv.Itoa(c.Cat1Matches),
			strconv.Itoa(c.Cat1Excludes),
			strconv.Itoa(c.AgeMatches),
			strconv.Itoa(c.AgeExcludes),
			strconv.Itoa(c.Cat2Matches),
			strconv.Itoa(c.Cat2Excludes),
		})
	}

	if err := bw.Flush(); err != nil {
		return errors.Errorf("writing routings: %w", err)
	}
	return nil
}

// 📝 WriteMatches writes one tab delimited line per match record, after a header.
// Context and match text are quoted with newlines and tabs escaped.
func WriteMatches(w io.Writer, routings []Routing) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, matchesSep, matchesHeader)

	for _, rt := range routings {
		c := rt.Result.Counts()
		for _, m := range rt.Result.AllMatches() {
			writeLine(bw, matchesSep, []string{
				rt.Document.ID,
				string(rt.Result.Decision),
				strconv.FormatBool(rt.Result.GoodJournal),
				strconv.Itoa(c.Cat1Matches),
				strconv.Itoa(c.AgeMatches),
				strconv.Itoa(c.Cat2Matches),
				m.Type,
				textmap.Quote(m.PreText),
				textmap.Quote(m.MatchText),
				textmap.Quote(m.PostText),
			})
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Errorf("writing matches: %w", err)
	}
	return nil
}

func writeLine(w *bufio.Writer, sep string, fields []string) {
	// bufio.Writer keeps the first error for Flush
	_, _ = w.WriteString(strings.Join(fields, sep) + "\n")
}
