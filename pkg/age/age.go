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

// Package age holds the mouse developmental age rules.
//
// Order matters: where two rules can match the same text only the first applies.
// The fix rules come first and claim text that only looks like an age, such as
// "figure E1" or a letter-spaced "F I G U R E 1".
package age

import (
	"strings"

	"github.com/walteh/figtriage/pkg/textmap"
)

// 🏷️ Rule names
const (
	Fix2          = "fix2"
	Fix1          = "fix1"
	DPC           = "dpc"
	EDay          = "eday"
	TheilerStage  = "ts"
	EarlyEmbryo   = "ee"
	Developmental = "developmental"
	Fetus         = "fetus"
)

// Replacement is what every real age match turns into
const Replacement = "__mouse_age"

// ⚙️ Defaults
const (
	DefaultContext    = 210
	DefaultFixContext = 10
)

// numbers 0-29 with an optional .0 or .5
const dayNumber = `(?:\d|[12]\d)(?:[.][05])?`

// IsFix reports whether a rule only neutralises lookalike text
func IsFix(ruleName string) bool {
	return strings.HasPrefix(ruleName, "fix")
}

// 📋 Rules returns the age rules in priority order.
// context is kept around real age matches, fixContext around fix matches.
func Rules(context, fixContext int) []textmap.Rule {
	age := textmap.Constant(Replacement)

	return []textmap.Rule{
		{
			// figure|table En, where En is a figure number
			Name:        Fix2,
			Pattern:     `\b(?:(?:figures?|fig[.s]?|tables?) e\d)`,
			Replacement: textmap.Identity(),
			Context:     fixContext,
		},
		{
			// F I G U R E n would otherwise look like "E n"
			Name: Fix1,
			Pattern: `\b(?:` +
				textmap.SpacedOutRegex("figure") +
				`|` + textmap.SpacedOutRegex("table") +
				`)\b`,
			Replacement: textmap.Transform(squeeze),
			Context:     fixContext,
		},
		{
			Name: DPC,
			Pattern: `\b(?:` +
				// days post conceptus, no number
				`d(?:ays?)?(?:\s|-)post(?:\s|-)?` +
				`(?:concept(?:ions?|us)?|coit(?:us|um|al)?)` +
				// number then dpc
				`|` + dayNumber + `(?:\s|-)?dpc` +
				`|` + dayNumber + `(?:\s|-)?d[.]p[.]c` +
				// dpc then number
				`|d[.]?p[.]?c[.]?(?:\s|-)?` + dayNumber +
				// day number p.c.
				`|d(?:ays?)?(?:\s|-)` + dayNumber + `(?:\s|-)?p[.]?c` +
				`)\b`,
			Replacement: age,
			Context:     context,
		},
		{
			Name: EDay,
			Pattern: `\b(?:` +
				`embryonic\sdays?` +
				`|[eg]d\s?\d` +
				`|[eg]d\s?1[0-9]` +
				`|[eg]d\s?20` +
				`|day\s\d[.]5` +
				`|day\s1\d[.]5` +
				`|\d[.]5\sdays?` +
				`|1\d[.]5\sdays?` +
				`|\d\sday\s(?:(?:mouse|mice)\s)?embryos?` +
				`|1\d\sday\s(?:(?:mouse|mice)\s)?embryos?` +
				// E1-E3 usually mean something else. Decimals are .25 .75 .0 .5
				`|(?<![-])(?:` +
				`e\d[.][27]5` +
				`|e1\d[.][27]5` +
				`|e\s?\d[.][05]` +
				`|e\s?1\d[.][05]` +
				`|e\s?[4-9]` +
				`|e\s1\d` +
				`|e1[0123456789]` +
				`|e\s?20` +
				`)(?![.]\d|[%]|-bp|-ml|-mg)` +
				`)\b`,
			Replacement: age,
			Context:     context,
		},
		{
			Name: TheilerStage,
			Pattern: `\b(?:` +
				`theiler\sstages?` +
				`|TS(?:\s|-)?[7-9]` +
				`|TS(?:\s|-)?[12]\d` +
				`)\b`,
			Replacement: age,
			Context:     context,
		},
		{
			Name: EarlyEmbryo,
			Pattern: `\b(?:` +
				`blastocysts?|blastomeres?|headfold|autopods?` +
				`|embryonic\slysates?|embryo\slysates?` +
				`|(?:(?:early|mid|late)(?:\s|-))?streak|morulae?|somites?` +
				`|(?:limb(?:\s|-)?)buds?` +
				`|(?<!fin(?:\s|-))buds?` +
				// a cell count needs "stage" or "embryo" after it
				`|(?:(?:[1248]|one|two|four|eight)(?:\s|-)cells?(?:\s|-)` +
				`(?:stages?|(?:(?:(?:mouse|mice|cloned)(?:\s|-))?embryos?)))` +
				`)\b`,
			Replacement: age,
			Context:     context,
		},
		{
			Name: Developmental,
			Pattern: `\b(?:` +
				`zygotes?` +
				`|(?:mice|mouse)(?:\s|-)embryos?` +
				`|development(?:al)?(?:\s|-)(?:(?:mice|mouse)(?:\s|-))?stages?` +
				`|development(?:al)?(?:\s|-)(?:(?:mice|mouse)(?:\s|-))?ages?` +
				`|embryo(?:nic)?(?:\s|-)(?:(?:mice|mouse)(?:\s|-))?stages?` +
				`|embryo(?:nic)?(?:\s|-)(?:(?:mice|mouse)(?:\s|-))?ages?` +
				`|embryo(?:nic)?(?:\s|-)development` +
				`|(?:st)?ages?(?:\s|-)of(?:\s|-)?embryos?` +
				`|development(?:al)?(?:\s|-)time(?:\s|-)courses?` +
				`)\b`,
			Replacement: age,
			Context:     context,
		},
		{
			Name: Fetus,
			Pattern: `\b(?:` +
				`fetus|fetuses` +
				`|(?:fetal|foetal)(?!\s+(?:bovine|calf)\s+serum)` +
				`)\b`,
			Replacement: age,
			Context:     context,
		},
	}
}

// 🏭 NewTransformer builds the age transformer
func NewTransformer(context, fixContext int) (*textmap.Transformer, error) {
	return textmap.New(Rules(context, fixContext))
}

func squeeze(s string) string {
	return strings.Join(strings.Fields(s), "")
}
