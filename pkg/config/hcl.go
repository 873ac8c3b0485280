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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/figtext"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
// Attributes may reference the environment as env.NAME.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

type hclCategory struct {
	Terms       []string `hcl:"terms,optional"`
	TermsFile   string   `hcl:"terms_file,optional"`
	Exclude     []string `hcl:"exclude,optional"`
	ExcludeFile string   `hcl:"exclude_file,optional"`
}

func (c *hclCategory) model() Category {
	if c == nil {
		return Category{}
	}
	return Category{
		Terms:       c.Terms,
		TermsFile:   c.TermsFile,
		Exclude:     c.Exclude,
		ExcludeFile: c.ExcludeFile,
	}
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	type hclConfig struct {
		Journals *struct {
			Skip     []string `hcl:"skip,optional"`
			SkipFile string   `hcl:"skip_file,optional"`
		} `hcl:"journals,block"`
		Category1 *hclCategory `hcl:"category1,block"`
		Category2 *hclCategory `hcl:"category2,block"`
		Age       *struct {
			Exclude         []string `hcl:"exclude,optional"`
			ExcludeFile     string   `hcl:"exclude_file,optional"`
			OrganismExclude []string `hcl:"organism_exclude,optional"`
			Context         int      `hcl:"context,optional"`
			FixContext      int      `hcl:"fix_context,optional"`
		} `hcl:"age,block"`
		FigureText *struct {
			Strategy string `hcl:"strategy,optional"`
			NumWords int    `hcl:"num_words,optional"`
		} `hcl:"figure_text,block"`
		MatchContext  int `hcl:"match_context,optional"`
		MinTextLength int `hcl:"min_text_length,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Category1:     hclCfg.Category1.model(),
		Category2:     hclCfg.Category2.model(),
		MatchContext:  hclCfg.MatchContext,
		MinTextLength: hclCfg.MinTextLength,
	}
	if j := hclCfg.Journals; j != nil {
		cfg.Journals = Journals{Skip: j.Skip, SkipFile: j.SkipFile}
	}
	if a := hclCfg.Age; a != nil {
		cfg.Age = Age{
			Exclude:         a.Exclude,
			ExcludeFile:     a.ExcludeFile,
			OrganismExclude: a.OrganismExclude,
			Context:         a.Context,
			FixContext:      a.FixContext,
		}
	}
	if f := hclCfg.FigureText; f != nil {
		cfg.FigureText = FigureText{Strategy: figtext.Strategy(f.Strategy), NumWords: f.NumWords}
	}

	return cfg, nil
}

func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !validIdent(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}

func validIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}
