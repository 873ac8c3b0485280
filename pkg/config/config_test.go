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
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/figtriage/pkg/figtext"
	"github.com/walteh/figtriage/pkg/textmap"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "figtriage.yaml",
			config: `
journals:
  skip: ["Skip Journal"]
category1:
  terms: [embryo, mice]
  exclude: [embryonic stem]
category2:
  terms: [in situ]
age:
  exclude: ["_hh##_"]
  context: 100
figure_text:
  strategy: legends
match_context: 20
min_text_length: 500
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"Skip Journal"}, cfg.Journals.Skip, "skip journals should match")
				assert.Equal(t, []string{"embryo", "mice"}, cfg.Category1.Terms, "cat1 terms should match")
				assert.Equal(t, []string{"embryonic stem"}, cfg.Category1.Exclude, "cat1 excludes should match")
				assert.Equal(t, []string{"in situ"}, cfg.Category2.Terms, "cat2 terms should match")
				assert.Equal(t, []string{"_hh##_"}, cfg.Age.Exclude, "age excludes should match")
				assert.Equal(t, 100, cfg.Age.Context, "age context should match")
				assert.Equal(t, 10, cfg.Age.FixContext, "fix context should have default value")
				assert.Equal(t, figtext.Legends, cfg.FigureText.Strategy, "strategy should match")
				assert.Equal(t, 75, cfg.FigureText.NumWords, "num words should have default value")
				assert.Equal(t, 20, cfg.MatchContext, "match context should match")
				assert.Equal(t, 500, cfg.MinTextLength, "min text length should match")
				assert.Nil(t, cfg.Age.OrganismExclude, "organism excludes should be unset")
			},
		},
		{
			name:   "minimal_yaml",
			file:   "figtriage.yml",
			config: "category1:\n  terms: [embryo]\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30, cfg.MatchContext, "match context should have default value")
				assert.Equal(t, 210, cfg.Age.Context, "age context should have default value")
				assert.Equal(t, figtext.LegendsAndWords, cfg.FigureText.Strategy, "strategy should have default value")
			},
		},
		{
			name:   "empty_organism_list",
			file:   "figtriage.yaml",
			config: "age:\n  organism_exclude: []\n",
			check: func(t *testing.T, cfg *Config) {
				assert.NotNil(t, cfg.Age.OrganismExclude, "organism excludes should be set")
				assert.Empty(t, cfg.Age.OrganismExclude, "organism excludes should be empty")
			},
		},
		{
			name: "valid_json",
			file: "figtriage.json",
			config: `{
				"category2": {"terms": ["in situ", "immunohistochemistry"]},
				"figure_text": {"strategy": "legParagraphs", "num_words": 20}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"in situ", "immunohistochemistry"}, cfg.Category2.Terms, "cat2 terms should match")
				assert.Equal(t, figtext.LegendsAndParagraphs, cfg.FigureText.Strategy, "strategy should match")
				assert.Equal(t, 20, cfg.FigureText.NumWords, "num words should match")
			},
		},
		{
			name: "valid_hcl",
			file: "figtriage.hcl",
			config: `
match_context = 40

category1 {
  terms = ["embryo"]
  exclude_file = "cat1_exclude.txt"
}

age {
  exclude          = ["_hh##_", "hamburger hamilton"]
  organism_exclude = ["zebrafish"]
  fix_context      = 5
}

figure_text {
  strategy  = "legCloseWords"
  num_words = 50
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 40, cfg.MatchContext, "match context should match")
				assert.Equal(t, []string{"embryo"}, cfg.Category1.Terms, "cat1 terms should match")
				assert.Equal(t, "cat1_exclude.txt", cfg.Category1.ExcludeFile, "cat1 exclude file should match")
				assert.Equal(t, []string{"_hh##_", "hamburger hamilton"}, cfg.Age.Exclude, "age excludes should match")
				assert.Equal(t, []string{"zebrafish"}, cfg.Age.OrganismExclude, "organism excludes should match")
				assert.Equal(t, 5, cfg.Age.FixContext, "fix context should match")
				assert.Equal(t, 210, cfg.Age.Context, "age context should have default value")
				assert.Equal(t, 50, cfg.FigureText.NumWords, "num words should match")
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "figtriage.yaml",
			config:      "category3:\n  terms: [x]\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "figtriage.json",
			config:      `{"category3": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl",
			file:        "figtriage.hcl",
			config:      "category1 {",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_strategy",
			file:        "figtriage.yaml",
			config:      "figure_text:\n  strategy: captions\n",
			wantErr:     true,
			errContains: "unknown strategy",
		},
		{
			name:        "negative_context",
			file:        "figtriage.yaml",
			config:      "match_context: -1\n",
			wantErr:     true,
			errContains: "match_context must not be negative",
		},
		{
			name:        "unknown_extension",
			file:        "figtriage.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config should succeed")

			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "should not return error")
			tt.check(t, cfg)
			assert.Equal(t, filepath.Dir(path), cfg.Dir(), "dir should be the config directory")
		})
	}
}

func TestValidationErrors(t *testing.T) {
	cfg := &Config{FigureText: FigureText{Strategy: "captions"}}
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, textmap.ErrConfiguration)

	cfg = &Config{Age: Age{FixContext: -3}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHCLEnvironment(t *testing.T) {
	t.Setenv("FIGTRIAGE_CAT1", "cat1.txt")

	cfg, err := Parse(context.Background(), "figtriage.hcl", []byte(`
category1 {
  terms_file = env.FIGTRIAGE_CAT1
}
`))
	require.NoError(t, err)
	assert.Equal(t, "cat1.txt", cfg.Category1.TermsFile)
}

func TestRouterOptions(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("cat1.txt", "# topic terms\nembryo\n  mice  \n\n")
	write("journals.txt", "Skip Journal\n")
	write("age_exclude.txt", "_hh##_\n ts\n#comment\n")

	cfg := &Config{
		Journals:  Journals{SkipFile: "journals.txt"},
		Category1: Category{Terms: []string{"inline"}, TermsFile: "cat1.txt"},
		Category2: Category{Exclude: []string{"tunel"}},
		Age:       Age{ExcludeFile: filepath.Join(dir, "age_exclude.txt"), OrganismExclude: []string{}},
	}
	require.NoError(t, cfg.Validate())

	opts, err := cfg.RouterOptions(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Skip Journal"}, opts.SkipJournals)
	assert.Equal(t, []string{"inline", "embryo", "mice"}, opts.Cat1Terms)
	assert.Empty(t, opts.Cat1Exclude)
	assert.Equal(t, []string{"tunel"}, opts.Cat2Exclude)
	assert.Equal(t, []string{"_hh##_", " ts"}, opts.AgeExclude)
	assert.Equal(t, []string{}, opts.AgeOrganismExclude)
	assert.Equal(t, 30, opts.NumChars)
	assert.Equal(t, figtext.LegendsAndWords, opts.FigureStrategy)

	cfg.Category2.TermsFile = "missing.txt"
	_, err = cfg.RouterOptions(dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\n alpha \r\n\n  \nbeta gamma\n #not a comment\n"), 0644))

	tests := []struct {
		name       string
		keepSpaces bool
		want       []string
	}{
		{name: "stripped", want: []string{"alpha", "beta gamma", "#not a comment"}},
		{name: "keep_spaces", keepSpaces: true, want: []string{" alpha ", "beta gamma", " #not a comment"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTerms(path, tt.keepSpaces)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30, cfg.MatchContext)
	assert.Equal(t, ".", cfg.Dir())
	assert.Equal(t, "cat1=0+none cat2=0+none figure_text=legCloseWords/75", cfg.String())
}
