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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/figtriage/pkg/age"
	"github.com/walteh/figtriage/pkg/figtext"
	"github.com/walteh/figtriage/pkg/router"
	"github.com/walteh/figtriage/pkg/textmap"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.Errorf("%w: invalid config", textmap.ErrConfiguration)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📰 Journals lists journals that always route No
type Journals struct {
	Skip     []string `json:"skip" yaml:"skip"`
	SkipFile string   `json:"skip_file" yaml:"skip_file"`
}

// 🏷️ Category is an inclusion vocabulary and its exclusions
type Category struct {
	Terms       []string `json:"terms" yaml:"terms"`
	TermsFile   string   `json:"terms_file" yaml:"terms_file"`
	Exclude     []string `json:"exclude" yaml:"exclude"`
	ExcludeFile string   `json:"exclude_file" yaml:"exclude_file"`
}

// 🐭 Age configures the age exclusion vocabularies.
// A nil OrganismExclude keeps the router's default organism list, an empty one disables it.
type Age struct {
	Exclude         []string `json:"exclude" yaml:"exclude"`
	ExcludeFile     string   `json:"exclude_file" yaml:"exclude_file"`
	OrganismExclude []string `json:"organism_exclude" yaml:"organism_exclude"`
	Context         int      `json:"context" yaml:"context"`
	FixContext      int      `json:"fix_context" yaml:"fix_context"`
}

// 🖼️ FigureText selects how figure text is cut from a document
type FigureText struct {
	Strategy figtext.Strategy `json:"strategy" yaml:"strategy"`
	NumWords int              `json:"num_words" yaml:"num_words"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Journals      Journals   `json:"journals" yaml:"journals"`
	Category1     Category   `json:"category1" yaml:"category1"`
	Category2     Category   `json:"category2" yaml:"category2"`
	Age           Age        `json:"age" yaml:"age"`
	FigureText    FigureText `json:"figure_text" yaml:"figure_text"`
	MatchContext  int        `json:"match_context" yaml:"match_context"`
	MinTextLength int        `json:"min_text_length" yaml:"min_text_length"`

	location string
}

// 🆕 Default returns a validated config with no vocabularies
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(ctx, path, data)
	if err != nil {
		return nil, err
	}
	cfg.location = path

	return cfg, nil
}

// 📝 Parse picks a parser by filename, then parses and validates data
func Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	p := GetParser(filename)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", filename)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.MatchContext < 0 {
		return errors.Errorf("%w: match_context must not be negative", ErrInvalid)
	}
	if cfg.MinTextLength < 0 {
		return errors.Errorf("%w: min_text_length must not be negative", ErrInvalid)
	}
	if cfg.Age.Context < 0 || cfg.Age.FixContext < 0 {
		return errors.Errorf("%w: age context must not be negative", ErrInvalid)
	}

	if cfg.MatchContext == 0 {
		cfg.MatchContext = router.DefaultNumChars
	}
	if cfg.Age.Context == 0 {
		cfg.Age.Context = age.DefaultContext
	}
	if cfg.Age.FixContext == 0 {
		cfg.Age.FixContext = age.DefaultFixContext
	}
	if cfg.FigureText.Strategy == "" {
		cfg.FigureText.Strategy = router.DefaultFigureStrategy
	}
	if cfg.FigureText.NumWords == 0 {
		cfg.FigureText.NumWords = figtext.DefaultNumWords
	}

	if _, err := figtext.New(cfg.FigureText.Strategy, cfg.FigureText.NumWords); err != nil {
		return errors.Errorf("%w: figure_text: %s", ErrInvalid, err.Error())
	}

	return nil
}

// 📂 Dir is the directory term files are resolved against
func (cfg *Config) Dir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// 🔧 RouterOptions merges inline terms with term files into router options.
// Relative term file paths are resolved against baseDir.
func (cfg *Config) RouterOptions(baseDir string) (router.Options, error) {
	opts := router.Options{
		AgeOrganismExclude: cfg.Age.OrganismExclude,
		NumChars:           cfg.MatchContext,
		AgeContext:         cfg.Age.Context,
		FixContext:         cfg.Age.FixContext,
		FigureStrategy:     cfg.FigureText.Strategy,
		FigureWords:        cfg.FigureText.NumWords,
		MinTextLength:      cfg.MinTextLength,
	}

	lists := []struct {
		dst        *[]string
		inline     []string
		file       string
		keepSpaces bool
	}{
		{&opts.SkipJournals, cfg.Journals.Skip, cfg.Journals.SkipFile, false},
		{&opts.Cat1Terms, cfg.Category1.Terms, cfg.Category1.TermsFile, false},
		{&opts.Cat1Exclude, cfg.Category1.Exclude, cfg.Category1.ExcludeFile, false},
		{&opts.Cat2Terms, cfg.Category2.Terms, cfg.Category2.TermsFile, false},
		{&opts.Cat2Exclude, cfg.Category2.Exclude, cfg.Category2.ExcludeFile, false},
		{&opts.AgeExclude, cfg.Age.Exclude, cfg.Age.ExcludeFile, true},
	}

	for _, l := range lists {
		terms := append([]string(nil), l.inline...)
		if l.file != "" {
			path := l.file
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			fileTerms, err := ReadTerms(path, l.keepSpaces)
			if err != nil {
				return router.Options{}, errors.Errorf("reading terms: %w", err)
			}
			terms = append(terms, fileTerms...)
		}
		*l.dst = terms
	}

	return opts, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("cat1=%d+%s cat2=%d+%s figure_text=%s/%d",
		len(cfg.Category1.Terms), fileOrNone(cfg.Category1.TermsFile),
		len(cfg.Category2.Terms), fileOrNone(cfg.Category2.TermsFile),
		cfg.FigureText.Strategy, cfg.FigureText.NumWords)
}

func fileOrNone(f string) string {
	if f == "" {
		return "none"
	}
	return f
}
