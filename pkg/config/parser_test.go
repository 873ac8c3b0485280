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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	parsers = nil

	mockParser := &struct {
		Parser
		canParse bool
	}{
		canParse: true,
	}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "figtriage.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "figtriage.yml", want: &YAMLParser{}},
		{name: "upper_case_yaml", filename: "FIGTRIAGE.YAML", want: &YAMLParser{}},
		{name: "hcl_file", filename: "figtriage.hcl", want: &HCLParser{}},
		{name: "json_file", filename: "vocab/figtriage.json", want: &JSONParser{}},
		{name: "unknown_extension", filename: "figtriage.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "all_blocks",
			config: `
journals {
  skip      = ["Skip Journal"]
  skip_file = "journals.txt"
}
category2 {
  terms   = ["in situ"]
  exclude = ["tunel"]
}
min_text_length = 100
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"Skip Journal"}, cfg.Journals.Skip)
				assert.Equal(t, "journals.txt", cfg.Journals.SkipFile)
				assert.Equal(t, []string{"in situ"}, cfg.Category2.Terms)
				assert.Equal(t, []string{"tunel"}, cfg.Category2.Exclude)
				assert.Empty(t, cfg.Category1.Terms)
				assert.Equal(t, 100, cfg.MinTextLength)
			},
		},
		{
			name: "invalid_hcl_syntax",
			config: `
category1 {
  terms = 
}`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_block_type",
			config: `
unknown_block {
  foo = "bar"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "wrong_attribute_type",
			config:      `match_context = "wide"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
