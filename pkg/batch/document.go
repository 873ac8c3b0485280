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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 Document is one text to route
type Document struct {
	ID      string `json:"id"`
	Journal string `json:"journal"`
	Text    string `json:"text"`
}

// 📂 LoadDocuments expands doublestar patterns into documents, in path order.
// A .json file holds an array of documents. Any other file is a single
// document with its path as id. journal fills in missing journals.
func LoadDocuments(ctx context.Context, patterns []string, journal string) ([]Document, error) {
	logger := zerolog.Ctx(ctx)

	seen := map[string]bool{}
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	var docs []Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading document: %w", err)
		}

		if !strings.EqualFold(filepath.Ext(path), ".json") {
			docs = append(docs, Document{ID: path, Journal: journal, Text: string(data)})
			continue
		}

		var batch []Document
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&batch); err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
		for i := range batch {
			if batch[i].ID == "" {
				batch[i].ID = fmt.Sprintf("%s#%d", path, i)
			}
			if batch[i].Journal == "" {
				batch[i].Journal = journal
			}
		}
		docs = append(docs, batch...)
	}

	logger.Debug().Int("files", len(paths)).Int("documents", len(docs)).Msg("loaded documents")

	return docs, nil
}
