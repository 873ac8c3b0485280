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
	"bufio"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 ReadTerms reads a term file: one term per line, blank lines and
// lines starting with '#' skipped. Terms are trimmed unless keepSpaces is
// set, in which case only the line ending is dropped.
func ReadTerms(path string, keepSpaces bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening term file: %w", err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if keepSpaces {
			line = strings.TrimRight(line, "\r")
		} else {
			line = strings.TrimSpace(line)
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading term file %s: %w", path, err)
	}

	return terms, nil
}
