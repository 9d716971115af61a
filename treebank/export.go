// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package treebank

import "strings"

type ExportMode string

const (
	// ExportModeDefault keeps the single-character PoS codes
	ExportModeDefault ExportMode = "default"

	// ExportModeUniversal replaces PoS codes with universal tags
	ExportModeUniversal ExportMode = "universal"
)

type tagMapper func(pos string) (string, error)

func identityTag(pos string) (string, error) {
	return pos, nil
}

var universalTags = map[string]string{
	"a": "ADJ",
	"c": "CCONJ",
	"d": "ADV",
	"e": "INTJ",
	"g": "PART",
	"i": "INTJ",
	"l": "DET",
	"m": "NUM",
	"n": "NOUN",
	"p": "PRON",
	"r": "ADP",
	"t": "VERB",
	"u": "PUNCT",
	"v": "VERB",
	"x": "X",
}

// UniversalTag translates a coarse PoS code into
// a universal part of speech tag.
func UniversalTag(pos string) (string, error) {
	v, ok := universalTags[pos]
	if !ok {
		return "", &TagMappingError{Pos: pos}
	}
	return v, nil
}

// ParseExportMode accepts mode names as used in configuration,
// URL arguments and command line flags. An empty value
// means the default mode.
func ParseExportMode(v string) (ExportMode, error) {
	switch strings.ToLower(v) {
	case "", string(ExportModeDefault):
		return ExportModeDefault, nil
	case string(ExportModeUniversal), "ud":
		return ExportModeUniversal, nil
	}
	return "", &UnsupportedModeError{Mode: v}
}

func (m ExportMode) Validate() error {
	_, err := m.tagMapper()
	return err
}

func (m ExportMode) tagMapper() (tagMapper, error) {
	switch m {
	case ExportModeDefault:
		return identityTag, nil
	case ExportModeUniversal:
		return UniversalTag, nil
	}
	return nil, &UnsupportedModeError{Mode: string(m)}
}
