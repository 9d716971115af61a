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

package feats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Decoder turns a positional morphology code into a coarse part of speech
// and a set of named morphological features. Implementations are
// stateless so a single value can be shared.
type Decoder interface {
	Decode(code string) (pos string, features Features, err error)
}

// ForLanguage returns a decoder for the morphological scheme
// used by treebanks of the specified language.
func ForLanguage(lang string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "lat", "la", "latin":
		return Latin{}, nil
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedLanguage, lang)
}
