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

import (
	"errors"
	"fmt"
)

var (
	ErrMissingTag      = errors.New("missing morphological tag")
	ErrTagMapping      = errors.New("no universal tag for part of speech")
	ErrUnsupportedMode = errors.New("unsupported export mode")
	ErrNoSourceFiles   = errors.New("no source files found")
)

// MissingTagError is returned when a word has no postag
// and it cannot be recognized as a punctuation either.
type MissingTagError struct {
	Source     string
	SentenceID string
	WordID     string
	Form       string
}

func (err *MissingTagError) Error() string {
	return fmt.Sprintf(
		"%s: word '%s' (id %s) in sentence %s of %s",
		ErrMissingTag, err.Form, err.WordID, err.SentenceID, err.Source,
	)
}

func (err *MissingTagError) Unwrap() error {
	return ErrMissingTag
}

// TagMappingError is returned by the universal export
// for a coarse PoS outside of the mapping table.
type TagMappingError struct {
	Pos string
}

func (err *TagMappingError) Error() string {
	return fmt.Sprintf("%s '%s'", ErrTagMapping, err.Pos)
}

func (err *TagMappingError) Unwrap() error {
	return ErrTagMapping
}

type UnsupportedModeError struct {
	Mode string
}

func (err *UnsupportedModeError) Error() string {
	return fmt.Sprintf("%s '%s'", ErrUnsupportedMode, err.Mode)
}

func (err *UnsupportedModeError) Unwrap() error {
	return ErrUnsupportedMode
}
