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

const (
	codeLength = 9
	unsetMark  = '-'
	altUnset   = "_"
)

var (
	ErrInvalidCode = errors.New("invalid feature code")
)

// DecodeError describes a feature code which cannot be decoded.
// For a code of a wrong length, Position is -1.
type DecodeError struct {
	Code     string
	Position int
	Char     rune
	Feature  string
}

func (err *DecodeError) Error() string {
	if err.Position < 0 {
		return fmt.Sprintf(
			"%s '%s': expected %d characters, got %d",
			ErrInvalidCode, err.Code, codeLength, len([]rune(err.Code)),
		)
	}
	return fmt.Sprintf(
		"%s '%s': unknown %s value '%c' at position %d",
		ErrInvalidCode, err.Code, err.Feature, err.Char, err.Position,
	)
}

func (err *DecodeError) Unwrap() error {
	return ErrInvalidCode
}

// slot describes one position of the code. A nil values table
// means the character itself is the value.
type slot struct {
	name   string
	values map[rune]string
}

// latinSlots covers positions 1-8 of the Perseus (AGLDT) postag.
// Position 0 is always the coarse part of speech.
var latinSlots = [codeLength - 1]slot{
	{name: FeatPerson},
	{name: FeatNumber, values: map[rune]string{'s': "Sing", 'p': "Plur"}},
	{name: FeatTense, values: map[rune]string{
		'p': "Pres", 'f': "Fut", 'r': "Perf", 'l': "PQP", 'i': "Imp", 't': "FutPerf",
	}},
	{name: FeatMood, values: map[rune]string{
		'i': "Ind", 's': "Sub", 'm': "Imp", 'g': "Ger", 'p': "Part", 'u': "Sup", 'n': "Inf",
	}},
	{name: FeatVoice, values: map[rune]string{'a': "Act", 'p': "Pass", 'd': "Dep"}},
	{name: FeatGender, values: map[rune]string{'f': "Fem", 'm': "Masc", 'n': "Neut", 'c': "Com"}},
	{name: FeatCase, values: map[rune]string{
		'g': "Gen", 'd': "Dat", 'a': "Acc", 'v': "Voc", 'n': "Nom", 'b': "Abl", 'i': "Ins", 'l': "Loc",
	}},
	{name: FeatDegree, values: map[rune]string{'p': "Pos", 'c': "Comp", 's': "Sup"}},
}

// Latin decodes the 9-character postag of the Latin
// Dependency Treebank (e.g. "v1spia---").
type Latin struct{}

func (Latin) Decode(code string) (string, Features, error) {
	chars := []rune(strings.ReplaceAll(code, altUnset, string(unsetMark)))
	if len(chars) != codeLength {
		return "", nil, &DecodeError{Code: code, Position: -1}
	}
	ans := make(Features, 4)
	for i, s := range latinSlots {
		pos := i + 1
		c := chars[pos]
		if c == unsetMark {
			continue
		}
		if s.values == nil {
			ans[s.name] = string(c)
			continue
		}
		v, ok := s.values[c]
		if !ok {
			return "", nil, &DecodeError{Code: code, Position: pos, Char: c, Feature: s.name}
		}
		ans[s.name] = v
	}
	return string(chars[0]), ans, nil
}
