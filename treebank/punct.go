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

import "regexp"

const (
	// PunctuationLemma is the lemma the annotators use for punctuation
	PunctuationLemma = "punc1"

	// PunctuationCode is a feature code assigned to punctuation
	// words without a postag
	PunctuationCode = "u--------"
)

var (
	nonWordReg = regexp.MustCompile(`^[^\p{L}\p{M}\p{N}_]+$`)
)

// IsPunctuation tells whether a word is a punctuation based on its
// lemma or on the fact that the form contains no word characters
// (letters, combining marks, digits and underscore).
func IsPunctuation(form, lemma string) bool {
	return lemma == PunctuationLemma || nonWordReg.MatchString(form)
}

// resolveFeatureCode returns a feature code of a word. Words
// without a postag get PunctuationCode in case they are recognized
// as punctuation. Otherwise an empty string is returned and
// ok is false.
func resolveFeatureCode(word WordRecord) (code string, ok bool) {
	if word.HasPosTag {
		return word.PosTag, true
	}
	if IsPunctuation(word.Form, word.Lemma) {
		return PunctuationCode, true
	}
	return "", false
}
