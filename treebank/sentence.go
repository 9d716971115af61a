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
	"iter"
	"slices"
	"strings"
)

const (
	fieldSeparator = '\t'
	lineSeparator  = '\n'

	// emptySentence is rendered instead of an empty block
	// which would be confused with a sentence separator
	emptySentence = "_"

	unusedColumn = "_"
)

type textWriter interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

// Sentence is an ordered list of tokens. It is never
// modified once created.
type Sentence struct {
	tokens []Token
}

func NewSentence(tokens ...Token) Sentence {
	return Sentence{tokens: slices.Clone(tokens)}
}

func (s Sentence) Len() int {
	return len(s.tokens)
}

func (s Sentence) At(i int) Token {
	return s.tokens[i]
}

// All iterates over sentence tokens along with their positions.
func (s Sentence) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, tk := range s.tokens {
			if !yield(i, tk) {
				return
			}
		}
	}
}

func (s Sentence) Equal(other Sentence) bool {
	return slices.EqualFunc(s.tokens, other.tokens, func(t1, t2 Token) bool {
		return t1.Equal(t2)
	})
}

// String renders the sentence as a CONLL-U block
// with the original PoS values.
func (s Sentence) String() string {
	var ans strings.Builder
	// identity mapping never fails
	s.writeConllU(&ans, identityTag)
	return ans.String()
}

// writeConllU writes one line per token, lines are separated by
// a newline with no newline after the last one.
func (s Sentence) writeConllU(w textWriter, mapTag tagMapper) error {
	if len(s.tokens) == 0 {
		w.WriteString(emptySentence)
		return nil
	}
	for i, tk := range s.tokens {
		pos, err := mapTag(tk.Pos)
		if err != nil {
			return err
		}
		if i > 0 {
			w.WriteByte(lineSeparator)
		}
		for j, v := range [...]string{
			tk.Index,
			tk.Form,
			tk.Lemma,
			pos,
			pos,
			tk.Features.String(),
			tk.Parent,
			tk.Rel,
			unusedColumn,
			unusedColumn,
		} {
			if j > 0 {
				w.WriteByte(fieldSeparator)
			}
			w.WriteString(v)
		}
	}
	return nil
}
