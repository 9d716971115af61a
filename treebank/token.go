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
	"fmt"

	"tbconv/feats"
)

const (
	// RootParent is the parent of a token governed by no other token
	RootParent = "0"

	DefaultRel = "ROOT"
)

// TokenProps contains raw values a Token is created from.
// Pos is used only when FeatureCode is empty.
type TokenProps struct {
	Index       string
	Form        string
	Lemma       string
	Parent      string
	FeatureCode string
	Pos         string
	Rel         string
}

// Token is a single word or punctuation of a sentence.
type Token struct {
	Index    string
	Form     string
	Lemma    string
	Parent   string
	Pos      string
	Rel      string
	Features feats.Features
}

// Equal tests all the token attributes, the order
// of features does not matter.
func (tk Token) Equal(other Token) bool {
	return tk.Index == other.Index &&
		tk.Form == other.Form &&
		tk.Lemma == other.Lemma &&
		tk.Parent == other.Parent &&
		tk.Pos == other.Pos &&
		tk.Rel == other.Rel &&
		tk.Features.Equal(other.Features)
}

// NewToken creates a new token. In case props.FeatureCode is
// not empty, it is decoded by dec and the decoded PoS replaces
// any value in props.Pos. The decoder may be nil for tokens without
// a feature code.
func NewToken(dec feats.Decoder, props TokenProps) (Token, error) {
	tk := Token{
		Index:    props.Index,
		Form:     props.Form,
		Lemma:    props.Lemma,
		Parent:   props.Parent,
		Pos:      props.Pos,
		Rel:      props.Rel,
		Features: feats.Features{},
	}
	if tk.Parent == "" {
		tk.Parent = RootParent
	}
	if tk.Rel == "" {
		tk.Rel = DefaultRel
	}
	if props.FeatureCode == "" {
		return tk, nil
	}
	if dec == nil {
		return Token{}, fmt.Errorf("failed to create token %s: no feature decoder", props.Index)
	}
	pos, features, err := dec.Decode(props.FeatureCode)
	if err != nil {
		return Token{}, fmt.Errorf("failed to create token %s: %w", props.Index, err)
	}
	tk.Pos = pos
	tk.Features = features
	return tk, nil
}
