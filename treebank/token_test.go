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
	"testing"

	"github.com/stretchr/testify/assert"

	"tbconv/feats"
)

func TestNewTokenDecodesFeatures(t *testing.T) {
	// <word id="4" form="cano" lemma="cano" postag="v1spia---" relation="PRED" head="0"/>
	cano, err := NewToken(feats.Latin{}, TokenProps{
		Index:       "4",
		Form:        "cano",
		Lemma:       "cano",
		Parent:      "0",
		FeatureCode: "v1spia---",
		Rel:         "HEAD",
	})
	assert.NoError(t, err)
	assert.Equal(t, "v", cano.Pos)
	assert.Equal(t, feats.Features{
		"Person": "1",
		"Number": "Sing",
		"Tense":  "Pres",
		"Mood":   "Ind",
		"Voice":  "Act",
	}, cano.Features)
	assert.Equal(t, "HEAD", cano.Rel)
}

func TestNewTokenCodeOverridesPos(t *testing.T) {
	tk, err := NewToken(feats.Latin{}, TokenProps{Index: "1", FeatureCode: "n-s---mn-", Pos: "v"})
	assert.NoError(t, err)
	assert.Equal(t, "n", tk.Pos)
}

func TestNewTokenWithoutCode(t *testing.T) {
	tk, err := NewToken(nil, TokenProps{Index: "1", Form: "et", Lemma: "et", Pos: "c"})
	assert.NoError(t, err)
	assert.Equal(t, "c", tk.Pos)
	assert.Len(t, tk.Features, 0)
	assert.Equal(t, RootParent, tk.Parent)
	assert.Equal(t, DefaultRel, tk.Rel)
}

func TestNewTokenDecodeErrorPropagates(t *testing.T) {
	_, err := NewToken(feats.Latin{}, TokenProps{Index: "7", FeatureCode: "n-q---mn-"})
	var decErr *feats.DecodeError
	assert.True(t, errors.As(err, &decErr))
	assert.ErrorIs(t, err, feats.ErrInvalidCode)
}

func TestNewTokenMissingDecoder(t *testing.T) {
	_, err := NewToken(nil, TokenProps{Index: "7", FeatureCode: "n-s---mn-"})
	assert.Error(t, err)
}

func TestTokenEqual(t *testing.T) {
	mk := func() Token {
		tk, err := NewToken(feats.Latin{}, TokenProps{
			Index: "3", Form: "animis", Lemma: "animus", Parent: "7", FeatureCode: "n-p---md-", Rel: "D-POSS",
		})
		assert.NoError(t, err)
		return tk
	}
	tk1 := mk()
	tk2 := mk()
	assert.True(t, tk1.Equal(tk2))

	tk2.Rel = "ATR"
	assert.False(t, tk1.Equal(tk2))

	tk3 := mk()
	tk3.Features = feats.Features{"Case": "Dat", "Gender": "Masc", "Number": "Plur"}
	assert.True(t, tk1.Equal(tk3))
	tk3.Features = feats.Features{"Case": "Abl", "Gender": "Masc", "Number": "Plur"}
	assert.False(t, tk1.Equal(tk3))

	tk4 := mk()
	tk4.Parent = "0"
	assert.False(t, tk1.Equal(tk4))
}
