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

package dbimport

import (
	"fmt"
	"strings"

	"tbconv/treebank"
)

const numTokenCols = 11

// TokenRow is a database representation of a single token
type TokenRow struct {
	SentIdx int
	TokPos  int
	TokenID string
	Form    string
	Lemma   string
	Pos     string
	UPos    string
	Feats   string
	Head    string
	Deprel  string
}

func (row TokenRow) args(corpusID string) []any {
	return []any{
		corpusID, row.SentIdx, row.TokPos, row.TokenID, row.Form,
		row.Lemma, row.Pos, row.UPos, row.Feats, row.Head, row.Deprel,
	}
}

// SentenceRows converts a sentence into table rows. Universal
// tags are always resolved so a PoS missing in the universal table
// produces a TagMappingError.
func SentenceRows(sentIdx int, sent treebank.Sentence) ([]TokenRow, error) {
	ans := make([]TokenRow, 0, sent.Len())
	for i, tok := range sent.All() {
		upos, err := treebank.UniversalTag(tok.Pos)
		if err != nil {
			return nil, fmt.Errorf("sentence %d, token %s: %w", sentIdx, tok.Index, err)
		}
		ans = append(ans, TokenRow{
			SentIdx: sentIdx,
			TokPos:  i,
			TokenID: tok.Index,
			Form:    tok.Form,
			Lemma:   tok.Lemma,
			Pos:     tok.Pos,
			UPos:    upos,
			Feats:   tok.Features.String(),
			Head:    tok.Parent,
			Deprel:  tok.Rel,
		})
	}
	return ans, nil
}

// CorpusRows converts all the sentences of a corpus into table rows.
// Any conversion error is reported before a single row is returned.
func CorpusRows(corp *treebank.Corpus) ([]TokenRow, error) {
	ans := make([]TokenRow, 0, corp.NumTokens())
	for i, sent := range corp.Sentences() {
		rows, err := SentenceRows(i, sent)
		if err != nil {
			return nil, err
		}
		ans = append(ans, rows...)
	}
	return ans, nil
}

func insertHead(prefix string) string {
	return fmt.Sprintf(
		"INSERT INTO %s (corpus_id, sent_idx, tok_pos, token_id, form, lemma, pos, upos, feats, head, deprel) VALUES ",
		tokenTableName(prefix),
	)
}

func valuesTpl() string {
	return "(" + strings.Repeat("?, ", numTokenCols-1) + "?)"
}

// buildInsert creates a multi-row INSERT statement along with its arguments
func buildInsert(prefix, corpusID string, rows []TokenRow) (string, []any) {
	var insTpl strings.Builder
	insTpl.WriteString(insertHead(prefix))
	tpl := valuesTpl()
	args := make([]any, 0, len(rows)*numTokenCols)
	for i, row := range rows {
		if i > 0 {
			insTpl.WriteString(", ")
		}
		insTpl.WriteString(tpl)
		args = append(args, row.args(corpusID)...)
	}
	return insTpl.String(), args
}
