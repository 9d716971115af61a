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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

const (
	DfltTablePrefix = "tb"
	DfltChunkSize   = 500
)

var (
	ErrInvalidTablePrefix = errors.New("invalid table prefix")

	tablePrefixRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

var tokenTable = `
CREATE TABLE IF NOT EXISTS %s_token (
    corpus_id VARCHAR(63) NOT NULL,
    sent_idx INT NOT NULL,
    tok_pos INT NOT NULL,
    token_id VARCHAR(20) NOT NULL,
    form VARCHAR(200) NOT NULL,
    lemma VARCHAR(200) NOT NULL,
    pos VARCHAR(10) NOT NULL,
    upos VARCHAR(10) NOT NULL,
    feats VARCHAR(255) NOT NULL,
    head VARCHAR(20) NOT NULL,
    deprel VARCHAR(50) NOT NULL,
    PRIMARY KEY (corpus_id, sent_idx, tok_pos),
    INDEX (corpus_id, lemma)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`

func ValidateTablePrefix(prefix string) error {
	if !tablePrefixRegexp.MatchString(prefix) {
		return fmt.Errorf("%w: '%s'", ErrInvalidTablePrefix, prefix)
	}
	return nil
}

func tokenTableName(prefix string) string {
	return prefix + "_token"
}

// createTable makes sure the token table exists. MySQL commits
// implicitly on DDL so this must run outside of any transaction.
func createTable(ctx context.Context, db *sql.DB, prefix string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(tokenTable, prefix)); err != nil {
		return fmt.Errorf("failed to create token table: %w", err)
	}
	return nil
}

// deleteCorpusRows removes all the previously imported rows of the corpus.
func deleteCorpusRows(ctx context.Context, tx *sql.Tx, prefix, corpusID string) error {
	_, err := tx.ExecContext(
		ctx,
		fmt.Sprintf("DELETE FROM %s WHERE corpus_id = ?", tokenTableName(prefix)),
		corpusID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove old corpus rows: %w", err)
	}
	return nil
}
