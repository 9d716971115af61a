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
	"fmt"

	"tbconv/db/mysql"
	"tbconv/treebank"

	"github.com/rs/zerolog/log"
)

// ProgressFn is called after each stored chunk with the total
// number of stored tokens.
type ProgressFn func(numTokens int)

func insertChunk(ctx context.Context, tx *sql.Tx, prefix, corpusID string, rows []TokenRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	query, args := buildInsert(prefix, corpusID, rows)
	_, err := tx.ExecContext(ctx, query, args...)
	if err == nil {
		return len(rows), nil
	}
	log.Warn().Err(err).Str("corpusId", corpusID).Msg("failed to insert row chunk, trying one by one")
	var numOK int
	single := insertHead(prefix) + valuesTpl()
	for _, row := range rows {
		if ctx.Err() != nil {
			return numOK, ctx.Err()
		}
		if _, err := tx.ExecContext(ctx, single, row.args(corpusID)...); err != nil {
			log.Error().
				Err(err).
				Str("corpusId", corpusID).
				Any("values", row).
				Msg("failed to insert single row, ignoring")
			continue
		}
		numOK++
	}
	return numOK, nil
}

// ImportCorpus stores all the tokens of a corpus into the
// `<prefix>_token` table, replacing any previously imported rows
// of the same corpus. All the rows are prepared before the database
// is touched so a tag mapping error leaves the table intact.
// The table is created (if needed) outside of the transaction,
// the removal of old rows and all the inserts run in a single
// transaction which is rolled back on any error. The function
// returns the number of stored tokens.
func ImportCorpus(
	ctx context.Context,
	db *sql.DB,
	prefix string,
	corpusID string,
	corp *treebank.Corpus,
	chunkSize int,
	onProgress ProgressFn,
) (int, error) {
	if err := ValidateTablePrefix(prefix); err != nil {
		return 0, err
	}
	if chunkSize <= 0 {
		chunkSize = DfltChunkSize
	}
	rows, err := CorpusRows(corp)
	if err != nil {
		return 0, fmt.Errorf("failed to import corpus %s: %w", corpusID, err)
	}
	if err := createTable(ctx, db, prefix); err != nil {
		return 0, fmt.Errorf("failed to import corpus %s: %w", corpusID, err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to import corpus %s: %w", corpusID, err)
	}
	numStored, err := importInTx(ctx, tx, prefix, corpusID, rows, chunkSize, onProgress)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("corpusId", corpusID).Msg("failed to rollback import")
		}
		return 0, fmt.Errorf("failed to import corpus %s: %w", corpusID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to import corpus %s: %w", corpusID, err)
	}
	log.Info().
		Str("corpusId", corpusID).
		Int("numTokens", numStored).
		Msg("corpus imported into database")
	return numStored, nil
}

func importInTx(
	ctx context.Context,
	tx *sql.Tx,
	prefix string,
	corpusID string,
	rows []TokenRow,
	chunkSize int,
	onProgress ProgressFn,
) (int, error) {
	if err := deleteCorpusRows(ctx, tx, prefix, corpusID); err != nil {
		return 0, err
	}
	var numStored int
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		n, err := insertChunk(ctx, tx, prefix, corpusID, rows[start:end])
		if err != nil {
			return 0, err
		}
		numStored += n
		if onProgress != nil {
			onProgress(numStored)
		}
	}
	return numStored, nil
}

// ImportIntoDB opens an import-tuned connection specified by conf
// and stores the corpus using the configured table prefix.
func ImportIntoDB(
	ctx context.Context,
	conf mysql.DBConf,
	corpusID string,
	corp *treebank.Corpus,
	chunkSize int,
	onProgress ProgressFn,
) (int, error) {
	adapter, err := mysql.OpenImportTunedDB(conf)
	if err != nil {
		return 0, fmt.Errorf("failed to import corpus %s: %w", corpusID, err)
	}
	defer adapter.Close()
	return ImportCorpus(ctx, adapter.DB(), conf.TablePrefix, corpusID, corp, chunkSize, onProgress)
}
