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
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"

	"tbconv/treebank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingConnector is a database driver writing down all
// the executed statements instead of running them
type recordingConnector struct {
	mu     sync.Mutex
	stmts  []string
	failOn string
}

func (rc *recordingConnector) record(s string) {
	rc.mu.Lock()
	rc.stmts = append(rc.stmts, s)
	rc.mu.Unlock()
}

func (rc *recordingConnector) statements() []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	ans := make([]string, len(rc.stmts))
	for i, s := range rc.stmts {
		ans[i] = strings.Fields(s)[0]
	}
	return ans
}

func (rc *recordingConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return &recordingConn{rc: rc}, nil
}

func (rc *recordingConnector) Driver() driver.Driver {
	return nil
}

type recordingConn struct {
	rc *recordingConnector
}

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements not supported")
}

func (c *recordingConn) Close() error {
	return nil
}

func (c *recordingConn) Begin() (driver.Tx, error) {
	c.rc.record("BEGIN")
	return recordingTx{rc: c.rc}, nil
}

func (c *recordingConn) ExecContext(
	ctx context.Context, query string, args []driver.NamedValue,
) (driver.Result, error) {
	c.rc.record(strings.TrimSpace(query))
	if c.rc.failOn != "" && strings.HasPrefix(strings.TrimSpace(query), c.rc.failOn) {
		return nil, errors.New("statement failed")
	}
	return driver.RowsAffected(1), nil
}

type recordingTx struct {
	rc *recordingConnector
}

func (tx recordingTx) Commit() error {
	tx.rc.record("COMMIT")
	return nil
}

func (tx recordingTx) Rollback() error {
	tx.rc.record("ROLLBACK")
	return nil
}

func testCorpus(t *testing.T, lastCode string) *treebank.Corpus {
	return treebank.NewCorpusFromSentences(
		[]string{"test.xml"},
		[]treebank.Sentence{
			treebank.NewSentence(
				mkToken(t, "1", "arma", "arma1", "n-p---na-", "OBJ", "2"),
				mkToken(t, "2", "cano", "cano1", "v1spia---", "PRED", "0"),
				mkToken(t, "3", ".", "punc1", "u--------", "AuxK", "0"),
			),
			treebank.NewSentence(
				mkToken(t, "1", "Troiae", "Troia1", lastCode, "ATR", "0"),
			),
		},
	)
}

func TestImportCorpusCommits(t *testing.T) {
	rc := &recordingConnector{}
	db := sql.OpenDB(rc)
	defer db.Close()
	var progress []int
	n, err := ImportCorpus(
		context.Background(), db, "tb", "ldt", testCorpus(t, "n-s---fg-"), 2,
		func(numTokens int) { progress = append(progress, numTokens) },
	)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []int{2, 4}, progress)
	assert.Equal(
		t,
		[]string{"CREATE", "BEGIN", "DELETE", "INSERT", "INSERT", "COMMIT"},
		rc.statements(),
	)
}

func TestImportCorpusTagMappingTouchesNothing(t *testing.T) {
	rc := &recordingConnector{}
	db := sql.OpenDB(rc)
	defer db.Close()
	_, err := ImportCorpus(
		context.Background(), db, "tb", "ldt", testCorpus(t, "z--------"), 2, nil)
	assert.ErrorIs(t, err, treebank.ErrTagMapping)
	assert.Empty(t, rc.statements())
}

func TestImportCorpusRollsBack(t *testing.T) {
	rc := &recordingConnector{failOn: "DELETE"}
	db := sql.OpenDB(rc)
	defer db.Close()
	_, err := ImportCorpus(
		context.Background(), db, "tb", "ldt", testCorpus(t, "n-s---fg-"), 2, nil)
	assert.Error(t, err)
	assert.Equal(t, []string{"CREATE", "BEGIN", "DELETE", "ROLLBACK"}, rc.statements())
}

func TestCorpusRows(t *testing.T) {
	rows, err := CorpusRows(testCorpus(t, "n-s---fg-"))
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, 1, rows[3].SentIdx)
	assert.Equal(t, 0, rows[3].TokPos)
	assert.Equal(t, "NOUN", rows[3].UPos)
}
