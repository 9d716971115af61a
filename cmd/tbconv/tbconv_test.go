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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tbconv/feats"
	"tbconv/treebank"
)

const sampleXML = `<treebank>
 <sentence id="1">
  <word id="1" form="cano" lemma="cano1" postag="v1spia---" relation="PRED" head="0"/>
 </sentence>
</treebank>`

func TestRunExportToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xml"), []byte(sampleXML), 0644))
	out := filepath.Join(dir, "out", "a.conllu")
	err := runExport(exportArgs{
		pattern:    filepath.Join(dir, "*.xml"),
		mode:       "ud",
		outputPath: out,
		language:   "lat",
	})
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(
		t,
		"1\tcano\tcano1\tVERB\tVERB\tMood=Ind|Number=Sing|Person=1|Tense=Pres|Voice=Act\t0\tPRED\t_\t_",
		string(data),
	)
}

func TestRunExportErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, runExport(exportArgs{language: "lat"}))
	assert.ErrorIs(
		t,
		runExport(exportArgs{pattern: filepath.Join(dir, "*.xml"), language: "lat", mode: "foo"}),
		treebank.ErrUnsupportedMode,
	)
	assert.ErrorIs(
		t,
		runExport(exportArgs{pattern: filepath.Join(dir, "*.xml"), language: "xx"}),
		feats.ErrUnsupportedLanguage,
	)
	assert.ErrorIs(
		t,
		runExport(exportArgs{pattern: filepath.Join(dir, "*.xml"), language: "lat"}),
		treebank.ErrNoSourceFiles,
	)
}
