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

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const armaXML = `<?xml version="1.0" encoding="UTF-8"?>
<treebank version="1.5" xml:lang="lat" format="aldt">
 <sentence id="1" document_id="urn:cts:latinLit:phi0690.phi003" subdoc="1.1">
  <word id="1" form="Arma" lemma="arma1" postag="n-p---na-" relation="OBJ" head="2"/>
  <word id="2" form="cano" lemma="cano1" postag="v1spia---" relation="PRED" head="0"/>
  <word id="3" form="." lemma="punc1" postag="u--------" relation="AuxK" head="0"/>
 </sentence>
</treebank>`

const armaConllU = "1\tArma\tarma1\tn\tn\tCase=Acc|Gender=Neut|Number=Plur\t2\tOBJ\t_\t_\n" +
	"2\tcano\tcano1\tv\tv\tMood=Ind|Number=Sing|Person=1|Tense=Pres|Voice=Act\t0\tPRED\t_\t_\n" +
	"3\t.\tpunc1\tu\tu\t\t0\tAuxK\t_\t_"

const armaConllUUniversal = "1\tArma\tarma1\tNOUN\tNOUN\tCase=Acc|Gender=Neut|Number=Plur\t2\tOBJ\t_\t_\n" +
	"2\tcano\tcano1\tVERB\tVERB\tMood=Ind|Number=Sing|Person=1|Tense=Pres|Voice=Act\t0\tPRED\t_\t_\n" +
	"3\t.\tpunc1\tPUNCT\tPUNCT\t\t0\tAuxK\t_\t_"

func writeTestFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// prepareCorpora creates a configuration directory with
// a single valid corpus "arma" and returns a loaded setup
func prepareCorpora(t *testing.T) *CorporaSetup {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "conf", "data", "aeneid.xml"), armaXML)
	writeTestFile(
		t,
		filepath.Join(root, "conf", "arma.json"),
		`{"id": "arma", "description": "Aeneid sample", "sourcePattern": "data/*.xml", "language": "lat"}`,
	)
	setup := &CorporaSetup{
		ConfFilesDir: filepath.Join(root, "conf"),
		OutputDir:    filepath.Join(root, "out"),
	}
	require.NoError(t, setup.Load())
	return setup
}
