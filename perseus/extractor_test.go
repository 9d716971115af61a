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

package perseus

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tbconv/treebank"
)

const testDoc = `<?xml version="1.0" encoding="UTF-8"?>
<treebank version="1.5" xml:lang="lat" format="aldt">
  <sentence id="11" document_id="urn:cts:latinLit:phi0690.phi003" subdoc="1.1-1.2">
    <word id="1" form="Arma" lemma="arma" postag="n-p---na-" relation="OBJ" head="3"/>
    <word id="2" form="virumque" lemma="vir" postag="n-s---ma-" relation="OBJ_CO" head="0"/>
    <word id="3" form="cano" lemma="cano" postag="v1spia---" relation="PRED" head="0"/>
    <word id="4" insertion_id="0004e" artificial="elliptic" relation="PRED" lemma="sum1" form="[0]" head="0"/>
    <word id="5" form="," lemma="punc1" relation="AuxX" head="3"/>
  </sentence>
  <sentence id="12" document_id="urn:cts:latinLit:phi0690.phi003" subdoc="1.2">
  </sentence>
</treebank>`

type collected struct {
	meta  treebank.SentenceMeta
	words []treebank.WordRecord
}

func extractAll(t *testing.T, ex Extractor, doc string) []collected {
	ans := make([]collected, 0, 2)
	err := ex.Extract(strings.NewReader(doc), func(meta treebank.SentenceMeta, words []treebank.WordRecord) error {
		ans = append(ans, collected{meta: meta, words: words})
		return nil
	})
	assert.NoError(t, err)
	return ans
}

func TestExtractSentences(t *testing.T) {
	sents := extractAll(t, Extractor{}, testDoc)
	assert.Len(t, sents, 2)
	assert.Equal(t, treebank.SentenceMeta{
		ID:         "11",
		DocumentID: "urn:cts:latinLit:phi0690.phi003",
		Subdoc:     "1.1-1.2",
	}, sents[0].meta)
	assert.Equal(t, "12", sents[1].meta.ID)
	assert.Len(t, sents[1].words, 0)
}

func TestExtractSkipsArtificial(t *testing.T) {
	sents := extractAll(t, Extractor{}, testDoc)
	ids := make([]string, 0, 4)
	for _, w := range sents[0].words {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "5"}, ids)
}

func TestExtractWordAttrs(t *testing.T) {
	sents := extractAll(t, Extractor{}, testDoc)
	assert.Equal(t, treebank.WordRecord{
		ID:        "3",
		Form:      "cano",
		Lemma:     "cano",
		PosTag:    "v1spia---",
		Relation:  "PRED",
		Head:      "0",
		HasPosTag: true,
	}, sents[0].words[2])
	punct := sents[0].words[3]
	assert.False(t, punct.HasPosTag)
	assert.Equal(t, "", punct.PosTag)
}

func TestExtractEmptyPosTagIsMissing(t *testing.T) {
	doc := `<treebank><sentence id="1"><word id="1" form="et" lemma="et" postag="" relation="COORD" head="0"/></sentence></treebank>`
	sents := extractAll(t, Extractor{}, doc)
	assert.False(t, sents[0].words[0].HasPosTag)
}

func TestExtractIgnoresWordsOutsideSentence(t *testing.T) {
	doc := `<treebank><word id="9" form="x" lemma="x" postag="x--------"/><sentence id="1"></sentence></treebank>`
	sents := extractAll(t, Extractor{}, doc)
	assert.Len(t, sents, 1)
	assert.Len(t, sents[0].words, 0)
}

func TestExtractNormalizesUnicode(t *testing.T) {
	doc := "<treebank><sentence id=\"1\"><word id=\"1\" form=\"cre\u0301do\" lemma=\"cre\u0301do\" postag=\"v1spia---\" head=\"0\"/></sentence></treebank>"
	sents := extractAll(t, Extractor{NormalizeUnicode: true}, doc)
	assert.Equal(t, "cr\u00e9do", sents[0].words[0].Form)
	assert.Equal(t, "cr\u00e9do", sents[0].words[0].Lemma)
	sents = extractAll(t, Extractor{}, doc)
	assert.Equal(t, "cre\u0301do", sents[0].words[0].Form)
}

func TestExtractLatin1Document(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<treebank><sentence id=\"1\"><word id=\"1\" form=\"\xe6tas\" lemma=\"aetas\" postag=\"n-s---fn-\" head=\"0\"/></sentence></treebank>"
	sents := extractAll(t, Extractor{}, doc)
	assert.Equal(t, "ætas", sents[0].words[0].Form)
}

func TestExtractStopsOnHandlerError(t *testing.T) {
	stop := errors.New("stop")
	var calls int
	err := Extractor{}.Extract(strings.NewReader(testDoc), func(treebank.SentenceMeta, []treebank.WordRecord) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestExtractMalformedXML(t *testing.T) {
	err := Extractor{}.Extract(
		strings.NewReader(`<treebank><sentence id="1"><word id="1"</sentence>`),
		func(treebank.SentenceMeta, []treebank.WordRecord) error { return nil },
	)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
