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

// Package perseus reads treebanks encoded in the XML format
// of the Perseus Ancient Greek and Latin Dependency Treebank.
//
//	<sentence id="..." document_id="..." subdoc="...">
//	  <word id="1" form="..." lemma="..." postag="..." relation="..." head="..."/>
//	</sentence>
//
// Words with the `artificial` attribute (elliptic nodes added
// by annotators) are skipped.
package perseus

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"

	"tbconv/treebank"
)

const (
	elmSentence = "sentence"
	elmWord     = "word"

	attrID         = "id"
	attrDocumentID = "document_id"
	attrSubdoc     = "subdoc"
	attrForm       = "form"
	attrLemma      = "lemma"
	attrPosTag     = "postag"
	attrRelation   = "relation"
	attrHead       = "head"
	attrArtificial = "artificial"

	dfltSentenceCap = 30
)

var ErrMalformedDocument = errors.New("malformed Perseus XML document")

// Extractor implements treebank.WordExtractor. The document
// is read as a stream and each sentence is passed to the handler
// as soon as its closing tag is reached.
type Extractor struct {

	// NormalizeUnicode applies NFC normalization to word forms
	// and lemmas
	NormalizeUnicode bool
}

func (ex Extractor) normalize(v string) string {
	if ex.NormalizeUnicode {
		return norm.NFC.String(v)
	}
	return v
}

func (ex Extractor) wordRecord(attrs []xml.Attr) (treebank.WordRecord, bool) {
	var ans treebank.WordRecord
	for _, attr := range attrs {
		switch attr.Name.Local {
		case attrArtificial:
			return treebank.WordRecord{}, false
		case attrID:
			ans.ID = attr.Value
		case attrForm:
			ans.Form = ex.normalize(attr.Value)
		case attrLemma:
			ans.Lemma = ex.normalize(attr.Value)
		case attrPosTag:
			ans.PosTag = attr.Value
			ans.HasPosTag = attr.Value != ""
		case attrRelation:
			ans.Relation = attr.Value
		case attrHead:
			ans.Head = attr.Value
		}
	}
	return ans, true
}

func sentenceMeta(attrs []xml.Attr) treebank.SentenceMeta {
	var ans treebank.SentenceMeta
	for _, attr := range attrs {
		switch attr.Name.Local {
		case attrID:
			ans.ID = attr.Value
		case attrDocumentID:
			ans.DocumentID = attr.Value
		case attrSubdoc:
			ans.Subdoc = attr.Value
		}
	}
	return ans
}

// Extract reads the whole document and calls fn for each sentence.
// Words outside of a sentence element are ignored.
func (ex Extractor) Extract(src io.Reader, fn treebank.SentenceHandler) error {
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charset.NewReaderLabel
	var meta treebank.SentenceMeta
	var words []treebank.WordRecord
	var inSentence bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		switch elm := tok.(type) {
		case xml.StartElement:
			switch elm.Name.Local {
			case elmSentence:
				inSentence = true
				meta = sentenceMeta(elm.Attr)
				words = make([]treebank.WordRecord, 0, dfltSentenceCap)
			case elmWord:
				if !inSentence {
					continue
				}
				if w, ok := ex.wordRecord(elm.Attr); ok {
					words = append(words, w)
				}
			}
		case xml.EndElement:
			if elm.Name.Local == elmSentence && inSentence {
				inSentence = false
				if err := fn(meta, words); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
