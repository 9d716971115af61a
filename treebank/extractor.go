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

import "io"

// WordRecord contains raw attributes of a single word
// as found in a source document.
type WordRecord struct {
	ID       string
	Form     string
	Lemma    string
	PosTag   string
	Relation string
	Head     string

	// HasPosTag is false if the word provides no (or an empty) postag
	HasPosTag bool
}

// SentenceMeta contains identification of a sentence
// within its source document.
type SentenceMeta struct {
	ID         string
	DocumentID string
	Subdoc     string
}

// SentenceHandler is called by a WordExtractor for each sentence
// in document order. Returning an error stops the extraction
// and the error is returned by Extract.
type SentenceHandler func(meta SentenceMeta, words []WordRecord) error

// WordExtractor reads words of a treebank document. Each supported
// source dialect provides its own implementation. Words marked
// as artificial are never passed to the handler.
type WordExtractor interface {
	Extract(src io.Reader, fn SentenceHandler) error
}
