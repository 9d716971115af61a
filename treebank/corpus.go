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
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"tbconv/feats"
)

const (
	sentenceSeparator = "\n\n"
)

// CorpusOptions specifies how source documents are read
// and how their feature codes are decoded.
type CorpusOptions struct {
	Extractor WordExtractor
	Decoder   feats.Decoder
}

// Corpus is a list of sentences parsed from a set of files.
// The whole corpus is parsed when created and it is never
// modified afterwards.
type Corpus struct {
	sources   []string
	sentences []Sentence
}

// Sources returns paths of the files the corpus has been
// parsed from (in the order of parsing).
func (c *Corpus) Sources() []string {
	return slices.Clone(c.sources)
}

func (c *Corpus) Sentences() []Sentence {
	return slices.Clone(c.sentences)
}

func (c *Corpus) NumSentences() int {
	return len(c.sentences)
}

func (c *Corpus) NumTokens() int {
	var ans int
	for _, s := range c.sentences {
		ans += s.Len()
	}
	return ans
}

// String renders the corpus in the default CONLL-U mode.
func (c *Corpus) String() string {
	// default mode never fails
	ans, _ := c.Export(ExportModeDefault)
	return ans
}

// Export renders all the sentences in the CONLL-U format.
// Sentences are separated by a single empty line.
func (c *Corpus) Export(mode ExportMode) (string, error) {
	var ans strings.Builder
	if err := c.export(&ans, mode); err != nil {
		return "", err
	}
	return ans.String(), nil
}

// ExportTo is a streaming variant of Export. In case of an error,
// everything rendered up to the failing sentence is still flushed
// to w, so the writer contains a partial output. An unsupported
// mode is detected before anything is written.
func (c *Corpus) ExportTo(w io.Writer, mode ExportMode) error {
	bw := bufio.NewWriter(w)
	err := c.export(bw, mode)
	if flushErr := bw.Flush(); err == nil {
		err = flushErr
	}
	return err
}

func (c *Corpus) export(w textWriter, mode ExportMode) error {
	mapTag, err := mode.tagMapper()
	if err != nil {
		return err
	}
	for i, s := range c.sentences {
		if i > 0 {
			w.WriteString(sentenceSeparator)
		}
		if err := s.writeConllU(w, mapTag); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSources expands a glob pattern (including the `**`
// wildcard) into a sorted list of matching files.
func ResolveSources(pattern string) ([]string, error) {
	ans, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source files '%s': %w", pattern, err)
	}
	slices.Sort(ans)
	return ans, nil
}

// ParseDocument reads all the sentences of a single document.
// The source argument identifies the document in errors.
func ParseDocument(src io.Reader, source string, opts CorpusOptions) ([]Sentence, error) {
	ans := make([]Sentence, 0, 100)
	err := opts.Extractor.Extract(src, func(meta SentenceMeta, words []WordRecord) error {
		tokens := make([]Token, 0, len(words))
		for _, w := range words {
			code, ok := resolveFeatureCode(w)
			if !ok {
				return &MissingTagError{
					Source:     source,
					SentenceID: meta.ID,
					WordID:     w.ID,
					Form:       w.Form,
				}
			}
			tk, err := NewToken(opts.Decoder, TokenProps{
				Index:       w.ID,
				Form:        w.Form,
				Lemma:       w.Lemma,
				Parent:      w.Head,
				FeatureCode: code,
				Rel:         w.Relation,
			})
			if err != nil {
				return fmt.Errorf("sentence %s of %s: %w", meta.ID, source, err)
			}
			tokens = append(tokens, tk)
		}
		ans = append(ans, NewSentence(tokens...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ans, nil
}

// ParseFile reads all the sentences of a file.
func ParseFile(path string, opts CorpusOptions) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse treebank file: %w", err)
	}
	defer f.Close()
	return ParseDocument(f, path, opts)
}

// NewCorpus finds all the files matching the pattern and parses
// them one by one in the order given by ResolveSources. Any
// error stops the whole process.
func NewCorpus(pattern string, opts CorpusOptions) (*Corpus, error) {
	sources, err := ResolveSources(pattern)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrNoSourceFiles, pattern)
	}
	ans := &Corpus{
		sources:   sources,
		sentences: make([]Sentence, 0, 1000),
	}
	for _, path := range sources {
		sents, err := ParseFile(path, opts)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("file", path).
			Int("numSentences", len(sents)).
			Msg("parsed treebank file")
		ans.sentences = append(ans.sentences, sents...)
	}
	return ans, nil
}

// NewCorpusFromSentences creates a corpus out of already
// parsed sentences.
func NewCorpusFromSentences(sources []string, sentences []Sentence) *Corpus {
	return &Corpus{
		sources:   slices.Clone(sources),
		sentences: slices.Clone(sentences),
	}
}
