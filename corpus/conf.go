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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"tbconv/feats"
	"tbconv/perseus"
	"tbconv/treebank"
)

const (
	dfltLanguage = "lat"
)

// CorpusSetup is a configuration of a single treebank
// as loaded from a JSON file.
type CorpusSetup struct {
	ID          string `json:"id"`
	Description string `json:"description"`

	// SourcePattern is a glob pattern matching treebank XML files
	// (the `**` wildcard is supported). A relative pattern is resolved
	// against the directory of the configuration file.
	SourcePattern string `json:"sourcePattern"`

	// Language determines the decoder of morphological tags
	Language string `json:"language"`

	NormalizeUnicode bool `json:"normalizeUnicode"`
}

func (cs CorpusSetup) IsZero() bool {
	return cs.ID == ""
}

func (cs CorpusSetup) Validate() error {
	if !IsValidCorpusID(cs.ID) {
		return fmt.Errorf("invalid corpus ID '%s'", cs.ID)
	}
	if cs.SourcePattern == "" {
		return fmt.Errorf("missing sourcePattern for corpus %s", cs.ID)
	}
	if _, err := feats.ForLanguage(cs.Language); err != nil {
		return fmt.Errorf("invalid corpus %s: %w", cs.ID, err)
	}
	return nil
}

// CorpusOptions creates parsing options matching the
// corpus configuration.
func (cs CorpusSetup) CorpusOptions() (treebank.CorpusOptions, error) {
	dec, err := feats.ForLanguage(cs.Language)
	if err != nil {
		return treebank.CorpusOptions{}, err
	}
	return treebank.CorpusOptions{
		Extractor: perseus.Extractor{NormalizeUnicode: cs.NormalizeUnicode},
		Decoder:   dec,
	}, nil
}

// CorporaSetup defines application configuration related
// to treebanks
type CorporaSetup struct {
	ConfFilesDir string `json:"confFilesDir"`

	// OutputDir is where conversion jobs store their results
	OutputDir string `json:"outputDir"`

	corpora []CorpusSetup
}

func (cs *CorporaSetup) loadFile(confPath string) (CorpusSetup, error) {
	tmp, err := os.ReadFile(confPath)
	if err != nil {
		return CorpusSetup{}, err
	}
	var conf CorpusSetup
	if err := sonic.Unmarshal(tmp, &conf); err != nil {
		return CorpusSetup{}, err
	}
	if conf.Language == "" {
		log.Warn().
			Str("file", confPath).
			Str("value", dfltLanguage).
			Msg("corpus language not specified, using default")
		conf.Language = dfltLanguage
	}
	if conf.SourcePattern != "" && !filepath.IsAbs(conf.SourcePattern) {
		conf.SourcePattern = filepath.Join(filepath.Dir(confPath), conf.SourcePattern)
	}
	if err := conf.Validate(); err != nil {
		return CorpusSetup{}, err
	}
	return conf, nil
}

// Load reads all the *.json files in ConfFilesDir. Invalid files
// are skipped.
func (cs *CorporaSetup) Load() error {
	files, err := os.ReadDir(cs.ConfFilesDir)
	if err != nil {
		return fmt.Errorf("failed to load corpora configs: %w", err)
	}
	cs.corpora = make([]CorpusSetup, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		confPath := filepath.Join(cs.ConfFilesDir, f.Name())
		conf, err := cs.loadFile(confPath)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid corpus configuration file, skipping")
			continue
		}
		if !cs.Get(conf.ID).IsZero() {
			log.Warn().
				Str("file", confPath).
				Str("name", conf.ID).
				Msg("duplicate corpus configuration, skipping")
			continue
		}
		cs.corpora = append(cs.corpora, conf)
		log.Info().Str("name", conf.ID).Msg("loaded corpus configuration file")
	}
	slices.SortFunc(cs.corpora, func(c1, c2 CorpusSetup) int {
		return strings.Compare(c1.ID, c2.ID)
	})
	return nil
}

// Get returns a corpus configuration. For an unknown corpus,
// a zero value is returned.
func (cs *CorporaSetup) Get(name string) CorpusSetup {
	for _, v := range cs.corpora {
		if v.ID == name {
			return v
		}
	}
	return CorpusSetup{}
}

func (cs *CorporaSetup) GetAllCorpora() []CorpusSetup {
	return slices.Clone(cs.corpora)
}
