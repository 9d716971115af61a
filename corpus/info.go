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
	"errors"
	"fmt"

	"github.com/czcorpus/cnc-gokit/fs"

	"tbconv/treebank"
)

var (
	ErrCorpusNotFound = errors.New("corpus not found")
)

// FileMappedValue describes a source file of a corpus
type FileMappedValue struct {
	Value        string  `json:"value"`
	Path         string  `json:"-"`
	FileExists   bool    `json:"exists"`
	LastModified *string `json:"lastModified"`
	Size         int64   `json:"size"`
}

// Info wraps information about a configured treebank
// and its parsed data
type Info struct {
	ID            string            `json:"id"`
	Description   string            `json:"description"`
	Language      string            `json:"language"`
	SourcePattern string            `json:"sourcePattern"`
	Sources       []FileMappedValue `json:"sources"`
	SizeFiles     int64             `json:"sizeFiles"`
	NumSentences  int               `json:"numSentences"`
	NumTokens     int               `json:"numTokens"`
}

// bindValueToPath creates a new FileMappedValue instance
// using 'value' argument. Then it tests whether the
// 'path' exists and if so then it sets related properties
// (FileExists, LastModified, Size) to proper values
func bindValueToPath(value, path string) (FileMappedValue, error) {
	ans := FileMappedValue{Value: value, Path: path}
	if !fs.PathExists(path) {
		return ans, nil
	}
	isFile, err := fs.IsFile(path)
	if err != nil {
		return ans, err
	}
	if isFile {
		mTime, err := fs.GetFileMtime(path)
		if err != nil {
			return ans, err
		}
		mTimeString := mTime.Format("2006-01-02T15:04:05-0700")
		size, err := fs.FileSize(path)
		if err != nil {
			return ans, err
		}
		ans.FileExists = true
		ans.LastModified = &mTimeString
		ans.Size = size
	}
	return ans, nil
}

// GetCorpusInfo provides information about a configured corpus
// and its parsed version. Source files are checked again so
// the info reflects also files changed after the corpus was parsed.
func GetCorpusInfo(setup CorpusSetup, corp *treebank.Corpus) (*Info, error) {
	ans := &Info{
		ID:            setup.ID,
		Description:   setup.Description,
		Language:      setup.Language,
		SourcePattern: setup.SourcePattern,
		Sources:       make([]FileMappedValue, 0, len(corp.Sources())),
		NumSentences:  corp.NumSentences(),
		NumTokens:     corp.NumTokens(),
	}
	for _, src := range corp.Sources() {
		value, err := bindValueToPath(src, src)
		if err != nil {
			return nil, fmt.Errorf("failed to get info about %s: %w", setup.ID, err)
		}
		ans.Sources = append(ans.Sources, value)
		ans.SizeFiles += value.Size
	}
	return ans, nil
}
