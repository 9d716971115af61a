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
	"path/filepath"
	"regexp"

	"tbconv/treebank"
)

var (
	corpusIDRegexp = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.\-]*$`)
)

// IsValidCorpusID tests whether the identifier can be safely
// used as a part of a file name.
func IsValidCorpusID(corpusID string) bool {
	return corpusIDRegexp.MatchString(corpusID)
}

// GenExportFilename returns a path of a CONLL-U file
// produced by a conversion job (e.g. ldt.universal.conllu)
func GenExportFilename(outputDir, corpusID string, mode treebank.ExportMode) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s.conllu", corpusID, mode))
}
