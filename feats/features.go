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

package feats

import (
	"maps"
	"slices"
	"strings"
)

const (
	FeatPerson = "Person"
	FeatNumber = "Number"
	FeatTense  = "Tense"
	FeatMood   = "Mood"
	FeatVoice  = "Voice"
	FeatGender = "Gender"
	FeatCase   = "Case"
	FeatDegree = "Degree"

	featSeparator  = "|"
	valueSeparator = "="
)

// Features maps a feature name to its value. Absent features
// are not stored at all.
type Features map[string]string

// Names returns feature names sorted in ascending order.
func (f Features) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

func (f Features) Equal(other Features) bool {
	return maps.Equal(f, other)
}

// String renders features as a CONLL-U FEATS value
// (Key1=Val1|Key2=Val2 with keys sorted). An empty set renders
// as an empty string.
func (f Features) String() string {
	var ans strings.Builder
	for i, k := range f.Names() {
		if i > 0 {
			ans.WriteString(featSeparator)
		}
		ans.WriteString(k)
		ans.WriteString(valueSeparator)
		ans.WriteString(f[k])
	}
	return ans.String()
}
