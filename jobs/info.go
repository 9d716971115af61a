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

package jobs

// GeneralJobInfo describes a state of an enqueued, running
// or finished job. Implementations are immutable values, each
// state change produces a new value.
type GeneralJobInfo interface {
	GetID() string
	GetType() string
	GetStartDT() JSONTime
	GetCorpus() string
	IsFinished() bool
	GetError() error
	AsFinished() GeneralJobInfo
	WithError(err error) GeneralJobInfo
	CompactVersion() JobInfoCompact
	FullInfo() any
}

// JobInfoCompact is a reduced job information used
// in job lists.
type JobInfoCompact struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	CorpusID    string   `json:"corpusId"`
	Start       JSONTime `json:"start"`
	Update      JSONTime `json:"update"`
	Finished    bool     `json:"finished"`
	OK          bool     `json:"ok"`
}

func ErrorToString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
