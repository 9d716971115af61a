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

import (
	"time"
)

// testJobInfo is a minimal job used in tests
type testJobInfo struct {
	ID       string
	Type     string
	CorpusID string
	Start    JSONTime
	Update   JSONTime
	Finished bool
	Error    error
}

func (j testJobInfo) GetID() string {
	return j.ID
}

func (j testJobInfo) GetType() string {
	return j.Type
}

func (j testJobInfo) GetStartDT() JSONTime {
	return j.Start
}

func (j testJobInfo) GetCorpus() string {
	return j.CorpusID
}

func (j testJobInfo) IsFinished() bool {
	return j.Finished
}

func (j testJobInfo) GetError() error {
	return j.Error
}

func (j testJobInfo) AsFinished() GeneralJobInfo {
	j.Update = CurrentDatetime()
	j.Finished = true
	return j
}

func (j testJobInfo) WithError(err error) GeneralJobInfo {
	j.Update = JSONTime(time.Now())
	j.Finished = true
	j.Error = err
	return j
}

func (j testJobInfo) CompactVersion() JobInfoCompact {
	return JobInfoCompact{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		OK:       j.Error == nil,
	}
}

func (j testJobInfo) FullInfo() any {
	return j
}
