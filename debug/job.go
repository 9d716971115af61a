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

package debug

import (
	"tbconv/jobs"
)

type DummyJobResult struct {
	Payload string `json:"payload"`
}

// DummyJobInfo describes a job which does nothing but waits
// for a finish signal
type DummyJobInfo struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	CorpusID string          `json:"corpusId"`
	Start    jobs.JSONTime   `json:"start"`
	Update   jobs.JSONTime   `json:"update"`
	Finished bool            `json:"finished"`
	Error    error           `json:"error,omitempty"`
	Result   *DummyJobResult `json:"result"`
}

func (j DummyJobInfo) GetID() string {
	return j.ID
}

func (j DummyJobInfo) GetType() string {
	return j.Type
}

func (j DummyJobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j DummyJobInfo) GetCorpus() string {
	return j.CorpusID
}

func (j DummyJobInfo) IsFinished() bool {
	return j.Finished
}

func (j DummyJobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j DummyJobInfo) CompactVersion() jobs.JobInfoCompact {
	return jobs.JobInfoCompact{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		OK:       j.Error == nil && j.Result != nil,
	}
}

func (j DummyJobInfo) FullInfo() any {
	return struct {
		ID       string          `json:"id"`
		Type     string          `json:"type"`
		CorpusID string          `json:"corpusId"`
		Start    jobs.JSONTime   `json:"start"`
		Update   jobs.JSONTime   `json:"update"`
		Finished bool            `json:"finished"`
		Error    string          `json:"error,omitempty"`
		OK       bool            `json:"ok"`
		Result   *DummyJobResult `json:"result"`
	}{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		Error:    jobs.ErrorToString(j.Error),
		OK:       j.Error == nil,
		Result:   j.Result,
	}
}

func (j DummyJobInfo) GetError() error {
	return j.Error
}

func (j DummyJobInfo) WithError(err error) jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	j.Error = err
	return j
}
