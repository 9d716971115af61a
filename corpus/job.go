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
	"tbconv/jobs"
	"tbconv/treebank"
)

// JobResult describes an outcome of a conversion or import job
type JobResult struct {
	OutputPath   string              `json:"outputPath,omitempty"`
	Mode         treebank.ExportMode `json:"mode,omitempty"`
	NumSentences int                 `json:"numSentences"`
	NumTokens    int                 `json:"numTokens"`
}

// JobInfo collects information about a corpus conversion
// or database import job
type JobInfo struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	CorpusID string        `json:"corpusId"`
	Start    jobs.JSONTime `json:"start"`
	Update   jobs.JSONTime `json:"update"`
	Finished bool          `json:"finished"`
	Error    error         `json:"error,omitempty"`
	Result   JobResult     `json:"result"`
}

func (j JobInfo) GetID() string {
	return j.ID
}

func (j JobInfo) GetType() string {
	return j.Type
}

func (j JobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j JobInfo) GetCorpus() string {
	return j.CorpusID
}

func (j JobInfo) IsFinished() bool {
	return j.Finished
}

func (j JobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

// WithResult returns an updated (not finished) version of the job
func (j JobInfo) WithResult(res JobResult) JobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Result = res
	return j
}

func (j JobInfo) CompactVersion() jobs.JobInfoCompact {
	return jobs.JobInfoCompact{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		OK:       j.Error == nil,
	}
}

func (j JobInfo) FullInfo() any {
	return struct {
		ID       string        `json:"id"`
		Type     string        `json:"type"`
		CorpusID string        `json:"corpusId"`
		Start    jobs.JSONTime `json:"start"`
		Update   jobs.JSONTime `json:"update"`
		Finished bool          `json:"finished"`
		Error    string        `json:"error,omitempty"`
		OK       bool          `json:"ok"`
		Result   JobResult     `json:"result"`
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

func (j JobInfo) GetError() error {
	return j.Error
}

func (j JobInfo) WithError(err error) jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	j.Error = err
	return j
}
