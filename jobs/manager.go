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
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	dfltUpdateChanSize = 10
)

var (
	ErrorJobNotFound    = errors.New("job not found")
	ErrorJobNotFinished = errors.New("job not finished")
)

type Conf struct {
	// MaxNumFinishedJobs limits the number of finished jobs
	// kept in memory. Older jobs are removed first.
	MaxNumFinishedJobs int `json:"maxNumFinishedJobs"`
}

// Manager runs enqueued jobs one by one in a single
// worker goroutine and keeps track of their states.
type Manager struct {
	conf   *Conf
	queue  JobQueue
	jobs   map[string]GeneralJobInfo
	mu     sync.Mutex
	wakeUp chan struct{}
	lang   string
}

func (m *Manager) setJobInfo(info GeneralJobInfo) {
	m.mu.Lock()
	m.jobs[info.GetID()] = info
	m.mu.Unlock()
}

func (m *Manager) pruneFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	finished := make([]GeneralJobInfo, 0, len(m.jobs))
	for _, v := range m.jobs {
		if v.IsFinished() {
			finished = append(finished, v)
		}
	}
	if len(finished) <= m.conf.MaxNumFinishedJobs {
		return
	}
	slices.SortFunc(finished, func(j1, j2 GeneralJobInfo) int {
		if j1.GetStartDT().Before(j2.GetStartDT()) {
			return -1
		}
		if j2.GetStartDT().Before(j1.GetStartDT()) {
			return 1
		}
		return 0
	})
	for _, v := range finished[:len(finished)-m.conf.MaxNumFinishedJobs] {
		delete(m.jobs, v.GetID())
	}
}

func (m *Manager) runNext(ctx context.Context) bool {
	m.mu.Lock()
	fn, initialState, err := m.queue.Dequeue()
	m.mu.Unlock()
	if err == ErrorEmptyQueue {
		return false
	}
	log.Info().
		Str("jobId", initialState.GetID()).
		Str("type", initialState.GetType()).
		Str("corpusId", initialState.GetCorpus()).
		Msg("starting job")
	updates := make(chan GeneralJobInfo, dfltUpdateChanSize)
	go (*fn)(updates)
	last := initialState
	for upd := range updates {
		m.setJobInfo(upd)
		last = upd
	}
	if !last.IsFinished() {
		m.setJobInfo(last.AsFinished())
	}
	if last.GetError() != nil {
		log.Error().
			Err(last.GetError()).
			Str("jobId", last.GetID()).
			Msg("job finished with error")

	} else {
		log.Info().Str("jobId", last.GetID()).Msg("job finished")
	}
	m.pruneFinished()
	return ctx.Err() == nil
}

func (m *Manager) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping job manager")
			return
		case <-m.wakeUp:
			for m.runNext(ctx) {
			}
		}
	}
}

// EnqueueJob adds a new job to the queue. The initial state
// is immediately available via GetJob.
func (m *Manager) EnqueueJob(fn *QueuedFunc, initialState GeneralJobInfo) {
	m.mu.Lock()
	m.queue.Enqueue(fn, initialState)
	m.jobs[initialState.GetID()] = initialState
	m.mu.Unlock()
	select {
	case m.wakeUp <- struct{}{}:
	default:
	}
}

// EnqueueUniqueJob adds a new job to the queue unless there is
// an unfinished job of the same type and corpus. In such case,
// the ID of the unfinished job is returned along with false.
func (m *Manager) EnqueueUniqueJob(fn *QueuedFunc, initialState GeneralJobInfo) (string, bool) {
	m.mu.Lock()
	if prevID, ok := m.lastUnfinishedJobOfType(
		initialState.GetCorpus(), initialState.GetType()); ok {
		m.mu.Unlock()
		return prevID, false
	}
	m.queue.Enqueue(fn, initialState)
	m.jobs[initialState.GetID()] = initialState
	m.mu.Unlock()
	select {
	case m.wakeUp <- struct{}{}:
	default:
	}
	return "", true
}

func (m *Manager) GetJob(jobID string) (GeneralJobInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.jobs[jobID]
	return v, ok
}

// QueuePosition returns a zero-based position of a waiting job
// or -1 if the job is not waiting.
func (m *Manager) QueuePosition(jobID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Position(jobID)
}

// LastUnfinishedJobOfType returns ID of an unfinished job of a specified
// type and corpus (if any).
func (m *Manager) LastUnfinishedJobOfType(corpusID, jobType string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUnfinishedJobOfType(corpusID, jobType)
}

func (m *Manager) lastUnfinishedJobOfType(corpusID, jobType string) (string, bool) {
	var ans GeneralJobInfo
	for _, v := range m.jobs {
		if v.GetCorpus() == corpusID && v.GetType() == jobType && !v.IsFinished() {
			if ans == nil || ans.GetStartDT().Before(v.GetStartDT()) {
				ans = v
			}
		}
	}
	if ans == nil {
		return "", false
	}
	return ans.GetID(), true
}

// ListJobs returns all the known jobs sorted by their start.
func (m *Manager) ListJobs() []JobInfoCompact {
	m.mu.Lock()
	defer m.mu.Unlock()
	printer := newPrinter(m.lang)
	ans := make([]JobInfoCompact, 0, len(m.jobs))
	for _, v := range m.jobs {
		item := v.CompactVersion()
		item.Description = extractJobDescription(printer, v)
		ans = append(ans, item)
	}
	slices.SortFunc(ans, func(j1, j2 JobInfoCompact) int {
		if j1.Start.Before(j2.Start) {
			return -1
		}
		if j2.Start.Before(j1.Start) {
			return 1
		}
		return 0
	})
	return ans
}

// ClearFinished removes a finished job from the list.
func (m *Manager) ClearFinished(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.jobs[jobID]
	if !ok {
		return ErrorJobNotFound
	}
	if !v.IsFinished() {
		return ErrorJobNotFinished
	}
	delete(m.jobs, jobID)
	return nil
}

// NewManager creates a manager and starts its worker which
// runs until ctx is cancelled. The lang argument specifies
// a language of job descriptions.
func NewManager(ctx context.Context, conf *Conf, lang string) *Manager {
	m := &Manager{
		conf:   conf,
		jobs:   make(map[string]GeneralJobInfo),
		wakeUp: make(chan struct{}, 1),
		lang:   lang,
	}
	go m.run(ctx)
	return m
}
