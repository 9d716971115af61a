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
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkJob(id, jobType string, start time.Time) testJobInfo {
	return testJobInfo{ID: id, Type: jobType, CorpusID: "ldt", Start: JSONTime(start)}
}

func finishingJob(info testJobInfo, err error, visited *[]string, mu *sync.Mutex) *QueuedFunc {
	fn := func(upd chan<- GeneralJobInfo) {
		defer close(upd)
		mu.Lock()
		*visited = append(*visited, info.ID)
		mu.Unlock()
		if err != nil {
			upd <- info.WithError(err)
			return
		}
		upd <- info.AsFinished()
	}
	return &fn
}

func isFinished(m *Manager, jobID string) func() bool {
	return func() bool {
		v, ok := m.GetJob(jobID)
		return ok && v.IsFinished()
	}
}

func TestManagerRunsJobsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, &Conf{MaxNumFinishedJobs: 10}, "en")
	var visited []string
	var mu sync.Mutex
	now := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		job := mkJob(id, JobTypeConversion, now.Add(time.Duration(i)*time.Second))
		m.EnqueueJob(finishingJob(job, nil, &visited, &mu), job)
	}
	assert.Eventually(t, isFinished(m, "c"), 2*time.Second, 10*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{"a", "b", "c"}, visited)
	mu.Unlock()
	list := m.ListJobs()
	assert.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "Treebank conversion into CONLL-U", list[0].Description)
}

func TestManagerStoresJobError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, &Conf{MaxNumFinishedJobs: 10}, "en")
	var visited []string
	var mu sync.Mutex
	job := mkJob("x", JobTypeDBImport, time.Now())
	m.EnqueueJob(finishingJob(job, errors.New("failed"), &visited, &mu), job)
	assert.Eventually(t, isFinished(m, "x"), 2*time.Second, 10*time.Millisecond)
	v, _ := m.GetJob("x")
	assert.EqualError(t, v.GetError(), "failed")
	assert.False(t, m.ListJobs()[0].OK)
}

func TestManagerFinishesSilentJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, &Conf{MaxNumFinishedJobs: 10}, "en")
	fn := func(upd chan<- GeneralJobInfo) {
		close(upd)
	}
	m.EnqueueJob(&fn, mkJob("s", JobTypeConversion, time.Now()))
	assert.Eventually(t, isFinished(m, "s"), 2*time.Second, 10*time.Millisecond)
}

func TestManagerPrunesFinishedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, &Conf{MaxNumFinishedJobs: 2}, "en")
	var visited []string
	var mu sync.Mutex
	now := time.Now()
	for i, id := range []string{"a", "b", "c", "d"} {
		job := mkJob(id, JobTypeConversion, now.Add(time.Duration(i)*time.Second))
		m.EnqueueJob(finishingJob(job, nil, &visited, &mu), job)
	}
	assert.Eventually(t, isFinished(m, "d"), 2*time.Second, 10*time.Millisecond)
	assert.Eventually(
		t,
		func() bool { return len(m.ListJobs()) == 2 },
		2*time.Second,
		10*time.Millisecond,
	)
	_, ok := m.GetJob("a")
	assert.False(t, ok)
	_, ok = m.GetJob("b")
	assert.False(t, ok)
}

func TestManagerUnfinishedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, &Conf{MaxNumFinishedJobs: 10}, "en")
	release := make(chan struct{})
	job := mkJob("blocking", JobTypeDBImport, time.Now())
	fn := func(upd chan<- GeneralJobInfo) {
		defer close(upd)
		<-release
		upd <- job.AsFinished()
	}
	m.EnqueueJob(&fn, job)

	jobID, ok := m.LastUnfinishedJobOfType("ldt", JobTypeDBImport)
	assert.True(t, ok)
	assert.Equal(t, "blocking", jobID)
	_, ok = m.LastUnfinishedJobOfType("ldt", JobTypeConversion)
	assert.False(t, ok)
	assert.ErrorIs(t, m.ClearFinished("blocking"), ErrorJobNotFinished)
	assert.ErrorIs(t, m.ClearFinished("foo"), ErrorJobNotFound)

	close(release)
	assert.Eventually(t, isFinished(m, "blocking"), 2*time.Second, 10*time.Millisecond)
	_, ok = m.LastUnfinishedJobOfType("ldt", JobTypeDBImport)
	assert.False(t, ok)
	assert.NoError(t, m.ClearFinished("blocking"))
	_, ok = m.GetJob("blocking")
	assert.False(t, ok)
}

func TestEnqueueUniqueJobConcurrently(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, &Conf{MaxNumFinishedJobs: 10}, "en")
	release := make(chan struct{})
	defer close(release)

	const numRequests = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var accepted []string
	start := time.Now()
	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			job := mkJob(fmt.Sprintf("job%d", i), JobTypeConversion, start)
			fn := func(upd chan<- GeneralJobInfo) {
				defer close(upd)
				<-release
				upd <- job.AsFinished()
			}
			if _, ok := m.EnqueueUniqueJob(&fn, job); ok {
				mu.Lock()
				accepted = append(accepted, job.ID)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, accepted, 1)
	assert.Len(t, m.ListJobs(), 1)

	prevID, ok := m.EnqueueUniqueJob(nil, mkJob("another", JobTypeConversion, start))
	assert.False(t, ok)
	assert.Equal(t, accepted[0], prevID)
	_, ok = m.GetJob("another")
	assert.False(t, ok)
}

func TestLocalizedDescriptions(t *testing.T) {
	job := mkJob("a", JobTypeDBImport, time.Now())
	assert.Equal(t, "Import treebanku do databáze", extractJobDescription(newPrinter("cs"), job))
	assert.Equal(t, "Treebank import into the database", extractJobDescription(newPrinter("en"), job))
	assert.Equal(t, "Unknown job", extractJobDescription(newPrinter("en"), mkJob("b", "foo", time.Now())))
	assert.Equal(t, "Job is not finished yet", localizedStatus(newPrinter("en"), job))
	assert.Equal(
		t,
		"Úloha skončila chybou: failed",
		localizedStatus(newPrinter("cs"), job.WithError(errors.New("failed"))),
	)
}
