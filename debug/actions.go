// Copyright 2022 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2022 Institute of the Czech National Corpus,
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
	"fmt"
	"net/http"
	"sync"

	"tbconv/jobs"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	jobTypeDummy = "dummy-job"
)

// Actions contains HTTP actions for testing job queue behavior.
// They are available only in the debug mode.
type Actions struct {
	finishSignals map[string]chan<- bool
	mu            sync.Mutex
	jobManager    *jobs.Manager
}

// CreateDummyJob enqueues a job which runs until FinishDummyJob
// is called. With the `error=1` argument, the job finishes
// with an error.
func (a *Actions) CreateDummyJob(ctx *gin.Context) {
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to create dummy job"), http.StatusInternalServerError)
		return
	}

	jobInfo := DummyJobInfo{
		ID:       jobID.String(),
		Type:     jobTypeDummy,
		Start:    jobs.CurrentDatetime(),
		CorpusID: ctx.DefaultQuery("corpusId", "dummy"),
	}
	var jobErr error
	if ctx.Query("error") == "1" {
		jobErr = fmt.Errorf("dummy error")
	}
	finishSignal := make(chan bool)
	fn := func(upds chan<- jobs.GeneralJobInfo) {
		defer close(upds)
		<-finishSignal
		if jobErr != nil {
			upds <- jobInfo.WithError(jobErr)
			return
		}
		jobInfo.Result = &DummyJobResult{Payload: "Job Done!"}
		upds <- jobInfo.AsFinished()
	}
	a.mu.Lock()
	a.finishSignals[jobInfo.ID] = finishSignal
	a.mu.Unlock()
	a.jobManager.EnqueueJob(&fn, jobInfo)
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo.FullInfo())
}

// FinishDummyJob lets a dummy job finish. Please note that the
// returned job info may not reflect the final state as the
// job updates are processed in a different goroutine.
func (a *Actions) FinishDummyJob(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	a.mu.Lock()
	finish, ok := a.finishSignals[jobID]
	delete(a.finishSignals, jobID)
	a.mu.Unlock()
	if !ok {
		uniresp.WriteJSONErrorResponse(ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	close(finish)
	storedJob, ok := a.jobManager.GetJob(jobID)
	if !ok {
		uniresp.WriteJSONErrorResponse(ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, storedJob.FullInfo())
}

// NewActions is the default factory
func NewActions(jobManager *jobs.Manager) *Actions {
	return &Actions{
		finishSignals: make(map[string]chan<- bool),
		jobManager:    jobManager,
	}
}
