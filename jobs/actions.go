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
	"errors"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

// Actions contains job-related HTTP actions
type Actions struct {
	manager *Manager
}

// JobList returns all the jobs known to the manager
func (a *Actions) JobList(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, a.manager.ListJobs())
}

// JobInfo returns a detailed information about a job
func (a *Actions) JobInfo(ctx *gin.Context) {
	job, ok := a.manager.GetJob(ctx.Param("jobId"))
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	printer := newPrinter(a.manager.lang)
	ans := struct {
		Info          any    `json:"info"`
		Description   string `json:"description"`
		Status        string `json:"status"`
		QueuePosition int    `json:"queuePosition"`
	}{
		Info:          job.FullInfo(),
		Description:   extractJobDescription(printer, job),
		Status:        localizedStatus(printer, job),
		QueuePosition: a.manager.QueuePosition(job.GetID()),
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Delete removes a finished job from the job list
func (a *Actions) Delete(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	err := a.manager.ClearFinished(jobID)
	if errors.Is(err, ErrorJobNotFound) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return

	} else if errors.Is(err, ErrorJobNotFinished) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusConflict)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"ok": true})
}

func NewActions(manager *Manager) *Actions {
	return &Actions{manager: manager}
}
