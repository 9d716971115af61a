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
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tbconv/db/mysql"
	"tbconv/dbimport"
	"tbconv/feats"
	"tbconv/jobs"
	"tbconv/perseus"
	"tbconv/treebank"
)

// Actions contains all the corpus-related HTTP actions
type Actions struct {
	ctx             context.Context
	conf            *CorporaSetup
	cache           *Cache
	jobManager      *jobs.Manager
	dbConf          *mysql.DBConf
	importChunkSize int
}

// corpusErrorStatus maps errors of corpus parsing and
// export to HTTP statuses
func corpusErrorStatus(err error) int {
	switch {
	case errors.Is(err, treebank.ErrUnsupportedMode):
		return http.StatusBadRequest
	case errors.Is(err, treebank.ErrMissingTag),
		errors.Is(err, treebank.ErrTagMapping),
		errors.Is(err, treebank.ErrNoSourceFiles),
		errors.Is(err, feats.ErrInvalidCode),
		errors.Is(err, perseus.ErrMalformedDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrEntryNotReadyYet):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (a *Actions) getSetup(ctx *gin.Context) (CorpusSetup, bool) {
	corpusID := ctx.Param("corpusId")
	setup := a.conf.Get(corpusID)
	if setup.IsZero() {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("corpus '%s' not found", corpusID),
			http.StatusNotFound,
		)
		return setup, false
	}
	return setup, true
}

func (a *Actions) getCorpus(ctx *gin.Context) (CorpusSetup, *treebank.Corpus, bool) {
	setup, ok := a.getSetup(ctx)
	if !ok {
		return setup, nil, false
	}
	corp, err := a.cache.Get(setup)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, corpusErrorStatus(err))
		return setup, nil, false
	}
	return setup, corp, true
}

// ListCorpora returns all the configured treebanks
func (a *Actions) ListCorpora(ctx *gin.Context) {
	ans := struct {
		Corpora []CorpusSetup `json:"corpora"`
	}{
		Corpora: a.conf.GetAllCorpora(),
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Info provides information about corpus source files
// and the numbers of sentences and tokens.
func (a *Actions) Info(ctx *gin.Context) {
	setup, corp, ok := a.getCorpus(ctx)
	if !ok {
		return
	}
	info, err := GetCorpusInfo(setup, corp)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, info)
}

// Export writes the whole corpus in the CONLL-U format
func (a *Actions) Export(ctx *gin.Context) {
	mode, err := treebank.ParseExportMode(ctx.Query("mode"))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	setup, corp, ok := a.getCorpus(ctx)
	if !ok {
		return
	}
	data, err := corp.Export(mode)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, corpusErrorStatus(err))
		return
	}
	ctx.Header("Content-Type", "text/plain; charset=utf-8")
	ctx.Header(
		"Content-Disposition",
		fmt.Sprintf("inline; filename=\"%s\"", filepath.Base(GenExportFilename("", setup.ID, mode))),
	)
	ctx.Writer.WriteHeader(http.StatusOK)
	if _, err := ctx.Writer.WriteString(data); err != nil {
		log.Error().Err(err).Str("corpusId", setup.ID).Msg("failed to write export")
	}
}

func (a *Actions) newJob(ctx *gin.Context, corpusID, jobType string) (*JobInfo, bool) {
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("failed to start job for '%s'", corpusID),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	return &JobInfo{
		ID:       jobID.String(),
		Type:     jobType,
		CorpusID: corpusID,
		Start:    jobs.CurrentDatetime(),
	}, true
}

// enqueueJob writes either the new job's info or a conflict
// response if a job of the same type is already running for the corpus.
func (a *Actions) enqueueJob(ctx *gin.Context, fn jobs.QueuedFunc, jobRec *JobInfo) {
	if prevRunning, ok := a.jobManager.EnqueueUniqueJob(&fn, *jobRec); !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("the previous job '%s' has not finished yet", prevRunning),
			http.StatusConflict,
		)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, jobRec.FullInfo())
}

// Convert enqueues a job writing the CONLL-U version
// of a corpus into the output directory
func (a *Actions) Convert(ctx *gin.Context) {
	mode, err := treebank.ParseExportMode(ctx.Query("mode"))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	setup, ok := a.getSetup(ctx)
	if !ok {
		return
	}
	jobRec, ok := a.newJob(ctx, setup.ID, jobs.JobTypeConversion)
	if !ok {
		return
	}
	outPath := GenExportFilename(a.conf.OutputDir, setup.ID, mode)
	fn := func(updateJobChan chan<- jobs.GeneralJobInfo) {
		defer close(updateJobChan)
		corp, err := a.cache.Get(setup)
		if err != nil {
			updateJobChan <- jobRec.WithError(err)
			return
		}
		if err := WriteExport(corp, mode, outPath); err != nil {
			updateJobChan <- jobRec.WithError(err)
			return
		}
		updateJobChan <- jobRec.WithResult(JobResult{
			OutputPath:   outPath,
			Mode:         mode,
			NumSentences: corp.NumSentences(),
			NumTokens:    corp.NumTokens(),
		}).AsFinished()
	}
	a.enqueueJob(ctx, fn, jobRec)
}

// Import enqueues a job storing a corpus into the configured database
func (a *Actions) Import(ctx *gin.Context) {
	if a.dbConf == nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("database not configured"),
			http.StatusNotFound,
		)
		return
	}
	setup, ok := a.getSetup(ctx)
	if !ok {
		return
	}
	jobRec, ok := a.newJob(ctx, setup.ID, jobs.JobTypeDBImport)
	if !ok {
		return
	}
	fn := func(updateJobChan chan<- jobs.GeneralJobInfo) {
		defer close(updateJobChan)
		corp, err := a.cache.Get(setup)
		if err != nil {
			updateJobChan <- jobRec.WithError(err)
			return
		}
		res := JobResult{NumSentences: corp.NumSentences()}
		numTokens, err := dbimport.ImportIntoDB(
			a.ctx,
			*a.dbConf,
			setup.ID,
			corp,
			a.importChunkSize,
			func(numTokens int) {
				res.NumTokens = numTokens
				updateJobChan <- jobRec.WithResult(res)
			},
		)
		if err != nil {
			updateJobChan <- jobRec.WithError(err)
			return
		}
		res.NumTokens = numTokens
		updateJobChan <- jobRec.WithResult(res).AsFinished()
	}
	a.enqueueJob(ctx, fn, jobRec)
}

// DropCache removes a parsed corpus from memory so the next
// request parses the source files again.
func (a *Actions) DropCache(ctx *gin.Context) {
	setup, ok := a.getSetup(ctx)
	if !ok {
		return
	}
	dropped, err := a.cache.Drop(setup.ID)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusConflict)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"dropped": dropped})
}

// NewActions is the default factory. The dbConf argument
// may be nil in which case database import is disabled.
func NewActions(
	ctx context.Context,
	conf *CorporaSetup,
	cache *Cache,
	jobManager *jobs.Manager,
	dbConf *mysql.DBConf,
	importChunkSize int,
) *Actions {
	return &Actions{
		ctx:             ctx,
		conf:            conf,
		cache:           cache,
		jobManager:      jobManager,
		dbConf:          dbConf,
		importChunkSize: importChunkSize,
	}
}
