// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
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

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tbconv/cnf"
	"tbconv/corpus"
	"tbconv/db/mysql"
	"tbconv/debug"
	"tbconv/general"
	"tbconv/jobs"
	"tbconv/root"
)

const (
	dbPingTimeout = 5 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

// checkDatabase tests the configured database so possible
// problems are reported on startup and not just when an import runs.
func checkDatabase(ctx context.Context, conf mysql.DBConf) {
	adapter, err := mysql.OpenDB(conf)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database, import jobs will fail")
		return
	}
	defer adapter.DB().Close()
	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := adapter.DB().PingContext(pingCtx); err != nil {
		log.Error().Err(err).Msg("database not available, import jobs will fail")
		return
	}
	log.Info().Msgf("using SQL database for imports: %s@%s", adapter.DBName(), conf.Host)
}

func main() {
	version := general.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "TBCONV - Perseus treebank to CONLL-U converter\n\nUsage:\n\t%s [options] start [config.json]\n\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("tbconv-server %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return

	} else if action != "start" {
		log.Fatal().Msgf("Unknown action %s", action)
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	logging.SetupLogging(conf.Logging)
	log.Info().Msg("Starting TBCONV")
	cnf.ApplyDefaults(conf)
	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := conf.CorporaSetup.Load(); err != nil {
		log.Fatal().
			Err(err).
			Str("targetDirectory", conf.CorporaSetup.ConfFilesDir).
			Msg("failed to load corpora configs")
	}
	log.Info().Msgf("using corpora configs from directory: %s", conf.CorporaSetup.ConfFilesDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.DB != nil {
		checkDatabase(ctx, *conf.DB)

	} else {
		log.Warn().Msg("database not configured, import disabled")
	}

	if !conf.Logging.Level.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	rootActions := root.Actions{Version: version, Conf: conf}

	jobManager := jobs.NewManager(ctx, conf.Jobs, conf.Language)
	jobActions := jobs.NewActions(jobManager)

	corpusActions := corpus.NewActions(
		ctx,
		conf.CorporaSetup,
		corpus.NewCache(corpus.LoadCorpus, conf.ParseTimeout()),
		jobManager,
		conf.DB,
		conf.ImportChunkSize,
	)

	engine.GET(
		"/", rootActions.RootAction)
	engine.GET(
		"/corpora", corpusActions.ListCorpora)
	engine.GET(
		"/corpora/:corpusId/info", corpusActions.Info)
	engine.GET(
		"/corpora/:corpusId/export", corpusActions.Export)
	engine.POST(
		"/corpora/:corpusId/conversion", corpusActions.Convert)
	engine.POST(
		"/corpora/:corpusId/import", corpusActions.Import)
	engine.DELETE(
		"/corpora/:corpusId/cache", corpusActions.DropCache)

	engine.GET(
		"/jobs", jobActions.JobList)
	engine.GET(
		"/jobs/:jobId", jobActions.JobInfo)
	engine.DELETE(
		"/jobs/:jobId", jobActions.Delete)

	if conf.Logging.Level.IsDebugMode() {
		debugActions := debug.NewActions(jobManager)
		engine.POST("/debug/createJob", debugActions.CreateDummyJob)
		engine.POST("/debug/finishJob/:jobId", debugActions.FinishDummyJob)
	}

	log.Info().Msgf("starting to listen at %s:%d", conf.ListenAddress, conf.ListenPort)
	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ListenAddress, conf.ListenPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Send()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown request received")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
}
