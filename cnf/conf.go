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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"tbconv/corpus"
	"tbconv/db/mysql"
	"tbconv/dbimport"
	"tbconv/jobs"
)

const (
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8080
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 60
	dfltParseTimeoutSecs       = 120
	dfltLanguage               = "en"
	dfltMaxNumFinishedJobs     = 100
	dfltOutputSubdir           = "tbconv"
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string               `json:"listenAddress"`
	ListenPort             int                  `json:"listenPort"`
	ServerReadTimeoutSecs  int                  `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                  `json:"serverWriteTimeoutSecs"`
	CorporaSetup           *corpus.CorporaSetup `json:"corporaSetup"`
	Logging                logging.LoggingConf  `json:"logging"`

	// DB is optional. Without it, database import is disabled.
	DB *mysql.DBConf `json:"db"`

	ImportChunkSize int `json:"importChunkSize"`

	// ParseTimeoutSecs limits how long an HTTP request waits
	// for a corpus to be parsed
	ParseTimeoutSecs int        `json:"parseTimeoutSecs"`
	Jobs             *jobs.Conf `json:"jobs"`
	Language         string     `json:"language"`
	srcPath          string
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func (conf *Conf) ParseTimeout() time.Duration {
	return time.Duration(conf.ParseTimeoutSecs) * time.Second
}

func (conf *Conf) Validate() error {
	if conf.CorporaSetup == nil || conf.CorporaSetup.ConfFilesDir == "" {
		return fmt.Errorf("missing corporaSetup.confFilesDir")
	}
	if conf.DB != nil {
		if err := conf.DB.Validate(); err != nil {
			return fmt.Errorf("invalid db configuration: %w", err)
		}
		if err := dbimport.ValidateTablePrefix(conf.DB.TablePrefix); err != nil {
			return fmt.Errorf("invalid db configuration: %w", err)
		}
	}
	return nil
}

func readConfig(path string) (*Conf, error) {
	if path == "" {
		return nil, fmt.Errorf("path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Conf
	conf.srcPath = path
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func LoadConfig(path string) *Conf {
	conf, err := readConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return conf
}

func ApplyDefaults(conf *Conf) {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Msgf("listenAddress not specified, using default: %s", dfltListenAddress)
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.ParseTimeoutSecs == 0 {
		conf.ParseTimeoutSecs = dfltParseTimeoutSecs
		log.Warn().Msgf("parseTimeoutSecs not specified, using default: %d", dfltParseTimeoutSecs)
	}
	if conf.Language == "" {
		conf.Language = dfltLanguage
		log.Warn().Msgf("language not specified, using default: %s", conf.Language)
	}
	if conf.Jobs == nil {
		conf.Jobs = &jobs.Conf{}
	}
	if conf.Jobs.MaxNumFinishedJobs == 0 {
		conf.Jobs.MaxNumFinishedJobs = dfltMaxNumFinishedJobs
		log.Warn().Msgf(
			"jobs.maxNumFinishedJobs not specified, using default: %d",
			dfltMaxNumFinishedJobs,
		)
	}
	if conf.CorporaSetup != nil && conf.CorporaSetup.OutputDir == "" {
		conf.CorporaSetup.OutputDir = filepath.Join(os.TempDir(), dfltOutputSubdir)
		log.Warn().Msgf(
			"corporaSetup.outputDir not specified, using default: %s",
			conf.CorporaSetup.OutputDir,
		)
	}
	if conf.ImportChunkSize == 0 {
		conf.ImportChunkSize = dbimport.DfltChunkSize
		log.Warn().Msgf("importChunkSize not specified, using default: %d", dbimport.DfltChunkSize)
	}
	if conf.DB != nil && conf.DB.TablePrefix == "" {
		conf.DB.TablePrefix = dbimport.DfltTablePrefix
		log.Warn().Msgf("db.tablePrefix not specified, using default: %s", dbimport.DfltTablePrefix)
	}
}
