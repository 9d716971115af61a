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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tbconv/cnf"
	"tbconv/corpus"
	"tbconv/dbimport"
	"tbconv/feats"
	"tbconv/general"
	"tbconv/perseus"
	"tbconv/treebank"
)

type cmdAction string

const (
	cmdActionExport  cmdAction = "export"
	cmdActionImport  cmdAction = "import"
	cmdActionVersion cmdAction = "version"

	dfltLanguage = "lat"
)

var (
	version   string
	buildDate string
	gitCommit string
)

// Export subcommand flags
type exportArgs struct {
	pattern    string
	mode       string
	outputPath string
	language   string
	nfc        bool
	debug      bool
}

// Import subcommand flags
type importArgs struct {
	configPath string
	corpusID   string
	chunkSize  int
}

func setupConsoleLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)

	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func runExport(args exportArgs) error {
	if args.pattern == "" {
		return fmt.Errorf("missing source files pattern")
	}
	mode, err := treebank.ParseExportMode(args.mode)
	if err != nil {
		return err
	}
	dec, err := feats.ForLanguage(args.language)
	if err != nil {
		return err
	}
	corp, err := treebank.NewCorpus(
		args.pattern,
		treebank.CorpusOptions{
			Extractor: perseus.Extractor{NormalizeUnicode: args.nfc},
			Decoder:   dec,
		},
	)
	if err != nil {
		return err
	}
	if args.outputPath != "" {
		if err := corpus.WriteExport(corp, mode, args.outputPath); err != nil {
			return err
		}

	} else {
		data, err := corp.Export(mode)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(os.Stdout, data); err != nil {
			return err
		}
	}
	log.Info().
		Int("numFiles", len(corp.Sources())).
		Int("numSentences", corp.NumSentences()).
		Int("numTokens", corp.NumTokens()).
		Str("mode", string(mode)).
		Msg("treebank exported")
	return nil
}

func runImport(args importArgs) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf := cnf.LoadConfig(args.configPath)
	logging.SetupLogging(conf.Logging)
	cnf.ApplyDefaults(conf)
	if err := conf.Validate(); err != nil {
		return err
	}
	if conf.DB == nil {
		return fmt.Errorf("database not configured in %s", args.configPath)
	}
	if err := conf.CorporaSetup.Load(); err != nil {
		return err
	}
	setup := conf.CorporaSetup.Get(args.corpusID)
	if setup.IsZero() {
		return fmt.Errorf("%w: %s", corpus.ErrCorpusNotFound, args.corpusID)
	}
	corp, err := corpus.LoadCorpus(setup)
	if err != nil {
		return err
	}
	chunkSize := args.chunkSize
	if chunkSize <= 0 {
		chunkSize = conf.ImportChunkSize
	}
	numTokens, err := dbimport.ImportIntoDB(
		ctx,
		*conf.DB,
		setup.ID,
		corp,
		chunkSize,
		func(numTokens int) {
			log.Debug().Int("numTokens", numTokens).Msg("stored chunk")
		},
	)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d tokens of %s\n", numTokens, setup.ID)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "TBCONV - Perseus treebank to CONLL-U converter\n\nUsage:\n")
	fmt.Fprintf(os.Stderr, "\t%s export [options] 'glob/pattern/**/*.xml'\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "\t%s import [options] config.json corpusId\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "\t%s version\n", filepath.Base(os.Args[0]))
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	ver := general.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}

	exportCmd := flag.NewFlagSet(string(cmdActionExport), flag.ExitOnError)
	importCmd := flag.NewFlagSet(string(cmdActionImport), flag.ExitOnError)

	var exportOpts exportArgs
	exportCmd.StringVar(&exportOpts.mode, "mode", string(treebank.ExportModeDefault), "export mode (default, universal)")
	exportCmd.StringVar(&exportOpts.outputPath, "o", "", "output file (stdout if empty)")
	exportCmd.StringVar(&exportOpts.language, "lang", dfltLanguage, "treebank language")
	exportCmd.BoolVar(&exportOpts.nfc, "nfc", false, "apply NFC normalization to forms and lemmas")
	exportCmd.BoolVar(&exportOpts.debug, "debug", false, "log debug messages")

	var importOpts importArgs
	importCmd.IntVar(&importOpts.chunkSize, "chunk", 0, "number of rows inserted at once (config value if 0)")

	switch cmdAction(os.Args[1]) {
	case cmdActionExport:
		if err := exportCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		exportOpts.pattern = exportCmd.Arg(0)
		setupConsoleLogging(exportOpts.debug)
		if err := runExport(exportOpts); err != nil {
			log.Fatal().Err(err).Msg("failed to export treebank")
		}

	case cmdActionImport:
		if err := importCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		importOpts.configPath = importCmd.Arg(0)
		importOpts.corpusID = importCmd.Arg(1)
		if err := runImport(importOpts); err != nil {
			log.Fatal().Err(err).Msg("failed to import treebank")
		}

	case cmdActionVersion:
		fmt.Printf("tbconv %s\nbuild date: %s\nlast commit: %s\n", ver.Version, ver.BuildDate, ver.GitCommit)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}
