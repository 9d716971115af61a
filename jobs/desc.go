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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	JobTypeConversion = "conversion"
	JobTypeDBImport   = "db-import"

	msgConversion = "Treebank conversion into CONLL-U"
	msgDBImport   = "Treebank import into the database"
	msgUnknown    = "Unknown job"
	msgOK         = "Job finished without errors"
	msgFailed     = "Job finished with error: %s"
	msgRunning    = "Job is not finished yet"
)

func init() {
	cs := language.Czech
	message.SetString(cs, msgConversion, "Převod treebanku do formátu CONLL-U")
	message.SetString(cs, msgDBImport, "Import treebanku do databáze")
	message.SetString(cs, msgUnknown, "Neznámá úloha")
	message.SetString(cs, msgOK, "Úloha dokončena bez chyb")
	message.SetString(cs, msgFailed, "Úloha skončila chybou: %s")
	message.SetString(cs, msgRunning, "Úloha ještě nebyla dokončena")
}

func newPrinter(lang string) *message.Printer {
	return message.NewPrinter(language.Make(lang))
}

func extractJobDescription(printer *message.Printer, info GeneralJobInfo) string {
	switch info.GetType() {
	case JobTypeConversion:
		return printer.Sprintf(msgConversion)
	case JobTypeDBImport:
		return printer.Sprintf(msgDBImport)
	default:
		return printer.Sprintf(msgUnknown)
	}
}

func localizedStatus(printer *message.Printer, info GeneralJobInfo) string {
	if !info.IsFinished() {
		return printer.Sprintf(msgRunning)
	}
	if info.GetError() == nil {
		return printer.Sprintf(msgOK)
	}
	return printer.Sprintf(msgFailed, info.GetError())
}
