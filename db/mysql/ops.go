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

package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DBConf specifies a MySQL/MariaDB database where converted
// treebanks can be imported.
type DBConf struct {
	Host        string `json:"host"`
	User        string `json:"user"`
	Password    string `json:"passwd"`
	Name        string `json:"db"`
	TablePrefix string `json:"tablePrefix"`
}

func (conf *DBConf) Validate() error {
	if conf.Host == "" {
		return fmt.Errorf("missing database host")
	}
	if conf.Name == "" {
		return fmt.Errorf("missing database name")
	}
	return nil
}

type Adapter struct {
	db      *sql.DB
	conf    DBConf
	isAdHoc bool
}

func (a *Adapter) DB() *sql.DB {
	return a.db
}

func (a *Adapter) DBName() string {
	return a.conf.Name
}

func (a *Adapter) Conf() DBConf {
	return a.conf
}

// Close closes the wrapped database connection.
// Only "ad-hoc" connections (e.g. the import-tuned one which
// lives just for the time of an import) can be closed this way.
// For a non-adhoc connection, the method panics.
func (a *Adapter) Close() error {
	if !a.isAdHoc {
		panic("trying to close non-adhoc database Adapter")
	}
	return a.db.Close()
}

func dsn(conf DBConf) string {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.Host
	mconf.User = conf.User
	mconf.Passwd = conf.Password
	mconf.DBName = conf.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	mconf.Params = map[string]string{"autocommit": "true"}
	return mconf.FormatDSN()
}

func OpenDB(conf DBConf) (*Adapter, error) {
	db, err := sql.Open("mysql", dsn(conf))
	if err != nil {
		return nil, err
	}
	return &Adapter{db: db, conf: conf}, nil
}

// OpenImportTunedDB creates an Adapter instance with
// a single underlying connection whose session has
// parameters suitable for faster data import (unique checks disabled,
// foreign checks disabled).
func OpenImportTunedDB(conf DBConf) (*Adapter, error) {
	a, err := OpenDB(conf)
	if err != nil {
		return nil, err
	}
	a.isAdHoc = true
	a.db.SetMaxOpenConns(1)
	a.db.SetConnMaxLifetime(0)
	for _, q := range []string{
		"SET SESSION unique_checks = 0",
		"SET SESSION foreign_key_checks = 0",
	} {
		if _, err = a.db.Exec(q); err != nil {
			a.db.Close()
			return nil, err
		}
	}
	return a, nil
}
