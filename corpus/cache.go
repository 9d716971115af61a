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
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"

	"tbconv/treebank"
)

const (
	DfltParseBackoffInitialInterval = 100 * time.Millisecond
	DfltParseBackoffMaxElapsedTime  = 2 * time.Minute
)

var (
	ErrEntryNotFound    = errors.New("cache entry not found")
	ErrEntryNotReadyYet = errors.New("cache entry not ready yet")
)

// LoaderFn parses a configured corpus
type LoaderFn func(setup CorpusSetup) (*treebank.Corpus, error)

// LoadCorpus parses all the source files of a configured corpus
func LoadCorpus(setup CorpusSetup) (*treebank.Corpus, error) {
	opts, err := setup.CorpusOptions()
	if err != nil {
		return nil, err
	}
	return treebank.NewCorpus(setup.SourcePattern, opts)
}

// CacheEntry is a promise of a parsed corpus. An entry with
// zero PromisedAt is considered empty.
type CacheEntry struct {
	PromisedAt  time.Time
	FulfilledAt time.Time
	Corpus      *treebank.Corpus
	Err         error
}

func (entry CacheEntry) isEmpty() bool {
	return entry.PromisedAt.IsZero()
}

func (entry CacheEntry) isFulfilled() bool {
	return !entry.FulfilledAt.IsZero()
}

// Cache keeps parsed corpora in memory. Each corpus is parsed
// at most once at a time, concurrent requests wait for the
// running parsing. Failed parsing is not cached.
type Cache struct {
	data      *collections.ConcurrentMap[string, CacheEntry]
	loader    LoaderFn
	promiseMu sync.Mutex
	waitLimit time.Duration
}

func (cache *Cache) Contains(corpusID string) bool {
	entry, ok := cache.data.GetWithTest(corpusID)
	return ok && entry.isFulfilled() && entry.Err == nil
}

func (cache *Cache) promise(setup CorpusSetup) {
	entry := CacheEntry{PromisedAt: time.Now()}
	cache.data.Set(setup.ID, entry)
	go func(entry2 CacheEntry) {
		t0 := time.Now()
		entry2.Corpus, entry2.Err = cache.loader(setup)
		entry2.FulfilledAt = time.Now()
		cache.data.Set(setup.ID, entry2)
		if entry2.Err != nil {
			log.Error().Err(entry2.Err).Str("corpusId", setup.ID).Msg("failed to parse corpus")
			return
		}
		log.Info().
			Str("corpusId", setup.ID).
			Int("numSentences", entry2.Corpus.NumSentences()).
			Float64("procTimeSecs", time.Since(t0).Seconds()).
			Msg("parsed corpus")
	}(entry)
}

func (cache *Cache) wait(corpusID string) (CacheEntry, error) {
	operation := func() (CacheEntry, error) {
		entry, ok := cache.data.GetWithTest(corpusID)
		if !ok || entry.isEmpty() {
			return entry, backoff.Permanent(ErrEntryNotFound)
		}
		if !entry.isFulfilled() {
			return entry, ErrEntryNotReadyYet
		}
		return entry, nil
	}
	bkoff := backoff.NewExponentialBackOff()
	bkoff.InitialInterval = DfltParseBackoffInitialInterval
	bkoff.MaxElapsedTime = cache.waitLimit
	return backoff.RetryWithData(operation, bkoff)
}

// Get returns a parsed corpus. If the corpus is not cached
// (or its previous parsing failed), the parsing starts and
// the method waits for its result (at most waitLimit).
func (cache *Cache) Get(setup CorpusSetup) (*treebank.Corpus, error) {
	cache.promiseMu.Lock()
	entry, ok := cache.data.GetWithTest(setup.ID)
	if !ok || entry.isEmpty() || (entry.isFulfilled() && entry.Err != nil) {
		cache.promise(setup)
	}
	cache.promiseMu.Unlock()
	entry, err := cache.wait(setup.ID)
	if err != nil {
		return nil, err
	}
	return entry.Corpus, entry.Err
}

// Drop removes a parsed corpus from the cache. Running parsing
// cannot be dropped. The returned value tells whether
// there was a parsed corpus.
func (cache *Cache) Drop(corpusID string) (bool, error) {
	cache.promiseMu.Lock()
	defer cache.promiseMu.Unlock()
	entry, ok := cache.data.GetWithTest(corpusID)
	if !ok || entry.isEmpty() {
		return false, nil
	}
	if !entry.isFulfilled() {
		return false, ErrEntryNotReadyYet
	}
	cache.data.Set(corpusID, CacheEntry{})
	return entry.Err == nil, nil
}

func NewCache(loader LoaderFn, waitLimit time.Duration) *Cache {
	if waitLimit <= 0 {
		waitLimit = DfltParseBackoffMaxElapsedTime
	}
	return &Cache{
		data:      collections.NewConcurrentMap[string, CacheEntry](),
		loader:    loader,
		waitLimit: waitLimit,
	}
}
