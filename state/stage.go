// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"log/slog"
	"sort"
	"time"

	"github.com/meterio/meter-auction/kv"
	"github.com/meterio/meter-auction/meter"
)

type change struct {
	key   meter.Bytes32
	value []byte
}

// Stage abstracts changes of one state.
type Stage struct {
	err     error
	kv      kv.Store
	cache   *storageCache
	changes []change
	logger  *slog.Logger
}

func newStage(err error, kv kv.Store, cache *storageCache, changes map[meter.Bytes32][]byte) *Stage {
	if err != nil {
		return &Stage{err: err}
	}
	list := make([]change, 0, len(changes))
	for k, v := range changes {
		list = append(list, change{key: k, value: v})
	}
	// batch content must not depend on map iteration order
	sort.Slice(list, func(i, j int) bool {
		return bytes.Compare(list[i].key[:], list[j].key[:]) < 0
	})
	return &Stage{
		kv:      kv,
		cache:   cache,
		changes: list,
		logger:  slog.Default().With("pkg", "state"),
	}
}

// Len returns the number of changed keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes in one batch.
func (s *Stage) Commit() error {
	if s.err != nil {
		return s.err
	}
	if len(s.changes) == 0 {
		return nil
	}
	start := time.Now()
	batch := s.kv.NewBatch()
	for _, c := range s.changes {
		var err error
		if len(c.value) == 0 {
			err = batch.Delete(c.key.Bytes())
		} else {
			err = batch.Put(c.key.Bytes(), c.value)
		}
		if err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		// cached reads may no longer match the store
		s.cache.Purge()
		return err
	}
	for _, c := range s.changes {
		if len(c.value) == 0 {
			s.cache.Add(c.key, nil)
		} else {
			s.cache.Add(c.key, c.value)
		}
	}
	s.logger.Debug("committed stage", "keys", len(s.changes), "elapsed", time.Since(start))
	return nil
}
