// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/meterio/meter-auction/meter"
)

// storageCache keeps raw storage values read from or committed to the kv store.
// A nil value records a key known to be absent.
type storageCache struct {
	cache *lru.Cache
}

func newStorageCache(size int) *storageCache {
	cache, err := lru.New(size)
	if err != nil {
		// only fails on non-positive size
		panic(err)
	}
	return &storageCache{cache: cache}
}

func (sc *storageCache) Get(key meter.Bytes32) ([]byte, bool) {
	v, ok := sc.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (sc *storageCache) Add(key meter.Bytes32, value []byte) {
	sc.cache.Add(key, value)
}

func (sc *storageCache) Purge() {
	sc.cache.Purge()
}
