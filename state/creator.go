// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/meterio/meter-auction/kv"
)

const defaultCacheSize = 4096

// Creator is state factory. All states it creates share one read cache.
type Creator struct {
	kv    kv.Store
	cache *storageCache
}

// NewCreator create a state creator.
func NewCreator(kv kv.Store) *Creator {
	return &Creator{
		kv:    kv,
		cache: newStorageCache(defaultCacheSize),
	}
}

// NewState create a new state object reflecting everything committed so far.
func (c *Creator) NewState() *State {
	return New(c.kv, c.cache)
}
