// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/meterio/meter-auction/kv"
	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
)

// State is a buffered view over the kv store.
// Writes are kept in memory until the Stage built from it is committed,
// so a failed operation leaves the store untouched.
type State struct {
	kv      kv.Store
	cache   *storageCache
	changes map[meter.Bytes32][]byte // empty value means deleted
	err     error
}

// New create a state object.
func New(kv kv.Store, cache *storageCache) *State {
	if cache == nil {
		cache = newStorageCache(defaultCacheSize)
	}
	return &State{
		kv:      kv,
		cache:   cache,
		changes: make(map[meter.Bytes32][]byte),
	}
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

// GetStorage returns the raw value stored at key, nil when absent.
func (s *State) GetStorage(key meter.Bytes32) ([]byte, error) {
	if v, ok := s.changes[key]; ok {
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	}
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	v, err := s.kv.Get(key.Bytes())
	if err != nil {
		if s.kv.IsNotFound(err) {
			s.cache.Add(key, nil)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get storage %v", key.AbbrevString())
	}
	s.cache.Add(key, v)
	return v, nil
}

// SetStorage buffers value for key. An empty value deletes the key.
func (s *State) SetStorage(key meter.Bytes32, value []byte) {
	s.changes[key] = value
}

// DecodeStorage get and decode storage value.
// dec is called with an empty raw value when the key is absent.
func (s *State) DecodeStorage(key meter.Bytes32, dec func(raw []byte) error) error {
	raw, err := s.GetStorage(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return errors.Wrapf(err, "decode storage %v", key.AbbrevString())
	}
	return nil
}

// EncodeStorage encode and set storage value.
// Errors are kept and reported by Err and by the stage.
func (s *State) EncodeStorage(key meter.Bytes32, enc func() ([]byte, error)) {
	data, err := enc()
	if err != nil {
		s.setError(errors.Wrapf(err, "encode storage %v", key.AbbrevString()))
		return
	}
	s.SetStorage(key, data)
}

// Stage makes a stage object to commit changes.
func (s *State) Stage() *Stage {
	return newStage(s.err, s.kv, s.cache, s.changes)
}
