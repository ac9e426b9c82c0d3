// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"strings"

	"github.com/meterio/meter-auction/meter"
)

// Attribute is a key/value pair attached to an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is the structured record of a committed operation.
type Event struct {
	Address    meter.Address `json:"address"` // emitting contract
	Attributes []Attribute   `json:"attributes"`
}

// Get returns the value of the first attribute named key.
func (e *Event) Get(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Event) String() string {
	s := make([]string, 0, len(e.Attributes))
	for _, a := range e.Attributes {
		s = append(s, a.Key+"="+a.Value)
	}
	return "Event(" + e.Address.String() + ": " + strings.Join(s, ", ") + ")"
}

// Events slice of event logs.
type Events []*Event
