// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/meterio/meter-auction/api/utils"
	"github.com/meterio/meter-auction/logdb"
	"github.com/pkg/errors"
)

type Events struct {
	db     *logdb.LogDB
	logger *slog.Logger
}

func New(db *logdb.LogDB) *Events {
	return &Events{
		db,
		slog.Default().With("pkg", "events"),
	}
}

// Filter query events with option
func (e *Events) filter(ctx context.Context, ef *EventFilter) ([]*FilteredEvent, error) {
	events, err := e.db.FilterEvents(ctx, convertEventFilter(ef))
	if err != nil {
		return nil, err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, e := range events {
		fes[i] = convertEvent(e)
	}
	return fes, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	start := time.Now()
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	fes, err := e.filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	err = utils.WriteJSON(w, fes)

	if time.Since(start) > time.Second {
		filterStr, _ := json.Marshal(filter)
		e.logger.Info("slow handled event query", "query", string(filterStr), "elapsed", time.Since(start))
	}
	return err
}

func (e *Events) handleFilterTransfers(w http.ResponseWriter, req *http.Request) error {
	var filter TransferFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	transfers, err := e.db.FilterTransfers(req.Context(), convertTransferFilter(&filter))
	if err != nil {
		return err
	}
	fts := make([]*FilteredTransfer, len(transfers))
	for i, t := range transfers {
		fts[i] = convertTransfer(t)
	}
	return utils.WriteJSON(w, fts)
}

func (e *Events) handleRegistrations(w http.ResponseWriter, req *http.Request) error {
	regs, err := e.db.Registrations(req.Context())
	if err != nil {
		return err
	}
	frs := make([]*FilteredRegistration, len(regs))
	for i, r := range regs {
		frs[i] = convertRegistration(r)
	}
	return utils.WriteJSON(w, frs)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
	sub.Path("/transfers").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(e.handleFilterTransfers))
	sub.Path("/registrations").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(e.handleRegistrations))
}
