package auction

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/meterio/meter-auction/api/utils"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/node"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/state"
	"github.com/pkg/errors"
)

type Auction struct {
	node *node.Node
}

func New(n *node.Node) *Auction {
	return &Auction{n}
}

// httpError maps rule violations to client errors; everything else stays a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, auction.ErrUnauthorized), errors.Is(err, auction.ErrInvalidAssetSource):
		return utils.Forbidden(err)
	case auction.Rejected(err):
		return utils.BadRequest(err)
	default:
		return err
	}
}

func (a *Auction) handleGetState(w http.ResponseWriter, req *http.Request) error {
	var resp *auction.StateResponse
	err := a.node.Query(func(st *state.State) (err error) {
		resp, err = auction.GetState(st)
		return
	})
	if err != nil {
		return httpError(err)
	}
	return utils.WriteJSON(w, ConvertState(resp))
}

func (a *Auction) handleGetDeposit(w http.ResponseWriter, req *http.Request) error {
	addr, err := meter.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var amount string
	err = a.node.Query(func(st *state.State) error {
		v, err := auction.GetDeposit(st, addr)
		if err != nil {
			return err
		}
		amount = v.String()
		return nil
	})
	if err != nil {
		return httpError(err)
	}
	return utils.WriteJSON(w, &DepositResponse{Address: addr, Amount: amount})
}

func (a *Auction) handleGetSummaries(w http.ResponseWriter, req *http.Request) error {
	var list []*meter.RoundSummary
	err := a.node.Query(func(st *state.State) (err error) {
		list, err = auction.GetSummaries(st)
		return
	})
	if err != nil {
		return httpError(err)
	}
	return utils.WriteJSON(w, ConvertSummaries(list))
}

func (a *Auction) handleGetSummary(w http.ResponseWriter, req *http.Request) error {
	round, err := strconv.ParseUint(mux.Vars(req)["round"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "round"))
	}
	var summary *meter.RoundSummary
	err = a.node.Query(func(st *state.State) (err error) {
		summary, err = auction.GetSummary(st, round)
		return
	})
	if err != nil {
		return httpError(err)
	}
	if summary == nil {
		return utils.HTTPError(errors.Errorf("round %d not found", round), http.StatusNotFound)
	}
	return utils.WriteJSON(w, ConvertSummaries([]*meter.RoundSummary{summary})[0])
}

func (a *Auction) handleExecute(w http.ResponseWriter, req *http.Request) error {
	var body ExecuteRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Caller.IsZero() {
		return utils.BadRequest(errors.New("body: caller is required"))
	}
	ab, err := body.Msg.ToBody()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "msg"))
	}
	receipt, err := a.node.ExecuteBody(req.Context(), body.Caller, ab)
	if err != nil {
		return httpError(err)
	}
	return utils.WriteJSON(w, ConvertReceipt(receipt))
}

func (a *Auction) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/state").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetState))
	sub.Path("/deposits/{address}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetDeposit))
	sub.Path("/summaries").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetSummaries))
	sub.Path("/summaries/{round}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetSummary))
	sub.Path("/execute").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(a.handleExecute))
}
