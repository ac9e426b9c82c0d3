// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/meterio/meter-auction/api"
	apiauction "github.com/meterio/meter-auction/api/auction"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/node"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/state"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
	log       = slog.Default()
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "auction",
		Usage:     "Pool auction escrow node",
		Copyright: "2020 Meter Foundation <https://meter.io/>",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			verbosityFlag,
			memFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "instantiate the auction described by the genesis",
				Flags:  []cli.Flag{dataDirFlag, configFlag, verbosityFlag},
				Action: initAction,
			},
			{
				Name:   "state",
				Usage:  "print config and state",
				Flags:  []cli.Flag{dataDirFlag, configFlag},
				Action: stateAction,
			},
			{
				Name:      "deposit",
				Usage:     "print the outstanding deposit of an address",
				ArgsUsage: "<address>",
				Flags:     []cli.Flag{dataDirFlag, configFlag},
				Action:    depositAction,
			},
			{
				Name:      "exec",
				Usage:     "execute a JSON message, e.g. '{\"claim\":{}}'",
				ArgsUsage: "<msg>",
				Flags:     []cli.Flag{dataDirFlag, configFlag, callerFlag, verbosityFlag},
				Action:    execAction,
			},
			{
				Name:   "genesis",
				Usage:  "print the selected genesis as YAML",
				Flags:  []cli.Flag{configFlag},
				Action: genesisAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { log.Info("exited") }()

	initLogger(ctx)

	gene := selectGenesis(ctx)
	mainDB, logDB, instanceDir := openDatabases(ctx, gene)
	defer func() { log.Info("closing main database..."); mainDB.Close() }()
	defer func() { log.Info("closing log database..."); logDB.Close() }()

	n := node.New(script.NewScriptEngine(state.NewCreator(mainDB), gene.ContractContext()), logDB, node.NewLogGateway())
	instantiate(n, gene)

	registry := prometheus.NewRegistry()
	registry.MustRegister(auction.Collectors()...)
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	if err := n.Query(func(st *state.State) error {
		resp, err := auction.GetState(st)
		if err == nil {
			auction.PublishState(resp.State)
		}
		return err
	}); err != nil {
		log.Warn("publish initial state", "err", err)
	}

	apiHandler := api.New(n, logDB, ctx.String(apiCorsFlag.Name), registry)
	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, instanceDir, apiURL, logDB.DriverVersion())

	<-exitSignal.Done()
	return nil
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)
	mainDB, logDB, _ := openDatabases(ctx, gene)
	defer mainDB.Close()
	defer logDB.Close()

	n := node.New(script.NewScriptEngine(state.NewCreator(mainDB), gene.ContractContext()), logDB, node.NewLogGateway())
	instantiate(n, gene)
	return nil
}

func stateAction(ctx *cli.Context) error {
	gene := selectGenesis(ctx)
	mainDB, logDB, _ := openDatabases(ctx, gene)
	defer mainDB.Close()
	defer logDB.Close()

	n := node.New(script.NewScriptEngine(state.NewCreator(mainDB), gene.ContractContext()), logDB, nil)
	var resp *auction.StateResponse
	var summaries []*meter.RoundSummary
	err := n.Query(func(st *state.State) (err error) {
		if resp, err = auction.GetState(st); err != nil {
			return
		}
		summaries, err = auction.GetSummaries(st)
		return
	})
	if err != nil {
		return err
	}
	return printJSON(struct {
		*apiauction.StateResponse
		Summaries []*apiauction.RoundSummary `json:"summaries"`
	}{apiauction.ConvertState(resp), apiauction.ConvertSummaries(summaries)})
}

func depositAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one address")
	}
	addr, err := meter.ParseAddress(ctx.Args().First())
	if err != nil {
		return errors.WithMessage(err, "address")
	}

	gene := selectGenesis(ctx)
	mainDB, logDB, _ := openDatabases(ctx, gene)
	defer mainDB.Close()
	defer logDB.Close()

	n := node.New(script.NewScriptEngine(state.NewCreator(mainDB), gene.ContractContext()), logDB, nil)
	var amount string
	err = n.Query(func(st *state.State) error {
		v, err := auction.GetDeposit(st, addr)
		if err != nil {
			return err
		}
		amount = v.String()
		return nil
	})
	if err != nil {
		return err
	}
	return printJSON(&apiauction.DepositResponse{Address: addr, Amount: amount})
}

func execAction(ctx *cli.Context) error {
	initLogger(ctx)
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one JSON message")
	}
	caller, err := meter.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return errors.WithMessage(err, callerFlag.Name)
	}
	var msg apiauction.ExecuteMsg
	dec := json.NewDecoder(strings.NewReader(ctx.Args().First()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return errors.WithMessage(err, "msg")
	}
	body, err := msg.ToBody()
	if err != nil {
		return errors.WithMessage(err, "msg")
	}

	gene := selectGenesis(ctx)
	mainDB, logDB, _ := openDatabases(ctx, gene)
	defer mainDB.Close()
	defer logDB.Close()

	n := node.New(script.NewScriptEngine(state.NewCreator(mainDB), gene.ContractContext()), logDB, node.NewLogGateway())
	receipt, err := n.ExecuteBody(context.Background(), caller, body)
	if err != nil {
		return errors.Errorf("%s: %v", auction.ErrorCode(err), err)
	}
	return printJSON(apiauction.ConvertReceipt(receipt))
}

func genesisAction(ctx *cli.Context) error {
	data, err := selectGenesis(ctx).Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
