// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/gescrow/cmd/utils"
	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/node"
)

var (
	initCommand = &cli.Command{
		Action:    initLedger,
		Name:      "init",
		Usage:     "Create a new ledger and configure its escrow",
		ArgsUsage: " ",
		Flags:     append(append([]cli.Flag{}, utils.EscrowFlags...), utils.DeveloperAccountsFlag),
		Description: `
The init command writes the genesis state of a new ledger: the escrow
configuration given by the --escrow.* flags (or the config file) and the
dev allocation of both assets for the owner and every --dev.accounts entry.
The escrow configuration can never be changed afterwards.`,
	}
	serveCommand = &cli.Command{
		Action:    serve,
		Name:      "serve",
		Usage:     "Run the ledger and serve the escrow RPC endpoint",
		ArgsUsage: " ",
		Flags:     append(append(append([]cli.Flag{}, utils.ServeFlags...), utils.EscrowFlags...), utils.DeveloperAccountsFlag),
		Description: `
The serve command produces a block every --dev.periodms milliseconds and
serves the escrow_* JSON-RPC namespace and the /v1 REST routes. With --dev
an uninitialised ledger is created on the fly from the --escrow.* flags.`,
	}
	mineCommand = &cli.Command{
		Action:    mine,
		Name:      "mine",
		Usage:     "Produce blocks on the ledger",
		ArgsUsage: "[count]",
	}
)

// makeGenesis assembles the dev genesis from the effective configuration.
func makeGenesis(ctx *cli.Context, cfg gescrowConfig) *node.Genesis {
	genesis := node.DevGenesis(cfg.Escrow.Owner, utils.MakeDevAccounts(ctx)...)
	genesis.Escrow = cfg.Escrow
	return genesis
}

// openNode opens an initialised ledger.
func openNode(ctx *cli.Context) (*node.Node, gescrowConfig) {
	cfg := makeConfigs(ctx)
	n, err := node.New(&cfg.Node, nil)
	if errors.Is(err, escrow.ErrNotInitialized) {
		utils.Fatalf("Ledger at %q is not initialised, run 'gescrow init' first", cfg.Node.DataDir)
	}
	if err != nil {
		utils.Fatalf("Failed to open ledger: %v", err)
	}
	return n, cfg
}

// closeNode commits the ledger state and releases the database.
func closeNode(n *node.Node) {
	if err := n.Close(); err != nil {
		utils.Fatalf("Failed to close ledger: %v", err)
	}
}

// initLedger will initialise a new ledger from the escrow configuration.
func initLedger(ctx *cli.Context) error {
	if ctx.Args().Len() > 0 {
		utils.Fatalf("init takes no arguments")
	}
	cfg := makeConfigs(ctx)
	if cfg.Node.DataDir == "" {
		log.Warn("Initialising an in-memory ledger, state will be lost on exit")
	}
	genesis := makeGenesis(ctx, cfg)
	n, err := node.New(&cfg.Node, genesis)
	if err != nil {
		utils.Fatalf("Failed to write genesis ledger: %v", err)
	}
	defer closeNode(n)

	head := n.Head()
	log.Info("Successfully wrote genesis ledger", "root", head.Root, "owner", cfg.Escrow.Owner, "fee", cfg.Escrow.OwnerFeePercent)
	return nil
}

// serve runs the ledger until interrupted.
func serve(ctx *cli.Context) error {
	cfg := makeConfigs(ctx)
	n, err := node.New(&cfg.Node, nil)
	if errors.Is(err, escrow.ErrNotInitialized) && cfg.Node.Dev {
		log.Info("Creating dev ledger", "owner", cfg.Escrow.Owner)
		n, err = node.New(&cfg.Node, makeGenesis(ctx, cfg))
	}
	if err != nil {
		utils.Fatalf("Failed to start ledger: %v", err)
	}
	defer closeNode(n)

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting escrow ledger", "block", n.Clock().CurrentBlock(), "owner", n.Escrow().Owner())
	return n.Serve(sigctx)
}

// mine produces the requested number of blocks, one by default.
func mine(ctx *cli.Context) error {
	count := uint64(1)
	if ctx.Args().Len() > 0 {
		c, err := strconv.ParseUint(ctx.Args().First(), 0, 64)
		if err != nil || c == 0 {
			utils.Fatalf("Invalid block count %q", ctx.Args().First())
		}
		count = c
	}
	n, _ := openNode(ctx)
	defer closeNode(n)

	height, err := n.Mine(count)
	if err != nil {
		return err
	}
	fmt.Println("Block:", height)
	return nil
}
