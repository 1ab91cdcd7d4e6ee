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

// Package utils contains internal helper functions for gescrow commands.
package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/internal/flags"
	"github.com/tos-network/gescrow/node"
	"github.com/tos-network/gescrow/params"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// General settings
	DataDirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Data directory for the ledger database (empty keeps the ledger in memory)",
		Value:    node.DefaultDataDir(),
		Category: flags.LedgerCategory,
	}
	ConfigFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.LedgerCategory,
	}

	// Escrow settings
	OwnerFlag = &cli.StringFlag{
		Name:     "escrow.owner",
		Usage:    "Account allowed to withdraw reserved owner fees",
		Category: flags.EscrowCategory,
	}
	OwnerFeeFlag = &cli.Uint64Flag{
		Name:     "escrow.fee",
		Usage:    "Percentage of every deposit reserved for the owner",
		Value:    params.OwnerFeePercent,
		Category: flags.EscrowCategory,
	}
	MaturityFlag = &cli.Uint64Flag{
		Name:     "escrow.maturity",
		Usage:    "Blocks that must elapse between a deposit and its withdrawal",
		Value:    params.MaturityBlocks,
		Category: flags.EscrowCategory,
	}
	ProfitRateFlag = &cli.Uint64Flag{
		Name:     "escrow.rate",
		Usage:    "Profit per elapsed block in basis points of the principal",
		Value:    params.ProfitRateBPS,
		Category: flags.EscrowCategory,
	}
	AccrualCapFlag = &cli.Uint64Flag{
		Name:     "escrow.cap",
		Usage:    "Maximum number of blocks that accrue profit (0 = uncapped)",
		Value:    params.AccrualCapBlocks,
		Category: flags.EscrowCategory,
	}

	// Developer ledger settings
	DeveloperFlag = &cli.BoolFlag{
		Name:     "dev",
		Usage:    "Expose the dev_* RPC namespace (acts on behalf of any account)",
		Category: flags.DevCategory,
	}
	DeveloperPeriodMsFlag = &cli.Uint64Flag{
		Name:     "dev.periodms",
		Usage:    "Block period in milliseconds while serving (0 = blocks are produced on demand)",
		Value:    params.DevBlockPeriodMs,
		Category: flags.DevCategory,
	}
	DeveloperAccountsFlag = &cli.StringFlag{
		Name:     "dev.accounts",
		Usage:    "Comma separated accounts funded with both assets at genesis",
		Category: flags.DevCategory,
	}

	// API settings
	HTTPListenAddrFlag = &cli.StringFlag{
		Name:     "http.addr",
		Usage:    "HTTP-RPC server listening interface (empty disables the server)",
		Value:    node.DefaultHTTPHost,
		Category: flags.APICategory,
	}
	HTTPPortFlag = &cli.IntFlag{
		Name:     "http.port",
		Usage:    "HTTP-RPC server listening port",
		Value:    node.DefaultHTTPPort,
		Category: flags.APICategory,
	}
	HTTPCORSDomainFlag = &cli.StringFlag{
		Name:     "http.corsdomain",
		Usage:    "Comma separated list of domains from which to accept cross origin requests (browser enforced)",
		Value:    "",
		Category: flags.APICategory,
	}

	// Logging and debug settings
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}

	// Metrics flags
	MetricsEnabledFlag = &cli.BoolFlag{
		Name:     "metrics",
		Usage:    "Enable metrics collection and reporting",
		Category: flags.MetricsCategory,
	}
	MetricsHTTPFlag = &cli.StringFlag{
		Name:     "metrics.addr",
		Usage:    "Enable stand-alone metrics HTTP server listening interface",
		Value:    node.DefaultConfig.Metrics.HTTP,
		Category: flags.MetricsCategory,
	}
	MetricsPortFlag = &cli.IntFlag{
		Name:     "metrics.port",
		Usage:    "Metrics HTTP server listening port",
		Value:    node.DefaultConfig.Metrics.Port,
		Category: flags.MetricsCategory,
	}
)

var (
	// LedgerFlags is the flag group of every command touching the ledger.
	LedgerFlags = []cli.Flag{
		DataDirFlag,
		ConfigFileFlag,
		VerbosityFlag,
	}
	// EscrowFlags configure a new escrow.
	EscrowFlags = []cli.Flag{
		OwnerFlag,
		OwnerFeeFlag,
		MaturityFlag,
		ProfitRateFlag,
		AccrualCapFlag,
	}
	// ServeFlags configure the long running node.
	ServeFlags = []cli.Flag{
		DeveloperFlag,
		DeveloperPeriodMsFlag,
		HTTPListenAddrFlag,
		HTTPPortFlag,
		HTTPCORSDomainFlag,
		MetricsEnabledFlag,
		MetricsHTTPFlag,
		MetricsPortFlag,
	}
)

// SplitAndTrim splits input separated by a comma
// and trims excessive white space from the substrings.
func SplitAndTrim(input string) (ret []string) {
	l := strings.Split(input, ",")
	for _, r := range l {
		if r = strings.TrimSpace(r); r != "" {
			ret = append(ret, r)
		}
	}
	return ret
}

// ParseAddress parses a hex account address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a decimal or 0x-prefixed hex amount.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// MakeDevAccounts parses the --dev.accounts list.
func MakeDevAccounts(ctx *cli.Context) []common.Address {
	var accounts []common.Address
	for _, s := range SplitAndTrim(ctx.String(DeveloperAccountsFlag.Name)) {
		addr, err := ParseAddress(s)
		if err != nil {
			Fatalf("Option %q: %v", DeveloperAccountsFlag.Name, err)
		}
		accounts = append(accounts, addr)
	}
	return accounts
}

// SetNodeConfig applies node-related command line flags to the config.
func SetNodeConfig(ctx *cli.Context, cfg *node.Config) {
	if ctx.IsSet(DataDirFlag.Name) {
		cfg.DataDir = ctx.String(DataDirFlag.Name)
	}
	if ctx.IsSet(HTTPListenAddrFlag.Name) {
		cfg.HTTPHost = ctx.String(HTTPListenAddrFlag.Name)
	}
	if ctx.IsSet(HTTPPortFlag.Name) {
		cfg.HTTPPort = ctx.Int(HTTPPortFlag.Name)
	}
	if ctx.IsSet(HTTPCORSDomainFlag.Name) {
		cfg.HTTPCors = SplitAndTrim(ctx.String(HTTPCORSDomainFlag.Name))
	}
	if ctx.IsSet(DeveloperFlag.Name) {
		cfg.Dev = ctx.Bool(DeveloperFlag.Name)
	}
	if ctx.IsSet(DeveloperPeriodMsFlag.Name) {
		cfg.BlockPeriodMs = ctx.Uint64(DeveloperPeriodMsFlag.Name)
	}
	if ctx.IsSet(MetricsEnabledFlag.Name) {
		cfg.Metrics.Enabled = ctx.Bool(MetricsEnabledFlag.Name)
	}
	if ctx.IsSet(MetricsHTTPFlag.Name) {
		cfg.Metrics.HTTP = ctx.String(MetricsHTTPFlag.Name)
	}
	if ctx.IsSet(MetricsPortFlag.Name) {
		cfg.Metrics.Port = ctx.Int(MetricsPortFlag.Name)
	}
}

// SetEscrowConfig applies escrow-related command line flags to the config.
func SetEscrowConfig(ctx *cli.Context, cfg *escrow.Config) {
	if ctx.IsSet(OwnerFlag.Name) {
		owner, err := ParseAddress(ctx.String(OwnerFlag.Name))
		if err != nil {
			Fatalf("Option %q: %v", OwnerFlag.Name, err)
		}
		cfg.Owner = owner
	}
	if ctx.IsSet(OwnerFeeFlag.Name) {
		cfg.OwnerFeePercent = ctx.Uint64(OwnerFeeFlag.Name)
	}
	if ctx.IsSet(MaturityFlag.Name) {
		cfg.MaturityBlocks = ctx.Uint64(MaturityFlag.Name)
	}
	if ctx.IsSet(ProfitRateFlag.Name) {
		cfg.ProfitRateBPS = ctx.Uint64(ProfitRateFlag.Name)
	}
	if ctx.IsSet(AccrualCapFlag.Name) {
		cfg.AccrualCapBlocks = ctx.Uint64(AccrualCapFlag.Name)
	}
}
