// Copyright 2019 The go-ethereum Authors
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

package utils

import (
	"flag"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/node"
	"github.com/tos-network/gescrow/params"
)

func newTestContext(t *testing.T, flags []cli.Flag, args []string) *cli.Context {
	t.Helper()
	app := cli.NewApp()
	app.Flags = flags

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		if err := f.Apply(set); err != nil {
			t.Fatalf("apply flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cli.NewContext(app, set, nil)
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ,c", []string{"a", "b", "c"}},
		{"a,,b, ,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := SplitAndTrim(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDeveloperPeriodMsFlagValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want uint64
	}{
		{name: "default periodms", args: nil, want: params.DevBlockPeriodMs},
		{name: "periodms flag", args: []string{"--dev.periodms=750"}, want: 750},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, []cli.Flag{DeveloperPeriodMsFlag}, tt.args)
			if got := ctx.Uint64(DeveloperPeriodMsFlag.Name); got != tt.want {
				t.Fatalf("dev.periodms = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetNodeConfig(t *testing.T) {
	flags := append(append([]cli.Flag{}, LedgerFlags...), ServeFlags...)
	ctx := newTestContext(t, flags, []string{
		"--datadir=/tmp/ledger",
		"--http.port=9000",
		"--http.corsdomain=a.example, b.example",
		"--dev",
		"--dev.periodms=0",
	})
	cfg := node.DefaultConfig
	SetNodeConfig(ctx, &cfg)

	if cfg.DataDir != "/tmp/ledger" {
		t.Errorf("datadir = %q", cfg.DataDir)
	}
	if cfg.HTTPPort != 9000 {
		t.Errorf("http port = %d", cfg.HTTPPort)
	}
	if cfg.HTTPHost != node.DefaultHTTPHost {
		t.Errorf("http host changed without flag: %q", cfg.HTTPHost)
	}
	if want := []string{"a.example", "b.example"}; !reflect.DeepEqual(cfg.HTTPCors, want) {
		t.Errorf("cors = %v, want %v", cfg.HTTPCors, want)
	}
	if !cfg.Dev || cfg.BlockPeriodMs != 0 {
		t.Errorf("dev = %v periodms = %d", cfg.Dev, cfg.BlockPeriodMs)
	}
}

func TestSetEscrowConfig(t *testing.T) {
	owner := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	ctx := newTestContext(t, EscrowFlags, []string{
		"--escrow.owner=" + owner.Hex(),
		"--escrow.fee=7",
		"--escrow.cap=50",
	})
	cfg := escrow.DefaultConfig
	SetEscrowConfig(ctx, &cfg)

	if cfg.Owner != owner {
		t.Errorf("owner = %v, want %v", cfg.Owner, owner)
	}
	if cfg.OwnerFeePercent != 7 || cfg.AccrualCapBlocks != 50 {
		t.Errorf("fee = %d cap = %d", cfg.OwnerFeePercent, cfg.AccrualCapBlocks)
	}
	if cfg.MaturityBlocks != params.MaturityBlocks || cfg.ProfitRateBPS != params.ProfitRateBPS {
		t.Errorf("unset flags changed defaults: maturity = %d rate = %d", cfg.MaturityBlocks, cfg.ProfitRateBPS)
	}
}

func TestParseAmount(t *testing.T) {
	for _, s := range []string{"1000", "0x3e8"} {
		v, err := ParseAmount(s)
		if err != nil || v.Int64() != 1000 {
			t.Errorf("ParseAmount(%q) = %v, %v", s, v, err)
		}
	}
	if _, err := ParseAmount("ten"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
	if _, err := ParseAddress("0x1234"); err == nil {
		t.Error("expected error for short address")
	}
}
