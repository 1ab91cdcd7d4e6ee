package main

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/node"
)

func TestDecodeConfig(t *testing.T) {
	const file = `
[Node]
DataDir = "/tmp/gescrow"
HTTPPort = 9545
HTTPCors = ["*"]

[Escrow]
Owner = "0x00000000000000000000000000000000000000aa"
OwnerFeePercent = 7
AccrualCapBlocks = 30
`
	cfg := gescrowConfig{Node: node.DefaultConfig, Escrow: escrow.DefaultConfig}
	if err := decodeConfig(strings.NewReader(file), "test.toml", &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Node.DataDir != "/tmp/gescrow" || cfg.Node.HTTPPort != 9545 {
		t.Errorf("node config = %+v", cfg.Node)
	}
	if cfg.Node.HTTPHost != node.DefaultHTTPHost {
		t.Errorf("unset key overwrote default host: %q", cfg.Node.HTTPHost)
	}
	if want := common.HexToAddress("0xaa"); cfg.Escrow.Owner != want {
		t.Errorf("owner = %v, want %v", cfg.Escrow.Owner, want)
	}
	if cfg.Escrow.OwnerFeePercent != 7 || cfg.Escrow.AccrualCapBlocks != 30 {
		t.Errorf("escrow config = %+v", cfg.Escrow)
	}
	if cfg.Escrow.MaturityBlocks != escrow.DefaultConfig.MaturityBlocks {
		t.Errorf("maturity = %d, want default", cfg.Escrow.MaturityBlocks)
	}
}

func TestDecodeConfigUnknownField(t *testing.T) {
	const file = `
[Escrow]
OwnerFee = 7
`
	var cfg gescrowConfig
	err := decodeConfig(strings.NewReader(file), "test.toml", &cfg)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.HasPrefix(err.Error(), "test.toml, ") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := gescrowConfig{Node: node.DefaultConfig, Escrow: escrow.DefaultConfig}
	cfg.Escrow.Owner = common.HexToAddress("0xbb")

	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back gescrowConfig
	if err := decodeConfig(strings.NewReader(string(out)), "dump.toml", &back); err != nil {
		t.Fatalf("decode dump: %v\n%s", err, out)
	}
	if back.Escrow != cfg.Escrow {
		t.Errorf("escrow config = %+v, want %+v", back.Escrow, cfg.Escrow)
	}
}
