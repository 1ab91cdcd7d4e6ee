package main

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gescrow/params"
)

var (
	versionCommand = &cli.Command{
		Action:    printVersion,
		Name:      "version",
		Usage:     "Print the gescrow release and the escrow defaults it was built with",
		ArgsUsage: " ",
		Description: `
Prints one "key: value" pair per line so scripts can grep for a field.`,
	}
	licenseCommand = &cli.Command{
		Action:    printLicense,
		Name:      "license",
		Usage:     "Print the licenses gescrow is distributed under",
		ArgsUsage: " ",
	}
)

func printVersion(_ *cli.Context) error {
	fmt.Printf("%s: %s\n", clientIdentifier, params.VersionWithCommit(gitCommit, gitDate))
	if gitCommit != "" {
		fmt.Println("commit:", gitCommit)
	}
	if gitDate != "" {
		fmt.Println("commit-date:", gitDate)
	}
	fmt.Printf("platform: %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	fmt.Println("maturity-blocks:", params.MaturityBlocks)
	fmt.Println("profit-rate-bps:", params.ProfitRateBPS)
	fmt.Println("owner-fee-percent:", params.OwnerFeePercent)
	return nil
}

func printLicense(_ *cli.Context) error {
	fmt.Println(`gescrow is free software.

The escrow, ledger and API packages are released under the GNU Lesser
General Public License v3.0 or later (LICENSE). The gescrow command and
cmd/utils are released under the GNU General Public License v3.0 or later
(COPYING).`)
	return nil
}
