package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gescrow/cmd/utils"
	"github.com/tos-network/gescrow/params"
)

var tokenCommand = &cli.Command{
	Name:  "token",
	Usage: "Manage the reference token of the dev ledger",
	Subcommands: []*cli.Command{
		{
			Name:      "mint",
			Usage:     "Mint tokens to an account",
			ArgsUsage: "<address> <amount>",
			Action:    tokenMint,
		},
		{
			Name:      "approve",
			Usage:     "Allow the escrow to pull tokens of --from",
			ArgsUsage: "<amount>",
			Flags:     []cli.Flag{FromFlag},
			Action:    tokenApprove,
		},
		{
			Name:      "balance",
			Usage:     "Show the token and native balances of an account",
			ArgsUsage: "<address>",
			Action:    tokenBalance,
		},
	},
}

func tokenMint(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		utils.Fatalf("This command requires two arguments.")
	}
	to, err := utils.ParseAddress(ctx.Args().Get(0))
	if err != nil {
		utils.Fatalf("%v", err)
	}
	amount := argAmount(ctx, 1)

	n, _ := openNode(ctx)
	defer closeNode(n)

	if err := n.MintToken(to, amount); err != nil {
		return err
	}
	balance, err := n.TokenBalance(to)
	if err != nil {
		return err
	}
	fmt.Println("Token balance:", balance)
	return nil
}

func tokenApprove(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		utils.Fatalf("This command requires an argument.")
	}
	from, amount := fromAccount(ctx), argAmount(ctx, 0)

	n, _ := openNode(ctx)
	defer closeNode(n)

	if err := n.ApproveToken(from, params.EscrowAddress, amount); err != nil {
		return err
	}
	fmt.Println("Allowance:", amount)
	return nil
}

func tokenBalance(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		utils.Fatalf("This command requires an argument.")
	}
	addr, err := utils.ParseAddress(ctx.Args().First())
	if err != nil {
		utils.Fatalf("%v", err)
	}
	n, _ := openNode(ctx)
	defer closeNode(n)

	tokens, err := n.TokenBalance(addr)
	if err != nil {
		return err
	}
	native, err := n.NativeBalance(addr)
	if err != nil {
		return err
	}
	fmt.Println("Token balance:", tokens)
	fmt.Println("Native balance:", native)
	return nil
}
