package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/cmd/utils"
	"github.com/tos-network/gescrow/internal/flags"
	"github.com/tos-network/gescrow/staking"
)

var (
	FromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Account the call is made on behalf of",
		Required: true,
		Category: flags.EscrowCategory,
	}

	depositCommand = &cli.Command{
		Action:    deposit,
		Name:      "deposit",
		Usage:     "Stake an asset in the escrow",
		ArgsUsage: "<token|native> <amount>",
		Flags:     []cli.Flag{FromFlag},
		Description: `
Deposits amount of the given asset on behalf of --from. Token deposits pull
the reference token through the allowance granted with 'gescrow token approve'.
The owner fee share of the deposit is reserved immediately.`,
	}
	withdrawCommand = &cli.Command{
		Action:    withdraw,
		Name:      "withdraw",
		Usage:     "Withdraw a matured stake with its profit",
		ArgsUsage: "<token|native>",
		Flags:     []cli.Flag{FromFlag},
	}
	ownerWithdrawCommand = &cli.Command{
		Action:    ownerWithdraw,
		Name:      "owner-withdraw",
		Usage:     "Withdraw reserved owner fees",
		ArgsUsage: "<token|native> <amount>",
		Flags:     []cli.Flag{FromFlag},
	}
	stakeCommand = &cli.Command{
		Action:    showStake,
		Name:      "stake",
		Usage:     "Show the stake record of an account",
		ArgsUsage: "<address>",
	}
	stakesCommand = &cli.Command{
		Action:    listStakes,
		Name:      "stakes",
		Usage:     "List every stake record of the ledger",
		ArgsUsage: " ",
	}
	feesCommand = &cli.Command{
		Action:    showFees,
		Name:      "fees",
		Usage:     "Show reserved owner fees and escrow balances",
		ArgsUsage: " ",
	}
)

func fromAccount(ctx *cli.Context) common.Address {
	addr, err := utils.ParseAddress(ctx.String(FromFlag.Name))
	if err != nil {
		utils.Fatalf("Option %q: %v", FromFlag.Name, err)
	}
	return addr
}

func argClass(ctx *cli.Context, i int) asset.Class {
	class, err := asset.ParseClass(ctx.Args().Get(i))
	if err != nil {
		utils.Fatalf("%v", err)
	}
	return class
}

func argAmount(ctx *cli.Context, i int) *big.Int {
	amount, err := utils.ParseAmount(ctx.Args().Get(i))
	if err != nil {
		utils.Fatalf("%v", err)
	}
	return amount
}

func deposit(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		utils.Fatalf("This command requires two arguments.")
	}
	var (
		from   = fromAccount(ctx)
		class  = argClass(ctx, 0)
		amount = argAmount(ctx, 1)
	)
	n, _ := openNode(ctx)
	defer closeNode(n)

	var (
		rec staking.StakeRecord
		err error
	)
	if class == asset.Native {
		rec, err = n.Escrow().DepositNative(from, amount)
	} else {
		rec, err = n.Escrow().DepositToken(from, amount)
	}
	if err != nil {
		return err
	}
	printStake(rec, nil)
	return nil
}

func withdraw(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		utils.Fatalf("This command requires an argument.")
	}
	from, class := fromAccount(ctx), argClass(ctx, 0)

	n, _ := openNode(ctx)
	defer closeNode(n)

	var (
		payout *big.Int
		err    error
	)
	if class == asset.Native {
		payout, err = n.Escrow().WithdrawNative(from)
	} else {
		payout, err = n.Escrow().WithdrawToken(from)
	}
	if err != nil {
		return err
	}
	fmt.Println("Payout:", payout)
	return nil
}

func ownerWithdraw(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		utils.Fatalf("This command requires two arguments.")
	}
	var (
		from   = fromAccount(ctx)
		class  = argClass(ctx, 0)
		amount = argAmount(ctx, 1)
	)
	n, _ := openNode(ctx)
	defer closeNode(n)

	if err := n.Escrow().WithdrawOwner(from, class, amount); err != nil {
		return err
	}
	reserved, err := n.Escrow().ReservedFee(class)
	if err != nil {
		return err
	}
	fmt.Println("Withdrawn:", amount)
	fmt.Println("Reserved:", reserved)
	return nil
}

func showStake(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		utils.Fatalf("This command requires an argument.")
	}
	account, err := utils.ParseAddress(ctx.Args().First())
	if err != nil {
		utils.Fatalf("%v", err)
	}
	n, _ := openNode(ctx)
	defer closeNode(n)

	rec := n.Escrow().Stake(account)
	var pending *big.Int
	if rec.Active() {
		if pending, err = n.Escrow().PendingPayout(account); err != nil {
			return err
		}
	}
	printStake(rec, pending)
	return nil
}

func printStake(rec staking.StakeRecord, pending *big.Int) {
	fmt.Println("Account:", rec.Account.Hex())
	fmt.Println("ID:", rec.ID)
	fmt.Println("Status:", rec.Status)
	fmt.Println("Token amount:", rec.TokenAmount())
	fmt.Println("Native amount:", rec.NativeAmount())
	fmt.Println("Deposit block:", rec.DepositBlock)
	if pending != nil {
		fmt.Println("Pending payout:", pending)
	}
}

func listStakes(ctx *cli.Context) error {
	n, _ := openNode(ctx)
	defer closeNode(n)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Account", "Status", "Asset", "Principal", "Deposit block"})
	for _, rec := range n.Escrow().Stakes() {
		class, principal := "-", "0"
		if rec.Active() {
			class, principal = rec.Asset.String(), rec.Principal.String()
		}
		table.Append([]string{
			strconv.FormatUint(rec.ID, 10),
			rec.Account.Hex(),
			rec.Status.String(),
			class,
			principal,
			strconv.FormatUint(rec.DepositBlock, 10),
		})
	}
	table.Render()
	return nil
}

func showFees(ctx *cli.Context) error {
	n, _ := openNode(ctx)
	defer closeNode(n)

	svc := n.Escrow()
	fmt.Println("Owner:", svc.Owner().Hex())
	fmt.Printf("Owner fee: %d%%\n", svc.OwnerFeePercent())
	fmt.Println("Block:", svc.CurrentBlock())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Asset", "Reserved fee", "Escrow balance"})
	for _, class := range []asset.Class{asset.Token, asset.Native} {
		reserved, err := svc.ReservedFee(class)
		if err != nil {
			return err
		}
		balance, err := svc.Balance(class)
		if err != nil {
			return err
		}
		table.Append([]string{class.String(), reserved.String(), balance.String()})
	}
	table.Render()
	return nil
}
