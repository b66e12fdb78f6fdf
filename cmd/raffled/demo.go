package main

import (
	"fmt"
	"io"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pushchain/push-raffle-node/app"
	"github.com/pushchain/push-raffle-node/relayer/core"
	"github.com/pushchain/push-raffle-node/relayer/db"
	"github.com/pushchain/push-raffle-node/utils"
	ticketmanagertypes "github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

func demoCmd() *cobra.Command {
	var buyers int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a complete NFT raffle across both chains in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			if buyers < 1 || buyers > 500 {
				return fmt.Errorf("buyers must be between 1 and 500")
			}
			return runDemo(cmd.OutOrStdout(), buyers)
		},
	}
	cmd.Flags().IntVar(&buyers, "buyers", 5, "number of buyers sharing the 500 tickets")
	return cmd
}

// runDemo locks an NFT, sells out a 500 ticket raffle, draws, propagates
// the winner and claims the prize.
func runDemo(out io.Writer, numBuyers int) error {
	signerKey, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	admin := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	signer := crypto.PubkeyToAddress(signerKey.PublicKey)

	net, err := app.NewNetwork(app.DefaultNetworkParams(admin, signer), log.NewNopLogger())
	if err != nil {
		return err
	}
	database, err := db.OpenInMemoryDB(true)
	if err != nil {
		return err
	}
	defer database.Close()
	relayer := core.NewRelayer(core.Config{Bridge: net, Oracle: net, DB: database, Logger: zerolog.Nop()})

	p, tc := net.Prize, net.Ticket
	step := func(format string, args ...any) {
		fmt.Fprintf(out, "[prize h=%d | ticket h=%d] %s\n", p.Height(), tc.Height(), fmt.Sprintf(format, args...))
	}
	settle := func() error {
		n, err := relayer.Settle(10)
		if err == nil {
			step("relayer moved %d item(s)", n)
		}
		return err
	}

	const raffleID, tokenID, supply = 1, 1, 500
	if _, err := p.Exec(func(ctx sdk.Context) error {
		if err := p.Assets.MintNFT(ctx, p.Collection, p.ManagerAddr, tokenID); err != nil {
			return err
		}
		return p.PrizeManager.LockNFT(ctx, admin, tc.ManagerAddr, tc.Selector(), raffleID, p.Collection, tokenID)
	}); err != nil {
		return fmt.Errorf("lock prize: %w", err)
	}
	step("locked NFT %s #%d as prize of raffle %d", p.Collection.Hex(), tokenID, raffleID)
	if err := settle(); err != nil {
		return err
	}

	end := tc.Time().Add(time.Hour).Unix()
	if _, err := tc.Exec(func(ctx sdk.Context) error {
		return tc.TicketManager.CreateRaffle(ctx, admin, raffleID, 0, end, 0, supply, supply)
	}); err != nil {
		return fmt.Errorf("create raffle: %w", err)
	}
	step("raffle %d open until %s", raffleID, time.Unix(end, 0).UTC().Format(time.RFC3339))

	price := math.NewIntWithDecimal(1, 16)
	sold := uint64(0)
	for i := 0; i < numBuyers; i++ {
		buyer := common.BigToAddress(math.NewInt(int64(0x1000 + i)).BigInt())
		count := uint16(supply / numBuyers)
		if i == numBuyers-1 {
			count = uint16(supply - sold)
		}
		value := price.MulRaw(int64(count))
		if _, err := tc.Exec(func(ctx sdk.Context) error {
			if err := tc.Native.Mint(ctx, buyer, utils.Ether(100)); err != nil {
				return err
			}
			nonce, err := tc.TicketManager.GetNonce(ctx, buyer)
			if err != nil {
				return err
			}
			c := ticketmanagertypes.Coupon{Buyer: buyer, Nonce: nonce, RaffleID: raffleID, Count: count, ExpiryBlock: uint64(ctx.BlockHeight()) + 10, Value: value}
			sig, err := ticketmanagertypes.SignCoupon(signerKey, c)
			if err != nil {
				return err
			}
			_, err = tc.TicketManager.BuyTickets(ctx, buyer, raffleID, count, c.ExpiryBlock, value, sig)
			return err
		}); err != nil {
			return fmt.Errorf("buy tickets: %w", err)
		}
		sold += uint64(count)
		step("%s bought %d ticket(s) for %s wei", buyer.Hex(), count, value)
	}

	var requestID uint64
	if _, err := tc.Exec(func(ctx sdk.Context) error {
		requestID, err = tc.TicketManager.DrawWinner(ctx, admin, raffleID)
		return err
	}); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	step("sold out, randomness request %d sent", requestID)

	net.AdvanceBlocks(int(net.Params.VRFConfirmations))
	if err := settle(); err != nil {
		return err
	}
	r, err := net.TicketRaffle(raffleID)
	if err != nil {
		return err
	}
	step("raffle %d is %s, winner %s", raffleID, r.StatusName, r.Winner.Hex())

	if _, err := tc.Exec(func(ctx sdk.Context) error {
		_, err := tc.TicketManager.PropagateRaffleWinner(ctx, admin, p.ManagerAddr, p.Selector(), raffleID)
		return err
	}); err != nil {
		return fmt.Errorf("propagate: %w", err)
	}
	step("winner propagated to the prize chain")
	if err := settle(); err != nil {
		return err
	}

	claim := func(ctx sdk.Context) error { return p.PrizeManager.ClaimPrize(ctx, r.Winner, raffleID) }
	if _, err := p.Exec(claim); err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	step("%s claimed the prize", r.Winner.Hex())
	if _, err := p.Exec(claim); err != nil {
		step("second claim rejected: %v", err)
	}

	pr, err := net.PrizeRaffle(raffleID)
	if err != nil {
		return err
	}
	step("prize of raffle %d is %s", raffleID, pr.StatusName)
	return nil
}
