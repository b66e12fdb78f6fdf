package main

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/pushchain/push-raffle-node/utils"
	ticketmanagertypes "github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

func couponCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon",
		Short: "Ticket purchase coupon tools",
	}
	cmd.AddCommand(couponSignCmd())
	return cmd
}

func couponSignCmd() *cobra.Command {
	var (
		keyHex, buyer, value  string
		nonce, raffle, expiry uint64
		count                 uint16
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a ticket purchase coupon with the operational signer key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
			if err != nil {
				return fmt.Errorf("invalid signer key: %w", err)
			}
			buyerAddr, err := utils.ParseAddress(buyer)
			if err != nil {
				return fmt.Errorf("invalid buyer: %w", err)
			}
			amount, err := utils.ParseAmount(value)
			if err != nil {
				return fmt.Errorf("invalid value: %w", err)
			}

			c := ticketmanagertypes.Coupon{
				Buyer:       buyerAddr,
				Nonce:       nonce,
				RaffleID:    raffle,
				Count:       count,
				ExpiryBlock: expiry,
				Value:       amount,
			}
			sig, err := ticketmanagertypes.SignCoupon(key, c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(sig))
			return nil
		},
	}

	cmd.Flags().StringVar(&keyHex, "key", "", "hex private key of the coupon signer")
	cmd.Flags().StringVar(&buyer, "buyer", "", "buyer address")
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "current buyer nonce")
	cmd.Flags().Uint64Var(&raffle, "raffle", 0, "raffle id")
	cmd.Flags().Uint16Var(&count, "count", 0, "ticket count")
	cmd.Flags().Uint64Var(&expiry, "expiry", 0, "last block at which the coupon is valid")
	cmd.Flags().StringVar(&value, "value", "0", "payment in wei")
	for _, name := range []string{"key", "buyer", "raffle", "count", "expiry"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
