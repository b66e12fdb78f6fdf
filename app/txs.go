package app

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pushchain/push-raffle-node/utils"
)

// Transactions below are submitted on behalf of From without a signature,
// the way a local development node impersonates accounts. Contract-level
// checks (roles, winner, coupon signer) still apply to From.

const codespace = "app"

var ErrInvalidTx = errorsmod.Register(codespace, utils.ValidationCodeBase+1, "invalid transaction")

// Chain and asset names used in transaction requests.
const (
	ChainPrize  = "prize"
	ChainTicket = "ticket"

	AssetNFT   = "nft"
	AssetETH   = "eth"
	AssetToken = "token"
)

// FundTx mints native currency to To on Chain. Development faucet.
type FundTx struct {
	Chain  string         `json:"chain"`
	To     common.Address `json:"to"`
	Amount math.Int       `json:"amount"`
}

// MintPrizeTx mints the sample NFT (TokenID) or sample prize token (Amount)
// of the prize chain to To.
type MintPrizeTx struct {
	Asset   string         `json:"asset"`
	To      common.Address `json:"to"`
	TokenID uint64         `json:"token_id,omitempty"`
	Amount  math.Int       `json:"amount"`
}

// LockPrizeTx locks a prize already held by the prize manager. Contract
// defaults to the sample collection or token of the prize chain.
type LockPrizeTx struct {
	From     common.Address `json:"from"`
	RaffleID uint64         `json:"raffle_id"`
	Asset    string         `json:"asset"`
	Contract common.Address `json:"contract,omitempty"`
	TokenID  uint64         `json:"token_id,omitempty"`
	Amount   math.Int       `json:"amount"`
}

// WithdrawPrizeTx withdraws unreserved assets from the prize manager to From.
type WithdrawPrizeTx struct {
	From     common.Address `json:"from"`
	Asset    string         `json:"asset"`
	Contract common.Address `json:"contract,omitempty"`
	TokenID  uint64         `json:"token_id,omitempty"`
	Amount   math.Int       `json:"amount"`
}

// CreateRaffleTx opens ticket sales for a locked prize.
type CreateRaffleTx struct {
	From        common.Address `json:"from"`
	RaffleID    uint64         `json:"raffle_id"`
	StartTime   int64          `json:"start_time"`
	EndTime     int64          `json:"end_time"`
	MinTickets  uint64         `json:"min_tickets"`
	MaxSupply   uint64         `json:"max_supply"`
	MaxHoldings uint64         `json:"max_holdings"`
}

// BuyTicketsTx buys tickets with a coupon signed by the operational signer.
type BuyTicketsTx struct {
	From        common.Address `json:"from"`
	RaffleID    uint64         `json:"raffle_id"`
	Count       uint16         `json:"count"`
	ExpiryBlock uint64         `json:"expiry_block"`
	Value       math.Int       `json:"value"`
	Signature   hexutil.Bytes  `json:"signature"`
}

// RaffleTx is a call by From on one raffle.
type RaffleTx struct {
	From     common.Address `json:"from"`
	RaffleID uint64         `json:"raffle_id"`
}

// RefundTx refunds Players of a canceled raffle. Anyone may submit it.
type RefundTx struct {
	RaffleID uint64           `json:"raffle_id"`
	Players  []common.Address `json:"players"`
}

// AccountTx is a call by From with no other argument.
type AccountTx struct {
	From common.Address `json:"from"`
}

func positive(name string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidTx, "%s must be positive", name)
	}
	return nil
}

func nonZero(name string, addr common.Address) error {
	if addr == (common.Address{}) {
		return errorsmod.Wrapf(ErrInvalidTx, "%s is required", name)
	}
	return nil
}

func orDefault(addr, fallback common.Address) common.Address {
	if addr == (common.Address{}) {
		return fallback
	}
	return addr
}

// Fund mints native currency on the named chain.
func (n *Network) Fund(tx FundTx) (Receipt, error) {
	if err := nonZero("to", tx.To); err != nil {
		return Receipt{}, err
	}
	if err := positive("amount", tx.Amount); err != nil {
		return Receipt{}, err
	}
	switch tx.Chain {
	case ChainPrize:
		return n.Prize.Exec(func(ctx sdk.Context) error {
			return n.Prize.Native.Mint(ctx, tx.To, tx.Amount)
		})
	case ChainTicket:
		return n.Ticket.Exec(func(ctx sdk.Context) error {
			return n.Ticket.Native.Mint(ctx, tx.To, tx.Amount)
		})
	default:
		return Receipt{}, errorsmod.Wrapf(ErrInvalidTx, "unknown chain %q", tx.Chain)
	}
}

// MintPrize mints a sample prize asset on the prize chain.
func (n *Network) MintPrize(tx MintPrizeTx) (Receipt, error) {
	if err := nonZero("to", tx.To); err != nil {
		return Receipt{}, err
	}
	p := n.Prize
	switch tx.Asset {
	case AssetNFT:
		return p.Exec(func(ctx sdk.Context) error {
			return p.Assets.MintNFT(ctx, p.Collection, tx.To, tx.TokenID)
		})
	case AssetToken:
		if err := positive("amount", tx.Amount); err != nil {
			return Receipt{}, err
		}
		return p.Exec(func(ctx sdk.Context) error {
			return p.Assets.MintTokens(ctx, p.PrizeToken, tx.To, tx.Amount)
		})
	default:
		return Receipt{}, errorsmod.Wrapf(ErrInvalidTx, "unknown asset %q", tx.Asset)
	}
}

// LockPrize locks a prize and announces it to the ticket manager.
func (n *Network) LockPrize(tx LockPrizeTx) (Receipt, error) {
	p := n.Prize
	dest, selector := n.Ticket.ManagerAddr, n.Ticket.Selector()
	switch tx.Asset {
	case AssetNFT:
		collection := orDefault(tx.Contract, p.Collection)
		return p.Exec(func(ctx sdk.Context) error {
			return p.PrizeManager.LockNFT(ctx, tx.From, dest, selector, tx.RaffleID, collection, tx.TokenID)
		})
	case AssetETH:
		return p.Exec(func(ctx sdk.Context) error {
			return p.PrizeManager.LockETH(ctx, tx.From, dest, selector, tx.RaffleID, tx.Amount)
		})
	case AssetToken:
		token := orDefault(tx.Contract, p.PrizeToken)
		return p.Exec(func(ctx sdk.Context) error {
			return p.PrizeManager.LockTokens(ctx, tx.From, dest, selector, tx.RaffleID, token, tx.Amount)
		})
	default:
		return Receipt{}, errorsmod.Wrapf(ErrInvalidTx, "unknown asset %q", tx.Asset)
	}
}

// ClaimPrize hands the prize of a drawn raffle to its winner.
func (n *Network) ClaimPrize(tx RaffleTx) (Receipt, error) {
	return n.Prize.Exec(func(ctx sdk.Context) error {
		return n.Prize.PrizeManager.ClaimPrize(ctx, tx.From, tx.RaffleID)
	})
}

// WithdrawPrize withdraws an unreserved asset from the prize manager.
func (n *Network) WithdrawPrize(tx WithdrawPrizeTx) (Receipt, error) {
	p := n.Prize
	switch tx.Asset {
	case AssetNFT:
		collection := orDefault(tx.Contract, p.Collection)
		return p.Exec(func(ctx sdk.Context) error {
			return p.PrizeManager.WithdrawNFT(ctx, tx.From, collection, tx.TokenID)
		})
	case AssetETH:
		return p.Exec(func(ctx sdk.Context) error {
			return p.PrizeManager.WithdrawETH(ctx, tx.From, tx.Amount)
		})
	case AssetToken:
		token := orDefault(tx.Contract, p.PrizeToken)
		return p.Exec(func(ctx sdk.Context) error {
			return p.PrizeManager.WithdrawTokens(ctx, tx.From, token, tx.Amount)
		})
	default:
		return Receipt{}, errorsmod.Wrapf(ErrInvalidTx, "unknown asset %q", tx.Asset)
	}
}

// CreateRaffle opens a raffle on the ticket chain.
func (n *Network) CreateRaffle(tx CreateRaffleTx) (Receipt, error) {
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		return n.Ticket.TicketManager.CreateRaffle(ctx, tx.From, tx.RaffleID,
			tx.StartTime, tx.EndTime, tx.MinTickets, tx.MaxSupply, tx.MaxHoldings)
	})
}

// BuyTickets buys tickets for From.
func (n *Network) BuyTickets(tx BuyTicketsTx) (Receipt, error) {
	if tx.Value.IsNil() {
		tx.Value = math.ZeroInt()
	}
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		_, err := n.Ticket.TicketManager.BuyTickets(ctx, tx.From, tx.RaffleID, tx.Count, tx.ExpiryBlock, tx.Value, tx.Signature)
		return err
	})
}

// DrawWinner requests randomness for a raffle.
func (n *Network) DrawWinner(tx RaffleTx) (Receipt, error) {
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		_, err := n.Ticket.TicketManager.DrawWinner(ctx, tx.From, tx.RaffleID)
		return err
	})
}

// PropagateWinner sends the drawn winner to the prize manager of this network.
func (n *Network) PropagateWinner(tx RaffleTx) (Receipt, error) {
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		_, err := n.Ticket.TicketManager.PropagateRaffleWinner(ctx, tx.From, n.Prize.ManagerAddr, n.Prize.Selector(), tx.RaffleID)
		return err
	})
}

// CancelRaffle cancels a raffle and notifies its prize manager.
func (n *Network) CancelRaffle(tx RaffleTx) (Receipt, error) {
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		return n.Ticket.TicketManager.CancelRaffle(ctx, tx.From, tx.RaffleID)
	})
}

// RefundPlayers refunds players of a canceled raffle.
func (n *Network) RefundPlayers(tx RefundTx) (Receipt, error) {
	if len(tx.Players) == 0 {
		return Receipt{}, errorsmod.Wrap(ErrInvalidTx, "players are required")
	}
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		return n.Ticket.TicketManager.RefundPlayers(ctx, tx.RaffleID, tx.Players)
	})
}

// WithdrawRevenue sends the released ticket revenue to From.
func (n *Network) WithdrawRevenue(tx AccountTx) (Receipt, error) {
	return n.Ticket.Exec(func(ctx sdk.Context) error {
		_, err := n.Ticket.TicketManager.WithdrawETH(ctx, tx.From)
		return err
	})
}
