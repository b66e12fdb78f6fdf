package types

import (
	"encoding/binary"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Opcode is the leading discriminator byte of a raffle payload.
type Opcode byte

const (
	OpcodePrizeLocked Opcode = 0x00
	OpcodeWinnerDrawn Opcode = 0x01
	OpcodeCancel      Opcode = 0x02
)

func (o Opcode) String() string {
	switch o {
	case OpcodePrizeLocked:
		return "prize_locked"
	case OpcodeWinnerDrawn:
		return "winner_drawn"
	case OpcodeCancel:
		return "cancel"
	default:
		return fmt.Sprintf("opcode(0x%02x)", byte(o))
	}
}

const raffleIDSize = 32

// Payload is one of PrizeLocked, WinnerDrawn or Cancel.
type Payload interface {
	Opcode() Opcode
	Raffle() uint64
	Encode() []byte
}

// PrizeLocked announces a locked prize, prize chain -> ticket chain.
type PrizeLocked struct {
	RaffleID uint64
}

// WinnerDrawn carries the resolved winner, ticket chain -> prize chain.
type WinnerDrawn struct {
	RaffleID uint64
	Winner   common.Address
}

// Cancel asks the receiver to unlock the raffle's prize.
type Cancel struct {
	RaffleID uint64
}

func (PrizeLocked) Opcode() Opcode { return OpcodePrizeLocked }
func (WinnerDrawn) Opcode() Opcode { return OpcodeWinnerDrawn }
func (Cancel) Opcode() Opcode      { return OpcodeCancel }

func (p PrizeLocked) Raffle() uint64 { return p.RaffleID }
func (p WinnerDrawn) Raffle() uint64 { return p.RaffleID }
func (p Cancel) Raffle() uint64      { return p.RaffleID }

func (p PrizeLocked) Encode() []byte {
	return append([]byte{byte(OpcodePrizeLocked)}, encodeRaffleID(p.RaffleID)...)
}

func (p WinnerDrawn) Encode() []byte {
	out := append([]byte{byte(OpcodeWinnerDrawn)}, encodeRaffleID(p.RaffleID)...)
	return append(out, p.Winner.Bytes()...)
}

func (p Cancel) Encode() []byte {
	return append([]byte{byte(OpcodeCancel)}, encodeRaffleID(p.RaffleID)...)
}

// DecodePayload parses a payload. Unknown opcodes and wrong lengths are
// rejected with typed errors; nothing is ever partially decoded.
func DecodePayload(bz []byte) (Payload, error) {
	if len(bz) == 0 {
		return nil, errorsmod.Wrap(ErrMalformedPayload, "empty payload")
	}

	op, body := Opcode(bz[0]), bz[1:]
	switch op {
	case OpcodePrizeLocked, OpcodeCancel:
		if len(body) != raffleIDSize {
			return nil, errorsmod.Wrapf(ErrMalformedPayload, "%s: body length %d", op, len(body))
		}
		id, err := decodeRaffleID(body)
		if err != nil {
			return nil, err
		}
		if op == OpcodeCancel {
			return Cancel{RaffleID: id}, nil
		}
		return PrizeLocked{RaffleID: id}, nil

	case OpcodeWinnerDrawn:
		if len(body) != raffleIDSize+common.AddressLength {
			return nil, errorsmod.Wrapf(ErrMalformedPayload, "%s: body length %d", op, len(body))
		}
		id, err := decodeRaffleID(body[:raffleIDSize])
		if err != nil {
			return nil, err
		}
		return WinnerDrawn{RaffleID: id, Winner: common.BytesToAddress(body[raffleIDSize:])}, nil

	default:
		return nil, errorsmod.Wrapf(ErrUnknownOpcode, "0x%02x", byte(op))
	}
}

func encodeRaffleID(id uint64) []byte {
	out := make([]byte, raffleIDSize)
	binary.BigEndian.PutUint64(out[raffleIDSize-8:], id)
	return out
}

func decodeRaffleID(bz []byte) (uint64, error) {
	word := new(uint256.Int).SetBytes32(bz)
	if !word.IsUint64() {
		return 0, errorsmod.Wrapf(ErrMalformedPayload, "raffle id %s out of range", word.Dec())
	}
	return word.Uint64(), nil
}
