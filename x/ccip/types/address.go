package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
)

// EncodeAddress abi-encodes an address as a 32-byte left-padded word.
func EncodeAddress(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

// DecodeAddress decodes an abi-encoded address. The 12 padding bytes must be zero.
func DecodeAddress(bz []byte) (common.Address, error) {
	if len(bz) != 32 {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidAddress, "length %d", len(bz))
	}
	for _, b := range bz[:12] {
		if b != 0 {
			return common.Address{}, errorsmod.Wrap(ErrInvalidAddress, "dirty padding")
		}
	}
	return common.BytesToAddress(bz[12:]), nil
}
