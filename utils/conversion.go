package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// ParseAmount parses a base-10 wei/token amount, e.g. "1000000000000000000".
func ParseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(strings.TrimSpace(s))
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount: %q", s)
	}
	if amount.IsNegative() {
		return math.Int{}, fmt.Errorf("amount must not be negative: %s", s)
	}
	return amount, nil
}

// ParseAddress parses a 0x-prefixed hex address and rejects malformed input.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address: %q", s)
	}
	return common.HexToAddress(s), nil
}

// Ether returns n * 10^18 wei.
func Ether(n int64) math.Int {
	return math.NewInt(n).Mul(math.NewIntWithDecimal(1, 18))
}
