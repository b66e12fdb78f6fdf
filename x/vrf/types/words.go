package types

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// DeriveWords expands a request id into n pseudo-random words,
// word i being keccak256(requestId ‖ i) over 32-byte words.
func DeriveWords(requestID uint64, n uint32) []*uint256.Int {
	id := uint256.NewInt(requestID).Bytes32()
	words := make([]*uint256.Int, n)
	for i := uint32(0); i < n; i++ {
		idx := uint256.NewInt(uint64(i)).Bytes32()
		words[i] = new(uint256.Int).SetBytes(crypto.Keccak256(id[:], idx[:]))
	}
	return words
}
