package types

import (
	"encoding/binary"
)

// EVMExtraArgsV1Tag is bytes4(keccak256("CCIP EVMExtraArgsV1")).
var EVMExtraArgsV1Tag = []byte{0x97, 0xa6, 0x57, 0xc9}

// EncodeExtraArgsV1 builds the generic extra args carrying a destination gas
// limit. Contracts store and forward extra args without interpreting them.
func EncodeExtraArgsV1(gasLimit uint64) []byte {
	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], gasLimit)
	return append(append([]byte{}, EVMExtraArgsV1Tag...), word...)
}
