package utils

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections/codec"
	"github.com/ethereum/go-ethereum/common"
)

// AddressKey encodes 20-byte EVM addresses as fixed-width collection keys,
// usable both as a terminal and a non-terminal part of a Pair.
var AddressKey codec.KeyCodec[common.Address] = addressKey{}

type addressKey struct{}

func (addressKey) Encode(buffer []byte, key common.Address) (int, error) {
	return copy(buffer, key[:]), nil
}

func (addressKey) Decode(buffer []byte) (int, common.Address, error) {
	if len(buffer) < common.AddressLength {
		return 0, common.Address{}, fmt.Errorf("%w: address key too short: %d", codec.ErrEncoding, len(buffer))
	}
	return common.AddressLength, common.BytesToAddress(buffer[:common.AddressLength]), nil
}

func (addressKey) Size(common.Address) int { return common.AddressLength }

func (addressKey) EncodeJSON(value common.Address) ([]byte, error) {
	return json.Marshal(value.Hex())
}

func (addressKey) DecodeJSON(b []byte) (common.Address, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return common.Address{}, err
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: invalid address %q", codec.ErrEncoding, s)
	}
	return common.HexToAddress(s), nil
}

func (addressKey) Stringify(key common.Address) string { return key.Hex() }

func (addressKey) KeyType() string { return "address" }

func (k addressKey) EncodeNonTerminal(buffer []byte, key common.Address) (int, error) {
	return k.Encode(buffer, key)
}

func (k addressKey) DecodeNonTerminal(buffer []byte) (int, common.Address, error) {
	return k.Decode(buffer)
}

func (k addressKey) SizeNonTerminal(key common.Address) int { return k.Size(key) }

// JSONValue stores plain Go structs as JSON in collections, for state types
// that have no protobuf definition.
func JSONValue[T any]() codec.ValueCodec[T] { return jsonValue[T]{} }

type jsonValue[T any] struct{}

func (jsonValue[T]) Encode(value T) ([]byte, error) { return json.Marshal(value) }

func (jsonValue[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

func (j jsonValue[T]) EncodeJSON(value T) ([]byte, error) { return j.Encode(value) }

func (j jsonValue[T]) DecodeJSON(b []byte) (T, error) { return j.Decode(b) }

func (jsonValue[T]) Stringify(value T) string {
	bz, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(bz)
}

func (jsonValue[T]) ValueType() string { return fmt.Sprintf("json/%T", *new(T)) }
