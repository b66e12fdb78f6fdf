package testutils

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Deterministic test keys. Never use them outside tests.
const (
	AdminKeyHex   = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	SignerKeyHex  = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	BuyerOneHex   = "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a"
	BuyerTwoHex   = "7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6"
	BuyerThreeHex = "47e179ec197488593b187f80a00eb0da91f1b9d0b13f8733639f19c30a34926a"
)

type Account struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

func MustAccount(hexKey string) Account {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		panic(err)
	}
	return Account{Key: key, Address: crypto.PubkeyToAddress(key.PublicKey)}
}

// Addr builds a readable fixed address from a small integer.
func Addr(n uint64) common.Address {
	return common.BigToAddress(new(big.Int).SetUint64(n))
}
