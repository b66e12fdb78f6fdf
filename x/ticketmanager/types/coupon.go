package types

import (
	"crypto/ecdsa"
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Coupon is the purchase authorization co-signed by an operational signer.
type Coupon struct {
	Buyer       common.Address `json:"buyer"`
	Nonce       uint64         `json:"nonce"`
	RaffleID    uint64         `json:"raffle_id"`
	Count       uint16         `json:"count"`
	ExpiryBlock uint64         `json:"expiry_block"`
	Value       math.Int       `json:"value"`
}

// Digest is keccak256 of the packed (address, uint256, uint256, uint16,
// uint256, uint256) encoding of the coupon.
func (c Coupon) Digest() common.Hash {
	var count [2]byte
	binary.BigEndian.PutUint16(count[:], c.Count)

	value := math.ZeroInt()
	if !c.Value.IsNil() {
		value = c.Value
	}

	return crypto.Keccak256Hash(
		c.Buyer.Bytes(),
		word(c.Nonce),
		word(c.RaffleID),
		count[:],
		word(c.ExpiryBlock),
		common.LeftPadBytes(value.BigInt().Bytes(), 32),
	)
}

// Sign produces the 65-byte personal-message signature of the digest, with
// v in {27, 28}.
func (c Coupon) Sign(key *ecdsa.PrivateKey) ([]byte, error) {
	digest := c.Digest()
	sig, err := crypto.Sign(accounts.TextHash(digest.Bytes()), key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// Signer recovers the address that signed the coupon.
func (c Coupon) Signer(sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errorsmod.Wrapf(ErrUnauthorized, "signature length %d", len(sig))
	}
	rsv := make([]byte, crypto.SignatureLength)
	copy(rsv, sig)
	if rsv[crypto.RecoveryIDOffset] >= 27 {
		rsv[crypto.RecoveryIDOffset] -= 27
	}

	digest := c.Digest()
	pub, err := crypto.SigToPub(accounts.TextHash(digest.Bytes()), rsv)
	if err != nil {
		return common.Address{}, errorsmod.Wrap(ErrUnauthorized, err.Error())
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func word(v uint64) []byte {
	out := make([]byte, 32)
	binary.BigEndian.PutUint64(out[24:], v)
	return out
}

// SignCoupon is the operational signer side of a purchase: it signs c with key.
func SignCoupon(key *ecdsa.PrivateKey, c Coupon) ([]byte, error) {
	return c.Sign(key)
}
