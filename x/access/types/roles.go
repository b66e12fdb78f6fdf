package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Role is the index of a flag in the 256-bit role set.
type Role uint8

const (
	// RoleAdmin may grant and revoke every role and runs privileged operations.
	RoleAdmin Role = 0
	// RoleUtility is the operational signer role that co-signs purchase coupons.
	RoleUtility Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUtility:
		return "utility"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// RoleSet is a fixed-width bit-flag set of roles.
type RoleSet struct {
	bits uint256.Int
}

// NewRoleSet returns a set holding the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.With(r)
	}
	return s
}

// RoleSetFromBytes decodes a 32-byte big-endian bitmask.
func RoleSetFromBytes(bz []byte) RoleSet {
	var s RoleSet
	s.bits.SetBytes(bz)
	return s
}

func (s RoleSet) Bytes() []byte {
	b := s.bits.Bytes32()
	return b[:]
}

func (s RoleSet) flag(r Role) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(r))
}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool {
	return !new(uint256.Int).And(&s.bits, s.flag(r)).IsZero()
}

// With returns a copy of the set with r added.
func (s RoleSet) With(r Role) RoleSet {
	var out RoleSet
	out.bits.Or(&s.bits, s.flag(r))
	return out
}

// Without returns a copy of the set with r removed.
func (s RoleSet) Without(r Role) RoleSet {
	var out RoleSet
	mask := new(uint256.Int).Not(s.flag(r))
	out.bits.And(&s.bits, mask)
	return out
}

func (s RoleSet) IsEmpty() bool {
	return s.bits.IsZero()
}

// Hex returns the bitmask as a 0x-prefixed hex number.
func (s RoleSet) Hex() string {
	return s.bits.Hex()
}
