package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pushchain/push-raffle-node/x/access/types"
)

func TestRoleSet(t *testing.T) {
	s := types.NewRoleSet(types.RoleAdmin)
	require.True(t, s.Has(types.RoleAdmin))
	require.False(t, s.Has(types.RoleUtility))

	s = s.With(types.RoleUtility).With(types.Role(255))
	require.True(t, s.Has(types.RoleUtility))
	require.True(t, s.Has(types.Role(255)))

	restored := types.RoleSetFromBytes(s.Bytes())
	require.Equal(t, s.Hex(), restored.Hex())

	s = s.Without(types.RoleAdmin).Without(types.RoleUtility).Without(types.Role(255))
	require.True(t, s.IsEmpty())
	require.Len(t, s.Bytes(), 32)
}
