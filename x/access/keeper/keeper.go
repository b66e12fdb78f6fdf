package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/utils"
	"github.com/pushchain/push-raffle-node/x/access/types"
)

// Keeper is the role registry of a single contract. Each contract module owns
// its own instance backed by its own store.
type Keeper struct {
	logger   log.Logger
	contract string

	Schema collections.Schema
	Roles  collections.Map[common.Address, []byte] // address -> 32-byte role bitmask
}

// NewKeeper creates a new access control Keeper for the named contract.
func NewKeeper(storeService storetypes.KVStoreService, logger log.Logger, contract string) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName, "contract", contract)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:   logger,
		contract: contract,
		Roles:    collections.NewMap(sb, types.RolesKey, types.RolesName, utils.AddressKey, collections.BytesValue),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

// InitGenesis grants the admin role to the deployer.
func (k Keeper) InitGenesis(ctx context.Context, admin common.Address) error {
	if admin == (common.Address{}) {
		return types.ErrZeroAddress
	}
	return k.setRoles(ctx, admin, types.NewRoleSet(types.RoleAdmin))
}

// GetRoles returns the role set of addr.
func (k Keeper) GetRoles(ctx context.Context, addr common.Address) (types.RoleSet, error) {
	bz, err := k.Roles.Get(ctx, addr)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.RoleSet{}, nil
		}
		return types.RoleSet{}, err
	}
	return types.RoleSetFromBytes(bz), nil
}

// HasRole reports whether addr holds role.
func (k Keeper) HasRole(ctx context.Context, addr common.Address, role types.Role) (bool, error) {
	roles, err := k.GetRoles(ctx, addr)
	if err != nil {
		return false, err
	}
	return roles.Has(role), nil
}

// CheckRole returns ErrMissingRole unless addr holds role.
func (k Keeper) CheckRole(ctx context.Context, addr common.Address, role types.Role) error {
	ok, err := k.HasRole(ctx, addr, role)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrapf(types.ErrMissingRole, "%s lacks %s on %s", addr.Hex(), role, k.contract)
	}
	return nil
}

// SetRole grants (status true) or revokes role for user. Admin only.
func (k Keeper) SetRole(ctx context.Context, caller, user common.Address, role types.Role, status bool) error {
	if err := k.CheckRole(ctx, caller, types.RoleAdmin); err != nil {
		return err
	}
	if user == (common.Address{}) {
		return types.ErrZeroAddress
	}

	roles, err := k.GetRoles(ctx, user)
	if err != nil {
		return err
	}
	if status {
		roles = roles.With(role)
	} else {
		roles = roles.Without(role)
	}
	if err := k.setRoles(ctx, user, roles); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewRoleUpdatedEvent(k.contract, user, role, status))
	k.Logger().Info("role updated", "user", user.Hex(), "role", role.String(), "status", status)
	return nil
}

func (k Keeper) setRoles(ctx context.Context, addr common.Address, roles types.RoleSet) error {
	if roles.IsEmpty() {
		return k.Roles.Remove(ctx, addr)
	}
	return k.Roles.Set(ctx, addr, roles.Bytes())
}
