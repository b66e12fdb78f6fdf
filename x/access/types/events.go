package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTypeRoleUpdated = "role_updated"

	AttributeKeyContract = "contract"
	AttributeKeyUser     = "user"
	AttributeKeyRole     = "role"
	AttributeKeyStatus   = "status"
)

func NewRoleUpdatedEvent(contract string, user common.Address, role Role, status bool) sdk.Event {
	return sdk.NewEvent(
		EventTypeRoleUpdated,
		sdk.NewAttribute(AttributeKeyContract, contract),
		sdk.NewAttribute(AttributeKeyUser, user.Hex()),
		sdk.NewAttribute(AttributeKeyRole, strconv.Itoa(int(role))),
		sdk.NewAttribute(AttributeKeyStatus, strconv.FormatBool(status)),
	)
}
