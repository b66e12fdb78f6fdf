package core

import (
	"strconv"

	abci "github.com/cometbft/cometbft/abci/types"

	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

// callbackFailures maps request ids whose consumer callback failed to the
// reported error.
func callbackFailures(events []abci.Event) map[uint64]string {
	out := make(map[uint64]string)
	for _, ev := range events {
		if ev.Type != vrftypes.EventTypeRandomWordsFulfilled {
			continue
		}
		var (
			id      uint64
			success = true
			reason  string
		)
		for _, attr := range ev.Attributes {
			switch attr.Key {
			case vrftypes.AttributeKeyRequestID:
				id, _ = strconv.ParseUint(attr.Value, 10, 64)
			case vrftypes.AttributeKeySuccess:
				success = attr.Value == "true"
			case vrftypes.AttributeKeyError:
				reason = attr.Value
			}
		}
		if !success {
			out[id] = reason
		}
	}
	return out
}
