package api

import (
	"encoding/json"
	"net/http"

	"github.com/pushchain/push-raffle-node/app"
	"github.com/pushchain/push-raffle-node/utils"
)

const maxTxBodyBytes = 64 << 10

// txHandler decodes a T from the request body, submits it with submit and
// writes the receipt.
func txHandler[T any](s *Server, name string, submit func(T) (app.Receipt, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tx T
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&tx); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		receipt, err := submit(tx)
		if err != nil {
			s.logger.Debug().Err(err).Str("tx", name).Msg("transaction rejected")
			s.writeError(w, txErrorStatus(err), err.Error())
			return
		}
		s.logger.Info().Str("tx", name).Int64("height", receipt.Height).Msg("transaction executed")
		s.writeJSON(w, http.StatusOK, QueryResponse{Data: newTxResponse(receipt)})
	}
}

func txErrorStatus(err error) int {
	switch utils.KindOf(err) {
	case utils.KindAuthorization:
		return http.StatusForbidden
	case utils.KindState:
		return http.StatusConflict
	case utils.KindValidation:
		return http.StatusBadRequest
	case utils.KindResource:
		return http.StatusUnprocessableEntity
	case utils.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newTxResponse(receipt app.Receipt) TxResponse {
	events := receipt.Events.ToABCIEvents()
	out := TxResponse{
		Height: receipt.Height,
		Time:   receipt.Time.Unix(),
		Events: make([]EventView, 0, len(events)),
	}
	for _, ev := range events {
		attrs := make(map[string]string, len(ev.Attributes))
		for _, a := range ev.Attributes {
			attrs[a.Key] = a.Value
		}
		out.Events = append(out.Events, EventView{Type: ev.Type, Attributes: attrs})
	}
	return out
}
