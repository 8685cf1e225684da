package server

import (
	"encoding/json"
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"

	gurutypes "github.com/GPTx-global/guru-dataoracle/types"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

var statusByError = []struct {
	err    *errorsmod.Error
	status int
}{
	{types.ErrInsufficientPayment, http.StatusPaymentRequired},
	{types.ErrInsufficientStake, http.StatusPaymentRequired},
	{types.ErrUnauthorized, http.StatusForbidden},
	{types.ErrInvalidSubscription, http.StatusForbidden},
	{types.ErrOracleNotFound, http.StatusNotFound},
	{types.ErrDataNotFound, http.StatusNotFound},
	{types.ErrAlreadyVoted, http.StatusConflict},
}

// httpStatus maps a rejected call to a status code. Registered errors that are
// not listed are client errors; anything unregistered is internal.
func httpStatus(err error) int {
	for _, s := range statusByError {
		if errors.Is(err, s.err) {
			return s.status
		}
	}

	codespace, _, _ := errorsmod.ABCIInfo(err, false)
	if codespace == errorsmod.UndefinedCodespace {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	writeJSON(w, httpStatus(err), gurutypes.ErrorResponse{
		Code:      code,
		Codespace: codespace,
		Reason:    types.Reason(err),
		Error:     err.Error(),
	})
}

// writeBadRequest reports a request that could not be decoded into a message.
func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, gurutypes.ErrorResponse{
		Reason: types.Reason(err),
		Error:  err.Error(),
	})
}

// writeNotFound reports the absence of a record.
func writeNotFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, gurutypes.ErrorResponse{
		Reason: types.ReasonNotFound,
		Error:  what + " not found",
	})
}
