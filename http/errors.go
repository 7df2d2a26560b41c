package http

import (
	"errors"
	"go-itc-ledger/bank"
	"go-itc-ledger/currency"
	"net/http"
)

const (
	codeInvalidRequest    = "INVALID_REQUEST"
	codeInvalidAmount     = "INVALID_AMOUNT"
	codeUnknownCurrency   = "UNKNOWN_CURRENCY"
	codeDuplicateName     = "DUPLICATE_NAME"
	codeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	codeWrongPin          = "WRONG_PIN"
	codeInsufficientFunds = "INSUFFICIENT_FUNDS"
	codeInternal          = "INTERNAL"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Role names the transfer side the error refers to
	Role bank.Role `json:"role,omitempty"`
}

// toHTTP maps a domain error to a status code and error code
func toHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, bank.ErrDuplicateName):
		return http.StatusConflict, codeDuplicateName
	case errors.Is(err, bank.ErrAccountNotFound):
		return http.StatusNotFound, codeAccountNotFound
	case errors.Is(err, bank.ErrWrongPin):
		return http.StatusForbidden, codeWrongPin
	case errors.Is(err, bank.ErrInsufficientFunds):
		return http.StatusConflict, codeInsufficientFunds
	case errors.Is(err, bank.ErrInvalidAmount):
		return http.StatusBadRequest, codeInvalidAmount
	case errors.Is(err, currency.ErrUnknownCurrency):
		return http.StatusBadRequest, codeUnknownCurrency
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func (s *Server) writeError(rw http.ResponseWriter, err error) {
	status, code := toHTTP(err)
	s.writeJSON(rw, status, errorResponse{
		Error: err.Error(),
		Code:  code,
		Role:  bank.RoleOf(err),
	})
}
