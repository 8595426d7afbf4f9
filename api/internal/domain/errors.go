package domain

import (
	"errors"
	"net/http"
)

// provisioning
var (
	ErrMemberNotFound           = errors.New("member not found")
	ErrCurrencyOrNetworkUnknown = errors.New("currency or network unknown")
	ErrDepositDisabled          = errors.New("deposit disabled")
	ErrWalletNotFound           = errors.New("wallet not found")
	ErrRemoteUnsupported        = errors.New("remote generation unsupported by wallet")
	ErrAddressGenerationFailed  = errors.New("address generation failed")
	ErrRequestCancelled         = errors.New("request cancelled")
)

// admin
var (
	ErrNetworkConfigNotFound = errors.New("blockchain currency not found")
	ErrNetworkConfigExists   = errors.New("blockchain currency already exists")
	ErrCurrencyNotFound      = errors.New("currency not found")
	ErrBlockchainNotFound    = errors.New("blockchain not found")
	ErrInvalidParams         = errors.New("invalid params")
)

var ErrInternalServerError = errors.New(ErrMsgInternalServerError)

// kind discriminators, stable across releases
const (
	KIND_MEMBER_NOT_FOUND            = "member_not_found"
	KIND_CURRENCY_OR_NETWORK_UNKNOWN = "currency_or_network_unknown"
	KIND_DEPOSIT_DISABLED            = "deposit_disabled"
	KIND_WALLET_NOT_FOUND            = "wallet_not_found"
	KIND_REMOTE_UNSUPPORTED          = "remote_unsupported"
	KIND_ADDRESS_GENERATION_FAILED   = "address_generation_failed"
	KIND_REQUEST_CANCELLED           = "request_cancelled"
	KIND_NOT_FOUND                   = "not_found"
	KIND_ALREADY_EXISTS              = "already_exists"
	KIND_INVALID_PARAMS              = "invalid_params"
	KIND_ACCESS_ERROR                = "access_error"
	KIND_INTERNAL                    = "internal"
)

var errKinds = []struct {
	err    error
	kind   string
	status int
}{
	{ErrMemberNotFound, KIND_MEMBER_NOT_FOUND, http.StatusNotFound},
	{ErrCurrencyOrNetworkUnknown, KIND_CURRENCY_OR_NETWORK_UNKNOWN, http.StatusNotFound},
	{ErrDepositDisabled, KIND_DEPOSIT_DISABLED, http.StatusUnprocessableEntity},
	{ErrWalletNotFound, KIND_WALLET_NOT_FOUND, http.StatusUnprocessableEntity},
	{ErrRemoteUnsupported, KIND_REMOTE_UNSUPPORTED, http.StatusUnprocessableEntity},
	{ErrAddressGenerationFailed, KIND_ADDRESS_GENERATION_FAILED, http.StatusBadGateway},
	{ErrRequestCancelled, KIND_REQUEST_CANCELLED, http.StatusServiceUnavailable},
	{ErrNetworkConfigNotFound, KIND_NOT_FOUND, http.StatusNotFound},
	{ErrNetworkConfigExists, KIND_ALREADY_EXISTS, http.StatusUnprocessableEntity},
	{ErrCurrencyNotFound, KIND_INVALID_PARAMS, http.StatusUnprocessableEntity},
	{ErrBlockchainNotFound, KIND_INVALID_PARAMS, http.StatusUnprocessableEntity},
	{ErrInvalidParams, KIND_INVALID_PARAMS, http.StatusUnprocessableEntity},
}

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return http.StatusOK
	}

	for _, k := range errKinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

func GetKindByErr(err error) string {
	for _, k := range errKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KIND_INTERNAL
}
