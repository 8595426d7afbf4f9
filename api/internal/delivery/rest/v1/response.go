package v1

import (
	"net/http"
	"paygate/api/internal/domain"
	"paygate/api/internal/logger"

	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Kind    string `json:"kind"`
	Msg     string `json:"msg"`
}

type responsePaymentAddress struct {
	Error          bool                `json:"error"`
	Msg            string              `json:"msg,omitempty"`
	PaymentAddress *domain.AddressView `json:"payment_address"`
}

type responseBlockchainCurrency struct {
	Error              bool                         `json:"error"`
	BlockchainCurrency *domain.BlockchainCurrencies `json:"blockchain_currency"`
}

type responseBlockchainCurrencies struct {
	Error bool `json:"error"`
	domain.ResponseList[domain.BlockchainCurrencies]
}

func responseErr(c *gin.Context, statusCode int, kind, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, kind, msg})
}

// maps service errors to status and kind, unknown errors are logged and hidden
func (h *Handler) responseServiceErr(c *gin.Context, err error) {
	kind := domain.GetKindByErr(err)
	if kind == domain.KIND_INTERNAL {
		errorID := h.log.TemplAdminErr("request failed", logger.GenErrorId(), c.Request.RequestURI, err)
		responseErr(c, http.StatusInternalServerError, kind, domain.ErrMsgInternalServerError, errorID)
		return
	}
	responseErr(c, domain.GetStatusByErr(err), kind, err.Error(), "")
}
