package v1

import (
	"net/http"
	"paygate/api/internal/domain"
	"paygate/api/internal/service"

	"github.com/gin-gonic/gin"
)

type depositAddressRequest struct {
	UID           string `json:"uid" validate:"required,max=32"`
	Currency      string `json:"currency" validate:"required,max=16"`
	BlockchainKey string `json:"blockchain_key" validate:"required,max=32"`
	Remote        *bool  `json:"remote"`
}

func (h *Handler) newDepositAddress(c *gin.Context) {
	var data depositAddressRequest
	if !h.bindJSON(c, &data) {
		return
	}

	exists, err := h.services.Members.Exists(data.UID)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}
	if !exists {
		h.responseServiceErr(c, domain.ErrMemberNotFound)
		return
	}

	view, err := h.services.PaymentAddresses.Provision(c.Request.Context(), service.ProvisionRequest{
		UID:           data.UID,
		CurrencyID:    data.Currency,
		BlockchainKey: data.BlockchainKey,
		Remote:        data.Remote,
	})
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	switch view.Status {
	case domain.PROVISION_NOT_READY:
		c.JSON(http.StatusAccepted, responsePaymentAddress{Msg: domain.ErrMsgNotReady, PaymentAddress: view})
	case domain.PROVISION_CREATED:
		c.JSON(http.StatusCreated, responsePaymentAddress{PaymentAddress: view})
	default:
		c.JSON(http.StatusOK, responsePaymentAddress{PaymentAddress: view})
	}
}

func (h *Handler) initManagementRoutes(g *gin.RouterGroup) {
	g.POST("/deposit_address/new", h.newDepositAddress)
}
