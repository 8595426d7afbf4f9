package v1

import (
	"net/http"
	"paygate/api/internal/domain"
	"paygate/api/internal/repository"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	DEFAULT_PAGE  = 1
	DEFAULT_LIMIT = 100
	MAX_LIMIT     = 100
)

const TOTAL_HEADER = "X-Total"

type blockchainCurrenciesQuery struct {
	CurrencyID        string `form:"currency_id" validate:"max=16"`
	BlockchainKey     string `form:"blockchain_key" validate:"max=32"`
	DepositEnabled    *bool  `form:"deposit_enabled"`
	WithdrawalEnabled *bool  `form:"withdrawal_enabled"`
	Status            string `form:"status" validate:"omitempty,oneof=enabled disabled hidden"`

	Page     int    `form:"page" validate:"omitempty,min=1"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" validate:"omitempty,oneof=id currency_id blockchain_key created_at"`
	Ordering string `form:"ordering" validate:"omitempty,oneof=asc desc"`
}

// nil fields are left as they are
type blockchainCurrencyParams struct {
	CurrencyID          *string                `json:"currency_id" validate:"omitempty,max=16"`
	BlockchainKey       *string                `json:"blockchain_key" validate:"omitempty,max=32"`
	DepositFee          *decimal.Decimal       `json:"deposit_fee" validate:"omitempty,nonnegative"`
	MinDepositAmount    *decimal.Decimal       `json:"min_deposit_amount" validate:"omitempty,nonnegative"`
	MinCollectionAmount *decimal.Decimal       `json:"min_collection_amount" validate:"omitempty,nonnegative"`
	WithdrawFee         *decimal.Decimal       `json:"withdraw_fee" validate:"omitempty,nonnegative"`
	MinWithdrawAmount   *decimal.Decimal       `json:"min_withdraw_amount" validate:"omitempty,nonnegative"`
	WithdrawLimit24h    *decimal.Decimal       `json:"withdraw_limit_24h" validate:"omitempty,nonnegative"`
	WithdrawLimit72h    *decimal.Decimal       `json:"withdraw_limit_72h" validate:"omitempty,nonnegative"`
	DepositEnabled      *bool                  `json:"deposit_enabled"`
	WithdrawalEnabled   *bool                  `json:"withdrawal_enabled"`
	BaseFactor          *int64                 `json:"base_factor" validate:"omitempty,min=1,excluded_with=Subunits"`
	Subunits            *int                   `json:"subunits" validate:"omitempty,min=0,max=18"`
	Status              *string                `json:"status" validate:"omitempty,oneof=enabled disabled hidden"`
	Options             *domain.NetworkOptions `json:"options"`
}

type newBlockchainCurrencyRequest struct {
	blockchainCurrencyParams
	CurrencyID    string `json:"currency_id" validate:"required,max=16"`
	BlockchainKey string `json:"blockchain_key" validate:"required,max=32"`
}

type updateBlockchainCurrencyRequest struct {
	blockchainCurrencyParams
	ID uint `json:"id" validate:"required"`
}

func (p blockchainCurrencyParams) toDomain() domain.BlockchainCurrencyParams {
	return domain.BlockchainCurrencyParams{
		CurrencyID:          p.CurrencyID,
		BlockchainKey:       p.BlockchainKey,
		DepositFee:          p.DepositFee,
		MinDepositAmount:    p.MinDepositAmount,
		MinCollectionAmount: p.MinCollectionAmount,
		WithdrawFee:         p.WithdrawFee,
		MinWithdrawAmount:   p.MinWithdrawAmount,
		WithdrawLimit24h:    p.WithdrawLimit24h,
		WithdrawLimit72h:    p.WithdrawLimit72h,
		DepositEnabled:      p.DepositEnabled,
		WithdrawalEnabled:   p.WithdrawalEnabled,
		BaseFactor:          p.BaseFactor,
		Subunits:            p.Subunits,
		Status:              p.Status,
		Options:             p.Options,
	}
}

func (h *Handler) listBlockchainCurrencies(c *gin.Context) {
	var query blockchainCurrenciesQuery
	if !h.bindQuery(c, &query) {
		return
	}

	if query.Page == 0 {
		query.Page = DEFAULT_PAGE
	}
	if query.Limit == 0 {
		query.Limit = DEFAULT_LIMIT
	}

	list, total, err := h.services.BlockchainCurrencies.List(repository.BlockchainCurrenciesFilter{
		CurrencyID:        query.CurrencyID,
		BlockchainKey:     query.BlockchainKey,
		DepositEnabled:    query.DepositEnabled,
		WithdrawalEnabled: query.WithdrawalEnabled,
		Status:            query.Status,
		OrderBy:           query.OrderBy,
		Ordering:          query.Ordering,
		Page:              query.Page,
		Limit:             query.Limit,
	})
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}
	if list == nil {
		list = []domain.BlockchainCurrencies{}
	}

	c.Header(TOTAL_HEADER, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, responseBlockchainCurrencies{
		ResponseList: domain.ResponseList[domain.BlockchainCurrencies]{Total: total, Page: query.Page, Limit: query.Limit, Items: list},
	})
}

func (h *Handler) getBlockchainCurrency(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responseErr(c, http.StatusBadRequest, domain.KIND_INVALID_PARAMS, domain.ErrMsgBadRequest, "")
		return
	}

	bc, err := h.services.BlockchainCurrencies.Get(uint(id))
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, responseBlockchainCurrency{BlockchainCurrency: bc})
}

func (h *Handler) newBlockchainCurrency(c *gin.Context) {
	var data newBlockchainCurrencyRequest
	if !h.bindJSON(c, &data) {
		return
	}

	params := data.toDomain()
	params.CurrencyID = &data.CurrencyID
	params.BlockchainKey = &data.BlockchainKey

	bc, err := h.services.BlockchainCurrencies.Create(params)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, responseBlockchainCurrency{BlockchainCurrency: bc})
}

func (h *Handler) updateBlockchainCurrency(c *gin.Context) {
	var data updateBlockchainCurrencyRequest
	if !h.bindJSON(c, &data) {
		return
	}

	bc, err := h.services.BlockchainCurrencies.Update(data.ID, data.toDomain())
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, responseBlockchainCurrency{BlockchainCurrency: bc})
}

func (h *Handler) initAdminRoutes(g *gin.RouterGroup) {
	g.GET("/blockchain_currencies", h.listBlockchainCurrencies)
	g.GET("/blockchain_currencies/:id", h.getBlockchainCurrency)
	g.POST("/blockchain_currencies/new", h.newBlockchainCurrency)
	g.POST("/blockchain_currencies/update", h.updateBlockchainCurrency)
}
