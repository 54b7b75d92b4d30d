package handler

import (
	"net/http"

	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

type SettlementHandler struct {
	settlementLogic *logic.SettlementLogic
}

func NewSettlementHandler(env *logic.Env) *SettlementHandler {
	return &SettlementHandler{
		settlementLogic: logic.NewSettlementLogic(env),
	}
}

// ClaimTokens 投资人领取销售代币
func (h *SettlementHandler) ClaimTokens(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.settlementLogic.ClaimTokens(c.Request.Context(), id, req.Caller)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "tokens claimed", gin.H{"tokens": tokens.String()})
}

// RefundTokens 投资人取回投入
func (h *SettlementHandler) RefundTokens(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.settlementLogic.RefundTokens(c.Request.Context(), id, req.Caller)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "refunded", gin.H{"amount": amount.String()})
}

// WithdrawAmountRaised 项目方提取筹款
func (h *SettlementHandler) WithdrawAmountRaised(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.settlementLogic.WithdrawAmountRaised(c.Request.Context(), id, req.Caller)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "funds withdrawn", gin.H{"amount": amount.String()})
}

// Sweep 项目方回收未售代币
func (h *SettlementHandler) Sweep(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.settlementLogic.Sweep(c.Request.Context(), id, req.Caller, req.To)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "tokens swept", gin.H{"amount": amount.String()})
}
