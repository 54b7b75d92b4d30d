package handler

import (
	"net/http"

	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

type InvestHandler struct {
	investLogic *logic.InvestLogic
}

func NewInvestHandler(env *logic.Env) *InvestHandler {
	return &InvestHandler{
		investLogic: logic.NewInvestLogic(env),
	}
}

// Invest 投资
func (h *InvestHandler) Invest(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req InvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.investLogic.Invest(c.Request.Context(), id, req.Caller, amount); err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "investment accepted", nil)
}

// GetUserInvestment 查询投资人累计投资额
func (h *InvestHandler) GetUserInvestment(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	address := c.Param("address")

	amount, err := h.investLogic.GetUserInvestment(id, address)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"investment": amount.String()})
}

// GetInvestments 查询项目全部投资记录
func (h *InvestHandler) GetInvestments(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	investments, err := h.investLogic.GetInvestments(id)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"investments": investments})
}
