package handler

import (
	"net/http"

	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminLogic *logic.AdminLogic
}

func NewAdminHandler(env *logic.Env) *AdminHandler {
	return &AdminHandler{
		adminLogic: logic.NewAdminLogic(env),
	}
}

// GetState 查询账本全局状态
func (h *AdminHandler) GetState(c *gin.Context) {
	state, err := h.adminLogic.GetState()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"state": state})
}

// ChangeAdmin 轮换管理员
func (h *AdminHandler) ChangeAdmin(c *gin.Context) {
	var req ChangeAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.adminLogic.ChangeAdmin(req.Caller, req.NewAdmin); err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "admin changed", nil)
}

// Pause 暂停账本
func (h *AdminHandler) Pause(c *gin.Context) {
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.adminLogic.Pause(req.Caller); err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "paused", nil)
}

// Unpause 恢复账本
func (h *AdminHandler) Unpause(c *gin.Context) {
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.adminLogic.Unpause(req.Caller); err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "unpaused", nil)
}
