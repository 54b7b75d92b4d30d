package handler

import (
	"net/http"
	"strconv"

	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	adminLogic   *logic.AdminLogic
}

func NewProjectHandler(env *logic.Env) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(env),
		adminLogic:   logic.NewAdminLogic(env),
	}
}

// projectId 解析路径中的项目编号
func projectId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return 0, false
	}
	return id, true
}

// ListProject 上架项目
func (h *ProjectHandler) ListProject(c *gin.Context) {
	var req ListProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	params := &logic.ListProjectParams{
		Owner:                 req.Owner,
		SaleToken:             req.SaleToken,
		LiquidityPercentToken: req.LiquidityPercentToken,
		LiquidityPercentEth:   req.LiquidityPercentEth,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		Whitelist:             req.Whitelist,
	}
	var err error
	if params.MinInvestment, err = parseAmount(req.MinInvestment); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if params.MaxInvestment, err = parseAmount(req.MaxInvestment); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if params.SoftCap, err = parseAmount(req.SoftCap); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if params.HardCap, err = parseAmount(req.HardCap); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if params.MaxCap, err = parseAmount(req.MaxCap); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.projectLogic.ListProject(c.Request.Context(), params)
	if err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "project listed", gin.H{"project_id": id})
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetProjects()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"projects": projects})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"project": project})
}

// GetProjectStats 获取项目统计
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	stats, err := h.projectLogic.GetProjectStats(id)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"stats": stats})
}

// GetTotalRaised 获取项目累计筹款额
func (h *ProjectHandler) GetTotalRaised(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	total, err := h.projectLogic.GetTotalRaised(id)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"total_raised": total.String()})
}

// GetWhitelist 获取项目白名单
func (h *ProjectHandler) GetWhitelist(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	addresses, err := h.projectLogic.GetWhitelist(id)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"whitelist": addresses})
}

// AddWhitelistUser 项目方追加白名单地址
func (h *ProjectHandler) AddWhitelistUser(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req WhitelistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.projectLogic.AddUserForProject(id, req.Caller, req.Address); err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "user whitelisted", nil)
}

// CancelProject 管理员取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.projectLogic.CancelProject(c.Request.Context(), id, req.Caller); err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "project cancelled", nil)
}

// GetProjectEvents 查询项目事件流水
func (h *ProjectHandler) GetProjectEvents(c *gin.Context) {
	id, ok := projectId(c)
	if !ok {
		return
	}
	events, err := h.adminLogic.GetProjectEvents(id)
	if err != nil {
		BusinessError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", gin.H{"events": events})
}
