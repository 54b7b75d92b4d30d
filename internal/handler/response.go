package handler

import (
	"errors"
	"net/http"

	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// BusinessError 业务错误统一映射为 HTTP 状态码
// 超出硬顶的拒绝在 data 中附带剩余额度, 调用方可减额重试
func BusinessError(c *gin.Context, err error) {
	var hardcap *logic.HardcapExceededError
	if errors.As(err, &hardcap) {
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success: false,
			Message: hardcap.Error(),
			Data:    gin.H{"remaining": hardcap.Remaining.String()},
		})
		return
	}

	ErrorResponse(c, statusOf(err), err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, logic.ErrInvalidProjectId):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrNotAdmin),
		errors.Is(err, logic.ErrNotProjectOwner),
		errors.Is(err, logic.ErrNotWhitelisted):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrAddressZero),
		errors.Is(err, logic.ErrEmptyAddress),
		errors.Is(err, logic.ErrMinInvestmentZero),
		errors.Is(err, logic.ErrMaxBelowMin),
		errors.Is(err, logic.ErrMaxAboveHardCap),
		errors.Is(err, logic.ErrInvalidLiquidityPercent),
		errors.Is(err, logic.ErrCapsInverted),
		errors.Is(err, logic.ErrSameAsCurrentAdmin):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrTokenAlreadyListed),
		errors.Is(err, logic.ErrUserAlreadyWhitelisted),
		errors.Is(err, logic.ErrAlreadyClaimed),
		errors.Is(err, logic.ErrFundsAlreadyWithdrawn):
		return http.StatusConflict
	case errors.Is(err, logic.ErrProjectEnded),
		errors.Is(err, logic.ErrProjectNotActive),
		errors.Is(err, logic.ErrProjectStillInProgress),
		errors.Is(err, logic.ErrProjectNotEnded),
		errors.Is(err, logic.ErrSoftCapNotReached),
		errors.Is(err, logic.ErrIneligibleForRefund),
		errors.Is(err, logic.ErrNothingToSweep),
		errors.Is(err, logic.ErrNotAnInvestor),
		errors.Is(err, logic.ErrInvestmentBelowMinimum),
		errors.Is(err, logic.ErrInvestmentAboveMaximum):
		return http.StatusUnprocessableEntity
	case errors.Is(err, logic.ErrPaused):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
