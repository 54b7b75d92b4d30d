package logic

import (
	"errors"
	"fmt"
	"math/big"
)

// 业务错误, 每个失败前置条件对应一个固定错误
var (
	ErrNotAdmin        = errors.New("caller is not the launchpad admin")
	ErrNotProjectOwner = errors.New("caller is not the project owner")
	ErrAddressZero     = errors.New("address must not be the zero address")
	ErrEmptyAddress    = errors.New("address must not be empty")

	ErrTokenAlreadyListed = errors.New("token already listed")
	ErrMinInvestmentZero  = errors.New("minimum investment must be greater than zero")
	ErrMaxBelowMin        = errors.New("max investment must be greater or equal to min investment")
	ErrMaxAboveHardCap    = errors.New("max investment should be less than or equal to hard cap")
	ErrInvalidProjectId   = errors.New("invalid project id")
	ErrProjectEnded       = errors.New("project has ended")
	ErrProjectNotActive   = errors.New("project is not active")

	ErrInvestmentBelowMinimum  = errors.New("investment amount below minimum")
	ErrInvestmentAboveMaximum  = errors.New("investment amount exceeds maximum")
	ErrNotWhitelisted          = errors.New("address is not whitelisted for this project")
	ErrUserAlreadyWhitelisted  = errors.New("user already whitelisted")
	ErrProjectStillInProgress  = errors.New("project is still in progress")
	ErrProjectNotEnded         = errors.New("project has not ended yet")
	ErrSoftCapNotReached       = errors.New("investment did not reach the soft cap")
	ErrIneligibleForRefund     = errors.New("ineligible for refund")
	ErrAlreadyClaimed          = errors.New("already claimed")
	ErrNotAnInvestor           = errors.New("caller is not an investor in this project")
	ErrFundsAlreadyWithdrawn   = errors.New("raised funds already withdrawn")
	ErrNothingToSweep          = errors.New("hard cap reached, no tokens to sweep")
	ErrSameAsCurrentAdmin      = errors.New("new admin is the same as the current admin")
	ErrPaused                  = errors.New("ledger is paused")
	ErrInvalidLiquidityPercent = errors.New("liquidity percentage out of range")
	ErrCapsInverted            = errors.New("soft cap exceeds hard cap")
)

// HardcapExceededError 投资超出硬顶, 附带剩余可投额度
type HardcapExceededError struct {
	Remaining *big.Int
}

func (e *HardcapExceededError) Error() string {
	return fmt.Sprintf("investment amount exceeds hard cap, remaining %s", e.Remaining.String())
}
