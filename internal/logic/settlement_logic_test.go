package logic

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimTokens(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	fundAndInvest(t, env, book, id, investorOne, 10)

	// 软顶已达但窗口未关, 不能领取
	_, err := settlement.ClaimTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrProjectNotEnded)

	clock.advance(4000)
	tokens, err := settlement.ClaimTokens(ctx, id, investorOne)
	require.NoError(t, err)
	assert.Equal(t, int64(20), tokens.Int64())

	balance, err := book.BalanceOf(ctx, common.HexToAddress(saleToken), common.HexToAddress(investorOne))
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance.Int64())

	// 不能重复领取
	_, err = settlement.ClaimTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	// 领取后退款路径也关闭
	_, err = settlement.RefundTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimChecks(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	_, err := settlement.ClaimTokens(ctx, 99, investorOne)
	assert.ErrorIs(t, err, ErrInvalidProjectId)

	fundAndInvest(t, env, book, id, investorOne, 5)
	_, err = settlement.ClaimTokens(ctx, id, outsider)
	assert.ErrorIs(t, err, ErrNotAnInvestor)

	// 软顶(8)未达, 领取被拒
	clock.advance(4000)
	_, err = settlement.ClaimTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrSoftCapNotReached)
}

func TestClaimAtHardCapEndsEarly(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	fundAndInvest(t, env, book, id, investorOne, 10)
	fundAndInvest(t, env, book, id, investorTwo, 10)

	// 硬顶达成视为提前结束, 无需等窗口关闭
	tokensOne, err := settlement.ClaimTokens(ctx, id, investorOne)
	require.NoError(t, err)
	tokensTwo, err := settlement.ClaimTokens(ctx, id, investorTwo)
	require.NoError(t, err)

	// 满额筹款时两人分完全部 maxCap
	assert.Equal(t, int64(20), tokensOne.Int64())
	assert.Equal(t, int64(20), tokensTwo.Int64())
	custodyTokens, err := book.BalanceOf(ctx, common.HexToAddress(saleToken), env.Custody)
	require.NoError(t, err)
	assert.Equal(t, int64(0), custodyTokens.Int64())
}

func TestRefundTokens(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	fundAndInvest(t, env, book, id, investorOne, 5)

	// 软顶未达但窗口未关, 退款要等
	_, err := settlement.RefundTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrProjectNotEnded)

	clock.advance(4000)
	amount, err := settlement.RefundTokens(ctx, id, investorOne)
	require.NoError(t, err)
	assert.Equal(t, int64(5), amount.Int64())
	assert.Equal(t, int64(5), book.NativeBalanceOf(common.HexToAddress(investorOne)).Int64())

	_, err = settlement.RefundTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	// 退款后领取路径也关闭
	_, err = settlement.ClaimTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestRefundIneligibleWhenSoftCapMet(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)

	fundAndInvest(t, env, book, id, investorOne, 8)

	// 软顶检查先于窗口检查
	_, err := NewSettlementLogic(env).RefundTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrIneligibleForRefund)

	clock.advance(4000)
	_, err = NewSettlementLogic(env).RefundTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrIneligibleForRefund)
}

func TestRefundAfterCancelIgnoresWindowAndSoftCap(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)

	fundAndInvest(t, env, book, id, investorOne, 8)
	require.NoError(t, NewProjectLogic(env).CancelProject(ctx, id, adminAddr))

	// 已取消项目在窗口内且达软顶也可退款
	amount, err := NewSettlementLogic(env).RefundTokens(ctx, id, investorOne)
	require.NoError(t, err)
	assert.Equal(t, int64(8), amount.Int64())

	// 但领取路径永久关闭
	_, err = NewSettlementLogic(env).ClaimTokens(ctx, id, investorTwo)
	assert.ErrorIs(t, err, ErrProjectNotActive)
}

func TestWithdrawAmountRaised(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	fundAndInvest(t, env, book, id, investorOne, 10)

	_, err := settlement.WithdrawAmountRaised(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrNotProjectOwner)
	_, err = settlement.WithdrawAmountRaised(ctx, 99, ownerAddr)
	assert.ErrorIs(t, err, ErrInvalidProjectId)
	_, err = settlement.WithdrawAmountRaised(ctx, id, ownerAddr)
	assert.ErrorIs(t, err, ErrProjectStillInProgress)

	clock.advance(4000)
	amount, err := settlement.WithdrawAmountRaised(ctx, id, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(10), amount.Int64())
	assert.Equal(t, int64(10), book.NativeBalanceOf(common.HexToAddress(ownerAddr)).Int64())

	// 重复提取是硬错误
	_, err = settlement.WithdrawAmountRaised(ctx, id, ownerAddr)
	assert.ErrorIs(t, err, ErrFundsAlreadyWithdrawn)
}

func TestWithdrawAtHardCapEndsEarly(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)

	fundAndInvest(t, env, book, id, investorOne, 10)
	fundAndInvest(t, env, book, id, investorTwo, 10)

	// 硬顶达成后无需等窗口关闭即可提取
	amount, err := NewSettlementLogic(env).WithdrawAmountRaised(ctx, id, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(20), amount.Int64())
}

func TestSweepWithNoInvestors(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)

	clock.advance(4000)
	// 无人投资时全部 maxCap 归还
	amount, err := NewSettlementLogic(env).Sweep(ctx, id, ownerAddr, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(40), amount.Int64())

	balance, err := book.BalanceOf(ctx, common.HexToAddress(saleToken), common.HexToAddress(ownerAddr))
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance.Int64())
}

func TestSweepReservesUnclaimedPayouts(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	// 达软顶(8)但未达硬顶(20): 投资人应得 2*8=16, 其余可回收
	fundAndInvest(t, env, book, id, investorOne, 8)
	clock.advance(4000)

	amount, err := settlement.Sweep(ctx, id, ownerAddr, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(24), amount.Int64())

	// 预留的应得额仍可领取
	tokens, err := settlement.ClaimTokens(ctx, id, investorOne)
	require.NoError(t, err)
	assert.Equal(t, int64(16), tokens.Int64())
}

func TestSweepChecks(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	_, err := settlement.Sweep(ctx, id, ownerAddr, "0x0000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrAddressZero)
	_, err = settlement.Sweep(ctx, 99, ownerAddr, ownerAddr)
	assert.ErrorIs(t, err, ErrInvalidProjectId)
	_, err = settlement.Sweep(ctx, id, investorOne, ownerAddr)
	assert.ErrorIs(t, err, ErrNotProjectOwner)
	_, err = settlement.Sweep(ctx, id, ownerAddr, ownerAddr)
	assert.ErrorIs(t, err, ErrProjectStillInProgress)

	// 硬顶达成时无票可回收
	fundAndInvest(t, env, book, id, investorOne, 10)
	fundAndInvest(t, env, book, id, investorTwo, 10)
	_, err = settlement.Sweep(ctx, id, ownerAddr, ownerAddr)
	assert.ErrorIs(t, err, ErrNothingToSweep)
}

func TestSettlementRejectedWhilePaused(t *testing.T) {
	env, book, clock := newTestEnv(t)
	ctx := context.Background()
	id := listDefault(t, env, book, clock)
	settlement := NewSettlementLogic(env)

	fundAndInvest(t, env, book, id, investorOne, 10)
	clock.advance(4000)
	require.NoError(t, NewAdminLogic(env).Pause(adminAddr))

	_, err := settlement.ClaimTokens(ctx, id, investorOne)
	assert.ErrorIs(t, err, ErrPaused)
	_, err = settlement.Sweep(ctx, id, ownerAddr, ownerAddr)
	assert.ErrorIs(t, err, ErrPaused)

	// 提取筹款不受暂停门限制
	amount, err := settlement.WithdrawAmountRaised(ctx, id, ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(10), amount.Int64())
}
