package logic

import (
	"context"
	"fmt"
	"math/big"

	"github.com/YatharthAndharia/Launchpad/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// SettlementLogic 清算业务逻辑: 领取, 退款, 提取筹款, 回收未售代币
type SettlementLogic struct {
	env *Env
}

// NewSettlementLogic 创建清算业务逻辑
func NewSettlementLogic(env *Env) *SettlementLogic {
	return &SettlementLogic{env: env}
}

// ClaimTokens 达到软顶且项目结束后, 投资人按比例领取销售代币
// 领取额 = floor(投资额 * maxCap / hardCap), 截断余数留待 Sweep 回收
func (s *SettlementLogic) ClaimTokens(ctx context.Context, projectId int64, caller string) (*big.Int, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	state, err := loadState(s.env.DB)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, ErrPaused
	}
	project, err := loadProject(s.env.DB, projectId)
	if err != nil {
		return nil, err
	}
	// 已取消的项目代币已退回项目方, 领取路径永久关闭
	if !project.IsActive {
		return nil, ErrProjectNotActive
	}

	investment, err := s.loadInvestment(projectId, callerAddr)
	if err != nil {
		return nil, err
	}
	if investment.Claimed {
		return nil, ErrAlreadyClaimed
	}
	if !projectSuccessful(project) {
		return nil, ErrSoftCapNotReached
	}
	if !projectOver(project, s.env.now()) {
		return nil, ErrProjectNotEnded
	}

	tokens := payout(project, investment.Amount)
	saleToken := common.HexToAddress(project.SaleToken)

	err = s.env.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.InvestmentModel{}).
			Where("id = ?", investment.Id).
			Update("claimed", true).Error; err != nil {
			return fmt.Errorf("更新领取标志失败: %w", err)
		}
		if err := s.env.Tokens.Transfer(ctx, saleToken, callerAddr, tokens); err != nil {
			return fmt.Errorf("发放销售代币失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventTokensClaimed,
		Address:   callerAddr.Hex(),
		Amount:    tokens.String(),
	})
	return tokens, nil
}

// RefundTokens 未达软顶或项目被取消时, 投资人取回全部投入
// 与领取共用 Claimed 标志, 两条路径互斥且各自只能发生一次
func (s *SettlementLogic) RefundTokens(ctx context.Context, projectId int64, caller string) (*big.Int, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	state, err := loadState(s.env.DB)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, ErrPaused
	}
	project, err := loadProject(s.env.DB, projectId)
	if err != nil {
		return nil, err
	}

	investment, err := s.loadInvestment(projectId, callerAddr)
	if err != nil {
		return nil, err
	}
	if investment.Claimed {
		return nil, ErrAlreadyClaimed
	}
	// 已取消的项目无条件可退款, 否则要求未达软顶且窗口关闭
	if project.IsActive {
		if projectSuccessful(project) {
			return nil, ErrIneligibleForRefund
		}
		if s.env.now() <= project.EndTime {
			return nil, ErrProjectNotEnded
		}
	}

	amount := investment.Amount.BigInt()
	err = s.env.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.InvestmentModel{}).
			Where("id = ?", investment.Id).
			Update("claimed", true).Error; err != nil {
			return fmt.Errorf("更新退款标志失败: %w", err)
		}
		if err := s.env.Vault.Pay(ctx, callerAddr, amount); err != nil {
			return fmt.Errorf("退回投资额失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventRefunded,
		Address:   callerAddr.Hex(),
		Amount:    amount.String(),
	})
	return amount, nil
}

// WithdrawAmountRaised 项目结束后项目方提取全部筹款
func (s *SettlementLogic) WithdrawAmountRaised(ctx context.Context, projectId int64, caller string) (*big.Int, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	project, err := loadProject(s.env.DB, projectId)
	if err != nil {
		return nil, err
	}
	if project.Owner != callerAddr.Hex() {
		return nil, ErrNotProjectOwner
	}
	if !project.IsActive {
		return nil, ErrProjectNotActive
	}
	if !projectOver(project, s.env.now()) {
		return nil, ErrProjectStillInProgress
	}
	if project.FundsWithdrawn {
		return nil, ErrFundsAlreadyWithdrawn
	}

	amount := project.TotalRaised.BigInt()
	err = s.env.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProjectModel{}).
			Where("id = ?", projectId).
			Update("funds_withdrawn", true).Error; err != nil {
			return fmt.Errorf("更新提款标志失败: %w", err)
		}
		if amount.Sign() > 0 {
			if err := s.env.Vault.Pay(ctx, callerAddr, amount); err != nil {
				return fmt.Errorf("划转筹款失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventFundsWithdrawn,
		Address:   callerAddr.Hex(),
		Amount:    amount.String(),
	})
	return amount, nil
}

// Sweep 项目结束且未触及硬顶时, 项目方回收未售出的销售代币
// 达到软顶时先为未领取的投资人预留应付额, 只回收剩余部分
func (s *SettlementLogic) Sweep(ctx context.Context, projectId int64, caller, to string) (*big.Int, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return nil, err
	}
	toAddr, err := parseAddress(to)
	if err != nil {
		return nil, err
	}
	state, err := loadState(s.env.DB)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, ErrPaused
	}
	project, err := loadProject(s.env.DB, projectId)
	if err != nil {
		return nil, err
	}
	if project.Owner != callerAddr.Hex() {
		return nil, ErrNotProjectOwner
	}
	if !project.IsActive {
		return nil, ErrProjectNotActive
	}
	if !projectOver(project, s.env.now()) {
		return nil, ErrProjectStillInProgress
	}
	if project.TotalRaised.Cmp(project.HardCap) >= 0 {
		return nil, ErrNothingToSweep
	}

	saleToken := common.HexToAddress(project.SaleToken)
	balance, err := s.env.Tokens.BalanceOf(ctx, saleToken, s.env.Custody)
	if err != nil {
		return nil, fmt.Errorf("查询托管余额失败: %w", err)
	}

	sweepAmount := new(big.Int).Set(balance)
	if projectSuccessful(project) {
		// 未领取投资人的应付代币留在托管中
		var pending []model.InvestmentModel
		if err := s.env.DB.Where("project_id = ? AND claimed = ?", projectId, false).
			Find(&pending).Error; err != nil {
			return nil, fmt.Errorf("查询投资记录失败: %w", err)
		}
		reserved := new(big.Int)
		for _, investment := range pending {
			reserved.Add(reserved, payout(project, investment.Amount))
		}
		sweepAmount.Sub(sweepAmount, reserved)
	}

	if sweepAmount.Sign() > 0 {
		if err := s.env.Tokens.Transfer(ctx, saleToken, toAddr, sweepAmount); err != nil {
			return nil, fmt.Errorf("回收销售代币失败: %w", err)
		}
	} else {
		sweepAmount.SetInt64(0)
	}

	s.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventTokensSwept,
		Address:   toAddr.Hex(),
		Amount:    sweepAmount.String(),
	})
	return sweepAmount, nil
}

func (s *SettlementLogic) loadInvestment(projectId int64, investor common.Address) (*model.InvestmentModel, error) {
	var investment model.InvestmentModel
	if err := s.env.DB.Where("project_id = ? AND address = ?", projectId, investor.Hex()).
		First(&investment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotAnInvestor
		}
		return nil, fmt.Errorf("查询投资记录失败: %w", err)
	}
	if investment.Amount.Sign() == 0 {
		return nil, ErrNotAnInvestor
	}
	return &investment, nil
}
