package logic

import (
	"context"
	"fmt"
	"math/big"

	"github.com/YatharthAndharia/Launchpad/internal/model"
	"gorm.io/gorm"
)

// InvestLogic 投资业务逻辑
type InvestLogic struct {
	env *Env
}

// NewInvestLogic 创建投资业务逻辑
func NewInvestLogic(env *Env) *InvestLogic {
	return &InvestLogic{env: env}
}

// Invest 接受原生资产投资, 前置检查按固定顺序执行
// 超出硬顶的拒绝附带剩余额度, 调用方可减额重试
func (l *InvestLogic) Invest(ctx context.Context, projectId int64, investor string, amount *big.Int) error {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	investorAddr, err := parseAddress(investor)
	if err != nil {
		return err
	}
	state, err := loadState(l.env.DB)
	if err != nil {
		return err
	}
	if state.Paused {
		return ErrPaused
	}
	project, err := loadProject(l.env.DB, projectId)
	if err != nil {
		return err
	}
	if !project.IsActive {
		return ErrProjectNotActive
	}
	now := l.env.now()
	// endTime 为 0 或已过期都视为已结束
	if now > project.EndTime {
		return ErrProjectEnded
	}

	var whitelisted int64
	if err := l.env.DB.Model(&model.WhitelistEntryModel{}).
		Where("project_id = ? AND address = ?", projectId, investorAddr.Hex()).
		Count(&whitelisted).Error; err != nil {
		return fmt.Errorf("查询白名单失败: %w", err)
	}
	if whitelisted == 0 {
		return ErrNotWhitelisted
	}

	if amount == nil || amount.Cmp(project.MinInvestment.BigInt()) < 0 {
		return ErrInvestmentBelowMinimum
	}

	var investment model.InvestmentModel
	existing := true
	if err := l.env.DB.Where("project_id = ? AND address = ?", projectId, investorAddr.Hex()).
		First(&investment).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("查询投资记录失败: %w", err)
		}
		existing = false
	}
	cumulative := new(big.Int).Add(investment.Amount.BigInt(), amount)
	if cumulative.Cmp(project.MaxInvestment.BigInt()) > 0 {
		return ErrInvestmentAboveMaximum
	}

	newTotal := new(big.Int).Add(project.TotalRaised.BigInt(), amount)
	if newTotal.Cmp(project.HardCap.BigInt()) > 0 {
		remaining := new(big.Int).Sub(project.HardCap.BigInt(), project.TotalRaised.BigInt())
		return &HardcapExceededError{Remaining: remaining}
	}

	err = l.env.DB.Transaction(func(tx *gorm.DB) error {
		if existing {
			if err := tx.Model(&model.InvestmentModel{}).
				Where("id = ?", investment.Id).
				Update("amount", model.NewAmount(cumulative)).Error; err != nil {
				return fmt.Errorf("更新投资记录失败: %w", err)
			}
		} else {
			record := &model.InvestmentModel{
				ProjectId: projectId,
				Address:   investorAddr.Hex(),
				Amount:    model.NewAmount(cumulative),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("创建投资记录失败: %w", err)
			}
		}
		if err := tx.Model(&model.ProjectModel{}).
			Where("id = ?", projectId).
			Update("total_raised", model.NewAmount(newTotal)).Error; err != nil {
			return fmt.Errorf("更新筹款总额失败: %w", err)
		}
		// 原生资产入托管, 失败则投资整体回滚
		if err := l.env.Vault.Deposit(ctx, investorAddr, amount); err != nil {
			return fmt.Errorf("投资额入托管失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventInvestmentMade,
		Address:   investorAddr.Hex(),
		Amount:    amount.String(),
	})
	return nil
}

// GetUserInvestment 查询投资人在某项目的累计投资额, 未投资返回 0
func (l *InvestLogic) GetUserInvestment(projectId int64, investor string) (*big.Int, error) {
	investorAddr, err := parseAddress(investor)
	if err != nil {
		return nil, err
	}
	if _, err := loadProject(l.env.DB, projectId); err != nil {
		return nil, err
	}
	var investment model.InvestmentModel
	if err := l.env.DB.Where("project_id = ? AND address = ?", projectId, investorAddr.Hex()).
		First(&investment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return big.NewInt(0), nil
		}
		return nil, fmt.Errorf("查询投资记录失败: %w", err)
	}
	return investment.Amount.BigInt(), nil
}

// GetInvestments 查询项目全部投资记录
func (l *InvestLogic) GetInvestments(projectId int64) ([]model.InvestmentModel, error) {
	if _, err := loadProject(l.env.DB, projectId); err != nil {
		return nil, err
	}
	var investments []model.InvestmentModel
	if err := l.env.DB.Where("project_id = ?", projectId).
		Order("id").Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("查询投资记录失败: %w", err)
	}
	return investments, nil
}
