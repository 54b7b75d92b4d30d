package logic

import (
	"context"
	"fmt"
	"math/big"

	"github.com/YatharthAndharia/Launchpad/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑: 上架, 白名单, 取消与查询
type ProjectLogic struct {
	env *Env
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(env *Env) *ProjectLogic {
	return &ProjectLogic{env: env}
}

// ListProjectParams 上架参数
type ListProjectParams struct {
	Owner                 string
	SaleToken             string
	MinInvestment         *big.Int
	MaxInvestment         *big.Int
	SoftCap               *big.Int
	HardCap               *big.Int
	MaxCap                *big.Int
	LiquidityPercentToken int64
	LiquidityPercentEth   int64
	StartTime             int64
	EndTime               int64
	Whitelist             []string
}

// ListProject 上架新项目, 成功后将 maxCap 销售代币从项目方划入托管
// 前置检查按固定顺序执行, 第一个失败的检查决定返回的错误
func (p *ProjectLogic) ListProject(ctx context.Context, params *ListProjectParams) (int64, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	owner, err := parseAddress(params.Owner)
	if err != nil {
		return 0, err
	}
	saleToken, err := parseAddress(params.SaleToken)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := p.env.DB.Model(&model.ProjectModel{}).
		Where("sale_token = ?", saleToken.Hex()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("查询项目失败: %w", err)
	}
	if count > 0 {
		return 0, ErrTokenAlreadyListed
	}
	if params.MinInvestment == nil || params.MinInvestment.Sign() <= 0 {
		return 0, ErrMinInvestmentZero
	}
	if params.MaxInvestment == nil || params.MaxInvestment.Cmp(params.MinInvestment) < 0 {
		return 0, ErrMaxBelowMin
	}
	if params.HardCap == nil || params.MaxInvestment.Cmp(params.HardCap) > 0 {
		return 0, ErrMaxAboveHardCap
	}
	if len(params.Whitelist) == 0 {
		return 0, ErrEmptyAddress
	}
	whitelist := make([]common.Address, 0, len(params.Whitelist))
	seen := make(map[common.Address]bool, len(params.Whitelist))
	for _, raw := range params.Whitelist {
		addr, err := parseAddress(raw)
		if err != nil {
			return 0, ErrAddressZero
		}
		// 输入中的重复地址静默合并
		if !seen[addr] {
			seen[addr] = true
			whitelist = append(whitelist, addr)
		}
	}
	if params.LiquidityPercentToken < 0 || params.LiquidityPercentToken > 10000 ||
		params.LiquidityPercentEth < 0 || params.LiquidityPercentEth > 10000 {
		return 0, ErrInvalidLiquidityPercent
	}
	if params.SoftCap == nil || params.MaxCap == nil || params.SoftCap.Cmp(params.HardCap) > 0 {
		return 0, ErrCapsInverted
	}

	project := &model.ProjectModel{
		Owner:                 owner.Hex(),
		SaleToken:             saleToken.Hex(),
		MinInvestment:         model.NewAmount(params.MinInvestment),
		MaxInvestment:         model.NewAmount(params.MaxInvestment),
		SoftCap:               model.NewAmount(params.SoftCap),
		HardCap:               model.NewAmount(params.HardCap),
		MaxCap:                model.NewAmount(params.MaxCap),
		LiquidityPercentToken: params.LiquidityPercentToken,
		LiquidityPercentEth:   params.LiquidityPercentEth,
		StartTime:             params.StartTime,
		EndTime:               params.EndTime,
		TotalRaised:           model.AmountFromInt64(0),
		IsActive:              true,
		FundsWithdrawn:        false,
		Status:                model.ProjectStatusActive,
	}

	err = p.env.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("创建项目失败: %w", err)
		}
		entries := make([]model.WhitelistEntryModel, 0, len(whitelist))
		for _, addr := range whitelist {
			entries = append(entries, model.WhitelistEntryModel{
				ProjectId: project.Id,
				Address:   addr.Hex(),
			})
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("写入白名单失败: %w", err)
		}
		// 托管划转放在最后, 失败则整个上架回滚
		if err := p.env.Tokens.TransferFrom(ctx, saleToken, owner, p.env.Custody, params.MaxCap); err != nil {
			return fmt.Errorf("销售代币托管失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	p.env.record(&model.EventModel{
		ProjectId: project.Id,
		EventType: model.EventProjectListed,
		Address:   owner.Hex(),
		Amount:    params.MaxCap.String(),
		Data:      fmt.Sprintf(`{"sale_token":"%s"}`, saleToken.Hex()),
	})
	return project.Id, nil
}

// AddUserForProject 项目方追加白名单地址
func (p *ProjectLogic) AddUserForProject(projectId int64, caller, investor string) error {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	project, err := loadProject(p.env.DB, projectId)
	if err != nil {
		return err
	}
	if project.Owner != callerAddr.Hex() {
		return ErrNotProjectOwner
	}
	state, err := loadState(p.env.DB)
	if err != nil {
		return err
	}
	if state.Paused {
		return ErrPaused
	}
	investorAddr, err := parseAddress(investor)
	if err != nil {
		return err
	}

	var count int64
	if err := p.env.DB.Model(&model.WhitelistEntryModel{}).
		Where("project_id = ? AND address = ?", projectId, investorAddr.Hex()).
		Count(&count).Error; err != nil {
		return fmt.Errorf("查询白名单失败: %w", err)
	}
	if count > 0 {
		return ErrUserAlreadyWhitelisted
	}

	entry := &model.WhitelistEntryModel{ProjectId: projectId, Address: investorAddr.Hex()}
	if err := p.env.DB.Create(entry).Error; err != nil {
		return fmt.Errorf("写入白名单失败: %w", err)
	}

	p.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventUserWhitelisted,
		Address:   investorAddr.Hex(),
	})
	return nil
}

// CancelProject 管理员取消项目, 全部托管销售代币退回项目方
// 取消后项目永久失活, 投资路径关闭, 退款路径打开
func (p *ProjectLogic) CancelProject(ctx context.Context, projectId int64, caller string) error {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	state, err := loadState(p.env.DB)
	if err != nil {
		return err
	}
	if state.Admin != callerAddr.Hex() {
		return ErrNotAdmin
	}
	project, err := loadProject(p.env.DB, projectId)
	if err != nil {
		return err
	}
	if !project.IsActive {
		return ErrProjectNotActive
	}

	saleToken := common.HexToAddress(project.SaleToken)
	ownerAddr := common.HexToAddress(project.Owner)
	balance, err := p.env.Tokens.BalanceOf(ctx, saleToken, p.env.Custody)
	if err != nil {
		return fmt.Errorf("查询托管余额失败: %w", err)
	}

	err = p.env.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ProjectModel{}).
			Where("id = ?", projectId).
			Updates(map[string]interface{}{
				"is_active": false,
				"status":    model.ProjectStatusCancelled,
			}).Error; err != nil {
			return fmt.Errorf("更新项目失败: %w", err)
		}
		if balance.Sign() > 0 {
			if err := p.env.Tokens.Transfer(ctx, saleToken, ownerAddr, balance); err != nil {
				return fmt.Errorf("退回销售代币失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.env.record(&model.EventModel{
		ProjectId: projectId,
		EventType: model.EventProjectCancelled,
		Address:   callerAddr.Hex(),
		Amount:    balance.String(),
	})
	return nil
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects() ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	if err := p.env.DB.Order("id").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取项目列表失败: %w", err)
	}
	return projects, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(projectId int64) (*model.ProjectModel, error) {
	return loadProject(p.env.DB, projectId)
}

// GetTotalRaised 项目累计筹款额
func (p *ProjectLogic) GetTotalRaised(projectId int64) (*big.Int, error) {
	project, err := loadProject(p.env.DB, projectId)
	if err != nil {
		return nil, err
	}
	return project.TotalRaised.BigInt(), nil
}

// GetWhitelist 获取项目白名单地址
func (p *ProjectLogic) GetWhitelist(projectId int64) ([]string, error) {
	if _, err := loadProject(p.env.DB, projectId); err != nil {
		return nil, err
	}
	var entries []model.WhitelistEntryModel
	if err := p.env.DB.Where("project_id = ?", projectId).
		Order("id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("获取白名单失败: %w", err)
	}
	addresses := make([]string, 0, len(entries))
	for _, entry := range entries {
		addresses = append(addresses, entry.Address)
	}
	return addresses, nil
}

// ProjectStats 项目统计
type ProjectStats struct {
	ProjectId     int64        `json:"project_id"`
	TotalRaised   model.Amount `json:"total_raised"`
	SoftCap       model.Amount `json:"soft_cap"`
	HardCap       model.Amount `json:"hard_cap"`
	InvestorCount int64        `json:"investor_count"`
	Over          bool         `json:"over"`
	Successful    bool         `json:"successful"`
	Status        string       `json:"status"`
}

// GetProjectStats 项目统计信息, 结束与达标均为实时推导
func (p *ProjectLogic) GetProjectStats(projectId int64) (*ProjectStats, error) {
	project, err := loadProject(p.env.DB, projectId)
	if err != nil {
		return nil, err
	}
	var investorCount int64
	if err := p.env.DB.Model(&model.InvestmentModel{}).
		Where("project_id = ?", projectId).
		Count(&investorCount).Error; err != nil {
		return nil, fmt.Errorf("统计投资人失败: %w", err)
	}
	now := p.env.now()
	return &ProjectStats{
		ProjectId:     project.Id,
		TotalRaised:   project.TotalRaised,
		SoftCap:       project.SoftCap,
		HardCap:       project.HardCap,
		InvestorCount: investorCount,
		Over:          !project.IsActive || projectOver(project, now),
		Successful:    projectSuccessful(project),
		Status:        string(project.Status),
	}, nil
}
