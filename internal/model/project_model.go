package model

import (
	"time"
)

// ProjectModel IDO 项目
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 归属信息
	Owner     string `json:"owner" gorm:"not null"`
	SaleToken string `json:"sale_token" gorm:"uniqueIndex;not null"` // 每个代币全局只能上架一次

	// 投资限额(原生资产最小单位)
	MinInvestment Amount `json:"min_investment"`
	MaxInvestment Amount `json:"max_investment"`

	// 募资上下限
	SoftCap Amount `json:"soft_cap"`
	HardCap Amount `json:"hard_cap"`

	// 上架时托管的销售代币总量, 决定兑付率
	MaxCap Amount `json:"max_cap"`

	// 流动性分配(基点, 仅记录供外部消费)
	LiquidityPercentToken int64 `json:"liquidity_percent_token"`
	LiquidityPercentEth   int64 `json:"liquidity_percent_eth"`

	// 销售窗口(秒级时间戳, end <= start 视为已结束)
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`

	// 账目
	TotalRaised    Amount `json:"total_raised"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	FundsWithdrawn bool   `json:"funds_withdrawn" gorm:"default:false"`

	// 展示状态(派生值快照, 结算判定不读取)
	Status ProjectStatus `json:"status" gorm:"default:'pending'"`
}

// ProjectStatus 项目展示状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"   // 未开始
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusSuccess   ProjectStatus = "success"   // 达到软顶
	ProjectStatusFailed    ProjectStatus = "failed"    // 未达软顶
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
