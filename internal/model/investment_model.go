package model

import (
	"time"
)

// InvestmentModel 投资人在某项目上的累计投入
// claim 与 refund 共用 Claimed 标志, 互斥且各自只能发生一次
type InvestmentModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_project_investor"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_project_investor"`
	Amount    Amount `json:"amount"`
	Claimed   bool   `json:"claimed" gorm:"default:false"`
}

// TableName 自定义表名
func (InvestmentModel) TableName() string {
	return "investment"
}
