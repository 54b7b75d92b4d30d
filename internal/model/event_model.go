package model

import (
	"time"
)

// EventModel 账本操作审计事件
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId int64  `json:"project_id" gorm:"index"`
	EventType string `json:"event_type" gorm:"not null"`
	Address   string `json:"address"`
	Amount    string `json:"amount"`
	Data      string `json:"data" gorm:"type:text"`
}

// 事件类型
const (
	EventProjectListed    = "ProjectListed"
	EventInvestmentMade   = "InvestmentMade"
	EventTokensClaimed    = "TokensClaimed"
	EventRefunded         = "Refunded"
	EventFundsWithdrawn   = "FundsWithdrawn"
	EventTokensSwept      = "TokensSwept"
	EventProjectCancelled = "ProjectCancelled"
	EventUserWhitelisted  = "UserWhitelisted"
	EventAdminChanged     = "AdminChanged"
	EventPaused           = "Paused"
	EventUnpaused         = "Unpaused"
)

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
