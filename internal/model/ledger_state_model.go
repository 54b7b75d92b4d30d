package model

import (
	"time"
)

// LedgerStateModel 账本全局状态, 全表仅一行(Id=1)
type LedgerStateModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UpdatedAt time.Time `json:"updated_at"`

	Admin  string `json:"admin" gorm:"not null"`
	Paused bool   `json:"paused" gorm:"default:false"`
}

// LedgerStateId 单行主键
const LedgerStateId int64 = 1

// TableName 自定义表名
func (LedgerStateModel) TableName() string {
	return "ledger_state"
}
