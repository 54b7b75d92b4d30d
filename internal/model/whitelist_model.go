package model

import (
	"time"
)

// WhitelistEntryModel 项目白名单条目
type WhitelistEntryModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_project_address"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_project_address"`
}

// TableName 自定义表名
func (WhitelistEntryModel) TableName() string {
	return "whitelist_entry"
}
