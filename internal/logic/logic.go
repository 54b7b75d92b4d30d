package logic

import (
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/YatharthAndharia/Launchpad/internal/model"
	"github.com/YatharthAndharia/Launchpad/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// ledgerMu 串行化所有变更操作, 保证相同状态下操作结果可复现
var ledgerMu sync.Mutex

// EventSink 操作成功后记录事件, 允许为空
type EventSink interface {
	Record(event *model.EventModel)
}

// Env 业务逻辑运行环境
type Env struct {
	DB      *gorm.DB
	Tokens  token.Ledger
	Vault   token.Vault
	Custody common.Address
	Events  EventSink
	// Now 当前时间, 测试中可注入
	Now func() time.Time
}

func (e *Env) now() int64 {
	if e.Now != nil {
		return e.Now().Unix()
	}
	return time.Now().Unix()
}

func (e *Env) record(event *model.EventModel) {
	if e.Events != nil {
		e.Events.Record(event)
	}
}

// parseAddress 校验并规范化地址, 空串和零地址都是硬错误
func parseAddress(raw string) (common.Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return common.Address{}, ErrEmptyAddress
	}
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, ErrEmptyAddress
	}
	addr := common.HexToAddress(trimmed)
	if addr == (common.Address{}) {
		return common.Address{}, ErrAddressZero
	}
	return addr, nil
}

// projectOver 项目是否已结束: 时间窗口关闭或筹款达到硬顶
// 结束状态永远实时推导, 不读缓存字段
func projectOver(project *model.ProjectModel, now int64) bool {
	if now > project.EndTime {
		return true
	}
	return project.TotalRaised.Cmp(project.HardCap) >= 0
}

// projectSuccessful 项目是否达到软顶
func projectSuccessful(project *model.ProjectModel) bool {
	return project.TotalRaised.Cmp(project.SoftCap) >= 0
}

// loadState 读取全局账本状态, 单行记录
func loadState(db *gorm.DB) (*model.LedgerStateModel, error) {
	var state model.LedgerStateModel
	if err := db.First(&state, model.LedgerStateId).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// loadProject 按编号读取项目, 不存在返回 ErrInvalidProjectId
func loadProject(db *gorm.DB, projectId int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := db.First(&project, projectId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidProjectId
		}
		return nil, err
	}
	return &project, nil
}

// payout 按投资额等比分配销售代币: floor(amount * maxCap / hardCap)
func payout(project *model.ProjectModel, invested model.Amount) *big.Int {
	allocation := new(big.Int).Mul(invested.BigInt(), project.MaxCap.BigInt())
	return allocation.Quo(allocation, project.HardCap.BigInt())
}
