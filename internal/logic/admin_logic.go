package logic

import (
	"fmt"

	"github.com/YatharthAndharia/Launchpad/internal/model"
)

// AdminLogic 管理员业务逻辑: 角色轮换与暂停开关
type AdminLogic struct {
	env *Env
}

// NewAdminLogic 创建管理员业务逻辑
func NewAdminLogic(env *Env) *AdminLogic {
	return &AdminLogic{env: env}
}

// EnsureState 初始化全局账本状态, 已存在则保持不变
func (a *AdminLogic) EnsureState(admin string) error {
	adminAddr, err := parseAddress(admin)
	if err != nil {
		return err
	}
	state := &model.LedgerStateModel{
		Id:    model.LedgerStateId,
		Admin: adminAddr.Hex(),
	}
	if err := a.env.DB.Where("id = ?", model.LedgerStateId).
		FirstOrCreate(state).Error; err != nil {
		return fmt.Errorf("初始化账本状态失败: %w", err)
	}
	return nil
}

// GetState 读取全局账本状态
func (a *AdminLogic) GetState() (*model.LedgerStateModel, error) {
	return loadState(a.env.DB)
}

// ChangeAdmin 轮换管理员地址
func (a *AdminLogic) ChangeAdmin(caller, newAdmin string) error {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	state, err := loadState(a.env.DB)
	if err != nil {
		return err
	}
	if state.Admin != callerAddr.Hex() {
		return ErrNotAdmin
	}
	newAddr, err := parseAddress(newAdmin)
	if err != nil {
		return err
	}
	if newAddr.Hex() == state.Admin {
		return ErrSameAsCurrentAdmin
	}

	if err := a.env.DB.Model(&model.LedgerStateModel{}).
		Where("id = ?", model.LedgerStateId).
		Update("admin", newAddr.Hex()).Error; err != nil {
		return fmt.Errorf("更新管理员失败: %w", err)
	}

	a.env.record(&model.EventModel{
		EventType: model.EventAdminChanged,
		Address:   newAddr.Hex(),
	})
	return nil
}

// Pause 暂停账本, 投资人侧的变更操作全部拒绝
func (a *AdminLogic) Pause(caller string) error {
	return a.setPaused(caller, true, model.EventPaused)
}

// Unpause 恢复账本
func (a *AdminLogic) Unpause(caller string) error {
	return a.setPaused(caller, false, model.EventUnpaused)
}

func (a *AdminLogic) setPaused(caller string, paused bool, eventType string) error {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	callerAddr, err := parseAddress(caller)
	if err != nil {
		return err
	}
	state, err := loadState(a.env.DB)
	if err != nil {
		return err
	}
	if state.Admin != callerAddr.Hex() {
		return ErrNotAdmin
	}
	if state.Paused == paused {
		return nil
	}

	if err := a.env.DB.Model(&model.LedgerStateModel{}).
		Where("id = ?", model.LedgerStateId).
		Update("paused", paused).Error; err != nil {
		return fmt.Errorf("更新暂停状态失败: %w", err)
	}

	a.env.record(&model.EventModel{
		EventType: eventType,
		Address:   callerAddr.Hex(),
	})
	return nil
}

// GetProjectEvents 查询项目事件流水
func (a *AdminLogic) GetProjectEvents(projectId int64) ([]model.EventModel, error) {
	if _, err := loadProject(a.env.DB, projectId); err != nil {
		return nil, err
	}
	var events []model.EventModel
	if err := a.env.DB.Where("project_id = ?", projectId).
		Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("查询事件失败: %w", err)
	}
	return events, nil
}
