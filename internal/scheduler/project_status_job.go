package scheduler

import (
	"time"

	"github.com/YatharthAndharia/Launchpad/internal/config"
	"github.com/YatharthAndharia/Launchpad/internal/logger"
	"github.com/YatharthAndharia/Launchpad/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ProjectStatusJob 项目展示状态刷新任务
// Status 列只用于列表展示, 业务判定永远实时推导, 此任务不参与清算
type ProjectStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectStatusJob 创建项目状态刷新任务
func NewProjectStatusJob(db *gorm.DB, cfg *config.Config) *ProjectStatusJob {
	return &ProjectStatusJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectStatusJob) Execute() {
	now := time.Now().Unix()

	var projects []model.ProjectModel
	err := j.db.Where("status IN ?", []model.ProjectStatus{
		model.ProjectStatusPending,
		model.ProjectStatusActive,
	}).Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch projects: %v", err)
		return
	}

	updatedCount := 0
	for _, project := range projects {
		newStatus := deriveStatus(&project, now)
		if newStatus == project.Status {
			continue
		}

		if err := j.db.Model(&model.ProjectModel{}).
			Where("id = ?", project.Id).
			Update("status", newStatus).Error; err != nil {
			logger.Error("Failed to update project %d status: %v", project.Id, err)
			continue
		}
		logger.Info("Updated project %d status from %s to %s",
			project.Id, project.Status, newStatus)
		updatedCount++
	}

	if updatedCount > 0 {
		logger.Info("Project status update completed. Updated %d projects", updatedCount)
	}
}

// deriveStatus 由时间与筹款额推导展示状态
func deriveStatus(project *model.ProjectModel, now int64) model.ProjectStatus {
	if !project.IsActive {
		return model.ProjectStatusCancelled
	}
	if now < project.StartTime {
		return model.ProjectStatusPending
	}
	// 硬顶达成视为提前结束
	over := now > project.EndTime ||
		project.TotalRaised.Cmp(project.HardCap) >= 0
	if !over {
		return model.ProjectStatusActive
	}
	if project.TotalRaised.Cmp(project.SoftCap) >= 0 {
		return model.ProjectStatusSuccess
	}
	return model.ProjectStatusFailed
}
