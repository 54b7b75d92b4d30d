package event

import (
	"github.com/YatharthAndharia/Launchpad/internal/logger"
	"github.com/YatharthAndharia/Launchpad/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Recorder 事件流水异步落库
// 事件是审计流水而非账本状态, 落库失败只记日志不影响业务操作
type Recorder struct {
	db   *gorm.DB
	pool *ants.Pool
}

// NewRecorder 创建事件记录器
func NewRecorder(db *gorm.DB, workers int) (*Recorder, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db, pool: pool}, nil
}

// Record 提交一条事件, 协程池满时降级为同步写
func (r *Recorder) Record(event *model.EventModel) {
	task := func() {
		if err := r.db.Create(event).Error; err != nil {
			logger.Error("Failed to record event %s for project %d: %v",
				event.EventType, event.ProjectId, err)
		}
	}
	if err := r.pool.Submit(task); err != nil {
		task()
	}
}

// Close 等待在途任务并释放协程池
func (r *Recorder) Close() {
	r.pool.Release()
}
