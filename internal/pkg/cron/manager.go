package cron

import (
	"Quill/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine    *cron.Cron
	purgeSpec string
	purgeJob  *job.PurgeJob
}

func NewCronManager(purgeSpec string, purgeJob *job.PurgeJob) *Manager {
	return &Manager{
		engine:    cron.New(cron.WithSeconds()),
		purgeSpec: purgeSpec,
		purgeJob:  purgeJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.purgeSpec == "" {
		log.Info("purge job disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.purgeSpec, s.purgeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
