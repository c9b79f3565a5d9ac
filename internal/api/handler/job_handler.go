package handler

import (
	"Quill/internal/job"
	"Quill/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	purgeJob *job.PurgeJob
}

func NewJobHandler(purgeJob *job.PurgeJob) *JobHandler {
	return &JobHandler{purgeJob: purgeJob}
}

// RunPurge 管理员手动触发一次关联表清理
func (s *JobHandler) RunPurge(c *gin.Context) {
	rows, err := s.purgeJob.RunOnce(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"purged": rows})
}
