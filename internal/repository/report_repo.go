package repository

import (
	"Quill/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ReportRepo interface {
	CreateReport(ctx context.Context, report *model.Report) error
}

type ReportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &ReportRepoImpl{db: db}
}

func (s *ReportRepoImpl) CreateReport(ctx context.Context, report *model.Report) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(report).Error, "create report")
}
