package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"gorm.io/gorm"
)

type ClassPostgreSQL struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db}
}

func (c ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	if err := c.db.WithContext(ctx).First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (c ClassPostgreSQL) IsEnrolled(ctx context.Context, classID uint, studentID string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.ClassEnrollment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c ClassPostgreSQL) ListClassIDsByStudent(ctx context.Context, studentID string) ([]uint, error) {
	var ids []uint
	if err := c.db.WithContext(ctx).
		Model(&models.ClassEnrollment{}).
		Where("student_id = ?", studentID).
		Pluck("class_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
