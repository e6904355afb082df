package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

type LogStore struct {
	db *gorm.DB
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db}
}

func (s *LogStore) Insert(ctx context.Context, l *models.Log) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *LogStore) Recent(ctx context.Context, limit int) ([]models.Log, error) {
	if limit <= 0 || limit > store.DefaultLogLimit {
		limit = store.DefaultLogLimit
	}
	var logs []models.Log
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *LogStore) CountByTypeSince(ctx context.Context, t models.LogType, cutoff time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Log{}).
		Where("type = ? AND timestamp >= ?", t, cutoff).
		Count(&count).Error
	return count, err
}

func (s *LogStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Log{}).Error
}
