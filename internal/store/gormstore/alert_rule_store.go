package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

type AlertRuleStore struct {
	db *gorm.DB
}

func NewAlertRuleStore(db *gorm.DB) *AlertRuleStore {
	return &AlertRuleStore{db: db}
}

func (s *AlertRuleStore) Active(ctx context.Context) ([]models.AlertRule, error) {
	var rules []models.AlertRule
	if err := s.db.WithContext(ctx).Where("active = ?", true).Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *AlertRuleStore) List(ctx context.Context) ([]models.AlertRule, error) {
	var rules []models.AlertRule
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *AlertRuleStore) Create(ctx context.Context, r *models.AlertRule) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *AlertRuleStore) Update(ctx context.Context, r *models.AlertRule) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *AlertRuleStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.AlertRule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *AlertRuleStore) SetLastTriggered(ctx context.Context, id int64, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&models.AlertRule{}).
		Where("id = ?", id).
		Update("last_triggered", at).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

func (s *AlertRuleStore) ReArmAll(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&models.AlertRule{}).
		Where("1 = 1").
		Updates(map[string]any{"active": true, "last_triggered": nil}).Error
}
