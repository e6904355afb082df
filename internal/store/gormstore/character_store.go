package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

type CharacterStore struct {
	db *gorm.DB
}

func NewCharacterStore(db *gorm.DB) *CharacterStore {
	return &CharacterStore{db: db}
}

func (s *CharacterStore) FindByRFID(ctx context.Context, code string) (*models.Character, error) {
	var c models.Character
	err := s.db.WithContext(ctx).Where("rfid_code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CharacterStore) FindByID(ctx context.Context, id int64) (*models.Character, error) {
	var c models.Character
	err := s.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CharacterStore) List(ctx context.Context) ([]models.Character, error) {
	var cs []models.Character
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *CharacterStore) Create(ctx context.Context, c *models.Character) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *CharacterStore) Update(ctx context.Context, c *models.Character) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *CharacterStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Character{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *CharacterStore) SetRegistered(ctx context.Context, id int64, registered bool) error {
	return s.db.WithContext(ctx).
		Model(&models.Character{}).
		Where("id = ?", id).
		Update("is_registered", registered).Error
}

func (s *CharacterStore) ResetAll(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&models.Character{}).
		Where("1 = 1").
		Updates(map[string]any{
			"is_registered": false,
			"position_x":    0,
			"position_y":    0,
		}).Error
}
