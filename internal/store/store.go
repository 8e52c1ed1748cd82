package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"equipment-tracker/internal/model"
)

// EquipmentInput carries the four editable fields of a record.
type EquipmentInput struct {
	Name        string
	Type        model.EquipmentType
	Status      model.EquipmentStatus
	LastCleaned *model.Date
}

// Store defines the single-row operations on the equipment table.
type Store interface {
	List(ctx context.Context) ([]model.Equipment, error)
	Get(ctx context.Context, id int64) (model.Equipment, error)
	Create(ctx context.Context, in EquipmentInput) (model.Equipment, error)
	Update(ctx context.Context, id int64, in EquipmentInput) (model.Equipment, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// List returns every record, most recently created first.
func (s *gormStore) List(ctx context.Context) ([]model.Equipment, error) {
	items := make([]model.Equipment, 0)
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, storageErr("list", err)
	}
	return items, nil
}

func (s *gormStore) Get(ctx context.Context, id int64) (model.Equipment, error) {
	return s.reread(ctx, "get", id)
}

// Create inserts a row and returns it as persisted.
func (s *gormStore) Create(ctx context.Context, in EquipmentInput) (model.Equipment, error) {
	rec := model.Equipment{
		Name:        in.Name,
		Type:        in.Type,
		Status:      in.Status,
		LastCleaned: in.LastCleaned,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.Equipment{}, storageErr("create", err)
	}
	return s.reread(ctx, "create", rec.ID)
}

// Update replaces all four editable fields. There is no version check: the
// last writer wins.
func (s *gormStore) Update(ctx context.Context, id int64, in EquipmentInput) (model.Equipment, error) {
	err := s.db.WithContext(ctx).
		Model(&model.Equipment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":         in.Name,
			"type":         in.Type,
			"status":       in.Status,
			"last_cleaned": in.LastCleaned,
		}).Error
	if err != nil {
		return model.Equipment{}, storageErr("update", err)
	}
	// MySQL reports zero affected rows for a no-op update, so existence is
	// decided by reading the row back.
	return s.reread(ctx, "update", id)
}

// Delete removes the row permanently.
func (s *gormStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Equipment{}, id)
	if res.Error != nil {
		return storageErr("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storageErr("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

func (s *gormStore) reread(ctx context.Context, op string, id int64) (model.Equipment, error) {
	var e model.Equipment
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Equipment{}, ErrNotFound
		}
		return model.Equipment{}, storageErr(op, err)
	}
	return e, nil
}
