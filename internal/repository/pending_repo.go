package repository

import (
	"database/sql"

	"go-barcode-archive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PendingRepository interface {
	CreateBatch(items []model.PendingEntry) error
	// FindAll returns pending items in upload order.
	FindAll() ([]model.PendingEntry, error)
	FindByID(id uuid.UUID) (*model.PendingEntry, error)
	Delete(id uuid.UUID) error
	DeleteAll() error
	NextPosition() (int, error)
}

type pendingRepo struct {
	db *gorm.DB
}

func NewPendingRepo(db *gorm.DB) PendingRepository {
	return &pendingRepo{db}
}

func (r *pendingRepo) CreateBatch(items []model.PendingEntry) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

func (r *pendingRepo) FindAll() ([]model.PendingEntry, error) {
	var items []model.PendingEntry
	err := r.db.Order("position asc").Find(&items).Error
	return items, err
}

func (r *pendingRepo) FindByID(id uuid.UUID) (*model.PendingEntry, error) {
	var item model.PendingEntry
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pendingRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.PendingEntry{}, "id = ?", id).Error
}

func (r *pendingRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&model.PendingEntry{}).Error
}

func (r *pendingRepo) NextPosition() (int, error) {
	var max sql.NullInt64
	err := r.db.Model(&model.PendingEntry{}).Select("MAX(position)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
