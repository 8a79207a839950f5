package repository

import (
	"go-barcode-archive/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	// ReplaceAll atomically swaps the whole catalog for the given rows.
	// Row positions are assigned from slice order.
	ReplaceAll(rows []model.CatalogRow) error
	FindAll() ([]model.CatalogRow, error)
	Count() (int64, error)
	Clear() error
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db}
}

func (r *catalogRepo) ReplaceAll(rows []model.CatalogRow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.CatalogRow{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].Position = i
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 500).Error
	})
}

func (r *catalogRepo) FindAll() ([]model.CatalogRow, error) {
	var rows []model.CatalogRow
	err := r.db.Order("position asc").Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.CatalogRow{}).Count(&count).Error
	return count, err
}

func (r *catalogRepo) Clear() error {
	return r.db.Where("1 = 1").Delete(&model.CatalogRow{}).Error
}
