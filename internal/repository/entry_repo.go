package repository

import (
	"go-barcode-archive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryRepository interface {
	Create(entry *model.Entry) error
	// FindAll returns entries newest-first with their images.
	FindAll() ([]model.Entry, error)
	FindByID(id uuid.UUID) (*model.Entry, error)
	FindByIDs(ids []uuid.UUID) ([]model.Entry, error)
	Count() (int64, error)
	Delete(id uuid.UUID) error
	// UpdateSnapshot rewrites only the lookup snapshot column.
	UpdateSnapshot(id uuid.UUID, snapshot *model.CatalogSnapshot) error
}

type entryRepo struct {
	db *gorm.DB
}

func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db}
}

func (r *entryRepo) Create(entry *model.Entry) error {
	return r.db.Create(entry).Error
}

func (r *entryRepo) FindAll() ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.Preload("Images").Order("created_at desc").Find(&entries).Error
	return entries, err
}

func (r *entryRepo) FindByID(id uuid.UUID) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.Preload("Images").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) FindByIDs(ids []uuid.UUID) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.Preload("Images").Where("id IN ?", ids).Order("created_at desc").Find(&entries).Error
	return entries, err
}

func (r *entryRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Entry{}).Count(&count).Error
	return count, err
}

func (r *entryRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.EntryImage{}, "entry_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Entry{}, "id = ?", id).Error
	})
}

func (r *entryRepo) UpdateSnapshot(id uuid.UUID, snapshot *model.CatalogSnapshot) error {
	return r.db.Model(&model.Entry{}).Where("id = ?", id).Update("lookup", snapshot).Error
}
