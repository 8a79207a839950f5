package service

import (
	"strings"
	"time"

	"go-barcode-archive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the persistence contracts. They
// mimic what matters: ordering, not-found errors, and UUID/timestamp
// assignment on create.

type fakeCatalogRepo struct {
	rows       []model.CatalogRow
	replaceErr error
}

func (f *fakeCatalogRepo) ReplaceAll(rows []model.CatalogRow) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	for i := range rows {
		rows[i].Position = i
	}
	f.rows = rows
	return nil
}

func (f *fakeCatalogRepo) FindAll() ([]model.CatalogRow, error) {
	out := make([]model.CatalogRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeCatalogRepo) Count() (int64, error) { return int64(len(f.rows)), nil }

func (f *fakeCatalogRepo) Clear() error {
	f.rows = nil
	return nil
}

type fakeEntryRepo struct {
	entries []model.Entry // in creation order
}

func (f *fakeEntryRepo) Create(entry *model.Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntryRepo) FindAll() ([]model.Entry, error) {
	out := make([]model.Entry, 0, len(f.entries))
	for i := len(f.entries) - 1; i >= 0; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func (f *fakeEntryRepo) FindByID(id uuid.UUID) (*model.Entry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			entry := f.entries[i]
			return &entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEntryRepo) FindByIDs(ids []uuid.UUID) ([]model.Entry, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Entry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if want[f.entries[i].ID] {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) Count() (int64, error) { return int64(len(f.entries)), nil }

func (f *fakeEntryRepo) Delete(id uuid.UUID) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEntryRepo) UpdateSnapshot(id uuid.UUID, snapshot *model.CatalogSnapshot) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Lookup = snapshot
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakePendingRepo struct {
	items []model.PendingEntry
}

func (f *fakePendingRepo) CreateBatch(items []model.PendingEntry) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakePendingRepo) FindAll() ([]model.PendingEntry, error) {
	out := make([]model.PendingEntry, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakePendingRepo) FindByID(id uuid.UUID) (*model.PendingEntry, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePendingRepo) Delete(id uuid.UUID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePendingRepo) DeleteAll() error {
	f.items = nil
	return nil
}

func (f *fakePendingRepo) NextPosition() (int, error) {
	next := 0
	for i := range f.items {
		if f.items[i].Position >= next {
			next = f.items[i].Position + 1
		}
	}
	return next, nil
}

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) FindByName(name string) (*model.User, error) {
	for i := range f.users {
		if strings.EqualFold(f.users[i].Name, name) {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	out := make([]model.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].Password = hashedPassword
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateTheme(userID uuid.UUID, theme string) error {
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].Theme = theme
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].TokenVersion = version
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateLastSeen(userID uuid.UUID) error {
	now := time.Now()
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].LastSeenAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
