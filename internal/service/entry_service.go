package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-barcode-archive/internal/model"
	"go-barcode-archive/internal/repository"
	"go-barcode-archive/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyCode       = errors.New("code is required")
	ErrEmptyImage      = errors.New("image payload is required")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrPendingNotFound = errors.New("pending item not found")
	ErrAdminRequired   = errors.New("admin role required")
)

// defaultUserName mirrors the original attribution fallback for blank names.
const defaultUserName = "Unknown User"

type CreateEntryRequest struct {
	Code     string `json:"code"`
	UserName string `json:"user_name"`
	Image    string `json:"image"`
}

type PromoteRequest struct {
	Code     string `json:"code"`
	UserName string `json:"user_name"`
}

type EntryService interface {
	CreateEntry(req *CreateEntryRequest) (*model.Entry, error)
	ListEntries(opts QueryOptions) ([]model.Entry, error)
	GetEntry(id uuid.UUID) (*model.Entry, error)
	// DeleteEntry removes an entry permanently. Only admins may delete.
	DeleteEntry(id uuid.UUID, role string) error

	// BulkUpload appends one pending item per payload, preserving payload
	// order across the batch.
	BulkUpload(payloads []string) ([]model.PendingEntry, error)
	ListPending() ([]model.PendingEntry, error)
	// PromotePending turns a pending item into an entry, consuming its
	// image payload, and removes it from the queue.
	PromotePending(pendingID uuid.UUID, req *PromoteRequest) (*model.Entry, error)
	DiscardPending(pendingID uuid.UUID) error
	DiscardAllPending() error
}

type entryService struct {
	entryRepo   repository.EntryRepository
	pendingRepo repository.PendingRepository
	catalogRepo repository.CatalogRepository
	wsHub       *ws.Hub
}

func NewEntryService(entryRepo repository.EntryRepository, pendingRepo repository.PendingRepository, catalogRepo repository.CatalogRepository, hub *ws.Hub) EntryService {
	return &entryService{
		entryRepo:   entryRepo,
		pendingRepo: pendingRepo,
		catalogRepo: catalogRepo,
		wsHub:       hub,
	}
}

func (s *entryService) CreateEntry(req *CreateEntryRequest) (*model.Entry, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if req.Image == "" {
		return nil, ErrEmptyImage
	}

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = defaultUserName
	}

	entry := &model.Entry{
		Code:     code,
		UserName: userName,
		Images: []model.EntryImage{
			{ID: uuid.New(), Payload: req.Image, CapturedAt: time.Now()},
		},
		Lookup: s.lookupSnapshot(code),
	}

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.broadcastEntry("entry_created", entry)
	return entry, nil
}

// lookupSnapshot runs the same normalized first-match lookup the reconcile
// pass uses, once, at creation time. A missing or unreadable catalog
// degrades to no snapshot.
func (s *entryService) lookupSnapshot(code string) *model.CatalogSnapshot {
	catalog, err := s.catalogRepo.FindAll()
	if err != nil || len(catalog) == 0 {
		return nil
	}
	return model.SnapshotOf(model.BuildCatalogIndex(catalog).Lookup(code))
}

func (s *entryService) ListEntries(opts QueryOptions) ([]model.Entry, error) {
	entries, err := s.entryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	entries = FilterEntries(entries, opts.Search)
	SortEntries(entries, opts.Sort, opts.Descending)
	return entries, nil
}

func (s *entryService) GetEntry(id uuid.UUID) (*model.Entry, error) {
	entry, err := s.entryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) DeleteEntry(id uuid.UUID, role string) error {
	if role != model.RoleAdmin {
		return ErrAdminRequired
	}
	entry, err := s.entryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if err := s.entryRepo.Delete(entry.ID); err != nil {
		return err
	}
	s.broadcastEntry("entry_deleted", entry)
	return nil
}

func (s *entryService) BulkUpload(payloads []string) ([]model.PendingEntry, error) {
	if len(payloads) == 0 {
		return nil, ErrEmptyImage
	}
	next, err := s.pendingRepo.NextPosition()
	if err != nil {
		return nil, err
	}

	items := make([]model.PendingEntry, 0, len(payloads))
	for i, payload := range payloads {
		if payload == "" {
			return nil, ErrEmptyImage
		}
		items = append(items, model.PendingEntry{
			BaseModel: model.BaseModel{ID: uuid.New()},
			Position:  next + i,
			Payload:   payload,
		})
	}

	if err := s.pendingRepo.CreateBatch(items); err != nil {
		return nil, fmt.Errorf("failed to save pending uploads: %w", err)
	}

	s.broadcastPending("pending_uploaded", len(items))
	return items, nil
}

func (s *entryService) ListPending() ([]model.PendingEntry, error) {
	return s.pendingRepo.FindAll()
}

func (s *entryService) PromotePending(pendingID uuid.UUID, req *PromoteRequest) (*model.Entry, error) {
	pending, err := s.pendingRepo.FindByID(pendingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingNotFound
		}
		return nil, err
	}

	entry, err := s.CreateEntry(&CreateEntryRequest{
		Code:     req.Code,
		UserName: req.UserName,
		Image:    pending.Payload,
	})
	if err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Delete(pending.ID); err != nil {
		return nil, err
	}

	s.broadcastPending("pending_promoted", 1)
	return entry, nil
}

func (s *entryService) DiscardPending(pendingID uuid.UUID) error {
	if _, err := s.pendingRepo.FindByID(pendingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPendingNotFound
		}
		return err
	}
	if err := s.pendingRepo.Delete(pendingID); err != nil {
		return err
	}
	s.broadcastPending("pending_discarded", 1)
	return nil
}

func (s *entryService) DiscardAllPending() error {
	if err := s.pendingRepo.DeleteAll(); err != nil {
		return err
	}
	s.broadcastPending("pending_cleared", 0)
	return nil
}

func (s *entryService) broadcastEntry(action string, entry *model.Entry) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "archive_update",
			"action": action,
			"entry": map[string]interface{}{
				"id":        entry.ID,
				"code":      entry.Code,
				"user_name": entry.UserName,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func (s *entryService) broadcastPending(action string, count int) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "pending_update",
			"action": action,
			"count":  count,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
