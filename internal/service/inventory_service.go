package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/inkyard/petstock-api/internal/models"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

type inventoryStore interface {
	LoadPets(ctx context.Context) ([]models.Pet, error)
	SavePets(ctx context.Context, pets []models.Pet) error
}

// Identifier generation is reject-and-retry: a candidate colliding with
// the existing collection is discarded and regenerated.
const maxIDAttempts = 64

// InventoryService creates, mutates, filters and removes pet records
// and enforces the status-transition rules.
type InventoryService struct {
	store     inventoryStore
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewInventoryService constructs an InventoryService instance.
func NewInventoryService(store inventoryStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &InventoryService{store: store, validator: validate, logger: logger, metrics: metrics}
}

// Intake registers a new pet record. The record always starts in stock
// and is prepended so the collection stays newest-first.
func (s *InventoryService) Intake(ctx context.Context, req models.IntakeRequest) (*models.Pet, error) {
	req.Species = strings.TrimSpace(req.Species)
	req.Gene = strings.TrimSpace(req.Gene)
	req.CabinetID = strings.TrimSpace(req.CabinetID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "species and cabinet_id are required")
	}

	pets, err := s.store.LoadPets(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inventory")
	}

	now := time.Now().UTC()

	id, err := generatePetID(pets)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate pet id")
	}
	barcode, err := generateBarcode(pets, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate barcode")
	}

	feedingDate := req.FeedingDate
	if feedingDate == "" {
		feedingDate = now.Format(models.FeedingDateLayout)
	}

	pet := models.Pet{
		ID:          id,
		Barcode:     barcode,
		Species:     req.Species,
		Gene:        req.Gene,
		Weight:      req.Weight,
		FeedingDate: feedingDate,
		CabinetID:   req.CabinetID,
		Status:      models.PetInStock,
		CreatedAt:   now,
	}

	pets = append([]models.Pet{pet}, pets...)
	if err := s.store.SavePets(ctx, pets); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist inventory")
	}

	s.observeInventory(pets)
	s.logger.Info("pet intake", zap.String("id", pet.ID), zap.String("species", pet.Species))
	return &pet, nil
}

// Transition moves a pet out of stock. Sold and deceased are terminal:
// only an in-stock record may transition, and only to one of those two.
func (s *InventoryService) Transition(ctx context.Context, petID string, req models.TransitionRequest) (*models.Pet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "target status must be SOLD or DECEASED")
	}

	pets, err := s.store.LoadPets(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inventory")
	}

	idx := indexByID(pets, petID)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pet not found")
	}
	if pets[idx].Status != models.PetInStock {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("pet is already %s", pets[idx].Status))
	}

	pets[idx].Status = req.Status
	if err := s.store.SavePets(ctx, pets); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist inventory")
	}

	s.observeInventory(pets)
	pet := pets[idx]
	return &pet, nil
}

// Remove deletes the record with the given id. Removal is irrevocable;
// a missing id is a silent no-op, not an error.
func (s *InventoryService) Remove(ctx context.Context, petID string) error {
	pets, err := s.store.LoadPets(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inventory")
	}

	idx := indexByID(pets, petID)
	if idx < 0 {
		return nil
	}

	pets = append(pets[:idx], pets[idx+1:]...)
	if err := s.store.SavePets(ctx, pets); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist inventory")
	}

	s.observeInventory(pets)
	s.logger.Info("pet removed", zap.String("id", petID))
	return nil
}

// GetByID returns a single record.
func (s *InventoryService) GetByID(ctx context.Context, petID string) (*models.Pet, error) {
	pets, err := s.store.LoadPets(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inventory")
	}
	idx := indexByID(pets, petID)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pet not found")
	}
	pet := pets[idx]
	return &pet, nil
}

// List returns the inventory filtered by status and search query,
// collection order preserved.
func (s *InventoryService) List(ctx context.Context, filter models.PetFilter) ([]models.Pet, error) {
	pets, err := s.store.LoadPets(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inventory")
	}

	out := make([]models.Pet, 0, len(pets))
	query := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, p := range pets {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Search performs a case-insensitive substring match of the query
// against species, gene, id and barcode.
func (s *InventoryService) Search(ctx context.Context, query string) ([]models.Pet, error) {
	return s.List(ctx, models.PetFilter{Search: query})
}

// LookupByCode resolves a decoded scan string by exact match against
// barcode or id, returning the first such record.
func (s *InventoryService) LookupByCode(ctx context.Context, code string) (*models.Pet, error) {
	pets, err := s.store.LoadPets(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inventory")
	}
	for _, p := range pets {
		if p.Barcode == code || p.ID == code {
			pet := p
			return &pet, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no pet matches code %q", code))
}

func (s *InventoryService) observeInventory(pets []models.Pet) {
	if s.metrics == nil {
		return
	}
	var inStock, sold, deceased int
	for _, p := range pets {
		switch p.Status {
		case models.PetSold:
			sold++
		case models.PetDeceased:
			deceased++
		default:
			inStock++
		}
	}
	s.metrics.SetInventoryCounts(inStock, sold, deceased)
}

func matchesQuery(p models.Pet, query string) bool {
	return strings.Contains(strings.ToLower(p.Species), query) ||
		strings.Contains(strings.ToLower(p.Gene), query) ||
		strings.Contains(strings.ToLower(p.ID), query) ||
		strings.Contains(strings.ToLower(p.Barcode), query)
}

func indexByID(pets []models.Pet, id string) int {
	for i := range pets {
		if pets[i].ID == id {
			return i
		}
	}
	return -1
}

func generatePetID(existing []models.Pet) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := fmt.Sprintf("PET-%04d", 1000+rand.Intn(9000))
		if indexByID(existing, candidate) < 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts generating a unique pet id", maxIDAttempts)
}

func generateBarcode(existing []models.Pet, now time.Time) (string, error) {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	candidate := "BC-" + millis[len(millis)-8:]
	if !barcodeExists(existing, candidate) {
		return candidate, nil
	}
	// Timestamp suffix collided; fall back to random 8-digit suffixes.
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate = fmt.Sprintf("BC-%08d", rand.Intn(100000000))
		if !barcodeExists(existing, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts generating a unique barcode", maxIDAttempts)
}

func barcodeExists(pets []models.Pet, barcode string) bool {
	for _, p := range pets {
		if p.Barcode == barcode {
			return true
		}
	}
	return false
}
