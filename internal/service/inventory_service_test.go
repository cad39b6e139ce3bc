package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/repository"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

var (
	petIDPattern   = regexp.MustCompile(`^PET-\d{4}$`)
	barcodePattern = regexp.MustCompile(`^BC-\d{8}$`)
)

func newInventoryFixture(t *testing.T) (*InventoryService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewInventoryService(store, validator.New(), zap.NewNop(), nil), store
}

func TestIntakeAssignsIdentifiers(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{
		Species:   "Leopard Gecko",
		Gene:      "Tangerine",
		Weight:    0.05,
		CabinetID: "C-12",
	})
	require.NoError(t, err)
	assert.Regexp(t, petIDPattern, pet.ID)
	assert.Regexp(t, barcodePattern, pet.Barcode)
	assert.Equal(t, models.PetInStock, pet.Status)
	assert.Equal(t, time.Now().UTC().Format(models.FeedingDateLayout), pet.FeedingDate)
	assert.False(t, pet.CreatedAt.IsZero())
}

func TestIntakeKeepsNewestFirst(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	first, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Corn Snake", CabinetID: "C-1"})
	require.NoError(t, err)
	second, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Ball Python", CabinetID: "C-2"})
	require.NoError(t, err)

	pets, err := svc.List(context.Background(), models.PetFilter{})
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, second.ID, pets[0].ID)
	assert.Equal(t, first.ID, pets[1].ID)
}

func TestIntakeRejectsMissingFields(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	_, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "   ", CabinetID: "C-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTransitionTerminalStates(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko", CabinetID: "C-1"})
	require.NoError(t, err)

	sold, err := svc.Transition(context.Background(), pet.ID, models.TransitionRequest{Status: models.PetSold})
	require.NoError(t, err)
	assert.Equal(t, models.PetSold, sold.Status)

	// Sold is terminal; nothing moves it again.
	_, err = svc.Transition(context.Background(), pet.ID, models.TransitionRequest{Status: models.PetDeceased})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestTransitionRejectsInStockTarget(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko", CabinetID: "C-1"})
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), pet.ID, models.TransitionRequest{Status: models.PetInStock})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestTransitionUnknownPet(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	_, err := svc.Transition(context.Background(), "PET-0000", models.TransitionRequest{Status: models.PetSold})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko", CabinetID: "C-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "PET-0000"))
	require.NoError(t, svc.Remove(context.Background(), pet.ID))
	require.NoError(t, svc.Remove(context.Background(), pet.ID))

	pets, err := svc.List(context.Background(), models.PetFilter{})
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestListStatusFilter(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	kept, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko", CabinetID: "C-1"})
	require.NoError(t, err)
	sold, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Python", CabinetID: "C-2"})
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), sold.ID, models.TransitionRequest{Status: models.PetSold})
	require.NoError(t, err)

	status := models.PetInStock
	pets, err := svc.List(context.Background(), models.PetFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, kept.ID, pets[0].ID)
}

func TestSearchMatchesAllFields(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{
		Species:   "Leopard Gecko",
		Gene:      "Super Hypo Tangerine",
		CabinetID: "C-7",
	})
	require.NoError(t, err)
	_, err = svc.Intake(context.Background(), models.IntakeRequest{Species: "Corn Snake", CabinetID: "C-8"})
	require.NoError(t, err)

	for _, query := range []string{"leopard", "TANGERINE", pet.ID, pet.Barcode} {
		pets, err := svc.Search(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, pets, 1, "query %q", query)
		assert.Equal(t, pet.ID, pets[0].ID)
	}

	pets, err := svc.Search(context.Background(), "axolotl")
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestLookupByCode(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko", CabinetID: "C-1"})
	require.NoError(t, err)

	byBarcode, err := svc.LookupByCode(context.Background(), pet.Barcode)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, byBarcode.ID)

	byID, err := svc.LookupByCode(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, byID.ID)

	_, err = svc.LookupByCode(context.Background(), "BC-00000000")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetByID(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	pet, err := svc.Intake(context.Background(), models.IntakeRequest{Species: "Gecko", CabinetID: "C-1"})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.Barcode, got.Barcode)

	_, err = svc.GetByID(context.Background(), "PET-0000")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
