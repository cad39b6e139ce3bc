package models

import "time"

// PetStatus represents the lifecycle state of a pet record.
type PetStatus string

const (
	PetInStock  PetStatus = "IN_STOCK"
	PetSold     PetStatus = "SOLD"
	PetDeceased PetStatus = "DECEASED"
)

// Terminal reports whether no further status transition is permitted.
func (s PetStatus) Terminal() bool {
	return s == PetSold || s == PetDeceased
}

// FeedingDateLayout is the calendar-date format used for feeding dates.
const FeedingDateLayout = "2006-01-02"

// Pet represents an inventory record. ID, Barcode and CreatedAt are
// assigned at intake and never change afterwards.
type Pet struct {
	ID          string    `json:"id"`
	Barcode     string    `json:"barcode"`
	Species     string    `json:"species"`
	Gene        string    `json:"gene"`
	Weight      float64   `json:"weight"`
	FeedingDate string    `json:"feeding_date"`
	CabinetID   string    `json:"cabinet_id"`
	Status      PetStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// IntakeRequest is the payload for registering a new pet.
type IntakeRequest struct {
	Species     string  `json:"species" validate:"required"`
	Gene        string  `json:"gene"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	FeedingDate string  `json:"feeding_date" validate:"omitempty,datetime=2006-01-02"`
	CabinetID   string  `json:"cabinet_id" validate:"required"`
}

// TransitionRequest moves a pet out of stock.
type TransitionRequest struct {
	Status PetStatus `json:"status" validate:"required,oneof=SOLD DECEASED"`
}

// PetFilter captures listing criteria for the inventory.
type PetFilter struct {
	Status *PetStatus
	Search string
}
