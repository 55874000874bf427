package entity

import "time"

// Pet belongs to exactly one user. ImageURL points at the uploaded photo in
// object storage, empty until a photo is uploaded.
type Pet struct {
	ID        int64
	UserID    int64
	Name      string
	Breed     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity is a logged activity session for a pet (walk, play, training...).
type Activity struct {
	ID       int64
	UserID   int64
	PetID    int64
	Type     string
	Date     time.Time
	Duration string
	Notes    string
}

// HealthRecord is a vet visit, vaccination, or similar entry for a pet.
type HealthRecord struct {
	ID     int64
	UserID int64
	PetID  int64
	Type   string
	Date   time.Time
	Notes  string
}

// Meal is a fed meal entry for a pet.
type Meal struct {
	ID       int64
	UserID   int64
	PetID    int64
	FoodType string
	Amount   string
	Time     time.Time
	Notes    string
}
