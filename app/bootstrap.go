package app

import (
	"context"
	"errors"
	"log"

	"libkiosk/db"
	"libkiosk/models"

	"github.com/google/uuid"
)

// EnsureAdmin creates the default admin account on first boot so the kiosk
// is usable before any provisioning has happened.
func EnsureAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminEmail == "" {
		return
	}
	if _, err := repo.FindUserByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	} else if !errors.Is(err, db.ErrUserNotFound) {
		log.Printf("bootstrap admin lookup failed: %v", err)
		return
	}

	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("bootstrap admin hash failed: %v", err)
		return
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		FirstName:    "Library",
		LastName:     "Admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created default admin %s", cfg.AdminEmail)
}

// SeedDemoData loads a handful of students and catalog entries for demo
// installs. Guarded by SEED_DEMO_DATA.
func SeedDemoData(ctx context.Context, cfg Config, repo *db.Repo) {
	students := []models.User{
		{Email: "juan.perez@uai.edu", FirstName: "Juan", LastName: "Pérez"},
		{Email: "maria.gonzalez@uai.edu", FirstName: "María", LastName: "González"},
		{Email: "carlos.rodriguez@uai.edu", FirstName: "Carlos", LastName: "Rodríguez"},
	}
	studentIDs := []string{"2021001", "2021002", "2021003"}

	for i := range students {
		u := students[i]
		if _, err := repo.FindUserByEmail(ctx, u.Email); err == nil {
			continue
		}
		hash, err := HashPassword("student123")
		if err != nil {
			log.Printf("seed: hash failed: %v", err)
			return
		}
		u.ID = uuid.NewString()
		u.StudentID = &studentIDs[i]
		u.PasswordHash = hash
		u.Role = models.RoleStudent
		u.IsActive = true
		if err := repo.CreateUser(ctx, &u); err != nil {
			log.Printf("seed: create student %s: %v", u.Email, err)
		}
	}

	isbn1 := "9788478887194"
	isbn2 := "9780060883287"
	books := []models.Book{
		{
			Title:           "El principito",
			Author:          "Antoine de Saint-Exupéry",
			Barcode:         "1234567890128",
			ISBN:            &isbn1,
			Publisher:       "Salamandra",
			PublicationYear: 1943,
			Subject:         "Literatura",
			Location:        "A-001-01",
		},
		{
			Title:           "Cien años de soledad",
			Author:          "Gabriel García Márquez",
			Barcode:         "001001001",
			ISBN:            &isbn2,
			Publisher:       "Harper",
			PublicationYear: 1967,
			Subject:         "Literatura",
			Location:        "A-001-02",
		},
		{
			Title:           "Introducción a los algoritmos",
			Author:          "Thomas H. Cormen",
			Barcode:         "001001002",
			Publisher:       "MIT Press",
			PublicationYear: 2009,
			Subject:         "Computación",
			Location:        "B-014-03",
		},
	}

	for i := range books {
		b := books[i]
		b.ID = uuid.NewString()
		b.Language = "es"
		b.Status = models.BookAvailable
		b.IsActive = true
		if err := repo.CreateBook(ctx, &b); err != nil && !errors.Is(err, db.ErrDuplicate) {
			log.Printf("seed: create book %s: %v", b.Barcode, err)
		}
	}
	log.Println("[BOOTSTRAP] demo data seeded")
}
