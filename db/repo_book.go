package db

import (
	"context"
	"errors"
	"strings"

	"libkiosk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ? AND is_active = TRUE", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindBookByBarcode resolves a scanned barcode to the book and its open loan,
// if any. The loan carries its borrower for the ownership check upstream.
func (r *Repo) FindBookByBarcode(ctx context.Context, barcode string) (*models.Book, *models.Loan, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).
		Where("barcode = ? AND is_active = TRUE", barcode).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBookNotFound
		}
		return nil, nil, err
	}

	var l models.Loan
	err = r.DB.WithContext(ctx).
		Preload("User").
		Where("book_id = ? AND return_date IS NULL", b.ID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &b, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &b, &l, nil
}

func (r *Repo) UpdateBook(ctx context.Context, id string, fields map[string]interface{}) (*models.Book, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if err := tx.Model(&b).Updates(fields).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeactivateBook soft-deletes a catalog entry. A loaned book cannot be
// pulled from circulation until it comes back.
func (r *Repo) DeactivateBook(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if b.Status == models.BookLoaned {
			return ErrBookLoaned
		}
		return tx.Model(&models.Book{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_active": false,
				"status":    models.BookMaintenance,
			}).Error
	})
}

type ListBooksQuery struct {
	Search string // matches title/author/isbn/barcode
	Status string // "", AVAILABLE, LOANED, RESERVED, MAINTENANCE
	Page   int
	Size   int
}

type ListBooksResult struct {
	Books []models.Book `json:"books"`
	Total int64         `json:"total"`
}

func (r *Repo) ListBooks(ctx context.Context, q ListBooksQuery) (ListBooksResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Book{}).Where("is_active = TRUE")
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(COALESCE(isbn, '')) LIKE ? OR LOWER(barcode) LIKE ?",
			like, like, like, like,
		)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListBooksResult{}, err
	}

	var books []models.Book
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&books).Error; err != nil {
		return ListBooksResult{}, err
	}
	return ListBooksResult{Books: books, Total: total}, nil
}
