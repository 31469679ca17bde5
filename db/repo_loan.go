package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"libkiosk/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RentInput struct {
	BookID    string
	UserID    string // borrower
	CreatedBy string // acting user (admin may rent for someone else)
	Notes     string
}

// RentBook creates a loan and flips the book to LOANED in one transaction.
// The book row is locked first so two concurrent rents cannot both pass the
// availability check; the loser fails here, not at commit.
func (r *Repo) RentBook(ctx context.Context, in RentInput) (*models.Loan, error) {
	var loan *models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ? AND is_active = TRUE", in.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if b.Status != models.BookAvailable {
			return ErrBookNotAvailable
		}

		var u models.User
		if err := tx.First(&u, "id = ? AND is_active = TRUE", in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.Loan{}).
			Where("user_id = ? AND return_date IS NULL", in.UserID).
			Count(&open).Error; err != nil {
			return err
		}
		if open >= int64(r.Rules.MaxBooksPerUser) {
			return ErrLoanLimit
		}

		now := time.Now().UTC()
		l := &models.Loan{
			ID:       uuid.NewString(),
			BookID:   b.ID,
			UserID:   u.ID,
			LoanDate: now,
			DueDate:  now.AddDate(0, 0, r.Rules.LoanDays),
			Status:   models.LoanActive,
			Notes:    in.Notes,
		}
		if in.CreatedBy != "" {
			l.CreatedBy = &in.CreatedBy
		}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Partial unique index: someone slipped an open loan in.
				return ErrBookNotAvailable
			}
			return err
		}

		if err := tx.Model(&models.Book{}).
			Where("id = ?", b.ID).
			Update("status", models.BookLoaned).Error; err != nil {
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

type ReturnInput struct {
	LoanID  string
	ActorID string // acting user
	IsAdmin bool
	Notes   string
}

// ReturnLoan closes the loan and releases the book atomically.
func (r *Repo) ReturnLoan(ctx context.Context, in ReturnInput) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ?", in.LoanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanNotFound
			}
			return err
		}
		if l.UserID != in.ActorID && !in.IsAdmin {
			return ErrNotOwner
		}
		if !l.IsOpen() {
			return ErrLoanNotActive
		}

		now := time.Now().UTC()
		l.ReturnDate = &now
		l.ReturnedBy = &in.ActorID
		l.Status = models.LoanReturned
		if n := strings.TrimSpace(in.Notes); n != "" {
			l.Notes = strings.TrimSpace(l.Notes + "\nReturn notes: " + n)
		}
		if err := tx.Save(&l).Error; err != nil {
			return err
		}

		return tx.Model(&models.Book{}).
			Where("id = ?", l.BookID).
			Update("status", models.BookAvailable).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type ExtendInput struct {
	LoanID  string
	ActorID string
	IsAdmin bool
	Days    int // 0 means the configured default
}

// ExtendLoan pushes the due date forward. The precondition that fails first
// determines the conflict message the caller sees.
func (r *Repo) ExtendLoan(ctx context.Context, in ExtendInput) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ?", in.LoanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanNotFound
			}
			return err
		}
		if l.UserID != in.ActorID && !in.IsAdmin {
			return ErrNotOwner
		}

		now := time.Now().UTC()
		if !l.IsOpen() {
			return ErrLoanNotActive
		}
		if l.IsOverdue(now) {
			return ErrLoanOverdue
		}
		if l.ExtensionsCount >= r.Rules.MaxExtensions {
			return ErrExtensionLimit
		}

		days := in.Days
		if days <= 0 {
			days = r.Rules.ExtensionDays
		}
		l.DueDate = l.DueDate.AddDate(0, 0, days)
		l.ExtensionsCount++
		l.Status = models.LoanExtended
		return tx.Save(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) FindLoanByID(ctx context.Context, id string) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).
		Preload("Book").
		Preload("User").
		First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListActiveLoans returns open loans ordered by urgency. userID and bookID
// are optional filters.
func (r *Repo) ListActiveLoans(ctx context.Context, userID, bookID string) ([]models.Loan, error) {
	q := r.DB.WithContext(ctx).
		Preload("Book").
		Preload("User").
		Where("return_date IS NULL").
		Order("due_date ASC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if bookID != "" {
		q = q.Where("book_id = ?", bookID)
	}
	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// ListOverdueLoans returns open loans past their due date. Overdue is a
// read-time view; nothing is written back.
func (r *Repo) ListOverdueLoans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.DB.WithContext(ctx).
		Preload("Book").
		Preload("User").
		Where("return_date IS NULL AND due_date < NOW()").
		Order("due_date ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

type ListLoansResult struct {
	Loans []models.Loan `json:"loans"`
	Total int64         `json:"total"`
}

func (r *Repo) ListUserLoans(ctx context.Context, userID, status string, page, size int) (ListLoansResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Loan{}).Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListLoansResult{}, err
	}

	var loans []models.Loan
	if err := tx.
		Preload("Book").
		Order("loan_date DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&loans).Error; err != nil {
		return ListLoansResult{}, err
	}
	return ListLoansResult{Loans: loans, Total: total}, nil
}
