package models

import "time"

const BookTable = "kiosk_books"

// Book catalog statuses. LOANED is only ever set by the loan lifecycle
// (rent/return); RESERVED and MAINTENANCE are set by admins.
const (
	BookAvailable   = "AVAILABLE"
	BookLoaned      = "LOANED"
	BookReserved    = "RESERVED"
	BookMaintenance = "MAINTENANCE"
)

type Book struct {
	ID              string  `gorm:"type:uuid;primaryKey" json:"id"`
	Barcode         string  `gorm:"uniqueIndex;size:50;not null" json:"barcode"`
	ISBN            *string `gorm:"uniqueIndex;size:20" json:"isbn,omitempty"`
	Title           string  `gorm:"size:255;not null" json:"title"`
	Author          string  `gorm:"size:255;not null" json:"author"`
	Publisher       string  `gorm:"size:255" json:"publisher,omitempty"`
	PublicationYear int     `json:"publication_year,omitempty"`
	Edition         string  `gorm:"size:50" json:"edition,omitempty"`
	Pages           int     `json:"pages,omitempty"`
	Language        string  `gorm:"size:10;not null;default:'es'" json:"language"`
	Subject         string  `gorm:"size:255" json:"subject,omitempty"`
	Description     string  `gorm:"type:text" json:"description,omitempty"`
	Location        string  `gorm:"size:100" json:"location,omitempty"`
	Status          string  `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	IsActive        bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string { return BookTable }

func (b *Book) IsAvailable() bool { return b.Status == BookAvailable && b.IsActive }

func (b *Book) IsLoaned() bool { return b.Status == BookLoaned }

// BookView is the API shape of a book: the stored row plus derived flags and,
// when loaned, the current open loan.
type BookView struct {
	Book
	IsAvailable bool      `json:"is_available"`
	IsLoaned    bool      `json:"is_loaned"`
	CurrentLoan *LoanView `json:"current_loan,omitempty"`
}

// View builds the response shape for a book. currentLoan may be nil.
func (b *Book) View(currentLoan *Loan, now time.Time, rules LoanRules) BookView {
	v := BookView{
		Book:        *b,
		IsAvailable: b.IsAvailable(),
		IsLoaned:    b.IsLoaned(),
	}
	if currentLoan != nil {
		lv := currentLoan.View(now, rules)
		v.CurrentLoan = &lv
	}
	return v
}
