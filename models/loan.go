package models

import "time"

const LoanTable = "kiosk_loans"

// Stored loan statuses. Overdue is never persisted: it is derived at read
// time from due_date and return_date (see LoanView).
const (
	LoanActive   = "ACTIVE"
	LoanExtended = "EXTENDED"
	LoanReturned = "RETURNED"
)

// LoanRules are the circulation policy knobs, loaded from the environment.
type LoanRules struct {
	LoanDays        int
	ExtensionDays   int
	MaxExtensions   int
	MaxBooksPerUser int
}

func DefaultLoanRules() LoanRules {
	return LoanRules{
		LoanDays:        14,
		ExtensionDays:   7,
		MaxExtensions:   2,
		MaxBooksPerUser: 3,
	}
}

type Loan struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID string `gorm:"type:uuid;index;not null" json:"book_id"`
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	LoanDate   time.Time  `gorm:"index;not null" json:"loan_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `gorm:"index" json:"return_date,omitempty"`

	Status          string `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	ExtensionsCount int    `gorm:"not null;default:0" json:"extensions_count"`
	Notes           string `gorm:"size:500" json:"notes,omitempty"`

	CreatedBy  *string `gorm:"type:uuid" json:"created_by,omitempty"`
	ReturnedBy *string `gorm:"type:uuid" json:"returned_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Loan) TableName() string { return LoanTable }

// IsOpen reports whether the loan still holds the book.
func (l *Loan) IsOpen() bool {
	return l.Status == LoanActive || l.Status == LoanExtended
}

func (l *Loan) IsOverdue(now time.Time) bool {
	return l.IsOpen() && now.After(l.DueDate)
}

func (l *Loan) DaysRemaining(now time.Time) int {
	if !l.IsOpen() {
		return 0
	}
	d := int(l.DueDate.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func (l *Loan) DaysOverdue(now time.Time) int {
	if !l.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(l.DueDate).Hours() / 24)
}

// CanExtend reports whether another extension is permitted: the loan must be
// open, not overdue, and under the extension cap.
func (l *Loan) CanExtend(now time.Time, rules LoanRules) bool {
	return l.IsOpen() && !l.IsOverdue(now) && l.ExtensionsCount < rules.MaxExtensions
}

// LoanView is the API shape of a loan: the stored row plus the derived
// overdue and extension fields.
type LoanView struct {
	Loan
	IsOverdue     bool `json:"is_overdue"`
	DaysRemaining int  `json:"days_remaining"`
	DaysOverdue   int  `json:"days_overdue"`
	CanExtend     bool `json:"can_extend"`
}

func (l *Loan) View(now time.Time, rules LoanRules) LoanView {
	return LoanView{
		Loan:          *l,
		IsOverdue:     l.IsOverdue(now),
		DaysRemaining: l.DaysRemaining(now),
		DaysOverdue:   l.DaysOverdue(now),
		CanExtend:     l.CanExtend(now, rules),
	}
}

// LoanViews maps a loan slice to its API shape.
func LoanViews(loans []Loan, now time.Time, rules LoanRules) []LoanView {
	out := make([]LoanView, 0, len(loans))
	for i := range loans {
		out = append(out, loans[i].View(now, rules))
	}
	return out
}
