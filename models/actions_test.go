package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailableActions(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rules := DefaultLoanRules()

	available := &Book{ID: "book-1", Barcode: "1234567890128", Status: BookAvailable, IsActive: true}
	loaned := &Book{ID: "book-1", Barcode: "1234567890128", Status: BookLoaned, IsActive: true}
	maintenance := &Book{ID: "book-2", Status: BookMaintenance, IsActive: true}

	ownLoan := func(due time.Time, extensions int) *Loan {
		return &Loan{ID: "loan-1", BookID: "book-1", UserID: "me", DueDate: due, Status: LoanActive, ExtensionsCount: extensions}
	}

	testCases := []struct {
		name   string
		book   *Book
		loan   *Loan
		userID string
		want   []string
	}{
		{
			name:   "available book offers rent",
			book:   available,
			userID: "me",
			want:   []string{ActionRent, ActionInfo},
		},
		{
			name:   "borrower sees return and extend, not rent",
			book:   loaned,
			loan:   ownLoan(now.AddDate(0, 0, 7), 0),
			userID: "me",
			want:   []string{ActionReturn, ActionExtend, ActionInfo},
		},
		{
			name:   "someone else's loan offers info only",
			book:   loaned,
			loan:   ownLoan(now.AddDate(0, 0, 7), 0),
			userID: "other",
			want:   []string{ActionInfo},
		},
		{
			name:   "overdue loan cannot be extended",
			book:   loaned,
			loan:   ownLoan(now.AddDate(0, 0, -2), 0),
			userID: "me",
			want:   []string{ActionReturn, ActionInfo},
		},
		{
			name:   "extension cap removes extend",
			book:   loaned,
			loan:   ownLoan(now.AddDate(0, 0, 7), 2),
			userID: "me",
			want:   []string{ActionReturn, ActionInfo},
		},
		{
			name:   "maintenance book offers info only",
			book:   maintenance,
			userID: "me",
			want:   []string{ActionInfo},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableActions(tt.book, tt.loan, tt.userID, now, rules)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableActionsIgnoresClosedLoan(t *testing.T) {
	now := time.Now().UTC()
	rules := DefaultLoanRules()

	book := &Book{ID: "book-1", Status: BookAvailable, IsActive: true}
	ret := now.Add(-time.Hour)
	closed := &Loan{ID: "loan-1", BookID: "book-1", UserID: "me", DueDate: now.AddDate(0, 0, 7), Status: LoanReturned, ReturnDate: &ret}

	got := AvailableActions(book, closed, "me", now, rules)
	assert.Equal(t, []string{ActionRent, ActionInfo}, got)
}
