package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func openLoan(due time.Time) *Loan {
	return &Loan{
		ID:       "loan-1",
		BookID:   "book-1",
		UserID:   "user-1",
		LoanDate: due.AddDate(0, 0, -14),
		DueDate:  due,
		Status:   LoanActive,
	}
}

func TestLoanOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rules := DefaultLoanRules()

	testCases := []struct {
		name        string
		due         time.Time
		status      string
		returned    bool
		wantOverdue bool
		wantDaysOD  int
		wantDaysRem int
	}{
		{"due in a week", now.AddDate(0, 0, 7), LoanActive, false, false, 0, 7},
		{"due tomorrow", now.Add(24 * time.Hour), LoanActive, false, false, 0, 1},
		{"due an hour ago", now.Add(-time.Hour), LoanActive, false, true, 0, 0},
		{"three days late", now.AddDate(0, 0, -3), LoanActive, false, true, 3, 0},
		{"three days late, extended", now.AddDate(0, 0, -3), LoanExtended, false, true, 3, 0},
		{"already returned", now.AddDate(0, 0, -3), LoanReturned, true, false, 0, 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			l := openLoan(tt.due)
			l.Status = tt.status
			if tt.returned {
				ret := tt.due
				l.ReturnDate = &ret
			}

			assert.Equal(t, tt.wantOverdue, l.IsOverdue(now))
			assert.Equal(t, tt.wantDaysOD, l.DaysOverdue(now))
			assert.Equal(t, tt.wantDaysRem, l.DaysRemaining(now))

			v := l.View(now, rules)
			assert.Equal(t, tt.wantOverdue, v.IsOverdue)
			assert.Equal(t, tt.wantDaysOD, v.DaysOverdue)
			assert.Equal(t, tt.wantDaysRem, v.DaysRemaining)
		})
	}
}

func TestLoanCanExtend(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rules := DefaultLoanRules()

	testCases := []struct {
		name       string
		due        time.Time
		status     string
		extensions int
		want       bool
	}{
		{"fresh active loan", now.AddDate(0, 0, 7), LoanActive, 0, true},
		{"one extension used", now.AddDate(0, 0, 7), LoanExtended, 1, true},
		{"cap reached", now.AddDate(0, 0, 7), LoanExtended, 2, false},
		{"cap reached and overdue", now.AddDate(0, 0, -1), LoanExtended, 2, false},
		{"overdue", now.AddDate(0, 0, -1), LoanActive, 0, false},
		{"returned", now.AddDate(0, 0, 7), LoanReturned, 0, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			l := openLoan(tt.due)
			l.Status = tt.status
			l.ExtensionsCount = tt.extensions
			assert.Equal(t, tt.want, l.CanExtend(now, rules))
		})
	}
}

func TestBookFlags(t *testing.T) {
	b := &Book{ID: "book-1", Barcode: "1234567890128", Status: BookAvailable, IsActive: true}
	assert.True(t, b.IsAvailable())
	assert.False(t, b.IsLoaned())

	b.Status = BookLoaned
	assert.False(t, b.IsAvailable())
	assert.True(t, b.IsLoaned())

	// A deactivated book is never available, whatever its status says.
	b.Status = BookAvailable
	b.IsActive = false
	assert.False(t, b.IsAvailable())
}

func TestBookViewCarriesCurrentLoan(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rules := DefaultLoanRules()

	b := &Book{ID: "book-1", Status: BookLoaned, IsActive: true}
	l := openLoan(now.AddDate(0, 0, 5))

	v := b.View(l, now, rules)
	assert.True(t, v.IsLoaned)
	assert.False(t, v.IsAvailable)
	if assert.NotNil(t, v.CurrentLoan) {
		assert.Equal(t, l.ID, v.CurrentLoan.ID)
		assert.True(t, v.CurrentLoan.CanExtend)
	}

	v = b.View(nil, now, rules)
	assert.Nil(t, v.CurrentLoan)
}
