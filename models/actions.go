package models

import "time"

// Kiosk actions offered after a barcode scan.
const (
	ActionRent   = "rent"
	ActionReturn = "return"
	ActionExtend = "extend"
	ActionInfo   = "info"
)

// AvailableActions computes which kiosk actions the requesting user may
// perform on a scanned book. currentLoan is the book's open loan, or nil.
//
// Rent is offered only for an AVAILABLE book. Return and extend are offered
// only to the borrower of the open loan; extend additionally requires that
// the loan is not overdue and has extensions left. Info is always offered.
func AvailableActions(book *Book, currentLoan *Loan, userID string, now time.Time, rules LoanRules) []string {
	actions := []string{}

	if book.IsAvailable() {
		actions = append(actions, ActionRent)
	}
	if currentLoan != nil && currentLoan.IsOpen() && currentLoan.UserID == userID {
		actions = append(actions, ActionReturn)
		if currentLoan.CanExtend(now, rules) {
			actions = append(actions, ActionExtend)
		}
	}

	return append(actions, ActionInfo)
}
