package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"libkiosk/app"
	"libkiosk/db"
	"libkiosk/models"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

func (lc *LoanController) view(l *models.Loan) models.LoanView {
	return l.View(time.Now().UTC(), lc.Repo.Rules)
}

// Rent checks a book out to the caller. Admins may pass user_id to rent on
// behalf of a student at the desk.
func (lc *LoanController) Rent(c *gin.Context) {
	var in struct {
		BookID string `json:"book_id" binding:"required"`
		UserID string `json:"user_id"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	actor := callerID(c)
	borrower := in.UserID
	if borrower == "" {
		borrower = actor
	}
	if borrower != actor && !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "only admins can rent books for other users"})
		return
	}

	loan, err := lc.Repo.RentBook(c.Request.Context(), db.RentInput{
		BookID:    in.BookID,
		UserID:    borrower,
		CreatedBy: actor,
		Notes:     strings.TrimSpace(in.Notes),
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"loan": lc.view(loan)})
}

func (lc *LoanController) Return(c *gin.Context) {
	var in struct {
		LoanID string `json:"loan_id" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	loan, err := lc.Repo.ReturnLoan(c.Request.Context(), db.ReturnInput{
		LoanID:  in.LoanID,
		ActorID: callerID(c),
		IsAdmin: callerIsAdmin(c),
		Notes:   in.Notes,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loan": lc.view(loan)})
}

func (lc *LoanController) Extend(c *gin.Context) {
	var in struct {
		LoanID        string `json:"loan_id" binding:"required"`
		ExtensionDays int    `json:"extension_days"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	loan, err := lc.Repo.ExtendLoan(c.Request.Context(), db.ExtendInput{
		LoanID:  in.LoanID,
		ActorID: callerID(c),
		IsAdmin: callerIsAdmin(c),
		Days:    in.ExtensionDays,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loan": lc.view(loan)})
}

// ListActive lists the caller's open loans. Admins may widen with user_id
// or drop the user filter entirely; book_id narrows to one book.
func (lc *LoanController) ListActive(c *gin.Context) {
	userID := callerID(c)
	if callerIsAdmin(c) {
		userID = c.Query("user_id") // empty means all users
	}

	loans, err := lc.Repo.ListActiveLoans(c.Request.Context(), userID, c.Query("book_id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	views := models.LoanViews(loans, time.Now().UTC(), lc.Repo.Rules)
	c.JSON(http.StatusOK, app.H{"loans": views, "total": len(views)})
}

// Overdue lists open loans past due. Admin only; overdue is computed at
// read time, never written back.
func (lc *LoanController) Overdue(c *gin.Context) {
	loans, err := lc.Repo.ListOverdueLoans(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	views := models.LoanViews(loans, time.Now().UTC(), lc.Repo.Rules)
	c.JSON(http.StatusOK, app.H{"overdue_loans": views, "total_overdue": len(views)})
}

func (lc *LoanController) GetLoan(c *gin.Context) {
	loan, err := lc.Repo.FindLoanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if loan.UserID != callerID(c) && !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "you can only view your own loans"})
		return
	}
	c.JSON(http.StatusOK, app.H{"loan": lc.view(loan)})
}

// UserLoans returns a user's loan history with optional status filter.
func (lc *LoanController) UserLoans(c *gin.Context) {
	userID := c.Param("id")
	if userID != callerID(c) && !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "you can only view your own loans"})
		return
	}

	status := strings.ToUpper(c.Query("status"))
	switch status {
	case "", models.LoanActive, models.LoanExtended, models.LoanReturned:
	default:
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := lc.Repo.ListUserLoans(c.Request.Context(), userID, status, page, size)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"loans": models.LoanViews(res.Loans, time.Now().UTC(), lc.Repo.Rules),
		"total": res.Total,
	})
}
