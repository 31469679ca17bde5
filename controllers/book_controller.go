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
	"github.com/google/uuid"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// Scan resolves a barcode to the book, its open loan, and the actions the
// caller may take. Read-only.
func (bc *BookController) Scan(c *gin.Context) {
	barcode := strings.TrimSpace(c.Param("barcode"))
	if barcode == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "barcode cannot be empty"})
		return
	}

	book, loan, err := bc.Repo.FindBookByBarcode(c.Request.Context(), barcode)
	if err != nil {
		writeRepoError(c, err)
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, app.H{
		"book":              book.View(loan, now, bc.Repo.Rules),
		"available_actions": models.AvailableActions(book, loan, callerID(c), now, bc.Repo.Rules),
	})
}

func (bc *BookController) GetBook(c *gin.Context) {
	book, err := bc.Repo.FindBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}

	loans, err := bc.Repo.ListActiveLoans(c.Request.Context(), "", book.ID)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	var current *models.Loan
	if len(loans) > 0 {
		current = &loans[0]
	}

	c.JSON(http.StatusOK, app.H{"book": book.View(current, time.Now().UTC(), bc.Repo.Rules)})
}

func (bc *BookController) ListBooks(c *gin.Context) {
	q := db.ListBooksQuery{
		Search: c.Query("search"),
		Status: strings.ToUpper(c.Query("status")),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := bc.Repo.ListBooks(c.Request.Context(), q)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type bookInput struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Barcode         string  `json:"barcode"`
	ISBN            *string `json:"isbn"`
	Publisher       string  `json:"publisher"`
	PublicationYear int     `json:"publication_year"`
	Edition         string  `json:"edition"`
	Pages           int     `json:"pages"`
	Language        string  `json:"language"`
	Subject         string  `json:"subject"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
}

// CreateBook adds a catalog entry. Admin only.
func (bc *BookController) CreateBook(c *gin.Context) {
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Barcode = strings.TrimSpace(in.Barcode)
	if in.Title == "" || in.Author == "" || in.Barcode == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "title, author and barcode are required"})
		return
	}
	if in.Language == "" {
		in.Language = "es"
	}

	b := &models.Book{
		ID:              uuid.NewString(),
		Barcode:         in.Barcode,
		ISBN:            in.ISBN,
		Title:           in.Title,
		Author:          in.Author,
		Publisher:       in.Publisher,
		PublicationYear: in.PublicationYear,
		Edition:         in.Edition,
		Pages:           in.Pages,
		Language:        in.Language,
		Subject:         in.Subject,
		Description:     in.Description,
		Location:        in.Location,
		Status:          models.BookAvailable,
		IsActive:        true,
	}
	if err := bc.Repo.CreateBook(c.Request.Context(), b); err != nil {
		if err == db.ErrDuplicate {
			c.JSON(http.StatusConflict, app.H{"error": "a book with this barcode or isbn already exists"})
			return
		}
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"book": b})
}

// UpdateBook edits bibliographic fields and, optionally, the status. Admin
// only. LOANED cannot be set by hand; that transition belongs to rent.
func (bc *BookController) UpdateBook(c *gin.Context) {
	var in map[string]interface{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	for _, k := range []string{
		"title", "author", "isbn", "publisher", "publication_year",
		"edition", "pages", "language", "subject", "description", "location",
	} {
		if v, ok := in[k]; ok {
			fields[k] = v
		}
	}
	if v, ok := in["status"]; ok {
		s, _ := v.(string)
		switch strings.ToUpper(s) {
		case models.BookAvailable, models.BookReserved, models.BookMaintenance:
			fields["status"] = strings.ToUpper(s)
		default:
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
			return
		}
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "no updatable fields provided"})
		return
	}

	b, err := bc.Repo.UpdateBook(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"book": b})
}

// DeleteBook deactivates a catalog entry. Admin only.
func (bc *BookController) DeleteBook(c *gin.Context) {
	if err := bc.Repo.DeactivateBook(c.Request.Context(), c.Param("id")); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
