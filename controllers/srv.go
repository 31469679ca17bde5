// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"

	"libkiosk/app"
	"libkiosk/db"
	"libkiosk/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo    *db.Repo
	Refresh *session.RefreshStore
	Cfg     app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    db.NewRepo(a.DB, a.Config.Rules),
		Refresh: a.RefreshTokens(),
		Cfg:     a.Config,
	}
}

// --- helpers ---

func callerID(c *gin.Context) string {
	v, _ := c.Get("userID")
	id, _ := v.(string)
	return id
}

func callerIsAdmin(c *gin.Context) bool {
	v, _ := c.Get("isAdmin")
	admin, _ := v.(bool)
	return admin
}

// writeRepoError maps repo sentinels to HTTP statuses: lookups to 404,
// ownership to 403, business-rule conflicts to 409, anything else to 500.
// Conflict reasons are passed to the caller verbatim.
func writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrBookNotFound),
		errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotOwner):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrBookNotAvailable),
		errors.Is(err, db.ErrBookLoaned),
		errors.Is(err, db.ErrLoanNotActive),
		errors.Is(err, db.ErrLoanOverdue),
		errors.Is(err, db.ErrExtensionLimit),
		errors.Is(err, db.ErrLoanLimit),
		errors.Is(err, db.ErrHasOpenLoans),
		errors.Is(err, db.ErrDuplicate):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
