package controllers

import (
	"net/http"
	"strings"

	"libkiosk/app"
	"libkiosk/db"
	"libkiosk/models"
	"libkiosk/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil || !app.VerifyPassword(in.Password, u.PasswordHash) {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid email or password"})
		return
	}
	if !u.IsActive {
		c.JSON(http.StatusUnauthorized, app.H{"error": "account deactivated"})
		return
	}

	access, _, err := token.Issue(ac.Cfg.JWTSecret, u.ID, u.Role, token.TypeAccess, ac.Cfg.AccessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	refresh, jti, err := token.Issue(ac.Cfg.JWTSecret, u.ID, u.Role, token.TypeRefresh, ac.Cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if err := ac.Refresh.Save(c.Request.Context(), jti, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	_ = ac.Repo.TouchUserLogin(c.Request.Context(), u.ID)

	c.JSON(http.StatusOK, app.H{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"user":          u,
	})
}

// RefreshToken exchanges a live refresh token for a new access token. The
// token must still be present in the store: logout revokes it.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	claims, err := token.Parse(ac.Cfg.JWTSecret, in.RefreshToken)
	if err != nil || claims.Type != token.TypeRefresh {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid refresh token"})
		return
	}
	if _, err := ac.Refresh.Check(c.Request.Context(), claims.JTI); err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid refresh token"})
		return
	}

	u, err := ac.Repo.FindUserByID(c.Request.Context(), claims.UserID)
	if err != nil || !u.IsActive {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid refresh token"})
		return
	}

	access, _, err := token.Issue(ac.Cfg.JWTSecret, u.ID, u.Role, token.TypeAccess, ac.Cfg.AccessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"access_token": access, "token_type": "bearer"})
}

func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.Refresh.RevokeAllForUser(c.Request.Context(), callerID(c))
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ac *AuthController) Me(c *gin.Context) {
	u, err := ac.Repo.FindUserByID(c.Request.Context(), callerID(c))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// Register provisions a new account. Admin only.
func (ac *AuthController) Register(c *gin.Context) {
	var in struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		StudentID string `json:"student_id"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	role := models.RoleStudent
	if in.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	hash, err := app.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if sid := strings.TrimSpace(in.StudentID); sid != "" {
		u.StudentID = &sid
	}

	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		if err == db.ErrDuplicate {
			c.JSON(http.StatusConflict, app.H{"error": "a user with this email or student id already exists"})
			return
		}
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}
