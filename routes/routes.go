package routes

import (
	"time"

	"libkiosk/app"
	"libkiosk/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	bookCtl := controllers.NewBookController(s)
	loanCtl := controllers.NewLoanController(s)
	userCtl := controllers.NewUserController(s)

	authMW := app.AuthRequired(s.Repo, a.Config)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/refresh", authCtl.RefreshToken)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/me", authCtl.Me)
	}
	auth.POST("/register", authMW, adminMW, authCtl.Register)

	// ------------------------------
	// Catalog
	// ------------------------------
	books := r.Group("/books", authMW, seenMW)
	{
		books.GET("", bookCtl.ListBooks)
		books.GET("/scan/:barcode", bookCtl.Scan)
		books.GET("/:id", bookCtl.GetBook)
	}
	booksAdmin := r.Group("/books", authMW, adminMW)
	{
		booksAdmin.POST("", bookCtl.CreateBook)
		booksAdmin.PUT("/:id", bookCtl.UpdateBook)
		booksAdmin.DELETE("/:id", bookCtl.DeleteBook)
	}

	// ------------------------------
	// Circulation
	// ------------------------------
	loans := r.Group("/loans", authMW, seenMW)
	{
		loans.POST("/rent", loanCtl.Rent)
		loans.POST("/return", loanCtl.Return)
		loans.POST("/extend", loanCtl.Extend)
		loans.GET("/active", loanCtl.ListActive)
		loans.GET("/user/:id", loanCtl.UserLoans)
		loans.GET("/:id", loanCtl.GetLoan)
	}
	loans.GET("/overdue", adminMW, loanCtl.Overdue)

	// ------------------------------
	// User management (admin)
	// ------------------------------
	users := r.Group("/users", authMW)
	{
		users.GET("", adminMW, userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser) // self or admin, checked in handler
		users.DELETE("/:id", adminMW, userCtl.DeleteUser)
	}
}
