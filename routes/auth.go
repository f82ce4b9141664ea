package routes

import (
	"net/http"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// RegisterAuthRoutes wires the account endpoints. Register and login are
// public; logout needs a valid token to know which session to revoke.
func RegisterAuthRoutes(router *gin.Engine, authorized *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface, authService services.AuthServiceInterface) {
	router.POST("/api/users/register", func(c *gin.Context) { Register(c, db, userService) })
	router.POST("/api/users/login", func(c *gin.Context) { Login(c, db, authService) })
	authorized.POST("/api/users/logout", func(c *gin.Context) { Logout(c, db, authService) })
	authorized.GET("/api/users/me", func(c *gin.Context) { GetCurrentUser(c, db, userService) })
	authorized.DELETE("/api/users/me", func(c *gin.Context) { DeleteCurrentUser(c, db, userService) })
}

func Register(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService.Register(db, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user.ToDTO()})
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokenString, err := authService.Login(db, request.Username, request.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": loginResponse{Token: tokenString}})
}

func GetCurrentUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := userService.GetUserById(db, userID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.ToDTO()})
}

// DeleteCurrentUser removes the account and everything it owns. The caller's
// token stays signed but points at a deleted user afterwards; it expires on
// its own schedule.
func DeleteCurrentUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := userService.DeleteUser(db, userID.String()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "account deleted"})
}

func Logout(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	claimsInterface, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	claims := claimsInterface.(*services.JWTClaims)
	if err := authService.Logout(db, claims); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "logged out"})
}
