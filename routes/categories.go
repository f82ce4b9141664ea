package routes

import (
	"net/http"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/services"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func RegisterCategoryRoutes(group *gin.RouterGroup, db *database.Database, categoryService services.CategoryServiceInterface) {
	group.GET("/api/categories", func(c *gin.Context) { GetCategories(c, db, categoryService) })
	group.POST("/api/categories", func(c *gin.Context) { CreateCategory(c, db, categoryService) })
	group.DELETE("/api/categories/:id", func(c *gin.Context) { DeleteCategory(c, db, categoryService) })

	group.POST("/categories/create", func(c *gin.Context) { CreateCategoryForm(c, db, categoryService) })
	group.POST("/categories/:id/delete", func(c *gin.Context) { DeleteCategoryForm(c, db, categoryService) })
}

func GetCategories(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	categories, err := categoryService.GetCategories(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
}

func CreateCategory(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request categoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := categoryService.CreateCategory(db, userID, request.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category.ToDTO(0)})
}

func DeleteCategory(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := categoryService.DeleteCategory(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "category deleted"})
}

func CreateCategoryForm(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if _, err := categoryService.CreateCategory(db, userID, c.PostForm("name")); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks")
}

func DeleteCategoryForm(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := categoryService.DeleteCategory(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks")
}
