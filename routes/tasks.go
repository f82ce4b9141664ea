package routes

import (
	"net/http"
	"time"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/models"
	"campus-todo/campustodo/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

func (r taskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		Priority:    r.Priority,
		CategoryID:  r.CategoryID,
	}
}

// RegisterTaskRoutes wires the JSON API and the browser-form variants. All
// of them require an authenticated caller.
func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/api/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/api/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/api/tasks/stats", func(c *gin.Context) { GetTaskStats(c, db, taskService) })
	group.GET("/api/tasks/search", func(c *gin.Context) { SearchTasks(c, db, taskService) })
	group.GET("/api/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/api/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/api/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.PATCH("/api/tasks/:id/complete", func(c *gin.Context) { CompleteTask(c, db, taskService) })

	group.POST("/tasks/create", func(c *gin.Context) { CreateTaskForm(c, db, taskService) })
	group.POST("/tasks/:id/edit", func(c *gin.Context) { EditTaskForm(c, db, taskService) })
	group.POST("/tasks/:id/delete", func(c *gin.Context) { DeleteTaskForm(c, db, taskService) })
	group.POST("/tasks/:id/complete", func(c *gin.Context) { CompleteTaskForm(c, db, taskService) })
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := services.TaskQuery{
		Filter: c.DefaultQuery("filter", "all"),
		Sort:   c.DefaultQuery("sort", "created_at"),
		Search: c.Query("search"),
	}

	if category := c.Query("category"); category != "" {
		categoryID, err := uuid.Parse(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		query.CategoryID = &categoryID
	}

	tasks, err := taskService.GetTasks(db, userID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := toTaskDTOs(tasks)
	c.JSON(http.StatusOK, gin.H{"data": dtos, "count": len(dtos)})
}

func GetTaskStats(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := taskService.GetTaskStats(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func SearchTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search keyword is required"})
		return
	}

	tasks, err := taskService.SearchTasks(db, userID, keyword)
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := toTaskDTOs(tasks)
	c.JSON(http.StatusOK, gin.H{"data": dtos, "count": len(dtos), "keyword": keyword})
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request taskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := taskService.CreateTask(db, userID, request.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": task.ToDTO(time.Now().UTC())})
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task.ToDTO(time.Now().UTC())})
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request taskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := taskService.UpdateTask(db, userID, c.Param("id"), request.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task.ToDTO(time.Now().UTC())})
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "task deleted"})
}

func CompleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.ToggleTaskCompletion(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task.ToDTO(time.Now().UTC())})
}

// Browser-form variants. There is no server-side template layer; the form
// handlers bind posted fields and redirect back to the task list on success.

func CreateTaskForm(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	input, err := taskInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := taskService.CreateTask(db, userID, input); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks")
}

func EditTaskForm(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	input, err := taskInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := taskService.UpdateTask(db, userID, c.Param("id"), input); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks")
}

func DeleteTaskForm(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks")
}

// CompleteTaskForm toggles completion. AJAX callers get a JSON body; plain
// form posts get redirected back to the list.
func CompleteTaskForm(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.ToggleTaskCompletion(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		c.JSON(http.StatusOK, gin.H{"success": true, "is_completed": task.IsCompleted})
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks")
}

var formDeadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func taskInputFromForm(c *gin.Context) (services.TaskInput, error) {
	input := services.TaskInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
	}

	if deadline := c.PostForm("deadline"); deadline != "" {
		parsed, err := parseDeadline(deadline)
		if err != nil {
			return services.TaskInput{}, err
		}
		input.Deadline = parsed
	}

	if category := c.PostForm("category_id"); category != "" {
		categoryID, err := uuid.Parse(category)
		if err != nil {
			return services.TaskInput{}, err
		}
		input.CategoryID = &categoryID
	}

	return input, nil
}

func parseDeadline(value string) (*time.Time, error) {
	var lastErr error
	for _, layout := range formDeadlineLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func toTaskDTOs(tasks []models.Task) []models.TaskDTO {
	now := time.Now().UTC()
	dtos := make([]models.TaskDTO, 0, len(tasks))
	for i := range tasks {
		dtos = append(dtos, tasks[i].ToDTO(now))
	}
	return dtos
}
