package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/models"
	"campus-todo/campustodo/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	testUserID  = uuid.Must(uuid.Parse("90a12345-f12a-98c4-a456-513432930000"))
	knownTaskID = uuid.Must(uuid.Parse("123e4567-e89b-12d3-a456-426614174000"))
)

type MockTaskService struct{}

func (m *MockTaskService) GetTasks(db *database.Database, userID uuid.UUID, query services.TaskQuery) ([]models.Task, error) {
	tasks := []models.Task{
		{ID: knownTaskID, UserID: userID, Title: "Test Task", Priority: models.PriorityUrgentImportant},
		{ID: uuid.Must(uuid.Parse("123e4567-e89b-12d3-a456-426614174001")), UserID: userID, Title: "Test Task 2", IsCompleted: true, Priority: models.DefaultPriority},
	}

	var filtered []models.Task
	for _, task := range tasks {
		switch query.Filter {
		case "completed":
			if !task.IsCompleted {
				continue
			}
		case "pending":
			if task.IsCompleted {
				continue
			}
		}
		filtered = append(filtered, task)
	}
	return filtered, nil
}

func (m *MockTaskService) SearchTasks(db *database.Database, userID uuid.UUID, keyword string) ([]models.Task, error) {
	return []models.Task{
		{ID: knownTaskID, UserID: userID, Title: "Matched " + keyword, Priority: models.DefaultPriority},
	}, nil
}

func (m *MockTaskService) GetTaskStats(db *database.Database, userID uuid.UUID) (models.TaskStats, error) {
	return models.TaskStats{Total: 2, Completed: 1, Pending: 1, Overdue: 0}, nil
}

func (m *MockTaskService) CreateTask(db *database.Database, userID uuid.UUID, input services.TaskInput) (models.Task, error) {
	if input.Title == "" {
		return models.Task{}, services.NewValidationError("task title must not be empty")
	}
	return models.Task{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    input.Title,
		Priority: models.DefaultPriority,
	}, nil
}

func (m *MockTaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	if id == knownTaskID.String() {
		return models.Task{ID: knownTaskID, UserID: userID, Title: "Test Task", Priority: models.DefaultPriority}, nil
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (m *MockTaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, input services.TaskInput) (models.Task, error) {
	if id == knownTaskID.String() {
		return models.Task{ID: knownTaskID, UserID: userID, Title: input.Title, Priority: models.DefaultPriority}, nil
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (m *MockTaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	if id == knownTaskID.String() {
		return nil
	}
	return services.ErrTaskNotFound
}

func (m *MockTaskService) ToggleTaskCompletion(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	if id == knownTaskID.String() {
		return models.Task{ID: knownTaskID, UserID: userID, Title: "Test Task", IsCompleted: true, Priority: models.DefaultPriority}, nil
	}
	return models.Task{}, services.ErrTaskNotFound
}

func setupTaskRouter(authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("")
	if authenticated {
		group.Use(func(c *gin.Context) {
			c.Set("userID", testUserID)
			c.Next()
		})
	}
	RegisterTaskRoutes(group, nil, &MockTaskService{})
	return router
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestGetTasksRoute(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["count"])
}

func TestGetTasksRouteFilterCompleted(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks?filter=completed", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["count"])
}

func TestGetTasksRouteInvalidCategory(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks?category=not-a-uuid", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetTasksRouteUnauthenticated(t *testing.T) {
	router := setupTaskRouter(false)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateTaskRoute(t *testing.T) {
	router := setupTaskRouter(true)

	payload, _ := json.Marshal(map[string]interface{}{"title": "Buy milk", "priority": models.PriorityUrgentImportant})
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("POST", "/api/tasks", bytes.NewBuffer(payload))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Buy milk", data["title"])
}

func TestCreateTaskRouteValidationError(t *testing.T) {
	router := setupTaskRouter(true)

	payload, _ := json.Marshal(map[string]interface{}{"title": ""})
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("POST", "/api/tasks", bytes.NewBuffer(payload))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.NotEmpty(t, body["error"])
	assert.Len(t, body["errors"], 1)
}

func TestGetTaskByIdRouteNotFound(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks/"+uuid.New().String(), nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCompleteTaskRoute(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("PATCH", "/api/tasks/"+knownTaskID.String()+"/complete", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_completed"])
}

func TestSearchTasksRouteRequiresKeyword(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks/search", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearchTasksRoute(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks/search?keyword=milk", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "milk", body["keyword"])
	assert.Equal(t, float64(1), body["count"])
}

func TestGetTaskStatsRoute(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/tasks/stats", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["pending"])
}

func TestCompleteTaskFormRouteAjax(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("POST", "/tasks/"+knownTaskID.String()+"/complete", nil)
	request.Header.Set("X-Requested-With", "XMLHttpRequest")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["is_completed"])
}

func TestCompleteTaskFormRouteRedirects(t *testing.T) {
	router := setupTaskRouter(true)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("POST", "/tasks/"+knownTaskID.String()+"/complete", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/tasks", recorder.Header().Get("Location"))
}

func TestCreateTaskFormRouteRedirects(t *testing.T) {
	router := setupTaskRouter(true)

	form := bytes.NewBufferString("title=Buy+milk&priority=urgent_important&deadline=2026-09-01T10:00")
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("POST", "/tasks/create", form)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/tasks", recorder.Header().Get("Location"))
}

func TestParseDeadlineLayouts(t *testing.T) {
	for _, value := range []string{
		"2026-09-01T10:00:00Z",
		"2026-09-01T10:00:00",
		"2026-09-01T10:00",
		"2026-09-01",
	} {
		parsed, err := parseDeadline(value)
		assert.NoError(t, err, value)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, time.September, parsed.Month())
	}

	_, err := parseDeadline("next tuesday")
	assert.Error(t, err)
}
