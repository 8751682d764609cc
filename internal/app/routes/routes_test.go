package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/controllers"
	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/app/routes"
	"github.com/askelund/learnly/internal/app/services"
	"github.com/askelund/learnly/internal/middleware"
	"github.com/askelund/learnly/internal/pkg/apperrors"
	"github.com/askelund/learnly/internal/pkg/auth"
)

// In-memory stores standing in for postgres. They mirror the unique
// constraints so handlers see the same domain errors.

type memAccountRepo struct {
	byEmail map[string]*models.Account
	nextID  int64
}

func (r *memAccountRepo) Create(_ context.Context, a *models.Account) (int64, error) {
	if _, ok := r.byEmail[a.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now()
	r.byEmail[a.Email] = a
	return a.ID, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return a, nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (r *memAccountRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

type memCourseRepo struct {
	courses  map[int64]*models.Course
	elements map[int64][]models.CourseElementContent
	nextID   int64
}

func (r *memCourseRepo) CreateWithElements(_ context.Context, c *models.Course, els []models.NewCourseElement) error {
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	r.courses[c.ID] = c
	var stored []models.CourseElementContent
	for i, el := range els {
		stored = append(stored, models.CourseElementContent{
			ID: int64(i + 1), Type: el.Type, Text: el.Text, Label: el.Label, Answer: el.Answer,
		})
	}
	r.elements[c.ID] = stored
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (r *memCourseRepo) GetElements(_ context.Context, courseID int64) ([]models.CourseElementContent, error) {
	return r.elements[courseID], nil
}

func (r *memCourseRepo) List(_ context.Context) ([]models.Course, error) {
	var out []models.Course
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *memCourseRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.courses[id]
	return ok, nil
}

type pairKey struct{ a, b int64 }

type memEnrollmentRepo struct {
	rows   map[pairKey]*models.Enrollment
	nextID int64
}

func (r *memEnrollmentRepo) Create(_ context.Context, studentID, courseID int64) error {
	k := pairKey{studentID, courseID}
	if _, ok := r.rows[k]; ok {
		return apperrors.ErrAlreadyEnrolled
	}
	r.rows[k] = &models.Enrollment{ID: r.nextID, StudentID: studentID, CourseID: courseID, EnrolledAt: time.Now()}
	r.nextID++
	return nil
}

func (r *memEnrollmentRepo) Get(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	e, ok := r.rows[pairKey{studentID, courseID}]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

func (r *memEnrollmentRepo) Delete(_ context.Context, studentID, courseID int64) error {
	k := pairKey{studentID, courseID}
	if _, ok := r.rows[k]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(r.rows, k)
	return nil
}

func (r *memEnrollmentRepo) SetCompleted(_ context.Context, studentID, courseID int64) error {
	e, ok := r.rows[pairKey{studentID, courseID}]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Completed = true
	return nil
}

type memXPRepo struct {
	awards map[pairKey]int64
}

func (r *memXPRepo) Create(_ context.Context, award *models.XPAward) error {
	k := pairKey{award.UserID, award.CourseID}
	if _, ok := r.awards[k]; ok {
		return apperrors.ErrXPAlreadyAwarded
	}
	r.awards[k] = award.XPEarned
	return nil
}

func (r *memXPRepo) Exists(_ context.Context, userID, courseID int64) (bool, error) {
	_, ok := r.awards[pairKey{userID, courseID}]
	return ok, nil
}

func (r *memXPRepo) TotalForUser(_ context.Context, userID int64) (int64, error) {
	var total int64
	for k, xp := range r.awards {
		if k.a == userID {
			total += xp
		}
	}
	return total, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lgr := zerolog.Nop()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "learnly.test",
	})

	accountRepo := &memAccountRepo{byEmail: map[string]*models.Account{}, nextID: 1}
	courseRepo := &memCourseRepo{courses: map[int64]*models.Course{}, elements: map[int64][]models.CourseElementContent{}, nextID: 1}
	enrollmentRepo := &memEnrollmentRepo{rows: map[pairKey]*models.Enrollment{}, nextID: 1}
	xpRepo := &memXPRepo{awards: map[pairKey]int64{}}

	authService := services.NewAuthService(accountRepo, jwtService, lgr)
	courseService := services.NewCourseService(courseRepo, lgr)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, lgr)
	xpService := services.NewXPService(xpRepo, lgr)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(authService, lgr),
		controllers.NewCourseController(courseService, lgr),
		controllers.NewEnrollmentController(enrollmentService, lgr),
		controllers.NewXPController(xpService, lgr),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) (accessToken, refreshToken string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/register", "", gin.H{
		"fullName": "Test Student", "email": email, "password": "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/login", "", gin.H{
		"email": email, "password": "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	access, _ := body["access_token"].(string)
	refresh, _ := body["refresh_token"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("login response missing tokens: %v", body)
	}
	return access, refresh
}

func createCourse(t *testing.T, router *gin.Engine, token, title string) int64 {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", token, gin.H{
		"courseTitle": title,
		"elements": []gin.H{
			{"type": "Text", "text": "Welcome"},
			{"type": "Input", "label": "2+2?", "answer": "4"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create course status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	course, _ := body["course"].(map[string]any)
	id, _ := course["id"].(float64)
	if id == 0 {
		t.Fatalf("course id missing in %v", body)
	}
	return int64(id)
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/register", "", gin.H{"email": "a@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing fields status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/register", "", gin.H{
		"fullName": "A", "email": "not-an-email", "password": "pw",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email status = %d", w.Code)
	}

	payload := gin.H{"fullName": "A", "email": "a@example.com", "password": "pw"}
	if w = doJSON(t, router, http.MethodPost, "/api/v1/register", "", payload); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/api/v1/register", "", payload)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d", w.Code)
	}
	if body := decode(t, w); body["error"] != "Email already exists" {
		t.Errorf("duplicate register body = %v", body)
	}
}

func TestLoginFailures(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "a@example.com")

	for name, creds := range map[string]gin.H{
		"unknown email":  {"email": "nobody@example.com", "password": "pw123456"},
		"wrong password": {"email": "a@example.com", "password": "wrong"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/login", "", creds)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", name, w.Code)
		}
		if body := decode(t, w); body["error"] != "Invalid email or password" {
			t.Errorf("%s body = %v", name, body)
		}
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/login", "", gin.H{"email": "a@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d, want 400", w.Code)
	}
}

func TestProtectedRoutesRequireAccessToken(t *testing.T) {
	router := newTestRouter(t)
	_, refresh := registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/courses", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/courses", "garbage.token.here", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}

	// a refresh token must not open protected routes
	w = doJSON(t, router, http.MethodGet, "/api/v1/courses", refresh, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token on protected route status = %d, want 401", w.Code)
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	router := newTestRouter(t)
	access, refresh := registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/refresh-token", refresh, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	newAccess, _ := body["access_token"].(string)
	if newAccess == "" {
		t.Fatalf("refresh response missing access_token: %v", body)
	}

	// the minted token works on protected routes
	if w = doJSON(t, router, http.MethodGet, "/api/v1/courses", newAccess, nil); w.Code != http.StatusOK {
		t.Errorf("minted access token status = %d, want 200", w.Code)
	}

	// an access token is not a refresh credential
	if w = doJSON(t, router, http.MethodPost, "/api/v1/refresh-token", access, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh with access token status = %d, want 401", w.Code)
	}

	if w = doJSON(t, router, http.MethodPost, "/api/v1/refresh-token", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh without token status = %d, want 401", w.Code)
	}
}

func TestEnrollmentLifecycle(t *testing.T) {
	router := newTestRouter(t)
	access, _ := registerAndLogin(t, router, "a@example.com")
	courseID := createCourse(t, router, access, "Go Basics")
	enrollPath := fmt.Sprintf("/api/v1/course/enrollment/%d", courseID)

	// not enrolled yet
	w := doJSON(t, router, http.MethodGet, enrollPath, access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status check = %d", w.Code)
	}
	if body := decode(t, w); body["enrolled"] != false {
		t.Errorf("pre-enroll body = %v", body)
	}

	// enroll, then enroll again
	if w = doJSON(t, router, http.MethodPost, enrollPath, access, nil); w.Code != http.StatusCreated {
		t.Fatalf("enroll status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPost, enrollPath, access, nil)
	if w.Code != http.StatusOK {
		t.Errorf("re-enroll status = %d, want 200", w.Code)
	}
	if body := decode(t, w); body["message"] != "Already enrolled" {
		t.Errorf("re-enroll body = %v", body)
	}

	// unknown course
	w = doJSON(t, router, http.MethodPost, "/api/v1/course/enrollment/999", access, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("enroll unknown course status = %d, want 404", w.Code)
	}

	// enrolled status now carries the timestamp
	w = doJSON(t, router, http.MethodGet, enrollPath, access, nil)
	body := decode(t, w)
	if body["enrolled"] != true {
		t.Errorf("post-enroll body = %v", body)
	}
	if at, _ := body["enrolled_at"].(string); at == "" {
		t.Errorf("enrolled_at missing: %v", body)
	}

	// completion requires enrollment; completing twice is safe
	completePath := enrollPath + "/complete"
	if w = doJSON(t, router, http.MethodGet, completePath, access, nil); w.Code != http.StatusOK {
		t.Fatalf("completion status = %d", w.Code)
	}
	if body := decode(t, w); body["completed"] != false {
		t.Errorf("pre-complete body = %v", body)
	}
	if w = doJSON(t, router, http.MethodPost, completePath, access, nil); w.Code != http.StatusOK {
		t.Fatalf("complete status = %d", w.Code)
	}
	if w = doJSON(t, router, http.MethodPost, completePath, access, nil); w.Code != http.StatusOK {
		t.Errorf("second complete status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, completePath, access, nil)
	if body := decode(t, w); body["completed"] != true {
		t.Errorf("post-complete body = %v", body)
	}

	// unenroll, then the row is gone
	if w = doJSON(t, router, http.MethodDelete, enrollPath, access, nil); w.Code != http.StatusOK {
		t.Fatalf("unenroll status = %d", w.Code)
	}
	if w = doJSON(t, router, http.MethodDelete, enrollPath, access, nil); w.Code != http.StatusNotFound {
		t.Errorf("second unenroll status = %d, want 404", w.Code)
	}
	if w = doJSON(t, router, http.MethodPost, completePath, access, nil); w.Code != http.StatusNotFound {
		t.Errorf("complete after unenroll status = %d, want 404", w.Code)
	}
}

func TestXPFlow(t *testing.T) {
	router := newTestRouter(t)
	access, _ := registerAndLogin(t, router, "a@example.com")
	courseID := createCourse(t, router, access, "Go Basics")
	secondCourseID := createCourse(t, router, access, "Advanced Go")

	// missing fields
	w := doJSON(t, router, http.MethodPost, "/api/v1/xp", access, gin.H{"course_id": courseID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("xp without amount status = %d, want 400", w.Code)
	}

	if w = doJSON(t, router, http.MethodPost, "/api/v1/xp", access, gin.H{"course_id": courseID, "xp_earned": 150}); w.Code != http.StatusCreated {
		t.Fatalf("xp award status = %d, body %s", w.Code, w.Body.String())
	}

	// write-once per course
	w = doJSON(t, router, http.MethodPost, "/api/v1/xp", access, gin.H{"course_id": courseID, "xp_earned": 999})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate xp status = %d, want 400", w.Code)
	}

	if w = doJSON(t, router, http.MethodPost, "/api/v1/xp", access, gin.H{"course_id": secondCourseID, "xp_earned": 200}); w.Code != http.StatusCreated {
		t.Fatalf("second course xp status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/xp/total", access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("xp total status = %d", w.Code)
	}
	body := decode(t, w)
	if body["total_xp"] != float64(350) {
		t.Errorf("total_xp = %v, want 350", body["total_xp"])
	}

	// per-user variant; a user with no awards reports zero
	w = doJSON(t, router, http.MethodGet, "/api/v1/xp/total/999", access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("per-user xp total status = %d", w.Code)
	}
	if body := decode(t, w); body["total_xp"] != float64(0) {
		t.Errorf("stranger total_xp = %v, want 0", body["total_xp"])
	}
}

func TestCourseEndpoints(t *testing.T) {
	router := newTestRouter(t)
	access, _ := registerAndLogin(t, router, "a@example.com")
	courseID := createCourse(t, router, access, "Go Basics")

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", courseID), access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get course status = %d", w.Code)
	}
	body := decode(t, w)
	elements, _ := body["elements"].([]any)
	if len(elements) != 2 {
		t.Errorf("element count = %d, want 2", len(elements))
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/courses/999", access, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown course status = %d, want 404", w.Code)
	}

	if w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", courseID), access, nil); w.Code != http.StatusOK {
		t.Fatalf("delete course status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", courseID), access, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted course status = %d, want 404", w.Code)
	}
}

func TestHealthAndPing(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/api/v1/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/ping", "", nil); w.Code != http.StatusOK {
		t.Errorf("ping status = %d", w.Code)
	}
}
