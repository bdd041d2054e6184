package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/middleware"
	"github.com/dolevhayut/mineral-gas-sub001/models"
	"github.com/dolevhayut/mineral-gas-sub001/routes"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var registerValidatorsOnce sync.Once

// setupServer gives each test a fresh database and a fully routed engine.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerValidatorsOnce.Do(func() {
		ilPhone := regexp.MustCompile(`^05\d{8}$`)
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterValidation("ilphone", func(fl validator.FieldLevel) bool {
				return ilPhone.MatchString(fl.Field().String())
			})
		}
	})

	config.OpenDB(filepath.Join(t.TempDir(), "test.db"))

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// createUser inserts a user directly and returns it with a valid token.
func createUser(t *testing.T, role models.UserRole, phone string) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Name: "Test User", Phone: phone, PasswordHash: string(hash), Role: role}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := middleware.GenerateToken(&user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// seedProducts inserts the two standard test products (10 and 25).
func seedProducts(t *testing.T) (models.Product, models.Product) {
	t.Helper()
	p1 := models.Product{Name: "Gas Cylinder 12kg", Price: 10, IsAvailable: true}
	p2 := models.Product{Name: "Gas Cylinder 48kg", Price: 25, IsAvailable: true}
	if err := config.DB.Create(&p1).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := config.DB.Create(&p2).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p1, p2
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response body.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := config.DB.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
