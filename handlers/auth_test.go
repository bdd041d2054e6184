package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/models"
)

func TestRegistrationFlow(t *testing.T) {
	r := setupServer(t)

	// Request a code. Test mode echoes it back as dev_code.
	w := doJSON(r, http.MethodPost, "/api/auth/send-code",
		map[string]string{"phone": "0501234567", "method": "sms"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("send-code: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	code, ok := decode(t, w)["dev_code"].(string)
	if !ok || code == "" {
		t.Fatal("expected dev_code in non-release mode")
	}

	// Register with the code.
	w = doJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Dana",
		"phone":    "0501234567",
		"password": "secret123",
		"code":     code,
		"city":     "צפת",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if tok, _ := decode(t, w)["token"].(string); tok == "" {
		t.Fatal("expected a token on registration")
	}

	// User and customer created together.
	if n := count(t, &models.User{}); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
	if n := count(t, &models.Customer{}); n != 1 {
		t.Fatalf("expected 1 customer, got %d", n)
	}

	// The code is consumed — registering again with it fails.
	w = doJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Dana",
		"phone":    "0507654321",
		"password": "secret123",
		"code":     code,
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 reusing a code, got %d", w.Code)
	}
}

func TestRegisterRejectsWrongCode(t *testing.T) {
	r := setupServer(t)

	doJSON(r, http.MethodPost, "/api/auth/send-code",
		map[string]string{"phone": "0501234567", "method": "whatsapp"}, "")

	w := doJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Dana",
		"phone":    "0501234567",
		"password": "secret123",
		"code":     "000000x", // cannot collide with a 6-digit code
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong code, got %d", w.Code)
	}
	if n := count(t, &models.User{}); n != 0 {
		t.Fatalf("user created with wrong code")
	}
}

func TestSendCodeRejectsBadPhoneAndMethod(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/send-code",
		map[string]string{"phone": "12345", "method": "sms"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad phone, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/auth/send-code",
		map[string]string{"phone": "0501234567", "method": "carrier-pigeon"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad method, got %d", w.Code)
	}
	if n := count(t, &models.VerificationCode{}); n != 0 {
		t.Fatalf("codes issued for invalid requests: %d", n)
	}
}

func TestLogin(t *testing.T) {
	r := setupServer(t)
	createUser(t, models.RoleCustomer, "0501234567")

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		map[string]string{"phone": "0501234567", "password": "secret123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if tok, _ := decode(t, w)["token"].(string); tok == "" {
		t.Fatal("expected a token")
	}

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		map[string]string{"phone": "0501234567", "password": "wrong-password"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProfileIncludesCustomer(t *testing.T) {
	r := setupServer(t)
	user, token := createUser(t, models.RoleCustomer, "0501234567")
	config.DB.Create(&models.Customer{UserID: user.ID, Name: user.Name, Phone: user.Phone, City: "עכו"})

	w := doJSON(r, http.MethodGet, "/api/profile", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := decode(t, w)
	customer, ok := out["customer"].(map[string]interface{})
	if !ok {
		t.Fatal("expected customer in profile")
	}
	if customer["city"] != "עכו" {
		t.Fatalf("unexpected customer city: %v", customer["city"])
	}
}

func TestSeededAdminCanReachBackOffice(t *testing.T) {
	t.Setenv("ADMIN_PHONE", "0508888888")
	t.Setenv("ADMIN_PASSWORD", "office-secret-1")
	r := setupServer(t)
	config.SeedAdmin()

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		map[string]string{"phone": "0508888888", "password": "office-secret-1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatal("expected a token for the seeded admin")
	}

	w = doJSON(r, http.MethodGet, "/api/admin/orders", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("admin route: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCustomerRoutesForbiddenForAdminRole(t *testing.T) {
	r := setupServer(t)
	seedProducts(t)
	_, adminToken := createUser(t, models.RoleAdmin, "0509999999")

	w := doJSON(r, http.MethodGet, "/api/customer/orders", nil, adminToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin on customer route, got %d", w.Code)
	}
}
