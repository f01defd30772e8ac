package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/config"
	"github.com/BruksfildServices01/veve-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/infra/repository"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
	"github.com/BruksfildServices01/veve-booking/internal/routes"
	"github.com/BruksfildServices01/veve-booking/internal/timezone"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

const siteURL = "https://veve.example"

type server struct {
	t  *testing.T
	r  *gin.Engine
	db *gorm.DB
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := validators.Register(); err != nil {
		t.Fatal(err)
	}

	db := dbtest.New(t)
	hub := realtime.NewHub(8)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: &config.Config{
			JWTSecret: "test-secret",
			SiteURL:   siteURL,
			Timezone:  timezone.DefaultTimezone,
		},
		Hub:    hub,
		Events: hub,
	})
	return &server{t: t, r: r, db: db}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d: %s", w.Code, status, w.Body.String())
	}
}

type sessionBody struct {
	Message string `json:"message"`
	Data    struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"data"`
}

type errorBody struct {
	Code     string `json:"error_code"`
	Message  string `json:"message"`
	LoginURL string `json:"login_url"`
}

func (s *server) signUp(email, name string) (token string, userID uuid.UUID) {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/sign-up", "", map[string]string{
		"email":     email,
		"password":  "segredo123",
		"full_name": name,
		"phone":     "(11) 98765-4321",
	})
	expect(s.t, w, http.StatusCreated)

	body := decode[sessionBody](s.t, w)
	return body.Data.AccessToken, uuid.MustParse(body.Data.User.ID)
}

func (s *server) promote(userID uuid.UUID) {
	s.t.Helper()
	if _, err := repository.NewAccountGormRepository(s.db).GrantRole(context.Background(), userID, roles.Admin); err != nil {
		s.t.Fatal(err)
	}
}

func tomorrow() string {
	return timezone.NowIn(timezone.DefaultTimezone).AddDate(0, 0, 1).Format("2006-01-02")
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)

	clientToken, _ := s.signUp("ana@veve.example", "Ana Souza")
	adminToken, adminID := s.signUp("root@veve.example", "Dono Barbearia")
	s.promote(adminID)

	// --------------------------------------------------
	// admin-only catalog
	// --------------------------------------------------
	w := s.do(http.MethodPost, "/api/admin/time-slots", clientToken, map[string]string{"time": "09:00"})
	expect(t, w, http.StatusForbidden)
	if decode[errorBody](t, w).Code != "admins_only" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	expect(t, s.do(http.MethodPost, "/api/admin/time-slots", adminToken, map[string]string{"time": "09:00"}), http.StatusCreated)
	expect(t, s.do(http.MethodPost, "/api/admin/time-slots", adminToken, map[string]string{"time": "9h"}), http.StatusBadRequest)

	w = s.do(http.MethodPost, "/api/admin/services", adminToken, map[string]any{
		"name": "Corte", "category": "Cabelo", "duration_minutes": 30,
	})
	expect(t, w, http.StatusBadRequest)
	if msg := decode[errorBody](t, w).Message; msg != "Preço inválido" {
		t.Fatalf("missing price message = %q", msg)
	}

	w = s.do(http.MethodPost, "/api/admin/services", adminToken, map[string]any{
		"name": "Corte", "category": "Cabelo", "price": 45.5, "duration_minutes": 30,
	})
	expect(t, w, http.StatusCreated)
	svc := decode[struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}](t, w)

	w = s.do(http.MethodGet, "/api/services", "", nil)
	expect(t, w, http.StatusOK)
	if decode[struct {
		Total int `json:"total"`
	}](t, w).Total != 1 {
		t.Fatalf("expected one public service: %s", w.Body.String())
	}

	// --------------------------------------------------
	// anonymous draft, then login
	// --------------------------------------------------
	w = s.do(http.MethodPost, "/api/booking-drafts", "", nil)
	expect(t, w, http.StatusCreated)
	draftID := decode[struct {
		ID string `json:"id"`
	}](t, w).ID

	base := "/api/booking-drafts/" + draftID
	expect(t, s.do(http.MethodPut, base+"/service", "", map[string]string{"service_id": svc.Data.ID}), http.StatusOK)
	expect(t, s.do(http.MethodPut, base+"/date", "", map[string]string{"date": tomorrow()}), http.StatusOK)
	expect(t, s.do(http.MethodPut, base+"/time", "", map[string]string{"time": "09:00"}), http.StatusOK)
	expect(t, s.do(http.MethodPut, base+"/contact", "", map[string]string{"name": "Ana Souza", "phone": "11987654321"}), http.StatusOK)

	w = s.do(http.MethodPost, base+"/submit", "", nil)
	expect(t, w, http.StatusUnauthorized)
	if lr := decode[errorBody](t, w); lr.Code != "login_required" || lr.LoginURL != siteURL+"/auth?draft="+draftID {
		t.Fatalf("unexpected login body %+v", lr)
	}

	expect(t, s.do(http.MethodPost, base+"/submit", clientToken, nil), http.StatusCreated)

	// --------------------------------------------------
	// slot is gone for everyone
	// --------------------------------------------------
	w = s.do(http.MethodPost, "/api/bookings", adminToken, map[string]string{
		"name": "Outro Cliente", "phone": "11912345678", "date": tomorrow(), "time": "09:00",
	})
	expect(t, w, http.StatusConflict)

	w = s.do(http.MethodGet, "/api/availability?date="+tomorrow(), "", nil)
	expect(t, w, http.StatusOK)
	if times := decode[struct {
		Times []string `json:"times"`
	}](t, w).Times; len(times) != 0 {
		t.Fatalf("booked time still offered: %v", times)
	}

	w = s.do(http.MethodGet, "/api/me/bookings", clientToken, nil)
	expect(t, w, http.StatusOK)
	if up := decode[struct {
		Upcoming []json.RawMessage `json:"upcoming"`
	}](t, w).Upcoming; len(up) != 1 {
		t.Fatalf("expected one upcoming booking: %s", w.Body.String())
	}

	expect(t, s.do(http.MethodGet, "/api/admin/bookings", clientToken, nil), http.StatusForbidden)
	w = s.do(http.MethodGet, "/api/admin/bookings", adminToken, nil)
	expect(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"service_name":"Corte"`) {
		t.Fatalf("service name missing: %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/admin/bookings/export", adminToken, nil)
	expect(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/vnd.openxmlformats") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	s := newServer(t)
	token, _ := s.signUp("ana@veve.example", "Ana Souza")

	expect(t, s.do(http.MethodGet, "/api/auth/session", token, nil), http.StatusOK)
	expect(t, s.do(http.MethodPost, "/api/auth/sign-out", token, nil), http.StatusOK)

	w := s.do(http.MethodGet, "/api/auth/session", token, nil)
	expect(t, w, http.StatusUnauthorized)
	if decode[errorBody](t, w).Code != "token_revoked" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestSignUpValidation(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/auth/sign-up", "", map[string]string{
		"email": "ana@veve.example", "password": "curta", "full_name": "Ana", "phone": "11987654321",
	})
	expect(t, w, http.StatusBadRequest)
	if msg := decode[errorBody](t, w).Message; msg != "Senha deve ter pelo menos 8 caracteres" {
		t.Fatalf("message = %q", msg)
	}

	s.signUp("ana@veve.example", "Ana Souza")
	w = s.do(http.MethodPost, "/api/auth/sign-up", "", map[string]string{
		"email": "ana@veve.example", "password": "segredo123", "full_name": "Ana Souza", "phone": "11987654321",
	})
	expect(t, w, http.StatusConflict)
}

func TestAdminUsers(t *testing.T) {
	s := newServer(t)
	adminToken, adminID := s.signUp("root@veve.example", "Dono Barbearia")
	s.promote(adminID)
	_, clientID := s.signUp("ana@veve.example", "Ana Souza")

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/admin/rpc/promote_user_role", adminToken, map[string]string{
			"target_user_email": "ana@veve.example", "new_role": "barbeiro",
		})
		expect(t, w, http.StatusOK)
		if !decode[struct {
			Success bool `json:"success"`
		}](t, w).Success {
			t.Fatalf("promotion failed: %s", w.Body.String())
		}
	}

	w := s.do(http.MethodPatch, "/api/admin/users/"+adminID.String()+"/admin", adminToken, map[string]bool{"current_is_admin": true})
	expect(t, w, http.StatusBadRequest)
	if decode[errorBody](t, w).Code != "cannot_demote_self" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	expect(t, s.do(http.MethodDelete, "/api/admin/users/"+clientID.String(), adminToken, nil), http.StatusOK)

	w = s.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	expect(t, w, http.StatusOK)
	if decode[struct {
		Total int `json:"total"`
	}](t, w).Total != 1 {
		t.Fatalf("expected only the admin left: %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	expect(t, s.do(http.MethodGet, "/health/live", "", nil), http.StatusOK)
	w := s.do(http.MethodGet, "/health/ready", "", nil)
	expect(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), `"redis"`) {
		t.Fatalf("redis check reported without redis: %s", w.Body.String())
	}
}
