package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"business", ErrBusiness("slot_taken"), http.StatusConflict, "slot_taken"},
		{"wrapped", fmt.Errorf("create: %w", ErrBusiness("admins_only")), http.StatusForbidden, "admins_only"},
		{"unknown code", ErrBusiness("nope"), http.StatusInternalServerError, "failed"},
		{"infra", errors.New("db down"), http.StatusInternalServerError, "failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tc.err, "failed", "Erro interno.")

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tc.code || body.Message == "" {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestEveryEntryHasMessage(t *testing.T) {
	for code, e := range table {
		if e.status < 400 || e.message == "" {
			t.Errorf("%s: %+v", code, e)
		}
	}
}
