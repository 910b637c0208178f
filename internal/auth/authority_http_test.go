package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/catalogo/internal/auth"
)

func TestHTTPAuthority_Validate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch req.Token {
		case "bueno":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"statusCode": 200,
				"tenant_id":  "t1",
				"is_admin":   true,
				"roles":      []string{"admin"},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 403})
		}
	}))
	defer srv.Close()

	a := auth.NewHTTPAuthority(srv.URL, 0)

	res, err := a.Validate(context.Background(), "bueno")
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, "t1", res.TenantID)
	require.True(t, res.IsAdmin)

	res, err = a.Validate(context.Background(), "malo")
	require.NoError(t, err)
	require.Equal(t, 403, res.StatusCode)
}

func TestHTTPAuthority_TransportError(t *testing.T) {
	// puerto cerrado: error de transporte, no un Result
	a := auth.NewHTTPAuthority("http://127.0.0.1:1", 0)
	_, err := a.Validate(context.Background(), "tok")
	require.Error(t, err)
}
