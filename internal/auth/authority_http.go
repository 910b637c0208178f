package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPAuthority es el binding de producción contra el servicio de validación
// de tokens: un POST sincrónico con {"token": "..."} que responde
// {"statusCode": 200, "tenant_id": ..., "is_admin": ..., "roles": [...]} o
// {"statusCode": 403}.
type HTTPAuthority struct {
	url    string
	client *http.Client
}

// NewHTTPAuthority construye el cliente hacia la autoridad.
// Con timeout <= 0 se usan 10s.
func NewHTTPAuthority(url string, timeout time.Duration) *HTTPAuthority {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPAuthority{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type validateRequest struct {
	Token string `json:"token"`
}

// Validate invoca a la autoridad y decodifica su resultado estructurado.
func (a *HTTPAuthority) Validate(ctx context.Context, token string) (Result, error) {
	body, err := json.Marshal(validateRequest{Token: token})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("authority: %w", err)
	}
	defer resp.Body.Close()

	// La autoridad reporta su veredicto en el campo statusCode del cuerpo,
	// no en el status HTTP del transporte.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("authority: leyendo respuesta: %w", err)
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, fmt.Errorf("authority: respuesta inválida: %w", err)
	}
	if res.StatusCode == 0 {
		// Sin statusCode en el cuerpo, cae al status del transporte.
		res.StatusCode = resp.StatusCode
	}
	return res, nil
}
