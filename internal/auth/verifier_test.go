package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/catalogo/internal/auth"
)

// fakeAuthority cuenta las invocaciones para verificar que un token vacío
// nunca llega a la autoridad.
type fakeAuthority struct {
	res   auth.Result
	err   error
	calls int
}

func (f *fakeAuthority) Validate(_ context.Context, _ string) (auth.Result, error) {
	f.calls++
	return f.res, f.err
}

func TestVerify_EmptyToken_NoAuthorityCall(t *testing.T) {
	fa := &fakeAuthority{res: auth.Result{StatusCode: 200}}
	v := auth.NewVerifier(fa)

	for _, token := range []string{"", "   ", "\t\n"} {
		_, err := v.Verify(context.Background(), token)
		require.ErrorIs(t, err, auth.ErrMissingToken, "token %q", token)
	}
	require.Equal(t, 0, fa.calls, "la autoridad no debe consultarse sin token")
}

func TestVerify_OK_MapsClaims(t *testing.T) {
	fa := &fakeAuthority{res: auth.Result{
		StatusCode: 200,
		TenantID:   "t1",
		IsAdmin:    true,
		Roles:      []string{"Admin", " editor "},
	}}
	v := auth.NewVerifier(fa)

	c, err := v.Verify(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.Equal(t, "t1", c.TenantID)
	require.True(t, c.IsAdmin())
	require.True(t, c.HasRole("ADMIN"))
	require.True(t, c.HasRole("editor"))
	require.Equal(t, 1, fa.calls)
}

func TestVerify_Forbidden(t *testing.T) {
	v := auth.NewVerifier(&fakeAuthority{res: auth.Result{StatusCode: 403}})

	_, err := v.Verify(context.Background(), "tok-expirado")
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestVerify_UnexpectedStatus_IsHardFailure(t *testing.T) {
	for _, status := range []int{0, 400, 500, 502} {
		v := auth.NewVerifier(&fakeAuthority{res: auth.Result{StatusCode: status}})
		_, err := v.Verify(context.Background(), "tok")
		require.ErrorIs(t, err, auth.ErrAuthorityUnavailable, "status %d", status)
	}
}

func TestVerify_TransportError_IsHardFailure(t *testing.T) {
	v := auth.NewVerifier(&fakeAuthority{err: errors.New("connection refused")})

	_, err := v.Verify(context.Background(), "tok")
	require.ErrorIs(t, err, auth.ErrAuthorityUnavailable)
}

func TestBearerToken_Extraction(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":      "abc",
		"bearer abc":      "abc",
		"BEARER   abc  ":  "abc",
		"  Bearer abc  ":  "abc",
		"abc":             "abc",
		"Bearerabc":       "Bearerabc", // sin espacio no es prefijo válido
		"":                "",
		"Basic dXNlcg==":  "Basic dXNlcg==",
		"bearer   x":      "x",
	}
	for in, want := range cases {
		require.Equal(t, want, auth.BearerToken(in), "header %q", in)
	}
}
