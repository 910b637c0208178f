package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/catalogo/internal/auth"
	httperrors "github.com/dropDatabas3/catalogo/internal/http/errors"
)

// RequireAuth extrae el bearer token del header Authorization, lo verifica
// contra la autoridad y guarda las claims en el contexto. Sin token responde
// 401 sin consultar a la autoridad; token rechazado responde 403; autoridad
// caída responde 502 (deny-by-default explícito, nunca silencioso).
//
// No hay cache de verificaciones: cada request vuelve a validar, para que la
// expiración y la revocación del lado de la autoridad tengan efecto
// inmediato.
func RequireAuth(verifier *auth.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Lookup case-insensitive del header (http.Header ya canonicaliza).
			raw := auth.BearerToken(r.Header.Get("Authorization"))

			c, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				httperrors.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), c)))
		})
	}
}
