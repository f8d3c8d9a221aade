package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plataforma-app/erp-api/internal/application/auth"
	"github.com/plataforma-app/erp-api/internal/domain"
	apphttp "github.com/plataforma-app/erp-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSessionID = "00000000-0000-0000-0000-000000000002"
)

// fakeResolver resuelve sesiones desde un mapa token → identidad. Un token
// ausente del mapa devuelve el error configurado (por defecto sesión expirada).
type fakeResolver struct {
	identities map[string]*auth.Identity
	missingErr error
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{identities: map[string]*auth.Identity{}, missingErr: domain.ErrSessionExpired}
}

func (f *fakeResolver) grant(token, role string, extra ...string) {
	f.identities[token] = &auth.Identity{
		UserID:      testUserID,
		SessionID:   testSessionID,
		Role:        role,
		ExtraGrants: extra,
	}
}

func (f *fakeResolver) ResolveSession(_ context.Context, accessToken string) (*auth.Identity, error) {
	if id, ok := f.identities[accessToken]; ok {
		return id, nil
	}
	return nil, f.missingErr
}

// buildTestApp construye una app Fiber mínima con el gate completo:
// AuthMiddleware → RequirePermission → handler dummy.
func buildTestApp(resolver *fakeResolver, resource, action string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(resolver),
		apphttp.RequirePermission(resource, action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// doRequest lanza GET /protected con el header indicado.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(newFakeResolver(), "bom", "read")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 2: header sin prefijo Bearer → 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(newFakeResolver(), "bom", "read")
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 3: sesión revocada o inexistente → 401 SESSION_EXPIRED.
// Es el caso clave del esquema híbrido: un JWT firmado y vigente deja de
// servir en cuanto su fila de sesión desaparece.
func TestAuthMiddleware_SesionRevocada_Retorna401(t *testing.T) {
	app := buildTestApp(newFakeResolver(), "bom", "read")
	resp := doRequest(t, app, "Bearer token-sin-sesion")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_EXPIRED",
		"sesión revocada debe distinguirse de token malformado")
}

// Caso 4: token malformado (el resolver lo rechaza como no autorizado) → 401.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resolver := newFakeResolver()
	resolver.missingErr = domain.ErrUnauthorized
	app := buildTestApp(resolver, "bom", "read")

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 5: sesión válida → pasa el gate y los locals quedan cargados.
func TestAuthMiddleware_SesionValida_CargaIdentidad(t *testing.T) {
	resolver := newFakeResolver()
	resolver.grant("token-bueno", "admin")

	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(resolver), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"session_id": apphttp.GetSessionID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer token-bueno")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testSessionID, body["session_id"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: admin accede a cualquier acción → 200.
func TestRequirePermission_AdminAccede(t *testing.T) {
	resolver := newFakeResolver()
	resolver.grant("tok", "admin")
	app := buildTestApp(resolver, "bom", "delete")

	resp := doRequest(t, app, "Bearer tok")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 2: viewer bloqueado en una acción de escritura → 403 FORBIDDEN.
func TestRequirePermission_ViewerBloqueadoEnEscritura(t *testing.T) {
	resolver := newFakeResolver()
	resolver.grant("tok", "viewer")
	app := buildTestApp(resolver, "bom", "create")

	resp := doRequest(t, app, "Bearer tok")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), "bom:create",
		"el mensaje debe nombrar el permiso que faltó")
}

// Caso 3: viewer con grant explícito accede a la acción concedida → 200.
func TestRequirePermission_GrantExtraHabilita(t *testing.T) {
	resolver := newFakeResolver()
	resolver.grant("tok", "viewer", "bom:create")
	app := buildTestApp(resolver, "bom", "create")

	resp := doRequest(t, app, "Bearer tok")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el grant extra_permissions debe ampliar el rol viewer")
}

// Caso 4: user no puede eliminar → 403.
func TestRequirePermission_UserNoElimina(t *testing.T) {
	resolver := newFakeResolver()
	resolver.grant("tok", "user")
	app := buildTestApp(resolver, "production-order", "delete")

	resp := doRequest(t, app, "Bearer tok")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
