package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plataforma-app/erp-api/internal/application/auth"
	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByResetTokenHash(hash string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == hash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ repository.ListParams) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session // por ID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	for _, s := range r.sessions {
		if s.TokenHash == tokenHash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) GetByRefreshTokenHash(_ context.Context, refreshHash string) (*entity.Session, error) {
	for _, s := range r.sessions {
		if s.RefreshTokenHash == refreshHash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testEmail    = "ana@plataforma.app"
	testPassword = "Secreta#2025"
)

var testMeta = auth.RequestMeta{IPAddress: "127.0.0.1", UserAgent: "go-test"}

func buildUseCase() (*auth.AuthUseCase, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	uc := auth.NewAuthUseCase(users, sessions,
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "erp-api-test"},
		auth.SessionConfig{RefreshExpMinutes: 7 * 24 * 60},
	)
	return uc, users, sessions
}

func registerAndLogin(t *testing.T, uc *auth.AuthUseCase) *dto.LoginResponse {
	t.Helper()
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: testEmail, Password: testPassword, FirstName: "Ana", LastName: "Rojas",
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword}, testMeta)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: testEmail, Password: testPassword, FirstName: "Ana"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: testEmail, Password: "OtraClave#1", FirstName: "Otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolPorDefectoEsUser(t *testing.T) {
	uc, _, _ := buildUseCase()

	resp, err := uc.RegisterUser(dto.RegisterRequest{Email: testEmail, Password: testPassword, FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: testEmail, Password: testPassword, FirstName: "Ana", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: testEmail, Password: testPassword, FirstName: "Ana"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: "clave-equivocada"}, testMeta)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@plataforma.app", Password: testPassword}, testMeta)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _ := buildUseCase()
	resp, err := uc.RegisterUser(dto.RegisterRequest{Email: testEmail, Password: testPassword, FirstName: "Ana"})
	require.NoError(t, err)

	u := users.users[resp.ID]
	u.Status = entity.UserStatusInactive

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword}, testMeta)
	assert.ErrorIs(t, err, domain.ErrForbidden, "usuario desactivado no debe poder iniciar sesión")
}

func TestLogin_GuardaMetadatosDeSesion(t *testing.T) {
	uc, _, sessions := buildUseCase()
	registerAndLogin(t, uc)

	require.Len(t, sessions.sessions, 1)
	for _, s := range sessions.sessions {
		assert.Equal(t, testMeta.IPAddress, s.IPAddress)
		assert.Equal(t, testMeta.UserAgent, s.UserAgent)
		assert.True(t, s.ExpiresAt.After(time.Now()), "la sesión debe expirar en el futuro")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveSession: el contrato del gate de autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveSession_TokenVigente(t *testing.T) {
	uc, _, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	id, err := uc.ResolveSession(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, id.UserID)
	assert.Equal(t, entity.RoleUser, id.Role)
	assert.NotEmpty(t, id.SessionID)
}

func TestResolveSession_DespuesDeLogout(t *testing.T) {
	uc, _, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	id, err := uc.ResolveSession(context.Background(), login.AccessToken)
	require.NoError(t, err)
	require.NoError(t, uc.Logout(context.Background(), id.SessionID))

	// El JWT sigue firmado y vigente, pero la sesión ya no existe.
	_, err = uc.ResolveSession(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired,
		"revocar la sesión debe invalidar el JWT de inmediato")
}

func TestResolveSession_TokenBasura(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.ResolveSession(context.Background(), "no.es.un.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveSession_UsuarioDesactivadoMientrasSesionViva(t *testing.T) {
	uc, users, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	users.users[login.User.ID].Status = entity.UserStatusSuspended

	_, err := uc.ResolveSession(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired,
		"suspender al usuario debe cortar sus sesiones vivas")
}

func TestResolveSession_ExponeGrantsExtra(t *testing.T) {
	uc, users, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	users.users[login.User.ID].Preferences = map[string]any{
		"extra_permissions": []any{"bom:delete", "users:read"},
	}

	id, err := uc.ResolveSession(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bom:delete", "users:read"}, id.ExtraGrants)
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh: rotación de sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_RotaLaSesion(t *testing.T) {
	uc, _, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	refreshed, err := uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken}, testMeta)
	require.NoError(t, err)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// El access token nuevo resuelve; el viejo quedó huérfano.
	_, err = uc.ResolveSession(context.Background(), refreshed.AccessToken)
	assert.NoError(t, err)

	_, err = uc.ResolveSession(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired,
		"la rotación debe inutilizar el access token anterior")
}

func TestRefresh_RefreshViejoNoSirveDosVeces(t *testing.T) {
	uc, _, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	_, err := uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken}, testMeta)
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken}, testMeta)
	assert.ErrorIs(t, err, domain.ErrSessionExpired,
		"un refresh token ya consumido no debe poder reutilizarse")
}

func TestRefresh_TokenDesconocido(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "inventado"}, testMeta)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_EmailInexistenteNoRevelaNada(t *testing.T) {
	uc, _, _ := buildUseCase()
	token, err := uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "nadie@plataforma.app"})
	require.NoError(t, err)
	assert.Empty(t, token, "email inexistente no debe producir token ni error")
}

func TestResetPassword_FlujoCompleto(t *testing.T) {
	uc, _, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	token, err := uc.ForgotPassword(dto.ForgotPasswordRequest{Email: testEmail})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	const nueva = "NuevaClave#2025"
	require.NoError(t, uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: token, NewPassword: nueva}))

	// Las sesiones anteriores quedaron revocadas.
	_, err = uc.ResolveSession(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired,
		"resetear la contraseña debe revocar todas las sesiones")

	// La contraseña vieja deja de servir y la nueva funciona.
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword}, testMeta)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: nueva}, testMeta)
	assert.NoError(t, err)
}

func TestResetPassword_TokenNoReutilizable(t *testing.T) {
	uc, _, _ := buildUseCase()
	registerAndLogin(t, uc)

	token, err := uc.ForgotPassword(dto.ForgotPasswordRequest{Email: testEmail})
	require.NoError(t, err)

	require.NoError(t, uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: token, NewPassword: "NuevaClave#2025"}))

	err = uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: token, NewPassword: "OtraClave#2025"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el token de recuperación es de un solo uso")
}

func TestResetPassword_TokenExpirado(t *testing.T) {
	uc, users, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	token, err := uc.ForgotPassword(dto.ForgotPasswordRequest{Email: testEmail})
	require.NoError(t, err)

	// Forzamos la expiración del token.
	past := time.Now().Add(-time.Minute)
	users.users[login.User.ID].ResetTokenExpiresAt = &past

	err = uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: token, NewPassword: "NuevaClave#2025"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_MutacionParcial(t *testing.T) {
	uc, _, _ := buildUseCase()
	login := registerAndLogin(t, uc)

	nombre := "Anabel"
	resp, err := uc.UpdateProfile(login.User.ID, dto.UpdateProfileRequest{FirstName: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Anabel", resp.FirstName)
	assert.Equal(t, "Rojas", resp.LastName, "los campos no enviados no deben cambiar")
}

func TestProfile_UsuarioInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Profile("00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
