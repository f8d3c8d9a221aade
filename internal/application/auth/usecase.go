package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
	"github.com/plataforma-app/erp-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de acceso.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionConfig configuración de sesiones persistidas.
type SessionConfig struct {
	RefreshExpMinutes int
}

// RequestMeta datos del request que se guardan en la sesión.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Identity identidad resuelta por el gate de autenticación. ExtraGrants son
// los permisos explícitos ("recurso:acción") de las preferencias del usuario.
type Identity struct {
	UserID      string
	SessionID   string
	Role        string
	ExtraGrants []string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh, logout,
// perfil y recuperación de contraseña. Emite sesiones persistidas: el JWT de
// acceso solo es válido mientras exista su fila en auth_sessions.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	sessionCfg  SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig, sessionCfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg, sessionCfg: sessionCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		Status:       entity.UserStatusActive,
		Preferences:  map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, crea la sesión persistida y retorna
// access token + refresh token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, meta RequestMeta) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	return uc.issueSession(ctx, user, meta)
}

// ResolveSession valida el token de acceso contra la sesión persistida.
// Lo consume el middleware de autenticación en cada request protegido:
// sesión inexistente, expirada o revocada → ErrSessionExpired.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, accessToken string) (*Identity, error) {
	userID, sessionID, role, err := jwt.Parse(uc.jwtCfg.Secret, accessToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	session, err := uc.sessionRepo.GetByTokenHash(ctx, HashToken(accessToken))
	if err != nil {
		return nil, err
	}
	if session == nil || session.ID != sessionID || session.Expired(time.Now()) {
		return nil, domain.ErrSessionExpired
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, domain.ErrSessionExpired
	}
	return &Identity{UserID: userID, SessionID: sessionID, Role: role, ExtraGrants: user.ExtraPermissions()}, nil
}

// Refresh rota la sesión: valida el refresh token, elimina la sesión anterior
// y emite tokens nuevos (la sesión vieja queda inutilizable de inmediato).
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest, meta RequestMeta) (*dto.LoginResponse, error) {
	session, err := uc.sessionRepo.GetByRefreshTokenHash(ctx, HashToken(in.RefreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, domain.ErrSessionExpired
	}
	user, err := uc.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	return uc.issueSession(ctx, user, meta)
}

// issueSession emite tokens nuevos y persiste la sesión para un usuario ya verificado.
func (uc *AuthUseCase) issueSession(ctx context.Context, user *entity.User, meta RequestMeta) (*dto.LoginResponse, error) {
	sessionID := uuid.New().String()
	accessToken, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, sessionID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refreshToken, err := randomToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(uc.sessionCfg.RefreshExpMinutes) * time.Minute)
	session := &entity.Session{
		ID:               sessionID,
		UserID:           user.ID,
		TokenHash:        HashToken(accessToken),
		RefreshTokenHash: HashToken(refreshToken),
		ExpiresAt:        expiresAt,
		IPAddress:        meta.IPAddress,
		UserAgent:        meta.UserAgent,
		CreatedAt:        now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         *ToUserResponse(user),
	}, nil
}

// Logout elimina la sesión indicada. Idempotente: si ya no existe, no falla.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile mutación parcial del perfil propio.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Preferences != nil {
		user.Preferences = in.Preferences
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ForgotPassword genera un token de recuperación con expiración de 1 hora y lo
// asocia al usuario. Devuelve el token plano (el canal de entrega por email es
// un colaborador externo). Si el email no existe, no revela nada.
func (uc *AuthUseCase) ForgotPassword(in dto.ForgotPasswordRequest) (string, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(time.Hour)
	user.ResetTokenHash = HashToken(token)
	user.ResetTokenExpiresAt = &expires
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consume el token de recuperación, fija la nueva contraseña y
// revoca todas las sesiones del usuario.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	user, err := uc.userRepo.GetByResetTokenHash(HashToken(in.Token))
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(time.Now()) {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	return uc.sessionRepo.DeleteByUser(ctx, user.ID)
}

// HashToken devuelve el sha256 hex de un token; es lo único que se persiste.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ToUserResponse convierte la entidad a DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
