package service

import (
	"context"
	"fmt"

	"github.com/atlasbridge/console/internal/domain"
	"github.com/atlasbridge/console/internal/infra/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository описывает требования auth-сервиса к хранилищу пользователей
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
}

// AuditWriter — общий контракт записи в журнал аудита.
// Запись делается синхронно, строго после успеха основной операции.
type AuditWriter interface {
	CreateAuditLog(ctx context.Context, in *domain.InsertAuditLog) (*domain.AuditLog, error)
}

type AuthService struct {
	users      UserRepository
	audit      AuditWriter
	sessions   *auth.SessionManager
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(users UserRepository, audit AuditWriter, sessions *auth.SessionManager, bcryptCost int, logger *zap.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &AuthService{
		users:      users,
		audit:      audit,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     logger.Named("auth-service"),
	}
}

// Register создает пользователя и сразу открывает для него сессию.
// Возвращает пользователя и токен для сессионной куки.
func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	if err := creds.Validate(); err != nil {
		return nil, "", err
	}

	// Ранняя проверка дубликата; гонку двух регистраций все равно
	// закрывает unique-констрейнт в CreateUser
	existing, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		return nil, "", fmt.Errorf("auth_service: username lookup failed: %w", err)
	}
	if existing != nil {
		return nil, "", domain.NewConflictError("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("auth_service: failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, creds.Username, string(hash))
	if err != nil {
		return nil, "", err
	}

	if _, err := s.audit.CreateAuditLog(ctx, &domain.InsertAuditLog{
		Action: "user.register",
		Actor:  user.Username,
		Target: &user.ID,
		Level:  domain.AuditLevelInfo,
	}); err != nil {
		return nil, "", fmt.Errorf("auth_service: audit write failed: %w", err)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, token, nil
}

// Login проверяет креды и открывает сессию.
// Не уточняем, что именно неверно (логин или пароль) для защиты от перебора.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	if err := creds.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		return nil, "", fmt.Errorf("auth_service: username lookup failed: %w", err)
	}
	if user == nil {
		return nil, "", domain.NewAuthError("Invalid credentials")
	}

	// Только bcrypt-сравнение, никаких прямых сравнений строк
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, "", domain.NewAuthError("Invalid credentials")
	}

	if _, err := s.audit.CreateAuditLog(ctx, &domain.InsertAuditLog{
		Action: "user.login",
		Actor:  user.Username,
		Target: &user.ID,
		Level:  domain.AuditLevelInfo,
	}); err != nil {
		return nil, "", fmt.Errorf("auth_service: audit write failed: %w", err)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout уничтожает сессию. Безусловен и идемпотентен.
func (s *AuthService) Logout(ctx context.Context, token string) {
	_ = s.sessions.Revoke(ctx, token)
}

// CurrentUser резолвит сессию в пользователя. nil без ошибки —
// сессии нет либо она указывает на удаленного пользователя.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}
	return s.users.GetUserByID(ctx, userID)
}
