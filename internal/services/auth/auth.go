// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/parking-permits/internal/lib/jwt"
	"github.com/magabrotheeeer/parking-permits/internal/lib/password"
	"github.com/magabrotheeeer/parking-permits/internal/models"
	"github.com/magabrotheeeer/parking-permits/internal/storage"
)

// Ошибки бизнес-уровня аутентификации.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrEmailDomain        = errors.New("email must belong to the university domain")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateProfile обновляет имя, фамилию и телефон пользователя.
	UpdateProfile(ctx context.Context, userUID, firstName, lastName, phone string) (int, error)

	// UpdatePassword заменяет хэш пароля пользователя.
	UpdatePassword(ctx context.Context, userUID, passwordHash string) (int, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users         UserRepository
	jwtMaker      jwt.Maker
	allowedDomain string
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, allowedDomain string) *AuthService {
	return &AuthService{
		users:         users,
		jwtMaker:      jwtMaker,
		allowedDomain: allowedDomain,
	}
}

// Register создает нового пользователя. Email нормализуется к нижнему регистру
// и проверяется на принадлежность университетскому домену, пароль — на
// соответствие парольной политике.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegisterUser) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.HasSuffix(email, s.allowedDomain) {
		return "", ErrEmailDomain
	}
	if req.Password != req.ConfirmPassword {
		return "", ErrPasswordMismatch
	}
	if err := password.ValidatePolicy(req.Password); err != nil {
		return "", err
	}
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		StudentID:    strings.TrimSpace(req.StudentID),
		Phone:        strings.TrimSpace(req.Phone),
		UserType:     req.UserType,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Несуществующий email и неверный пароль дают одну и ту же ошибку.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.UID, user.UserType)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе и признак валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Email:    claims.Email,
		UID:      claims.UserUID,
		UserType: claims.UserType,
	}
	return user, true, nil
}

// GetUser возвращает профиль пользователя по UID.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile обновляет имя, фамилию и телефон пользователя.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID string, req models.DummyUpdateProfile) error {
	count, err := s.users.UpdateProfile(ctx, userUID,
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName),
		strings.TrimSpace(req.Phone))
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword проверяет текущий пароль и заменяет его новым,
// предварительно проверив новый пароль парольной политикой.
func (s *AuthService) ChangePassword(ctx context.Context, userUID string, req models.DummyChangePassword) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := password.CompareHash(user.PasswordHash, req.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := password.ValidatePolicy(req.NewPassword); err != nil {
		return err
	}
	hashed, err := password.GetHash(req.NewPassword)
	if err != nil {
		return err
	}
	count, err := s.users.UpdatePassword(ctx, userUID, hashed)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("update password: %w", ErrUserNotFound)
	}
	return nil
}
