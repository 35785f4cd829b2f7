package authenticating

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/config"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength       = 6
	generatedPasswordLength = 12
	defaultTokenTTL         = 7 * 24 * time.Hour
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domain.LoginResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	ListUsers(ctx context.Context, filter domain.UserFilter) (*domain.Paginated[*domain.User], error)
	CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, actorID int64, request *domain.UpdateUserRequest) (*domain.User, error)
	ResetPassword(ctx context.Context, targetUserID int64) (string, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Login usa a mesma mensagem para usuário inexistente e senha incorreta
func (s *Service) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Usuário ou senha incorretos")
	}

	if user.Status != domain.UserStatusActive {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.LoginResponse{
		User:  user,
		Token: token,
	}, nil
}

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTL > 0 {
		return s.cfg.Auth.TokenTTL
	}
	return defaultTokenTTL
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.Error(err)
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	return user, nil
}

// ChangePassword permite que um usuário altere sua própria senha
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return NewUserAuthError(ErrWrongPassword, apiErrors.ErrWrongPassword, userID, "Senha atual incorreta")
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	return s.storePassword(ctx, userID, newPassword)
}

func (s *Service) storePassword(ctx context.Context, userID int64, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		logrus.Error(err)
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao atualizar senha")
	}

	return nil
}

// ValidatePasswordStrength aplica o comprimento mínimo de senha
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, fmt.Sprintf("a senha deve conter pelo menos %d caracteres", MinPasswordLength))
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context, filter domain.UserFilter) (*domain.Paginated[*domain.User], error) {
	filter.Page = filter.Page.Normalize()

	users, total, err := s.userRepo.ListUsers(ctx, filter)
	if err != nil {
		logrus.Error(err)
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar usuários")
	}

	return domain.NewPaginated(users, filter.Page, total), nil
}

func (s *Service) CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(request.Username)
	if username == "" || strings.TrimSpace(request.Name) == "" || request.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário, nome e senha são obrigatórios")
	}

	if request.Role == "" {
		request.Role = domain.RoleStaff
	}
	if !request.Role.IsValid() {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidFormat, string(request.Role))
	}

	if err := ValidatePasswordStrength(request.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Nome de usuário já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(request.Name),
		Phone:        request.Phone,
		Email:        request.Email,
		Role:         request.Role,
		Status:       domain.UserStatusActive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Nome de usuário já cadastrado")
		}
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, actorID int64, request *domain.UpdateUserRequest) (*domain.User, error) {
	if request.ID == 0 {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID é obrigatório")
	}

	if request.Role != nil && !request.Role.IsValid() {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidFormat, string(*request.Role))
	}

	if request.Status != nil && *request.Status != domain.UserStatusActive && request.ID == actorID {
		return nil, NewUserAuthError(ErrCannotDisableSelf, apiErrors.ErrInvalidRequest, actorID, "")
	}

	if err := s.userRepo.UpdateUser(ctx, request); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, request.ID, "Usuário não encontrado")
		}
		logrus.Error(err)
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Erro ao atualizar usuário")
	}

	return s.GetCurrentUser(ctx, request.ID)
}

// ResetPassword gera uma senha forte para o usuário alvo e devolve o texto puro uma única vez
func (s *Service) ResetPassword(ctx context.Context, targetUserID int64) (string, error) {
	if _, err := s.GetCurrentUser(ctx, targetUserID); err != nil {
		return "", err
	}

	newPassword, err := generateStrongPassword(generatedPasswordLength)
	if err != nil {
		return "", err
	}

	if err := s.storePassword(ctx, targetUserID, newPassword); err != nil {
		return "", err
	}

	return newPassword, nil
}

// generateStrongPassword gera uma senha com o comprimento especificado
// incluindo letras maiúsculas, minúsculas, números e caracteres especiais
func generateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const (
		lowerChars   = "abcdefghijkmnopqrstuvwxyz"
		upperChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
		numberChars  = "23456789"
		specialChars = "!@#$%&*-_=+?"
		allChars     = lowerChars + upperChars + numberChars + specialChars
	)

	password := make([]byte, length)

	// Garantir pelo menos um caractere de cada tipo
	for i, charset := range []string{lowerChars, upperChars, numberChars, specialChars} {
		c, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	for i := 4; i < length; i++ {
		c, err := getRandomChar(allChars)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	// Embaralhar para que os caracteres não fiquem em ordem previsível
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
