package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/content-ops-api/internal/config"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey: "test-secret",
		Auth:      config.Auth{TokenTTL: time.Hour},
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	activeUser := &domain.User{ID: 1, Username: "admin", PasswordHash: hashed(t, "admin123"), Role: domain.RoleAdmin, Status: domain.UserStatusActive}
	disabledUser := &domain.User{ID: 2, Username: "old", PasswordHash: hashed(t, "secret1"), Role: domain.RoleStaff, Status: domain.UserStatusDisabled}

	tests := []struct {
		name     string
		username string
		password string
		setup    func()
		validate func(t *testing.T, resp *domain.LoginResponse, err error)
	}{
		{
			name:     "Login com sucesso gera token com claims do usuário",
			username: "admin",
			password: "admin123",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "admin").Return(activeUser, nil)
			},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, resp.Token)
				assert.Equal(t, activeUser, resp.User)

				claims, err := service.ValidateToken(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, int64(1), claims.UserID)
				assert.Equal(t, "admin", claims.Username)
				assert.Equal(t, domain.RoleAdmin, claims.Role)
			},
		},
		{
			name:     "Usuário inexistente retorna credenciais inválidas",
			username: "ghost",
			password: "whatever",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				assert.Nil(t, resp)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:     "Senha errada retorna a mesma mensagem de usuário inexistente",
			username: "admin",
			password: "errada",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "admin").Return(activeUser, nil)
			},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
			},
		},
		{
			name:     "Usuário desativado com senha correta",
			username: "old",
			password: "secret1",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "old").Return(disabledUser, nil)
			},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Usuário desativado com senha errada não revela o status",
			username: "old",
			password: "nope",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "old").Return(disabledUser, nil)
			},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:     "Campos vazios",
			username: " ",
			password: "",
			setup:    func() {},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "Falha no banco",
			username: "admin",
			password: "admin123",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "admin").Return(nil, errors.New("conn refused"))
			},
			validate: func(t *testing.T, resp *domain.LoginResponse, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			resp, err := service.Login(context.Background(), tt.username, tt.password)
			tt.validate(t, resp, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewService(mockUserRepo, testConfig()).(*Service)

	t.Run("Token expirado é rejeitado", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		token, err := svc.generateJWT(&domain.User{ID: 5, Username: "u", Role: domain.RoleStaff})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Token assinado com outra chave é rejeitado", func(t *testing.T) {
		other := NewService(mockUserRepo, &config.Config{SecretKey: "outra"}).(*Service)
		token, err := other.generateJWT(&domain.User{ID: 5, Username: "u", Role: domain.RoleStaff})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Lixo não é token", func(t *testing.T) {
		_, err := svc.ValidateToken("abc.def.ghi")
		assert.Error(t, err)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	user := &domain.User{ID: 9, Username: "op", PasswordHash: hashed(t, "antiga1"), Status: domain.UserStatusActive}

	t.Run("Senha atual incorreta", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(gomock.Any(), int64(9)).Return(user, nil)

		err := service.ChangePassword(context.Background(), 9, "errada", "novasenha")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("Nova senha curta demais", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(gomock.Any(), int64(9)).Return(user, nil)

		err := service.ChangePassword(context.Background(), 9, "antiga1", "12345")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("Troca com sucesso grava hash bcrypt", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(gomock.Any(), int64(9)).Return(user, nil)
		mockUserRepo.EXPECT().
			UpdatePassword(gomock.Any(), int64(9), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("novasenha")))
				return nil
			})

		assert.NoError(t, service.ChangePassword(context.Background(), 9, "antiga1", "novasenha"))
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(gomock.Any(), int64(10)).Return(nil, nil)

		err := service.ChangePassword(context.Background(), 10, "a", "bbbbbb")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	tests := []struct {
		name     string
		request  *domain.CreateUserRequest
		setup    func()
		validate func(t *testing.T, user *domain.User, err error)
	}{
		{
			name:    "Cria usuário com perfil padrão staff",
			request: &domain.CreateUserRequest{Username: "novo", Password: "123456", Name: "Novo"},
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "novo").Return(nil, nil)
				mockUserRepo.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						u.ID = 42
						return u, nil
					})
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(42), user.ID)
				assert.Equal(t, domain.RoleStaff, user.Role)
				assert.Equal(t, domain.UserStatusActive, user.Status)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("123456")))
			},
		},
		{
			name:    "Nome de usuário duplicado",
			request: &domain.CreateUserRequest{Username: "admin", Password: "123456", Name: "Outro"},
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "admin").Return(&domain.User{ID: 1}, nil)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, apiErrors.ErrUserAlreadyExists, authErr.Code)
			},
		},
		{
			name:    "Violação de unicidade no insert também vira conflito",
			request: &domain.CreateUserRequest{Username: "corrida", Password: "123456", Name: "C"},
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "corrida").Return(nil, nil)
				mockUserRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicateKey)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
			},
		},
		{
			name:    "Senha curta",
			request: &domain.CreateUserRequest{Username: "x", Password: "123", Name: "X"},
			setup:   func() {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrWeakPassword)
			},
		},
		{
			name:    "Perfil inválido",
			request: &domain.CreateUserRequest{Username: "x", Password: "123456", Name: "X", Role: "root"},
			setup:   func() {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assert.ErrorIs(t, err, ErrInvalidRole)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			user, err := service.CreateUser(context.Background(), tt.request)
			tt.validate(t, user, err)
		})
	}
}

func TestService_UpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	disabled := domain.UserStatusDisabled

	t.Run("Administrador não pode desativar a si mesmo", func(t *testing.T) {
		_, err := service.UpdateUser(context.Background(), 1, &domain.UpdateUserRequest{ID: 1, Status: &disabled})
		assert.ErrorIs(t, err, ErrCannotDisableSelf)
	})

	t.Run("Desativa outro usuário", func(t *testing.T) {
		req := &domain.UpdateUserRequest{ID: 2, Status: &disabled}
		mockUserRepo.EXPECT().UpdateUser(gomock.Any(), req).Return(nil)
		mockUserRepo.EXPECT().GetUserByID(gomock.Any(), int64(2)).Return(&domain.User{ID: 2, Status: disabled}, nil)

		user, err := service.UpdateUser(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, disabled, user.Status)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		req := &domain.UpdateUserRequest{ID: 3}
		mockUserRepo.EXPECT().UpdateUser(gomock.Any(), req).Return(repository.ErrNotFound)

		_, err := service.UpdateUser(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	var stored string
	mockUserRepo.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(&domain.User{ID: 4}, nil)
	mockUserRepo.EXPECT().
		UpdatePassword(gomock.Any(), int64(4), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			stored = hash
			return nil
		})

	password, err := service.ResetPassword(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, password, generatedPasswordLength)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)))
}

func TestGenerateStrongPassword(t *testing.T) {
	for i := 0; i < 20; i++ {
		password, err := generateStrongPassword(4)
		require.NoError(t, err)
		assert.Len(t, password, 8)
		assert.Regexp(t, `[a-z]`, password)
		assert.Regexp(t, `[A-Z]`, password)
		assert.Regexp(t, `[0-9]`, password)
		assert.Regexp(t, `[!@#$%&*\-_=+?]`, password)
	}
}
