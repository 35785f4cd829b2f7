package account

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
)

type AccountService interface {
	ListAccounts(ctx context.Context, filter domain.AccountFilter) (*domain.Paginated[*domain.Account], error)
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)
	CreateAccount(ctx context.Context, request *domain.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, request *domain.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
}

type Service struct {
	accountRepository repository.AccountRepository
}

func NewService(accountRepository repository.AccountRepository) AccountService {
	return &Service{
		accountRepository: accountRepository,
	}
}

func (s *Service) ListAccounts(ctx context.Context, filter domain.AccountFilter) (*domain.Paginated[*domain.Account], error) {
	filter.Page = filter.Page.Normalize()

	accounts, total, err := s.accountRepository.ListAccounts(ctx, filter)
	if err != nil {
		logrus.Error("Erro ao listar contas: ", err)
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	return domain.NewPaginated(accounts, filter.Page, total), nil
}

func (s *Service) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	if accountID == 0 {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	account, err := s.accountRepository.GetAccountByID(ctx, accountID)
	if err != nil {
		logrus.Error("Erro ao buscar conta: ", err)
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao buscar conta")
	}

	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, accountID, "Conta não encontrada")
	}

	return account, nil
}

func (s *Service) CreateAccount(ctx context.Context, request *domain.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(request.AccountName)
	if name == "" {
		return nil, NewAccountError(ErrAccountNameRequired, apiErrors.ErrMissingRequiredData, "Nome da conta é obrigatório")
	}

	if !request.Platform.IsValid() {
		return nil, NewAccountError(ErrInvalidPlatform, apiErrors.ErrInvalidFormat, string(request.Platform))
	}

	if request.Followers < 0 {
		request.Followers = 0
	}

	account, err := s.accountRepository.CreateAccount(ctx, &domain.Account{
		ProjectID:         request.ProjectID,
		Platform:          request.Platform,
		AccountName:       name,
		ExternalAccountID: request.ExternalAccountID,
		Followers:         request.Followers,
		OperatorID:        request.OperatorID,
		Remark:            request.Remark,
		Status:            domain.AccountStatusActive,
	})
	if err != nil {
		logrus.Error("Erro ao criar conta: ", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar conta")
	}

	return account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, request *domain.UpdateAccountRequest) (*domain.Account, error) {
	if request.ID == 0 {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	if request.Platform != nil && !request.Platform.IsValid() {
		return nil, NewAccountError(ErrInvalidPlatform, apiErrors.ErrInvalidFormat, string(*request.Platform))
	}

	if request.AccountName != nil {
		name := strings.TrimSpace(*request.AccountName)
		if name == "" {
			return nil, NewAccountError(ErrAccountNameRequired, apiErrors.ErrMissingRequiredData, "Nome da conta é obrigatório")
		}
		request.AccountName = &name
	}

	if err := s.accountRepository.UpdateAccount(ctx, request); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, request.ID, "Conta não encontrada")
		}
		logrus.Error("Erro ao atualizar conta: ", err)
		return nil, NewAccountErrorWithID(ErrUpdateAccount, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar conta")
	}

	return s.GetAccount(ctx, request.ID)
}

// DeleteAccount remove a conta; os registros de tráfego caem em cascata no banco
func (s *Service) DeleteAccount(ctx context.Context, accountID int64) error {
	if accountID == 0 {
		return NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	if err := s.accountRepository.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrResourceNotFound, accountID, "Conta não encontrada")
		}
		logrus.Error("Erro ao remover conta: ", err)
		return NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao remover conta")
	}

	return nil
}
