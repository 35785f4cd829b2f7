package importing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/domain"
)

// accountReconciler resolve (plataforma, nome) para o ID da conta, criando-a se preciso.
// O cache vale para uma única importação e não deve ser compartilhado entre chamadas.
type accountReconciler struct {
	repo  repository.AccountRepository
	cache map[string]int64
}

func newAccountReconciler(repo repository.AccountRepository) *accountReconciler {
	return &accountReconciler{
		repo:  repo,
		cache: make(map[string]int64),
	}
}

func (r *accountReconciler) Resolve(ctx context.Context, platformLabel, name string, remark *string, projectID *int64) (int64, error) {
	platform, err := ResolvePlatform(platformLabel)
	if err != nil {
		return 0, err
	}

	key := string(platform) + ":" + name
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	existing, err := r.repo.FindByPlatformAndName(ctx, platform, name)
	if err != nil {
		return 0, errors.Wrap(err, "failed to look up account")
	}

	if existing != nil {
		r.cache[key] = existing.ID
		return existing.ID, nil
	}

	created, err := r.repo.CreateAccount(ctx, &domain.Account{
		ProjectID:   projectID,
		Platform:    platform,
		AccountName: name,
		Remark:      remark,
		Status:      domain.AccountStatusActive,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create account %q", name)
	}

	r.cache[key] = created.ID
	return created.ID, nil
}
