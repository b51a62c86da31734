package account

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id int) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, id int, patch Patch) (Account, error)
	Delete(ctx context.Context, id int) (bool, error)
	Overview(ctx context.Context) (Overview, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Account, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, account Account) (Account, error) {
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	log.Debugf("created %s account %d (%s)", created.Type, created.Id, created.Name)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, patch Patch) (Account, error) {
	updated, err := s.repo.Update(ctx, id, patch.Apply)
	if err != nil {
		log.Warnf("account not updated (%d): %v", id, err)
		return Account{}, err
	}
	return updated, nil
}

// Delete removes the account. Transactions referencing it are left untouched.
func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Warnf("account not deleted (%d): %v", id, err)
		return false, err
	}
	return deleted, nil
}

func (s *ServiceImpl) Overview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, err
	}
	return Summarize(s.repo.Snapshot()), nil
}
