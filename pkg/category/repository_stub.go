package category

import (
	"context"
)

// stubFailingRepository fails every operation with err.
type stubFailingRepository struct {
	err error
}

func newStubFailingRepository(err error) *stubFailingRepository {
	return &stubFailingRepository{err: err}
}

func (s *stubFailingRepository) List(ctx context.Context) ([]Category, error) {
	return nil, s.err
}

func (s *stubFailingRepository) Get(ctx context.Context, id int) (Category, error) {
	return Category{}, s.err
}

func (s *stubFailingRepository) Create(ctx context.Context, category Category) (Category, error) {
	return Category{}, s.err
}

func (s *stubFailingRepository) Update(ctx context.Context, id int, mutate func(*Category)) (Category, error) {
	return Category{}, s.err
}

func (s *stubFailingRepository) Delete(ctx context.Context, id int) (bool, error) {
	return false, s.err
}

func (s *stubFailingRepository) Snapshot() []Category {
	return nil
}

func (s *stubFailingRepository) Filter(ctx context.Context, pred func(Category) bool) ([]Category, error) {
	return nil, s.err
}
