package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/fp/option"
	"github.com/aesirglt/AdaTech/internal/fp/result"
	"github.com/aesirglt/AdaTech/internal/store"
)

// MockCardReader mocks the CardReader interface
type MockCardReader struct {
	mock.Mock
}

func (m *MockCardReader) FindByID(ctx context.Context, id uuid.UUID) (option.Option[domain.Card], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(option.Option[domain.Card]), args.Error(1)
}

func (m *MockCardReader) GetAll(ctx context.Context) ([]domain.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

// MockCardWriter mocks the CardWriter interface
type MockCardWriter struct {
	mock.Mock
}

func (m *MockCardWriter) Insert(ctx context.Context, card option.Option[domain.Card]) (store.InsertOutcome, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(store.InsertOutcome), args.Error(1)
}

func (m *MockCardWriter) Update(ctx context.Context, card option.Option[domain.Card]) (store.UpdateOutcome, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(store.UpdateOutcome), args.Error(1)
}

func (m *MockCardWriter) Remove(ctx context.Context, card domain.Card) (result.Result[result.Done], error) {
	args := m.Called(ctx, card)
	return args.Get(0).(result.Result[result.Done]), args.Error(1)
}
