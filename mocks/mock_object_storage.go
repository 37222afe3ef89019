package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, input port.PutObjectInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) SignedURL(ctx context.Context, key string, ttlSeconds int64) (string, error) {
	args := m.Called(ctx, key, ttlSeconds)
	return args.String(0), args.Error(1)
}
