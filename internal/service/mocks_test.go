package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tuanvumaihuynh/brewery/internal/model"
	"github.com/tuanvumaihuynh/brewery/internal/repository"
	"github.com/tuanvumaihuynh/brewery/internal/storage/db"
)

// txDB runs WithTx callbacks inline; every other method panics if called.
type txDB struct {
	db.DB
	txCount int
}

func (d *txDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	d.txCount++
	return txFunc(d)
}

type mockBeerRepository struct {
	mock.Mock
}

func (m *mockBeerRepository) WithDB(db.DB) repository.BeerRepository {
	return m
}

func (m *mockBeerRepository) GetBeerByID(ctx context.Context, id int32) (model.Beer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Beer), args.Error(1)
}

func (m *mockBeerRepository) GetBeerByUPC(ctx context.Context, upc string) (model.Beer, error) {
	args := m.Called(ctx, upc)
	return args.Get(0).(model.Beer), args.Error(1)
}

func (m *mockBeerRepository) ListBeers(ctx context.Context, params repository.ListBeersParams) (repository.ListBeersResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(repository.ListBeersResult), args.Error(1)
}

func (m *mockBeerRepository) CreateBeer(ctx context.Context, params repository.CreateBeerParams) (model.Beer, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Beer), args.Error(1)
}

func (m *mockBeerRepository) DeleteBeerByID(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockOutboxMsgRepository struct {
	mock.Mock
}

func (m *mockOutboxMsgRepository) WithDB(db.DB) repository.OutboxMsgRepository {
	return m
}

func (m *mockOutboxMsgRepository) CreateOutboxMsg(ctx context.Context, params repository.CreateOutboxMsgParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *mockOutboxMsgRepository) ListUnprocessedOutboxMsgs(ctx context.Context, params repository.ListUnprocessedOutboxMsgsParams) ([]repository.OutboxMsg, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]repository.OutboxMsg), args.Error(1)
}

func (m *mockOutboxMsgRepository) BulkUpdateOutboxMsgs(ctx context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	return m.Called(ctx, params).Error(0)
}
