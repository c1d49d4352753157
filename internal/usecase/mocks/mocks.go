package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/usecase"
)

// MockWalletRepository is a mock implementation of usecase.WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet

	GetByIDFunc           func(ctx context.Context, id string, opts usecase.WalletFindOpts) (*domain.Wallet, error)
	GetByOwnerFunc        func(ctx context.Context, ownerID string, opts usecase.FindOpts) (*domain.Wallet, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance int64) error
	SoftDeleteFunc        func(ctx context.Context, id string) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Put seeds a wallet into the in-memory store.
func (m *MockWalletRepository) Put(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.ID] = wallet
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id string, opts usecase.WalletFindOpts) (*domain.Wallet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, opts)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wallets[id]
	if !ok || (w.Deleted && !opts.IncludeDeleted) {
		return nil, domain.ErrWalletNotFound
	}
	if opts.OwnerID != "" && w.OwnerID != opts.OwnerID {
		return nil, domain.ErrWalletNotFound
	}
	return w, nil
}

func (m *MockWalletRepository) GetByOwner(ctx context.Context, ownerID string, opts usecase.FindOpts) (*domain.Wallet, error) {
	if m.GetByOwnerFunc != nil {
		return m.GetByOwnerFunc(ctx, ownerID, opts)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.wallets {
		if w.OwnerID == ownerID && (!w.Deleted || opts.IncludeDeleted) {
			return w, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wallets := make([]*domain.Wallet, 0, len(ids))
	for _, id := range ids {
		if w, ok := m.wallets[id]; ok && !w.Deleted {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.Balance = balance
	w.DateModified = time.Now().UTC()
	return nil
}

func (m *MockWalletRepository) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok || w.Deleted {
		return domain.ErrWalletNotFound
	}
	w.Deleted = true
	w.DateModified = time.Now().UTC()
	return nil
}

// MockTransactionRepository is a mock implementation of usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc    func(ctx context.Context, id string, opts usecase.FindOpts) (*domain.Transaction, error)
	SoftDeleteFunc func(ctx context.Context, id string) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	stored := *txn
	stored.DateCreated = now
	stored.DateModified = now
	m.transactions[txn.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string, opts usecase.FindOpts) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, opts)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.transactions[id]
	if !ok || (txn.Deleted && !opts.IncludeDeleted) {
		return nil, domain.ErrTransactionNotFound
	}
	return txn, nil
}

func (m *MockTransactionRepository) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok || txn.Deleted {
		return domain.ErrTransactionNotFound
	}
	txn.Deleted = true
	txn.DateModified = time.Now().UTC()
	return nil
}

// MockTransaction is a mock database transaction recording lifecycle calls.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of usecase.TransactionManager.
type MockTransactionManager struct {
	LastTx *MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func(prefix string) string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate(prefix string) string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s%015d", prefix, m.counter)[:domain.IDLength]
}
