package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wagerpool/ledger/internal/adapter/repository/postgres"
	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/usecase"
	"github.com/wagerpool/ledger/tests/testutil"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	walletRepo := postgres.NewWalletRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewHexIDGenerator()

	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, txnRepo, idGen)

	t.Run("100 concurrent transfers from same wallet no overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// Source balance allows exactly 100 transfers of 10
		source := testDB.CreateTestWallet(ctx, "owner_src", 1000)
		dest := testDB.CreateTestWallet(ctx, "owner_dst", 0)

		numTransfers := 100
		transferAmount := int64(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromWalletID: source.ID,
					ToWalletID:   dest.ID,
					Amount:       transferAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// All 100 should succeed (1000 / 10 = 100)
		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d (errors: %d)", numTransfers, successCount.Load(), errorCount.Load())
		}

		if got := testDB.WalletBalance(ctx, source.ID); got != 0 {
			t.Errorf("expected source balance 0, got %d", got)
		}

		if got := testDB.WalletBalance(ctx, dest.ID); got != 1000 {
			t.Errorf("expected dest balance 1000, got %d", got)
		}
	})

	t.Run("concurrent transfers reject overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestWallet(ctx, "owner_src", 100)
		dest := testDB.CreateTestWallet(ctx, "owner_dst", 0)

		numTransfers := 20
		transferAmount := int64(10) // 20 * 10 = 200 > 100

		var (
			wg            sync.WaitGroup
			successCount  atomic.Int32
			rejectedCount atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromWalletID: source.ID,
					ToWalletID:   dest.ID,
					Amount:       transferAmount,
				})
				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, domain.ErrInsufficientBalance):
					rejectedCount.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}

		wg.Wait()

		// Only 10 should succeed (100 / 10 = 10)
		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful transfers, got %d", successCount.Load())
		}

		if rejectedCount.Load() != 10 {
			t.Errorf("expected 10 rejected transfers, got %d", rejectedCount.Load())
		}

		if got := testDB.WalletBalance(ctx, source.ID); got != 0 {
			t.Errorf("expected source balance 0, got %d", got)
		}
	})

	t.Run("concurrent fan-out drains the source exactly", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestWallet(ctx, "owner_src", 300)
		dests := []*domain.Wallet{
			testDB.CreateTestWallet(ctx, "owner_1", 0),
			testDB.CreateTestWallet(ctx, "owner_2", 0),
			testDB.CreateTestWallet(ctx, "owner_3", 0),
		}

		var wg sync.WaitGroup
		wg.Add(len(dests))

		for _, dest := range dests {
			go func() {
				defer wg.Done()

				_, err := transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromWalletID: source.ID,
					ToWalletID:   dest.ID,
					Amount:       100,
				})
				if err != nil {
					t.Errorf("transfer to %s failed: %v", dest.ID, err)
				}
			}()
		}

		wg.Wait()

		if got := testDB.WalletBalance(ctx, source.ID); got != 0 {
			t.Errorf("source balance = %d, want 0", got)
		}

		var total int64
		for _, dest := range dests {
			total += testDB.WalletBalance(ctx, dest.ID)
		}
		if total != 300 {
			t.Errorf("destination total = %d, want 300", total)
		}
	})

	t.Run("deadlock prevention with opposing transfers", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		a := testDB.CreateTestWallet(ctx, "owner_a", 1000)
		b := testDB.CreateTestWallet(ctx, "owner_b", 1000)

		numTransfers := 50

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		// Half transfer A -> B, half transfer B -> A concurrently

		wg.Add(numTransfers * 2)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromWalletID: a.ID,
					ToWalletID:   b.ID,
					Amount:       10,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
			go func() {
				defer wg.Done()

				_, err := transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromWalletID: b.ID,
					ToWalletID:   a.ID,
					Amount:       10,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// All transfers should succeed (no deadlock)
		if successCount.Load() != int32(numTransfers*2) {
			t.Errorf("expected %d successful transfers, got %d", numTransfers*2, successCount.Load())
		}

		// Balances unchanged (equal opposite transfers)
		if got := testDB.WalletBalance(ctx, a.ID); got != 1000 {
			t.Errorf("expected a balance 1000, got %d", got)
		}

		if got := testDB.WalletBalance(ctx, b.ID); got != 1000 {
			t.Errorf("expected b balance 1000, got %d", got)
		}
	})

	t.Run("concurrent self transfers leave balance unchanged", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := testDB.CreateTestWallet(ctx, "owner_a", 500)

		numTransfers := 20

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromWalletID: w.ID,
					ToWalletID:   w.ID,
					Amount:       100,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful self transfers, got %d", numTransfers, successCount.Load())
		}

		if got := testDB.WalletBalance(ctx, w.ID); got != 500 {
			t.Errorf("expected balance 500, got %d", got)
		}
	})
}
