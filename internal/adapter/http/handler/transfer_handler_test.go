package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wagerpool/ledger/internal/adapter/http/dto"
	"github.com/wagerpool/ledger/internal/adapter/http/handler"
	"github.com/wagerpool/ledger/internal/adapter/http/middleware"
	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/infrastructure/metrics"
	"github.com/wagerpool/ledger/internal/usecase"
	"github.com/wagerpool/ledger/internal/usecase/mocks"
)

type transferFixture struct {
	handler    *handler.TransferHandler
	walletRepo *mocks.MockWalletRepository
	txnRepo    *mocks.MockTransactionRepository
	router     chi.Router
}

func newTransferHandlerFixture(t *testing.T) *transferFixture {
	t.Helper()

	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, txnRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(txnRepo)
	walletUC := usecase.NewWalletUseCase(walletRepo)
	m := metrics.NewWith(prometheus.NewRegistry())

	h := handler.NewTransferHandler(transferUC, txnUC, walletUC, nil, m)

	r := chi.NewRouter()
	r.Post("/transfers", h.Create)
	r.Get("/transfers/{id}", h.Get)
	r.Delete("/transfers/{id}", h.Delete)

	return &transferFixture{handler: h, walletRepo: walletRepo, txnRepo: txnRepo, router: r}
}

func asUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, user)
	return r.WithContext(ctx)
}

func TestTransferHandlerCreate(t *testing.T) {
	member := &domain.User{ID: "user_1", Role: domain.RoleMember}

	tests := []struct {
		name       string
		body       string
		user       *domain.User
		seed       []*domain.Wallet
		wantStatus int
	}{
		{
			name: "successful transfer",
			body: `{"to_wallet_id":"wall_b","amount":100}`,
			user: member,
			seed: []*domain.Wallet{
				{ID: "wall_a", OwnerID: "user_1", Balance: 500},
				{ID: "wall_b", OwnerID: "user_2", Balance: 0},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "insufficient balance is a policy rejection",
			body: `{"to_wallet_id":"wall_b","amount":9999}`,
			user: member,
			seed: []*domain.Wallet{
				{ID: "wall_a", OwnerID: "user_1", Balance: 500},
				{ID: "wall_b", OwnerID: "user_2", Balance: 0},
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "zero amount",
			body: `{"to_wallet_id":"wall_b","amount":0}`,
			user: member,
			seed: []*domain.Wallet{
				{ID: "wall_a", OwnerID: "user_1", Balance: 500},
				{ID: "wall_b", OwnerID: "user_2", Balance: 0},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown destination wallet",
			body: `{"to_wallet_id":"wall_missing","amount":100}`,
			user: member,
			seed: []*domain.Wallet{
				{ID: "wall_a", OwnerID: "user_1", Balance: 500},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "caller without a wallet",
			body:       `{"to_wallet_id":"wall_b","amount":100}`,
			user:       &domain.User{ID: "user_nowallet", Role: domain.RoleMember},
			seed:       []*domain.Wallet{{ID: "wall_b", OwnerID: "user_2", Balance: 0}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			body:       `{"to_wallet_id":`,
			user:       member,
			seed:       []*domain.Wallet{{ID: "wall_a", OwnerID: "user_1", Balance: 500}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransferHandlerFixture(t)
			for _, w := range tt.seed {
				f.walletRepo.Put(w)
			}

			req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewBufferString(tt.body))
			req = asUser(req, tt.user)
			rec := httptest.NewRecorder()

			f.router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusCreated {
				var resp dto.TransactionResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid response JSON: %v", err)
				}
				if resp.FromWalletID != "wall_a" {
					t.Errorf("from_wallet_id = %s, want caller's own wallet", resp.FromWalletID)
				}
				if resp.Amount != 100 {
					t.Errorf("amount = %d, want 100", resp.Amount)
				}
				if resp.ID == "" {
					t.Error("expected generated transaction id")
				}
			}
		})
	}
}

func TestTransferHandlerCreateRequiresAuth(t *testing.T) {
	f := newTransferHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewBufferString(`{"to_wallet_id":"wall_b","amount":100}`))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestTransferHandlerGet(t *testing.T) {
	f := newTransferHandlerFixture(t)
	if err := f.txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID:           "trax_abc123",
		Amount:       100,
		FromWalletID: "wall_a",
		ToWalletID:   "wall_b",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("existing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transfers/trax_abc123", nil)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		if resp.ID != "trax_abc123" {
			t.Errorf("id = %s, want trax_abc123", resp.ID)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transfers/trax_missing", nil)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestTransferHandlerDelete(t *testing.T) {
	f := newTransferHandlerFixture(t)
	if err := f.txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID:           "trax_abc123",
		Amount:       100,
		FromWalletID: "wall_a",
		ToWalletID:   "wall_b",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/transfers/trax_abc123", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	// Double delete surfaces as 404.
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/transfers/trax_abc123", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("double delete status = %d, want 404", rec.Code)
	}
}
