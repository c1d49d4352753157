package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagerpool/ledger/internal/adapter/http/dto"
	"github.com/wagerpool/ledger/internal/adapter/http/middleware"
	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/infrastructure/metrics"
	"github.com/wagerpool/ledger/internal/usecase"
)

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC *usecase.WalletUseCase
	metrics  *metrics.Metrics
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC *usecase.WalletUseCase, m *metrics.Metrics) *WalletHandler {
	return &WalletHandler{walletUC: walletUC, metrics: m}
}

// GetOwn returns the authenticated caller's wallet.
func (h *WalletHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	wallet, err := h.walletUC.FindOwnedBy(r.Context(), user.ID, usecase.FindOpts{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve wallet", err.Error())
		return
	}
	if wallet == nil {
		writeError(w, http.StatusNotFound, "caller has no wallet", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by id. Non-admin callers are scoped to their own
// wallet: a wallet belonging to someone else comes back as 404, so wallet
// ids of other users cannot be probed.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	opts := usecase.WalletFindOpts{IncludeDeleted: includeDeleted(r)}
	if user.Role != domain.RoleAdmin {
		opts.OwnerID = user.ID
		opts.IncludeDeleted = false
	}

	wallet, err := h.walletUC.FindOrFail(r.Context(), id, opts)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Delete soft-deletes a wallet, typically when its owner is removed.
// Deleting an already deleted wallet is an error, not a no-op.
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	if err := h.walletUC.SoftDelete(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete wallet", err.Error())

		return
	}

	h.metrics.WalletsSoftDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}
