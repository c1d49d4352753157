package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wagerpool/ledger/internal/adapter/http/dto"
	"github.com/wagerpool/ledger/internal/adapter/http/middleware"
	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/infrastructure/metrics"
	"github.com/wagerpool/ledger/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	txnUC      *usecase.TransactionUseCase
	walletUC   *usecase.WalletUseCase
	retrier    usecase.Retrier
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler. The retrier re-runs the
// whole transfer on transient store failures; it may be nil to disable
// retries.
func NewTransferHandler(
	transferUC *usecase.TransferUseCase,
	txnUC *usecase.TransactionUseCase,
	walletUC *usecase.WalletUseCase,
	retrier usecase.Retrier,
	m *metrics.Metrics,
) *TransferHandler {
	return &TransferHandler{
		transferUC: transferUC,
		txnUC:      txnUC,
		walletUC:   walletUC,
		retrier:    retrier,
		metrics:    m,
	}
}

// Create creates a new transfer out of the caller's own wallet.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	fromWallet, err := h.walletUC.FindOwnedBy(r.Context(), user.ID, usecase.FindOpts{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve wallet", err.Error())
		return
	}
	if fromWallet == nil {
		writeError(w, http.StatusNotFound, "caller has no wallet", "")
		return
	}

	input := usecase.CreateTransferInput{
		FromWalletID: fromWallet.ID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
	}

	start := time.Now()

	var txn *domain.Transaction
	op := func() error {
		var opErr error
		txn, opErr = h.transferUC.CreateTransfer(r.Context(), input)
		return opErr
	}

	if h.retrier != nil {
		err = h.retrier.Retry(r.Context(), op)
	} else {
		err = op()
	}

	if err != nil {
		status := mapDomainError(err)
		h.metrics.TransferErrors.WithLabelValues(errorReason(err)).Inc()
		writeError(w, status, "failed to create transfer", err.Error())

		return
	}

	h.metrics.TransfersCreated.Inc()
	h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	h.metrics.TransferAmount.Observe(float64(txn.Amount))

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transfer record by id.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.txnUC.FindOneOrFail(r.Context(), id, usecase.FindOpts{IncludeDeleted: includeDeleted(r)})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete soft-deletes a transfer record. The row survives for audit; only
// its visibility changes.
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.txnUC.SoftDelete(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete transaction", err.Error())

		return
	}

	h.metrics.TransactionsSoftDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}

func errorReason(err error) string {
	switch mapDomainError(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusForbidden:
		return "insufficient_balance"
	case http.StatusBadRequest:
		return "invalid_amount"
	default:
		return "store_failure"
	}
}
