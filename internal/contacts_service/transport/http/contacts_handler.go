package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

// ContactService is the application surface the handlers depend on.
// *app.Application implements it.
type ContactService interface {
	CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error)
	GetContact(ctx context.Context, id int64) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]*domain.Contact, error)
	ListContactsByCategory(ctx context.Context, token string) ([]*domain.Contact, error)
	SearchContacts(ctx context.Context, query string) ([]*domain.Contact, error)
	UpdateContact(ctx context.Context, id int64, in domain.ContactPatchInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) (bool, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
	Export(ctx context.Context) (*domain.Export, error)
}

// ContactsHandler handles HTTP requests under /contacts.
type ContactsHandler struct {
	contacts ContactService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(contacts ContactService, logger *slog.Logger, validate *validator.Validate) *ContactsHandler {
	return &ContactsHandler{
		contacts: contacts,
		logger:   logger.With("component", "contacts_handler"),
		validate: validate,
	}
}

// RegisterRoutes mounts the contact endpoints on r, which is expected to be
// the /contacts sub-router.
func (h *ContactsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.CreateContact)
	r.Get("/", h.ListContacts)
	r.Get("/statistics", h.GetStatistics)
	r.Get("/search", h.SearchContacts)
	r.Get("/backup", h.ExportContacts)
	r.Route("/{contactID}", func(r chi.Router) {
		r.Get("/", h.GetContact)
		r.Put("/", h.UpdateContact)
		r.Delete("/", h.DeleteContact)
	})
}

func (h *ContactsHandler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", chi_middleware.GetReqID(r.Context()))
}

// respondWithServiceError writes the status matching err. Unexpected errors
// are logged and hidden behind a generic message.
func (h *ContactsHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, action string) {
	code := mapDomainErrorToHTTPStatus(err)
	if id, ok := contactIDFromRequest(r); ok && code == http.StatusNotFound {
		respondWithError(w, code, fmt.Sprintf("Contact with ID %d not found", id))
		return
	}
	if code == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Failed to "+action, "error", err)
		respondWithError(w, code, "Failed to "+action)
		return
	}
	respondWithError(w, code, err.Error())
}

func contactIDFromRequest(r *http.Request) (int64, bool) {
	id, err := parseContactID(r)
	return id, err == nil
}

func parseContactID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "contactID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact ID %q", raw)
	}
	return id, nil
}

// CreateContact handles POST /contacts.
func (h *ContactsHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	var reqDTO CreateContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.WarnContext(ctx, "Failed to decode create contact request", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		logger.WarnContext(ctx, "Validation failed for create contact request", "error", err)
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	ct, err := h.contacts.CreateContact(ctx, reqDTO.toInput())
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "create contact")
		return
	}
	respondWithJSON(w, http.StatusCreated, contactToResponseDTO(ct))
}

// ListContacts handles GET /contacts with the optional category filter.
func (h *ContactsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	query := r.URL.Query()
	if !query.Has("category") {
		contacts, err := h.contacts.ListContacts(ctx)
		if err != nil {
			h.respondWithServiceError(w, r, logger, err, "list contacts")
			return
		}
		respondWithJSON(w, http.StatusOK, contactsToResponseDTOs(contacts))
		return
	}

	category := query.Get("category")
	contacts, err := h.contacts.ListContactsByCategory(ctx, category)
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "list contacts")
		return
	}
	if len(contacts) == 0 {
		emptyResultsTotal.WithLabelValues("category").Inc()
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("No contacts found in category '%s'", category))
		return
	}
	respondWithJSON(w, http.StatusOK, contactsToResponseDTOs(contacts))
}

// SearchContacts handles GET /contacts/search?name=.
func (h *ContactsHandler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	name := r.URL.Query().Get("name")
	contacts, err := h.contacts.SearchContacts(ctx, name)
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "search contacts")
		return
	}
	if len(contacts) == 0 {
		emptyResultsTotal.WithLabelValues("name_search").Inc()
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("No contacts found with name '%s'", name))
		return
	}
	respondWithJSON(w, http.StatusOK, contactsToResponseDTOs(contacts))
}

// GetStatistics handles GET /contacts/statistics.
func (h *ContactsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.contacts.Statistics(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, h.requestLogger(r), err, "compute statistics")
		return
	}
	respondWithJSON(w, http.StatusOK, statisticsToResponseDTO(stats))
}

// ExportContacts handles GET /contacts/backup.
func (h *ContactsHandler) ExportContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	export, err := h.contacts.Export(ctx)
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "export contacts")
		return
	}
	logger.InfoContext(ctx, "Contacts exported", "total_contacts", export.TotalContacts)
	respondWithJSON(w, http.StatusOK, exportToResponseDTO(export))
}

// GetContact handles GET /contacts/{contactID}.
func (h *ContactsHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	id, err := parseContactID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ct, err := h.contacts.GetContact(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "get contact")
		return
	}
	respondWithJSON(w, http.StatusOK, contactToResponseDTO(ct))
}

// UpdateContact handles PUT /contacts/{contactID}. Only the fields present in
// the body are changed.
func (h *ContactsHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)
	id, err := parseContactID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With("contact_id", id)

	var reqDTO UpdateContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.WarnContext(ctx, "Failed to decode update contact request", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		logger.WarnContext(ctx, "Validation failed for update contact request", "error", err)
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	ct, err := h.contacts.UpdateContact(ctx, id, reqDTO.toInput())
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "update contact")
		return
	}
	respondWithJSON(w, http.StatusOK, contactToResponseDTO(ct))
}

// DeleteContact handles DELETE /contacts/{contactID}.
func (h *ContactsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	id, err := parseContactID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := h.contacts.DeleteContact(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, logger, err, "delete contact")
		return
	}
	if !found {
		h.respondWithServiceError(w, r, logger, domain.ErrNotFound, "delete contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
