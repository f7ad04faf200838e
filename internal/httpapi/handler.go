package httpapi

import (
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"strconv"
	"strings"
	"time"

	"queueflow/internal/models"
	"queueflow/internal/store"
)

type Handler struct {
	tickets store.TicketStore
	users   store.UserStore
	admin   store.AdminStore
}

func NewHandler(tickets store.TicketStore, users store.UserStore, admin store.AdminStore) *Handler {
	return &Handler{
		tickets: tickets,
		users:   users,
		admin:   admin,
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", expvar.Handler())
	mux.HandleFunc("/api/auth/signup", h.handleSignup)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/me", h.handleMe)
	mux.HandleFunc("/api/institutions", h.handleInstitutions)
	mux.HandleFunc("/api/institutions/", h.handleInstitutionSubresources)
	mux.HandleFunc("/api/tickets", h.handleCreateTicket)
	mux.HandleFunc("/api/tickets/actions/call-next", h.handleCallNext)
	mux.HandleFunc("/api/tickets/", h.handleTicketByNumber)
	mux.HandleFunc("/api/queue", h.handleQueueList)
	mux.HandleFunc("/api/queue/summary", h.handleQueueSummary)
	mux.HandleFunc("/api/users/", h.handleUserTickets)
	mux.HandleFunc("/api/operators/", h.handleOperatorStats)
	mux.HandleFunc("/api/admin/stats", h.handleAdminStats)
	mux.HandleFunc("/api/admin/operators", h.handleAdminOperators)
	mux.HandleFunc("/api/events", h.handleEvents)
	return AuthMiddleware(h.users, LoggingMiddleware(mux))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type signupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	InstitutionID *int64 `json:"institution_id"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name, email, and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid_request", "email must be a valid address")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "invalid_request", "password must be at least 8 characters")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleCitizen
	}
	if !models.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "invalid_request", "role must be citizen, operator, or admin")
		return
	}
	if req.Role != models.RoleCitizen {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
	}
	if req.Role == models.RoleOperator && req.InstitutionID == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "operator accounts require institution_id")
		return
	}
	if req.Role == models.RoleCitizen {
		req.InstitutionID = nil
	}

	user, err := h.users.CreateUser(r.Context(), store.CreateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	SessionID string      `json:"session_id"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		SessionID: result.Session.SessionID,
		ExpiresAt: result.Session.ExpiresAt,
		User:      result.User,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type createInstitutionRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Location string  `json:"location"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

func (h *Handler) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category != "" && !models.ValidCategory(category) {
			writeError(w, http.StatusBadRequest, "invalid_request", "category must be hospital, municipal, bank, or transport")
			return
		}
		institutions, err := h.admin.ListInstitutions(r.Context(), category)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"institutions": institutions})
	case http.MethodPost:
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var req createInstitutionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Category = strings.TrimSpace(req.Category)
		req.Location = strings.TrimSpace(req.Location)
		if req.Name == "" || req.Category == "" || req.Location == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "name, category, and location are required")
			return
		}
		if !models.ValidCategory(req.Category) {
			writeError(w, http.StatusBadRequest, "invalid_request", "category must be hospital, municipal, bank, or transport")
			return
		}
		institution, err := h.admin.CreateInstitution(r.Context(), store.CreateInstitutionInput{
			Name:     req.Name,
			Category: req.Category,
			Location: req.Location,
			Address:  req.Address,
			Phone:    req.Phone,
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusCreated, institution)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type createServiceRequest struct {
	Name       string `json:"name"`
	AvgMinutes int    `json:"avg_minutes"`
}

func (h *Handler) handleInstitutionSubresources(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/institutions/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	institutionID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || institutionID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "institution id must be a positive integer")
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		institution, err := h.admin.GetInstitution(r.Context(), institutionID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, institution)
	case len(parts) == 2 && parts[1] == "services":
		switch r.Method {
		case http.MethodGet:
			services, err := h.admin.ListServices(r.Context(), institutionID)
			if err != nil {
				status, code, msg := mapError(err)
				writeError(w, status, code, msg)
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"services": services})
		case http.MethodPost:
			if _, ok := requireAdmin(w, r); !ok {
				return
			}
			var req createServiceRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			req.Name = strings.TrimSpace(req.Name)
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
				return
			}
			if req.AvgMinutes < 0 {
				writeError(w, http.StatusBadRequest, "invalid_request", "avg_minutes must not be negative")
				return
			}
			service, err := h.admin.CreateService(r.Context(), store.CreateServiceInput{
				InstitutionID: institutionID,
				Name:          req.Name,
				AvgMinutes:    req.AvgMinutes,
			})
			if err != nil {
				status, code, msg := mapError(err)
				writeError(w, status, code, msg)
				return
			}
			writeJSON(w, http.StatusCreated, service)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "operators":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		operators, err := h.users.ListOperators(r.Context(), &institutionID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"operators": operators})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type createTicketRequest struct {
	InstitutionID int64  `json:"institution_id"`
	ServiceID     *int64 `json:"service_id"`
}

func (h *Handler) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req createTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.InstitutionID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "institution_id is required")
		return
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "service_id must be a positive integer when provided")
		return
	}

	input := store.CreateTicketInput{
		InstitutionID: req.InstitutionID,
		ServiceID:     req.ServiceID,
		CreatedAt:     time.Now().UTC(),
	}
	if user, ok := userFromContext(r.Context()); ok {
		input.UserID = &user.ID
	}

	receipt, err := h.tickets.CreateTicket(r.Context(), input)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

type callNextRequest struct {
	InstitutionID int64  `json:"institution_id"`
	ServiceID     *int64 `json:"service_id"`
}

func (h *Handler) handleCallNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req callNextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.InstitutionID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "institution_id is required")
		return
	}

	operator, ok := requireOperator(w, r, req.InstitutionID)
	if !ok {
		return
	}

	ticket, found, err := h.tickets.CallNext(r.Context(), store.CallNextInput{
		InstitutionID: req.InstitutionID,
		ServiceID:     req.ServiceID,
		OperatorID:    operator.ID,
		CalledAt:      time.Now().UTC(),
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ticket":  nil,
			"message": "queue is empty",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ticket": ticket})
}

func (h *Handler) handleTicketByNumber(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/tickets/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	number := strings.ToUpper(strings.TrimSpace(parts[0]))
	if number == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		institutionID, ok := institutionIDFromQuery(w, r)
		if !ok {
			return
		}
		ticket, err := h.tickets.GetTicketByNumber(r.Context(), institutionID, number)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, ticket)
	case len(parts) == 2 && parts[1] == "stats":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		institutionID, ok := institutionIDFromQuery(w, r)
		if !ok {
			return
		}
		stats, err := h.tickets.GetTicketStats(r.Context(), institutionID, number)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	case len(parts) == 2:
		h.handleTicketAction(w, r, number, parts[1])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type ticketActionRequest struct {
	InstitutionID int64 `json:"institution_id"`
}

func (h *Handler) handleTicketAction(w http.ResponseWriter, r *http.Request, number, action string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req ticketActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.InstitutionID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "institution_id is required")
		return
	}

	input := store.TicketActionInput{
		InstitutionID: req.InstitutionID,
		TicketNumber:  number,
		OccurredAt:    time.Now().UTC(),
	}

	switch action {
	case "cancel":
		if user, ok := userFromContext(r.Context()); ok {
			input.ActorUserID = &user.ID
			input.Admin = user.Role == models.RoleAdmin
		}
		ticket, err := h.tickets.CancelTicket(r.Context(), input)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, ticket)
	case "start", "complete", "miss":
		operator, ok := requireOperator(w, r, req.InstitutionID)
		if !ok {
			return
		}
		if operator.Role == models.RoleOperator {
			input.OperatorID = &operator.ID
		}

		var ticket models.Ticket
		var err error
		switch action {
		case "start":
			ticket, err = h.tickets.StartService(r.Context(), input)
		case "complete":
			ticket, err = h.tickets.CompleteTicket(r.Context(), input)
		case "miss":
			ticket, err = h.tickets.MissTicket(r.Context(), input)
		}
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, ticket)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleQueueList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	institutionID, ok := institutionIDFromQuery(w, r)
	if !ok {
		return
	}
	serviceID, ok := serviceIDFromQuery(w, r)
	if !ok {
		return
	}
	if _, ok := requireOperator(w, r, institutionID); !ok {
		return
	}

	tickets, err := h.tickets.ListWaitingTickets(r.Context(), institutionID, serviceID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

func (h *Handler) handleQueueSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	institutionID, ok := institutionIDFromQuery(w, r)
	if !ok {
		return
	}
	serviceID, ok := serviceIDFromQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.tickets.QueueSummary(r.Context(), institutionID, serviceID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleUserTickets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[1] != "tickets" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "user id must be a positive integer")
		return
	}

	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	if actor.ID != userID && actor.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "access_denied", "access denied")
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	tickets, err := h.users.ListUserTickets(r.Context(), userID, limit)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

func (h *Handler) handleOperatorStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/operators/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[1] != "stats" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	operatorID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || operatorID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "operator id must be a positive integer")
		return
	}

	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	if actor.ID != operatorID && actor.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "access_denied", "access denied")
		return
	}

	stats, err := h.users.OperatorStats(r.Context(), operatorID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	stats, err := h.admin.AdminStats(r.Context())
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleAdminOperators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	operators, err := h.users.ListOperators(r.Context(), nil)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"operators": operators})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var after time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("after")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "after must be an RFC3339 timestamp")
			return
		}
		after = parsed
	}

	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.tickets.ListOutboxEvents(r.Context(), after, limit)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func institutionIDFromQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("institution_id"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "institution_id is required")
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "institution_id must be a positive integer")
		return 0, false
	}
	return value, true
}

func serviceIDFromQuery(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("service_id"))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "service_id must be a positive integer")
		return nil, false
	}
	return &value, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return false
	}
	return true
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, store.ErrInstitutionNotFound):
		return http.StatusNotFound, "institution_not_found", "institution not found"
	case errors.Is(err, store.ErrServiceNotFound):
		return http.StatusNotFound, "service_not_found", "service not found"
	case errors.Is(err, store.ErrTicketNotFound):
		return http.StatusNotFound, "ticket_not_found", "ticket not found"
	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found", "user not found"
	case errors.Is(err, store.ErrInvalidState):
		return http.StatusConflict, "invalid_state", "ticket state does not allow this action"
	case errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "email already registered"
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusUnauthorized, "unauthorized", "invalid session"
	case errors.Is(err, store.ErrAccessDenied):
		return http.StatusForbidden, "access_denied", "access denied"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error: responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
