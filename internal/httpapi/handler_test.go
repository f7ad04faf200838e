package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"queueflow/internal/models"
	"queueflow/internal/store"
)

type fakeStore struct {
	createFn        func(ctx context.Context, input store.CreateTicketInput) (store.TicketReceipt, error)
	getTicketFn     func(ctx context.Context, institutionID int64, number string) (models.Ticket, error)
	statsFn         func(ctx context.Context, institutionID int64, number string) (store.TicketStats, error)
	listWaitingFn   func(ctx context.Context, institutionID int64, serviceID *int64) ([]models.Ticket, error)
	callFn          func(ctx context.Context, input store.CallNextInput) (models.Ticket, bool, error)
	startFn         func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error)
	completeFn      func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error)
	missFn          func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error)
	cancelFn        func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error)
	summaryFn       func(ctx context.Context, institutionID int64, serviceID *int64) (models.QueueSummary, error)
	outboxFn        func(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error)
	createUserFn    func(ctx context.Context, input store.CreateUserInput) (models.User, error)
	loginFn         func(ctx context.Context, email, password string) (store.LoginResult, error)
	sessionFn       func(ctx context.Context, sessionID string) (store.Session, models.User, error)
	getUserFn       func(ctx context.Context, userID int64) (models.User, error)
	userTicketsFn   func(ctx context.Context, userID int64, limit int) ([]models.Ticket, error)
	operatorsFn     func(ctx context.Context, institutionID *int64) ([]models.User, error)
	operatorStatsFn func(ctx context.Context, operatorID int64) (store.OperatorStats, error)
	createInstFn    func(ctx context.Context, input store.CreateInstitutionInput) (models.Institution, error)
	getInstFn       func(ctx context.Context, institutionID int64) (models.Institution, error)
	listInstFn      func(ctx context.Context, category string) ([]models.Institution, error)
	createServiceFn func(ctx context.Context, input store.CreateServiceInput) (models.Service, error)
	listServicesFn  func(ctx context.Context, institutionID int64) ([]models.Service, error)
	adminStatsFn    func(ctx context.Context) (store.AdminStats, error)
}

func (f fakeStore) CreateTicket(ctx context.Context, input store.CreateTicketInput) (store.TicketReceipt, error) {
	if f.createFn == nil {
		return store.TicketReceipt{}, nil
	}
	return f.createFn(ctx, input)
}

func (f fakeStore) GetTicketByNumber(ctx context.Context, institutionID int64, number string) (models.Ticket, error) {
	if f.getTicketFn == nil {
		return models.Ticket{}, store.ErrTicketNotFound
	}
	return f.getTicketFn(ctx, institutionID, number)
}

func (f fakeStore) GetTicketStats(ctx context.Context, institutionID int64, number string) (store.TicketStats, error) {
	if f.statsFn == nil {
		return store.TicketStats{}, store.ErrTicketNotFound
	}
	return f.statsFn(ctx, institutionID, number)
}

func (f fakeStore) ListWaitingTickets(ctx context.Context, institutionID int64, serviceID *int64) ([]models.Ticket, error) {
	if f.listWaitingFn == nil {
		return nil, nil
	}
	return f.listWaitingFn(ctx, institutionID, serviceID)
}

func (f fakeStore) CallNext(ctx context.Context, input store.CallNextInput) (models.Ticket, bool, error) {
	if f.callFn == nil {
		return models.Ticket{}, false, nil
	}
	return f.callFn(ctx, input)
}

func (f fakeStore) StartService(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	if f.startFn == nil {
		return models.Ticket{}, nil
	}
	return f.startFn(ctx, input)
}

func (f fakeStore) CompleteTicket(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	if f.completeFn == nil {
		return models.Ticket{}, nil
	}
	return f.completeFn(ctx, input)
}

func (f fakeStore) MissTicket(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	if f.missFn == nil {
		return models.Ticket{}, nil
	}
	return f.missFn(ctx, input)
}

func (f fakeStore) CancelTicket(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	if f.cancelFn == nil {
		return models.Ticket{}, nil
	}
	return f.cancelFn(ctx, input)
}

func (f fakeStore) QueueSummary(ctx context.Context, institutionID int64, serviceID *int64) (models.QueueSummary, error) {
	if f.summaryFn == nil {
		return models.QueueSummary{}, nil
	}
	return f.summaryFn(ctx, institutionID, serviceID)
}

func (f fakeStore) AutoMiss(ctx context.Context, grace time.Duration, batchSize int) (int, error) {
	return 0, nil
}

func (f fakeStore) ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if f.outboxFn == nil {
		return nil, nil
	}
	return f.outboxFn(ctx, after, limit)
}

func (f fakeStore) CreateUser(ctx context.Context, input store.CreateUserInput) (models.User, error) {
	if f.createUserFn == nil {
		return models.User{}, nil
	}
	return f.createUserFn(ctx, input)
}

func (f fakeStore) Login(ctx context.Context, email, password string) (store.LoginResult, error) {
	if f.loginFn == nil {
		return store.LoginResult{}, store.ErrInvalidCredentials
	}
	return f.loginFn(ctx, email, password)
}

func (f fakeStore) GetSession(ctx context.Context, sessionID string) (store.Session, models.User, error) {
	if f.sessionFn == nil {
		return store.Session{}, models.User{}, store.ErrSessionNotFound
	}
	return f.sessionFn(ctx, sessionID)
}

func (f fakeStore) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if f.getUserFn == nil {
		return models.User{}, store.ErrUserNotFound
	}
	return f.getUserFn(ctx, userID)
}

func (f fakeStore) ListUserTickets(ctx context.Context, userID int64, limit int) ([]models.Ticket, error) {
	if f.userTicketsFn == nil {
		return nil, nil
	}
	return f.userTicketsFn(ctx, userID, limit)
}

func (f fakeStore) ListOperators(ctx context.Context, institutionID *int64) ([]models.User, error) {
	if f.operatorsFn == nil {
		return nil, nil
	}
	return f.operatorsFn(ctx, institutionID)
}

func (f fakeStore) OperatorStats(ctx context.Context, operatorID int64) (store.OperatorStats, error) {
	if f.operatorStatsFn == nil {
		return store.OperatorStats{}, nil
	}
	return f.operatorStatsFn(ctx, operatorID)
}

func (f fakeStore) CreateInstitution(ctx context.Context, input store.CreateInstitutionInput) (models.Institution, error) {
	if f.createInstFn == nil {
		return models.Institution{}, nil
	}
	return f.createInstFn(ctx, input)
}

func (f fakeStore) GetInstitution(ctx context.Context, institutionID int64) (models.Institution, error) {
	if f.getInstFn == nil {
		return models.Institution{}, store.ErrInstitutionNotFound
	}
	return f.getInstFn(ctx, institutionID)
}

func (f fakeStore) ListInstitutions(ctx context.Context, category string) ([]models.Institution, error) {
	if f.listInstFn == nil {
		return nil, nil
	}
	return f.listInstFn(ctx, category)
}

func (f fakeStore) CreateService(ctx context.Context, input store.CreateServiceInput) (models.Service, error) {
	if f.createServiceFn == nil {
		return models.Service{}, nil
	}
	return f.createServiceFn(ctx, input)
}

func (f fakeStore) ListServices(ctx context.Context, institutionID int64) ([]models.Service, error) {
	if f.listServicesFn == nil {
		return nil, nil
	}
	return f.listServicesFn(ctx, institutionID)
}

func (f fakeStore) AdminStats(ctx context.Context) (store.AdminStats, error) {
	if f.adminStatsFn == nil {
		return store.AdminStats{}, nil
	}
	return f.adminStatsFn(ctx)
}

func newTestHandler(st fakeStore) http.Handler {
	return NewHandler(st, st, st).Routes()
}

func sessionAs(user models.User) func(ctx context.Context, sessionID string) (store.Session, models.User, error) {
	return func(ctx context.Context, sessionID string) (store.Session, models.User, error) {
		return store.Session{SessionID: sessionID, UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}, user, nil
	}
}

func int64Ptr(value int64) *int64 {
	return &value
}

func TestCreateTicketAnonymous(t *testing.T) {
	st := fakeStore{
		createFn: func(ctx context.Context, input store.CreateTicketInput) (store.TicketReceipt, error) {
			if input.UserID != nil {
				t.Fatalf("expected no user attached, got %d", *input.UserID)
			}
			return store.TicketReceipt{
				Ticket: models.Ticket{
					TicketID:      "ticket-1",
					TicketNumber:  "H001",
					InstitutionID: input.InstitutionID,
					Status:        models.StatusWaiting,
					QueuePosition: 1,
				},
				PeopleAhead:          0,
				EstimatedWaitMinutes: 0,
				InstitutionName:      "City Hospital",
			}, nil
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var receipt store.TicketReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if receipt.Ticket.TicketNumber != "H001" || receipt.InstitutionName != "City Hospital" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestCreateTicketAttachesSessionUser(t *testing.T) {
	citizen := models.User{ID: 7, Role: models.RoleCitizen}
	st := fakeStore{
		sessionFn: sessionAs(citizen),
		createFn: func(ctx context.Context, input store.CreateTicketInput) (store.TicketReceipt, error) {
			if input.UserID == nil || *input.UserID != 7 {
				t.Fatalf("expected user 7 attached, got %v", input.UserID)
			}
			return store.TicketReceipt{Ticket: models.Ticket{TicketNumber: "M001", Status: models.StatusWaiting}}, nil
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 2})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestCreateTicketMissingInstitution(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{"service_id": 3})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(fakeStore{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCallNextRequiresSession(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/actions/call-next", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(fakeStore{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestCallNextWrongInstitution(t *testing.T) {
	operator := models.User{ID: 3, Role: models.RoleOperator, InstitutionID: int64Ptr(2)}
	st := fakeStore{sessionFn: sessionAs(operator)}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/actions/call-next", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestCallNextEmptyQueue(t *testing.T) {
	operator := models.User{ID: 3, Role: models.RoleOperator, InstitutionID: int64Ptr(1)}
	st := fakeStore{
		sessionFn: sessionAs(operator),
		callFn: func(ctx context.Context, input store.CallNextInput) (models.Ticket, bool, error) {
			return models.Ticket{}, false, nil
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/actions/call-next", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload struct {
		Ticket  *models.Ticket `json:"ticket"`
		Message string         `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Ticket != nil {
		t.Fatalf("expected null ticket, got %+v", payload.Ticket)
	}
	if payload.Message == "" {
		t.Fatal("expected a message for the empty queue")
	}
}

func TestCallNextSuccess(t *testing.T) {
	operator := models.User{ID: 3, Role: models.RoleOperator, InstitutionID: int64Ptr(1)}
	calledAt := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	st := fakeStore{
		sessionFn: sessionAs(operator),
		callFn: func(ctx context.Context, input store.CallNextInput) (models.Ticket, bool, error) {
			if input.OperatorID != 3 {
				t.Fatalf("expected operator 3, got %d", input.OperatorID)
			}
			return models.Ticket{
				TicketNumber: "H002",
				Status:       models.StatusCalled,
				CalledAt:     &calledAt,
			}, true, nil
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/actions/call-next", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestCancelAnonymousTicketWithoutSession(t *testing.T) {
	st := fakeStore{
		cancelFn: func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
			if input.ActorUserID != nil {
				t.Fatalf("expected no actor, got %v", input.ActorUserID)
			}
			return models.Ticket{TicketNumber: input.TicketNumber, Status: models.StatusCancelled}, nil
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/H003/cancel", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestCancelOwnedTicketDenied(t *testing.T) {
	st := fakeStore{
		cancelFn: func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
			return models.Ticket{}, store.ErrAccessDenied
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/H003/cancel", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestCompleteTicketInvalidState(t *testing.T) {
	operator := models.User{ID: 3, Role: models.RoleOperator, InstitutionID: int64Ptr(1)}
	st := fakeStore{
		sessionFn: sessionAs(operator),
		completeFn: func(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
			return models.Ticket{}, store.ErrInvalidState
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"institution_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/H004/complete", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errResp.Error.Code != "invalid_state" {
		t.Fatalf("expected error code invalid_state, got %s", errResp.Error.Code)
	}
}

func TestTicketStats(t *testing.T) {
	st := fakeStore{
		statsFn: func(ctx context.Context, institutionID int64, number string) (store.TicketStats, error) {
			if institutionID != 1 || number != "H005" {
				t.Fatalf("unexpected lookup: institution=%d number=%s", institutionID, number)
			}
			return store.TicketStats{
				TicketNumber:         "H005",
				Status:               models.StatusWaiting,
				QueuePosition:        3,
				PeopleAhead:          2,
				EstimatedWaitMinutes: 6,
				InstitutionName:      "City Hospital",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/H005/stats?institution_id=1", nil)
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var stats store.TicketStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.PeopleAhead != 2 || stats.EstimatedWaitMinutes != 6 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestTicketStatsMissingInstitution(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tickets/H005/stats", nil)
	resp := httptest.NewRecorder()

	newTestHandler(fakeStore{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestQueueSummary(t *testing.T) {
	st := fakeStore{
		summaryFn: func(ctx context.Context, institutionID int64, serviceID *int64) (models.QueueSummary, error) {
			return models.QueueSummary{
				InstitutionID:        institutionID,
				CurrentNumber:        "H004",
				PeopleWaiting:        5,
				EstimatedWaitMinutes: 15,
				AvgServiceMinutes:    3,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/queue/summary?institution_id=1", nil)
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var summary models.QueueSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.CurrentNumber != "H004" || summary.PeopleWaiting != 5 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	st := fakeStore{
		createUserFn: func(ctx context.Context, input store.CreateUserInput) (models.User, error) {
			return models.User{}, store.ErrEmailTaken
		},
	}

	body, _ := json.Marshal(map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "hunter2hunter2",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errResp.Error.Code != "email_taken" {
		t.Fatalf("expected error code email_taken, got %s", errResp.Error.Code)
	}
}

func TestSignupOperatorRequiresAdmin(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"name":           "Op",
		"email":          "op@example.com",
		"password":       "hunter2hunter2",
		"role":           "operator",
		"institution_id": 1,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(fakeStore{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestSignupOperatorAsAdmin(t *testing.T) {
	admin := models.User{ID: 1, Role: models.RoleAdmin}
	st := fakeStore{
		sessionFn: sessionAs(admin),
		createUserFn: func(ctx context.Context, input store.CreateUserInput) (models.User, error) {
			if input.Role != models.RoleOperator {
				t.Fatalf("expected operator role, got %s", input.Role)
			}
			return models.User{ID: 9, Name: input.Name, Role: input.Role}, nil
		},
	}

	body, _ := json.Marshal(map[string]interface{}{
		"name":           "Op",
		"email":          "op@example.com",
		"password":       "hunter2hunter2",
		"role":           "operator",
		"institution_id": 1,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	newTestHandler(fakeStore{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAdminStatsForbiddenForOperator(t *testing.T) {
	operator := models.User{ID: 3, Role: models.RoleOperator, InstitutionID: int64Ptr(1)}
	st := fakeStore{sessionFn: sessionAs(operator)}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestCreateInstitutionInvalidCategory(t *testing.T) {
	admin := models.User{ID: 1, Role: models.RoleAdmin}
	st := fakeStore{sessionFn: sessionAs(admin)}

	body, _ := json.Marshal(map[string]string{
		"name":     "Somewhere",
		"category": "library",
		"location": "Downtown",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/institutions", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUserTicketsOwnershipEnforced(t *testing.T) {
	citizen := models.User{ID: 7, Role: models.RoleCitizen}
	st := fakeStore{sessionFn: sessionAs(citizen)}

	req := httptest.NewRequest(http.MethodGet, "/api/users/8/tickets", nil)
	req.Header.Set("X-Session-ID", "session-1")
	resp := httptest.NewRecorder()

	newTestHandler(st).ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}
