package dashclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"pmfin-backend/lib/navigation"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	financeapimodels "pmfin-backend/models/api/finance"
	notificationapimodels "pmfin-backend/models/api/notification"
	taskapimodels "pmfin-backend/models/api/task"
	userapimodels "pmfin-backend/models/api/user"
)

type recordedRequest struct {
	Route         string
	Body          []byte
	Authorization string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client, *RecordingToaster) {
	api := &fakeAPI{handlers: map[string]http.HandlerFunc{}}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	toaster := &RecordingToaster{}
	client := New(Config{
		BaseURL:      server.URL,
		Toaster:      toaster,
		RetryMax:     2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
	})
	return api, client, toaster
}

func (a *fakeAPI) handle(route string, handler http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[route] = handler
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path
	a.mu.Lock()
	a.requests = append(a.requests, recordedRequest{Route: route, Body: body, Authorization: r.Header.Get("Authorization")})
	handler, ok := a.handlers[route]
	a.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, apimodels.NewError("not found"))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	handler(w, r)
}

func (a *fakeAPI) routes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := []string{}
	for _, req := range a.requests {
		result = append(result, req.Route)
	}
	return result
}

func (a *fakeAPI) last() recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[len(a.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, body apimodels.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apimodels.NewResponse(data))
	}
}

func fail(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, apimodels.NewError(message))
	}
}

func TestLogin(t *testing.T) {
	api, client, _ := newFakeAPI(t)
	api.handle("POST /api/v1/auth/login", ok(userapimodels.LoginResponse{
		Token:   "secret",
		Session: userapimodels.Session{UserID: "u1", Role: models.FinanceRole},
	}))
	api.handle("GET /api/v1/auth/session", ok(userapimodels.Session{UserID: "u1", Role: models.FinanceRole}))

	t.Run("blank credentials are not sent", func(t *testing.T) {
		_, err := client.Login(context.Background(), " ", "")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Empty(t, api.routes())
	})
	t.Run("token is used for later requests", func(t *testing.T) {
		resp, err := client.Login(context.Background(), "fin@example.com", "pass")
		require.NoError(t, err)
		require.Equal(t, "u1", resp.Session.UserID)
		require.Equal(t, "secret", client.Token())

		session := NewSession(navigation.DefaultTree())
		require.NoError(t, session.Load(context.Background(), client))
		require.Equal(t, "Bearer secret", api.last().Authorization)
		require.Equal(t, models.FinanceRole, *session.Role())
	})
}

func TestAPIError(t *testing.T) {
	api, client, toaster := newFakeAPI(t)
	api.handle("GET /api/v1/task/t1", fail(http.StatusForbidden, "operation not allowed"))

	_, err := client.GetTask(context.Background(), "t1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.Equal(t, "operation not allowed", apiErr.Message)
	require.Equal(t, []Toast{{Error: true, Message: "403: operation not allowed"}}, toaster.Toasts())
	require.Len(t, api.routes(), 1, "4xx is not retried")

	t.Run("empty message falls back to status text", func(t *testing.T) {
		api, client, toaster := newFakeAPI(t)
		api.handle("GET /api/v1/task/t2", fail(http.StatusNotFound, ""))

		_, err := client.GetTask(context.Background(), "t2")
		require.Error(t, err)
		require.Equal(t, []Toast{{Error: true, Message: "404: Not Found"}}, toaster.Toasts())
	})
}

func TestRetries(t *testing.T) {
	t.Run("GET is retried", func(t *testing.T) {
		api, client, _ := newFakeAPI(t)
		calls := 0
		api.handle("GET /api/v1/task/t1", func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				writeJSON(w, http.StatusServiceUnavailable, apimodels.NewError("busy"))
				return
			}
			writeJSON(w, http.StatusOK, apimodels.NewResponse(taskapimodels.TaskView{ID: "t1"}))
		})
		task, err := client.GetTask(context.Background(), "t1")
		require.NoError(t, err)
		require.Equal(t, "t1", task.ID)
		require.Len(t, api.routes(), 2)
	})
	t.Run("mutation is sent once", func(t *testing.T) {
		api, client, _ := newFakeAPI(t)
		api.handle("PUT /api/v1/reimbursement/r1/pay", fail(http.StatusServiceUnavailable, "busy"))
		err := client.MarkReimbursementPaid(context.Background(), "r1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
		require.Len(t, api.routes(), 1)
	})
}

func TestMoveTask(t *testing.T) {
	todo := taskapimodels.TaskView{ID: "t1", Status: models.TaskStatusTodo}

	t.Run("drop into the same column sends nothing", func(t *testing.T) {
		api, client, toaster := newFakeAPI(t)
		view, changed, err := client.MoveTask(context.Background(), todo, models.TaskStatusTodo)
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, todo, view)
		require.Empty(t, api.routes())
		require.Empty(t, toaster.Toasts())
	})
	t.Run("non adjacent column sends nothing", func(t *testing.T) {
		api, client, _ := newFakeAPI(t)
		_, changed, err := client.MoveTask(context.Background(), todo, models.TaskStatusDone)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.False(t, changed)
		require.Empty(t, api.routes())
	})
	t.Run("adjacent column", func(t *testing.T) {
		api, client, toaster := newFakeAPI(t)
		moved := todo
		moved.Status = models.TaskStatusInProgress
		api.handle("PUT /api/v1/task/t1/move", ok(taskapimodels.MoveResult{Changed: true, Task: moved}))

		view, changed, err := client.MoveTask(context.Background(), todo, models.TaskStatusInProgress)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, models.TaskStatusInProgress, view.Status)
		require.Equal(t, []string{"PUT /api/v1/task/t1/move"}, api.routes())
		require.JSONEq(t, `{"status":"IN_PROGRESS"}`, string(api.last().Body))
		require.Len(t, toaster.Toasts(), 1)
		require.False(t, toaster.Toasts()[0].Error)
	})
}

func TestCacheInvalidation(t *testing.T) {
	api, client, _ := newFakeAPI(t)
	task := taskapimodels.TaskView{ID: "t1", Status: models.TaskStatusTodo}
	api.handle("GET /api/v1/task/t1", ok(task))

	_, err := client.GetTask(context.Background(), "t1")
	require.NoError(t, err)
	_, err = client.GetTask(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, api.routes(), 1, "second read is served from cache")

	t.Run("failed mutation keeps cache", func(t *testing.T) {
		api.handle("PUT /api/v1/task/t1/status", fail(http.StatusConflict, "record was changed concurrently"))
		_, err := client.ChangeTaskStatus(context.Background(), task, models.TaskStatusInProgress)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.Status)

		_, err = client.GetTask(context.Background(), "t1")
		require.NoError(t, err)
		require.Equal(t, []string{"GET /api/v1/task/t1", "PUT /api/v1/task/t1/status"}, api.routes())
	})
	t.Run("confirmed mutation invalidates", func(t *testing.T) {
		moved := task
		moved.Status = models.TaskStatusInProgress
		api.handle("PUT /api/v1/task/t1/status", ok(moved))
		api.handle("GET /api/v1/task/t1", ok(moved))
		_, err := client.ChangeTaskStatus(context.Background(), task, models.TaskStatusInProgress)
		require.NoError(t, err)

		view, err := client.GetTask(context.Background(), "t1")
		require.NoError(t, err)
		require.Equal(t, models.TaskStatusInProgress, view.Status)
		require.Len(t, api.routes(), 4)
	})
}

func TestRejectReimbursement(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		t.Run("blank reason "+strings.TrimSpace(reason), func(t *testing.T) {
			api, client, _ := newFakeAPI(t)
			err := client.RejectReimbursement(context.Background(), "r1", reason)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, "reason", validationErr.Field)
			require.Empty(t, api.routes())
		})
	}
	t.Run("reason is trimmed", func(t *testing.T) {
		api, client, _ := newFakeAPI(t)
		api.handle("PUT /api/v1/reimbursement/r1/reject", ok(nil))
		require.NoError(t, client.RejectReimbursement(context.Background(), "r1", "  no receipt "))
		require.JSONEq(t, `{"reason":"no receipt"}`, string(api.last().Body))
	})
}

func TestPayReimbursementWithProof(t *testing.T) {
	t.Run("proof upload fails after payment", func(t *testing.T) {
		api, client, toaster := newFakeAPI(t)
		api.handle("PUT /api/v1/reimbursement/r1/pay", ok(nil))
		api.handle("POST /api/v1/reimbursement/r1/proof", fail(http.StatusInternalServerError, "failed to save payment proof"))
		api.handle("GET /api/v1/reimbursement/r1", ok(financeapimodels.ReimbursementView{
			ID:           "r1",
			Status:       models.ReimbursementPaid,
			ProofMissing: true,
		}))

		err := client.PayReimbursementWithProof(context.Background(), "r1", "proof.pdf", strings.NewReader("pdf"))
		var partial *models.PartialFailureError
		require.ErrorAs(t, err, &partial)
		require.Equal(t, []string{models.StepMarkPaid}, partial.Completed)
		require.Equal(t, models.StepAttachProof, partial.Failed)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)

		require.Equal(t, []Toast{
			{Message: "Reimbursement marked as paid"},
			{Error: true, Message: "500: failed to save payment proof"},
		}, toaster.Toasts())

		view, err := client.GetReimbursement(context.Background(), "r1")
		require.NoError(t, err)
		require.Equal(t, models.ReimbursementPaid, view.Status)
		require.True(t, view.ProofMissing)
	})
	t.Run("payment fails", func(t *testing.T) {
		api, client, _ := newFakeAPI(t)
		api.handle("PUT /api/v1/reimbursement/r1/pay", fail(http.StatusBadRequest, "reimbursement is not approved"))
		err := client.PayReimbursementWithProof(context.Background(), "r1", "proof.pdf", strings.NewReader("pdf"))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		var partial *models.PartialFailureError
		require.False(t, errors.As(err, &partial))
		require.Equal(t, []string{"PUT /api/v1/reimbursement/r1/pay"}, api.routes())
	})
	t.Run("both steps succeed", func(t *testing.T) {
		api, client, _ := newFakeAPI(t)
		api.handle("PUT /api/v1/reimbursement/r1/pay", ok(nil))
		api.handle("POST /api/v1/reimbursement/r1/proof", func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("file")
			if err != nil {
				writeJSON(w, http.StatusBadRequest, apimodels.NewError(err.Error()))
				return
			}
			defer file.Close()
			writeJSON(w, http.StatusOK, apimodels.NewResponse(financeapimodels.AttachmentView{ID: "a1", FileName: header.Filename}))
		})
		require.NoError(t, client.PayReimbursementWithProof(context.Background(), "r1", "proof.pdf", strings.NewReader("pdf")))
		require.Len(t, api.routes(), 2)
	})
}

func TestSession(t *testing.T) {
	session := NewSession(navigation.DefaultTree())

	t.Run("loading", func(t *testing.T) {
		require.Equal(t, navigation.Pending, session.CanAccess("/dashboard/admin/users"))
		require.Equal(t, navigation.Pending, session.CanAccess("/dashboard"))
		require.Empty(t, session.Menu())
	})
	t.Run("loaded", func(t *testing.T) {
		session.Set(userapimodels.Session{UserID: "u1", Role: models.EmployeeRole})
		require.Equal(t, navigation.Deny, session.CanAccess("/dashboard/admin/users"))
		require.Equal(t, navigation.Deny, session.CanAccess("/dashboard/reimbursement/approval"))
		require.Equal(t, navigation.Allow, session.CanAccess("/dashboard/reimbursement"))
		require.Equal(t, navigation.Allow, session.CanAccess("/dashboard/unknown"))
	})
	t.Run("cleared", func(t *testing.T) {
		session.Clear()
		require.Equal(t, navigation.Pending, session.CanAccess("/dashboard"))
	})
}

func TestTaskActions(t *testing.T) {
	worker := userapimodels.Session{UserID: "u1", Role: models.EmployeeRole}
	manager := userapimodels.Session{UserID: "u2", Role: models.ProjectManagerRole}
	submitted := taskapimodels.TaskView{ID: "t1", Status: models.TaskStatusSubmitted, AssignedToID: "u1"}
	todo := taskapimodels.TaskView{ID: "t1", Status: models.TaskStatusTodo, AssignedToID: "u1"}

	require.Equal(t, []models.TaskStatus{models.TaskStatusInProgress}, TaskActions(todo, worker))
	require.Empty(t, TaskActions(submitted, worker))
	require.ElementsMatch(t, []models.TaskStatus{models.TaskStatusDone, models.TaskStatusRevision}, TaskActions(submitted, manager))
	require.Empty(t, TaskActions(todo, userapimodels.Session{UserID: "u3", Role: models.EmployeeRole}))
}

func TestUnreadPoller(t *testing.T) {
	api, client, toaster := newFakeAPI(t)
	api.handle("GET /api/v1/notification/unread_count", ok(notificationapimodels.UnreadCount{Count: 3}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller := NewUnreadPoller(client, 10*time.Millisecond)
	go poller.Run(ctx)

	require.Eventually(t, func() bool { return poller.Count() == 3 }, time.Second, 5*time.Millisecond)

	t.Run("failures are quiet", func(t *testing.T) {
		api.handle("GET /api/v1/notification/unread_count", fail(http.StatusBadRequest, "broken"))
		sent := len(api.routes())
		require.Eventually(t, func() bool { return len(api.routes()) > sent+2 }, time.Second, 5*time.Millisecond)
		require.Empty(t, toaster.Toasts())
		require.Equal(t, int64(3), poller.Count())
	})
}
