package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-bff/internal/api/middleware"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

type stubOrchestrator struct {
	gotToken     string
	gotOperation string
	gotArgs      json.RawMessage
	env          ports.Envelope
}

func (s *stubOrchestrator) Execute(_ context.Context, token, operation string, args json.RawMessage) ports.Envelope {
	s.gotToken = token
	s.gotOperation = operation
	s.gotArgs = args
	return s.env
}

func executeOperation(t *testing.T, orch *stubOrchestrator, operation, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/operations/"+operation, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.SetPath("/v1/operations/:operation")
	c.SetParamNames("operation")
	c.SetParamValues(operation)
	if token != "" {
		c.Set(middleware.TokenKey, token)
	}

	if err := NewOperationHandler(orch).Execute(c); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return rec
}

func TestOperationExecute_PassesThrough(t *testing.T) {
	orch := &stubOrchestrator{env: ports.OK(map[string]string{"id": "p1"})}

	rec := executeOperation(t, orch, "fetchPost", "tok-1", `{"postId":"p1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if orch.gotOperation != "fetchPost" || orch.gotToken != "tok-1" {
		t.Fatalf("unexpected call: op=%q token=%q", orch.gotOperation, orch.gotToken)
	}
	if string(orch.gotArgs) != `{"postId":"p1"}` {
		t.Fatalf("body must pass through untouched, got %s", orch.gotArgs)
	}

	var env struct {
		Error  *string        `json:"error"`
		Result map[string]any `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error != nil || env.Result["id"] != "p1" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestOperationExecute_FailureStillAnswers200(t *testing.T) {
	orch := &stubOrchestrator{env: ports.Fail("Доступ запрещен")}

	rec := executeOperation(t, orch, "removePost", "", `{"postId":"p1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("denials ride the envelope, not the status code; got %d", rec.Code)
	}

	var env struct {
		Error  *string `json:"error"`
		Result any     `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error == nil || *env.Error != "Доступ запрещен" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if env.Result != nil {
		t.Fatalf("failed envelope must serialize result as null, got %v", env.Result)
	}
}

func TestOperationExecute_EmptyBody(t *testing.T) {
	orch := &stubOrchestrator{env: ports.OK(true)}

	executeOperation(t, orch, "fetchUsers", "admin-tok", "")

	if len(orch.gotArgs) != 0 {
		t.Fatalf("expected empty args, got %q", orch.gotArgs)
	}
}
