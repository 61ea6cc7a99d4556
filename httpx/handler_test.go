/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/mapper"
	"dirpx.dev/redbox/router"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeHandler struct {
	mu        sync.Mutex
	shown     []redbox.ErrorInfo
	dismissed int
	fail      error
}

func (f *fakeHandler) IsDevSupportEnabled() bool { return true }

func (f *fakeHandler) ShowNewError(info redbox.ErrorInfo, _ redbox.ErrorType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, info)
	return f.fail
}

func (f *fakeHandler) UpdateError(redbox.ErrorInfo) error { return f.fail }

func (f *fakeHandler) DismissRedbox() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
	return f.fail
}

func newTestHandler(f *fakeHandler, opts ...Option) http.Handler {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := router.New(f, router.WithLogger(quiet))
	return NewHandler(r, nil, append([]Option{WithLogger(quiet)}, opts...)...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) apis.ErrorView {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var v apis.ErrorView
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode view: %v (%s)", err, rec.Body.String())
	}
	return v
}

const boomBody = `["Boom",[{"file":"a.js","methodName":"f","lineNumber":10,"column":2}],42]`

func TestHandler_Success(t *testing.T) {
	f := &fakeHandler{}
	h := newTestHandler(f)

	rec := do(t, h, http.MethodPost, "/modules/ExceptionsManager/reportFatalException", boomBody)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	want := []redbox.ErrorInfo{{
		Message:   "Boom",
		ID:        42,
		Callstack: []redbox.ErrorFrameInfo{{File: "a.js", MethodName: "f", LineNumber: 10, Column: 2}},
	}}
	if diff := cmp.Diff(want, f.shown); diff != "" {
		t.Fatalf("shown (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodPost, "/modules/ExceptionsManager/dismissRedbox", "")
	if rec.Code != http.StatusNoContent || f.dismissed != 1 {
		t.Fatalf("dismiss: status=%d dismissed=%d", rec.Code, f.dismissed)
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
		wantReason string
	}{
		{"id out of range", http.MethodPost, "/modules/ExceptionsManager/reportSoftException",
			`["x",[],4294967296]`, 400, "out_of_range", "payload.id.range"},
		{"wrong arity", http.MethodPost, "/modules/ExceptionsManager/reportSoftException",
			`["x",[]]`, 400, "missing", "payload.args.arity"},
		{"frame kind", http.MethodPost, "/modules/ExceptionsManager/updateExceptionMessage",
			`["x",[{"file":7}],1]`, 400, "invalid", "payload.frame.field"},
		{"empty body for report", http.MethodPost, "/modules/ExceptionsManager/reportFatalException",
			``, 400, "invalid", "payload.args.type"},
		{"bad json", http.MethodPost, "/modules/ExceptionsManager/reportFatalException",
			`["x",`, 400, "invalid", "transport.body.syntax"},
		{"unknown method", http.MethodPost, "/modules/ExceptionsManager/crash",
			boomBody, 404, "not_found", "module.method.unknown"},
		{"unknown module", http.MethodPost, "/modules/DevSettings/reportFatalException",
			boomBody, 404, "not_found", "module.name.unknown"},
		{"wrong verb", http.MethodGet, "/modules/ExceptionsManager/reportFatalException",
			``, 405, "unsupported", "transport.http.method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeHandler{}
			rec := do(t, newTestHandler(f), tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			v := decodeView(t, rec)
			if v.Code != tt.wantCode || v.Reason != tt.wantReason {
				t.Fatalf("view = %+v, want %s/%s", v, tt.wantCode, tt.wantReason)
			}
			if len(f.shown) != 0 {
				t.Fatalf("handler must not be called, got %d reports", len(f.shown))
			}
		})
	}
}

func TestHandler_WrongVerbSetsAllow(t *testing.T) {
	rec := do(t, newTestHandler(&fakeHandler{}), http.MethodPut, "/modules/ExceptionsManager/dismissRedbox", "")
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q", got)
	}
}

func TestHandler_FieldDetails(t *testing.T) {
	rec := do(t, newTestHandler(&fakeHandler{}), http.MethodPost,
		"/modules/ExceptionsManager/reportFatalException", `["x",[{"lineNumber":"ten"}],1]`)
	v := decodeView(t, rec)
	if len(v.Details) != 1 || v.Details[0].Field != "args[1][0].lineNumber" {
		t.Fatalf("details = %+v", v.Details)
	}
}

func TestHandler_BodyTooLarge(t *testing.T) {
	h := newTestHandler(&fakeHandler{}, WithMaxBodyBytes(16))
	rec := do(t, h, http.MethodPost, "/modules/ExceptionsManager/reportFatalException", boomBody)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Code != "out_of_range" || v.Reason != "transport.body.too_large" {
		t.Fatalf("view = %+v", v)
	}
}

func TestHandler_HandlerErrorIsInternal(t *testing.T) {
	f := &fakeHandler{fail: errors.New("screen is on fire")}
	req := httptest.NewRequest(http.MethodPost, "/modules/ExceptionsManager/reportSoftException", strings.NewReader(boomBody))
	req.Header.Set(CorrelationHeader, "req-1")
	rec := httptest.NewRecorder()
	newTestHandler(f).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Code != "internal" || strings.Contains(v.Message, "fire") {
		t.Fatalf("view = %+v, want a hidden internal error", v)
	}
	if got := rec.Header().Get(CorrelationHeader); got != "req-1" {
		t.Fatalf("correlation header = %q", got)
	}
}

func TestWriter_RetryAfterAndNil(t *testing.T) {
	w := Writer{Mapper: nil}
	rec := httptest.NewRecorder()
	if got := w.Write(rec, nil, Meta{}); got != 0 || rec.Body.Len() != 0 {
		t.Fatalf("nil error wrote %d / %q", got, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	w = Writer{Mapper: mapper.Default()}
	status := w.Write(rec, redbox.E(code.Unavailable, "no handler"), Meta{RetryAfterSeconds: 3})
	if status != http.StatusServiceUnavailable || rec.Header().Get("Retry-After") != "3" {
		t.Fatalf("status=%d Retry-After=%q", status, rec.Header().Get("Retry-After"))
	}
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestHandler(&fakeHandler{}), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}

func TestHandler_OverRealServer(t *testing.T) {
	f := &fakeHandler{}
	ts := httptest.NewServer(newTestHandler(f))
	defer ts.Close()

	resp, err := ts.Client().Post(ts.URL+"/modules/ExceptionsManager/reportSoftException",
		"application/json", bytes.NewBufferString(boomBody))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.shown) != 1 {
		t.Fatalf("shown = %d", len(f.shown))
	}
}
