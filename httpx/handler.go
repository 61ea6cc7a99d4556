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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/mapper"
	"dirpx.dev/redbox/reason"
	"dirpx.dev/redbox/router"
	"dirpx.dev/redbox/variant"
)

// DefaultMaxBodyBytes bounds a request body unless WithMaxBodyBytes says
// otherwise.
const DefaultMaxBodyBytes int64 = 1 << 20

// CorrelationHeader is read from requests and echoed on error responses.
const CorrelationHeader = "X-Correlation-ID"

// Option configures the handler built by NewHandler.
type Option func(*handler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMaxBodyBytes bounds the request body. Non-positive values keep the
// default.
func WithMaxBodyBytes(n int64) Option {
	return func(h *handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

type handler struct {
	router  *router.Router
	writer  Writer
	maxBody int64
	logger  *slog.Logger
}

// NewHandler serves r over HTTP. A nil m uses mapper.Default().
//
// Routes:
//
//	POST /modules/{module}/{method}  invoke a module method
//	GET  /healthz                    liveness probe
func NewHandler(r *router.Router, m apis.Mapper, opts ...Option) http.Handler {
	if m == nil {
		m = mapper.Default()
	}
	h := &handler{
		router:  r,
		writer:  Writer{Mapper: m},
		maxBody: DefaultMaxBodyBytes,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/modules/{module}/{method}", h.handleInvoke)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	return mux
}

func (h *handler) handleInvoke(w http.ResponseWriter, req *http.Request) {
	module, method := req.PathValue("module"), req.PathValue("method")
	meta := Meta{Correlation: req.Header.Get(CorrelationHeader)}

	if err := h.invoke(w, req, module, method); err != nil {
		if req.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
		}
		status := h.writer.Write(w, err, meta)
		lvl := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			lvl = slog.LevelError
		}
		h.logger.Log(req.Context(), lvl, "module call failed",
			"module", module, "method", method, "status", status, "err", err)
		return
	}
	h.logger.Debug("module call", "module", module, "method", method)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) invoke(w http.ResponseWriter, req *http.Request, module, method string) error {
	if req.Method != http.MethodPost {
		return redbox.E(code.Unsupported, fmt.Sprintf("method %s not allowed, use POST", req.Method),
			redbox.WithReasonOption(reason.TransportMethodNotAllowed))
	}
	if module != h.router.Name() {
		return redbox.E(code.NotFound, fmt.Sprintf("no module named %q", module),
			redbox.WithReasonOption(reason.ModuleNameUnknown),
			redbox.WithDetailOption("module", module))
	}
	args, err := h.readArgs(w, req)
	if err != nil {
		return err
	}
	return h.router.Invoke(method, args)
}

// readArgs parses the JSON body. An empty body is a null argument, which
// is what dismissRedbox expects.
func (h *handler) readArgs(w http.ResponseWriter, req *http.Request) (variant.Value, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return variant.Value{}, redbox.E(code.OutOfRange,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
				redbox.WithReasonOption(reason.TransportBodyTooLarge),
				redbox.WithDetailOption("limit", tooLarge.Limit))
		}
		return variant.Value{}, redbox.E(code.Invalid, "cannot read request body",
			redbox.WithReasonOption(reason.TransportBodySyntax),
			redbox.WithCauseOption(err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return variant.Null(), nil
	}
	args, err := variant.ParseJSON(body)
	if err != nil {
		return variant.Value{}, redbox.E(code.Invalid, "request body is not valid JSON",
			redbox.WithReasonOption(reason.TransportBodySyntax),
			redbox.WithCauseOption(err))
	}
	return args, nil
}
