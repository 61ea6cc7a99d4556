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

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dirpx.dev/redbox/internal/config"
	"gopkg.in/yaml.v3"
)

const boomPayload = `["Boom",[{"file":"a.js","methodName":"f","lineNumber":10,"column":2}],42]`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func payloadFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	return path
}

func TestDecode_Text(t *testing.T) {
	out, err := execute(t, "", "decode", payloadFile(t, boomPayload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "#42 Boom\n  at f (a.js:10:2)\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestDecode_YAMLFromStdin(t *testing.T) {
	out, err := execute(t, boomPayload, "decode", "-o", "yaml", "-")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var doc reportDoc
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if doc.ID != 42 || doc.Message != "Boom" || len(doc.Callstack) != 1 || doc.Callstack[0].LineNumber != 10 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestDecode_Rejected(t *testing.T) {
	out, err := execute(t, "", "decode", "-o", "yaml", payloadFile(t, `["x",[],4294967296]`))
	if !errors.Is(err, errRejected) {
		t.Fatalf("err = %v, want errRejected", err)
	}
	if !strings.Contains(out, "payload.id.range") || !strings.Contains(out, "out_of_range") {
		t.Fatalf("rejection output:\n%s", out)
	}
}

func TestDecode_StrictFlag(t *testing.T) {
	path := payloadFile(t, `["x",[{"file":"a.js","methodName":"f"}],1]`)
	if _, err := execute(t, "", "decode", path); err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	if _, err := execute(t, "", "decode", "--strict-frames", path); !errors.Is(err, errRejected) {
		t.Fatalf("strict decode err = %v", err)
	}
}

func TestDecode_BadInput(t *testing.T) {
	if _, err := execute(t, "", "decode", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file must fail")
	}
	if _, err := execute(t, "{", "decode", "-"); err == nil || errors.Is(err, errRejected) {
		t.Fatalf("invalid JSON err = %v", err)
	}
	if _, err := execute(t, boomPayload, "decode", "-o", "xml", "-"); err == nil {
		t.Fatal("unknown output format must fail")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil || !strings.Contains(out, version) {
		t.Fatalf("version: %q, %v", out, err)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogFormat = "json"
	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hello")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("json logger wrote %q", buf.String())
	}

	cfg.LogFormat = "xml"
	if _, err := newLogger(cfg, &buf); err == nil {
		t.Fatal("unknown format must fail")
	}
}

func TestServe_StartsAndStops(t *testing.T) {
	cfg := config.Default()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.GRPCAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redbox bytes.Buffer
	ready := make(chan listeners, 1)
	done := make(chan error, 1)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- serve(ctx, cfg, quiet, &redbox, func(l listeners) { ready <- l })
	}()

	var l listeners
	select {
	case l = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not become ready")
	}
	if l.HTTP == nil || l.GRPC == nil {
		t.Fatalf("listeners = %+v", l)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post("http://"+l.HTTP.String()+"/modules/ExceptionsManager/reportFatalException",
		"application/json", strings.NewReader(boomPayload))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	client.CloseIdleConnections()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop")
	}
	if !strings.Contains(redbox.String(), "Boom") {
		t.Fatalf("redbox output:\n%s", redbox.String())
	}
}
