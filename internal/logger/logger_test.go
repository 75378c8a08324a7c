package logger

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDRoundtrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7")
	if got := RequestIDFrom(ctx); got != "req-7" {
		t.Fatalf("request id = %q, want req-7", got)
	}
	if got := RequestIDFrom(context.Background()); got != "" {
		t.Fatalf("request id on empty ctx = %q, want empty", got)
	}
}

func TestRedactIfNeeded(t *testing.T) {
	cases := []struct {
		key   string
		value string
		want  string
	}{
		{"http.body.password", "hunter2", "***"},
		{"http.body.new_password", "hunter2", "***"},
		{"http.body.setup_key", "k", "***"},
		{"http.body.access_token", "jwt", "***"},
		{"http.body.code", "123456", "***"},
		{"http.body.email", "a@b.c", "a@b.c"},
	}
	for _, tc := range cases {
		if got := redactIfNeeded(tc.key, tc.value); got != tc.want {
			t.Fatalf("redactIfNeeded(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestDecodeBodyRedactsJSON(t *testing.T) {
	attrs, err := DecodeBody("application/json", []byte(`{"identifier":"a@b.c","password":"hunter2"}`))
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}

	found := map[string]string{}
	for _, a := range attrs {
		found[a.Key] = a.Value.String()
	}
	if found["http.body.password"] != "***" {
		t.Fatalf("password attr = %q, want ***", found["http.body.password"])
	}
	if found["http.body.identifier"] != "a@b.c" {
		t.Fatalf("identifier attr = %q, want a@b.c", found["http.body.identifier"])
	}
}

func TestHeaderAttrsMasksAuthorization(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer secret-token")
	hdr.Set("Content-Type", "application/json")
	hdr.Set("X-Internal-Header", "hidden")

	found := map[string]string{}
	for _, a := range HeaderAttrs(hdr) {
		found[a.Key] = a.Value.String()
	}
	if found["http.header.authorization"] != "***" {
		t.Fatalf("authorization = %q, want ***", found["http.header.authorization"])
	}
	if found["http.header.content-type"] != "application/json" {
		t.Fatalf("content-type = %q", found["http.header.content-type"])
	}
	if _, ok := found["http.header.x-internal-header"]; ok {
		t.Fatal("x-internal-header must not be logged")
	}
}

func TestCaptureBodyResetsReader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"a":1}`))

	body, err := CaptureBody(req)
	if err != nil {
		t.Fatalf("CaptureBody: %v", err)
	}
	if string(body) != `{"a":1}` {
		t.Fatalf("captured = %q", body)
	}

	again, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if string(again) != `{"a":1}` {
		t.Fatalf("re-read = %q", again)
	}
}

func TestBuildLogEntryLabels(t *testing.T) {
	entry := buildLogEntry("polluxkart-admin", "info", "HTTP", nil)

	streams := entry["streams"].([]map[string]interface{})
	if len(streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(streams))
	}
	labels := streams[0]["stream"].(map[string]string)
	if labels["job"] != "polluxkart-admin" || labels["level"] != "info" {
		t.Fatalf("labels = %v", labels)
	}
	if labels["host"] == "" {
		t.Fatal("expected a host label")
	}
}
