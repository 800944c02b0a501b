package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tilery/tilery/pkg/store"
)

func testServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	t.Cleanup(func() { mem.Close() })
	logger := log.New(io.Discard)
	return New(Config{
		Addr:    ":0",
		BaseURL: "http://tilery.test",
		Store:   mem,
		Logger:  logger,
	}), mem
}

func postBoard(t *testing.T, router http.Handler, payload string) createResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/boards", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/boards = %d, body %s", rec.Code, rec.Body)
	}
	var resp createResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d", rec.Code)
	}
}

func TestCreateAndFetchBoard(t *testing.T) {
	s, _ := testServer(t)
	router := s.Router()

	resp := postBoard(t, router, "1!1_0_0_0_a!2_72_0_0_b\n")
	if resp.Code == "" {
		t.Fatal("create response missing code")
	}
	if want := "http://tilery.test/api/boards/" + resp.Code; resp.URL != want {
		t.Errorf("URL = %q, want %q", resp.URL, want)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/"+resp.Code, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET board = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "1!1_0_0_0_a!2_72_0_0_b" {
		t.Errorf("fetched payload = %q", got)
	}
}

func TestCreateRejectsMalformedShare(t *testing.T) {
	s, mem := testServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/boards", strings.NewReader("9!garbage")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed share = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_SHARE" {
		t.Errorf("error code = %q, want INVALID_SHARE", resp.Error.Code)
	}
	if codes, _ := mem.List(context.Background()); len(codes) != 0 {
		t.Error("malformed payload should not be stored")
	}
}

func TestGetMissingBoardIs404(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/deadbeef", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing board = %d, want 404", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "BOARD_NOT_FOUND" {
		t.Errorf("error code = %q, want BOARD_NOT_FOUND", resp.Error.Code)
	}
}

func TestGetInvalidCodeIs400(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/NOT-VALID!", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid code = %d, want 400", rec.Code)
	}
}

func TestDeleteBoard(t *testing.T) {
	s, _ := testServer(t)
	router := s.Router()
	resp := postBoard(t, router, "1!1_0_0_0_a")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/boards/"+resp.Code, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/"+resp.Code, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", rec.Code)
	}

	// Deleting again is idempotent.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/boards/"+resp.Code, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("second DELETE = %d, want 204", rec.Code)
	}
}

func TestEmptyBoardRoundTrips(t *testing.T) {
	s, _ := testServer(t)
	router := s.Router()
	resp := postBoard(t, router, "1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/"+resp.Code, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET empty board = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "1" {
		t.Errorf("payload = %q, want bare version tag", got)
	}
}
