package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andy/rosterdash/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func TestListNormalizesRegistered(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/clients" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"0","name":"Steele Burch","company":"TELEPARK","age":21,
			"gender":"female","picture":"http://placehold.it/32x32",
			"registered":"2021-05-31T02:20:58 -09:00","currency":"USD","subscriptionCost":"1000.00"},
			{"id":"1","name":"X","company":"Y","age":3,"gender":"male","registered":"garbage",
			"currency":"INR","subscriptionCost":"1.00"}]`)
	})

	clients, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if !clients[0].Registered.Known() {
		t.Fatalf("expected space-offset timestamp to parse")
	}
	if clients[1].Registered.Known() {
		t.Fatalf("expected garbage timestamp to be unknown")
	}
}

func TestListEmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `null`)
	})
	clients, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if clients == nil || len(clients) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", clients)
	}
}

func TestListFailures(t *testing.T) {
	tests := []struct {
		name   string
		h      http.HandlerFunc
		status int
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, http.StatusInternalServerError},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not":"an array"`)
		}, http.StatusOK},
		{"invalid clients", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id":"a","name":""},{"id":"a"},{}]`)
		}, http.StatusOK},
		{"duplicate ids", func(w http.ResponseWriter, r *http.Request) {
			one := `{"id":"a","name":"A","company":"CO","age":30,"gender":"male","currency":"USD","subscriptionCost":"1.00"}`
			io.WriteString(w, "["+one+","+one+"]")
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.h)
			_, err := c.List(context.Background())
			var terr *TransportError
			if !errors.As(err, &terr) {
				t.Fatalf("expected TransportError, got %v", err)
			}
			if terr.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, terr.StatusCode)
			}
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("expected errors.Is(err, ErrTransport)")
			}
		})
	}
}

func TestListNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.List(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.StatusCode != 0 {
		t.Fatalf("expected no status for a network failure, got %d", terr.StatusCode)
	}
}

func TestCreateSendsFullClient(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/clients" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})

	in := domain.SeedClients()[2]
	out, err := c.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID != in.ID || out.Name != in.Name {
		t.Fatalf("expected echoed client, got %+v", out)
	}
	for _, field := range []string{"id", "name", "company", "age", "gender", "picture", "registered", "currency", "subscriptionCost"} {
		if _, ok := got[field]; !ok {
			t.Fatalf("expected field %s in request body", field)
		}
	}
	if _, ok := got["age"].(float64); !ok {
		t.Fatalf("expected age as a JSON number, got %T", got["age"])
	}
}

func TestUpdateSendsOnlySuppliedFields(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/clients/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"id":"42","name":"New Name","company":"KOG","age":30,"gender":"male","currency":"CAD","subscriptionCost":"1.00","registered":"2021-05-01T06:15:25 -09:00"}`)
	})

	out, err := c.Update(context.Background(), "42", domain.ClientPatch{Name: domain.Ptr("New Name")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Name != "New Name" {
		t.Fatalf("expected merged client, got %+v", out)
	}
	if len(got) != 1 || got["name"] != "New Name" {
		t.Fatalf("expected body with only name, got %v", got)
	}
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"Client not found"}`)
	})

	_, err := c.Update(context.Background(), "nope", domain.ClientPatch{Age: domain.Ptr(40)})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "nope" {
		t.Fatalf("expected NotFoundError for nope, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected errors.Is(err, domain.ErrNotFound)")
	}

	err = c.Delete(context.Background(), "nope")
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/clients/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"message":"Client deleted successfully"}`)
	})
	if err := c.Delete(context.Background(), "7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
