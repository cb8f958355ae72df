package impact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newServerEstimator(t *testing.T, handler http.HandlerFunc) *OpenRouterEstimator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	e := NewOpenRouterEstimator("test-key", time.Second)
	e.baseURL = server.URL
	return e
}

func TestOpenRouterEstimator(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
		wantErr bool
	}{
		{
			name: "integer answer",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
					t.Errorf("Authorization = %q", got)
				}
				w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" 8 "}}]}`))
			},
			want: 8,
		},
		{
			name: "non-integer answer fails",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"very hard"}}]}`))
			},
			wantErr: true,
		},
		{
			name: "empty choices fails",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[]}`))
			},
			wantErr: true,
		},
		{
			name: "server error fails",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newServerEstimator(t, tt.handler)
			got, err := e.Estimate(context.Background(), "Clean the garage", "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Estimate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Estimate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0); got != Min {
		t.Errorf("Clamp(0) = %d, want %d", got, Min)
	}
	if got := Clamp(15); got != Max {
		t.Errorf("Clamp(15) = %d, want %d", got, Max)
	}
	if got := Clamp(7); got != 7 {
		t.Errorf("Clamp(7) = %d, want 7", got)
	}
}
