package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"inferd/internal/httpapi"
	"inferd/internal/registry"
	"inferd/internal/serving"
	"inferd/pkg/types"
)

// writeArtifact writes a valid logistic-regression manifest and returns its path.
func writeArtifact(t *testing.T, dir, version string, featureCount int) string {
	t.Helper()
	coeffs := make([]float64, featureCount)
	for i := range coeffs {
		coeffs[i] = 0.1 * float64(i+1)
	}
	m := map[string]any{
		"version":      version,
		"framework":    "logistic-regression",
		"coefficients": coeffs,
		"intercept":    -0.2,
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	p := filepath.Join(dir, "model.json")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return p
}

// newServer wires registry + serving + httpapi against modelPath without
// loading anything yet.
func newServer(t *testing.T, modelPath string) (*httptest.Server, *serving.Service) {
	t.Helper()
	reg := registry.New(zerolog.Nop())
	svc := serving.New(reg, modelPath, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, svc
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func predict(t *testing.T, base string, features []float64) (*http.Response, types.PredictionResponse, types.ErrorResponse) {
	t.Helper()
	resp, body := postJSON(t, base+"/predict", types.PredictionRequest{Features: features})
	var ok types.PredictionResponse
	var fail types.ErrorResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, &ok); err != nil {
			t.Fatalf("decode prediction: %v (%s)", err, body)
		}
	} else {
		if err := json.Unmarshal(body, &fail); err != nil {
			t.Fatalf("decode error payload: %v (%s)", err, body)
		}
	}
	return resp, ok, fail
}

func featureVector(n int) []float64 {
	f := make([]float64, n)
	for i := range f {
		f[i] = float64(i + 1)
	}
	return f
}
