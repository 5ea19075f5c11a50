// Package health serves the `/healthz` endpoint of monitor mode.
package health

import (
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/pokt-network/poktroll/pkg/polylog"
)

const (
	// versionEnvVar is set to the release tag in the Docker image.
	versionEnvVar  = "IMAGE_TAG"
	defaultVersion = "development"
)

type status string

const (
	statusReady    status = "ready"
	statusNotReady status = "not_ready"
)

type (
	// Checker reports ready only when every component is alive.
	Checker struct {
		Logger     polylog.Logger
		Components []Check
	}

	// Check is implemented by every component that decides readiness.
	Check interface {
		Name() string
		IsAlive() bool
	}

	// finishedAtReporter is implemented by components tracking a run, e.g. LastRun.
	finishedAtReporter interface {
		FinishedAt() time.Time
	}
)

// healthzResponse is the body served on `/healthz`.
type healthzResponse struct {
	Status  status `json:"status"`
	Version string `json:"version"`
	// Components maps component names to their ready state.
	Components map[string]bool `json:"components,omitempty"`
	// LastRunFinishedAt is unset until the first run completes.
	LastRunFinishedAt *time.Time `json:"lastRunFinishedAt,omitempty"`
}

// HealthzHandler writes 200 when every component is alive and 503 otherwise.
func (c *Checker) HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	resp := c.snapshot()

	body, err := json.Marshal(resp)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to encode health response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == statusReady {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if _, err := w.Write(body); err != nil {
		c.Logger.Warn().Err(err).Msg("failed to write health response")
	}
}

func (c *Checker) snapshot() healthzResponse {
	version := os.Getenv(versionEnvVar)
	if version == "" {
		version = defaultVersion
	}

	resp := healthzResponse{
		Status:     statusReady,
		Version:    version,
		Components: make(map[string]bool, len(c.Components)),
	}

	// A checker without components has nothing to vouch for.
	if len(c.Components) == 0 {
		resp.Status = statusNotReady
	}

	for _, component := range c.Components {
		alive := component.IsAlive()
		resp.Components[component.Name()] = alive
		if !alive {
			resp.Status = statusNotReady
		}

		if r, ok := component.(finishedAtReporter); ok {
			if at := r.FinishedAt(); !at.IsZero() {
				resp.LastRunFinishedAt = &at
			}
		}
	}

	return resp
}
