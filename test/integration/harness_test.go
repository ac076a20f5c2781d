//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotebook/internal/adapters/flags"
	httpadapter "github.com/jsamuelsen/quotebook/internal/adapters/http"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/metrics"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakePosts is an in-process stand-in for the remote posts collection.
type fakePosts struct {
	mu        sync.Mutex
	titles    []string
	failing   bool
	published [][]map[string]string
	fetches   int
}

func (f *fakePosts) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path != "/posts" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if f.failing {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	switch r.Method {
	case http.MethodGet:
		f.fetches++

		posts := make([]map[string]any, len(f.titles))
		for i, title := range f.titles {
			posts[i] = map[string]any{"id": i + 1, "userId": 1, "title": title, "body": "ignored"}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(posts)

	case http.MethodPost:
		var records []map[string]string
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.published = append(f.published, records)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":101}`))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakePosts) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failing = failing
}

func (f *fakePosts) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.published)
}

// harnessConfig selects the pieces of a quote book under test.
type harnessConfig struct {
	Store     ports.KeyValueStore
	SourceURL string
	Features  map[string]bool
	Auth      *config.AuthConfig
}

// harness is a fully wired quote book behind a Gin engine.
type harness struct {
	Router   *gin.Engine
	Service  *app.QuoteService
	Agent    *app.SyncAgent
	Source   *acl.PostsSource
	Registry *prometheus.Registry
}

func newHarness(cfg harnessConfig) (*harness, error) {
	store := cfg.Store
	if store == nil {
		store = storage.NewMemoryStore()
	}

	featureFlags := flags.NewStatic(cfg.Features)

	svc := app.NewQuoteService(app.QuoteServiceConfig{
		Store:   store,
		Session: storage.NewMemoryStore(),
		Flags:   featureFlags,
		Logger:  quietLogger,
	})
	svc.Load(context.Background())

	reg := prometheus.NewRegistry()

	collectors, err := metrics.New(reg, svc.Count)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.SourceURL,
		ServiceName: "posts",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   2,
			Timeout:       time.Hour,
			HalfOpenLimit: 1,
		},
		Logger: quietLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	source := acl.NewPostsSource(acl.PostsSourceConfig{
		Client:   client,
		Category: config.DefaultSyncCategory,
		Limit:    config.DefaultSyncLimit,
		Logger:   quietLogger,
	})

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(source.HealthChecker()); err != nil {
		return nil, fmt.Errorf("registering source health: %w", err)
	}

	if checker, ok := store.(ports.HealthChecker); ok {
		if err := healthRegistry.Register(checker); err != nil {
			return nil, fmt.Errorf("registering store health: %w", err)
		}
	}

	agent := app.NewSyncAgent(app.SyncAgentConfig{
		Quotes:    svc,
		Sources:   []ports.QuoteSource{source},
		Publisher: source,
		Flags:     featureFlags,
		Observer: func(_ context.Context, r app.SyncResult) {
			collectors.ObserveSync(r.Merged, len(r.Failures), 1)
		},
		Logger: quietLogger,
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName:   "quotebook-integration",
		AuthConfig:    cfg.Auth,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.BuildInfo{Version: "integration"}, reg),
		QuoteHandler:  handlers.NewQuoteHandler(svc),
		TransferHandler: handlers.NewTransferHandler(svc, handlers.TransferHandlerConfig{
			OnImport: collectors.ObserveImport,
		}),
		SyncHandler: handlers.NewSyncHandler(agent),
		Timeout:     httpadapter.DefaultRequestTimeout,
	})

	return &harness{
		Router:   engine,
		Service:  svc,
		Agent:    agent,
		Source:   source,
		Registry: reg,
	}, nil
}

// do serves one request against the harness router.
func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.Router.ServeHTTP(w, req)

	return w
}
