package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

const postsPath = "/posts"

// PostsSourceConfig configures a PostsSource.
type PostsSourceConfig struct {
	// Client must have its BaseURL pointed at the collection root.
	Client *clients.Client

	// Name identifies the source in sync results. Defaults to the client's service name.
	Name string

	// Category is stamped on every fetched quote.
	Category string

	// Limit is sent as _limit; zero or less omits it.
	Limit int

	Logger *slog.Logger
}

// PostsSource reads a JSONPlaceholder-style /posts collection and turns each
// post title into a quote. It also accepts the local list on POST /posts.
type PostsSource struct {
	BaseAdapter

	name     string
	category string
	limit    int
	logger   *slog.Logger
}

var (
	_ ports.QuoteSource    = (*PostsSource)(nil)
	_ ports.QuotePublisher = (*PostsSource)(nil)
)

// NewPostsSource creates a posts source.
// Panics if Client is nil or Category is blank.
func NewPostsSource(cfg PostsSourceConfig) *PostsSource {
	if cfg.Client == nil {
		panic("PostsSource: Client is required")
	}

	if cfg.Category == "" {
		panic("PostsSource: Category is required")
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Client.ServiceName()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PostsSource{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		name:        name,
		category:    cfg.Category,
		limit:       cfg.Limit,
		logger:      logger.With(slog.String("source", name)),
	}
}

// post is the remote record. Only the title is carried into the domain.
type post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// publishedQuote is the record shape sent on publish.
type publishedQuote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Name implements ports.QuoteSource.
func (s *PostsSource) Name() string {
	return s.name
}

// FetchQuotes implements ports.QuoteSource.
// Posts with a blank title are skipped.
func (s *PostsSource) FetchQuotes(ctx context.Context) ([]domain.Quote, error) {
	path := postsPath
	if s.limit > 0 {
		path += "?" + url.Values{"_limit": {strconv.Itoa(s.limit)}}.Encode()
	}

	s.logger.Log(ctx, logging.LevelTrace, "fetching posts", slog.String("path", path))

	body, err := s.Get(ctx, path, "fetch posts")
	if err != nil {
		return nil, err
	}

	posts, err := DecodeResponse[[]post](body)
	if err != nil {
		return nil, domain.WrapUnavailable(s.name, "decoding posts", err)
	}

	quotes, rejected := TranslateSlice(posts, s.translate)
	if len(rejected) > 0 {
		s.logger.DebugContext(ctx, "skipped posts",
			slog.Int("count", len(rejected)),
			slog.Any("first", rejected[0]),
		)
	}

	s.logger.Log(ctx, logging.LevelTrace, "translated posts",
		slog.Int("received", len(posts)),
		slog.Int("accepted", len(quotes)),
	)

	return quotes, nil
}

// PublishQuotes implements ports.QuotePublisher. The response body is discarded.
func (s *PostsSource) PublishQuotes(ctx context.Context, quotes []domain.Quote) error {
	payload := make([]publishedQuote, len(quotes))
	for i, q := range quotes {
		payload[i] = publishedQuote{Text: q.Text, Category: q.Category}
	}

	body, err := s.PostJSON(ctx, postsPath, payload, "publish quotes")
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, body)

	return body.Close()
}

// translate maps a post to a quote under the configured category.
func (s *PostsSource) translate(p *post) (domain.Quote, error) {
	q, err := domain.NewQuote(p.Title, s.category)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("post %d: %w", p.ID, err)
	}

	return q, nil
}

// HealthChecker reports the source unhealthy while its circuit breaker is open.
func (s *PostsSource) HealthChecker() ports.HealthChecker {
	return sourceHealth{source: s}
}

type sourceHealth struct {
	source *PostsSource
}

func (h sourceHealth) Name() string {
	return "source:" + h.source.name
}

func (h sourceHealth) Check(context.Context) error {
	if state := h.source.client.CircuitState(); state == clients.StateOpen {
		return domain.NewUnavailableError(h.source.name, "circuit breaker "+state.String())
	}

	return nil
}
