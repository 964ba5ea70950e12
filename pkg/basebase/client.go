package basebase

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/basebase-ai/basebase-go/pkg/auth"
	"github.com/basebase-ai/basebase-go/pkg/docid"
	"github.com/basebase-ai/basebase-go/pkg/docpath"
	"github.com/basebase-ai/basebase-go/pkg/errs"
	"github.com/basebase-ai/basebase-go/pkg/transport"
)

// writeTimeLayout matches the millisecond ISO-8601 timestamps the server
// produces.
const writeTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Client holds the connection settings shared by every reference created
// from it. It is safe for concurrent use.
type Client struct {
	baseURL   string
	projectID string

	transport transport.Doer
	auth      auth.HeaderProvider
	ids       docid.Generator
	idChain   docid.Chain
	now       func() time.Time
	logger    hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport, e.g. with a fake in tests.
func WithTransport(d transport.Doer) Option {
	return func(c *Client) { c.transport = d }
}

// WithAuth sets the provider of authentication headers.
func WithAuth(p auth.HeaderProvider) Option {
	return func(c *Client) { c.auth = p }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithIDGenerator sets the generator for client-side document IDs.
func WithIDGenerator(g docid.Generator) Option {
	return func(c *Client) { c.ids = g }
}

// WithIDChain sets the strategies used to derive IDs from server responses.
func WithIDChain(chain docid.Chain) Option {
	return func(c *Client) { c.idChain = chain }
}

// WithClock sets the time source for locally produced timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the store at baseURL using projectID as the
// default project.
func New(baseURL, projectID string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.InvalidArgument("basebase.New", "invalid base URL: %q", baseURL)
	}
	if projectID == "" {
		return nil, errs.InvalidArgument("basebase.New", "project ID must be a non-empty string")
	}
	if strings.Contains(projectID, docpath.Separator) {
		return nil, errs.InvalidArgument("basebase.New", "project ID cannot contain slashes: %q", projectID)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		projectID: projectID,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.transport == nil {
		c.transport = transport.NewHTTP(transport.Config{}, c.logger.Named("transport"))
	}
	if c.auth == nil {
		c.auth = auth.None{}
	}
	if c.ids == nil {
		c.ids = docid.NewRandomGenerator(nil)
	}
	if c.idChain == nil {
		c.idChain = docid.DefaultChain(c.now)
	}
	return c, nil
}

// NewFromConfig creates a client from a validated configuration. Options
// are applied after the configuration, so WithTransport or WithAuth take
// precedence over it.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	projectID, err := cfg.ResolvedProjectID()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project ID: %w", err)
	}

	gen, err := docid.NewGenerator(docid.GeneratorType(cfg.IDGenerator))
	if err != nil {
		return nil, err
	}

	// Peek at the logger option so the transport logs through it too.
	probe := &Client{}
	for _, opt := range opts {
		opt(probe)
	}
	logger := probe.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	base := []Option{
		WithLogger(logger),
		WithIDGenerator(gen),
		WithTransport(transport.NewHTTP(cfg.TransportConfig(), logger.Named("transport"))),
	}
	if cfg.APIKey != "" {
		base = append(base, WithAuth(auth.APIKey(cfg.APIKey)))
	}
	return New(cfg.BaseURL, projectID, append(base, opts...)...)
}

// NewFromEnv creates a client configured by the BASEBASE_* environment
// variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// ProjectID returns the default project of the client.
func (c *Client) ProjectID() string {
	return c.projectID
}

// BaseURL returns the store root URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Doc returns a reference to the document at path in the default project.
func (c *Client) Doc(path string) (*DocumentReference, error) {
	return Doc(c, path, "")
}

// Collection returns a reference to the collection at path in the default
// project.
func (c *Client) Collection(path string) (*CollectionReference, error) {
	return Collection(c, path, "")
}

// url builds the request URL for a project-scoped path, escaping each
// segment.
func (c *Client) url(fullPath string) string {
	segments := docpath.Split(fullPath)
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// do sends one request for fullPath with authentication headers attached.
func (c *Client) do(ctx context.Context, method, fullPath string, body, out any) error {
	headers, err := c.auth.AuthHeaders(ctx)
	if err != nil {
		return err
	}
	return c.transport.Do(ctx, &transport.Request{
		URL:     c.url(fullPath),
		Method:  method,
		Headers: headers,
		Body:    body,
	}, out)
}

// writeResult prefers the server's update time and falls back to the local
// clock.
func (c *Client) writeResult(serverTime string) *WriteResult {
	if serverTime != "" {
		return &WriteResult{WriteTime: serverTime}
	}
	return &WriteResult{WriteTime: c.now().UTC().Format(writeTimeLayout)}
}

// collectionAt builds a collection reference for a validated,
// project-scoped path, including its chain of parents.
func (c *Client) collectionAt(fullPath string) *CollectionReference {
	col := &CollectionReference{
		client: c,
		path:   fullPath,
		id:     docpath.Base(fullPath),
	}
	// "proj/users" has no parent document; "proj/users/u1/posts" does.
	if dir := docpath.Dir(fullPath); strings.Contains(dir, docpath.Separator) {
		col.parent = c.documentAt(dir)
	}
	return col
}

// documentAt builds a document reference for a validated, project-scoped
// path, including its chain of parents.
func (c *Client) documentAt(fullPath string) *DocumentReference {
	return &DocumentReference{
		client: c,
		path:   fullPath,
		id:     docpath.Base(fullPath),
		parent: c.collectionAt(docpath.Dir(fullPath)),
	}
}
