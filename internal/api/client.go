package api

import (
	"bytes"
	"chatsync/internal/chat"
	"context"
	"encoding/json"
	"errors"
	"github.com/rs/xid"
	"github.com/valyala/fastjson"
	"go.uber.org/zap"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the chat backend over HTTP. Every method returns a
// *Problem on a non-ok outcome; the caller decides whether the class
// matters.
type Client struct {
	logger  *zap.SugaredLogger
	http    *http.Client
	baseURL string
	parsers fastjson.ParserPool
}

// Option alters the default configuration used during Client construction.
type Option interface {
	apply(*config)
}

type optionFunc func(c *config)

func (f optionFunc) apply(c *config) { f(c) }

// config defines fields used for configuring a Client instance
type config struct {
	baseURL    string
	httpClient *http.Client
}

// EnvConfig defines fields used for parsing from environment variables
type EnvConfig struct {
	URL     string        `env:"API_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// WithEnvConfig enables processing exported EnvConfig struct to act as a
// source of config parameters for the Client
func WithEnvConfig(cfg EnvConfig) Option {
	return optionFunc(func(c *config) {
		c.baseURL = cfg.URL
		c.httpClient.Timeout = cfg.Timeout
	})
}

// BaseURL sets the backend base URL.
func BaseURL(u string) Option {
	return optionFunc(func(c *config) {
		c.baseURL = u
	})
}

// Timeout sets the per-request timeout for the underlying http.Client.
func Timeout(d time.Duration) Option {
	return optionFunc(func(c *config) {
		c.httpClient.Timeout = d
	})
}

// NewClient returns a new Client with the provided zap.SugaredLogger and
// options applied over defaults.
func NewClient(logger *zap.SugaredLogger, opts ...Option) (*Client, error) {
	cfg := &config{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("api: base URL must not be empty")
	}

	return &Client{
		logger:  logger,
		http:    cfg.httpClient,
		baseURL: strings.TrimSuffix(cfg.baseURL, "/"),
	}, nil
}

// GetRooms fetches every chat room.
func (c *Client) GetRooms(ctx context.Context) ([]chat.Room, error) {
	body, err := c.do(ctx, "GET", "/Room", nil)
	if err != nil {
		return nil, err
	}

	var rooms []chat.Room
	if err := json.Unmarshal(body, &rooms); err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	return rooms, nil
}

// GetRoom fetches a single chat room by id.
func (c *Client) GetRoom(ctx context.Context, id string) (chat.Room, error) {
	body, err := c.do(ctx, "GET", "/Room/"+url.PathEscape(id), nil)
	if err != nil {
		return chat.Room{}, err
	}

	var room chat.Room
	if err := json.Unmarshal(body, &room); err != nil {
		return chat.Room{}, &Problem{Kind: KindBadData}
	}

	return room, nil
}

// GetMessages fetches every message of a room. Records are returned raw;
// typing them is the normalizer's job.
func (c *Client) GetMessages(ctx context.Context, roomID string) ([]chat.RawMessage, error) {
	body, err := c.do(ctx, "GET", "/Room/"+url.PathEscape(roomID)+"/Message", nil)
	if err != nil {
		return nil, err
	}

	parser := c.parsers.Get()
	defer c.parsers.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	items, err := v.Array()
	if err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	raws := make([]chat.RawMessage, 0, len(items))
	for _, item := range items {
		obj, err := item.Object()
		if err != nil {
			return nil, &Problem{Kind: KindBadData}
		}
		raws = append(raws, rawFromObject(obj))
	}

	return raws, nil
}

// AddMessage submits a new message to a room and returns the backend's
// echoed record.
func (c *Client) AddMessage(ctx context.Context, msg chat.OutgoingMessage, roomID string) (chat.RawMessage, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	body, err := c.do(ctx, "POST", "/Room/"+url.PathEscape(roomID)+"/Message", payload)
	if err != nil {
		return nil, err
	}

	parser := c.parsers.Get()
	defer c.parsers.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	obj, err := v.Object()
	if err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	return rawFromObject(obj), nil
}

// rawFromObject flattens a JSON object into a RawMessage. String values are
// taken as-is, other scalars keep their JSON encoding. Nested values are
// skipped: no observed backend message field carries one.
func rawFromObject(obj *fastjson.Object) chat.RawMessage {
	raw := make(chat.RawMessage, obj.Len())
	obj.Visit(func(key []byte, v *fastjson.Value) {
		switch v.Type() {
		case fastjson.TypeString:
			b, _ := v.StringBytes()
			raw[string(key)] = string(b)
		case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
			raw[string(key)] = string(v.MarshalTo(nil))
		}
	})
	return raw
}

// do performs one HTTP round trip and returns the response body of a 2xx
// answer. Every request carries an id for log correlation.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	id := xid.New().String()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Problem{Kind: KindUnknown}
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugf("api request %s: %s %s", id, method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		p := problemFromTransport(err)
		c.logger.Debugf("api request %s failed: %s: %v", id, p.Kind, err)
		return nil, p
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &Problem{Kind: KindBadData}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p := problemFromStatus(resp.StatusCode)
		c.logger.Debugf("api request %s rejected: %s", id, p)
		return nil, p
	}

	if len(body) == 0 {
		return nil, &Problem{Kind: KindBadData}
	}

	return body, nil
}
