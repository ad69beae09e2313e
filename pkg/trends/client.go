package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"

	"github.com/akvise/trends-checker/pkg/logger"
)

const (
	exploreURL   = "https://trends.google.com/trends/api/explore"
	multilineURL = "https://trends.google.com/trends/api/widgetdata/multiline"
	relatedURL   = "https://trends.google.com/trends/api/widgetdata/relatedsearches"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/124.0 Safari/537.36"

	defaultTimeout = 30 * time.Second
)

// Options configures one Client instance. TZ is the timezone offset in
// minutes the service applies to bucket boundaries.
type Options struct {
	HL        string
	TZ        int
	UserAgent string
	Cookie    string
	Proxies   *ProxyPool
	Timeout   time.Duration
}

// Client talks to the Google Trends widget API. A Client is cheap to build
// and callers are expected to construct a fresh one per fetch attempt; the
// explore session it accumulates is only valid for the payload it fetched.
type Client struct {
	http    *fasthttp.Client
	opts    Options
	session *exploreSession
	log     *logger.Logger
}

// NewClient builds a client. When the options carry a proxy pool, the next
// proxy in rotation is bound to this instance.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	httpClient := &fasthttp.Client{
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	}
	if opts.Proxies != nil {
		if proxy := opts.Proxies.Next(); proxy != "" {
			httpClient.Dial = fasthttpproxy.FasthttpHTTPDialerTimeout(proxy, opts.Timeout)
		}
	}

	return &Client{
		http: httpClient,
		opts: opts,
		log:  logger.GetLogger().WithField("component", "trends_client"),
	}
}

// InterestOverTime runs the explore request for the payload and downloads
// the interest-over-time series from the timeseries widget. The explore
// session is retained so RisingQueries can reuse its tokens.
func (c *Client) InterestOverTime(ctx context.Context, payload Payload) (*RawSeries, error) {
	session, err := c.explore(ctx, payload)
	if err != nil {
		return nil, err
	}
	c.session = session

	req := widgetRequest{
		HL:      c.opts.HL,
		TZ:      c.opts.TZ,
		Token:   session.timeseries.Token,
		Request: session.timeseries.Request,
	}
	body, err := c.doGet(ctx, multilineURL, req.values(), payload.Geo)
	if err != nil {
		return nil, err
	}

	series, err := parseTimeline(body, payload.Keywords)
	if err != nil {
		return nil, &FetchError{Geo: payload.Geo, Err: err}
	}
	return series, nil
}

// RisingQueries fetches rising related queries for each keyword of the last
// InterestOverTime call, keyed by keyword. Keywords without rising entries
// map to an empty slice.
func (c *Client) RisingQueries(ctx context.Context) (map[string][]RelatedQuery, error) {
	if c.session == nil {
		return nil, fmt.Errorf("no explore session; call InterestOverTime first")
	}

	result := make(map[string][]RelatedQuery, len(c.session.related))
	for _, w := range c.session.related {
		req := widgetRequest{
			HL:      c.opts.HL,
			TZ:      c.opts.TZ,
			Token:   w.Token,
			Request: w.Request,
		}
		body, err := c.doGet(ctx, relatedURL, req.values(), c.session.geo)
		if err != nil {
			return nil, err
		}
		rising, err := parseRisingQueries(body)
		if err != nil {
			return nil, &FetchError{Geo: c.session.geo, Err: err}
		}
		result[w.keyword] = rising
	}
	return result, nil
}

// explore obtains widget tokens for the comparison payload.
func (c *Client) explore(ctx context.Context, payload Payload) (*exploreSession, error) {
	items := make([]comparisonItem, 0, len(payload.Keywords))
	for _, kw := range payload.Keywords {
		items = append(items, comparisonItem{
			Keyword: kw,
			Geo:     payload.Geo,
			Time:    payload.Timeframe,
		})
	}
	reqJSON, err := json.Marshal(exploreRequest{
		ComparisonItem: items,
		Category:       payload.Category,
		Property:       payload.Property,
	})
	if err != nil {
		return nil, &FetchError{Geo: payload.Geo, Err: err}
	}

	params := url.Values{}
	params.Set("hl", c.opts.HL)
	params.Set("tz", strconv.Itoa(c.opts.TZ))
	params.Set("req", string(reqJSON))

	body, err := c.doGet(ctx, exploreURL, params, payload.Geo)
	if err != nil {
		return nil, err
	}

	session, err := parseExplore(body, payload)
	if err != nil {
		return nil, &FetchError{Geo: payload.Geo, Err: err}
	}
	return session, nil
}

// doGet performs one GET against the widget API with browser-like headers.
func (c *Client) doGet(ctx context.Context, baseURL string, params url.Values, geo string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + "?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", c.opts.HL)
	if c.opts.Cookie != "" {
		req.Header.Set("Cookie", c.opts.Cookie)
	}

	start := time.Now()
	if err := c.http.DoTimeout(req, resp, c.opts.Timeout); err != nil {
		return nil, &FetchError{Geo: geo, Err: fmt.Errorf("request failed: %w", err)}
	}
	c.log.WithField("url", baseURL).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Debug("trends request completed")

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &FetchError{
			Geo:        geo,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%s", fasthttp.StatusMessage(resp.StatusCode())),
		}
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Geo     string `json:"geo"`
	Time    string `json:"time"`
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

type widgetRequest struct {
	HL      string
	TZ      int
	Token   string
	Request json.RawMessage
}

func (w widgetRequest) values() url.Values {
	params := url.Values{}
	params.Set("hl", w.HL)
	params.Set("tz", strconv.Itoa(w.TZ))
	params.Set("req", string(w.Request))
	params.Set("token", w.Token)
	return params
}
