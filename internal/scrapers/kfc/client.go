package kfc

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"branchscan/internal/assert"
	"branchscan/internal/telemetry"
	"branchscan/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch_branches   = "client.fetch-branches"
	report_client_fetch_next_data  = "client.fetch-next-data"
	report_client_probe_endpoints  = "client.probe-endpoints"
	report_client_branches_scraped = "client.branches-scraped"
)

var tracer = otel.Tracer("branchscan.internal.scrapers.kfc")

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/121.0.0.0 Safari/537.36"

// DefaultEndpoints are tried in order under the API host when neither the
// branches page nor the Next.js data route yield anything.
var DefaultEndpoints = []string{
	"/branches",
	"/branches?lang=az",
	"/branches?locale=az",
	"/branch",
	"/branch?lang=az",
	"/stores",
	"/stores?lang=az",
	"/locations",
	"/locations?lang=az",
	"/api/branches",
	"/api/branches?lang=az",
	"/api/branches/az",
	"/api/stores",
	"/v1/branches",
	"/v1/branches?lang=az",
}

type Options struct {
	// BranchesURL is the public page listing every branch.
	BranchesURL string
	// SiteURL is the origin the Next.js data route is resolved against.
	SiteURL string
	// APIHost is the origin the candidate Endpoints are resolved against.
	APIHost   string
	Endpoints []string

	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	// Insecure disables TLS certificate verification.
	Insecure         bool
	BypassCloudflare bool

	// DumpOutput receives every request/response pair if set.
	DumpOutput restyutil.InstrumentOutput
}

func DefaultOptions() Options {
	return Options{
		BranchesURL:       "https://kfc.az/az/branches",
		SiteURL:           "https://kfc.az",
		APIHost:           "https://api.kfc.az",
		Endpoints:         DefaultEndpoints,
		UserAgent:         DefaultUserAgent,
		Timeout:           time.Second * 30,
		RequestsPerSecond: 2,
	}
}

type Client struct {
	http *resty.Client
	opts Options
	tel  telemetry.API
}

func NewClient(opts Options, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.BranchesURL)

	tel = telemetry.NewScopedAPI("kfc_scraper", tel)

	httpClient := resty.New()
	httpClient.SetHeader("User-Agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)

	transport, ok := httpClient.GetClient().Transport.(*http.Transport)
	if !ok {
		return Client{}, fmt.Errorf("unexpected default transport %T", httpClient.GetClient().Transport)
	}
	var roundTripper http.RoundTripper = transport
	if opts.BypassCloudflare {
		roundTripper = cloudflarebp.AddCloudFlareByPass(transport)
	}
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = opts.Insecure
	httpClient.SetTransport(roundTripper)

	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 2)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, tracer, opts.DumpOutput)

	return Client{
		http: httpClient,
		opts: opts,
		tel:  tel,
	}, nil
}

func (c Client) fetch(ctx context.Context, url string) (*resty.Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, res.Status())
	}
	return res, nil
}

func (c Client) fetchJSON(ctx context.Context, url string) (any, error) {
	res, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	value, err := decodeJSON(res.Body())
	if err != nil {
		return nil, fmt.Errorf("GET %s: decode json: %w", url, err)
	}
	return value, nil
}

func (c Client) nextDataURL(buildId string) string {
	return fmt.Sprintf(
		"%s/_next/data/%s/az/branches.json",
		strings.TrimSuffix(c.opts.SiteURL, "/"),
		buildId,
	)
}

func (c Client) endpointURLs() []string {
	host := strings.TrimSuffix(c.opts.APIHost, "/")
	urls := make([]string, len(c.opts.Endpoints))
	for i, e := range c.opts.Endpoints {
		urls[i] = host + e
	}
	return urls
}

// Scrape looks for the branch list in, in order, the __NEXT_DATA__ of the
// branches page, the Next.js data route for the page's build and finally a
// list of guessed API endpoints. The first list found wins.
func (c Client) Scrape(ctx context.Context) (Extraction, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	extraction, err := c.scrape(ctx)
	if err != nil {
		span.RecordError(err)
		return Extraction{}, err
	}

	span.SetAttributes(
		attribute.String("source_url", extraction.SourceURL),
		attribute.Int("branches", len(extraction.Items)),
	)
	c.tel.ReportCount(report_client_branches_scraped, int64(len(extraction.Items)))
	return extraction, nil
}

func (c Client) scrape(ctx context.Context) (Extraction, error) {
	var page string
	c.tel.ReportDebug("fetching branches page", c.opts.BranchesURL)
	res, err := c.fetch(ctx, c.opts.BranchesURL)
	if err != nil {
		c.tel.ReportWarning(
			report_client_fetch_branches,
			fmt.Errorf("fetch branches page, trying api endpoints: %w", err),
		)
	} else {
		page = res.String()
	}

	if page != "" {
		nextData, ok := ExtractNextData(page)
		if ok {
			c.tel.ReportDebug("found __NEXT_DATA__ payload")
			list, ok := FindBestList(nextData)
			if ok {
				return Extraction{SourceURL: c.opts.BranchesURL, Items: list}, nil
			}
		}

		buildId, ok := ExtractBuildID(page)
		if ok {
			link := c.nextDataURL(buildId)
			c.tel.ReportDebug("fetching next data route", link)
			payload, err := c.fetchJSON(ctx, link)
			if err != nil {
				c.tel.ReportWarning(report_client_fetch_next_data, err, buildId)
			} else if list, ok := FindBestList(payload); ok {
				return Extraction{SourceURL: link, Items: list}, nil
			}
		}
	}

	for _, link := range c.endpointURLs() {
		if err := ctx.Err(); err != nil {
			return Extraction{}, err
		}

		c.tel.ReportDebug("probing endpoint", link)
		payload, err := c.fetchJSON(ctx, link)
		if err != nil {
			c.tel.ReportDebug("endpoint rejected", link, err)
			continue
		}
		list, ok := FindBestList(payload)
		if ok {
			return Extraction{SourceURL: link, Items: list}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}

	c.tel.ReportWarning(report_client_probe_endpoints, ErrNoBranchData)
	return Extraction{}, ErrNoBranchData
}

// IsNoData reports whether err means that the scrape found nothing, as
// opposed to failing for some other reason.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoBranchData)
}
