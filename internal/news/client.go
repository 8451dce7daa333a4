package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// ErrUnavailable reports that the news source could not be scraped. Callers
// degrade to an empty headline pool.
var ErrUnavailable = errors.New("news source unavailable")

// Client scrapes headlines from the ShareSansar latest-news listing.
type Client struct {
	url      string
	selector string
	http     *resty.Client
}

// NewClient builds a scraper for the given listing URL and headline selector.
func NewClient(url, selector string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; NepseSentinel/1.0)")

	return &Client{
		url:      url,
		selector: selector,
		http:     client,
	}
}

// FetchHeadlines returns the page's headline texts in display order.
func (c *Client) FetchHeadlines(ctx context.Context) ([]string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: parse page: %v", ErrUnavailable, err)
	}

	var headlines []string
	doc.Find(c.selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			headlines = append(headlines, text)
		}
	})
	return headlines, nil
}
