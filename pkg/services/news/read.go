package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"
)

const (
	fetchUA = "Mozilla/5.0 (compatible; finhub/1.0)"

	// maxArticleSize bounds how much of a page we are willing to parse.
	maxArticleSize = 2 << 20
)

var ErrBadURL = errors.New("invalid article url")

// Article is the readable form of a fetched page.
type Article struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Markdown string `json:"markdown"`
}

// Read fetches a page and extracts its readable content as markdown.
func (s *Service) Read(ctx context.Context, pageURL string) (*Article, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrBadURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetchUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch article: unexpected status %d", resp.StatusCode)
	}

	// decode to UTF-8 whatever charset the page declares
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode article: %w", err)
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxArticleSize))
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}

	art, err := readability.FromReader(bytes.NewReader(raw), u)
	if err != nil {
		logger().Infow("readability fail", "url", pageURL, "err", err)
		return nil, fmt.Errorf("extract article: %w", err)
	}

	markdown, err := md.NewConverter(u.Host, true, nil).ConvertString(art.Content)
	if err != nil {
		return nil, fmt.Errorf("convert article: %w", err)
	}

	title := strings.TrimSpace(art.Title)
	if title == "" {
		title = pageTitle(raw)
	}
	return &Article{
		URL:      u.String(),
		Title:    title,
		SiteName: art.SiteName,
		Excerpt:  strings.TrimSpace(art.Excerpt),
		Markdown: strings.TrimSpace(markdown),
	}, nil
}

// pageTitle pulls og:title, falling back to the <title> element.
func pageTitle(raw []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
