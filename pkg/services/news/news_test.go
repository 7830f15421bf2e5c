package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghost2804/finhub/pkg/services/quotes"
)

type stubSource struct {
	items []quotes.NewsItem
	err   error
}

func (s *stubSource) News(_ context.Context, _ string, _ int) ([]quotes.NewsItem, error) {
	return s.items, s.err
}

func TestHeadlines(t *testing.T) {
	svc := New(&stubSource{items: []quotes.NewsItem{
		{Date: "2025-06-02", Title: "Banks rally", Link: "https://example.com/a", Symbols: []string{"HDFCBANK.NSE"}},
		{Date: "2025-06-01", Title: "Markets flat", Link: "https://example.com/b"},
	}})

	got, err := svc.Headlines(context.Background(), "HDFCBANK.NSE", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Banks rally", got[0].Title)
	assert.Equal(t, "https://example.com/b", got[1].Link)
	assert.Empty(t, got[1].Symbols)
}

const articlePage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>RBI holds rates steady - FinDaily</title>
<meta property="og:title" content="RBI holds rates steady">
</head>
<body>
<article>
<h1>RBI holds rates steady</h1>
<p>The Reserve Bank of India kept its benchmark repo rate unchanged on Friday,
citing a balanced outlook for inflation and growth over the coming quarters.
Economists had widely expected the decision after consumer prices cooled for a
third consecutive month.</p>
<p>Bank stocks were little changed after the announcement, with lenders such as
HDFC Bank and ICICI Bank trading within half a percent of their previous close.
Analysts said the pause gives banks room to protect margins while credit demand
stays healthy.</p>
<p>The central bank also retained its growth forecast for the fiscal year,
pointing to resilient domestic consumption and a pickup in private investment
as the main drivers of activity.</p>
</article>
</body>
</html>`

func TestRead(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer ts.Close()

	svc := New(&stubSource{})
	art, err := svc.Read(context.Background(), ts.URL+"/story")
	require.NoError(t, err)
	assert.Contains(t, art.Title, "RBI holds rates steady")
	assert.Contains(t, art.Markdown, "Reserve Bank of India")
	assert.Contains(t, art.Markdown, "growth forecast")
}

func TestReadBadURL(t *testing.T) {
	svc := New(&stubSource{})
	for _, raw := range []string{"", "ftp://example.com/x", "not a url", "/relative/only"} {
		_, err := svc.Read(context.Background(), raw)
		assert.ErrorIs(t, err, ErrBadURL, raw)
	}
}

func TestReadUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	svc := New(&stubSource{})
	_, err := svc.Read(context.Background(), ts.URL+"/gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestPageTitle(t *testing.T) {
	withOG := `<html><head><title>Fallback</title><meta property="og:title" content="Preferred"></head><body></body></html>`
	assert.Equal(t, "Preferred", pageTitle([]byte(withOG)))

	titleOnly := `<html><head><title> Plain Title </title></head><body></body></html>`
	assert.Equal(t, "Plain Title", pageTitle([]byte(titleOnly)))

	assert.Equal(t, "", pageTitle([]byte(`<html><body><p>x</p></body></html>`)))
}
