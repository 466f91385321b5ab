// Package webscan fetches a web page and runs its URL, title and
// visible text through the risk evaluator. It backs the `scan` CLI
// command; the analyze API endpoint never fetches remote content.
package webscan

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"

	"github.com/asadnaved9/safebrowse/pkg/risk"
)

// Result holds the fetched page pieces the evaluator scores.
type Result struct {
	URL        string
	StatusCode int
	Title      string
	Text       string
	Length     int
}

func defaultClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil
	return client
}

// Fetch downloads a page and extracts its title and visible text.
// A nil client selects a default with retries and a short timeout.
func Fetch(rawURL string, client *retryablehttp.Client) (*Result, error) {
	if client == nil {
		client = defaultClient()
	}

	req, err := retryablehttp.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:83.0) Gecko/20100101 Firefox/83.0")
	req.Header.Set("Accept-Language", "en")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body := string(bodyBytes)

	res := &Result{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
	}

	if title, ok := htmlTitle(body); ok {
		res.Title = strings.ToValidUTF8(strings.TrimSpace(title), "")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	res.Text = visibleText(doc)
	res.Length = utf8.RuneCountInString(res.Text)

	return res, nil
}

// visibleText returns the page's body text with script/style content
// stripped and whitespace collapsed.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return collapseWhitespace(doc.Text())
	}
	return collapseWhitespace(body.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Evaluate scores a fetched page for a viewer of the given age: the
// URL first (an adult-domain hit decides on its own), then the title
// and visible text as one text document.
func Evaluate(eval *risk.Evaluator, res *Result, age int) risk.Verdict {
	if eval == nil {
		eval = risk.New(nil)
	}

	if v := eval.ScoreURL(res.URL); !v.Safe {
		return v
	}

	content := res.Text
	if res.Title != "" {
		content = res.Title + "\n" + content
	}
	return eval.ScoreText(content, age)
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func traverse(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, ok := traverse(c); ok {
			return result, ok
		}
	}
	return "", false
}

func htmlTitle(body string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	return traverse(doc)
}
