package network

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/infra/auth"
)

const csrfField = "csrfmiddlewaretoken"

// CSRFToken returns the anti-forgery token for state-changing requests.
// It is read from the hidden form field on the index page, falling back to
// the csrftoken cookie, and cached until the service rejects it.
func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.csrf
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}

	resp, err := c.getPage(ctx, "/")
	if err != nil {
		return "", fmt.Errorf("loading csrf token: %w", err)
	}
	page := parsePage(resp.Body)
	token = page.CSRFToken
	if token == "" {
		token = c.Cookies()[auth.CSRFCookie]
	}
	if token == "" {
		return "", domain.ErrCSRF
	}
	c.setCSRF(token)
	return token, nil
}

func (c *Client) setCSRF(token string) {
	c.mu.Lock()
	c.csrf = token
	c.mu.Unlock()
}

func (c *Client) forgetCSRF() {
	c.setCSRF("")
}

// pageInfo is what the client needs from a server-rendered page.
type pageInfo struct {
	CSRFToken string // Value of the first hidden csrfmiddlewaretoken input
	Username  string // Text of the first .profile-link (the navbar user)
	Message   string // First leaf <div> text, used for form errors
}

func parsePage(body []byte) pageInfo {
	var info pageInfo
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return info
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "input":
				if info.CSRFToken == "" && attr(n, "name") == csrfField {
					info.CSRFToken = strings.TrimSpace(attr(n, "value"))
				}
			case "a":
				if info.Username == "" && hasClass(n, "profile-link") {
					info.Username = strings.TrimSpace(textContent(n))
				}
			case "div":
				if info.Message == "" && isLeaf(n) {
					info.Message = strings.TrimSpace(textContent(n))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return info
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// isLeaf reports whether n has only text children.
func isLeaf(n *html.Node) bool {
	hasText := false
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				hasText = true
			}
		}
	}
	return hasText
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
