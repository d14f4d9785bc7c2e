package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postForm(target string, form url.Values, referer string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	return req
}

func TestSafeRedirectTarget(t *testing.T) {
	tests := []struct {
		name    string
		next    string
		referer string
		want    string
	}{
		{"relative next", "/catalog/?type=movie", "", "/catalog/?type=movie"},
		{"next wins over referer", "/watchlist/", "http://example.com/media/1/", "/watchlist/"},
		{"same-host referer", "", "http://example.com/media/1/", "http://example.com/media/1/"},
		{"foreign host rejected", "http://evil.example/", "", "/fallback/"},
		{"foreign referer rejected", "", "http://evil.example/x", "/fallback/"},
		{"protocol-relative rejected", "//evil.example/x", "", "/fallback/"},
		{"javascript scheme rejected", "javascript:alert(1)", "", "/fallback/"},
		{"nothing given", "", "", "/fallback/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.next != "" {
				form.Set("next", tt.next)
			}
			req := postForm("http://example.com/rate/", form, tt.referer)
			assert.Equal(t, tt.want, safeRedirectTarget(req, "/fallback/"))
		})
	}
}

func TestPathID(t *testing.T) {
	id, err := pathID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = pathID("abc")
	assert.Error(t, err)
}
