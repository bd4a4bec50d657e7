package notifier

import (
	"access-request-server/config"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// URLBuilder : собирает абсолютные ссылки для писем
type URLBuilder struct {
	base       *url.URL
	forceHTTPS bool
}

func NewURLBuilder(cfg *config.SiteConfig) (*URLBuilder, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("site.base_url обязателен")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("site.base_url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("site.base_url должен быть абсолютным: %s", cfg.BaseURL)
	}

	return &URLBuilder{base: base, forceHTTPS: cfg.ForceHTTPS}, nil
}

// Build : подставляет {param} в путь эндпоинта, остальные параметры уходят в query
func (b *URLBuilder) Build(endpoint string, params map[string]any) (string, error) {
	path, rawPath := endpoint, endpoint
	query := url.Values{}

	for key, value := range params {
		placeholder := "{" + key + "}"
		text := fmt.Sprint(value)
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, text)
			rawPath = strings.ReplaceAll(rawPath, placeholder, url.PathEscape(text))
			continue
		}
		query.Set(key, text)
	}

	if strings.Contains(rawPath, "{") {
		return "", fmt.Errorf("[URLBuilder] не заданы параметры пути: %s", endpoint)
	}

	result := *b.base
	prefix := strings.TrimRight(b.base.EscapedPath(), "/")
	result.RawPath = prefix + "/" + strings.TrimLeft(rawPath, "/")
	result.Path = strings.TrimRight(b.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	result.RawQuery = query.Encode()
	if b.forceHTTPS {
		result.Scheme = "https"
	}

	return result.String(), nil
}
