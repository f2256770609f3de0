// Package cachetest oferece um cache.Client em memória para testes.
package cachetest

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"winestore/internal/pkg/cache"
)

// Client guarda os valores como string, como o Redis faria. Expirações são
// registradas mas não aplicadas.
type Client struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Duration
	// Err, quando definido, é devolvido por todas as operações.
	Err error
}

var _ cache.Client = (*Client)(nil)

func New() *Client {
	return &Client{values: map[string]string{}, expires: map[string]time.Duration{}}
}

func (c *Client) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (c *Client) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	c.expires[key] = expiration
	return nil
}

func (c *Client) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	for _, k := range keys {
		delete(c.values, k)
		delete(c.expires, k)
	}
	return nil
}

func (c *Client) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *Client) Expire(_ context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.expires[key] = expiration
	return nil
}

func (c *Client) Close() error { return nil }

// Has informa se a chave está presente.
func (c *Client) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

// TTL devolve a última expiração registrada para a chave.
func (c *Client) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expires[key]
}
