package myhttpclient

import (
	"context"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
)

//go:generate mockgen -source=api.go -package myhttpclient -destination httpClient_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

type Options struct {
	Timeout     time.Duration
	BearerToken string
	Debug       bool
}

func New(opts Options) HTTPSender {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return newJSONHTTPClient(opts)
}
