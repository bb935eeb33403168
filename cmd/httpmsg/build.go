package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/util"
	"github.com/vyrodovalexey/httpmsg/internal/wire"
)

type buildOptions struct {
	method    string
	url       string
	get       []string
	post      []string
	headers   []string
	cookies   []string
	multipart bool
}

func buildCmd(a *app) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a request and print its wire form",
		Example: `  httpmsg build --url http://example.com/search --get q=go
  httpmsg build --url http://example.com/form --post name=value --multipart`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.buildRequest(opts)
			if err != nil {
				return err
			}

			_, span := a.tracer.StartSpan(cmd.Context(), "httpmsg.write")
			defer span.End()
			_, err = wire.Write(cmd.OutOrStdout(), req)
			if err != nil {
				span.RecordError(err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.method, "method", "X", "GET", "Request method")
	f.StringVarP(&opts.url, "url", "u", "", "Request URL")
	f.StringArrayVar(&opts.get, "get", nil, "Query variable as key=value (repeatable)")
	f.StringArrayVar(&opts.post, "post", nil, "POST variable as key=value (repeatable)")
	f.StringArrayVarP(&opts.headers, "header", "H", nil, "Header as key=value (repeatable)")
	f.StringArrayVar(&opts.cookies, "cookie", nil, "Cookie as name=value (repeatable)")
	f.BoolVar(&opts.multipart, "multipart", false, "Encode POST variables as multipart/form-data")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func (a *app) buildRequest(opts *buildOptions) (*message.Message, error) {
	req := message.NewRequest(a.cfg.MessageOptions()...)
	if err := req.Setup(opts.method, opts.url); err != nil {
		return nil, err
	}

	for _, kv := range opts.get {
		k, v, err := splitPair(kv)
		if err != nil {
			return nil, err
		}
		req.GetVars.Set(k, v)
	}
	for _, kv := range opts.headers {
		k, v, err := splitPair(kv)
		if err != nil {
			return nil, err
		}
		if err := util.ValidateHeaderName(k); err != nil {
			return nil, err
		}
		req.Headers.Set(k, v)
	}
	for _, kv := range opts.cookies {
		k, v, err := splitPair(kv)
		if err != nil {
			return nil, err
		}
		req.Jar.Set(message.Cookie{Name: k, Value: v})
	}

	if len(opts.post) > 0 {
		for _, kv := range opts.post {
			k, v, err := splitPair(kv)
			if err != nil {
				return nil, err
			}
			req.PostVars.Set(k, v)
		}
		format := message.FormURLEncoded
		if opts.multipart {
			format = message.FormMultipart
		}
		req.PreparePost(format)
	}
	return req, nil
}

// splitPair splits "key=value". The value may be empty; the key may not.
func splitPair(kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected key=value, got %q: %w", kv, util.ErrInvalidInput)
	}
	return k, v, nil
}
