package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/router"
)

// builtinHandlers are the handlers routes in a configuration file may name.
func builtinHandlers() map[string]router.Handler {
	return map[string]router.Handler{
		"echo":   echoHandler,
		"params": paramsHandler,
	}
}

// echoHandler replies with the request body and content type.
func echoHandler(_ context.Context, req, resp *message.Message) error {
	resp.Status = 200
	resp.Body = append([]byte(nil), req.Body...)
	ct := req.Headers.Get("content-type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	resp.Headers.Set("content-type", ct)
	resp.Headers.Set("content-length", strconv.Itoa(len(resp.Body)))
	return nil
}

// paramsHandler replies with the route name and captured parameters, one
// "key=value" line each in key order.
func paramsHandler(_ context.Context, req, resp *message.Message) error {
	var b strings.Builder
	b.WriteString("route=" + req.RouteName + "\n")
	for _, k := range req.Params.Keys() {
		b.WriteString(k + "=" + req.Params[k] + "\n")
	}

	resp.Status = 200
	resp.Body = []byte(b.String())
	resp.Headers.Set("content-type", "text/plain; charset=utf-8")
	return nil
}
