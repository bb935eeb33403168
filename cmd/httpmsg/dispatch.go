package main

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
)

// dispatch routes req and runs the matched handler. Requests that match
// no route get a 404 reply.
func (a *app) dispatch(ctx context.Context, req *message.Message) (*message.Message, error) {
	ctx, span := a.tracer.StartSpan(ctx, "httpmsg.route")
	defer span.End()

	reply := message.NewReply(req, a.cfg.MessageOptions()...)
	reply.Version = req.Version

	handler, ok := a.routes.Route(req)
	if !ok {
		a.logger.Info("no route matched", observability.String("method", req.Method), logField(req))
		reply.Status = 404
		reply.Headers.Set("content-length", "0")
		span.SetAttributes(attribute.Bool("route.matched", false))
		return reply, nil
	}

	span.SetAttributes(
		attribute.Bool("route.matched", true),
		attribute.String("route.name", req.RouteName),
	)
	if err := handler(ctx, req, reply); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	a.logger.Info("request handled",
		observability.String("route", req.RouteName),
		logField(req),
		observability.Int("status", reply.Status),
	)
	return reply, nil
}

func logField(m *message.Message) observability.Field {
	return observability.String("path", m.URL.Path)
}
