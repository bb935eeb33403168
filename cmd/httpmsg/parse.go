package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/parser"
	"github.com/vyrodovalexey/httpmsg/internal/wire"
)

func parseCmd(a *app) *cobra.Command {
	var (
		response  bool
		canonical bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a raw HTTP message",
		Long: `Parse one HTTP message from a file, or stdin when no file is given,
and print a summary of it.

Requests are then matched against the configured routes; the matched
handler's reply is printed in wire form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			return a.runParse(cmd, in, response, canonical)
		},
	}

	cmd.Flags().BoolVarP(&response, "response", "r", false, "Parse a response instead of a request")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Also print the message re-serialized")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, in io.Reader, response, canonical bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	msg := message.NewRequest(a.cfg.MessageOptions()...)
	if response {
		msg = message.NewResponse(a.cfg.MessageOptions()...)
	}

	ctx, span := a.tracer.StartSpan(ctx, "httpmsg.parse")
	p := parser.New(parser.WithLogger(a.logger.WithContext(ctx)))
	err := p.ReadMessage(in, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return fmt.Errorf("parse: %w", err)
	}
	span.SetAttributes(
		attribute.String("message.kind", msg.Kind.String()),
		attribute.Int("message.body_bytes", len(msg.Body)),
	)
	span.End()

	printSummary(out, msg)

	if canonical {
		fmt.Fprintln(out)
		if _, err := wire.Write(out, msg); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	if response || a.routes.Len() == 0 {
		return nil
	}

	reply, err := a.dispatch(ctx, msg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	_, wspan := a.tracer.StartSpan(ctx, "httpmsg.write")
	defer wspan.End()
	if _, err := wire.Write(out, reply); err != nil {
		wspan.RecordError(err)
		wspan.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, m *message.Message) {
	if m.IsResponse() {
		fmt.Fprintf(w, "response %s %d %s\n", m.Version, m.Status, m.Reason())
	} else {
		fmt.Fprintf(w, "request %s %s %s\n", m.Method, m.URL.Path, m.Version)
		if m.URL.Host != "" {
			fmt.Fprintf(w, "host: %s\n", m.URL.HostHeader())
		}
	}

	for _, k := range m.Headers.Keys() {
		fmt.Fprintf(w, "header %s: %s\n", wire.CanonicalHeaderKey(k), m.Headers[k])
	}
	for _, c := range m.Jar.Cookies() {
		fmt.Fprintf(w, "cookie %s=%s\n", c.Name, c.Value)
	}
	for _, k := range m.GetVars.Keys() {
		fmt.Fprintf(w, "get %s=%s\n", k, m.GetVars[k])
	}
	for _, k := range m.PostVars.Keys() {
		fmt.Fprintf(w, "post %s=%s\n", k, m.PostVars[k])
	}
	fmt.Fprintf(w, "body: %d bytes\n", len(m.Body))
}
