package logging

import (
	"context"
	"io"
	"log/slog"
)

type Module string

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerConfig struct {
	Writer        io.Writer
	Level         slog.Leveler
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	GCPProjectID  string
}

// contextHandler adds request, module and trace attributes taken from the
// record's context to every log line.
type contextHandler struct {
	slog.Handler
	defaultModule Module
	gcpProjectID  string
}

func NewHandler(cfg HandlerConfig) slog.Handler {
	base := slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{
		Level:       cfg.Level,
		ReplaceAttr: replaceAttr,
	})

	serviceAttrs := []slog.Attr{
		slog.String("name", cfg.Service.Name),
		slog.String("version", cfg.Service.Version),
	}
	if cfg.Service.Revision != "" {
		serviceAttrs = append(serviceAttrs, slog.String("revision", cfg.Service.Revision))
	}

	return &contextHandler{
		Handler: base.WithAttrs([]slog.Attr{
			slog.Any("service", slog.GroupValue(serviceAttrs...)),
			slog.String("env", string(cfg.Environment)),
		}),
		defaultModule: cfg.DefaultModule,
		gcpProjectID:  cfg.GCPProjectID,
	}
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	module := ModuleFromContext(ctx)
	if module == "" {
		module = h.defaultModule
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}

	r.AddAttrs(traceAttrs(ctx)...)
	r.AddAttrs(gcpTraceAttrs(ctx, h.gcpProjectID)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		Handler:       h.Handler.WithAttrs(attrs),
		defaultModule: h.defaultModule,
		gcpProjectID:  h.gcpProjectID,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		Handler:       h.Handler.WithGroup(name),
		defaultModule: h.defaultModule,
		gcpProjectID:  h.gcpProjectID,
	}
}

// replaceAttr renames the level and message keys to what Cloud Logging expects.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
