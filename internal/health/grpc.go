package health

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

// GRPCHealthChecker answers grpc.health.v1 checks from the same dependency
// pings the HTTP probes use. The empty service name means the whole server.
func (c *Checker) GRPCHealthChecker() grpchealth.Checker {
	return grpcChecker{checker: c}
}

type grpcChecker struct {
	checker *Checker
}

func (g grpcChecker) Check(ctx context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	status := g.checker.Check(ctx)

	if req.Service == "" {
		return &grpchealth.CheckResponse{Status: toGRPCStatus(status.Status)}, nil
	}

	result, ok := status.Checks[req.Service]
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown service %q", req.Service))
	}
	return &grpchealth.CheckResponse{Status: toGRPCStatus(result.Status)}, nil
}

func toGRPCStatus(s Status) grpchealth.Status {
	if s == StatusHealthy {
		return grpchealth.StatusServing
	}
	return grpchealth.StatusNotServing
}

// MountGRPC serves the grpc.health.v1 protocol (gRPC, gRPC-Web and Connect) on r.
func (c *Checker) MountGRPC(r gin.IRoutes) {
	path, h := grpchealth.NewHandler(c.GRPCHealthChecker())
	r.Any(path+"*method", gin.WrapH(h))
}
