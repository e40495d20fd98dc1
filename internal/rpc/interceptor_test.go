package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/auth"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestContextInterceptorCopiesUser(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-user-id", "ana"))
	info := &grpc.UnaryServerInfo{FullMethod: "/inventory.v1.MaterialService/GetMaterial"}

	var got string
	_, err := ContextInterceptor()(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		// Drop the metadata so only the context value can answer.
		got = auth.GetUserID(metadata.NewIncomingContext(ctx, metadata.MD{}))
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "ana" {
		t.Errorf("Expected ana, got %s", got)
	}
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/inventory.v1.MaterialService/GetMaterial"}
	want := status.Error(codes.NotFound, "material m1 not found")

	resp, err := LoggingInterceptor(logger.NewNop())(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", want
	})
	if resp != "ok" || err != want {
		t.Errorf("Expected handler result unchanged, got %v, %v", resp, err)
	}
}

func TestCodec(t *testing.T) {
	c := Codec{}
	if c.Name() != CodecName {
		t.Errorf("Expected %s, got %s", CodecName, c.Name())
	}

	type req struct {
		OrderID string `json:"order_id"`
	}
	b, err := c.Marshal(&req{OrderID: "o1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var out req
	if err := c.Unmarshal(b, &out); err != nil || out.OrderID != "o1" {
		t.Errorf("Expected o1, got %q (%v)", out.OrderID, err)
	}

	// Protobuf messages go through protojson.
	b, err = c.Marshal(wrapperspb.String("hello"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s != "hello" {
		t.Errorf("Expected protojson string hello, got %s (%v)", b, err)
	}
	if err := c.Unmarshal([]byte("{}"), &emptypb.Empty{}); err != nil {
		t.Errorf("Expected empty message to decode, got %v", err)
	}
}
