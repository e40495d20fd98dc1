package handler

import (
	"context"
	"net"
	"testing"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	matUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/store/memory"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newClient(t *testing.T) *inventoryv1.MaterialServiceClient {
	t.Helper()
	s := memory.NewStore()
	log := logger.NewNop()
	uc := matUCPkg.NewMaterialUseCase(s.Materials(), s.Reservations(), s.Materials(), s, log)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		rpc.ContextInterceptor(),
		rpc.LoggingInterceptor(log),
	))
	inventoryv1.RegisterMaterialServiceServer(srv, NewMaterialHandler(uc, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return inventoryv1.NewMaterialServiceClient(conn)
}

func TestMaterialServiceLedgerFlow(t *testing.T) {
	client := newClient(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-user-id", "ana")

	m, err := client.CreateMaterial(ctx, &inventoryv1.CreateMaterialRequest{
		Name:          "MDF 3mm",
		UnitType:      "sheet",
		InitialStock:  dec("20"),
		MinStockLevel: dec("5"),
		CostPerUnit:   dec("12.5"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.ID == "" || !m.CurrentStock.Equal(dec("20")) {
		t.Fatalf("Expected material with stock 20, got %+v", m)
	}

	mv, err := client.RecordPurchase(ctx, &inventoryv1.RecordPurchaseRequest{MaterialID: m.ID, Quantity: dec("10"), UnitCost: dec("11")})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !mv.Material.CurrentStock.Equal(dec("30")) || mv.Transaction.Type != model.TransactionPurchase {
		t.Errorf("Expected purchase to 30, got %s (%s)", mv.Material.CurrentStock, mv.Transaction.Type)
	}

	_, err = client.RecordConsumption(ctx, &inventoryv1.RecordConsumptionRequest{MaterialID: m.ID, Quantity: dec("31")})
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("Expected FailedPrecondition, got %v", err)
	}

	txs, err := client.ListTransactions(ctx, &inventoryv1.ListTransactionsRequest{MaterialID: m.ID})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if txs.Total != 2 {
		t.Fatalf("Expected 2 transactions, got %d", txs.Total)
	}
	for _, tx := range txs.Transactions {
		if tx.PerformedBy != "ana" {
			t.Errorf("Expected performed by ana, got %s", tx.PerformedBy)
		}
	}

	purchases, err := client.ListTransactions(ctx, &inventoryv1.ListTransactionsRequest{MaterialID: m.ID, Type: "purchase"})
	if err != nil || purchases.Total != 1 {
		t.Errorf("Expected 1 purchase, got %v (%v)", purchases, err)
	}
}

func TestMaterialServiceErrorCodes(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"missing id", func() error {
			_, err := client.GetMaterial(ctx, &inventoryv1.GetMaterialRequest{})
			return err
		}, codes.InvalidArgument},
		{"unknown material", func() error {
			_, err := client.GetMaterial(ctx, &inventoryv1.GetMaterialRequest{ID: "nope"})
			return err
		}, codes.NotFound},
		{"adjust without reason", func() error {
			_, err := client.AdjustStock(ctx, &inventoryv1.AdjustStockRequest{MaterialID: "nope", NewQuantity: dec("1")})
			return err
		}, codes.InvalidArgument},
		{"bad transaction type", func() error {
			_, err := client.ListTransactions(ctx, &inventoryv1.ListTransactionsRequest{Type: "refund"})
			return err
		}, codes.InvalidArgument},
		{"create without name", func() error {
			_, err := client.CreateMaterial(ctx, &inventoryv1.CreateMaterialRequest{UnitType: "sheet"})
			return err
		}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(tt.call()); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
