package rpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// ViolationStock is the PreconditionFailure type used for stock shortages.
const ViolationStock = "STOCK"

// Status converts a use case error into a gRPC status error. Shortages are
// attached as PreconditionFailure details, one violation per material.
func Status(err error) error {
	if err == nil {
		return nil
	}

	var (
		validation *apperr.ValidationError
		notFound   *apperr.NotFoundError
		stock      *apperr.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		st := status.New(codes.InvalidArgument, err.Error())
		if validation.Field != "" {
			st = withDetails(st, &errdetails.BadRequest{
				FieldViolations: []*errdetails.BadRequest_FieldViolation{
					{Field: validation.Field, Description: validation.Reason},
				},
			})
		}
		return st.Err()
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &stock):
		st := status.New(codes.FailedPrecondition, err.Error())
		return withDetails(st, &errdetails.PreconditionFailure{
			Violations: []*errdetails.PreconditionFailure_Violation{{
				Type:    ViolationStock,
				Subject: stock.MaterialID,
				Description: fmt.Sprintf("%s: requested %s %s, available %s %s",
					stock.MaterialName, stock.Requested, stock.UnitType, stock.Available, stock.UnitType),
			}},
		}).Err()
	}

	if short, ok := apperr.AsInsufficientMaterial(err); ok {
		violations := make([]*errdetails.PreconditionFailure_Violation, len(short.Shortages))
		for i, s := range short.Shortages {
			violations[i] = &errdetails.PreconditionFailure_Violation{
				Type:    ViolationStock,
				Subject: s.MaterialID,
				Description: fmt.Sprintf("%s: required %s %s, available %s %s, short %s %s",
					s.MaterialName, s.Required, s.UnitType, s.Available, s.UnitType, s.Shortfall, s.UnitType),
			}
		}
		st := status.New(codes.FailedPrecondition, err.Error())
		return withDetails(st, &errdetails.PreconditionFailure{Violations: violations}).Err()
	}

	switch {
	case errors.Is(err, apperr.ErrBusy):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func withDetails(st *status.Status, details ...protoadapt.MessageV1) *status.Status {
	for _, d := range details {
		if withD, err := st.WithDetails(d); err == nil {
			st = withD
		}
	}
	return st
}
