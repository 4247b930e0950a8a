package grpc

// proto.go defines the gRPC server interface derived from ruteo/lending/v1/lending.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/ruteo/lending/api/gen/go/ruteo/lending/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoanLedgerServiceServer is the server API for LoanLedgerService.
// It mirrors the proto-generated interface from ruteo.lending.v1.LoanLedgerService.
type LoanLedgerServiceServer interface {
	OriginateLoan(context.Context, *OriginateLoanRequest) (*LoanResponse, error)
	RenewLoan(context.Context, *RenewLoanRequest) (*LoanResponse, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*PaymentResponse, error)
	MarkBadDebt(context.Context, *MarkBadDebtRequest) (*LoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*LoanResponse, error)
	ListLoanPayments(context.Context, *ListLoanPaymentsRequest) (*ListLoanPaymentsResponse, error)
	mustEmbedUnimplementedLoanLedgerServiceServer()
}

// UnimplementedLoanLedgerServiceServer provides forward-compatible default implementations.
type UnimplementedLoanLedgerServiceServer struct{}

func (UnimplementedLoanLedgerServiceServer) OriginateLoan(context.Context, *OriginateLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OriginateLoan not implemented")
}
func (UnimplementedLoanLedgerServiceServer) RenewLoan(context.Context, *RenewLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RenewLoan not implemented")
}
func (UnimplementedLoanLedgerServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*PaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedLoanLedgerServiceServer) MarkBadDebt(context.Context, *MarkBadDebtRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkBadDebt not implemented")
}
func (UnimplementedLoanLedgerServiceServer) GetLoan(context.Context, *GetLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLoanLedgerServiceServer) ListLoanPayments(context.Context, *ListLoanPaymentsRequest) (*ListLoanPaymentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListLoanPayments not implemented")
}
func (UnimplementedLoanLedgerServiceServer) mustEmbedUnimplementedLoanLedgerServiceServer() {}

// RegisterLoanLedgerServiceServer registers the LoanLedgerServiceServer with the gRPC server.
func RegisterLoanLedgerServiceServer(s *grpclib.Server, srv LoanLedgerServiceServer) {
	s.RegisterService(&_LoanLedgerService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LoanLedgerService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "ruteo.lending.v1.LoanLedgerService",
	HandlerType: (*LoanLedgerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "OriginateLoan", Handler: _LoanLedgerService_OriginateLoan_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "RenewLoan", Handler: _LoanLedgerService_RenewLoan_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "RecordPayment", Handler: _LoanLedgerService_RecordPayment_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "MarkBadDebt", Handler: _LoanLedgerService_MarkBadDebt_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _LoanLedgerService_GetLoan_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ListLoanPayments", Handler: _LoanLedgerService_ListLoanPayments_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanLedgerService_OriginateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(OriginateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanLedgerServiceServer).OriginateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ruteo.lending.v1.LoanLedgerService/OriginateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanLedgerServiceServer).OriginateLoan(ctx, req.(*OriginateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanLedgerService_RenewLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RenewLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanLedgerServiceServer).RenewLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ruteo.lending.v1.LoanLedgerService/RenewLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanLedgerServiceServer).RenewLoan(ctx, req.(*RenewLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanLedgerService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanLedgerServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ruteo.lending.v1.LoanLedgerService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanLedgerServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanLedgerService_MarkBadDebt_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(MarkBadDebtRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanLedgerServiceServer).MarkBadDebt(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ruteo.lending.v1.LoanLedgerService/MarkBadDebt",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanLedgerServiceServer).MarkBadDebt(ctx, req.(*MarkBadDebtRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanLedgerService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanLedgerServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ruteo.lending.v1.LoanLedgerService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanLedgerServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanLedgerService_ListLoanPayments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListLoanPaymentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanLedgerServiceServer).ListLoanPayments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ruteo.lending.v1.LoanLedgerService/ListLoanPayments",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanLedgerServiceServer).ListLoanPayments(ctx, req.(*ListLoanPaymentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
