package grpc

// proto.go defines the gRPC server interface derived from
// jengacredit/loanbook/v1/loanbook.proto. This file serves as a stand-in for
// buf-generated code; messages ride the JSON codec registered in
// json_codec.go. Once `buf generate` is run, replace this file with the
// import from github.com/jengacredit/loanbook/api/gen/go/loanbook/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jengacredit/loanbook/internal/application/dto"
)

// Request and response messages mirror the application DTOs one to one.
type (
	RegisterCustomerRequest  = dto.RegisterCustomerRequest
	ReviewCustomerRequest    = dto.ReviewCustomerRequest
	GetCustomerRequest       = dto.GetCustomerRequest
	SubmitLoanRequest        = dto.SubmitLoanApplicationRequest
	ReviewLoanRequest        = dto.ReviewLoanRequest
	DisburseLoanRequest      = dto.DisburseLoanRequest
	RecordRepaymentRequest   = dto.RecordRepaymentRequest
	GetLoanRequest           = dto.GetLoanRequest
	ListCustomerLoansRequest = dto.ListCustomerLoansRequest
	ListRepaymentsRequest    = dto.ListLoanRepaymentsRequest

	CustomerResponse        = dto.CustomerResponse
	LoanResponse            = dto.LoanResponse
	RepaymentResponse       = dto.RepaymentResponse
	SweepOverdueResponse    = dto.SweepOverdueResponse
	PortfolioReportResponse = dto.PortfolioReportResponse
)

// SweepOverdueRequest triggers an on-demand overdue sweep.
type SweepOverdueRequest struct{}

// PortfolioReportRequest asks for the aggregate portfolio view.
type PortfolioReportRequest struct{}

// ListLoansResponse wraps a list of loans.
type ListLoansResponse struct {
	Loans []dto.LoanResponse `json:"loans"`
}

// ListRepaymentsResponse wraps a loan's repayment ledger.
type ListRepaymentsResponse struct {
	Repayments []dto.RepaymentResponse `json:"repayments"`
}

// LoanServiceServer is the server API for LoanService.
// It mirrors the proto-generated interface from jengacredit.loanbook.v1.LoanService.
type LoanServiceServer interface {
	RegisterCustomer(context.Context, *RegisterCustomerRequest) (*CustomerResponse, error)
	ReviewCustomer(context.Context, *ReviewCustomerRequest) (*CustomerResponse, error)
	GetCustomer(context.Context, *GetCustomerRequest) (*CustomerResponse, error)
	SubmitLoanApplication(context.Context, *SubmitLoanRequest) (*LoanResponse, error)
	ReviewLoan(context.Context, *ReviewLoanRequest) (*LoanResponse, error)
	DisburseLoan(context.Context, *DisburseLoanRequest) (*LoanResponse, error)
	RecordRepayment(context.Context, *RecordRepaymentRequest) (*RepaymentResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*LoanResponse, error)
	ListCustomerLoans(context.Context, *ListCustomerLoansRequest) (*ListLoansResponse, error)
	ListLoanRepayments(context.Context, *ListRepaymentsRequest) (*ListRepaymentsResponse, error)
	SweepOverdueLoans(context.Context, *SweepOverdueRequest) (*SweepOverdueResponse, error)
	GetPortfolioReport(context.Context, *PortfolioReportRequest) (*PortfolioReportResponse, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) RegisterCustomer(context.Context, *RegisterCustomerRequest) (*CustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterCustomer not implemented")
}
func (UnimplementedLoanServiceServer) ReviewCustomer(context.Context, *ReviewCustomerRequest) (*CustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewCustomer not implemented")
}
func (UnimplementedLoanServiceServer) GetCustomer(context.Context, *GetCustomerRequest) (*CustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCustomer not implemented")
}
func (UnimplementedLoanServiceServer) SubmitLoanApplication(context.Context, *SubmitLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitLoanApplication not implemented")
}
func (UnimplementedLoanServiceServer) ReviewLoan(context.Context, *ReviewLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewLoan not implemented")
}
func (UnimplementedLoanServiceServer) DisburseLoan(context.Context, *DisburseLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DisburseLoan not implemented")
}
func (UnimplementedLoanServiceServer) RecordRepayment(context.Context, *RecordRepaymentRequest) (*RepaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordRepayment not implemented")
}
func (UnimplementedLoanServiceServer) GetLoan(context.Context, *GetLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLoanServiceServer) ListCustomerLoans(context.Context, *ListCustomerLoansRequest) (*ListLoansResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListCustomerLoans not implemented")
}
func (UnimplementedLoanServiceServer) ListLoanRepayments(context.Context, *ListRepaymentsRequest) (*ListRepaymentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListLoanRepayments not implemented")
}
func (UnimplementedLoanServiceServer) SweepOverdueLoans(context.Context, *SweepOverdueRequest) (*SweepOverdueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SweepOverdueLoans not implemented")
}
func (UnimplementedLoanServiceServer) GetPortfolioReport(context.Context, *PortfolioReportRequest) (*PortfolioReportResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPortfolioReport not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers the LoanServiceServer with the gRPC server.
func RegisterLoanServiceServer(s *grpclib.Server, srv LoanServiceServer) {
	s.RegisterService(&_LoanService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LoanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "jengacredit.loanbook.v1.LoanService",
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterCustomer", Handler: _LoanService_RegisterCustomer_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ReviewCustomer", Handler: _LoanService_ReviewCustomer_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "GetCustomer", Handler: _LoanService_GetCustomer_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "SubmitLoanApplication", Handler: _LoanService_SubmitLoan_Handler},      //nolint:revive // gRPC handler registration
		{MethodName: "ReviewLoan", Handler: _LoanService_ReviewLoan_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "DisburseLoan", Handler: _LoanService_DisburseLoan_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "RecordRepayment", Handler: _LoanService_RecordRepayment_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _LoanService_GetLoan_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "ListCustomerLoans", Handler: _LoanService_ListCustomerLoans_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ListLoanRepayments", Handler: _LoanService_ListLoanRepayments_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "SweepOverdueLoans", Handler: _LoanService_SweepOverdueLoans_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "GetPortfolioReport", Handler: _LoanService_GetPortfolioReport_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_RegisterCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegisterCustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).RegisterCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/RegisterCustomer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).RegisterCustomer(ctx, req.(*RegisterCustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ReviewCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReviewCustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ReviewCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/ReviewCustomer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ReviewCustomer(ctx, req.(*ReviewCustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/GetCustomer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetCustomer(ctx, req.(*GetCustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_SubmitLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).SubmitLoanApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/SubmitLoanApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).SubmitLoanApplication(ctx, req.(*SubmitLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ReviewLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReviewLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ReviewLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/ReviewLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ReviewLoan(ctx, req.(*ReviewLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_DisburseLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DisburseLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).DisburseLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/DisburseLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).DisburseLoan(ctx, req.(*DisburseLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_RecordRepayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordRepaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).RecordRepayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/RecordRepayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).RecordRepayment(ctx, req.(*RecordRepaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ListCustomerLoans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListCustomerLoansRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ListCustomerLoans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/ListCustomerLoans",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ListCustomerLoans(ctx, req.(*ListCustomerLoansRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ListLoanRepayments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListRepaymentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ListLoanRepayments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/ListLoanRepayments",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ListLoanRepayments(ctx, req.(*ListRepaymentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_SweepOverdueLoans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SweepOverdueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).SweepOverdueLoans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/SweepOverdueLoans",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).SweepOverdueLoans(ctx, req.(*SweepOverdueRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetPortfolioReport_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PortfolioReportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetPortfolioReport(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/jengacredit.loanbook.v1.LoanService/GetPortfolioReport",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetPortfolioReport(ctx, req.(*PortfolioReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}
