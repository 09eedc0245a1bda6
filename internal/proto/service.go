package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "bookmarker.v1.Bookmarker"

// BookmarkerServer carries bookmarks as JSON-shaped structpb messages so the
// service needs no generated code.
type BookmarkerServer interface {
	ListBookmarks(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetBookmark(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateBookmark(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBookmark(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteBookmark(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

var bookmarkerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookmarkerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListBookmarks", Handler: unaryHandler("ListBookmarks", BookmarkerServer.ListBookmarks)},
		{MethodName: "GetBookmark", Handler: unaryHandler("GetBookmark", BookmarkerServer.GetBookmark)},
		{MethodName: "CreateBookmark", Handler: unaryHandler("CreateBookmark", BookmarkerServer.CreateBookmark)},
		{MethodName: "UpdateBookmark", Handler: unaryHandler("UpdateBookmark", BookmarkerServer.UpdateBookmark)},
		{MethodName: "DeleteBookmark", Handler: unaryHandler("DeleteBookmark", BookmarkerServer.DeleteBookmark)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookmarker/v1/bookmarker.proto",
}

func RegisterBookmarkerServer(s grpc.ServiceRegistrar, srv BookmarkerServer) {
	s.RegisterService(&bookmarkerServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req any, Resp any](method string, call func(BookmarkerServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookmarkerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(BookmarkerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type BookmarkerClient struct {
	cc grpc.ClientConnInterface
}

func NewBookmarkerClient(cc grpc.ClientConnInterface) *BookmarkerClient {
	return &BookmarkerClient{cc: cc}
}

func (c *BookmarkerClient) ListBookmarks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, fullMethod("ListBookmarks"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookmarkerClient) GetBookmark(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "GetBookmark", in, opts...)
}

func (c *BookmarkerClient) CreateBookmark(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "CreateBookmark", in, opts...)
}

func (c *BookmarkerClient) UpdateBookmark(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "UpdateBookmark", in, opts...)
}

func (c *BookmarkerClient) DeleteBookmark(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("DeleteBookmark"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookmarkerClient) invokeStruct(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
