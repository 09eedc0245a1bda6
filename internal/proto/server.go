package proto

import (
	"context"
	"encoding/json"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

type (
	bookmarkIDReq struct {
		ID uint64 `json:"id"`
	}

	bookmarkUpdateReq struct {
		ID uint64 `json:"id"`
		models.BookmarkUpdateReq
	}

	BookmarkerServerImpl struct {
		auth      *service.Auth
		bookmarks *service.Bookmarks
		validate  *validator.Validate
		logger    *zap.SugaredLogger
	}
)

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, auth *service.Auth, bookmarks *service.Bookmarks, logger *zap.SugaredLogger) *BookmarkerServerImpl {
	instance := New(auth, bookmarks, logger)
	grpcServer := instance.GRPCServer()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.GRPCListen())
			if err != nil {
				return errors.Wrap(err, "failed to listen")
			}

			go func() {
				logger.Infow("Starting GRPC server.", "listen", lis.Addr().String())
				if err := grpcServer.Serve(lis); err != nil {
					logger.Errorw("GRPC server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			grpcServer.GracefulStop()
			return nil
		},
	})

	return instance
}

func New(auth *service.Auth, bookmarks *service.Bookmarks, logger *zap.SugaredLogger) *BookmarkerServerImpl {
	return &BookmarkerServerImpl{
		auth:      auth,
		bookmarks: bookmarks,
		validate:  validator.New(),
		logger:    logger,
	}
}

// GRPCServer returns a grpc.Server with the bookmark service and the bearer
// token interceptor registered.
func (s *BookmarkerServerImpl) GRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.authInterceptor))
	grpcServer := grpc.NewServer(opts...)
	RegisterBookmarkerServer(grpcServer, s)
	return grpcServer
}

func (s *BookmarkerServerImpl) ListBookmarks(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	bookmarks, err := s.bookmarks.ListOwned(ctx, user.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}

	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(bookmarks))}
	for i := range bookmarks {
		item, err := encode(models.NewBookmarkResp(&bookmarks[i]))
		if err != nil {
			return nil, s.toStatus(err)
		}
		out.Values = append(out.Values, structpb.NewStructValue(item))
	}
	return out, nil
}

func (s *BookmarkerServerImpl) GetBookmark(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	req := bookmarkIDReq{}
	if err := s.decode(in, &req); err != nil {
		return nil, s.toStatus(err)
	}

	model, err := s.bookmarks.GetOwned(ctx, user.ID, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.bookmarkStruct(model)
}

func (s *BookmarkerServerImpl) CreateBookmark(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	req := models.BookmarkCreateReq{}
	if err := s.decode(in, &req); err != nil {
		return nil, s.toStatus(err)
	}

	model, err := s.bookmarks.Create(ctx, user.ID, req.ToService())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.bookmarkStruct(model)
}

func (s *BookmarkerServerImpl) UpdateBookmark(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	req := bookmarkUpdateReq{}
	if err := s.decode(in, &req); err != nil {
		return nil, s.toStatus(err)
	}

	model, err := s.bookmarks.UpdateOwned(ctx, user.ID, req.ID, req.ToService())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.bookmarkStruct(model)
}

func (s *BookmarkerServerImpl) DeleteBookmark(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	user, err := userFromContext(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	req := bookmarkIDReq{}
	if err := s.decode(in, &req); err != nil {
		return nil, s.toStatus(err)
	}

	if err := s.bookmarks.DeleteOwned(ctx, user.ID, req.ID); err != nil {
		return nil, s.toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *BookmarkerServerImpl) authInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("authorization"); len(values) > 0 {
			token = bearerToken(values[0])
		}
	}

	user, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		s.logger.Debugw("rejected call", "method", info.FullMethod, "reason", err.Error())
		return nil, s.toStatus(err)
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}

func (s *BookmarkerServerImpl) decode(in *structpb.Struct, v interface{}) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return errors.Wrap(service.ErrValidation, err.Error())
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(service.ErrValidation, err.Error())
	}
	if err := s.validate.Struct(v); err != nil {
		return errors.Wrap(service.ErrValidation, err.Error())
	}
	return nil
}

func (s *BookmarkerServerImpl) bookmarkStruct(model *db.Bookmark) (*structpb.Struct, error) {
	out, err := encode(models.NewBookmarkResp(model))
	if err != nil {
		return nil, s.toStatus(err)
	}
	return out, nil
}

func (s *BookmarkerServerImpl) toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrBookmarkNotFound):
		return status.Error(codes.NotFound, "bookmark not found")
	case errors.Is(err, service.ErrBookmarkNotOwned):
		return status.Error(codes.PermissionDenied, "bookmark not found or not owned")
	case errors.Is(err, service.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	default:
		s.logger.Errorw("grpc call failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func encode(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, errors.Wrap(err, "unmarshal response")
	}
	return out, nil
}

func userFromContext(ctx context.Context) (*db.User, error) {
	user, ok := ctx.Value(userKey).(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
