package middleware

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader はリクエスト ID を受け渡すメタデータキーです。
const RequestIDHeader = "x-request-id"

type requestIDKey struct{}

// RequestIDFromContext は割り当て済みのリクエスト ID を返します。
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// UnaryLogging はリクエスト ID を付与し、メソッドごとの結果と所要時間を記録します。
// クライアントが x-request-id を送った場合はその値を引き継ぎます。
func UnaryLogging(logger *zap.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := incomingRequestID(ctx)
		ctx = context.WithValue(ctx, requestIDKey{}, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
			zap.Stringer("code", code),
			zap.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			logger.Info("grpc request", fields...)
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			logger.Error("grpc request", append(fields, zap.Error(err))...)
		default:
			logger.Warn("grpc request", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// UnaryRecovery はハンドラ内の panic を Internal エラーに変換します。
func UnaryRecovery(logger *zap.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("grpc handler panic",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}
