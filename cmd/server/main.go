package main

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/tpms-service/pkg/auth"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/db"
	"liyu1981.xyz/tpms-service/pkg/dispatch"
	tpmsGrpc "liyu1981.xyz/tpms-service/pkg/grpc"
	tpmsHttp "liyu1981.xyz/tpms-service/pkg/http"
	"liyu1981.xyz/tpms-service/pkg/observability"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

func setupDispatchers(ctx context.Context, cfg *common.Config, logger *zap.Logger) dispatch.Dispatcher {
	var dispatchers dispatch.Multi

	if len(cfg.KafkaBrokers) > 0 {
		dispatchers = append(dispatchers, dispatch.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.KafkaTopic))
		logger.Info("Kafka dispatcher enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	if cfg.RedisAddr != "" {
		redisDispatcher, err := dispatch.NewRedisDispatcher(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		dispatchers = append(dispatchers, redisDispatcher)
		logger.Info("Redis dispatcher enabled", zap.String("addr", cfg.RedisAddr))
	}

	if len(dispatchers) == 0 {
		return nil
	}
	return dispatchers
}

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	logger := common.GetLogger()

	dbInstance := db.GetInstance(db.UseDialector(cfg))

	tpmsCore := tpms.New(*dbInstance).
		WithMetrics(observability.NewMetrics()).
		WithDispatcher(setupDispatchers(ctx, cfg, logger))
	if err := tpmsCore.LoadCatalog(ctx); err != nil {
		log.Fatalf("failed to load alert catalog: %v", err)
	}
	if tpmsCore.Dispatcher != nil {
		defer tpmsCore.Dispatcher.Close()
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.GrpcHostPort != "" {
		logger.Info("Starting gRPC server on port " + cfg.GrpcHostPort)
		go func() {
			tpmsGrpcServer := &tpmsGrpc.TPMSServer{
				Tpms:             tpmsCore,
				Tokens:           tokens,
				RateLimiterStore: tpms.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
			}
			s := grpc.NewServer(tpmsGrpcServer.ServerOptions()...)
			tpmsGrpc.RegisterTPMSServiceServer(s, tpmsGrpcServer)
			logger.Info("gRPC server created with:",
				zap.String("default_limiter",
					fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)))

			listener, err := net.Listen("tcp", cfg.GrpcHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + cfg.GrpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	rs := &tpmsHttp.RestfulServer{
		Server:           gin.Default(),
		Tpms:             tpmsCore,
		Tokens:           tokens,
		RateLimiterStore: tpms.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)))

	logger.Info("Starting HTTP server on: " + cfg.HTTPHostPort)
	if err := rs.Server.Run(cfg.HTTPHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
