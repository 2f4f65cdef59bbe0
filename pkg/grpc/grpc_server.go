package grpc

import (
	"golang.org/x/time/rate"
	"liyu1981.xyz/tpms-service/pkg/auth"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

type TPMSServer struct {
	Tpms             *tpms.TPMS
	Tokens           *auth.TokenIssuer
	RateLimiterStore *tpms.RateLimiterStore
}

func (s *TPMSServer) GetLimiter(tireID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(tireID)
	}
}

func (s *TPMSServer) CheckTireLimiter(tireID string) bool {
	return s.RateLimiterStore.Allow(tireID)
}
