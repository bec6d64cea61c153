//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/infra/memstore"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/usecase"
	sharedmock "course-checkout/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RateLimiterTestSuite struct {
	suite.Suite
	ctx         context.Context
	ctrl        *gomock.Controller
	clock       *clock.MockClock
	mockPrimary *sharedmock.MockRateLimitStore
	mockMetrics *sharedmock.MockMetrics
	memory      *memstore.RateLimitStore
	logger      *slog.Logger
	policy      ratelimit.Policy
}

func (s *RateLimiterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.clock = clock.NewMockClock(time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC))
	s.mockPrimary = sharedmock.NewMockRateLimitStore(s.ctrl)
	s.mockMetrics = sharedmock.NewMockMetrics(s.ctrl)
	s.memory = memstore.NewRateLimitStore()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.policy = ratelimit.Policy{Limit: 2, Window: time.Minute}
}

func TestRateLimiterSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (s *RateLimiterTestSuite) TestMemoryOnly() {
	limiter := usecase.NewRateLimiter(nil, s.memory, s.clock, s.mockMetrics, s.logger)

	s.mockMetrics.EXPECT().RateLimitDecision("checkout", true).Times(2)
	s.mockMetrics.EXPECT().RateLimitDecision("checkout", false).Times(1)

	var admitted []bool
	for range 3 {
		d, err := limiter.Check(s.ctx, "checkout:10.0.0.1", s.policy)
		s.Require().NoError(err)
		admitted = append(admitted, d.Admitted)
	}
	s.Equal([]bool{true, true, false}, admitted)
}

func (s *RateLimiterTestSuite) TestPrimaryAnswers() {
	limiter := usecase.NewRateLimiter(s.mockPrimary, s.memory, s.clock, s.mockMetrics, s.logger)
	want := ratelimit.Decision{Admitted: true, Remaining: 1, ResetAt: s.clock.Now().Add(time.Minute)}

	s.mockPrimary.EXPECT().Hit(s.ctx, "stripe-webhook:10.0.0.1", s.clock.Now(), s.policy).Return(want, nil)
	s.mockMetrics.EXPECT().RateLimitDecision("stripe-webhook", true)

	got, err := limiter.Check(s.ctx, "stripe-webhook:10.0.0.1", s.policy)
	s.Require().NoError(err)
	s.Equal(want, got)
	s.Equal(0, s.memory.Len(), "memory is untouched while the primary works")
}

func (s *RateLimiterTestSuite) TestFallsBackToMemoryOnStoreError() {
	limiter := usecase.NewRateLimiter(s.mockPrimary, s.memory, s.clock, s.mockMetrics, s.logger)

	s.mockPrimary.EXPECT().Hit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ratelimit.Decision{}, errors.New("db down")).Times(3)
	s.mockMetrics.EXPECT().RateLimitFallback().Times(3)
	s.mockMetrics.EXPECT().RateLimitDecision("checkout", gomock.Any()).Times(3)

	var admitted []bool
	for range 3 {
		d, err := limiter.Check(s.ctx, "checkout:10.0.0.2", s.policy)
		s.Require().NoError(err, "store failures are never surfaced")
		admitted = append(admitted, d.Admitted)
	}
	s.Equal([]bool{true, true, false}, admitted, "the fallback still enforces the limit")
}

func (s *RateLimiterTestSuite) TestCancelledContextIsNotDowngraded() {
	limiter := usecase.NewRateLimiter(s.mockPrimary, s.memory, s.clock, s.mockMetrics, s.logger)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.mockPrimary.EXPECT().Hit(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(ratelimit.Decision{}, context.Canceled)

	_, err := limiter.Check(ctx, "checkout:10.0.0.3", s.policy)
	s.ErrorIs(err, context.Canceled)
}

func (s *RateLimiterTestSuite) TestInvalidPolicy() {
	limiter := usecase.NewRateLimiter(s.mockPrimary, s.memory, s.clock, s.mockMetrics, s.logger)

	_, err := limiter.Check(s.ctx, "checkout:x", ratelimit.Policy{Limit: 0, Window: time.Minute})
	s.ErrorIs(err, ratelimit.ErrInvalidPolicy)
}
