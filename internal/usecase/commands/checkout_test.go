//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-checkout/internal/domain/product"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/shared"
	sharedmock "course-checkout/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCheckoutUseCase(t *testing.T, mutate func(*config.Config)) (commands.CheckoutCommands, *sharedmock.MockCheckoutGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gateway := sharedmock.NewMockCheckoutGateway(ctrl)

	cfg := config.NewTestConfig()
	cfg.App.PublicSiteURL = "shop.example.org"
	if mutate != nil {
		mutate(&cfg)
	}
	clk := clock.NewMockClock(time.UnixMilli(1_700_000_000_123))
	return commands.NewCheckoutUseCase(gateway, clk, discardLogger(), cfg), gateway
}

func TestCreateCheckout_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		in      commands.CreateCheckoutInput
		wantErr error
	}{
		{
			name:    "missing success url",
			in:      commands.CreateCheckoutInput{CancelURL: "https://kurs.example.com/cancel"},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "relative cancel url",
			in:      commands.CreateCheckoutInput{SuccessURL: "https://kurs.example.com/ok", CancelURL: "/cancel"},
			wantErr: errs.ErrValidation,
		},
		{
			name: "unknown product",
			in: commands.CreateCheckoutInput{
				SuccessURL:  "https://kurs.example.com/ok",
				CancelURL:   "https://kurs.example.com/cancel",
				ProductType: "vip",
			},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "foreign success origin",
			in:      commands.CreateCheckoutInput{SuccessURL: "https://evil.example.net/ok", CancelURL: "https://kurs.example.com/cancel"},
			wantErr: errs.ErrRedirectNotAllowed,
		},
		{
			name:    "https local test host",
			in:      commands.CreateCheckoutInput{SuccessURL: "https://app.local.test/ok", CancelURL: "https://kurs.example.com/cancel"},
			wantErr: errs.ErrRedirectNotAllowed,
		},
		{
			name:    "localhost on another port",
			in:      commands.CreateCheckoutInput{SuccessURL: "http://localhost:8080/ok", CancelURL: "http://localhost:3000/cancel"},
			wantErr: errs.ErrRedirectNotAllowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newCheckoutUseCase(t, nil)

			out, err := uc.CreateCheckout(context.Background(), tc.in)

			assert.Nil(t, out)
			assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestCreateCheckout_AllowedOrigins(t *testing.T) {
	origins := []string{
		"https://kurs.example.com",
		"https://shop.example.org",
		"https://kurs.example.com:443",
		"https://Shop.Example.org:443",
		"http://localhost:3000",
		"http://127.0.0.1:3001",
		"http://shop.local.test:4000",
	}

	for _, o := range origins {
		t.Run(o, func(t *testing.T) {
			uc, gateway := newCheckoutUseCase(t, nil)
			gateway.EXPECT().LookupPrice(gomock.Any(), "pw_live_eur").Return("price_live", nil)
			gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return("https://checkout.stripe.com/c/pay/cs_1", nil)

			out, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
				SuccessURL: o + "/checkout/success",
				CancelURL:  o + "/checkout/cancel",
			})

			require.NoError(t, err)
			assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", out.URL)
		})
	}
}

func TestCreateCheckout_NonDefaultPortIsAnotherOrigin(t *testing.T) {
	for _, o := range []string{"https://kurs.example.com:8443", "http://kurs.example.com:443"} {
		t.Run(o, func(t *testing.T) {
			uc, _ := newCheckoutUseCase(t, nil)

			_, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
				SuccessURL: o + "/checkout/success",
				CancelURL:  o + "/checkout/cancel",
			})

			assert.ErrorIs(t, err, errs.ErrRedirectNotAllowed)
		})
	}
}

func TestCreateCheckout_UsesLookupKeyPrice(t *testing.T) {
	uc, gateway := newCheckoutUseCase(t, nil)

	gomock.InOrder(
		gateway.EXPECT().LookupPrice(gomock.Any(), "pw_selfpaced_eur").Return("price_self", nil),
		gateway.EXPECT().CreateSession(gomock.Any(), shared.CheckoutParams{
			PriceID:    "price_self",
			SuccessURL: "https://kurs.example.com/checkout/success",
			CancelURL:  "https://kurs.example.com/",
			Product:    product.CourseSelfPaced,
		}).Return("https://checkout.stripe.com/c/pay/cs_2", nil),
	)

	out, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
		SuccessURL:  "https://kurs.example.com/checkout/success",
		CancelURL:   "https://kurs.example.com/",
		ProductType: "self-paced",
	})

	require.NoError(t, err)
	assert.Equal(t, product.CourseSelfPaced, out.Product)
	assert.False(t, out.DevMode)
}

func TestCreateCheckout_PriceFallback(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       func(*config.Config)
		lookupErr error
		wantPrice string
	}{
		{
			name:      "live env price",
			cfg:       func(c *config.Config) { c.Stripe.PriceIDLive = "price_env_live"; c.Stripe.PriceIDCourse = "price_env_course" },
			wantPrice: "price_env_live",
		},
		{
			name:      "legacy course price",
			cfg:       func(c *config.Config) { c.Stripe.PriceIDCourse = "price_env_course" },
			wantPrice: "price_env_course",
		},
		{
			name:      "lookup error falls back",
			cfg:       func(c *config.Config) { c.Stripe.PriceIDLive = "price_env_live" },
			lookupErr: errors.New("stripe down"),
			wantPrice: "price_env_live",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, gateway := newCheckoutUseCase(t, tc.cfg)
			gateway.EXPECT().LookupPrice(gomock.Any(), "pw_live_eur").Return("", tc.lookupErr)
			gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, p shared.CheckoutParams) (string, error) {
					assert.Equal(t, tc.wantPrice, p.PriceID)
					return "https://checkout.stripe.com/c/pay/cs_3", nil
				})

			_, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
				SuccessURL: "https://kurs.example.com/ok",
				CancelURL:  "https://kurs.example.com/cancel",
			})

			require.NoError(t, err)
		})
	}
}

func TestCreateCheckout_PriceNotConfigured(t *testing.T) {
	uc, gateway := newCheckoutUseCase(t, nil)
	gateway.EXPECT().LookupPrice(gomock.Any(), "pw_selfpaced_eur").Return("", nil)

	_, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
		SuccessURL:  "https://kurs.example.com/ok",
		CancelURL:   "https://kurs.example.com/cancel",
		ProductType: "self-paced",
	})

	assert.True(t, errs.Is(err, errs.ErrPriceNotConfigured))
	assert.Contains(t, err.Error(), "STRIPE_PRICE_ID_SELF_EUR")
}

func TestCreateCheckout_GatewayFailure(t *testing.T) {
	uc, gateway := newCheckoutUseCase(t, nil)
	gateway.EXPECT().LookupPrice(gomock.Any(), "pw_live_eur").Return("price_live", nil)
	gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return("", errors.New("card_declined"))

	_, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
		SuccessURL: "https://kurs.example.com/ok",
		CancelURL:  "https://kurs.example.com/cancel",
	})

	assert.True(t, errs.Is(err, errs.ErrCheckoutFailed))
}

func TestCreateCheckout_DevFallback(t *testing.T) {
	uc, _ := newCheckoutUseCase(t, func(c *config.Config) {
		c.App.Env = "development"
		c.App.DevMode = true
	})

	out, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
		SuccessURL:  "http://localhost:3000/checkout/success",
		CancelURL:   "http://localhost:3000/",
		ProductType: "self-paced",
	})

	require.NoError(t, err)
	assert.True(t, out.DevMode)
	assert.Equal(t, "http://localhost:3000/checkout/success?product=self-paced&session_id=dev_1700000000123", out.URL)
}

func TestCreateCheckout_DevModeIgnoredInProduction(t *testing.T) {
	uc, gateway := newCheckoutUseCase(t, func(c *config.Config) {
		c.App.Env = "production"
		c.App.DevMode = true
	})
	gateway.EXPECT().LookupPrice(gomock.Any(), "pw_live_eur").Return("price_live", nil)
	gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return("https://checkout.stripe.com/c/pay/cs_4", nil)

	out, err := uc.CreateCheckout(context.Background(), commands.CreateCheckoutInput{
		SuccessURL: "https://kurs.example.com/ok",
		CancelURL:  "https://kurs.example.com/cancel",
	})

	require.NoError(t, err)
	assert.False(t, out.DevMode)
}
