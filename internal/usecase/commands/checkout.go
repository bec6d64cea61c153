package commands

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"course-checkout/internal/domain/product"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

// Origins accepted besides the configured site; local frontends during development.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:3001",
}

const localTestSuffix = ".local.test"

type CreateCheckoutInput struct {
	SuccessURL  string
	CancelURL   string
	ProductType string
}

type CheckoutOutput struct {
	URL     string
	Product product.Course
	DevMode bool
}

type CheckoutCommands interface {
	CreateCheckout(ctx context.Context, in CreateCheckoutInput) (*CheckoutOutput, error)
}

type checkoutUseCaseImpl struct {
	gateway        shared.CheckoutGateway
	clock          clock.Clock
	logger         *slog.Logger
	stripe         config.StripeConfig
	allowedOrigins map[string]struct{}
	devFallback    bool
}

func NewCheckoutUseCase(gateway shared.CheckoutGateway, clk clock.Clock, logger *slog.Logger, cfg config.Config) CheckoutCommands {
	allowed := make(map[string]struct{}, len(devOrigins)+2)
	for _, o := range devOrigins {
		allowed[o] = struct{}{}
	}
	for _, site := range []string{cfg.App.SiteURL, cfg.App.PublicSiteURL} {
		if o := siteOrigin(site); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return &checkoutUseCaseImpl{
		gateway:        gateway,
		clock:          clk,
		logger:         logger,
		stripe:         cfg.Stripe,
		allowedOrigins: allowed,
		devFallback:    !cfg.App.IsProduction() && cfg.App.DevMode,
	}
}

func (uc *checkoutUseCaseImpl) CreateCheckout(ctx context.Context, in CreateCheckoutInput) (*CheckoutOutput, error) {
	success, err := parseAbsolute(in.SuccessURL)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "successUrl"), errs.ErrValidation)
	}
	cancel, err := parseAbsolute(in.CancelURL)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "cancelUrl"), errs.ErrValidation)
	}

	course, err := product.Parse(strings.TrimSpace(in.ProductType))
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "productType %q", in.ProductType), errs.ErrValidation)
	}

	if !uc.isAllowed(success) || !uc.isAllowed(cancel) {
		uc.logger.WarnContext(ctx, "Checkout redirect rejected",
			"success_origin", origin(success),
			"cancel_origin", origin(cancel),
		)
		return nil, errs.ErrRedirectNotAllowed
	}

	if uc.devFallback {
		return &CheckoutOutput{URL: uc.devSuccessURL(success, course), Product: course, DevMode: true}, nil
	}

	priceID, err := uc.resolvePrice(ctx, course)
	if err != nil {
		return nil, err
	}

	sessionURL, err := uc.gateway.CreateSession(ctx, shared.CheckoutParams{
		PriceID:    priceID,
		SuccessURL: success.String(),
		CancelURL:  cancel.String(),
		Product:    course,
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "Checkout session creation failed", "product", course, "error", err)
		return nil, errs.Mark(errs.Wrap(err, "failed to create checkout session"), errs.ErrCheckoutFailed)
	}

	return &CheckoutOutput{URL: sessionURL, Product: course}, nil
}

// resolvePrice prefers the active price behind the product's lookup key and
// falls back to the price id configured for it.
func (uc *checkoutUseCaseImpl) resolvePrice(ctx context.Context, course product.Course) (string, error) {
	lookupKey, fallback, envName := uc.stripe.LookupKeyLive, uc.stripe.LivePriceFallback(), "STRIPE_PRICE_ID_LIVE_EUR"
	if course == product.CourseSelfPaced {
		lookupKey, fallback, envName = uc.stripe.LookupKeySelf, uc.stripe.PriceIDSelf, "STRIPE_PRICE_ID_SELF_EUR"
	}

	if lookupKey != "" {
		priceID, err := uc.gateway.LookupPrice(ctx, lookupKey)
		if err != nil {
			uc.logger.WarnContext(ctx, "Price lookup failed, using configured price", "lookup_key", lookupKey, "error", err)
		} else if priceID != "" {
			return priceID, nil
		}
	}

	if fallback == "" {
		return "", errs.Mark(
			errs.Newf("no price for %s: lookup key %q has no active price and %s is not set", course, lookupKey, envName),
			errs.ErrPriceNotConfigured,
		)
	}
	return fallback, nil
}

func (uc *checkoutUseCaseImpl) devSuccessURL(success *url.URL, course product.Course) string {
	u := *success
	q := u.Query()
	q.Set("session_id", "dev_"+strconv.FormatInt(uc.clock.Now().UnixMilli(), 10))
	q.Set("product", course.String())
	u.RawQuery = q.Encode()
	return u.String()
}

func (uc *checkoutUseCaseImpl) isAllowed(u *url.URL) bool {
	if _, ok := uc.allowedOrigins[origin(u)]; ok {
		return true
	}
	return u.Scheme == "http" && strings.HasSuffix(u.Hostname(), localTestSuffix)
}

func parseAbsolute(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errs.New("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errs.Wrap(err, "is not a valid url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errs.Newf("must be an absolute http(s) url, got %q", raw)
	}
	return u, nil
}

// origin drops the scheme's default port so https://host:443 equals https://host.
func origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if port := u.Port(); (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		host = strings.TrimSuffix(host, ":"+port)
	}
	return scheme + "://" + host
}

// siteOrigin accepts a configured site as full URL or bare host; bare hosts are https.
func siteOrigin(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return ""
	}
	return origin(u)
}
