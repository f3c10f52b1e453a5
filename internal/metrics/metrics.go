package metrics

import (
	"context"
	"sync"

	"github.com/valenn0101/koywe-challenge/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var (
	// Auth counters
	RegistrationsTotal  *telemetry.Counter
	LoginsTotal         *telemetry.Counter
	LoginFailuresTotal  *telemetry.Counter
	TokenRefreshesTotal *telemetry.Counter

	// Quote counters
	QuotesCreatedTotal      *telemetry.Counter
	RateLookupFailuresTotal *telemetry.Counter

	initOnce sync.Once
	initErr  error
)

// Init initializes all application metrics
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	RegistrationsTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "auth_registrations_total",
		Description: "Total number of users registered",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	LoginsTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "auth_logins_total",
		Description: "Total number of successful logins",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	LoginFailuresTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "auth_login_failures_total",
		Description: "Total number of failed login attempts",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	TokenRefreshesTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "auth_token_refreshes_total",
		Description: "Total number of successful token refreshes",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	QuotesCreatedTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "quotes_created_total",
		Description: "Total number of quotes created",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	RateLookupFailuresTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "rate_lookup_failures_total",
		Description: "Total number of failed exchange rate lookups",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	return nil
}

// RecordRegistration records a user registration metric
func RecordRegistration(ctx context.Context) {
	if RegistrationsTotal != nil {
		RegistrationsTotal.Inc(ctx)
	}
}

// RecordLogin records a successful login metric
func RecordLogin(ctx context.Context) {
	if LoginsTotal != nil {
		LoginsTotal.Inc(ctx)
	}
}

// RecordLoginFailure records a failed login attempt by reason
func RecordLoginFailure(ctx context.Context, reason string) {
	if LoginFailuresTotal != nil {
		LoginFailuresTotal.Inc(ctx,
			attribute.String("reason", reason),
		)
	}
}

// RecordRefresh records a successful token refresh metric
func RecordRefresh(ctx context.Context) {
	if TokenRefreshesTotal != nil {
		TokenRefreshesTotal.Inc(ctx)
	}
}

// RecordQuoteCreated records a quote creation by currency pair
func RecordQuoteCreated(ctx context.Context, from, to string) {
	if QuotesCreatedTotal != nil {
		QuotesCreatedTotal.Inc(ctx,
			attribute.String("from", from),
			attribute.String("to", to),
		)
	}
}

// RecordRateLookupFailure records a failed exchange rate lookup
func RecordRateLookupFailure(ctx context.Context, from, to string) {
	if RateLookupFailuresTotal != nil {
		RateLookupFailuresTotal.Inc(ctx,
			attribute.String("from", from),
			attribute.String("to", to),
		)
	}
}
