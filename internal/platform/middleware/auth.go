package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"attrisk/internal/auth"
	"attrisk/internal/auth/lockout"
	authMetrics "attrisk/internal/auth/metrics"
	dErrors "attrisk/pkg/domain-errors"
	"attrisk/pkg/platform/audit"
	"attrisk/pkg/platform/httputil"
	"attrisk/pkg/requestcontext"
)

// RequireCredentials gates a route behind HTTP Basic authentication. Every
// failure mode that originates from the credentials themselves produces the
// same response body, so a caller cannot tell an unknown username from a
// wrong password or a locked identifier. The lockout service and audit
// publisher are optional.
func RequireCredentials(
	verifier auth.Verifier,
	locks *lockout.Service,
	metrics *authMetrics.Metrics,
	auditor *audit.Publisher,
	logger *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)
			clientIP := requestcontext.ClientIP(ctx)

			username, password, ok := r.BasicAuth()
			if !ok {
				logger.WarnContext(ctx, "missing basic auth credentials",
					"request_id", requestID,
				)
				if metrics != nil {
					metrics.IncrementFailures()
				}
				unauthorized(w)
				return
			}

			if locks != nil {
				allowed, err := locks.Allowed(ctx, username, clientIP)
				if err != nil {
					logger.ErrorContext(ctx, "failed to read lockout state",
						"request_id", requestID,
						"error", err.Error(),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication check failed"))
					return
				}
				if !allowed {
					logger.WarnContext(ctx, "authentication attempt while locked out",
						"request_id", requestID,
						"username", username,
					)
					if metrics != nil {
						metrics.IncrementLocked()
					}
					unauthorized(w)
					return
				}
			}

			if err := verifier.Authenticate(ctx, username, password); err != nil {
				if !errors.Is(err, auth.ErrInvalidCredentials) {
					logger.ErrorContext(ctx, "credential verification failed",
						"request_id", requestID,
						"error", err.Error(),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication check failed"))
					return
				}

				logger.WarnContext(ctx, "invalid credentials",
					"request_id", requestID,
					"username", username,
				)
				if metrics != nil {
					metrics.IncrementFailures()
				}
				if auditor != nil {
					auditor.Publish(requestcontext.WithUsername(ctx, username), audit.EventAuthFailed, "basic auth rejected")
				}
				if locks != nil {
					locked, lockErr := locks.RecordFailure(ctx, username, clientIP)
					if lockErr != nil {
						logger.ErrorContext(ctx, "failed to record auth failure",
							"request_id", requestID,
							"error", lockErr.Error(),
						)
					} else if locked {
						if metrics != nil {
							metrics.IncrementLockouts()
						}
						if auditor != nil {
							auditor.Publish(requestcontext.WithUsername(ctx, username), audit.EventAuthLockoutTriggered, "too many failed attempts")
						}
					}
				}
				unauthorized(w)
				return
			}

			if locks != nil {
				if err := locks.Reset(ctx, username, clientIP); err != nil {
					logger.WarnContext(ctx, "failed to clear lockout state",
						"request_id", requestID,
						"error", err.Error(),
					)
				}
			}
			if metrics != nil {
				metrics.IncrementSuccess()
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUsername(ctx, username)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="attrisk"`)
	httputil.WriteError(w, auth.ErrInvalidCredentials)
}
