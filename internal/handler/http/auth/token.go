package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"amal-cms/internal/handler/http/requestid"
	authservice "amal-cms/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// tokenTTL bounds an editor session. Content edits are short sessions, so
// an hour keeps stolen tokens from living long.
const tokenTTL = time.Hour

// TokenHandler authenticates an editor and issues an HS256 JWT carrying the
// email and role claims. Failure responses are uniform 401s; the specific
// reason only goes to the log.
func TokenHandler(authService *authservice.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		logger.Info("authentication attempt started")

		fail := func(status int, msg, reason, role string) {
			logger.Warn("authentication failed",
				slog.String("reason", reason),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest(role, "failure")
			RecordAuthDuration(role, time.Since(start).Seconds())
			http.Error(w, msg, status)
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(http.StatusBadRequest, "invalid request", "invalid_request", "unknown")
			return
		}

		creds := authservice.Credentials{Username: req.Email, Password: req.Password}
		if err := authService.ValidateCredentials(r.Context(), creds); err != nil {
			fail(http.StatusUnauthorized, "unauthorized", "invalid_credentials", "unknown")
			return
		}

		role, err := authService.GetProvider().IdentifyUser(r.Context(), req.Email)
		if err != nil {
			fail(http.StatusUnauthorized, "unauthorized", "role_identification_failed", "unknown")
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  req.Email,
			"role": role,
			"exp":  time.Now().Add(tokenTTL).Unix(),
		})

		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest(role, "failure")
			RecordAuthDuration(role, time.Since(start).Seconds())
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("user_email", req.Email),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(role, "success")
		RecordAuthDuration(role, time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response", slog.String("error", err.Error()))
		}
	}
}
