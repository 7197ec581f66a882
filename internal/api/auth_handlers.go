package api

import (
	"crypto/subtle"
	"encoding/json/v2"
	"net/http"

	"github.com/cardvault/cardvault-server/internal/auth"
	"github.com/cardvault/cardvault-server/internal/http/response"
)

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// handleLogin authenticates the admin account and issues an access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if req.Username == "" || req.Password == "" {
		response.BadRequest(w, "Username and password are required", s.logger)
		return
	}

	// Verify the password even when the username is wrong so both failure
	// modes take comparable time.
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Auth.AdminUser)) == 1
	passwordOK, err := auth.VerifyPassword(s.adminHash, req.Password)
	if err != nil || !usernameOK || !passwordOK {
		s.logger.Warn("Failed login attempt", "ip", getClientIP(r))
		response.Unauthorized(w, "Invalid credentials", s.logger)
		return
	}

	token, err := s.tokenService.GenerateAccessToken(req.Username)
	if err != nil {
		s.logger.Error("Failed to generate access token", "error", err)
		response.InternalError(w, "Failed to generate token", s.logger)
		return
	}

	response.Success(w, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, s.logger)
}
