package sankaku

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/models"
)

// Credentials are the inputs to Login. Either Login and Password, or AccessToken,
// must be set; when both are present the password login is used.
type Credentials struct {
	Login       string
	Password    string
	AccessToken string
}

// Session is the immutable result of a successful login
type Session struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Profile      models.ExtendedUser
}

// Authorization returns the value of the Authorization header
func (s *Session) Authorization() string {
	return s.TokenType + " " + s.AccessToken
}

// loginResponse is the body returned by the token endpoint
type loginResponse struct {
	AccessToken  string          `json:"access_token" validate:"required"`
	TokenType    string          `json:"token_type"`
	RefreshToken string          `json:"refresh_token"`
	CurrentUser  json.RawMessage `json:"current_user" validate:"required"`
}

// Login authenticates the client and replaces its session
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var (
		s   *Session
		err error
	)

	switch {
	case creds.Login != "" && creds.Password != "":
		s, err = c.loginWithPassword(ctx, creds.Login, creds.Password)
	case creds.AccessToken != "" && creds.Login == "" && creds.Password == "":
		s, err = c.loginWithToken(ctx, creds.AccessToken)
	default:
		return apierr.ErrInvalidLogin
	}
	if err != nil {
		return err
	}

	c.session.Store(s)
	c.logger.Info().
		Str("user", s.Profile.Name).
		Msg("Successfully logged in")

	return nil
}

// Session returns the current session, or nil when browsing anonymously
func (c *Client) Session() *Session {
	return c.session.Load()
}

// Profile returns the profile of the logged-in user, or nil
func (c *Client) Profile() *models.ExtendedUser {
	s := c.session.Load()
	if s == nil {
		return nil
	}
	profile := s.Profile
	return &profile
}

// requireSession returns the session or ErrLoginRequired
func (c *Client) requireSession() (*Session, error) {
	s := c.session.Load()
	if s == nil {
		return nil, apierr.ErrLoginRequired
	}
	return s, nil
}

func (c *Client) loginWithPassword(ctx context.Context, login, password string) (*Session, error) {
	header := http.Header{"Referer": {c.loginURL}}
	body := map[string]string{"login": login, "password": password}

	resp, err := c.transport.Post(ctx, c.loginURL+"/auth/token", body, header)
	if err != nil {
		return nil, asAuthorizationError(err)
	}
	if !resp.OK {
		return nil, &apierr.AuthorizationError{Status: resp.Status, Payload: resp.JSON}
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.JSON, &lr); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if err := models.Validate(&lr); err != nil {
		return nil, &apierr.AuthorizationError{Status: resp.Status, Payload: resp.JSON}
	}
	if lr.TokenType == "" {
		lr.TokenType = DefaultTokenType
	}

	profile, err := models.Decode[models.ExtendedUser](lr.CurrentUser, c.opts.strict)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &Session{
		AccessToken:  lr.AccessToken,
		TokenType:    lr.TokenType,
		RefreshToken: lr.RefreshToken,
		Profile:      profile,
	}, nil
}

// loginWithToken validates the token by fetching the profile it belongs to
func (c *Client) loginWithToken(ctx context.Context, token string) (*Session, error) {
	s := &Session{AccessToken: token, TokenType: DefaultTokenType}
	header := http.Header{"Authorization": {s.Authorization()}}

	resp, err := c.transport.Get(ctx, c.apiURL+"/users/me", nil, header)
	if err != nil {
		return nil, asAuthorizationError(err)
	}
	if !resp.OK {
		return nil, &apierr.AuthorizationError{Status: resp.Status, Payload: resp.JSON}
	}

	user := gjson.GetBytes(resp.JSON, "user")
	if !user.Exists() {
		return nil, &apierr.AuthorizationError{Status: resp.Status, Payload: resp.JSON}
	}

	profile, err := models.Decode[models.ExtendedUser]([]byte(user.Raw), c.opts.strict)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	s.Profile = profile

	return s, nil
}

// asAuthorizationError re-signals a server error raised during login
func asAuthorizationError(err error) error {
	var se *apierr.ServerError
	if errors.As(err, &se) {
		return &apierr.AuthorizationError{Status: se.Status, Payload: se.Payload}
	}
	return err
}
