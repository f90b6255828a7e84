package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/oauthstate"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

var (
	ErrOAuthNotConfigured = errors.New("reddit api credentials not configured")
	ErrMissingCode        = errors.New("authorization code is required")
	ErrInvalidState       = errors.New("invalid or expired oauth state")
	ErrTokenExchange      = errors.New("failed to authenticate with reddit")
	ErrNoRefreshToken     = errors.New("no refresh token available")
)

var redditScopes = []string{"identity", "read", "submit"}

type RedditOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthorizeURL string
	TokenURL     string
	UserAgent    string
	Timeout      time.Duration
	StateTTL     time.Duration
}

// RedditOAuth runs the authorization-code flow and owns the stored tokens.
type RedditOAuth struct {
	users    repository.UserRepository
	states   oauthstate.Store
	conf     *oauth2.Config
	client   *http.Client
	stateTTL time.Duration
}

func NewRedditOAuth(users repository.UserRepository, states oauthstate.Store, cfg RedditOAuthConfig) *RedditOAuth {
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 10 * time.Minute
	}

	return &RedditOAuth{
		users:  users,
		states: states,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       redditScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &userAgentTransport{userAgent: cfg.UserAgent, next: http.DefaultTransport},
		},
		stateTTL: cfg.StateTTL,
	}
}

// userAgentTransport sets the User-Agent Reddit requires on token calls.
type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}

func (o *RedditOAuth) configured() bool {
	return o.conf.ClientID != "" && o.conf.ClientSecret != "" && o.conf.RedirectURL != ""
}

func (o *RedditOAuth) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, o.client)
}

// AuthURL issues a state bound to userID and returns the authorization URL.
func (o *RedditOAuth) AuthURL(ctx context.Context, userID uuid.UUID) (string, string, error) {
	if !o.configured() {
		return "", "", ErrOAuthNotConfigured
	}

	state, err := oauthstate.NewState()
	if err != nil {
		return "", "", err
	}
	if err := o.states.Put(ctx, state, userID.String(), o.stateTTL); err != nil {
		return "", "", err
	}

	url := o.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("duration", "permanent"))
	return url, state, nil
}

// Callback consumes state and exchanges code for a token. Nothing is stored
// unless the whole exchange succeeds.
func (o *RedditOAuth) Callback(ctx context.Context, userID uuid.UUID, code, state string) error {
	if !o.configured() {
		return ErrOAuthNotConfigured
	}
	if code == "" {
		return ErrMissingCode
	}
	if state == "" {
		return ErrInvalidState
	}

	owner, err := o.states.Consume(ctx, state)
	if err != nil {
		if errors.Is(err, oauthstate.ErrStateNotFound) {
			return ErrInvalidState
		}
		return err
	}
	if owner != userID.String() {
		slog.Warn("oauth state used by another user", "user_id", userID.String(), "owner", owner)
		return ErrInvalidState
	}

	token, err := o.conf.Exchange(o.httpContext(ctx), code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}

	return o.store(ctx, userID, token)
}

// Refresh trades the stored refresh token for a new access token.
func (o *RedditOAuth) Refresh(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := o.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := o.refresh(ctx, user); err != nil {
		return nil, err
	}
	return o.users.FindByID(ctx, userID)
}

func (o *RedditOAuth) refresh(ctx context.Context, user *models.User) (*oauth2.Token, error) {
	if !o.configured() {
		return nil, ErrOAuthNotConfigured
	}
	if user.RedditRefreshToken == nil || *user.RedditRefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	source := o.conf.TokenSource(o.httpContext(ctx), &oauth2.Token{RefreshToken: *user.RedditRefreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	if err := o.store(ctx, user.ID, token); err != nil {
		return nil, err
	}
	return token, nil
}

// AccessToken returns the user's usable access token, refreshing it first
// when it has expired. It returns "" when the user is not connected.
func (o *RedditOAuth) AccessToken(ctx context.Context, user *models.User) (string, error) {
	if !user.RedditConnected() {
		return "", nil
	}

	expired := user.RedditTokenExpiry != nil && !user.RedditTokenExpiry.After(time.Now())
	if !expired || user.RedditRefreshToken == nil {
		return *user.RedditAccessToken, nil
	}

	token, err := o.refresh(ctx, user)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (o *RedditOAuth) Disconnect(ctx context.Context, userID uuid.UUID) error {
	return o.users.SetRedditToken(ctx, userID, nil)
}

func (o *RedditOAuth) store(ctx context.Context, userID uuid.UUID, token *oauth2.Token) error {
	return o.users.SetRedditToken(ctx, userID, &repository.RedditToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	})
}
