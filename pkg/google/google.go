// Package google wraps the Google OAuth2 code exchange and userinfo lookup
// used by the admin login flow.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the subset of the Google userinfo response the app keeps.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchanger exchanges an authorization code for the caller's profile and
// serialized token bundle. Declared as an interface so services can be
// tested without the network.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*Profile, string, error)
}

type Client struct {
	conf *oauth2.Config
}

func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Exchange trades the authorization code for tokens and fetches the user's
// profile. The returned string is the serialized token bundle for storage.
func (c *Client) Exchange(ctx context.Context, code string) (*Profile, string, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	resp, err := c.conf.Client(ctx, tok).Get(userinfoURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, body)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, "", fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if profile.ID == "" {
		return nil, "", fmt.Errorf("userinfo response missing id")
	}

	bundle, err := json.Marshal(tok)
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize token bundle: %w", err)
	}

	return &profile, string(bundle), nil
}
