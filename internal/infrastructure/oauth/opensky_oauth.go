package oauth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"flightwatch-service/pkg/logger"
)

const openSkyTokenURL = "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"

// OpenSkyOAuth handles client-credentials authentication with the OpenSky
// network.
type OpenSkyOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewOpenSkyOAuth creates a new OpenSky OAuth handler
func NewOpenSkyOAuth(clientID, clientSecret string, logger logger.Logger) *OpenSkyOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     openSkyTokenURL,
	}

	return &OpenSkyOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a token source for the OpenSky API. Tokens are
// cached and refreshed by the source itself.
func (o *OpenSkyOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}
