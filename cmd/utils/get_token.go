package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/clientcredentials"
)

// Fetches an OpenSky access token with the configured client credentials,
// useful for verifying OPENSKY_CLIENT / OPENSKY_SECRET before deploying.
func main() {
	config := &clientcredentials.Config{
		ClientID:     os.Getenv("OPENSKY_CLIENT"),
		ClientSecret: os.Getenv("OPENSKY_SECRET"),
		TokenURL:     "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token",
	}

	token, err := config.Token(context.Background())
	if err != nil {
		log.Fatalf("Failed to obtain token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\n", token.AccessToken)
	fmt.Printf("Expires: %s\n\n", token.Expiry)
}
