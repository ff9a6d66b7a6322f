// Package main is a CLI tool for minting bearer tokens for the Pulse API.
// Tokens use the dev signing key by default and will NOT work against a
// production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"pulse/internal/jwtauth"
	"pulse/pkg/domain"
)

// Dev signing key, matches config.go when PULSE_JWT_SIGNING_KEY is not set.
const devSigningKey = "dev-secret-key-change-in-production"

type tokenOutput struct {
	Token     string `json:"token"`
	Identity  string `json:"identity"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	identityFlag := flag.String("identity", "", "Identity to bind the token to. Generated if empty.")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token time-to-live")
	signingKey := flag.String("signing-key", devSigningKey, "JWT signing key")
	asJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	identityValue := *identityFlag
	if identityValue == "" {
		identityValue = "user_" + uuid.NewString()
	}
	identity, err := domain.ParseIdentity(identityValue)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid identity:", err)
		os.Exit(1)
	}

	svc, err := jwtauth.New(*signingKey, "pulse", *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize token service:", err)
		os.Exit(1)
	}
	token, err := svc.Generate(identity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to generate token:", err)
		os.Exit(1)
	}

	if *asJSON {
		out := tokenOutput{
			Token:     token,
			Identity:  identity.String(),
			ExpiresIn: ttl.String(),
			Usage:     fmt.Sprintf("curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/reputation", token),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Println("identity:", identity.String())
	fmt.Println("token:   ", token)
}
