// Package clerkapi wraps the Clerk SDK behind the two narrow operations this
// service needs: verifying a session token and fetching a user profile.
package clerkapi

import (
	"context"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
)

// Profile is the subset of a Clerk user mirrored into the local users table.
type Profile struct {
	ClerkUserID string
	Email       string
	FirstName   string
	LastName    string
	Phone       string
}

type Client struct{}

func New(secretKey string) *Client {
	clerk.SetKey(secretKey)

	return &Client{}
}

// VerifySessionToken validates a Clerk session JWT and returns the Clerk
// user id it was issued for.
func (client *Client) VerifySessionToken(ctx context.Context, sessionToken string) (string, error) {
	claims, verifyError := clerkjwt.Verify(ctx, &clerkjwt.VerifyParams{
		Token: sessionToken,
	})

	if verifyError != nil {
		return "", fmt.Errorf("verifying session token: %w", verifyError)
	}

	return claims.RegisteredClaims.Subject, nil
}

func (client *Client) GetProfile(ctx context.Context, clerkUserID string) (Profile, error) {
	clerkUser, getUserError := clerkuser.Get(ctx, clerkUserID)

	if getUserError != nil {
		return Profile{}, fmt.Errorf("fetching clerk user %s: %w", clerkUserID, getUserError)
	}

	profile := Profile{
		ClerkUserID: clerkUser.ID,
	}

	if clerkUser.FirstName != nil {
		profile.FirstName = *clerkUser.FirstName
	}

	if clerkUser.LastName != nil {
		profile.LastName = *clerkUser.LastName
	}

	if len(clerkUser.EmailAddresses) > 0 {
		profile.Email = clerkUser.EmailAddresses[0].EmailAddress
	}

	if len(clerkUser.PhoneNumbers) > 0 {
		profile.Phone = clerkUser.PhoneNumbers[0].PhoneNumber
	}

	return profile, nil
}
