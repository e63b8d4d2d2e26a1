// Package seed registers the predefined club admin accounts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/internal/service"
)

// Clubs are the campus clubs provisioned on a fresh deployment.
var Clubs = []dto.RegisterClubRequest{
	{Username: "IEEESBOUCE", Password: "ieeesbouce", ClubName: "IEEE SB OUCE", Email: "ieeesb@ouce.in"},
	{Username: "EMCC", Password: "emccouce", ClubName: "EMCC", Email: "emcc@ouce.in"},
	{Username: "CISC", Password: "ciscouce", ClubName: "CISC", Email: "cisc@ouce.in"},
	{Username: "IETE", Password: "ieteouce", ClubName: "IETE", Email: "iete@ouce.in"},
	{Username: "Photography", Password: "photography", ClubName: "Photography", Email: "photography@ouce.in"},
	{Username: "NSS", Password: "nssouce", ClubName: "NSS", Email: "nss@ouce.in"},
	{Username: "NCC", Password: "nccouce", ClubName: "NCC", Email: "ncc@ouce.in"},
	{Username: "SAE", Password: "saeouce", ClubName: "SAE", Email: "sae@ouce.in"},
}

// Run registers each club through the auth service, skipping clubs whose
// username or email is taken, then prints the login credentials. It
// returns how many clubs were added.
func Run(ctx context.Context, auth service.AuthService, clubs []dto.RegisterClubRequest, w io.Writer) (int, error) {
	added := 0
	for _, c := range clubs {
		err := auth.RegisterClub(ctx, c)
		switch {
		case errors.Is(err, domain.ErrConflict):
			fmt.Fprintf(w, "Club %s already exists, skipping...\n", c.ClubName)
		case err != nil:
			return added, fmt.Errorf("register %s: %w", c.Username, err)
		default:
			added++
			fmt.Fprintf(w, "Added: %s (%s/%s)\n", c.ClubName, c.Username, c.Password)
		}
	}

	fmt.Fprintln(w, "\nLogin credentials:")
	for _, c := range clubs {
		fmt.Fprintf(w, "%s: %s / %s\n", c.ClubName, c.Username, c.Password)
	}
	return added, nil
}
