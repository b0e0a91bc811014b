package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user and role read from the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := board.Session

		if jsonOutput {
			return printJSON(map[string]any{
				"userId":    s.UserID,
				"email":     s.Email,
				"name":      s.Name,
				"role":      s.Role.String(),
				"resources": board.Names(),
			})
		}

		if s.UserID == "" && s.Email == "" {
			fmt.Printf("no token, acting as %s\n", s.Role)
		} else {
			fmt.Printf("%s <%s> (%s)\n", s.Name, s.Email, s.Role)
		}

		fmt.Printf("api: %s\n", board.API.BaseURL())
		fmt.Printf("resources: %v\n", board.Names())

		return nil
	},
}
