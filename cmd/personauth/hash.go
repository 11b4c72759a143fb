package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	bcryptadapter "github.com/ericfisherdev/personauth/internal/adapter/driven/bcrypt"
)

// NewHashPasswordCmd creates the hash-password subcommand. Its output is the
// value expected in the password field of POST /person, which stores
// passwords without hashing them.
func NewHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Long: `Print the bcrypt hash of a password using the configured cost. The password
is read from the first line of standard input when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHashPassword,
	}
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			password = strings.TrimRight(scanner.Text(), "\r")
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password is empty")
	}

	hash, err := bcryptadapter.NewHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
