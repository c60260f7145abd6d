// Command ironseal seals and unseals stateless session tokens from the
// command line, for pre-issuing cookies, migration tooling, and debugging.
//
// The sealing password comes from --password, or from the SESSION_PASSWORD
// environment variable (a .env file in the working directory is loaded when
// present). Retired rotation passwords may be supplied with --previous to
// unseal cookies issued before a rotation.
//
// Usage:
//
//	ironseal genpassword
//	ironseal seal '{"user":"alice"}' --ttl 24h
//	ironseal unseal '2.$sealed$v=2$...' --previous "$OLD_PASSWORD"
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riceharvest/ironsession"
	"github.com/riceharvest/ironsession/keyring"
)

var (
	flagPassword string
	flagPrevious []string
	flagTTL      time.Duration
)

func main() {
	// Missing .env is fine; the flag and environment still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "ironseal",
		Short:         "Seal and unseal stateless session tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "sealing password (defaults to SESSION_PASSWORD)")
	rootCmd.PersistentFlags().StringSliceVar(&flagPrevious, "previous", nil, "retired rotation passwords, oldest first")
	rootCmd.PersistentFlags().DurationVar(&flagTTL, "ttl", ironsession.DefaultTTL, "session ttl; 0 means no expiry")

	rootCmd.AddCommand(
		sealCmd(),
		unsealCmd(),
		genPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func sealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal [json]",
		Short: "Seal a JSON data mapping into a token",
		Long: `Seal a JSON object into a session token using the configured password.
The object is read from the argument, or from stdin when no argument is
given. The resulting token is printed to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := argOrStdin(args)
			if err != nil {
				return err
			}

			var data map[string]any
			if err := json.Unmarshal([]byte(input), &data); err != nil {
				return fmt.Errorf("input must be a JSON object: %w", err)
			}

			cfg, err := sealConfig()
			if err != nil {
				return err
			}

			token, err := ironsession.SealData(data, cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func unsealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unseal [token]",
		Short: "Unseal a token back into its JSON data mapping",
		Long: `Unseal a session token and print its data mapping as JSON. The decode
classification (ok, legacy, invalid, expired) is printed to stderr; degraded
tokens exit non-zero so scripts can tell a blank result from a valid one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := argOrStdin(args)
			if err != nil {
				return err
			}

			cfg, err := sealConfig()
			if err != nil {
				return err
			}

			data, status, err := ironsession.UnsealDataStatus(input, cfg)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			fmt.Fprintln(cmd.ErrOrStderr(), "status:", status)

			switch status {
			case ironsession.StatusOK, ironsession.StatusLegacy:
				return nil
			default:
				return fmt.Errorf("token did not decode cleanly (%s)", status)
			}
		},
	}
}

func genPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genpassword",
		Short: "Generate a random sealing password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 32 random bytes, printed as 43 base64url characters — above the
			// 32-byte minimum with headroom.
			raw := make([]byte, 32)
			if _, err := rand.Read(raw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64.RawURLEncoding.EncodeToString(raw))
			return nil
		},
	}
}

func sealConfig() (ironsession.SealConfig, error) {
	password := flagPassword
	if password == "" {
		password = os.Getenv("SESSION_PASSWORD")
	}
	if password == "" {
		return ironsession.SealConfig{}, errors.New("no password: set --password or SESSION_PASSWORD")
	}

	return ironsession.SealConfig{
		Password: buildSecret(password, flagPrevious),
		TTL:      flagTTL,
	}, nil
}

// buildSecret assigns rotation ids oldest-first so the current password gets
// the highest id and is used for sealing.
func buildSecret(current string, previous []string) keyring.Secret {
	if len(previous) == 0 {
		return keyring.FromString(current)
	}
	rotation := make(map[int]string, len(previous)+1)
	for i, p := range previous {
		rotation[i+1] = p
	}
	rotation[len(previous)+1] = current
	return keyring.FromMap(rotation)
}

func argOrStdin(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
