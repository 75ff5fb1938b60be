// Command controltoken prints a control token for PUT /api/settings, signed
// with CONTROL_SECRET. The lifetime defaults to CONTROL_TOKEN_EXPIRATION_HOURS.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"orrery-server/internal/auth"
	"orrery-server/internal/shared/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "controltoken:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.GlobalConfig

	flags := flag.NewFlagSet("controltoken", flag.ContinueOnError)
	subject := flags.String("subject", "operator", "token subject")
	ttl := flags.Duration("ttl", cfg.Auth.TokenExpiration, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return err
	}

	token, err := auth.GenerateControlToken(cfg.Auth.ControlSecret, *subject, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
