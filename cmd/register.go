package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type registerCmd struct {
	username string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new user account" }
func (*registerCmd) Usage() string {
	return `vt register -u <username> -p <password>

  Creates a user account. Usernames are unique and passwords must be at
  least 4 characters long.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username")
	f.StringVar(&c.password, "p", "", "password")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "both -u and -p must be provided")
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	user, err := a.users.Register(c.username, c.password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error registering %q: %v\n", c.username, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("User %q registered with id %d. Now run `vt login`.\n", user.Username, user.UserID)
	return subcommands.ExitSuccess
}
