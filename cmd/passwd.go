package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type passwdCmd struct {
	oldPassword string
	newPassword string
}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the password of the logged-in user" }
func (*passwdCmd) Usage() string {
	return `vt passwd -old <password> -new <password>
`
}

func (c *passwdCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.oldPassword, "old", "", "current password")
	f.StringVar(&c.newPassword, "new", "", "new password")
}

func (c *passwdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.oldPassword == "" || c.newPassword == "" {
		fmt.Fprintln(os.Stderr, "both -old and -new must be provided")
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sess, err := a.session()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := a.users.ChangePassword(sess.Username, c.oldPassword, c.newPassword); err != nil {
		fmt.Fprintf(os.Stderr, "Error changing password: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Password changed.")
	return subcommands.ExitSuccess
}
