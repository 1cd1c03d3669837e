package commands

import (
	"context"

	"github.com/jessevdk/go-flags"
)

// Opener 在子命令真正执行时才建立数据库连接，这样 --help 不需要配置
type Opener func() (*App, error)

type createUserCommand struct {
	Username    string   `long:"username" required:"true" description:"Login name"`
	Name        string   `long:"name" description:"Display name, defaults to the username"`
	Permissions []string `long:"permission" choice:"ADMIN" choice:"EDITOR" choice:"AUTHOR" description:"Permission to grant, may be repeated"`

	open Opener
}

func (c *createUserCommand) Execute([]string) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	_, err = a.CreateUser(context.Background(), c.Username, c.Name, c.Permissions)
	return err
}

type grantCommand struct {
	ID          uint     `long:"id" required:"true" description:"Target user id"`
	Permissions []string `long:"permission" choice:"ADMIN" choice:"EDITOR" choice:"AUTHOR" description:"Permission to grant, may be repeated"`
	Mode        string   `long:"mode" required:"true" choice:"replace" choice:"add" description:"Replace the whole set or add to it"`

	open Opener
}

func (c *grantCommand) Execute([]string) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	_, err = a.Grant(context.Background(), c.ID, c.Permissions, c.Mode)
	return err
}

type resetPasswordCommand struct {
	ID uint `long:"id" required:"true" description:"Target user id"`

	open Opener
}

func (c *resetPasswordCommand) Execute([]string) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	return a.ResetPassword(context.Background(), c.ID)
}

func Register(p *flags.Parser, open Opener) error {
	cmds := []struct {
		name  string
		short string
		long  string
		data  any
	}{
		{"create-user", "Create a user", "Create a user, the password is read from the terminal or one line of stdin", &createUserCommand{open: open}},
		{"grant", "Change user permissions", "Replace or extend the permission set of a user", &grantCommand{open: open}},
		{"reset-password", "Reset a user password", "Set a new password for a user without the old one", &resetPasswordCommand{open: open}},
	}

	for _, c := range cmds {
		if _, err := p.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return err
		}
	}
	return nil
}
