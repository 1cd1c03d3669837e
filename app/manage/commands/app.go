// Package commands 实现运维命令行的各个子命令，直接操作数据库而不经过 HTTP 服务。
package commands

import (
	"bufio"
	"io"
	"os"

	"post-board/app/server/handlers"
	"post-board/app/server/permission"
	"post-board/app/server/repository"

	"go.uber.org/zap"
	"golang.org/x/term"
	"gorm.io/gorm"
)

type App struct {
	l     *zap.Logger
	users *repository.Users
	perm  *permission.Evaluator
	valid *handlers.Validator

	in       *bufio.Reader
	out      io.Writer
	terminal int // 交互终端的 fd ，不是终端时为 -1
}

func NewApp(l *zap.Logger, db *gorm.DB, in io.Reader, out io.Writer) *App {
	terminal := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		terminal = int(f.Fd())
	}

	users := repository.NewUsers(db)
	return &App{
		l:     l,
		users: users,
		perm:  permission.NewEvaluator(users),
		valid: handlers.NewValidator(),
		in:    bufio.NewReader(in),
		out:   out,

		terminal: terminal,
	}
}
