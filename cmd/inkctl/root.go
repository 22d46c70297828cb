package main

import (
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// dbOpener returns a database and the function that releases it.
type dbOpener func() (*gorm.DB, func(), error)

// app holds the services shared by every subcommand. They are built on first
// use so commands that never touch the database, like feed, need no config.
type app struct {
	open       dbOpener
	db         *gorm.DB
	release    func()
	users      *service.UserService
	categories *service.CategoryService
}

func (a *app) init() error {
	if a.db != nil {
		return nil
	}
	db, release, err := a.open()
	if err != nil {
		return err
	}
	a.db, a.release = db, release
	a.users = service.NewUserService(repository.NewUserRepository(db), repository.NewPostRepository(db))
	a.categories = service.NewCategoryService(repository.NewCategoryRepository(db))
	return nil
}

func (a *app) close() {
	if a.release != nil {
		a.release()
	}
}

func openDatabase() (*gorm.DB, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, func() { _ = database.Close(db) }, nil
}

func newRootCommand(open dbOpener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:          "inkctl",
		Short:        "Administer an Inkwell deployment",
		SilenceUsage: true,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}

	root.AddCommand(newCategoryCommand(a))
	root.AddCommand(newUserCommand(a))
	root.AddCommand(newFeedCommand())
	return root
}

// withServices wraps a RunE so the services are ready before it runs.
func withServices(a *app, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.init(); err != nil {
			return err
		}
		return run(cmd, args)
	}
}
