package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"skillCompare/business/user"
	"skillCompare/domain"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

type seeder interface {
	Seed(ctx context.Context) (SeedReport, error)
}

type adminCreator interface {
	CreateAdmin(ctx context.Context, in user.RegisterInput) (domain.User, error)
}

// commandLine opens its dependencies lazily so migrate can run against an
// empty database.
type commandLine struct {
	out         io.Writer
	newMigrator func() (migrator, error)
	newSeeder   func() (seeder, error)
	newAdmins   func() (adminCreator, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate up|down|version          - manage the database schema")
	fmt.Fprintln(cli.out, "  seed                             - load demo platforms, categories, courses and users")
	fmt.Fprintln(cli.out, "  createadmin -email EMAIL -name N - create or promote an admin, password is prompted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "createadmin":
		return cli.createAdmin(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	m, err := cli.newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "migrations applied")
	case "down":
		if err := m.Down(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "last migration rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "version %d (dirty: %t)\n", version, dirty)
	default:
		return fmt.Errorf("%q: no such command", args[0])
	}

	return nil
}

func (cli *commandLine) seed() error {
	s, err := cli.newSeeder()
	if err != nil {
		return err
	}

	report, err := s.Seed(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "seeded %d platforms, %d categories, %d courses, %d users\n",
		report.Platforms, report.Categories, report.Courses, report.Users)
	return nil
}

func (cli *commandLine) createAdmin(args []string) error {
	cmd := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	email := cmd.String("email", "", "The admin's email. The password will be prompted next.")
	name := cmd.String("name", "Administrator", "The admin's display name.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return errHelp
	}

	admins, err := cli.newAdmins()
	if err != nil {
		return err
	}

	admin, err := admins.CreateAdmin(context.Background(), user.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: string(pwd),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "admin %s ready\n", admin.Email)
	return nil
}
