package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mrlokans/bookexchange/internal/config"
	"github.com/mrlokans/bookexchange/internal/database/migrations"
)

// MigrateCommand applies, rolls back or reports schema migrations for the
// configured database.
type MigrateCommand struct {
	Action string
	Steps  int

	cfg config.Database
	out io.Writer
}

// NewMigrateCommand creates a MigrateCommand bound to the given database settings.
func NewMigrateCommand(cfg config.Database) *MigrateCommand {
	return &MigrateCommand{cfg: cfg, out: os.Stdout}
}

// ParseFlags parses `migrate [-dsn ...] up|down [N]|version`.
func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)

	var driver string
	fs.StringVar(&driver, "driver", string(cmd.cfg.Driver), "Database driver: sqlite, postgres or mysql")
	fs.StringVar(&cmd.cfg.DSN, "dsn", cmd.cfg.DSN, "Database connection string")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options] <up|down [N]|version>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Manage the catalog schema.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s migrate up\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s migrate down 1\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s migrate -driver postgres -dsn postgres://localhost/books version\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.cfg.Driver = config.Driver(driver)
	cmd.Steps = 0

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing migrate action")
	}
	cmd.Action = rest[0]

	switch cmd.Action {
	case "up", "version":
		if len(rest) > 1 {
			return fmt.Errorf("%s takes no arguments", cmd.Action)
		}
	case "down":
		cmd.Steps = 1
		if len(rest) > 1 {
			n, err := strconv.Atoi(rest[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", rest[1])
			}
			cmd.Steps = n
		}
	default:
		return fmt.Errorf("unknown migrate action %q", cmd.Action)
	}
	return nil
}

// Run executes the parsed action.
func (cmd *MigrateCommand) Run() error {
	switch cmd.Action {
	case "up":
		if err := migrations.Up(cmd.cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.out, "Schema is up to date")
	case "down":
		if err := migrations.Down(cmd.cfg, cmd.Steps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.out, "Rolled back %d migration(s)\n", cmd.Steps)
	case "version":
		version, dirty, err := migrations.Version(cmd.cfg)
		if err != nil {
			return err
		}
		if dirty {
			fmt.Fprintf(cmd.out, "%d (dirty)\n", version)
		} else {
			fmt.Fprintf(cmd.out, "%d\n", version)
		}
	default:
		return fmt.Errorf("unknown migrate action %q", cmd.Action)
	}
	return nil
}
