package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/avoronin/reading-diary/internal/config"
	"github.com/avoronin/reading-diary/internal/database"
	"github.com/avoronin/reading-diary/internal/database/books"
	"github.com/avoronin/reading-diary/internal/exporters"
)

type ExportCSVCommand struct {
	DatabasePath string
	OutputPath   string
}

func NewExportCSVCommand() *ExportCSVCommand {
	return &ExportCSVCommand{}
}

func (cmd *ExportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.OutputPath, "out", "", "Path of the CSV file to write (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-csv [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export the full book listing to a CSV file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-csv -out ./books.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-csv -db ./my-diary.db -out ./books.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputPath == "" {
		fs.Usage()
		return fmt.Errorf("output path is required")
	}

	return nil
}

func (cmd *ExportCSVCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	exporter := exporters.NewCSVExporter(books.NewRepository(db.DB))
	if err := exporter.Export(cmd.OutputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported books to %s\n", cmd.OutputPath)
	return nil
}
