package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mythworld/internal/config"
	"mythworld/internal/database"
	"mythworld/internal/logging"
	"mythworld/internal/repository"
	"mythworld/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Delete stored profiles before import (WARNING: destructive)")
	importYes := importCmd.Bool("yes", false, "Skip the confirmation prompt for -clear")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if !cfg.PersistenceEnabled() {
		fmt.Fprintln(os.Stderr, "Error: DB_TYPE=memory has nothing to back up; set DB_TYPE to sqlite, postgres or mysql")
		os.Exit(1)
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		fatal("failed to initialize database", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		fatal("failed to run migrations", err)
	}

	backupService := service.NewBackupService(
		repository.NewProgressRepository(db),
		repository.NewControlsRepository(db),
		cfg.DatabaseType,
	)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput, *importClear, *importYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatal("failed to create output directory", err)
		}
	}

	if err := backupService.Export(outputPath); err != nil {
		fatal("export failed", err)
	}

	if info, err := os.Stat(outputPath); err == nil {
		slog.Info("export written", "path", outputPath, "bytes", info.Size())
	}
}

func handleImport(backupService *service.BackupService, inputPath string, clearFirst, skipPrompt bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fatal("input file does not exist", err)
	}

	if clearFirst && !skipPrompt {
		fmt.Print("WARNING: This will delete all stored profiles. Type 'yes' to confirm: ")
		confirmation, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(confirmation) != "yes" {
			slog.Info("import cancelled")
			return
		}
	}

	if err := backupService.Import(inputPath, clearFirst); err != nil {
		fatal("import failed", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("My Mythology World Progress Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export stored progress to a JSON file")
	fmt.Println("  backup import [options]    Import progress from a JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Delete stored profiles before import (WARNING: destructive)")
	fmt.Println("  -yes              Do not ask for confirmation when -clear is set")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          sqlite, postgres or mysql")
	fmt.Println("  DB_PATH          SQLite database path (default: ./mythworld.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  MIGRATIONS_PATH  Migrations directory (default: ./migrations)")
}
