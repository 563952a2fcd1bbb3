package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/share"
	"github.com/wadjakorntonsri/linkpulse/pkg/config"
	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/core/services"
	"github.com/wadjakorntonsri/linkpulse/pkg/render"
)

const usage = "expected 'export', 'import', 'preview' or 'share' subcommands"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")
	previewCmd := flag.NewFlagSet("preview", flag.ExitOnError)
	previewUser := previewCmd.String("username", "", "published profile to preview")
	previewFile := previewCmd.String("file", "", "profile JSON file to preview instead of the database")
	previewWidth := previewCmd.Int("width", 48, "preview width in columns")
	shareCmd := flag.NewFlagSet("share", flag.ExitOnError)
	shareUser := shareCmd.String("username", "", "profile whose public page is shared")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		doExport(ctx, openRepo(cfg))
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		doImport(ctx, openRepo(cfg), *importFile)
	case "preview":
		previewCmd.Parse(os.Args[2:])
		if *previewUser == "" && *previewFile == "" {
			previewCmd.PrintDefaults()
			os.Exit(1)
		}
		doPreview(ctx, cfg, *previewUser, *previewFile, *previewWidth)
	case "share":
		shareCmd.Parse(os.Args[2:])
		if *shareUser == "" {
			shareCmd.PrintDefaults()
			os.Exit(1)
		}
		doShare(ctx, cfg, *shareUser)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openRepo(cfg *config.Config) *sqlite.SQLiteRepository {
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	return repo
}

func doExport(ctx context.Context, repo *sqlite.SQLiteRepository) {
	defer repo.Close()

	records, err := repo.Dump(ctx)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doImport(ctx context.Context, repo *sqlite.SQLiteRepository, filename string) {
	defer repo.Close()

	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	var records []domain.ProfileRecord
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	log.Printf("Imported %d profiles", importRecords(ctx, repo, records))
}

// importRecords inserts records whose owner is new. A published record whose
// username is already claimed is skipped before anything is written.
func importRecords(ctx context.Context, repo *sqlite.SQLiteRepository, records []domain.ProfileRecord) int {
	count := 0
	for _, rec := range records {
		// Owners are unique, so an existing owner means the record was already migrated.
		existing, err := repo.GetByOwner(ctx, rec.OwnerEmail)
		if err != nil {
			log.Printf("Failed to look up %s: %v", rec.OwnerEmail, err)
			continue
		}
		if existing != nil {
			log.Printf("Skipping existing owner: %s", rec.OwnerEmail)
			continue
		}

		if rec.Published != nil {
			taken, err := repo.GetByUsername(ctx, rec.Published.Username)
			if err != nil {
				log.Printf("Failed to look up username %s: %v", rec.Published.Username, err)
				continue
			}
			if taken != nil {
				log.Printf("Skipping %s: username %s is taken by %s", rec.OwnerEmail, rec.Published.Username, taken.OwnerEmail)
				continue
			}
		}

		if err := repo.Create(ctx, &rec); err != nil {
			log.Printf("Failed to import %s: %v", rec.OwnerEmail, err)
			continue
		}
		if rec.Published != nil {
			if err := repo.Publish(ctx, &rec); err != nil {
				log.Printf("Failed to publish %s: %v", rec.OwnerEmail, err)
				continue
			}
		}
		count++
	}
	return count
}

func doPreview(ctx context.Context, cfg *config.Config, username, filename string, width int) {
	var p *domain.Profile
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		p = &domain.Profile{}
		if err := json.Unmarshal(data, p); err != nil {
			log.Fatalf("Decode failed: %v", err)
		}
	} else {
		repo := openRepo(cfg)
		defer repo.Close()

		var err error
		p, err = services.NewEditorService(repo).GetPublished(ctx, username)
		if err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
	}

	fmt.Print(render.Terminal(p, services.BackendLiveStatus{}.LiveFor(ctx, p), width))
}

func doShare(ctx context.Context, cfg *config.Config, username string) {
	target := share.Target{
		Title: username + " | " + render.DefaultTitle,
		URL:   cfg.BaseURL + "/u/" + username,
	}

	notice, ok := share.Run(ctx, share.ClipboardSharer{}, target)
	if !ok {
		return
	}
	if notice.Failed {
		fmt.Fprintln(os.Stderr, notice.Message)
		os.Exit(1)
	}
	fmt.Println(notice.Message)
}
