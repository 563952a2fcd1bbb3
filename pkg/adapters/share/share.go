package share

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/atotto/clipboard"
)

const (
	copiedMessage = "Link copiato negli appunti!"
	failedMessage = "Impossibile condividere"
)

// Target is what gets shared: the public page of a profile.
type Target struct {
	Title string
	Text  string
	URL   string
}

// Sharer hands a target to some outside channel.
type Sharer interface {
	Share(ctx context.Context, t Target) error
}

// ClipboardSharer copies the target URL to the system clipboard.
type ClipboardSharer struct{}

func (ClipboardSharer) Share(ctx context.Context, t Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.URL == "" {
		return errors.New("share: empty url")
	}
	if err := clipboard.WriteAll(t.URL); err != nil {
		return fmt.Errorf("share.Clipboard: %w", err)
	}
	return nil
}

// Notice is the user-facing outcome of a share.
type Notice struct {
	Message string
	Failed  bool
}

// Run shares t and reports the outcome. A share interrupted through ctx is
// not an error for the user and produces no notice (ok is false).
func Run(ctx context.Context, s Sharer, t Target) (Notice, bool) {
	err := s.Share(ctx, t)
	switch {
	case err == nil:
		return Notice{Message: copiedMessage}, true
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		return Notice{}, false
	default:
		log.Printf("Share failed: %v", err)
		return Notice{Message: failedMessage, Failed: true}, true
	}
}
