package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ntl/internal/config"
	"ntl/internal/domain"
	"ntl/internal/storage"
)

// Publisher stores a run in the history database
type Publisher interface {
	Publish(ctx context.Context, run *domain.Node) (string, error)
}

// HistoryPublisher opens the configured history database for each publish
type HistoryPublisher struct {
	config *config.Config
}

// NewHistoryPublisher creates a new HistoryPublisher
func NewHistoryPublisher(cfg *config.Config) *HistoryPublisher {
	return &HistoryPublisher{config: cfg}
}

// Publish stores run and returns its history id
func (hp *HistoryPublisher) Publish(ctx context.Context, run *domain.Node) (string, error) {
	store, err := storage.OpenHistory(ctx, hp.config)
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.Publish(ctx, run)
}

// PublishCommand handles the publish command
type PublishCommand struct {
	config    *config.Config
	storage   storage.Storage
	publisher Publisher
}

// NewPublishCommand creates a new PublishCommand
func NewPublishCommand(cfg *config.Config, st storage.Storage, publisher Publisher) *PublishCommand {
	return &PublishCommand{
		config:    cfg,
		storage:   st,
		publisher: publisher,
	}
}

// Execute runs the command
func (pc *PublishCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := pc.storage.Load()
	if err != nil {
		return err
	}

	id, err := pc.publisher.Publish(cmd.Context(), summary.Run)
	if err != nil {
		return err
	}

	color.Green("✓ Run %s published to %s as %s", summary.Meta.RunID, pc.config.Database.Name, id)
	return nil
}
