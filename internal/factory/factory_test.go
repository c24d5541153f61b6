package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flathive/flathive/internal/assistant"
	"github.com/flathive/flathive/internal/config"
)

func TestNewStoreMemory(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverMemory, Seed: true}
	s, err := NewStore(cfg, zerolog.Nop())
	require.NoError(t, err)

	mates, err := s.Flatmates().List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, mates, "seeded store must contain the demo flatmates")
}

func TestNewStoreSQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "flathive.db"),
	}
	s, err := NewStore(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = s.Notes().List(context.Background())
	assert.NoError(t, err)
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	_, err := NewStore(&config.Config{StoreDriver: "mongodb"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewCompleter(t *testing.T) {
	ctx := context.Background()

	c, err := NewCompleter(ctx, &config.Config{AssistantProvider: config.ProviderStatic}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &assistant.StaticProvider{}, c)

	c, err = NewCompleter(ctx, &config.Config{AssistantProvider: config.ProviderOllama}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &assistant.OllamaProvider{}, c)

	_, err = NewCompleter(ctx, &config.Config{AssistantProvider: "openai"}, zerolog.Nop())
	assert.Error(t, err)
}
