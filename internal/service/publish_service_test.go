package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

func TestPublishNowRequiresDescription(t *testing.T) {
	s := NewPublishService(config.Config{})

	_, err := s.PublishNow(context.Background(), &transfer.PublishRequest{})
	require.ErrorContains(t, err, "missing description")
}

func TestPublishNowRequiresMetaCredentials(t *testing.T) {
	s := NewPublishService(config.Config{})

	_, err := s.PublishNow(context.Background(), &transfer.PublishRequest{
		Description: "Promo de marzo",
	})
	require.ErrorContains(t, err, "not configured")
}
