package reporters

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/require"
)

func TestPubSubReporterPublishes(t *testing.T) {
	// In-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	require.NoError(t, err)
	defer client.Close()
	_, err = client.CreateTopic(ctx, "outcomes")
	require.NoError(t, err)

	rep, err := newPubSubReporter(ctx, ReporterConfig{
		ID:     "gcp",
		Type:   TypePubSub,
		PubSub: &PubSubConfig{ProjectID: "test-project", Topic: "outcomes"},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, rep.Report(ctx, Event{Control: "shape", ImageKey: "triangle"}))
	require.NoError(t, rep.(*pubsubReporter).Close())

	msgs := server.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "shape", msgs[0].Attributes["control"])
	require.Contains(t, string(msgs[0].Data), `"image_key":"triangle"`)
}
