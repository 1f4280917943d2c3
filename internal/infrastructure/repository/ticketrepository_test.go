package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	apperrors "github.com/orris-inc/moderation/internal/shared/errors"
)

func TestTicketRepository_RecordTicketUpdate(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t, &models.ModerationTicketModel{}, &models.ModerationTicketMessageModel{}))
	ctx := context.Background()

	row, err := repo.RecordTicketUpdate(ctx, domain.TicketUpdate{
		TicketID:    "tic_1",
		Status:      "open",
		Priority:    "high",
		AssigneeID:  "u-101",
		UnreadCount: 2,
		UpdatedAt:   testNow,
		Meta:        map[string]any{"channel": "email"},
	})
	require.NoError(t, err)
	assert.Equal(t, "open", *row.Status)
	assert.Equal(t, 2, *row.UnreadCount)

	row, err = repo.RecordTicketUpdate(ctx, domain.TicketUpdate{
		TicketID:    "tic_1",
		Status:      "waiting",
		Priority:    "high",
		UnreadCount: -3,
		UpdatedAt:   testNow.Add(time.Minute),
		Meta:        map[string]any{"updated_by": "u-100"},
	})
	require.NoError(t, err)

	fetched, err := repo.FetchTicket(ctx, "tic_1")
	require.NoError(t, err)
	assert.Equal(t, "waiting", *fetched.Status)
	assert.Nil(t, fetched.AssigneeID)
	assert.Equal(t, 0, *fetched.UnreadCount)
	assert.True(t, testNow.Add(time.Minute).Equal(*fetched.UpdatedAt))
	assert.Equal(t, map[string]any{"channel": "email", "updated_by": "u-100"}, fetched.Meta)
	assert.Equal(t, row.Meta, fetched.Meta)

	many, err := repo.FetchMany(ctx, []string{"tic_1", "tic_2"})
	require.NoError(t, err)
	assert.Len(t, many, 1)

	missing, err := repo.FetchTicket(ctx, "tic_2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_Messages(t *testing.T) {
	database := setupTestDB(t, &models.ModerationTicketModel{}, &models.ModerationTicketMessageModel{})
	repo := NewTicketRepository(database)
	ctx := context.Background()

	require.NoError(t, database.Create(&models.ModerationTicketModel{ID: "tic_1", Status: "open", Priority: "normal"}).Error)

	for i := 0; i < 5; i++ {
		err := repo.RecordMessage(ctx, domain.TicketMessageRow{
			ID:          fmt.Sprintf("msg_%d", i),
			TicketID:    "tic_1",
			AuthorID:    "u-102",
			Text:        fmt.Sprintf("message %d", i),
			Attachments: []string{"a.png"},
			Internal:    i == 4,
			CreatedAt:   testNow.Add(time.Duration(i) * time.Minute),
		}, i%2 == 0)
		require.NoError(t, err)
	}

	ticket, err := repo.FetchTicket(ctx, "tic_1")
	require.NoError(t, err)
	assert.Equal(t, 3, *ticket.UnreadCount)

	// messages for tickets without a row are still stored
	require.NoError(t, repo.RecordMessage(ctx, domain.TicketMessageRow{ID: "msg_x", TicketID: "tic_memory", AuthorID: "u-1", Text: "hi", CreatedAt: testNow}, true))

	first, err := repo.ListMessages(ctx, "tic_1", 2, "")
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "msg_0", first.Items[0].ID)
	assert.Equal(t, []string{"a.png"}, first.Items[0].Attachments)
	assert.Equal(t, "2", first.NextCursor)

	last, err := repo.ListMessages(ctx, "tic_1", 2, "4")
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.True(t, last.Items[0].Internal)
	assert.Empty(t, last.NextCursor)

	other, err := repo.ListMessages(ctx, "tic_memory", 0, "")
	require.NoError(t, err)
	require.Len(t, other.Items, 1)
	assert.Equal(t, []string{}, other.Items[0].Attachments)

	_, err = repo.ListMessages(ctx, "tic_1", 2, "-2")
	assert.True(t, apperrors.IsValidationError(err))
}
