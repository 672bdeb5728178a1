package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/repositories/memory"
	"github.com/yoockh/resumecraft/internal/utils"
)

func TestFeedbackService_Submit(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackRepo())

	f, err := svc.Submit(ctx, "", FeedbackInput{
		Name:     " Ann ",
		Email:    "Ann@Example.com",
		Rating:   5,
		Message:  "  Love the templates ",
		Metadata: map[string]any{"page": "builder"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Empty(t, f.UserID)
	assert.Equal(t, "Ann", f.Name)
	assert.Equal(t, "ann@example.com", f.Email)
	assert.Equal(t, "Love the templates", f.Message)
	assert.JSONEq(t, `{"page":"builder"}`, string(f.Metadata))

	page, err := svc.List(ctx, models.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 1, page.TotalPages)

	require.NoError(t, svc.Delete(ctx, f.ID))
	assert.True(t, utils.IsCode(svc.Delete(ctx, f.ID), utils.CodeNotFound))
}

func TestFeedbackService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackRepo())

	for _, in := range []FeedbackInput{
		{Rating: 4, Message: "   "},
		{Rating: 0, Message: "ok"},
		{Rating: 6, Message: "ok"},
	} {
		_, err := svc.Submit(ctx, "u1", in)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "%+v", in)
	}
}
