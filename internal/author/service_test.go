package author

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/validation"
)

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		want := Fields{Name: strPtr("Ursula K. Le Guin"), BioSet: true, Bio: strPtr("Earthsea")}
		mockRepo.EXPECT().Create(ctx, want).Return(Author{ID: 1, Name: "Ursula K. Le Guin", Bio: strPtr("Earthsea")}, nil)

		a, err := service.Create(ctx, validation.Payload{"name": "Ursula K. Le Guin", "bio": "Earthsea"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), a.ID)
	})

	t.Run("bio omitted", func(t *testing.T) {
		mockRepo.EXPECT().Create(ctx, Fields{Name: strPtr("Borges")}).Return(Author{ID: 2, Name: "Borges"}, nil)

		_, err := service.Create(ctx, validation.Payload{"name": "Borges"})
		require.NoError(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := service.Create(ctx, validation.Payload{"bio": "x"})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		assert.Equal(t, "Name is required", apperr.From(err).Detail)
	})

	t.Run("non-string bio", func(t *testing.T) {
		_, err := service.Create(ctx, validation.Payload{"name": "A", "bio": json.Number("12")})
		require.Error(t, err)
		assert.Equal(t, "Bio must be a string", apperr.From(err).Detail)
	})

	t.Run("repository failure is internal", func(t *testing.T) {
		mockRepo.EXPECT().Create(ctx, gomock.Any()).Return(Author{}, errors.New("db down"))

		_, err := service.Create(ctx, validation.Payload{"name": "A"})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInternal))
	})
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().GetByID(ctx, int64(9), Include{Books: true}).Return(Author{}, ErrNotFound)

	_, err := service.Get(ctx, 9)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, MsgNotFound, apperr.From(err).Detail)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("partial", func(t *testing.T) {
		gomock.InOrder(
			mockRepo.EXPECT().Update(ctx, int64(1), Fields{BioSet: true, Bio: strPtr("new bio")}).Return(nil),
			mockRepo.EXPECT().GetByID(ctx, int64(1), Include{Books: true}).Return(Author{ID: 1, Name: "Kept", Bio: strPtr("new bio")}, nil),
		)

		a, err := service.Update(ctx, 1, validation.Payload{"bio": "new bio"})
		require.NoError(t, err)
		assert.Equal(t, "Kept", a.Name)
		assert.Equal(t, "new bio", *a.Bio)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := service.Update(ctx, 1, validation.Payload{"name": ""})
		require.Error(t, err)
		assert.Equal(t, "Name cannot be empty", apperr.From(err).Detail)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Update(ctx, int64(404), gomock.Any()).Return(ErrNotFound)

		_, err := service.Update(ctx, 404, validation.Payload{"name": "x"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().Delete(ctx, int64(3)).Return(nil)
	require.NoError(t, service.Delete(ctx, 3))

	mockRepo.EXPECT().Delete(ctx, int64(4)).Return(ErrNotFound)
	err := service.Delete(ctx, 4)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
