package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copymakerhq/copymaker/pkg/profile"
)

func validInput() profile.Input {
	return profile.Input{
		Name:           "Fitness coaching",
		TargetAudience: "busy professionals aged 30-45",
		ContentGoal:    "sell",
		ToneOfVoice:    "friendly",
		Keywords:       "fitness,coaching,health",
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores a valid profile", func(t *testing.T) {
		t.Parallel()
		svc := profile.NewService(profile.NewMemoryStore())

		p, err := svc.Create(ctx, "u1", validInput())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, "u1", p.AccountID)
		assert.Equal(t, profile.GoalSell, p.ContentGoal)
		assert.Equal(t, profile.ToneFriendly, p.ToneOfVoice)
	})

	t.Run("rejects invalid enums", func(t *testing.T) {
		t.Parallel()
		svc := profile.NewService(profile.NewMemoryStore())

		in := validInput()
		in.ContentGoal = "world-domination"
		_, err := svc.Create(ctx, "u1", in)
		assert.ErrorIs(t, err, profile.ErrInvalidContentGoal)

		in = validInput()
		in.ToneOfVoice = "shouty"
		_, err = svc.Create(ctx, "u1", in)
		assert.ErrorIs(t, err, profile.ErrInvalidToneOfVoice)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()
		svc := profile.NewService(profile.NewMemoryStore())

		in := validInput()
		in.Name = ""
		_, err := svc.Create(ctx, "u1", in)
		assert.ErrorIs(t, err, profile.ErrNameRequired)

		in = validInput()
		in.TargetAudience = ""
		_, err = svc.Create(ctx, "u1", in)
		assert.ErrorIs(t, err, profile.ErrTargetAudienceRequired)
	})
}

func TestService_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := profile.NewService(profile.NewMemoryStore())
	p, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		t.Parallel()
		got, err := svc.Get(ctx, "u1", p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("other accounts cannot read", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Get(ctx, "u2", p.ID)
		assert.ErrorIs(t, err, profile.ErrNotProfileOwner)
	})

	t.Run("other accounts cannot update", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Update(ctx, "u2", p.ID, validInput())
		assert.ErrorIs(t, err, profile.ErrNotProfileOwner)
	})

	t.Run("foreign delete is a no-op", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, svc.Delete(ctx, "u2", p.ID))

		got, err := svc.Get(ctx, "u1", p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})
}

func TestService_UpdateAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := profile.NewService(profile.NewMemoryStore())
	p, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "Yoga studio"
	in.ContentGoal = "inform"
	updated, err := svc.Update(ctx, "u1", p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Yoga studio", updated.Name)
	assert.Equal(t, profile.GoalInform, updated.ContentGoal)

	_, err = svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", validInput())
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2, "listing is scoped to the account")
}
