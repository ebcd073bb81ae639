package content_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copymakerhq/copymaker/pkg/clock"
	"github.com/copymakerhq/copymaker/pkg/content"
	"github.com/copymakerhq/copymaker/pkg/entitlement"
	"github.com/copymakerhq/copymaker/pkg/profile"
)

var tuesday = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

type fakeGenerator struct {
	text    string
	err     error
	calls   int
	lastReq content.GenerationRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, req content.GenerationRequest) (string, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

type testEnv struct {
	content      *content.Service
	entitlements *entitlement.Service
	profiles     *profile.Service
	generator    *fakeGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clk := clock.Fixed(tuesday)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	entitlements := entitlement.NewService(entitlement.NewMemoryStore(),
		entitlement.WithClock(clk), entitlement.WithLogger(log))
	profiles := profile.NewService(profile.NewMemoryStore(), profile.WithClock(clk))
	generator := &fakeGenerator{text: "generated copy"}

	svc := content.NewService(content.NewMemoryStore(), generator, profiles, entitlements,
		content.WithClock(clk), content.WithLogger(log))

	return &testEnv{
		content:      svc,
		entitlements: entitlements,
		profiles:     profiles,
		generator:    generator,
	}
}

func (e *testEnv) seedProfile(t *testing.T, accountID string) *profile.NicheProfile {
	t.Helper()

	p, err := e.profiles.Create(context.Background(), accountID, profile.Input{
		Name:           "Vegan cooking",
		TargetAudience: "home cooks aged 25-40",
		ContentGoal:    "inform",
		ToneOfVoice:    "friendly",
		Keywords:       "plant-based, easy recipes",
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) seedAccount(t *testing.T, accountID string) {
	t.Helper()
	_, err := e.entitlements.GetOrCreate(context.Background(), accountID)
	require.NoError(t, err)
}

func TestService_Generate(t *testing.T) {
	t.Parallel()

	t.Run("charges a credit and stores the result", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		p := env.seedProfile(t, "acc-1")

		result, err := env.content.Generate(ctx, "acc-1", content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeFacebook,
			Input:     map[string]string{"topic": "summer recipes"},
		})
		require.NoError(t, err)
		assert.Equal(t, "generated copy", result.Content.Text)
		assert.Equal(t, entitlement.FreeWeeklyCredits-1, result.Remaining)
		assert.Equal(t, entitlement.PlanFree, result.Plan)
		assert.Equal(t, content.TypeFacebook, result.Content.Type)
		assert.Equal(t, p.ID, result.Content.ProfileID)

		stored, err := env.content.Get(ctx, "acc-1", result.Content.ID)
		require.NoError(t, err)
		assert.Equal(t, "summer recipes", stored.Input["topic"])
		assert.Nil(t, stored.Rating)
	})

	t.Run("exhausted credits stop the request before the gateway", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		p := env.seedProfile(t, "acc-1")

		in := content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeBlog,
			Input:     map[string]string{"topic": "meal prep"},
		}
		for i := 0; i < entitlement.FreeWeeklyCredits; i++ {
			_, err := env.content.Generate(ctx, "acc-1", in)
			require.NoError(t, err)
		}

		_, err := env.content.Generate(ctx, "acc-1", in)
		require.ErrorIs(t, err, entitlement.ErrCreditsExhausted)
		assert.Equal(t, entitlement.FreeWeeklyCredits, env.generator.calls)
	})

	t.Run("generation failure is not refunded", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		p := env.seedProfile(t, "acc-1")
		env.generator.err = content.ErrGenerationFailed

		_, err := env.content.Generate(ctx, "acc-1", content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeVideo,
			Input:     map[string]string{"topic": "knife skills"},
		})
		require.ErrorIs(t, err, content.ErrGenerationFailed)

		acc, err := env.entitlements.Get(ctx, "acc-1")
		require.NoError(t, err)
		assert.Equal(t, entitlement.FreeWeeklyCredits-1, acc.CreditsRemaining)

		history, err := env.content.List(ctx, "acc-1")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("foreign profile is rejected before any charge", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		env.seedAccount(t, "acc-2")
		p := env.seedProfile(t, "acc-2")

		_, err := env.content.Generate(ctx, "acc-1", content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeFacebook,
			Input:     map[string]string{"topic": "anything"},
		})
		require.ErrorIs(t, err, profile.ErrNotProfileOwner)
		assert.Zero(t, env.generator.calls)

		acc, err := env.entitlements.Get(ctx, "acc-1")
		require.NoError(t, err)
		assert.Equal(t, entitlement.FreeWeeklyCredits, acc.CreditsRemaining)
	})

	t.Run("premium account bypasses the ledger", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		_, err := env.entitlements.ActivatePremium(ctx, "acc-1", "cus_1", "sub_1")
		require.NoError(t, err)
		p := env.seedProfile(t, "acc-1")

		result, err := env.content.Generate(ctx, "acc-1", content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeProduct,
			Input:     map[string]string{"name": "chef knife", "features": "steel", "benefits": "sharp"},
		})
		require.NoError(t, err)
		assert.Equal(t, entitlement.UnlimitedCredits, result.Remaining)
		assert.Equal(t, entitlement.PlanPremium, result.Plan)
		assert.True(t, env.generator.lastReq.Premium)
	})
}

func TestService_Variation(t *testing.T) {
	t.Parallel()

	t.Run("inherits the original and charges a fresh credit", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		p := env.seedProfile(t, "acc-1")

		original, err := env.content.Generate(ctx, "acc-1", content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeInstagram,
			Input:     map[string]string{"topic": "quick lunches"},
		})
		require.NoError(t, err)

		env.generator.text = "varied copy"
		result, err := env.content.Variation(ctx, "acc-1", original.Content.ID)
		require.NoError(t, err)
		assert.Equal(t, "varied copy", result.Content.Text)
		assert.Equal(t, content.TypeInstagram, result.Content.Type)
		assert.Equal(t, "quick lunches", result.Content.Input["topic"])
		assert.Equal(t, entitlement.FreeWeeklyCredits-2, result.Remaining)
		assert.Equal(t, "generated copy", env.generator.lastReq.VariationOf)
		assert.NotEqual(t, original.Content.ID, result.Content.ID)
	})

	t.Run("foreign content is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		env.seedAccount(t, "acc-1")
		env.seedAccount(t, "acc-2")
		p := env.seedProfile(t, "acc-1")

		original, err := env.content.Generate(ctx, "acc-1", content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeFacebook,
			Input:     map[string]string{"topic": "snacks"},
		})
		require.NoError(t, err)

		_, err = env.content.Variation(ctx, "acc-2", original.Content.ID)
		require.ErrorIs(t, err, content.ErrNotContentOwner)
	})

	t.Run("unknown content ID", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAccount(t, "acc-1")

		_, err := env.content.Variation(context.Background(), "acc-1", uuid.New())
		require.ErrorIs(t, err, content.ErrContentNotFound)
	})
}

func TestService_Rate(t *testing.T) {
	t.Parallel()

	seedContent := func(t *testing.T, env *testEnv, accountID string) uuid.UUID {
		t.Helper()
		env.seedAccount(t, accountID)
		p := env.seedProfile(t, accountID)
		result, err := env.content.Generate(context.Background(), accountID, content.GenerateInput{
			ProfileID: p.ID,
			Type:      content.TypeFacebook,
			Input:     map[string]string{"topic": "ratings"},
		})
		require.NoError(t, err)
		return result.Content.ID
	}

	t.Run("records the score", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		id := seedContent(t, env, "acc-1")

		require.NoError(t, env.content.Rate(ctx, "acc-1", id, 4))

		stored, err := env.content.Get(ctx, "acc-1", id)
		require.NoError(t, err)
		require.NotNil(t, stored.Rating)
		assert.Equal(t, 4, *stored.Rating)
	})

	t.Run("rejects out-of-range scores", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		ctx := context.Background()
		id := seedContent(t, env, "acc-1")

		require.ErrorIs(t, env.content.Rate(ctx, "acc-1", id, 0), content.ErrInvalidRating)
		require.ErrorIs(t, env.content.Rate(ctx, "acc-1", id, 6), content.ErrInvalidRating)
	})

	t.Run("rejects foreign content", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAccount(t, "acc-2")
		id := seedContent(t, env, "acc-1")

		err := env.content.Rate(context.Background(), "acc-2", id, 5)
		require.ErrorIs(t, err, content.ErrNotContentOwner)
	})
}

func TestService_List(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.seedAccount(t, "acc-1")
	env.seedAccount(t, "acc-2")
	p1 := env.seedProfile(t, "acc-1")
	p2 := env.seedProfile(t, "acc-2")

	for i, tc := range []struct {
		accountID string
		profileID uuid.UUID
	}{
		{"acc-1", p1.ID},
		{"acc-1", p1.ID},
		{"acc-2", p2.ID},
	} {
		_, err := env.content.Generate(ctx, tc.accountID, content.GenerateInput{
			ProfileID: tc.profileID,
			Type:      content.TypeFacebook,
			Input:     map[string]string{"topic": "post"},
		})
		require.NoError(t, err, "generation %d", i)
	}

	history, err := env.content.List(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
	for _, c := range history {
		assert.Equal(t, "acc-1", c.AccountID)
	}
}

func TestParseContentType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"facebook", "instagram", "product", "blog", "video"} {
		ct, err := content.ParseContentType(valid)
		require.NoError(t, err)
		assert.Equal(t, content.ContentType(valid), ct)
	}

	_, err := content.ParseContentType("newsletter")
	require.ErrorIs(t, err, content.ErrInvalidContentType)
	_, err = content.ParseContentType("")
	require.ErrorIs(t, err, content.ErrInvalidContentType)
}
