package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copymakerhq/copymaker/pkg/profile"
)

func testProfile() *profile.NicheProfile {
	return &profile.NicheProfile{
		Name:           "Urban gardening",
		TargetAudience: "apartment dwellers",
		ContentGoal:    profile.GoalInform,
		ToneOfVoice:    profile.ToneFriendly,
		Keywords:       "balcony, herbs",
	}
}

func TestLoadTemplateCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := LoadTemplateCatalog()
	require.NoError(t, err)

	for _, ct := range []ContentType{TypeFacebook, TypeInstagram, TypeProduct, TypeBlog, TypeVideo} {
		_, ok := catalog.prompts[ct]
		assert.True(t, ok, "missing prompt for %s", ct)
	}
	assert.NotNil(t, catalog.system)
	assert.NotNil(t, catalog.variation)
}

func TestTemplateCatalog_Render(t *testing.T) {
	t.Parallel()

	catalog, err := LoadTemplateCatalog()
	require.NoError(t, err)

	t.Run("system prompt carries the profile", func(t *testing.T) {
		t.Parallel()

		systemPrompt, userPrompt, err := catalog.Render(GenerationRequest{
			Profile: testProfile(),
			Type:    TypeFacebook,
			Input:   map[string]string{"topic": "composting at home", "cta": "Follow for more"},
		})
		require.NoError(t, err)

		assert.Contains(t, systemPrompt, "Urban gardening")
		assert.Contains(t, systemPrompt, "apartment dwellers")
		assert.Contains(t, systemPrompt, "friendly")
		assert.Contains(t, systemPrompt, "balcony, herbs")

		assert.Contains(t, userPrompt, "Facebook post")
		assert.Contains(t, userPrompt, "composting at home")
		assert.Contains(t, userPrompt, "Follow for more")
	})

	t.Run("optional input fields are omitted when empty", func(t *testing.T) {
		t.Parallel()

		p := testProfile()
		p.Keywords = ""
		systemPrompt, userPrompt, err := catalog.Render(GenerationRequest{
			Profile: p,
			Type:    TypeVideo,
			Input:   map[string]string{"topic": "repotting basil"},
		})
		require.NoError(t, err)

		assert.NotContains(t, systemPrompt, "Keywords to include")
		assert.NotContains(t, userPrompt, "Call to action")
		assert.NotContains(t, userPrompt, "Platform")
	})

	t.Run("variation replaces the system prompt", func(t *testing.T) {
		t.Parallel()

		systemPrompt, userPrompt, err := catalog.Render(GenerationRequest{
			Profile:     testProfile(),
			Type:        TypeInstagram,
			Input:       map[string]string{"topic": "herbs"},
			VariationOf: "Original post about window-sill herbs.",
		})
		require.NoError(t, err)

		assert.Contains(t, systemPrompt, "Create a variation")
		assert.Contains(t, systemPrompt, "apartment dwellers")
		assert.Contains(t, userPrompt, "Original post about window-sill herbs.")
	})

	t.Run("each content type renders its own prompt", func(t *testing.T) {
		t.Parallel()

		cases := map[ContentType]struct {
			input map[string]string
			want  string
		}{
			TypeInstagram: {map[string]string{"topic": "herbs"}, "Instagram post"},
			TypeProduct:   {map[string]string{"name": "planter", "features": "self-watering", "benefits": "no daily care"}, "product description"},
			TypeBlog:      {map[string]string{"topic": "hydroponics"}, "blog article"},
			TypeVideo:     {map[string]string{"topic": "seed starting"}, "short video"},
		}
		for ct, tc := range cases {
			_, userPrompt, err := catalog.Render(GenerationRequest{
				Profile: testProfile(),
				Type:    ct,
				Input:   tc.input,
			})
			require.NoError(t, err, string(ct))
			assert.Contains(t, userPrompt, tc.want, string(ct))
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, _, err := catalog.Render(GenerationRequest{
			Profile: testProfile(),
			Type:    ContentType("newsletter"),
		})
		require.ErrorIs(t, err, ErrInvalidContentType)
	})
}
