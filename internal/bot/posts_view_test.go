package bot

import (
	"context"
	"testing"

	"banket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPostEditEntersWizardWithDraftID(t *testing.T) {
	posts := &fakePostService{posts: []models.Post{{ID: 7, Title: "Garden wedding"}}}
	tg := &fakeTelegram{}
	b := &Bot{config: testConfig(), posts: posts, tgService: tg}

	sess := &models.Session{ChatID: 1, Screen: models.ScreenPosts}
	b.startPostEdit(sess, 7)

	assert.Equal(t, models.StepPostTitle, sess.Step)
	assert.Equal(t, "7", sess.Draft["edit_id"])
	require.Len(t, tg.messages, 1)
	assert.Contains(t, tg.messages[0], "Editing post #7")
}

func TestStartPostEditUnknownPost(t *testing.T) {
	tg := &fakeTelegram{}
	b := &Bot{config: testConfig(), posts: &fakePostService{}, tgService: tg}

	sess := &models.Session{ChatID: 1, Screen: models.ScreenPosts}
	b.startPostEdit(sess, 99)

	assert.Equal(t, models.StepNone, sess.Step)
	require.Len(t, tg.messages, 1)
	assert.Contains(t, tg.messages[0], "no longer in the list")
}

func TestFinishPostWizardDispatchesUpdate(t *testing.T) {
	posts := &fakePostService{posts: []models.Post{{ID: 7, Title: "Garden wedding"}}}
	tg := &fakeTelegram{}
	b := &Bot{config: testConfig(), posts: posts, tgService: tg}

	sess := &models.Session{ChatID: 1, Screen: models.ScreenPosts, Step: models.StepPostSpecial}
	sess.SetDraft("edit_id", "7")
	sess.SetDraft("title", "Rooftop wedding")
	sess.SetDraft("description", "Updated package")
	sess.SetDraft("category", "Wedding")
	sess.SetDraft("price", "1500")
	sess.SetDraft("special", "no")

	b.finishPostCreation(context.Background(), sess)

	require.Contains(t, posts.updated, int64(7))
	draft := posts.updated[7]
	assert.Equal(t, "Rooftop wedding", draft.Title)
	assert.Equal(t, 1500.0, draft.BasePrice)
	assert.False(t, draft.IsSpecial)
	assert.Empty(t, posts.created)

	assert.Equal(t, models.StepNone, sess.Step)
	require.NotEmpty(t, tg.messages)
	assert.Contains(t, tg.messages[0], "updated")
}

func TestFinishPostWizardDispatchesCreate(t *testing.T) {
	posts := &fakePostService{}
	tg := &fakeTelegram{}
	b := &Bot{config: testConfig(), posts: posts, tgService: tg}

	sess := &models.Session{ChatID: 1, Screen: models.ScreenPosts, Step: models.StepPostSpecial}
	sess.SetDraft("title", "Beach birthday")
	sess.SetDraft("description", "Sand and cake")
	sess.SetDraft("category", "Birthday")
	sess.SetDraft("price", "400")
	sess.SetDraft("special", "yes")
	sess.SetDraft("features", "Fireworks")

	b.finishPostCreation(context.Background(), sess)

	require.Len(t, posts.created, 1)
	assert.Equal(t, "Beach birthday", posts.created[0].Title)
	assert.True(t, posts.created[0].IsSpecial)
	assert.Equal(t, "Fireworks", posts.created[0].SpecialFeatures)
	assert.Empty(t, posts.updated)
}
