package handler

import (
	"context"
	"fmt"
	"testing"

	"assembl/internal/domain"
	"assembl/internal/middleware"
	"assembl/internal/service"
	"assembl/internal/session"
	"assembl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

const (
	adminID int64 = 100
	userID  int64 = 200
	groupID int64 = -1001
)

type fixture struct {
	groups     *testutil.MockGroupRepository
	categories *testutil.MockCategoryRepository
	photos     *testutil.MockPhotoRepository
	members    *testutil.MockMemberChecker
	sessions   *session.MemoryStore
	h          *Handler
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		groups:     new(testutil.MockGroupRepository),
		categories: new(testutil.MockCategoryRepository),
		photos:     new(testutil.MockPhotoRepository),
		members:    new(testutil.MockMemberChecker),
		sessions:   session.NewMemoryStore(),
	}

	logger := testutil.NewTestLogger()
	f.h = NewHandler(
		nil,
		service.NewAuthService(f.groups, f.members, logger),
		service.NewCatalogService(f.categories, f.photos),
		service.NewPhotoService(f.photos, logger),
		f.sessions,
		opts,
		logger,
	)
	f.groups.On("GetGroups").Return([]int64{groupID}, nil)
	f.members.On("ChatMemberOf", tele.ChatID(groupID), &tele.User{ID: adminID}).
		Return(testutil.NewTestMember(adminID, tele.Administrator), nil)
	f.members.On("ChatMemberOf", tele.ChatID(groupID), &tele.User{ID: userID}).
		Return(testutil.NewTestMember(userID, tele.Member), nil)
	return f
}

// session returns the stored private-chat session of a user
func (f *fixture) session(id int64) *domain.Session {
	s, _ := f.sessions.Get(context.Background(), session.Key{ChatID: id, UserID: id})
	return s
}

func (f *fixture) setSession(id int64, s *domain.Session) {
	_ = f.sessions.Save(context.Background(), session.Key{ChatID: id, UserID: id}, s)
}

func (f *fixture) withCategories(categories ...domain.Category) {
	f.categories.On("GetCategories").Return(categories, nil)
}

func testPhotos(n int) []domain.Photo {
	photos := make([]domain.Photo, n)
	for i := range photos {
		photos[i] = testutil.NewTestPhoto(i+1, fmt.Sprintf("file-%d", i+1), fmt.Sprintf("d%d", i+1), "Cars")
	}
	return photos
}

func TestDispatch(t *testing.T) {
	var got []string
	routes := []route{
		{middleware.ScopePrivate, tele.OnText, func(c tele.Context) error {
			got = append(got, "private")
			return nil
		}},
		{middleware.ScopeGroup, tele.OnText, func(c tele.Context) error {
			got = append(got, "group")
			return nil
		}},
	}
	handler := dispatch(routes)

	assert.NoError(t, handler(testutil.NewPrivateText(1, "hi")))
	assert.NoError(t, handler(testutil.NewGroupText(groupID, 1, "hi", nil)))

	assert.Equal(t, []string{"private", "group"}, got)
}

func TestRoutes(t *testing.T) {
	triggers := func(h *Handler) []string {
		var result []string
		for _, r := range h.routes() {
			result = append(result, r.trigger)
		}
		return result
	}

	withoutChannel := newFixture(Options{}).h
	assert.NotContains(t, triggers(withoutChannel), "/commandos")
	assert.Len(t, withoutChannel.commands(), 4)

	withChannel := newFixture(Options{ChannelURL: "https://t.me/channel"}).h
	assert.Contains(t, triggers(withChannel), "/commandos")
	assert.Len(t, withChannel.commands(), 5)
}

func TestHandleStart(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		expected string
	}{
		{
			name:     "regular user",
			userID:   userID,
			expected: msgStart,
		},
		{
			name:     "admin sees categories",
			userID:   adminID,
			expected: msgStart + "\n\n" + msgStartAdmin + "\n🔹 Cars\n🔹 Bikes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			f.withCategories(domain.Category{Name: "Cars", Description: "Машины"}, domain.Category{Name: "Bikes", Description: "Мотоциклы"})
			c := testutil.NewPrivateText(tt.userID, "/start")

			err := f.h.handleStart(c)

			assert.NoError(t, err)
			assert.Len(t, c.Sent, 1)
			assert.Equal(t, tt.expected, c.Sent[0].Text())
		})
	}
}

func TestHandleHelp_Admin(t *testing.T) {
	f := newFixture(Options{})
	f.withCategories(domain.Category{Name: "Cars", Description: "Машины"})
	c := testutil.NewPrivateText(adminID, "/help")

	err := f.h.handleHelp(c)

	assert.NoError(t, err)
	assert.Equal(t, msgHelp+"\n\n"+msgHelpAdmin+"\nCars - Машины", c.Sent[0].Text())
}

func TestHandleCancel(t *testing.T) {
	f := newFixture(Options{})
	f.setSession(adminID, &domain.Session{
		State:    domain.StateUpdateDescription,
		Category: "Cars",
		Flow:     &domain.EditDescriptionCapture{PhotoID: "file-1"},
	})
	c := testutil.NewPrivateText(adminID, "/cancel")

	err := f.h.handleCancel(c)

	assert.NoError(t, err)
	assert.Equal(t, msgCancel, c.Sent[0].Text())
	assert.Equal(t, domain.CanceledSession(), f.session(adminID))
}

func TestHandleAssembl(t *testing.T) {
	f := newFixture(Options{})
	f.withCategories(
		domain.Category{Name: "Cars", Description: "Машины"},
		domain.Category{Name: "Bikes", Description: "Мотоциклы"},
		domain.Category{Name: "Boats", Description: "Лодки"},
	)
	f.setSession(userID, domain.CanceledSession())
	c := testutil.NewPrivateText(userID, "/assembl")

	err := f.h.handleAssembl(c)

	assert.NoError(t, err)
	assert.False(t, f.session(userID).Canceled)
	assert.Equal(t, msgChooseCat, c.Sent[0].Text())
	assert.Equal(t, [][]string{
		{"category_Cars", "category_Bikes"},
		{"category_Boats"},
	}, testutil.Uniques(c.Sent[0].Markup()))
	assert.Equal(t, "1. Машины", c.Sent[0].Markup().InlineKeyboard[0][0].Text)
}

func TestHandleAssembl_NoCategories(t *testing.T) {
	f := newFixture(Options{})
	f.categories.On("GetCategories").Return(nil, nil)
	c := testutil.NewPrivateText(userID, "/assembl")

	err := f.h.handleAssembl(c)

	assert.NoError(t, err)
	assert.Equal(t, msgNoCategories, c.Sent[0].Text())
}

func TestHandleCommandos(t *testing.T) {
	f := newFixture(Options{ChannelURL: "https://t.me/channel"})
	c := testutil.NewPrivateText(userID, "/commandos")

	err := f.h.handleCommandos(c)

	assert.NoError(t, err)
	assert.Equal(t, "https://t.me/channel", c.Sent[0].Markup().InlineKeyboard[0][0].URL)
}

func TestHandleText_IdleIgnored(t *testing.T) {
	f := newFixture(Options{})
	c := testutil.NewPrivateText(userID, "hello")

	err := f.h.handleText(c)

	assert.NoError(t, err)
	assert.Empty(t, c.Sent)
	f.photos.AssertNotCalled(t, "SearchPhotos", mock.Anything, mock.Anything)
}
