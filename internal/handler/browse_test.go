package handler

import (
	"fmt"
	"testing"

	"assembl/internal/domain"
	"assembl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

func TestBrowseCategoryPages(t *testing.T) {
	f := newFixture(Options{})
	photos := testPhotos(8)
	f.photos.On("GetTotalPhotos", "Cars").Return(8, nil)
	f.photos.On("GetPhotos", "Cars", domain.PageSize, 0).Return(photos[:6], nil)
	f.photos.On("GetPhotos", "Cars", domain.PageSize, 6).Return(photos[6:], nil)

	list := &tele.Message{ID: 3, Text: msgChooseCat}

	first := testutil.NewCallback(userID, "\fcategory_Cars", list)
	assert.NoError(t, f.h.handleCallback(first))

	assert.Len(t, first.Edits, 1)
	assert.Equal(t, fmt.Sprintf(msgChooseAssembl, "Cars"), first.Edits[0].Text())
	assert.Equal(t, [][]string{
		{"photo_d1", "photo_d2"},
		{"photo_d3", "photo_d4"},
		{"photo_d5", "photo_d6"},
		{"page_info", "page_2"},
		{"move_back_to_category"},
		{"search_photo"},
	}, testutil.Uniques(first.Edits[0].Markup()))
	assert.Equal(t, "1 из 2", first.Edits[0].Markup().InlineKeyboard[3][0].Text)

	sess := f.session(userID)
	assert.Equal(t, "Cars", sess.Category)
	assert.Equal(t, 1, sess.CurrentPage)

	second := testutil.NewCallback(userID, "\fpage_2", list)
	assert.NoError(t, f.h.handleCallback(second))

	assert.Equal(t, [][]string{
		{"photo_d7", "photo_d8"},
		{"page_1", "page_info"},
		{"search_photo"},
	}, testutil.Uniques(second.Edits[0].Markup()))
	assert.Equal(t, 2, f.session(userID).CurrentPage)
}

func TestHandlePage(t *testing.T) {
	tests := []struct {
		name     string
		sess     *domain.Session
		data     string
		response string
	}{
		{
			name:     "page counter",
			sess:     &domain.Session{Category: "Cars"},
			data:     "page_info",
			response: "",
		},
		{
			name:     "not a number",
			sess:     &domain.Session{Category: "Cars"},
			data:     "page_x",
			response: "",
		},
		{
			name:     "no category bound",
			sess:     domain.NewSession(),
			data:     "page_2",
			response: msgNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			f.setSession(userID, tt.sess)

			c := testutil.NewCallback(userID, "\f"+tt.data, nil)
			err := f.h.handleCallback(c)

			assert.NoError(t, err)
			assert.Len(t, c.Responses, 1)
			assert.Equal(t, tt.response, c.LastResponse())
			assert.Empty(t, c.Edits)
			f.photos.AssertNotCalled(t, "GetTotalPhotos", mock.Anything)
		})
	}
}

func TestHandlePage_ClampsToLastPage(t *testing.T) {
	f := newFixture(Options{})
	f.setSession(userID, &domain.Session{Category: "Cars", CurrentPage: 1})
	f.photos.On("GetTotalPhotos", "Cars").Return(7, nil)
	f.photos.On("GetPhotos", "Cars", domain.PageSize, 6).Return(testPhotos(7)[6:], nil)

	c := testutil.NewCallback(userID, "\fpage_5", nil)
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, 2, f.session(userID).CurrentPage)
	f.photos.AssertExpectations(t)
}

func TestHandleCategory_Empty(t *testing.T) {
	f := newFixture(Options{})
	f.photos.On("GetTotalPhotos", "Boats").Return(0, nil)

	c := testutil.NewCallback(userID, "\fcategory_Boats", nil)
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, msgEmptyCategory, c.Edits[0].Text())
	assert.Nil(t, c.Edits[0].Markup())
	f.photos.AssertNotCalled(t, "GetPhotos", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCategory_FromPhoto(t *testing.T) {
	f := newFixture(Options{})
	f.photos.On("GetTotalPhotos", "Cars").Return(1, nil)
	f.photos.On("GetPhotos", "Cars", domain.PageSize, 0).Return(testPhotos(1), nil)

	c := testutil.NewCallback(adminID, "\fcategory_Cars", testutil.NewPhotoMessage("file-1", photoCaption("d1")))
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, 1, c.Deletes)
	assert.Empty(t, c.Edits)
	assert.Equal(t, fmt.Sprintf(msgChooseAssembl, "Cars"), c.Sent[0].Text())
}

func TestHandleCategory_EditFailsSendsNew(t *testing.T) {
	f := newFixture(Options{})
	f.photos.On("GetTotalPhotos", "Cars").Return(1, nil)
	f.photos.On("GetPhotos", "Cars", domain.PageSize, 0).Return(testPhotos(1), nil)

	c := testutil.NewCallback(userID, "\fcategory_Cars", nil)
	c.EditErr = fmt.Errorf("telegram: message to edit not found (400)")
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Len(t, c.Sent, 1)
	assert.Equal(t, fmt.Sprintf(msgChooseAssembl, "Cars"), c.Sent[0].Text())
}

func TestHandleCategory_NotModified(t *testing.T) {
	f := newFixture(Options{})
	f.photos.On("GetTotalPhotos", "Cars").Return(1, nil)
	f.photos.On("GetPhotos", "Cars", domain.PageSize, 0).Return(testPhotos(1), nil)

	c := testutil.NewCallback(userID, "\fcategory_Cars", nil)
	c.EditErr = fmt.Errorf("telegram: Bad Request: message is not modified (400)")
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Empty(t, c.Sent)
	assert.Len(t, c.Responses, 1)
}

func TestHandlePhotoSelect(t *testing.T) {
	tests := []struct {
		name        string
		userID      int64
		deletes     int
		markup      [][]string
		sessionKept bool
	}{
		{
			name:        "admin gets controls",
			userID:      adminID,
			deletes:     1,
			markup:      [][]string{{"update_photo", "update_description", "delete_photo"}, {"category_Cars"}},
			sessionKept: true,
		},
		{
			name:   "user gets the photo only",
			userID: userID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			f.setSession(tt.userID, &domain.Session{Category: "Cars", CurrentPage: 1})
			f.photos.On("GetPhotoID", "Red car").Return("file-1", nil)

			c := testutil.NewCallback(tt.userID, "\fphoto_Red car", nil)
			err := f.h.handleCallback(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.deletes, c.Deletes)

			photo, ok := c.Sent[0].What.(*tele.Photo)
			assert.True(t, ok)
			assert.Equal(t, "file-1", photo.FileID)
			assert.Equal(t, photoCaption("Red car"), photo.Caption)
			assert.Equal(t, tt.markup, testutil.Uniques(c.Sent[0].Markup()))
			assert.Equal(t, tt.sessionKept, f.session(tt.userID).Category == "Cars")
		})
	}
}

func TestHandlePhotoSelect_Missing(t *testing.T) {
	f := newFixture(Options{})
	f.photos.On("GetPhotoID", "Gone").Return("", nil)

	c := testutil.NewCallback(userID, "\fphoto_Gone", nil)
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, msgPhotoNotFound, c.LastResponse())
	assert.Empty(t, c.Sent)
}

func TestBackToCategories(t *testing.T) {
	f := newFixture(Options{})
	f.withCategories(domain.Category{Name: "Cars", Description: "Машины"})

	c := testutil.NewCallback(userID, "\fmove_back_to_category", nil)
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, msgChooseCat, c.Edits[0].Text())
	assert.Equal(t, [][]string{{"category_Cars"}}, testutil.Uniques(c.Edits[0].Markup()))
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		results []domain.Photo
		text    string
		markup  [][]string
		cleared bool
	}{
		{
			name:    "nothing found",
			userID:  userID,
			results: nil,
			text:    msgPhotoNotFound,
		},
		{
			name:    "single result for admin",
			userID:  adminID,
			results: []domain.Photo{testutil.NewTestPhoto(1, "file-1", "Red car", "Cars")},
			text:    photoCaption("Red car"),
			markup:  [][]string{{"update_photo", "update_description", "delete_photo"}, {"category_Cars"}},
		},
		{
			name:    "single result for user",
			userID:  userID,
			results: []domain.Photo{testutil.NewTestPhoto(1, "file-1", "Red car", "Cars")},
			text:    photoCaption("Red car"),
			cleared: true,
		},
		{
			name:    "several results",
			userID:  userID,
			results: testPhotos(3),
			text:    msgSearchResult,
			markup:  [][]string{{"photo_d1", "photo_d2"}, {"photo_d3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			f.setSession(tt.userID, &domain.Session{Category: "Cars", CurrentPage: 1})
			f.photos.On("SearchPhotos", "Cars", "red").Return(tt.results, nil)

			button := testutil.NewCallback(tt.userID, "\fsearch_photo", nil)
			assert.NoError(t, f.h.handleCallback(button))
			assert.Equal(t, msgSearchPrompt, button.Sent[0].Text())
			assert.Equal(t, domain.StateSearchPhoto, f.session(tt.userID).State)

			query := testutil.NewPrivateText(tt.userID, "red")
			assert.NoError(t, f.h.handleText(query))

			assert.Len(t, query.Sent, 1)
			assert.Equal(t, tt.text, query.Sent[0].Text())
			assert.Equal(t, tt.markup, testutil.Uniques(query.Sent[0].Markup()))

			sess := f.session(tt.userID)
			assert.Equal(t, domain.StateIdle, sess.State)
			if tt.cleared {
				assert.Equal(t, domain.NewSession(), sess)
			} else {
				assert.Equal(t, "Cars", sess.Category)
			}
		})
	}
}

func TestSearchButton_NoCategory(t *testing.T) {
	f := newFixture(Options{})

	c := testutil.NewCallback(userID, "\fsearch_photo", nil)
	err := f.h.handleCallback(c)

	assert.NoError(t, err)
	assert.Equal(t, msgNotActive, c.LastResponse())
	assert.Equal(t, domain.StateIdle, f.session(userID).State)
}

func TestCallback_CanceledSessionIsInert(t *testing.T) {
	f := newFixture(Options{})
	f.setSession(userID, domain.CanceledSession())

	for _, data := range []string{"category_Cars", "page_2", "photo_Red", "search_photo", "move_back_to_category"} {
		c := testutil.NewCallback(userID, "\f"+data, nil)
		assert.NoError(t, f.h.handleCallback(c))
		assert.Equal(t, msgNotActive, c.LastResponse(), data)
		assert.Empty(t, c.Edits, data)
		assert.Empty(t, c.Sent, data)
	}
	f.photos.AssertNotCalled(t, "GetTotalPhotos", mock.Anything)
	f.categories.AssertNotCalled(t, "GetCategories")
}
