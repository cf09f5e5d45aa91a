package handler

import (
	"fmt"
	"strconv"

	"assembl/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Callback data
const (
	prefixCategory = "category_"
	prefixPage     = "page_"
	prefixPhoto    = "photo_"
	prefixConfirm  = "confirm_"

	dataPageInfo         = "page_info"
	dataBackToCategories = "move_back_to_category"
	dataSearch           = "search_photo"
	dataReplacePhoto     = "update_photo"
	dataEditDescription  = "update_description"
	dataDeletePhoto      = "delete_photo"
)

// maxDescriptionBytes keeps "\fphoto_<description>" within Telegram's 64-byte callback data
const maxDescriptionBytes = 64 - len("\f"+prefixPhoto)

func descriptionFits(description string) bool {
	return len(description) <= maxDescriptionBytes
}

// categoriesMarkup lists categories as "N. description", two per row
func categoriesMarkup(categories []domain.Category) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	btns := make([]tele.Btn, 0, len(categories))
	for i, category := range categories {
		text := fmt.Sprintf("%d. %s", i+1, category.Description)
		btns = append(btns, markup.Data(text, prefixCategory+category.Name))
	}
	markup.Inline(markup.Split(2, btns)...)
	return markup
}

// photoButtons returns one button per photo, two per row
func photoButtons(markup *tele.ReplyMarkup, photos []domain.Photo) []tele.Row {
	btns := make([]tele.Btn, 0, len(photos))
	for _, photo := range photos {
		btns = append(btns, markup.Data(photo.Description, prefixPhoto+photo.Description))
	}
	return markup.Split(2, btns)
}

// pageMarkup renders a category page: photo buttons, then navigation,
// "back to categories" on the first page, then search
func pageMarkup(page domain.Page) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := photoButtons(markup, page.Photos)

	nav := tele.Row{}
	if page.Number > 1 {
		nav = append(nav, markup.Data(btnPrev, prefixPage+strconv.Itoa(page.Number-1)))
	}
	nav = append(nav, markup.Data(fmt.Sprintf(btnPageInfo, page.Number, page.TotalPages), dataPageInfo))
	if page.Number < page.TotalPages {
		nav = append(nav, markup.Data(btnNext, prefixPage+strconv.Itoa(page.Number+1)))
	}
	rows = append(rows, nav)

	if page.Number == 1 {
		rows = append(rows, markup.Row(markup.Data(btnBackCategories, dataBackToCategories)))
	}
	rows = append(rows, markup.Row(markup.Data(btnSearch, dataSearch)))

	markup.Inline(rows...)
	return markup
}

// searchResultsMarkup lets the user pick one of several matches
func searchResultsMarkup(photos []domain.Photo) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(photoButtons(markup, photos)...)
	return markup
}

// adminMarkup holds the controls shown under a photo to admins, three per row
func adminMarkup(category string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Split(3, []tele.Btn{
		markup.Data(btnReplace, dataReplacePhoto),
		markup.Data(btnEditDesc, dataEditDescription),
		markup.Data(btnDelete, dataDeletePhoto),
		markup.Data(btnBackCategory, prefixCategory+category),
	})...)
	return markup
}

// confirmMarkup asks yes or no for a pending command
func confirmMarkup(cmd domain.Command) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data(btnYes, confirmData(cmd, true)),
		markup.Data(btnNo, confirmData(cmd, false)),
	))
	return markup
}

func confirmData(cmd domain.Command, yes bool) string {
	answer := "no"
	if yes {
		answer = "yes"
	}
	return prefixConfirm + string(cmd) + "_" + answer
}

// linkMarkup holds a single URL button
func linkMarkup(text, url string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.URL(text, url)))
	return markup
}
