package handler

import (
	"fmt"
	"strconv"
	"strings"

	"assembl/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleCategory shows the first page of a category. Pressed under a photo,
// it replaces the photo with a fresh list.
func (h *Handler) handleCategory(c tele.Context, sess *domain.Session, name string) error {
	page, err := h.catalogService.CategoryPage(name, 1)
	if err != nil {
		return err
	}

	sess.State = domain.StateIdle
	sess.Category = name
	sess.CurrentPage = page.Number
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	text, opts := msgEmptyCategory, []interface{}{}
	if len(page.Photos) > 0 {
		text, opts = fmt.Sprintf(msgChooseAssembl, name), append(opts, pageMarkup(page))
	}

	if msg := c.Message(); msg != nil && msg.Photo != nil {
		if err := c.Delete(); err != nil {
			h.logger.Warn("Failed to delete photo message", zap.Error(err))
		}
		if err := c.Send(text, opts...); err != nil {
			return err
		}
		return c.Respond()
	}
	return h.editOrSend(c, text, opts...)
}

// handlePage handles page navigation inside the bound category
func (h *Handler) handlePage(c tele.Context, sess *domain.Session, arg string) error {
	number, err := strconv.Atoi(arg)
	if err != nil {
		return c.Respond()
	}
	if sess.Category == "" {
		return c.Respond(&tele.CallbackResponse{Text: msgNotActive})
	}

	page, err := h.catalogService.CategoryPage(sess.Category, number)
	if err != nil {
		return err
	}

	sess.CurrentPage = page.Number
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if len(page.Photos) == 0 {
		return h.editOrSend(c, msgEmptyCategory)
	}
	return h.editOrSend(c, fmt.Sprintf(msgChooseAssembl, sess.Category), pageMarkup(page))
}

// handlePhotoSelect sends the photo picked from a list
func (h *Handler) handlePhotoSelect(c tele.Context, sess *domain.Session, description string) error {
	photoID, err := h.catalogService.PhotoByDescription(description)
	if err != nil {
		return err
	}
	if photoID == "" {
		return c.Respond(&tele.CallbackResponse{Text: msgPhotoNotFound})
	}

	admin, err := h.isAdmin(c)
	if err != nil {
		return err
	}
	if admin {
		// The list gives way to the photo and its controls
		if err := c.Delete(); err != nil {
			h.logger.Warn("Failed to delete list message", zap.Error(err))
		}
	}

	if err := h.showPhoto(c, sess, photoID, description, admin); err != nil {
		return err
	}
	return c.Respond()
}

// showPhoto sends a catalog photo. Admins get the edit controls; for
// everyone else the interaction is over and the session is dropped.
func (h *Handler) showPhoto(c tele.Context, sess *domain.Session, photoID, description string, admin bool) error {
	photo := &tele.Photo{
		File:    tele.File{FileID: photoID},
		Caption: photoCaption(description),
	}

	if admin {
		return c.Send(photo, adminMarkup(sess.Category))
	}
	if err := c.Send(photo); err != nil {
		return err
	}
	return h.ResetSession(c)
}

func photoCaption(description string) string {
	return msgPhotoFound + " " + description
}

// handleBackToCategories shows the category list again
func (h *Handler) handleBackToCategories(c tele.Context) error {
	categories, err := h.catalogService.Categories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return h.editOrSend(c, msgNoCategories)
	}
	return h.editOrSend(c, msgChooseCat, categoriesMarkup(categories))
}

// handleSearchButton waits for a search query
func (h *Handler) handleSearchButton(c tele.Context, sess *domain.Session) error {
	if sess.Category == "" {
		return c.Respond(&tele.CallbackResponse{Text: msgNotActive})
	}

	sess.State = domain.StateSearchPhoto
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := c.Send(msgSearchPrompt); err != nil {
		return err
	}
	return c.Respond()
}

// handleText handles private text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	sess, err := h.GetSession(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	switch sess.State {
	case domain.StateSearchPhoto:
		return h.handleSearchQuery(c, sess, text)
	case domain.StateUpdateDescription:
		return h.handleNewDescription(c, sess, text)
	}
	return nil
}

// handleSearchQuery looks a query up in the bound category
func (h *Handler) handleSearchQuery(c tele.Context, sess *domain.Session, query string) error {
	results, err := h.catalogService.Search(sess.Category, query)
	if err != nil {
		return err
	}

	sess.State = domain.StateIdle
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	h.logger.Info("Search finished",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("category", sess.Category),
		zap.Int("results", len(results)),
	)

	switch len(results) {
	case 0:
		return c.Send(msgPhotoNotFound)
	case 1:
		admin, err := h.isAdmin(c)
		if err != nil {
			return err
		}
		return h.showPhoto(c, sess, results[0].PhotoID, results[0].Description, admin)
	}
	return c.Send(msgSearchResult, searchResultsMarkup(results))
}
