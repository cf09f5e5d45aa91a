package handler

import (
	"errors"
	"fmt"

	"assembl/internal/domain"
	"assembl/internal/translit"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var (
	errNoCaption = errors.New("message has no caption")
	errNoFlow    = errors.New("no operation in progress")
)

// requireAdmin runs the live admin check and answers non-admins.
// It reports whether the caller may go on.
func (h *Handler) requireAdmin(c tele.Context) (bool, error) {
	admin, err := h.isAdmin(c)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	h.logger.Info("Admin action refused", zap.Int64("user_id", c.Sender().ID))
	if c.Callback() != nil {
		return false, c.Respond(&tele.CallbackResponse{Text: msgUserNotAdmin})
	}
	return false, c.Send(msgUserNotAdmin)
}

// handlePhoto handles private photo messages: a replacement when one is
// awaited, otherwise a new catalog entry
func (h *Handler) handlePhoto(c tele.Context) error {
	sess, err := h.GetSession(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	// A new photo starts a new interaction
	sess.Canceled = false

	if sess.State == domain.StateUpdatePhoto {
		return h.handleReplacementPhoto(c, sess)
	}
	return h.handleAddPhoto(c, sess)
}

// handleAddPhoto captures a photo captioned "<category> <description>"
func (h *Handler) handleAddPhoto(c tele.Context, sess *domain.Session) error {
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if ok, err := h.requireAdmin(c); err != nil || !ok {
		return err
	}

	msg := c.Message()
	category, desc, ok := translit.ParseCaption(msg.Caption)
	if !ok {
		h.logger.Debug("Photo caption is not a catalog entry", zap.String("caption", msg.Caption))
		return nil
	}

	known, err := h.catalogService.FindCategory(category)
	if err != nil {
		return err
	}
	if known == nil {
		h.logger.Debug("Photo caption names unknown category", zap.String("category", category))
		return nil
	}
	if !descriptionFits(desc.Description) {
		return c.Send(msgDescTooLong)
	}

	sess.Flow = &domain.AddCapture{
		PhotoID:             msg.Photo.FileID,
		Category:            known.Name,
		Description:         desc.Description,
		DescriptionTranslit: desc.DescriptionTranslit,
	}
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return c.Send(fmt.Sprintf(msgAddConfirm, desc.Description, known.Name), confirmMarkup(domain.CommandAdd))
}

// handleReplacementPhoto captures the new file for a replace
func (h *Handler) handleReplacementPhoto(c tele.Context, sess *domain.Session) error {
	if ok, err := h.requireAdmin(c); err != nil || !ok {
		return err
	}

	flow, ok := sess.Flow.(*domain.ReplaceCapture)
	if !ok {
		return errNoFlow
	}

	description, err := h.catalogService.Description(flow.PhotoID)
	if err != nil {
		return err
	}

	flow.NewPhotoID = c.Message().Photo.FileID
	sess.State = domain.StateIdle
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	photo := &tele.Photo{
		File:    tele.File{FileID: flow.NewPhotoID},
		Caption: fmt.Sprintf(msgReplaceConfirm, description, flow.Category),
	}
	return c.Send(photo, confirmMarkup(domain.CommandReplace))
}

// shownPhoto returns the file id of the photo message the button belongs to
func shownPhoto(c tele.Context) (string, error) {
	msg := c.Message()
	if msg == nil || msg.Photo == nil || msg.Caption == "" {
		return "", errNoCaption
	}
	return msg.Photo.FileID, nil
}

// handleReplaceButton waits for a new photo for the shown one
func (h *Handler) handleReplaceButton(c tele.Context, sess *domain.Session) error {
	if ok, err := h.requireAdmin(c); err != nil || !ok {
		return err
	}

	photoID, err := shownPhoto(c)
	if err != nil {
		return err
	}

	sess.Flow = &domain.ReplaceCapture{PhotoID: photoID, Category: sess.Category}
	sess.State = domain.StateUpdatePhoto
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := c.EditCaption(msgReplacePrompt); err != nil {
		return err
	}
	return c.Respond()
}

// handleEditDescriptionButton waits for a new description for the shown photo
func (h *Handler) handleEditDescriptionButton(c tele.Context, sess *domain.Session) error {
	if ok, err := h.requireAdmin(c); err != nil || !ok {
		return err
	}

	photoID, err := shownPhoto(c)
	if err != nil {
		return err
	}

	description, err := h.catalogService.Description(photoID)
	if err != nil {
		return err
	}

	sess.Flow = &domain.EditDescriptionCapture{PhotoID: photoID}
	sess.State = domain.StateUpdateDescription
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := c.EditCaption(fmt.Sprintf(msgEditPrompt, description)); err != nil {
		return err
	}
	return c.Respond()
}

// handleDeleteButton asks to confirm deleting the shown photo
func (h *Handler) handleDeleteButton(c tele.Context, sess *domain.Session) error {
	if ok, err := h.requireAdmin(c); err != nil || !ok {
		return err
	}

	photoID, err := shownPhoto(c)
	if err != nil {
		return err
	}

	sess.Flow = &domain.DeleteConfirm{PhotoID: photoID}
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := c.EditCaption(msgDeleteConfirm, confirmMarkup(domain.CommandDelete)); err != nil {
		return err
	}
	return c.Respond()
}

// handleNewDescription captures the text sent after "edit description"
func (h *Handler) handleNewDescription(c tele.Context, sess *domain.Session, text string) error {
	flow, ok := sess.Flow.(*domain.EditDescriptionCapture)
	if !ok {
		return errNoFlow
	}

	enriched := translit.Enrich(text)
	if enriched.Description == "" {
		return nil
	}
	if !descriptionFits(enriched.Description) {
		return c.Send(msgDescTooLong)
	}

	flow.NewDescription = enriched.Description
	flow.NewDescriptionTranslit = enriched.DescriptionTranslit
	sess.State = domain.StateIdle
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	photo := &tele.Photo{
		File:    tele.File{FileID: flow.PhotoID},
		Caption: fmt.Sprintf(msgEditConfirm, enriched.Description),
	}
	return c.Send(photo, confirmMarkup(domain.CommandUpdate))
}
