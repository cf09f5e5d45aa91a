package handler

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	// Log the error to understand why Edit failed
	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the pressed message and answers the callback. When the
// message cannot be edited, a new one is sent instead.
func (h *Handler) editOrSend(c tele.Context, what interface{}, opts ...interface{}) error {
	userID := c.Sender().ID
	if err := c.Edit(what, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(what, opts...)
	}
	return c.Respond()
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	// The page counter is not a button
	if data == dataPageInfo {
		return c.Respond()
	}

	sess, err := h.GetSession(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	// Everything pressed after /cancel is stale
	if sess.Canceled {
		return c.Respond(&tele.CallbackResponse{Text: msgNotActive})
	}

	switch data {
	case dataBackToCategories:
		return h.handleBackToCategories(c)
	case dataSearch:
		return h.handleSearchButton(c, sess)
	case dataReplacePhoto:
		return h.handleReplaceButton(c, sess)
	case dataEditDescription:
		return h.handleEditDescriptionButton(c, sess)
	case dataDeletePhoto:
		return h.handleDeleteButton(c, sess)
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, prefixConfirm):
		return h.handleConfirm(c, sess, strings.TrimPrefix(data, prefixConfirm))
	case strings.HasPrefix(data, prefixCategory):
		return h.handleCategory(c, sess, strings.TrimPrefix(data, prefixCategory))
	case strings.HasPrefix(data, prefixPage):
		return h.handlePage(c, sess, strings.TrimPrefix(data, prefixPage))
	case strings.HasPrefix(data, prefixPhoto):
		return h.handlePhotoSelect(c, sess, strings.TrimPrefix(data, prefixPhoto))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback", zap.String("data", data))
	return c.Respond()
}
