package handler

import (
	"fmt"
	"strings"

	"assembl/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	text := msgStart
	if categories := h.adminCategories(c); len(categories) > 0 {
		names := make([]string, 0, len(categories))
		for _, category := range categories {
			names = append(names, "🔹 "+category.Name)
		}
		text += "\n\n" + msgStartAdmin + "\n" + strings.Join(names, "\n")
	}

	return c.Send(text)
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	text := msgHelp
	if categories := h.adminCategories(c); len(categories) > 0 {
		lines := make([]string, 0, len(categories))
		for _, category := range categories {
			lines = append(lines, fmt.Sprintf("%s - %s", category.Name, category.Description))
		}
		text += "\n\n" + msgHelpAdmin + "\n" + strings.Join(lines, "\n")
	}

	return c.Send(text)
}

// adminCategories returns the categories to list for an admin, nil for
// everyone else. Lookup failures only shorten the greeting.
func (h *Handler) adminCategories(c tele.Context) []domain.Category {
	admin, err := h.isAdmin(c)
	if err != nil {
		h.logger.Error("Failed to check admin rank", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
		return nil
	}
	if !admin {
		return nil
	}

	categories, err := h.catalogService.Categories()
	if err != nil {
		h.logger.Error("Failed to get categories", zap.Error(err))
		return nil
	}
	return categories
}

// handleCancel handles /cancel command: drops the pending operation and
// makes every button shown before inert
func (h *Handler) handleCancel(c tele.Context) error {
	if err := h.SaveSession(c, domain.CanceledSession()); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}

	h.logger.Info("User canceled", zap.Int64("user_id", c.Sender().ID))
	return c.Send(msgCancel)
}

// handleAssembl handles /assembl command: starts browsing
func (h *Handler) handleAssembl(c tele.Context) error {
	sess, err := h.GetSession(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Canceled = false
	sess.State = domain.StateIdle
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	categories, err := h.catalogService.Categories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return c.Send(msgNoCategories)
	}

	return c.Send(msgChooseCat, categoriesMarkup(categories))
}

// handleCommandos handles /commandos command
func (h *Handler) handleCommandos(c tele.Context) error {
	return c.Send(msgChannel, linkMarkup(btnOpenChannel, h.opts.ChannelURL))
}
