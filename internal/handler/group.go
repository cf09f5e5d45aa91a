package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleMyChatMember tracks the bot's own membership in groups
func (h *Handler) handleMyChatMember(c tele.Context) error {
	upd := c.ChatMember()
	if upd == nil || upd.Chat == nil || upd.NewChatMember == nil {
		return nil
	}

	chat := upd.Chat
	newRole := upd.NewChatMember.Role
	oldRole := tele.Left
	if upd.OldChatMember != nil {
		oldRole = upd.OldChatMember.Role
	}

	h.logger.Info("Bot membership changed",
		zap.Int64("chat_id", chat.ID),
		zap.String("old_role", string(oldRole)),
		zap.String("new_role", string(newRole)),
	)

	switch {
	case newRole == tele.Left || newRole == tele.Kicked:
		if err := h.authService.UnregisterGroup(chat.ID); err != nil {
			h.logger.Error("Failed to unregister group", zap.Error(err), zap.Int64("chat_id", chat.ID))
		}
		return nil

	case newRole == tele.Administrator && oldRole != tele.Administrator:
		if err := h.authService.RegisterGroup(chat.ID, chat.Title); err != nil {
			h.logger.Error("Failed to register group", zap.Error(err), zap.Int64("chat_id", chat.ID))
			return nil
		}
		if link := h.botLink(); link != "" {
			return c.Send(msgGroupReady, linkMarkup(btnOpenBot, link))
		}
		return c.Send(msgGroupReady)

	case oldRole == tele.Left || oldRole == tele.Kicked:
		if newRole == tele.Restricted && !upd.NewChatMember.CanSendMessages {
			h.logger.Warn("Bot may not send messages in group", zap.Int64("chat_id", chat.ID))
			return nil
		}
		return c.Send(msgGroupHello)
	}

	return nil
}

// handleGroupText answers group messages that mention the bot
func (h *Handler) handleGroupText(c tele.Context) error {
	msg := c.Message()
	if msg == nil || h.username == "" || !mentions(msg, h.username) {
		return nil
	}

	link := h.botLink()
	if link == "" {
		return nil
	}
	return c.Reply(msgMention, linkMarkup(btnOpenBot, link))
}

// botLink returns the link to the bot's private chat
func (h *Handler) botLink() string {
	if h.opts.BotURL != "" {
		return h.opts.BotURL
	}
	if h.username != "" {
		return "https://t.me/" + h.username
	}
	return ""
}

func mentions(msg *tele.Message, username string) bool {
	for _, entity := range msg.Entities {
		if entity.Type != tele.EntityMention {
			continue
		}
		if strings.EqualFold(msg.EntityText(entity), "@"+username) {
			return true
		}
	}
	return false
}
