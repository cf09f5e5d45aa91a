package middleware

import (
	tele "gopkg.in/telebot.v3"
)

// Scope is the kind of chat a handler serves
type Scope int

const (
	ScopeAny Scope = iota
	ScopePrivate
	ScopeGroup
)

// Matches reports whether chat belongs to the scope
func (s Scope) Matches(chat *tele.Chat) bool {
	switch s {
	case ScopeAny:
		return true
	case ScopePrivate:
		return chat != nil && chat.Type == tele.ChatPrivate
	case ScopeGroup:
		return chat != nil && (chat.Type == tele.ChatGroup || chat.Type == tele.ChatSuperGroup)
	}
	return false
}

// Only drops updates from chats outside the scope
func Only(s Scope) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !s.Matches(c.Chat()) {
				return nil
			}
			return next(c)
		}
	}
}
