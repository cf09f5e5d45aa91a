package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ErrorText is shown to the user whenever a handler fails
const ErrorText = "Произошла ошибка. Попробуйте позже."

// Recover creates the outermost middleware: it turns panics and returned
// errors into a log entry and a generic reply, so one update never stops the bot.
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic in handler",
						zap.Any("panic", r),
						zap.Stack("stack"),
						zap.Int64("user_id", senderID(c)),
					)
					err = replyError(c)
				}
			}()

			if err := next(c); err != nil {
				logger.Error("Handler failed",
					zap.Error(err),
					zap.Int64("user_id", senderID(c)),
					zap.Int64("chat_id", chatID(c)),
				)
				return replyError(c)
			}
			return nil
		}
	}
}

// replyError answers the callback if there is one, otherwise sends a message
func replyError(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: ErrorText})
	}
	if c.Chat() == nil {
		return nil
	}
	return c.Send(ErrorText)
}

func senderID(c tele.Context) int64 {
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}
