package handler

import (
	"context"

	"assembl/internal/domain"
	"assembl/internal/middleware"
	"assembl/internal/service"
	"assembl/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Options holds the links the bot hands out
type Options struct {
	// BotURL is the deep link to the bot's private chat
	BotURL string
	// ChannelURL enables /commandos when set
	ChannelURL string
}

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	authService    *service.AuthService
	catalogService *service.CatalogService
	photoService   *service.PhotoService
	sessions       session.Store
	opts           Options
	logger         *zap.Logger

	// username is the bot's @name without the @
	username string
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	catalogService *service.CatalogService,
	photoService *service.PhotoService,
	sessions session.Store,
	opts Options,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:            bot,
		authService:    authService,
		catalogService: catalogService,
		photoService:   photoService,
		sessions:       sessions,
		opts:           opts,
		logger:         logger,
	}
	if bot != nil && bot.Me != nil {
		h.username = bot.Me.Username
	}
	return h
}

// route binds a trigger in one chat scope to a handler
type route struct {
	scope   middleware.Scope
	trigger string
	handle  tele.HandlerFunc
}

func (h *Handler) routes() []route {
	routes := []route{
		// Commands
		{middleware.ScopePrivate, "/start", h.handleStart},
		{middleware.ScopePrivate, "/help", h.handleHelp},
		{middleware.ScopePrivate, "/cancel", h.handleCancel},
		{middleware.ScopePrivate, "/assembl", h.handleAssembl},

		// Messages
		{middleware.ScopePrivate, tele.OnText, h.handleText},
		{middleware.ScopePrivate, tele.OnPhoto, h.handlePhoto},
		{middleware.ScopeGroup, tele.OnText, h.handleGroupText},

		// Inline buttons
		{middleware.ScopePrivate, tele.OnCallback, h.handleCallback},

		// Bot membership changes
		{middleware.ScopeGroup, tele.OnMyChatMember, h.handleMyChatMember},
	}
	if h.opts.ChannelURL != "" {
		routes = append(routes, route{middleware.ScopePrivate, "/commandos", h.handleCommandos})
	}
	return routes
}

// RegisterHandlers registers all bot handlers. Telebot keeps one handler per
// trigger, so triggers served in several scopes go through dispatch.
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Recover(h.logger))

	var order []string
	byTrigger := make(map[string][]route)
	for _, r := range h.routes() {
		if _, seen := byTrigger[r.trigger]; !seen {
			order = append(order, r.trigger)
		}
		byTrigger[r.trigger] = append(byTrigger[r.trigger], r)
	}

	for _, trigger := range order {
		routes := byTrigger[trigger]
		if len(routes) == 1 {
			h.bot.Handle(trigger, routes[0].handle, middleware.Only(routes[0].scope))
			continue
		}
		h.bot.Handle(trigger, dispatch(routes))
	}
}

// dispatch runs the first route whose scope matches the chat
func dispatch(routes []route) tele.HandlerFunc {
	return func(c tele.Context) error {
		for _, r := range routes {
			if r.scope.Matches(c.Chat()) {
				return r.handle(c)
			}
		}
		return nil
	}
}

// RegisterCommands publishes the command menu for private chats and clears it in groups
func (h *Handler) RegisterCommands() error {
	if err := h.bot.SetCommands(h.commands(), tele.CommandScope{Type: tele.CommandScopeAllPrivateChats}); err != nil {
		return err
	}
	return h.bot.DeleteCommands(tele.CommandScope{Type: tele.CommandScopeAllGroupChats})
}

func (h *Handler) commands() []tele.Command {
	commands := []tele.Command{
		{Text: "start", Description: "Запустить бота"},
		{Text: "assembl", Description: "Выбрать сборку"},
		{Text: "help", Description: "Справка"},
		{Text: "cancel", Description: "Отменить действие"},
	}
	if h.opts.ChannelURL != "" {
		commands = append(commands, tele.Command{Text: "commandos", Description: "Наш канал"})
	}
	return commands
}

func sessionKey(c tele.Context) session.Key {
	key := session.Key{}
	if chat := c.Chat(); chat != nil {
		key.ChatID = chat.ID
	}
	if sender := c.Sender(); sender != nil {
		key.UserID = sender.ID
	}
	return key
}

// GetSession returns the session of the user behind c
func (h *Handler) GetSession(c tele.Context) (*domain.Session, error) {
	return h.sessions.Get(context.Background(), sessionKey(c))
}

// SaveSession stores the session of the user behind c
func (h *Handler) SaveSession(c tele.Context, s *domain.Session) error {
	return h.sessions.Save(context.Background(), sessionKey(c), s)
}

// ResetSession drops everything stored for the user behind c
func (h *Handler) ResetSession(c tele.Context) error {
	return h.sessions.Clear(context.Background(), sessionKey(c))
}

// isAdmin runs the live admin check for the sender
func (h *Handler) isAdmin(c tele.Context) (bool, error) {
	return h.authService.IsAdmin(c.Sender().ID)
}
