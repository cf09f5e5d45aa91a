package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// Sent records one outgoing call made through a FakeContext
type Sent struct {
	What interface{}
	Opts []interface{}
}

// Markup returns the reply markup passed with the call, if any
func (s Sent) Markup() *tele.ReplyMarkup {
	for _, opt := range s.Opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}

// Text returns the sent text or the caption of a sent photo
func (s Sent) Text() string {
	switch v := s.What.(type) {
	case string:
		return v
	case *tele.Photo:
		return v.Caption
	}
	return ""
}

// FakeContext is a tele.Context that records what a handler does.
// Methods it does not override panic through the nil embedded Context.
type FakeContext struct {
	tele.Context

	sender     *tele.User
	chat       *tele.Chat
	message    *tele.Message
	callback   *tele.Callback
	chatMember *tele.ChatMemberUpdate

	Sent         []Sent
	Replies      []Sent
	Edits        []Sent
	CaptionEdits []Sent
	Responses    []*tele.CallbackResponse
	Deletes      int
	EditErr      error
}

// NewPrivateText builds a text message in a private chat
func NewPrivateText(userID int64, text string) *FakeContext {
	user := &tele.User{ID: userID}
	chat := &tele.Chat{ID: userID, Type: tele.ChatPrivate}
	return &FakeContext{
		sender:  user,
		chat:    chat,
		message: &tele.Message{ID: 1, Sender: user, Chat: chat, Text: text},
	}
}

// NewPrivatePhoto builds a photo message in a private chat
func NewPrivatePhoto(userID int64, fileID, caption string) *FakeContext {
	c := NewPrivateText(userID, "")
	c.message.Photo = &tele.Photo{File: tele.File{FileID: fileID}}
	c.message.Caption = caption
	return c
}

// NewGroupText builds a text message in a supergroup
func NewGroupText(chatID, userID int64, text string, entities tele.Entities) *FakeContext {
	user := &tele.User{ID: userID}
	chat := &tele.Chat{ID: chatID, Type: tele.ChatSuperGroup, Title: "Group"}
	return &FakeContext{
		sender: user,
		chat:   chat,
		message: &tele.Message{
			ID:       1,
			Sender:   user,
			Chat:     chat,
			Text:     text,
			Entities: entities,
		},
	}
}

// NewCallback builds a button press on msg in a private chat. data is the raw
// callback data as Telegram delivers it.
func NewCallback(userID int64, data string, msg *tele.Message) *FakeContext {
	user := &tele.User{ID: userID}
	chat := &tele.Chat{ID: userID, Type: tele.ChatPrivate}
	if msg == nil {
		msg = &tele.Message{ID: 1}
	}
	msg.Chat = chat
	return &FakeContext{
		sender:   user,
		chat:     chat,
		message:  msg,
		callback: &tele.Callback{ID: "cb", Sender: user, Message: msg, Data: data},
	}
}

// NewPhotoMessage builds a message carrying a photo, as a button press sees it
func NewPhotoMessage(fileID, caption string) *tele.Message {
	return &tele.Message{
		ID:      2,
		Photo:   &tele.Photo{File: tele.File{FileID: fileID}},
		Caption: caption,
	}
}

// NewMyChatMember builds an update about the bot's own membership in chat
func NewMyChatMember(chat *tele.Chat, from *tele.User, oldMember, newMember *tele.ChatMember) *FakeContext {
	return &FakeContext{
		sender: from,
		chat:   chat,
		chatMember: &tele.ChatMemberUpdate{
			Chat:          chat,
			Sender:        from,
			OldChatMember: oldMember,
			NewChatMember: newMember,
		},
	}
}

func (c *FakeContext) Sender() *tele.User                 { return c.sender }
func (c *FakeContext) Chat() *tele.Chat                   { return c.chat }
func (c *FakeContext) Message() *tele.Message             { return c.message }
func (c *FakeContext) Callback() *tele.Callback           { return c.callback }
func (c *FakeContext) ChatMember() *tele.ChatMemberUpdate { return c.chatMember }

func (c *FakeContext) Text() string {
	if c.message == nil {
		return ""
	}
	if c.message.Caption != "" {
		return c.message.Caption
	}
	return c.message.Text
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, Sent{What: what, Opts: opts})
	return nil
}

func (c *FakeContext) Reply(what interface{}, opts ...interface{}) error {
	c.Replies = append(c.Replies, Sent{What: what, Opts: opts})
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edits = append(c.Edits, Sent{What: what, Opts: opts})
	return nil
}

func (c *FakeContext) EditCaption(caption string, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.CaptionEdits = append(c.CaptionEdits, Sent{What: caption, Opts: opts})
	return nil
}

func (c *FakeContext) Delete() error {
	c.Deletes++
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, &tele.CallbackResponse{})
		return nil
	}
	c.Responses = append(c.Responses, resp[0])
	return nil
}

// LastResponse returns the text of the last callback answer
func (c *FakeContext) LastResponse() string {
	if len(c.Responses) == 0 {
		return ""
	}
	return c.Responses[len(c.Responses)-1].Text
}

// Uniques returns the button ids of an inline keyboard, row by row
func Uniques(m *tele.ReplyMarkup) [][]string {
	if m == nil {
		return nil
	}
	rows := make([][]string, 0, len(m.InlineKeyboard))
	for _, row := range m.InlineKeyboard {
		ids := make([]string, 0, len(row))
		for _, btn := range row {
			ids = append(ids, btn.Unique)
		}
		rows = append(rows, ids)
	}
	return rows
}
