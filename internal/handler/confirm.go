package handler

import (
	"errors"
	"fmt"
	"strings"

	"assembl/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// parseConfirm splits "<command>_<yes|no>"
func parseConfirm(arg string) (cmd domain.Command, yes bool, ok bool) {
	i := strings.LastIndex(arg, "_")
	if i < 0 {
		return "", false, false
	}

	cmd = domain.Command(arg[:i])
	switch cmd {
	case domain.CommandAdd, domain.CommandReplace, domain.CommandDelete, domain.CommandUpdate:
	default:
		return "", false, false
	}

	switch arg[i+1:] {
	case "yes":
		return cmd, true, true
	case "no":
		return cmd, false, true
	}
	return "", false, false
}

// handleConfirm runs the yes or no answer for the pending operation. Admin
// rank is not checked again: only an admin could reach the prompt.
func (h *Handler) handleConfirm(c tele.Context, sess *domain.Session, arg string) error {
	cmd, yes, ok := parseConfirm(arg)
	if !ok {
		h.logger.Warn("Malformed confirmation", zap.String("data", arg))
		return c.Respond()
	}

	flow := sess.Flow
	if flow == nil || flow.Command() != cmd {
		return c.Respond(&tele.CallbackResponse{Text: msgNotActive})
	}

	description, err := h.catalogService.Description(flow.Target())
	if err != nil {
		return err
	}

	if !yes {
		return h.rejectFlow(c, sess, flow, description)
	}
	return h.commitFlow(c, sess, flow)
}

// commitFlow writes the operation and reports the result
func (h *Handler) commitFlow(c tele.Context, sess *domain.Session, flow domain.Flow) error {
	var err error
	switch f := flow.(type) {
	case *domain.AddCapture:
		err = h.photoService.Add(f)
	case *domain.ReplaceCapture:
		err = h.photoService.Replace(f)
	case *domain.DeleteConfirm:
		err = h.photoService.Delete(f)
	case *domain.EditDescriptionCapture:
		err = h.photoService.UpdateDescription(f)
	}
	if err != nil {
		return h.failFlow(c, sess, flow, err)
	}

	if err := h.ResetSession(c); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	switch f := flow.(type) {
	case *domain.AddCapture:
		err = c.Edit(msgAddDone)
	case *domain.ReplaceCapture:
		err = c.EditCaption(msgReplaceDone)
	case *domain.DeleteConfirm:
		if delErr := c.Delete(); delErr != nil {
			h.logger.Warn("Failed to delete photo message", zap.Error(delErr))
		}
		err = c.Send(msgDeleteDone)
	case *domain.EditDescriptionCapture:
		err = c.EditCaption(fmt.Sprintf(msgEditDone, f.NewDescription))
	}
	if err != nil {
		return err
	}
	return c.Respond()
}

// failFlow reports a failed commit. A duplicate description drops the
// captured data and keeps the browsing position. Any other failure leaves the
// session and the prompt as they were, so the same confirmation can be
// pressed again.
func (h *Handler) failFlow(c tele.Context, sess *domain.Session, flow domain.Flow, cause error) error {
	h.logger.Error("Failed to commit photo operation",
		zap.Error(cause),
		zap.String("command", string(flow.Command())),
		zap.String("photo_id", flow.Target()),
		zap.String("category", sess.Category),
		zap.Int64("user_id", c.Sender().ID),
	)

	if !errors.Is(cause, domain.ErrDuplicateDescription) {
		if err := c.Send(msgError); err != nil {
			return err
		}
		return c.Respond()
	}

	sess.Flow = nil
	sess.State = domain.StateIdle
	if err := h.SaveSession(c, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	var err error
	if _, isAdd := flow.(*domain.AddCapture); isAdd {
		err = c.Edit(msgPhotoExists)
	} else {
		err = c.Send(msgPhotoExists)
	}
	if err != nil {
		return err
	}
	return c.Respond()
}

// rejectFlow puts the message back the way it was before the operation
func (h *Handler) rejectFlow(c tele.Context, sess *domain.Session, flow domain.Flow, description string) error {
	if err := h.ResetSession(c); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	var err error
	switch f := flow.(type) {
	case *domain.AddCapture:
		err = c.Edit(msgCancel)
	case *domain.ReplaceCapture:
		if delErr := c.Delete(); delErr != nil {
			h.logger.Warn("Failed to delete photo message", zap.Error(delErr))
		}
		err = c.Send(&tele.Photo{
			File:    tele.File{FileID: f.PhotoID},
			Caption: msgReplaceCanceled,
		})
	case *domain.DeleteConfirm:
		if sess.Category != "" {
			err = c.EditCaption(photoCaption(description), adminMarkup(sess.Category))
		} else {
			err = c.EditCaption(photoCaption(description))
		}
	case *domain.EditDescriptionCapture:
		err = c.EditCaption(photoCaption(description))
	}
	if err != nil {
		return err
	}
	return c.Respond()
}
