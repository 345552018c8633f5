package middleware

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// EditOrSend edits the message the callback came from, or sends a new one
// when there is nothing to edit. Pressing the same button twice leaves the
// message as it is instead of posting a copy.
func EditOrSend(c telebot.Context, text string, opts ...any) error {
	if c.Callback() != nil {
		err := c.Edit(text, opts...)
		if err == nil || notModified(err) {
			return nil
		}
	}
	return c.Send(text, opts...)
}

func notModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
