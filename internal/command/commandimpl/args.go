package commandimpl

import (
	"strconv"
	"strings"

	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
)

// parsePostID splits "<post_id> [rest...]" command arguments.
func parsePostID(args string) (int64, string, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, "", apperrors.New("missing post id")
	}

	idPart := args
	rest := ""
	if i := strings.IndexAny(args, " \t"); i >= 0 {
		idPart = args[:i]
		rest = strings.TrimSpace(args[i+1:])
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(idPart, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", apperrors.New("invalid post id")
	}
	return id, rest, nil
}

// errorText turns a core error into the line shown in chat.
func (c *CommandImpl) errorText(err error) string {
	if apperrors.IsServiceUnavailable(err) {
		return "Network error. Please try again later."
	}
	if msg := apperrors.GetMessage(err); msg != "" {
		return msg
	}
	return "Something went wrong."
}
