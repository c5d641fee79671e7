package editor

import (
	"fmt"

	apperrors "easyfindshub/internal/errors"
)

// Command names accepted by Apply.
const (
	CmdToggleBold        = "toggle-bold"
	CmdToggleItalic      = "toggle-italic"
	CmdToggleHeading     = "toggle-heading"
	CmdToggleBulletList  = "toggle-bullet-list"
	CmdToggleOrderedList = "toggle-ordered-list"
	CmdToggleBlockquote  = "toggle-blockquote"
	CmdInsertLink        = "insert-link"
	CmdInsertImage       = "insert-image"
	CmdUndo              = "undo"
	CmdRedo              = "redo"
	CmdSelect            = "select"
	CmdSelectAll         = "select-all"
	CmdInsertText        = "insert-text"
	CmdSplitBlock        = "split-block"
	CmdSetContent        = "set-content"
)

// Command is one toolbar or keyboard action. Selection, when present, is
// applied before the action itself.
type Command struct {
	Name      string     `json:"command" validate:"required"`
	Selection *Selection `json:"selection,omitempty"`
	Level     int        `json:"level,omitempty"`
	URL       string     `json:"url,omitempty"`
	Text      string     `json:"text,omitempty"`
	Markup    string     `json:"markup,omitempty"`
}

// Apply runs cmd and reports whether the document changed.
func (e *Editor) Apply(cmd Command) (bool, error) {
	if cmd.Selection != nil {
		if err := e.Select(cmd.Selection.Anchor, cmd.Selection.Head); err != nil {
			return false, err
		}
	}

	switch cmd.Name {
	case CmdToggleBold:
		return e.ToggleBold(), nil
	case CmdToggleItalic:
		return e.ToggleItalic(), nil
	case CmdToggleHeading:
		return e.ToggleHeading(cmd.Level)
	case CmdToggleBulletList:
		return e.ToggleBulletList(), nil
	case CmdToggleOrderedList:
		return e.ToggleOrderedList(), nil
	case CmdToggleBlockquote:
		return e.ToggleBlockquote(), nil
	case CmdInsertLink:
		return e.InsertLink(cmd.URL), nil
	case CmdInsertImage:
		return e.InsertImage(cmd.URL), nil
	case CmdUndo:
		return e.Undo(), nil
	case CmdRedo:
		return e.Redo(), nil
	case CmdSelect:
		if cmd.Selection == nil {
			return false, fmt.Errorf("%w: select needs a selection", apperrors.ErrInvalidCommand)
		}
		return false, nil
	case CmdSelectAll:
		e.SelectAll()
		return false, nil
	case CmdInsertText:
		return e.InsertText(cmd.Text), nil
	case CmdSplitBlock:
		return e.SplitBlock(), nil
	case CmdSetContent:
		if err := e.SetContent(cmd.Markup); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", apperrors.ErrInvalidCommand, cmd.Name)
	}
}
