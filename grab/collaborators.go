package grab

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tgrab/serialize"
)

// Notifier shows short message to the user.
type Notifier interface {
	Notify(msg string)
}

// PopupRequest describes popup to open for a clicked table.
type PopupRequest struct {
	ID       uuid.UUID
	Rows     int
	Formats  []serialize.Format
	Selected string
}

// Summary is popup headline.
func (r PopupRequest) Summary() string {
	if r.Rows == 1 {
		return "Grabbing 1 row."
	}
	return fmt.Sprintf("Grabbing %d rows.", r.Rows)
}

// Popup asks user what to do with clicked table. Open returns immediately,
// resolve is called exactly once later, with nil when popup was dismissed.
// resolve may be called from any goroutine.
type Popup interface {
	Open(req PopupRequest, resolve func(*Choice))
}

// Dismisser is optionally implemented by Popup to close popups abandoned by
// deactivation.
type Dismisser interface {
	Dismiss(id uuid.UUID)
}

// Preferences persist last used export format.
type Preferences interface {
	LastFormat() (string, bool, error)
	SetLastFormat(id string) error
}

// Copier puts text on the clipboard.
type Copier interface {
	Copy(text string) error
}

// Downloader saves text as file named basename plus format extension.
type Downloader interface {
	Download(text, basename string, f serialize.Format) error
}

// Deps are collaborators of the controller. All are required.
type Deps struct {
	Notifier    Notifier
	Popup       Popup
	Preferences Preferences
	Copier      Copier
	Downloader  Downloader
}

func (d Deps) validate() error {
	switch {
	case d.Notifier == nil:
		return errors.New("notifier is not set")
	case d.Popup == nil:
		return errors.New("popup is not set")
	case d.Preferences == nil:
		return errors.New("preferences are not set")
	case d.Copier == nil:
		return errors.New("copier is not set")
	case d.Downloader == nil:
		return errors.New("downloader is not set")
	}
	return nil
}
