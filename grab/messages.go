package grab

import (
	"github.com/google/uuid"

	"tgrab/common"
)

// Message is handled by controller on the loop goroutine. The set of messages
// is closed.
type Message interface {
	message()
}

// TableClicked is posted when user clicks marked table.
type TableClicked struct {
	// Table is index of the table in document order at activation time.
	Table int
	// Gen is activation the click belongs to.
	Gen uint64
}

// PopupResolved is posted when popup is closed. Choice is nil when user
// dismissed the popup.
type PopupResolved struct {
	Request uuid.UUID
	Choice  *Choice
}

// CancelKeyPressed is posted once when cancel key is observed.
type CancelKeyPressed struct {
	// Gen is activation the key listener was installed by.
	Gen uint64
}

func (TableClicked) message()     {}
func (PopupResolved) message()    {}
func (CancelKeyPressed) message() {}

// Choice is what user selected in the popup.
type Choice struct {
	Action common.PopupAction
	// Format is format id, it is validated by controller.
	Format string
}
