package tui

import (
	"context"

	"github.com/bethropolis/tidepad/internal/command"
	"github.com/bethropolis/tidepad/internal/logger"
)

// Notifier shows toasts in the status bar and alerts as modal boxes.
type Notifier struct {
	status  *StatusBar
	dialogs *Dialogs
}

// NewNotifier creates a notifier.
func NewNotifier(status *StatusBar, dialogs *Dialogs) *Notifier {
	return &Notifier{status: status, dialogs: dialogs}
}

var _ command.Notifier = (*Notifier)(nil)

// Toast implements command.Notifier.
func (n *Notifier) Toast(message string) {
	logger.Infof("Toast: %s", message)
	n.status.SetTemporaryMessage("%s", message)
}

// Alert implements command.Notifier.
func (n *Notifier) Alert(ctx context.Context, title, body string) {
	logger.Infof("Alert %s: %s", title, body)
	n.dialogs.Alert(ctx, title, body)
}
