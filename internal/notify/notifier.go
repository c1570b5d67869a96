// Package notify sends fire-and-forget HTTP notifications for keybinding
// activity. The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/keywarden/keywarden/internal/store"
)

// Notifier posts plain-text HTTP notifications for selected activity events.
type Notifier struct {
	url          string
	title        string
	onConflict   bool
	onSessionEnd bool
	client       *http.Client
}

// New creates a Notifier. title is used as the X-Title header; if empty,
// "keywarden" is used instead.
func New(notifURL, title string, onConflict, onSessionEnd bool) *Notifier {
	if title == "" {
		title = "keywarden"
	}
	return &Notifier{
		url:          notifURL,
		title:        title,
		onConflict:   onConflict,
		onSessionEnd: onSessionEnd,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook observes activity entries as they are logged and fires asynchronous
// POSTs for the kinds the notification flags enable.
func (n *Notifier) Hook(entry store.Entry) {
	switch entry.Kind {
	case store.KindConflict:
		if n.onConflict {
			go n.post(conflictMessage(entry))
		}
	case store.KindSessionEnd:
		if n.onSessionEnd {
			go n.post(sessionEndMessage(entry))
		}
	}
}

func conflictMessage(entry store.Entry) string {
	msg := fmt.Sprintf("%s rebound to %s", entry.Action, entry.Combo)
	if len(entry.Conflicts) > 0 {
		msg += fmt.Sprintf(", conflicting with %s", strings.Join(entry.Conflicts, ", "))
	}
	return msg
}

func sessionEndMessage(entry store.Entry) string {
	if entry.Detail != "" {
		return "session ended: " + entry.Detail
	}
	return "session ended"
}

// post sends a plain-text POST to the configured URL. Errors are silently
// discarded so notification failures never interrupt the app.
func (n *Notifier) post(message string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	resp, err := n.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
