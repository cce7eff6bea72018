// Package ui provides the graphical user interface for Save State.
// This file contains the CSS styles for the status label and toggles.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Theme-aware styles; colors follow the GNOME palette.
const appCSS = `
/* Status label */
.status-label {
    font-size: 18px;
    font-weight: 600;
}

.status-running {
    color: #2ec27e;
}

.status-idle {
    opacity: 0.7;
}

/* Toggle buttons */
button.toggle {
    min-width: 96px;
    min-height: 36px;
    border-radius: 8px;
}

button.run-toggle:checked {
    background-color: #2ec27e;
    color: white;
}

button.kill-toggle:checked {
    background-color: #e01b24;
    color: white;
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
