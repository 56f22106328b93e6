// Package ui is the Bubble Tea front end for a panel group.
//
// Core pieces:
//   - AppModel: root model; owns the layout.Group, the resize and reorder
//     controllers and the pointer capture
//   - View: content hosted inside a panel (Elm-style init/update/view)
//   - Panel: a group member plus the View it shows
//   - Distribute: turns committed weights into on-screen extents
//   - FocusManager: tracks and rotates keyboard focus across panels
//   - KeybindRegistry: spacemacs-style "SPC ..." command sequences
package ui
